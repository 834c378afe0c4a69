package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandHostPattern(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "no braces",
			input:    "h",
			expected: []string{"h"},
		},
		{
			name:     "plain address",
			input:    "127.0.0.1",
			expected: []string{"127.0.0.1"},
		},
		{
			name:     "ascending range",
			input:    "h{1..3}",
			expected: []string{"h1", "h2", "h3"},
		},
		{
			name:     "comma list",
			input:    "h{1,3}",
			expected: []string{"h1", "h3"},
		},
		{
			name:     "range with port suffix",
			input:    "127.0.0.{1..3}:9000",
			expected: []string{"127.0.0.1:9000", "127.0.0.2:9000", "127.0.0.3:9000"},
		},
		{
			name:     "cross product is left-outer right-inner",
			input:    "{a,b}{1,2}",
			expected: []string{"a1", "a2", "b1", "b2"},
		},
		{
			name:     "separated groups",
			input:    "{a,b}.{1,2}",
			expected: []string{"a.1", "a.2", "b.1", "b.2"},
		},
		{
			name:     "descending range counts down",
			input:    "n{5..2}",
			expected: []string{"n5", "n4", "n3", "n2"},
		},
		{
			name:     "single element range",
			input:    "n{7..7}",
			expected: []string{"n7"},
		},
		{
			name:     "unmatched open brace",
			input:    "h{1,2",
			expected: []string{"h{1,2"},
		},
		{
			name:     "unmatched close brace",
			input:    "h1,2}",
			expected: []string{"h1,2}"},
		},
		{
			name:     "close before open",
			input:    "h}1,2{",
			expected: []string{"h}1,2{"},
		},
		{
			name:     "non-numeric range is literal",
			input:    "h{a..c}",
			expected: []string{"ha..c"},
		},
		{
			name:     "empty group",
			input:    "h{}",
			expected: []string{"h"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandHostPattern(tt.input))
		})
	}
}

func TestExpandHostPattern_Deterministic(t *testing.T) {
	first := ExpandHostPattern("10.0.{1,2}.{1..4}")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ExpandHostPattern("10.0.{1,2}.{1..4}"))
	}
	assert.Len(t, first, 8)
}

func TestExpandHostPattern_Bounded(t *testing.T) {
	// a mistyped range is left unexpanded instead of allocated
	assert.Equal(t, []string{"h{1..999999999}"}, ExpandHostPattern("h{1..999999999}"))
	assert.Equal(t, []string{"h{-9223372036854775808..9223372036854775807}"},
		ExpandHostPattern("h{-9223372036854775808..9223372036854775807}"))

	// each range fits, the product does not
	hosts := ExpandHostPattern("{1..1000}.{1..1000}")
	assert.Len(t, hosts, MaxHosts)
	assert.Equal(t, "1.1", hosts[0])

	assert.Len(t, ExpandHostPattern("h{1..1024}"), MaxHosts)
}

func TestCountHosts(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		want     int
		ok       bool
	}{
		{"empty", nil, 0, true},
		{"plain and range", []string{"a", "b{1..3}"}, 4, true},
		{"blank patterns skipped", []string{" ", "a"}, 1, true},
		{"exactly the limit", []string{"h{1..1024}"}, MaxHosts, true},
		{"limit across patterns", []string{"h{1..1024}", "extra"}, MaxHosts + 1, false},
		{"range too wide", []string{"h{1..999999999}"}, 1, false},
		{"product too large", []string{"{1..1000}.{1..1000}"}, MaxHosts + 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := CountHosts(tt.patterns)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestExpandHosts(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		port     int
		expected []string
	}{
		{
			name:     "default port appended",
			patterns: []string{"127.0.0.{1..3}"},
			port:     9000,
			expected: []string{"127.0.0.1:9000", "127.0.0.2:9000", "127.0.0.3:9000"},
		},
		{
			name:     "explicit port kept",
			patterns: []string{"node{1,2}:7000"},
			port:     9000,
			expected: []string{"node1:7000", "node2:7000"},
		},
		{
			name:     "multiple patterns keep order and duplicates",
			patterns: []string{"b", "a", "b"},
			port:     9000,
			expected: []string{"b:9000", "a:9000", "b:9000"},
		},
		{
			name:     "ipv6 literal bracketed",
			patterns: []string{"::1"},
			port:     9000,
			expected: []string{"[::1]:9000"},
		},
		{
			name:     "bracketed ipv6 without port",
			patterns: []string{"[::1]"},
			port:     9000,
			expected: []string{"[::1]:9000"},
		},
		{
			name:     "zero port leaves hosts alone",
			patterns: []string{"h{1,2}"},
			port:     0,
			expected: []string{"h1", "h2"},
		},
		{
			name:     "blank patterns skipped",
			patterns: []string{" ", "h"},
			port:     9000,
			expected: []string{"h:9000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandHosts(tt.patterns, tt.port))
		})
	}
}
