package config

import (
	"net"
	"strconv"
	"strings"
)

// MaxHosts bounds how many hosts the configured patterns may expand to.
const MaxHosts = 1024

// ExpandHostPattern expands a brace pattern into concrete host strings.
//
//	127.0.0.{1..3} -> 127.0.0.1, 127.0.0.2, 127.0.0.3
//	127.0.0.{1,3}  -> 127.0.0.1, 127.0.0.3
//	{a,b}.{1,2}    -> a.1, a.2, b.1, b.2
//
// Only the first '{' and first '}' delimit a group, so nested groups are not
// supported. A pattern with no well-formed group is returned unchanged.
// Ranges whose start is above their end count down: {5..2} -> 5, 4, 3, 2.
// Expansion stops after MaxHosts results; Validate rejects such patterns.
func ExpandHostPattern(pattern string) []string {
	var out []string
	expand(pattern, func(host string) bool {
		out = append(out, host)
		return len(out) < MaxHosts
	})
	return out
}

// CountHosts reports how many non-empty hosts patterns expand to. It stops
// counting and returns false once the total exceeds MaxHosts or a single
// range spans more than MaxHosts values.
func CountHosts(patterns []string) (int, bool) {
	n := 0
	for _, p := range patterns {
		complete := expand(strings.TrimSpace(p), func(host string) bool {
			if host != "" {
				n++
			}
			return n <= MaxHosts
		})
		if !complete {
			return n, false
		}
	}
	return n, true
}

// expand calls emit for each expansion of pattern, in order, until emit
// returns false. A range too wide to expand is emitted as the unexpanded
// pattern. It returns false if expansion stopped early.
func expand(pattern string, emit func(string) bool) bool {
	start, end, ok := braceGroup(pattern)
	if !ok {
		return emit(pattern)
	}

	items, ok := braceItems(pattern[start+1 : end])
	if !ok {
		emit(pattern)
		return false
	}

	before, after := pattern[:start], pattern[end+1:]
	for _, item := range items {
		if !expand(before+item+after, emit) {
			return false
		}
	}
	return true
}

// ExpandHosts expands every pattern in order and appends defaultPort to
// results that carry no port. Duplicates are kept.
func ExpandHosts(patterns []string, defaultPort int) []string {
	var hosts []string
	for _, p := range patterns {
		for _, h := range ExpandHostPattern(strings.TrimSpace(p)) {
			if h == "" {
				continue
			}
			hosts = append(hosts, withPort(h, defaultPort))
		}
	}
	return hosts
}

// braceGroup locates the first '{' and the first '}' in s.
func braceGroup(s string) (start, end int, ok bool) {
	start = strings.IndexByte(s, '{')
	end = strings.IndexByte(s, '}')
	if start < 0 || end < 0 || start > end {
		return 0, 0, false
	}
	return start, end, true
}

// braceItems returns the alternatives inside a brace group. It returns false
// for a numeric range spanning more than MaxHosts values.
func braceItems(inner string) ([]string, bool) {
	parts := strings.Split(inner, ",")
	if len(parts) != 1 || !strings.Contains(inner, "..") {
		return parts, true
	}

	bounds := strings.SplitN(inner, "..", 2)
	lo, errLo := strconv.Atoi(bounds[0])
	hi, errHi := strconv.Atoi(bounds[1])
	if errLo != nil || errHi != nil {
		return parts, true
	}

	step := 1
	span := uint64(hi) - uint64(lo)
	if lo > hi {
		step = -1
		span = uint64(lo) - uint64(hi)
	}
	if span >= MaxHosts {
		return nil, false
	}
	items := make([]string, 0, span+1)
	for n := lo; ; n += step {
		items = append(items, strconv.Itoa(n))
		if n == hi {
			break
		}
	}
	return items, true
}

// withPort appends the default port when host has none.
func withPort(host string, port int) string {
	if port <= 0 {
		return host
	}
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	if strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
		return host + ":" + strconv.Itoa(port)
	}
	// JoinHostPort brackets bare IPv6 literals.
	return net.JoinHostPort(host, strconv.Itoa(port))
}
