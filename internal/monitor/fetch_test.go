package monitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMetrics = `[
  {
    "type": "tablet",
    "id": "0123456789abcdef0123456789abcdef",
    "attributes": {"namespace_name": "app", "table_name": "orders"},
    "metrics": [
      {"name": "is_raft_leader", "value": 1},
      {"name": "rocksdb_number_db_seek", "value": 42},
      {"name": "handler_latency", "total_count": 3}
    ]
  },
  {"type": "server", "id": "yb.tabletserver", "attributes": {}, "metrics": []}
]`

func TestMetricsURL(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"127.0.0.1:9000", "http://127.0.0.1:9000/metrics"},
		{"https://node:9000", "https://node:9000/metrics"},
		{"http://node:9000/", "http://node:9000/metrics"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, MetricsURL(tt.host))
		})
	}
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/metrics", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleMetrics))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(time.Second)
	docs, err := f.Fetch(context.Background(), strings.TrimPrefix(srv.URL, "http://"))
	require.NoError(t, err)
	require.Len(t, docs, 2)

	entities := Normalize(docs, "h", DefaultFilter)
	e, ok := entities["0123456789abcdef0123456789abcdef"]
	require.True(t, ok)
	assert.Equal(t, 42.0, e.Metrics["rocksdb_number_db_seek"])
	assert.NotContains(t, e.Metrics, "handler_latency")
}

func TestHTTPFetcher_TLSWithoutVerification(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	docs, err := NewHTTPFetcher(time.Second).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestHTTPFetcher_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non 2xx", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusServiceUnavailable)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"type": "tablet",`))
		}},
		{"wrong shape", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"type": "tablet"}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			docs, err := NewHTTPFetcher(time.Second).Fetch(context.Background(), srv.URL)
			assert.Error(t, err)
			assert.Nil(t, docs)
		})
	}
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewHTTPFetcher(50*time.Millisecond).Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestHTTPFetcher_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.Listener.Addr().String()
	srv.Close()

	_, err := NewHTTPFetcher(time.Second).Fetch(context.Background(), addr)
	assert.Error(t, err)
}
