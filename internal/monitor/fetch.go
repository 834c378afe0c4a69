package monitor

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Fetcher retrieves the raw metric documents of one tablet server.
type Fetcher interface {
	Fetch(ctx context.Context, host string) ([]Document, error)
}

// HTTPFetcher issues GET http://<host>/metrics. Certificate validation is
// disabled so https endpoints with self-signed certs can be polled too.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher whose requests time out after timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // tablet servers use self-signed certs

	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout, Transport: transport},
	}
}

// MetricsURL returns the metrics endpoint for host. Hosts given with an
// explicit scheme are used as-is.
func MetricsURL(host string) string {
	if strings.Contains(host, "://") {
		return strings.TrimSuffix(host, "/") + "/metrics"
	}
	return "http://" + host + "/metrics"
}

// Fetch downloads and decodes every document. The whole body is decoded
// before returning, so a malformed response yields no documents at all.
func (f *HTTPFetcher) Fetch(ctx context.Context, host string) ([]Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, MetricsURL(host), nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("GET %s: %s", req.URL, resp.Status)
	}

	var docs []Document
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", req.URL, err)
	}
	return docs, nil
}
