package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/premkumr/ybmetrics/internal/monitor"
	"github.com/premkumr/ybmetrics/internal/util"
)

// HostMetricsCheck fetches one tablet server's metrics endpoint and counts
// the tablets it reports.
type HostMetricsCheck struct {
	Host    string
	Fetcher monitor.Fetcher
	Filter  monitor.Filter

	Latency time.Duration // Populated after Run()
}

func (c *HostMetricsCheck) Name() string     { return "host_" + c.Host }
func (c *HostMetricsCheck) Category() string { return CategoryHosts }

func (c *HostMetricsCheck) Run(ctx context.Context) CheckResult {
	start := time.Now()
	docs, err := c.Fetcher.Fetch(ctx, c.Host)
	c.Latency = time.Since(start)

	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s: %v", c.Host, err),
			Suggestion: fmt.Sprintf("Check that a tablet server is listening at %s", monitor.MetricsURL(c.Host)),
		}
	}

	tablets := 0
	for _, doc := range docs {
		if doc.Type == monitor.TabletType {
			tablets++
		}
	}
	leaders := len(monitor.Normalize(docs, c.Host, c.Filter))

	if tablets == 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s: reachable but reports no tablets", c.Host),
			Suggestion: "The host may be a master, or the cluster has no user tables yet",
		}
	}

	return CheckResult{
		Name:   c.Name(),
		Status: StatusPass,
		Message: fmt.Sprintf("%s: %s, %s (%s)", c.Host,
			util.CountNoun(tablets, "tablet", "tablets"),
			util.CountNoun(leaders, "leader", "leaders"),
			c.Latency.Round(time.Millisecond)),
	}
}

func (c *HostMetricsCheck) Fix() error { return nil }

// NewHostsChecks creates a metrics check for every expanded host.
func NewHostsChecks(hosts []string, fetcher monitor.Fetcher, filter monitor.Filter) []Check {
	checks := make([]Check, 0, len(hosts))
	for _, h := range hosts {
		checks = append(checks, &HostMetricsCheck{Host: h, Fetcher: fetcher, Filter: filter})
	}
	return checks
}
