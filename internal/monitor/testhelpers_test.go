package monitor

import (
	"context"
	"fmt"
	"time"
)

func leader(table, host string, metrics map[string]float64) Entity {
	m := map[string]float64{LeaderMetric: 1}
	for k, v := range metrics {
		m[k] = v
	}
	return NewEntity("ns", table, host, m)
}

// fakeFetcher serves canned documents per host. Hosts listed in down fail.
type fakeFetcher struct {
	docs  map[string][]Document
	down  map[string]bool
	calls []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{docs: make(map[string][]Document), down: make(map[string]bool)}
}

func (f *fakeFetcher) Fetch(ctx context.Context, host string) ([]Document, error) {
	f.calls = append(f.calls, host)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.down[host] {
		return nil, fmt.Errorf("dial tcp %s: connection refused", host)
	}
	return f.docs[host], nil
}

func tabletDoc(id, ns, table string, metrics ...Metric) Document {
	return Document{
		Type:       TabletType,
		ID:         id,
		Attributes: Attributes{NamespaceName: ns, TableName: table},
		Metrics:    metrics,
	}
}

func num(name string, v float64) Metric {
	return Metric{Name: name, Value: []byte(fmt.Sprintf("%v", v))}
}

func leaderMetric() Metric {
	return num(LeaderMetric, 1)
}

// recordingDisplay captures shown tables and counts waits.
type recordingDisplay struct {
	headers []string
	tables  []*Table
	waits   int
	onWait  func(n int)
}

func (d *recordingDisplay) Show(header string, t *Table) error {
	d.headers = append(d.headers, header)
	d.tables = append(d.tables, t)
	return nil
}

func (d *recordingDisplay) Wait(ctx context.Context, _ time.Duration) error {
	d.waits++
	if d.onWait != nil {
		d.onWait(d.waits)
	}
	return ctx.Err()
}
