package monitor

import (
	"encoding/json"
	"strconv"
	"time"
)

// LeaderMetric is non-zero on the tablet peer currently acting as raft leader.
const LeaderMetric = "is_raft_leader"

// TabletType marks a per-tablet document; other types (table, server,
// cluster) are aggregates.
const TabletType = "tablet"

// Entity is one tablet as reported by one tablet server.
type Entity struct {
	Namespace string             `json:"namespace_name"`
	Table     string             `json:"table_name"`
	Host      string             `json:"hostname"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewEntity builds an Entity. A nil metrics map becomes an empty one.
func NewEntity(namespace, table, host string, metrics map[string]float64) Entity {
	if metrics == nil {
		metrics = make(map[string]float64)
	}
	return Entity{
		Namespace: namespace,
		Table:     table,
		Host:      host,
		Metrics:   metrics,
	}
}

// IsLeader reports whether the entity carries a non-zero is_raft_leader.
func (e Entity) IsLeader() bool {
	return e.Metrics[LeaderMetric] != 0
}

// withMetrics returns a copy of e carrying metrics instead of its own.
func (e Entity) withMetrics(metrics map[string]float64) Entity {
	return NewEntity(e.Namespace, e.Table, e.Host, metrics)
}

// clone returns a deep copy of e.
func (e Entity) clone() Entity {
	metrics := make(map[string]float64, len(e.Metrics))
	for k, v := range e.Metrics {
		metrics[k] = v
	}
	return e.withMetrics(metrics)
}

// Snapshot is one complete collection pass.
type Snapshot struct {
	Fingerprint string            `json:"fingerprint"`
	Timestamp   time.Time         `json:"timestamp"`
	Entities    map[string]Entity `json:"entities"`
}

// Document is one entry of a tablet server's /metrics response.
type Document struct {
	Type       string     `json:"type"`
	ID         string     `json:"id"`
	Attributes Attributes `json:"attributes"`
	Metrics    []Metric   `json:"metrics"`
}

// Attributes identifies the table a document belongs to.
type Attributes struct {
	NamespaceName string `json:"namespace_name"`
	TableName     string `json:"table_name"`
}

// Metric is a single named value. Histograms carry no scalar value and
// decode with an empty Value.
type Metric struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Float returns the metric as a number. Booleans map to 0/1; anything else
// (objects, strings, absent) is not a number.
func (m Metric) Float() (float64, bool) {
	switch string(m.Value) {
	case "":
		return 0, false
	case "true":
		return 1, true
	case "false":
		return 0, true
	}
	v, err := strconv.ParseFloat(string(m.Value), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
