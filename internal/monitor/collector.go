package monitor

import (
	"context"
	"sort"
	"time"

	"github.com/premkumr/ybmetrics/internal/logger"
)

// Filter names the documents dropped during normalization.
type Filter struct {
	SystemNamespace string
	TestTable       string
}

// DefaultFilter skips the system namespace and the write/read self-test table.
var DefaultFilter = Filter{
	SystemNamespace: "system",
	TestTable:       "write_read_test",
}

// Collector polls tablet servers one at a time and normalizes their
// documents into leader-only entity maps.
type Collector struct {
	fetcher     Fetcher
	history     *History
	filter      Filter
	log         logger.Logger
	now         func() time.Time
	unreachable map[string]bool
}

// NewCollector creates a collector that offers its results to history.
// history may be nil for callers that only use CollectAll.
func NewCollector(fetcher Fetcher, history *History, log logger.Logger) *Collector {
	if log == nil {
		log = logger.Noop()
	}
	return &Collector{
		fetcher:     fetcher,
		history:     history,
		filter:      DefaultFilter,
		log:         log,
		now:         time.Now,
		unreachable: make(map[string]bool),
	}
}

// SetFilter replaces the normalization filter.
func (c *Collector) SetFilter(f Filter) {
	c.filter = f
}

// Collect gathers one pass over hosts and offers it to the history.
// Returns nil when the pass is identical to the current snapshot.
func (c *Collector) Collect(ctx context.Context, hosts []string) (*Snapshot, error) {
	entities, err := c.CollectAll(ctx, hosts)
	if err != nil {
		return nil, err
	}
	return c.history.Offer(entities, c.now())
}

// CollectAll fetches every host in order and merges the normalized entities.
// Unreachable hosts are skipped; only context cancellation is an error.
// When two hosts report the same tablet id, the first host wins.
func (c *Collector) CollectAll(ctx context.Context, hosts []string) (map[string]Entity, error) {
	entities := make(map[string]Entity)

	for _, host := range hosts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		docs, err := c.fetcher.Fetch(ctx, host)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			c.markDown(host, err)
			continue
		}
		c.markUp(host)

		for id, e := range Normalize(docs, host, c.filter) {
			if prev, dup := entities[id]; dup {
				c.log.Debug("tablet %s reported by %s and %s, keeping %s", id, prev.Host, host, prev.Host)
				continue
			}
			entities[id] = e
		}
	}

	return entities, nil
}

// Unreachable returns the hosts that failed on their most recent fetch, sorted.
func (c *Collector) Unreachable() []string {
	hosts := make([]string, 0, len(c.unreachable))
	for h := range c.unreachable {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)
	return hosts
}

func (c *Collector) markDown(host string, err error) {
	if c.unreachable[host] {
		return
	}
	c.unreachable[host] = true
	c.log.Warn("unable to connect to : [%s]: %v", host, err)
}

func (c *Collector) markUp(host string) {
	if !c.unreachable[host] {
		return
	}
	delete(c.unreachable, host)
	c.log.Info("back online : [%s]", host)
}

// Normalize converts one host's documents into leader tablets keyed by id.
// Only positive metric values are kept.
func Normalize(docs []Document, host string, f Filter) map[string]Entity {
	entities := make(map[string]Entity)

	for _, doc := range docs {
		if doc.Type != TabletType {
			continue
		}
		if doc.Attributes.NamespaceName == f.SystemNamespace || doc.Attributes.TableName == f.TestTable {
			continue
		}
		if _, dup := entities[doc.ID]; dup {
			continue
		}

		metrics := make(map[string]float64)
		for _, m := range doc.Metrics {
			if v, ok := m.Float(); ok && v > 0 {
				metrics[m.Name] = v
			}
		}

		e := NewEntity(doc.Attributes.NamespaceName, doc.Attributes.TableName, host, metrics)
		if !e.IsLeader() {
			continue
		}
		entities[doc.ID] = e
	}

	return entities
}
