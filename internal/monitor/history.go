package monitor

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/premkumr/ybmetrics/internal/errors"
	"github.com/premkumr/ybmetrics/internal/logger"
	"github.com/premkumr/ybmetrics/internal/store"
)

// ItemsKey is the store key holding the retained snapshot list.
const ItemsKey = "items"

// RetainedSnapshots is how many snapshots History keeps (current + previous).
const RetainedSnapshots = 2

// History retains the two most recent distinct snapshots and mirrors them
// to a KV store so they survive restarts. Index 0 is the newest.
type History struct {
	mu    sync.RWMutex
	kv    store.KV
	log   logger.Logger
	items []*Snapshot
}

// NewHistory loads retained snapshots from kv. Stored data that cannot be
// decoded is discarded with a warning; lists longer than two are truncated.
func NewHistory(kv store.KV, log logger.Logger) (*History, error) {
	if log == nil {
		log = logger.Noop()
	}
	h := &History{kv: kv, log: log}

	data, found, err := kv.Get(ItemsKey)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Failed to read retained snapshots",
			"Run 'ybmetrics clean' to reset the store")
	}
	if !found {
		return h, nil
	}

	var items []*Snapshot
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn("discarding unreadable snapshot history: %v", err)
		return h, nil
	}

	for _, s := range items {
		if s == nil {
			continue
		}
		if s.Entities == nil {
			s.Entities = make(map[string]Entity)
		}
		h.items = append(h.items, s)
		if len(h.items) == RetainedSnapshots {
			break
		}
	}

	return h, nil
}

// Current returns the newest snapshot, or nil.
func (h *History) Current() *Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.items) < 1 {
		return nil
	}
	return h.items[0]
}

// Previous returns the snapshot before Current, or nil.
func (h *History) Previous() *Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.items) < 2 {
		return nil
	}
	return h.items[1]
}

// Len returns the number of retained snapshots (0, 1 or 2).
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items)
}

// Offer records entities as the newest snapshot unless they fingerprint the
// same as Current, in which case it returns nil and changes nothing.
// The in-memory history only advances once the store write succeeds.
func (h *History) Offer(entities map[string]Entity, at time.Time) (*Snapshot, error) {
	if entities == nil {
		entities = make(map[string]Entity)
	}
	fp := Fingerprint(entities)

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) > 0 && h.items[0].Fingerprint == fp {
		return nil, nil
	}

	snap := &Snapshot{Fingerprint: fp, Timestamp: at, Entities: entities}

	items := make([]*Snapshot, 0, RetainedSnapshots)
	items = append(items, snap)
	items = append(items, h.items...)
	if len(items) > RetainedSnapshots {
		items = items[:RetainedSnapshots]
	}

	if err := h.persist(items); err != nil {
		return nil, err
	}
	h.items = items
	return snap, nil
}

// Reset drops every retained snapshot.
func (h *History) Reset() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.kv.Delete(ItemsKey); err != nil {
		return errors.WrapWithCode(err, errors.ErrStore,
			"Failed to clear snapshots",
			"Check permissions on the store path")
	}
	h.items = nil
	return nil
}

// persist writes items to the store. Must be called with h.mu held.
func (h *History) persist(items []*Snapshot) error {
	data, err := json.Marshal(items)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrStore,
			"Failed to encode snapshots",
			"This shouldn't happen")
	}
	if err := h.kv.Put(ItemsKey, data); err != nil {
		return errors.WrapWithCode(err, errors.ErrStore,
			"Failed to save snapshots",
			"Check free space and permissions on the store path")
	}
	return nil
}
