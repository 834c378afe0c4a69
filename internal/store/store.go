// Package store provides the small key-value persistence layer that lets
// retained snapshots survive process restarts.
package store

import (
	"fmt"
	"time"

	"github.com/premkumr/ybmetrics/internal/config"
	"github.com/premkumr/ybmetrics/internal/errors"
)

// KV is a durable byte-valued key-value store.
type KV interface {
	// Get returns the value for key and whether it exists.
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// OpenTimeout bounds how long Open waits on a file held by another process.
const OpenTimeout = time.Second

// Open opens the configured backend at path.
func Open(backend, path string) (KV, error) {
	var (
		kv  KV
		err error
	)
	switch backend {
	case config.BackendBolt, "":
		kv, err = OpenBolt(path, OpenTimeout)
	case config.BackendSQLite:
		kv, err = OpenSQLite(path)
	default:
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown store backend %q", backend),
			fmt.Sprintf("Supported backends: %s, %s", config.BackendBolt, config.BackendSQLite))
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Unable to open db "+path,
			"Please check if there is another metrics process running")
	}
	return kv, nil
}

// Memory is an in-process KV, used by tests and dry runs.
type Memory struct {
	data   map[string][]byte
	closed bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	if m.closed {
		return nil, false, ErrClosed
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Put(key string, value []byte) error {
	if m.closed {
		return ErrClosed
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(key string) error {
	if m.closed {
		return ErrClosed
	}
	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error {
	m.closed = true
	return nil
}
