package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/premkumr/ybmetrics/internal/config"
	"github.com/premkumr/ybmetrics/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backend struct {
	name string
	open func(t *testing.T, path string) KV
}

func backends() []backend {
	return []backend{
		{"memory", func(t *testing.T, _ string) KV { return NewMemory() }},
		{"bolt", func(t *testing.T, path string) KV {
			kv, err := OpenBolt(path, OpenTimeout)
			require.NoError(t, err)
			return kv
		}},
		{"sqlite", func(t *testing.T, path string) KV {
			kv, err := OpenSQLite(path)
			require.NoError(t, err)
			return kv
		}},
	}
}

func TestKV_RoundTrip(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			kv := b.open(t, filepath.Join(t.TempDir(), "metrics.db"))
			defer kv.Close()

			_, found, err := kv.Get("items")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, kv.Put("items", []byte(`[1]`)))
			v, found, err := kv.Get("items")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, []byte(`[1]`), v)

			require.NoError(t, kv.Put("items", []byte(`[2,3]`)))
			v, _, err = kv.Get("items")
			require.NoError(t, err)
			assert.Equal(t, []byte(`[2,3]`), v, "put overwrites")

			require.NoError(t, kv.Delete("items"))
			_, found, err = kv.Get("items")
			require.NoError(t, err)
			assert.False(t, found)

			assert.NoError(t, kv.Delete("missing"), "deleting a missing key is not an error")
		})
	}
}

func TestKV_ClosedStore(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			kv := b.open(t, filepath.Join(t.TempDir(), "metrics.db"))
			require.NoError(t, kv.Close())

			_, _, err := kv.Get("items")
			assert.ErrorIs(t, err, ErrClosed)
			assert.ErrorIs(t, kv.Put("items", []byte("x")), ErrClosed)
		})
	}
}

func TestKV_SurvivesReopen(t *testing.T) {
	for _, b := range backends()[1:] {
		t.Run(b.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "metrics.db")

			kv := b.open(t, path)
			require.NoError(t, kv.Put("items", []byte("persisted")))
			require.NoError(t, kv.Close())

			kv = b.open(t, path)
			defer kv.Close()
			v, found, err := kv.Get("items")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, []byte("persisted"), v)
		})
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m := NewMemory()
	value := []byte("abc")
	require.NoError(t, m.Put("k", value))
	value[0] = 'X'

	got, _, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[1] = 'Y'
	again, _, _ := m.Get("k")
	assert.Equal(t, []byte("abc"), again)
}

func TestOpenBolt_HeldByAnotherHandle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.db")

	first, err := OpenBolt(path, OpenTimeout)
	require.NoError(t, err)
	defer first.Close()

	start := time.Now()
	_, err = OpenBolt(path, 100*time.Millisecond)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	kv, err := Open(config.BackendBolt, filepath.Join(dir, "a.db"))
	require.NoError(t, err)
	assert.IsType(t, &Bolt{}, kv)
	require.NoError(t, kv.Close())

	kv, err = Open(config.BackendSQLite, filepath.Join(dir, "b.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, kv)
	require.NoError(t, kv.Close())

	_, err = Open("etcd", filepath.Join(dir, "c.db"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestOpen_LockedFileIsStoreError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.db")

	first, err := Open(config.BackendBolt, path)
	require.NoError(t, err)
	defer first.Close()

	_, err = Open(config.BackendBolt, path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrStore))
	assert.Contains(t, err.Error(), "another metrics process")
}

func TestOpen_UnwritableDirectory(t *testing.T) {
	_, err := Open(config.BackendBolt, filepath.Join(t.TempDir(), "missing", "dir", "x.db"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrStore))
}
