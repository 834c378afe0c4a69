package store

import (
	"time"

	"github.com/boltdb/bolt"
)

var boltBucket = []byte("ybmetrics")

// Bolt is a KV backed by a single bolt bucket. Bolt holds an exclusive
// file lock for as long as the database is open.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the bolt file at path, waiting at most
// timeout for another process to release it.
func OpenBolt(path string, timeout time.Duration) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Get(key string) ([]byte, bool, error) {
	var (
		value []byte
		found bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(boltBucket).Get([]byte(key))
		if v != nil {
			// v is only valid for the life of the transaction
			value = append([]byte(nil), v...)
			found = true
		}
		return nil
	})
	if err == bolt.ErrDatabaseNotOpen {
		return nil, false, ErrClosed
	}
	return value, found, err
}

func (b *Bolt) Put(key string, value []byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), value)
	})
	if err == bolt.ErrDatabaseNotOpen {
		return ErrClosed
	}
	return err
}

func (b *Bolt) Delete(key string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Delete([]byte(key))
	})
	if err == bolt.ErrDatabaseNotOpen {
		return ErrClosed
	}
	return err
}

// Close flushes and releases the file lock.
func (b *Bolt) Close() error {
	return b.db.Close()
}
