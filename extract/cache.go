// ABOUTME: Badger-backed cache of LLM extraction answers
// ABOUTME: Keyed by email fingerprint so reruns skip already billed calls
package extract

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v3"
)

// Cache persists raw extraction answers on disk.
type Cache struct {
	db *badger.DB
}

// OpenCache opens (or creates) the cache at dir.
func OpenCache(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open extraction cache: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached answer for a fingerprint, if any.
func (c *Cache) Get(fingerprint string) ([]byte, bool) {
	var value []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(fingerprint))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false
	}
	return value, true
}

// Put stores the answer for a fingerprint.
func (c *Cache) Put(fingerprint string, answer []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(fingerprint), answer)
	})
}
