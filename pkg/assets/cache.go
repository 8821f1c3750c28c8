package assets

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Cache is a persistent byte store keyed by asset reference.
type Cache struct {
	db *badger.DB
}

// OpenCache opens (or creates) a cache directory at path.
func OpenCache(path string) (*Cache, error) {
	opts := badger.DefaultOptions(path)
	// Badger is chatty at info level.
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening asset cache %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

// OpenMemoryCache opens a cache that lives only as long as the process.
func OpenMemoryCache() (*Cache, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("opening in-memory asset cache: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the bytes stored under key. A miss is (nil, false, nil).
func (c *Cache) Get(key string) ([]byte, bool, error) {
	var val []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (c *Cache) Put(key string, val []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), val)
	})
}

// PutBatch stores many entries in one write batch.
func (c *Cache) PutBatch(entries map[string][]byte) error {
	wb := c.db.NewWriteBatch()
	defer wb.Cancel()

	for k, v := range entries {
		if err := wb.Set([]byte(k), v); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// Keys lists every cached reference.
func (c *Cache) Keys() ([]string, error) {
	var keys []string
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	return keys, err
}
