package store

import (
	"context"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v3"
)

// badgerStore implements Store over one Badger instance — an ordered LSM
// key-value engine standing in for the original implementation's
// BerkeleyDB (bsddb3), which the teacher's own go.mod already carried
// transitively via its IPFS storage stack.
type badgerStore struct {
	db *badger.DB
}

// OpenBadger opens (creating if absent) a Badger instance rooted at
// <dataDir>/<table>, one physical directory per logical Table — the Go
// analogue of data.py's DB opening one *.db file per table.
func OpenBadger(dataDir string, table Table) (Store, error) {
	dir := filepath.Join(dataDir, string(table))
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &badgerStore{db: db}, nil
}

func (s *badgerStore) Exists(ctx context.Context, key []byte) (bool, error) {
	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

func (s *badgerStore) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	var value []byte
	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(v []byte) error {
			value = append([]byte(nil), v...)
			return nil
		})
	})
	return value, found, err
}

func (s *badgerStore) Put(ctx context.Context, key, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (s *badgerStore) IterateFromPrefix(ctx context.Context, prefix []byte, fn func(key, value []byte) (bool, error)) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.Valid(); it.Next() {
			item := it.Item()
			key := append([]byte(nil), item.Key()...)
			var value []byte
			if err := item.Value(func(v []byte) error {
				value = append([]byte(nil), v...)
				return nil
			}); err != nil {
				return err
			}
			cont, err := fn(key, value)
			if err != nil {
				return err
			}
			if !cont {
				return nil
			}
		}
		return nil
	})
}

func (s *badgerStore) Sync() error {
	return s.db.Sync()
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}
