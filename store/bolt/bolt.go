// Package bolt provides a persistent KVStore implementation backed by a
// bbolt database file. It satisfies the same interface family as the
// in-memory store, so extensions cannot tell the difference. Use CacheWrap
// to stage changes and write them in a single atomic bolt transaction.
package bolt

import (
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	paysplit "github.com/v-stickykeys/paysplit"
	"github.com/v-stickykeys/paysplit/errors"
	"github.com/v-stickykeys/paysplit/store"
)

// bucketState holds all engine state. A single bucket is enough since keys
// are already namespaced by their extension prefixes.
var bucketState = []byte("state")

// Store is a bbolt backed KVStore. Each read runs in its own View
// transaction. Direct writes run in their own Update transaction; prefer
// staging writes in a CacheWrap so they commit atomically.
type Store struct {
	db *bbolt.DB
}

var _ paysplit.KVStore = (*Store)(nil)
var _ paysplit.CacheableKVStore = (*Store)(nil)

// Open opens or creates the bolt database at dbPath, creating the parent
// directory if it does not exist.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, errors.Wrap(err, "create directory")
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open bolt db")
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create bucket")
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns nil iff key doesn't exist.
func (s *Store) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if raw := tx.Bucket(bucketState).Get(key); raw != nil {
			value = append([]byte(nil), raw...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return value, nil
}

// Has checks if a key exists.
func (s *Store) Has(key []byte) (bool, error) {
	raw, err := s.Get(key)
	return raw != nil, err
}

// Set sets the key in its own write transaction.
func (s *Store) Set(key, value []byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketState).Put(key, value)
	})
	return errors.Wrap(err, "bolt set")
}

// Delete deletes the key in its own write transaction.
func (s *Store) Delete(key []byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketState).Delete(key)
	})
	return errors.Wrap(err, "bolt delete")
}

// Iterator over a domain of keys in ascending order. The snapshot is
// materialized upfront, so writes during iteration are safe.
func (s *Store) Iterator(start, end []byte) (paysplit.Iterator, error) {
	models, err := s.snapshot(start, end)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

// ReverseIterator over a domain of keys in descending order. Bounds follow
// the ascending convention; only the traversal order is reversed.
func (s *Store) ReverseIterator(start, end []byte) (paysplit.Iterator, error) {
	models, err := s.snapshot(start, end)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return store.NewSliceIterator(models), nil
}

func (s *Store) snapshot(start, end []byte) ([]store.Model, error) {
	var models []store.Model
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketState).Cursor()
		var k, v []byte
		if start == nil {
			k, v = c.First()
		} else {
			k, v = c.Seek(start)
		}
		for ; k != nil; k, v = c.Next() {
			if end != nil && string(k) >= string(end) {
				break
			}
			models = append(models, store.Model{
				Key:   append([]byte(nil), k...),
				Value: append([]byte(nil), v...),
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return models, nil
}

// CacheWrap stages changes in memory. Write commits them in one atomic
// bolt transaction.
func (s *Store) CacheWrap() paysplit.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, &batch{db: s.db}, nil)
}

// batch collects operations and applies them in a single Update
// transaction.
type batch struct {
	db  *bbolt.DB
	ops []store.Op
}

var _ paysplit.Batch = (*batch)(nil)

func (b *batch) Set(key, value []byte) error {
	b.ops = append(b.ops, store.SetOp(key, value))
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, store.DelOp(key))
	return nil
}

// Write applies all staged operations atomically and resets the batch.
func (b *batch) Write() error {
	err := b.db.Update(func(tx *bbolt.Tx) error {
		w := bucketWriter{bucket: tx.Bucket(bucketState)}
		for _, op := range b.ops {
			if err := op.Apply(w); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	b.ops = nil
	return nil
}

// bucketWriter adapts a bolt bucket to the SetDeleter interface.
type bucketWriter struct {
	bucket *bbolt.Bucket
}

func (w bucketWriter) Set(key, value []byte) error {
	return w.bucket.Put(key, value)
}

func (w bucketWriter) Delete(key []byte) error {
	return w.bucket.Delete(key)
}
