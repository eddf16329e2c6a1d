package store

import paysplit "github.com/v-stickykeys/paysplit"

// Move references for all storage types into this package for shorter
// names everywhere.

type KVStore = paysplit.KVStore
type ReadOnlyKVStore = paysplit.ReadOnlyKVStore
type Iterator = paysplit.Iterator
type SetDeleter = paysplit.SetDeleter
type Batch = paysplit.Batch
type CacheableKVStore = paysplit.CacheableKVStore
type KVCacheWrap = paysplit.KVCacheWrap

// Model groups a key-value pair, the unit handled by slice iterators.
type Model struct {
	Key   []byte
	Value []byte
}
