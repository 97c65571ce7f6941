package store

import "github.com/iov-one/vault"

// Shorter names for the store types used throughout this package and its
// subpackages. The canonical definitions live in the root package.

type ReadOnlyKVStore = vault.ReadOnlyKVStore
type KVStore = vault.KVStore
type SetDeleter = vault.SetDeleter
type Batch = vault.Batch
type Iterator = vault.Iterator
type CacheableKVStore = vault.CacheableKVStore
type KVCacheWrap = vault.KVCacheWrap
type CommitKVStore = vault.CommitKVStore
type CommitID = vault.CommitID
type Model = vault.Model

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return vault.Pair(key, value)
}
