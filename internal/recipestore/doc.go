// Package recipestore is the accessor for the recipe collection held under a
// single key of a kv.Medium.
//
// The whole collection is one JSON array. ReplaceAll is the only write
// primitive; DeleteAt is load, remove, ReplaceAll. Nothing here locks: two
// callers racing DeleteAt on the same key can lose an update. The store is
// meant for one active consumer at a time.
//
// # Errors
//
//   - CorruptDataError: the stored value does not decode
//   - PersistenceError: the medium failed a read or write
//   - IndexOutOfRangeError: an index outside [0, len)
//
// An absent key is an empty collection, never an error.
package recipestore
