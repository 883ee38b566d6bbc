// Package kv provides the persistent key-value medium that recipe
// collections are stored in.
//
// A Medium maps string keys to string values. Two implementations exist:
//   - Store: SQLite-backed, durable across process restarts
//   - Memory: process-local, used by tests and embedders
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// The busy timeout is the only timeout in the storage path. Callers above
// this package impose none.
//
// Every write bumps a per-key logical revision (seq). Revisions are never
// derived from wall-clock time.
package kv
