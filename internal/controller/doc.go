// Package controller holds the in-memory recipe list shown to a consuming
// view and mediates refresh and mutation against a recipe store.
//
// # Lifecycle
//
// State moves Uninitialized → Loading on the first Refresh and Loading →
// Ready when that load finishes, whether it succeeded or fell back to an
// empty list. Later refreshes replace the list silently without passing
// through Loading again.
//
// # Failures
//
// No operation returns an error. Store failures are logged to the injected
// slog.Logger and kept as LastError; load failures leave an empty list,
// delete failures leave the list unchanged.
//
// # Concurrency
//
// Refresh, Delete and the Request* hand-offs are serialized per Controller.
// Accessors never block on an in-flight store call.
package controller
