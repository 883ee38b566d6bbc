// Package testutil holds fakes shared by package tests: a fault-injecting
// kv.Medium, a slog handler that records log entries, and deterministic
// record ID generators.
package testutil
