package testutil

import (
	"context"
	"sync"

	"github.com/roach88/myrecipes/internal/kv"
)

// FaultyMedium wraps a kv.Medium and fails selected operations on demand.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type FaultyMedium struct {
	kv.Medium

	mu        sync.Mutex
	getErr    error
	setErr    error
	deleteErr error
	sets      int
}

// NewFaultyMedium wraps inner. A nil inner uses a fresh kv.Memory.
func NewFaultyMedium(inner kv.Medium) *FaultyMedium {
	if inner == nil {
		inner = kv.NewMemory()
	}
	return &FaultyMedium{Medium: inner}
}

// FailGet makes every Get return err until cleared with nil.
func (f *FaultyMedium) FailGet(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getErr = err
}

// FailSet makes every Set return err until cleared with nil.
func (f *FaultyMedium) FailSet(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setErr = err
}

// FailDelete makes every Delete return err until cleared with nil.
func (f *FaultyMedium) FailDelete(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteErr = err
}

// Sets returns how many Set calls reached the inner medium.
func (f *FaultyMedium) Sets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets
}

func (f *FaultyMedium) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	err := f.getErr
	f.mu.Unlock()
	if err != nil {
		return "", false, err
	}
	return f.Medium.Get(ctx, key)
}

func (f *FaultyMedium) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	err := f.setErr
	if err == nil {
		f.sets++
	}
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Medium.Set(ctx, key, value)
}

func (f *FaultyMedium) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	err := f.deleteErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Medium.Delete(ctx, key)
}
