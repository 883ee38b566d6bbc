package kv

import (
	"context"
	"sync"
)

// Memory is a process-local Medium.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
	seqs   map[string]int64
	closed bool
}

var (
	_ Medium     = (*Memory)(nil)
	_ Revisioner = (*Memory)(nil)
)

// NewMemory returns an empty in-memory medium.
func NewMemory() *Memory {
	return &Memory{
		values: make(map[string]string),
		seqs:   make(map[string]int64),
	}
}

// Get returns the value stored under key.
func (m *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set overwrites the value stored under key and bumps its revision.
func (m *Memory) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.values[key] = value
	m.seqs[key]++
	return nil
}

// Delete removes key.
func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.values, key)
	delete(m.seqs, key)
	return nil
}

// Revision returns the write counter for key, or 0 if the key is absent.
func (m *Memory) Revision(ctx context.Context, key string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrClosed
	}
	return m.seqs[key], nil
}

// Close marks the medium closed. Later calls return ErrClosed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
