package activation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/myrecipes/internal/testutil"
)

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestWatcher_ActivatesOnStartAndChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.db")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	activations := make(chan struct{}, 10)
	var count atomic.Int32
	w := NewWatcher(path, func(ctx context.Context) {
		count.Add(1)
		activations <- struct{}{}
	}, WithDebounce(20*time.Millisecond), WithLogger(testutil.NewLogRecorder().Logger()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	waitFor(t, activations, "initial activation")

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	waitFor(t, activations, "change activation")

	cancel()
	err := <-done
	assert.True(t, errors.Is(err, context.Canceled))
	assert.GreaterOrEqual(t, count.Load(), int32(2))
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recipes.db")

	activations := make(chan struct{}, 10)
	w := NewWatcher(path, func(ctx context.Context) {
		activations <- struct{}{}
	}, WithDebounce(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	waitFor(t, activations, "initial activation")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case <-activations:
		t.Fatal("unrelated file triggered activation")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := NewWatcher("/nonexistent/dir/recipes.db", func(context.Context) {})
	err := w.Run(context.Background())
	assert.Error(t, err)
}

func TestRelevant(t *testing.T) {
	w := NewWatcher("/data/recipes.db", nil)

	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "/data/recipes.db", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/data/recipes.db-wal", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/data/recipes.db-shm", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/data/recipes.db", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/data/other.db", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, w.relevant(tt.ev), "%s %s", tt.ev.Name, tt.ev.Op)
	}
}
