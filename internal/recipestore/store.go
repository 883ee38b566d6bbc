package recipestore

import (
	"context"
	"fmt"

	"github.com/roach88/myrecipes/internal/kv"
	"github.com/roach88/myrecipes/internal/recipe"
)

// DefaultKey is the storage key the collection lives under.
const DefaultKey = "customrecipes"

// Store reads and writes the recipe collection under one key.
type Store struct {
	medium kv.Medium
	key    string
}

// New returns a Store over medium using key. An empty key means DefaultKey.
func New(medium kv.Medium, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{medium: medium, key: key}
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// Load returns the stored collection.
//
// An absent key yields an empty collection and a nil error. A value that
// fails to decode yields an empty collection together with a
// *CorruptDataError, so callers that only log can keep going with the
// empty result. Medium failures return a *PersistenceError.
func (s *Store) Load(ctx context.Context) (recipe.Collection, error) {
	raw, found, err := s.medium.Get(ctx, s.key)
	if err != nil {
		return recipe.Collection{}, &PersistenceError{Op: "load", Key: s.key, Err: err}
	}
	if !found {
		return recipe.Collection{}, nil
	}

	c, err := recipe.Decode(raw)
	if err != nil {
		return recipe.Collection{}, &CorruptDataError{Key: s.key, Err: err}
	}
	return c, nil
}

// ReplaceAll overwrites the stored collection with c.
// On error the stored value is whatever the medium left; callers must not
// assume the write happened.
func (s *Store) ReplaceAll(ctx context.Context, c recipe.Collection) error {
	encoded, err := c.Encode()
	if err != nil {
		return fmt.Errorf("replace recipes: %w", err)
	}
	if err := s.medium.Set(ctx, s.key, encoded); err != nil {
		return &PersistenceError{Op: "replace", Key: s.key, Err: err}
	}
	return nil
}

// DeleteAt removes the record at index and returns the resulting collection.
//
// Out of range returns the loaded collection unchanged with an
// *IndexOutOfRangeError; nothing is written. Corrupt stored data is never
// overwritten: DeleteAt fails with the *CorruptDataError instead.
//
// Not atomic: a concurrent writer between the load and the write is lost.
func (s *Store) DeleteAt(ctx context.Context, index int) (recipe.Collection, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return c, fmt.Errorf("delete recipe %d: %w", index, err)
	}
	if !c.InRange(index) {
		return c, fmt.Errorf("delete recipe: %w", &IndexOutOfRangeError{Index: index, Len: c.Len()})
	}

	next := c.Without(index)
	if err := s.ReplaceAll(ctx, next); err != nil {
		return c, fmt.Errorf("delete recipe %d: %w", index, err)
	}
	return next, nil
}

// Get returns the record at index.
func (s *Store) Get(ctx context.Context, index int) (recipe.Recipe, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("get recipe %d: %w", index, err)
	}
	if !c.InRange(index) {
		return recipe.Recipe{}, fmt.Errorf("get recipe: %w", &IndexOutOfRangeError{Index: index, Len: c.Len()})
	}
	return c[index], nil
}

// Clear removes the key. A later Load returns an empty collection.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.medium.Delete(ctx, s.key); err != nil {
		return &PersistenceError{Op: "clear", Key: s.key, Err: err}
	}
	return nil
}

// Revision returns the medium's write counter for the key, or 0 when the
// medium does not track revisions.
func (s *Store) Revision(ctx context.Context) (int64, error) {
	r, ok := s.medium.(kv.Revisioner)
	if !ok {
		return 0, nil
	}
	rev, err := r.Revision(ctx, s.key)
	if err != nil {
		return 0, &PersistenceError{Op: "load", Key: s.key, Err: err}
	}
	return rev, nil
}
