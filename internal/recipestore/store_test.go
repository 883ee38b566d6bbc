package recipestore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/myrecipes/internal/kv"
	"github.com/roach88/myrecipes/internal/recipe"
	"github.com/roach88/myrecipes/internal/testutil"
)

func recipes(n int) recipe.Collection {
	c := make(recipe.Collection, n)
	for i := range c {
		c[i] = recipe.Recipe{Title: fmt.Sprintf("Recipe %d", i), Description: fmt.Sprintf("Description %d", i)}
	}
	return c
}

func TestNew_DefaultKey(t *testing.T) {
	s := New(kv.NewMemory(), "")
	assert.Equal(t, "customrecipes", s.Key())
	assert.Equal(t, "mine", New(kv.NewMemory(), "mine").Key())
}

func TestLoad_AbsentKeyIsEmpty(t *testing.T) {
	s := New(kv.NewMemory(), "")

	c, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
}

func TestReplaceAll_RoundTrip(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		c    recipe.Collection
	}{
		{"empty", recipe.Collection{}},
		{"one", recipes(1)},
		{"many", recipes(7)},
		{"with image and extra", recipe.Collection{{
			Title:       "Soup",
			Description: strings.Repeat("A", 60),
			Image:       "content://media/1",
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(kv.NewMemory(), "")
			require.NoError(t, s.ReplaceAll(ctx, tt.c))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.True(t, tt.c.Equal(got))
		})
	}
}

func TestReplaceAll_NilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemory()
	s := New(m, "")

	require.NoError(t, s.ReplaceAll(ctx, nil))

	raw, found, err := m.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[]", raw)
}

func TestLoad_CorruptData(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemory()
	require.NoError(t, m.Set(ctx, DefaultKey, `{not json`))
	s := New(m, "")

	c, err := s.Load(ctx)
	require.Error(t, err)
	assert.True(t, IsCorruptData(err))
	assert.False(t, IsPersistence(err))
	assert.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
	assert.Contains(t, err.Error(), `corrupt recipe data under "customrecipes"`)
}

func TestLoad_PersistenceError(t *testing.T) {
	m := testutil.NewFaultyMedium(nil)
	boom := errors.New("disk on fire")
	m.FailGet(boom)
	s := New(m, "")

	c, err := s.Load(context.Background())
	require.Error(t, err)
	assert.True(t, IsPersistence(err))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())
}

func TestReplaceAll_PersistenceError(t *testing.T) {
	ctx := context.Background()
	m := testutil.NewFaultyMedium(nil)
	s := New(m, "")
	require.NoError(t, s.ReplaceAll(ctx, recipes(2)))

	m.FailSet(errors.New("read-only"))
	err := s.ReplaceAll(ctx, recipes(5))
	require.Error(t, err)
	assert.True(t, IsPersistence(err))

	var pe *PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "replace", pe.Op)

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
}

func TestDeleteAt_EveryIndex(t *testing.T) {
	ctx := context.Background()
	original := recipes(4)

	for i := 0; i < original.Len(); i++ {
		t.Run(fmt.Sprintf("index_%d", i), func(t *testing.T) {
			s := New(kv.NewMemory(), "")
			require.NoError(t, s.ReplaceAll(ctx, original))

			got, err := s.DeleteAt(ctx, i)
			require.NoError(t, err)
			require.Equal(t, original.Len()-1, got.Len())

			var want recipe.Collection
			want = append(want, original[:i]...)
			want = append(want, original[i+1:]...)
			assert.True(t, want.Equal(got))

			stored, err := s.Load(ctx)
			require.NoError(t, err)
			assert.True(t, stored.Equal(got), "stored and returned collections diverged")
		})
	}
}

func TestDeleteAt_SoupScenario(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemory(), "")
	require.NoError(t, s.ReplaceAll(ctx, recipe.Collection{
		{Title: "Soup", Description: strings.Repeat("A", 60)},
	}))

	got, err := s.DeleteAt(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())

	reloaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Len())
}

func TestDeleteAt_TwoRecordsRemovesFirst(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemory(), "")
	require.NoError(t, s.ReplaceAll(ctx, recipe.Collection{
		{Title: "First", Description: "1"},
		{Title: "Second", Description: "2"},
	}))

	got, err := s.DeleteAt(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "Second", got[0].Title)
}

func TestDeleteAt_OutOfRange(t *testing.T) {
	ctx := context.Background()

	for _, index := range []int{-1, 2, 100} {
		t.Run(fmt.Sprintf("index_%d", index), func(t *testing.T) {
			m := testutil.NewFaultyMedium(nil)
			s := New(m, "")
			require.NoError(t, s.ReplaceAll(ctx, recipes(2)))
			writes := m.Sets()

			got, err := s.DeleteAt(ctx, index)
			require.Error(t, err)
			assert.True(t, IsIndexOutOfRange(err))
			assert.True(t, recipes(2).Equal(got), "collection must be unchanged")
			assert.Equal(t, writes, m.Sets(), "out of range delete must not write")

			var ie *IndexOutOfRangeError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, index, ie.Index)
			assert.Equal(t, 2, ie.Len)
		})
	}
}

func TestDeleteAt_EmptyStore(t *testing.T) {
	s := New(kv.NewMemory(), "")

	got, err := s.DeleteAt(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, IsIndexOutOfRange(err))
	assert.Equal(t, 0, got.Len())
}

func TestDeleteAt_CorruptDataIsNotOverwritten(t *testing.T) {
	ctx := context.Background()
	m := kv.NewMemory()
	require.NoError(t, m.Set(ctx, DefaultKey, `[{"title":`))
	s := New(m, "")

	_, err := s.DeleteAt(ctx, 0)
	require.Error(t, err)
	assert.True(t, IsCorruptData(err))

	raw, _, err := m.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"title":`, raw)
}

func TestDeleteAt_WriteFailureReturnsLoaded(t *testing.T) {
	ctx := context.Background()
	m := testutil.NewFaultyMedium(nil)
	s := New(m, "")
	require.NoError(t, s.ReplaceAll(ctx, recipes(3)))

	m.FailSet(errors.New("quota"))
	got, err := s.DeleteAt(ctx, 1)
	require.Error(t, err)
	assert.True(t, IsPersistence(err))
	assert.Equal(t, 3, got.Len())
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemory(), "")
	require.NoError(t, s.ReplaceAll(ctx, recipes(3)))

	r, err := s.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Recipe 2", r.Title)

	_, err = s.Get(ctx, 3)
	assert.True(t, IsIndexOutOfRange(err))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemory(), "")
	require.NoError(t, s.ReplaceAll(ctx, recipes(3)))

	require.NoError(t, s.Clear(ctx))

	c, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestRevision(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemory(), "")

	rev, err := s.Revision(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rev)

	require.NoError(t, s.ReplaceAll(ctx, recipes(1)))
	_, err = s.DeleteAt(ctx, 0)
	require.NoError(t, err)

	rev, err = s.Revision(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rev)
}

func TestStore_SQLiteMedium(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "recipes.db")

	db, err := kv.Open(path)
	require.NoError(t, err)
	s := New(db, "")
	require.NoError(t, s.ReplaceAll(ctx, recipes(3)))
	_, err = s.DeleteAt(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := kv.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := New(reopened, "").Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "Recipe 0", got[0].Title)
	assert.Equal(t, "Recipe 2", got[1].Title)
}
