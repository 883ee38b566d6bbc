package authoring

import (
	"context"
	"errors"

	"github.com/roach88/myrecipes/internal/recipe"
)

// ErrNoInput is returned by a Source that has nothing to author.
var ErrNoInput = errors.New("authoring: no recipe input")

// Source supplies the content of a new or edited record. A form, a file
// or command-line flags are all sources.
type Source interface {
	NewRecipe(ctx context.Context) (recipe.Recipe, error)
	EditRecipe(ctx context.Context, current recipe.Recipe) (recipe.Recipe, error)
}

// Patch changes selected fields of a record. Nil fields are left alone.
type Patch struct {
	Title       *string
	Description *string
	Image       *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Image == nil
}

// Apply returns r with the patch applied.
func (p Patch) Apply(r recipe.Recipe) recipe.Recipe {
	out := r.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Image != nil {
		out.Image = *p.Image
	}
	return out
}

// StaticSource returns a fixed record for adds and applies a Patch for edits.
type StaticSource struct {
	Recipe *recipe.Recipe
	Patch  Patch
}

// NewRecipe returns the configured record.
func (s StaticSource) NewRecipe(ctx context.Context) (recipe.Recipe, error) {
	if s.Recipe == nil {
		return recipe.Recipe{}, ErrNoInput
	}
	return s.Recipe.Clone(), nil
}

// EditRecipe applies the patch to current.
func (s StaticSource) EditRecipe(ctx context.Context, current recipe.Recipe) (recipe.Recipe, error) {
	if s.Patch.Empty() {
		return recipe.Recipe{}, ErrNoInput
	}
	return s.Patch.Apply(current), nil
}
