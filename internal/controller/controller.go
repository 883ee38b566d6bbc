package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/roach88/myrecipes/internal/recipe"
	"github.com/roach88/myrecipes/internal/recipestore"
)

// RecipeStore is the part of recipestore.Store the controller needs.
type RecipeStore interface {
	Load(ctx context.Context) (recipe.Collection, error)
	DeleteAt(ctx context.Context, index int) (recipe.Collection, error)
}

// EditRequest is handed to the authoring surface for an edit.
type EditRequest struct {
	Record recipe.Recipe
	Index  int
}

// Authoring creates or edits a single record and persists the result.
// The controller only sees the outcome on its next Refresh.
type Authoring interface {
	Add(ctx context.Context) error
	Edit(ctx context.Context, req EditRequest) error
}

// Viewer shows one record read-only.
type Viewer interface {
	View(ctx context.Context, r recipe.Recipe) error
}

// State is the controller lifecycle state.
type State int

const (
	Uninitialized State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostic logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithAuthoring sets the surface RequestAdd and RequestEdit delegate to.
func WithAuthoring(a Authoring) Option {
	return func(c *Controller) { c.authoring = a }
}

// WithViewer sets the surface RequestView delegates to.
func WithViewer(v Viewer) Option {
	return func(c *Controller) { c.viewer = v }
}

// Controller owns the materialized recipe list.
type Controller struct {
	store     RecipeStore
	authoring Authoring
	viewer    Viewer
	logger    *slog.Logger

	// op serializes store-touching operations.
	op sync.Mutex

	mu       sync.RWMutex
	recipes  recipe.Collection
	state    State
	degraded bool
	lastErr  error
}

// New creates a Controller over store.
func New(store RecipeStore, opts ...Option) *Controller {
	c := &Controller{
		store:   store,
		logger:  slog.Default(),
		recipes: recipe.Collection{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Refresh reloads the whole list from the store. Call it every time the
// consuming view becomes active.
func (c *Controller) Refresh(ctx context.Context) {
	c.op.Lock()
	defer c.op.Unlock()

	c.mu.Lock()
	if c.state == Uninitialized {
		c.state = Loading
	}
	c.mu.Unlock()

	loaded, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Error("load recipes failed",
			"error", err,
			"corrupt", recipestore.IsCorruptData(err),
		)
		loaded = recipe.Collection{}
	} else {
		c.logger.Debug("recipes loaded", "count", loaded.Len())
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.recipes = loaded.Clone()
	c.degraded = recipestore.IsCorruptData(err)
	c.lastErr = err
	c.state = Ready
}

// Delete removes the record at index through the store and adopts the
// resulting list. On failure the list is left as it was.
func (c *Controller) Delete(ctx context.Context, index int) {
	c.op.Lock()
	defer c.op.Unlock()

	next, err := c.store.DeleteAt(ctx, index)
	if err != nil {
		c.logger.Error("delete recipe failed",
			"index", index,
			"error", err,
			"out_of_range", recipestore.IsIndexOutOfRange(err),
		)
		c.mu.Lock()
		c.lastErr = err
		if recipestore.IsCorruptData(err) {
			c.degraded = true
		}
		c.mu.Unlock()
		return
	}

	c.logger.Info("recipe deleted", "index", index, "remaining", next.Len())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.recipes = next.Clone()
	c.degraded = false
	c.lastErr = nil
}

// RequestAdd hands control to the authoring surface to create a record.
func (c *Controller) RequestAdd(ctx context.Context) {
	c.op.Lock()
	defer c.op.Unlock()

	if c.authoring == nil {
		c.logger.Warn("add requested without authoring surface")
		c.setLastErr(nil)
		return
	}
	if err := c.authoring.Add(ctx); err != nil {
		c.logger.Error("add recipe failed", "error", err)
		c.setLastErr(err)
		return
	}
	c.setLastErr(nil)
}

// RequestEdit hands the current record at index to the authoring surface.
func (c *Controller) RequestEdit(ctx context.Context, index int) {
	c.op.Lock()
	defer c.op.Unlock()

	r, err := c.recordAt(index)
	if err != nil {
		c.logger.Error("edit recipe failed", "index", index, "error", err)
		c.setLastErr(err)
		return
	}
	if c.authoring == nil {
		c.logger.Warn("edit requested without authoring surface", "index", index)
		c.setLastErr(nil)
		return
	}
	if err := c.authoring.Edit(ctx, EditRequest{Record: r, Index: index}); err != nil {
		c.logger.Error("edit recipe failed", "index", index, "error", err)
		c.setLastErr(err)
		return
	}
	c.setLastErr(nil)
}

// RequestView hands the record at index to the viewer.
func (c *Controller) RequestView(ctx context.Context, index int) {
	c.op.Lock()
	defer c.op.Unlock()

	r, err := c.recordAt(index)
	if err != nil {
		c.logger.Error("view recipe failed", "index", index, "error", err)
		c.setLastErr(err)
		return
	}
	if c.viewer == nil {
		c.logger.Warn("view requested without viewer", "index", index)
		c.setLastErr(nil)
		return
	}
	if err := c.viewer.View(ctx, r); err != nil {
		c.logger.Error("view recipe failed", "index", index, "error", err)
		c.setLastErr(err)
		return
	}
	c.setLastErr(nil)
}

// Recipes returns a copy of the in-memory list.
func (c *Controller) Recipes() recipe.Collection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.recipes.Clone()
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Ready reports whether the first load has finished.
func (c *Controller) Ready() bool {
	return c.State() == Ready
}

// Degraded reports whether the store last found undecodable stored data,
// on a load or a delete. The stored value is left untouched; the next
// clean load or successful delete clears the flag.
func (c *Controller) Degraded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.degraded
}

// LastError returns the failure of the most recent operation, or nil.
func (c *Controller) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

func (c *Controller) recordAt(index int) (recipe.Recipe, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.recipes.InRange(index) {
		return recipe.Recipe{}, &recipestore.IndexOutOfRangeError{Index: index, Len: c.recipes.Len()}
	}
	return c.recipes[index].Clone(), nil
}

func (c *Controller) setLastErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
}
