package authoring

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/myrecipes/internal/controller"
	"github.com/roach88/myrecipes/internal/recipe"
	"github.com/roach88/myrecipes/internal/recipestore"
	"github.com/roach88/myrecipes/internal/schema"
)

// Store is the part of recipestore.Store the surface writes through.
type Store interface {
	Load(ctx context.Context) (recipe.Collection, error)
	ReplaceAll(ctx context.Context, c recipe.Collection) error
}

// StaleRecordError reports an edit whose target moved or changed since the
// record was handed to the surface.
type StaleRecordError struct {
	Index int
}

func (e *StaleRecordError) Error() string {
	return fmt.Sprintf("recipe %d changed since it was opened for editing", e.Index)
}

// Surface authors records and persists them.
type Surface struct {
	store     Store
	validator *schema.Validator
	source    Source
	ids       IDGenerator
	logger    *slog.Logger
}

var _ controller.Authoring = (*Surface)(nil)

// Config holds Surface dependencies. IDs defaults to UUIDv7Generator and
// Logger to slog.Default().
type Config struct {
	Store     Store
	Validator *schema.Validator
	Source    Source
	IDs       IDGenerator
	Logger    *slog.Logger
}

// NewSurface returns a Surface. Store, Validator and Source are required.
func NewSurface(cfg Config) (*Surface, error) {
	if cfg.Store == nil || cfg.Validator == nil || cfg.Source == nil {
		return nil, fmt.Errorf("authoring: store, validator and source are required")
	}
	if cfg.IDs == nil {
		cfg.IDs = UUIDv7Generator{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Surface{
		store:     cfg.Store,
		validator: cfg.Validator,
		source:    cfg.Source,
		ids:       cfg.IDs,
		logger:    cfg.Logger,
	}, nil
}

// Add appends a new record from the source.
func (s *Surface) Add(ctx context.Context) error {
	r, err := s.source.NewRecipe(ctx)
	if err != nil {
		return fmt.Errorf("add recipe: %w", err)
	}
	r = normalize(r)
	if r.ID == "" {
		r.ID = s.ids.Generate()
	}
	if err := s.validator.Validate(r); err != nil {
		return fmt.Errorf("add recipe: %w", err)
	}

	c, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("add recipe: %w", err)
	}
	next := c.Append(r)
	if err := s.store.ReplaceAll(ctx, next); err != nil {
		return fmt.Errorf("add recipe: %w", err)
	}

	s.logger.Info("recipe added", "index", next.Len()-1, "id", r.ID)
	return nil
}

// Edit replaces the record at req.Index with the source's edited version.
func (s *Surface) Edit(ctx context.Context, req controller.EditRequest) error {
	r, err := s.source.EditRecipe(ctx, req.Record)
	if err != nil {
		return fmt.Errorf("edit recipe %d: %w", req.Index, err)
	}
	r = normalize(r)
	if r.ID == "" {
		r.ID = req.Record.ID
	}
	if err := s.validator.Validate(r); err != nil {
		return fmt.Errorf("edit recipe %d: %w", req.Index, err)
	}

	c, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("edit recipe %d: %w", req.Index, err)
	}
	if !c.InRange(req.Index) {
		return fmt.Errorf("edit recipe: %w", &recipestore.IndexOutOfRangeError{Index: req.Index, Len: c.Len()})
	}
	if !c[req.Index].Equal(req.Record) {
		return fmt.Errorf("edit recipe: %w", &StaleRecordError{Index: req.Index})
	}

	if err := s.store.ReplaceAll(ctx, c.Replace(req.Index, r)); err != nil {
		return fmt.Errorf("edit recipe %d: %w", req.Index, err)
	}

	s.logger.Info("recipe edited", "index", req.Index, "id", r.ID)
	return nil
}

// normalize trims the title and puts title and description in NFC form.
func normalize(r recipe.Recipe) recipe.Recipe {
	r.Title = strings.TrimSpace(norm.NFC.String(r.Title))
	r.Description = norm.NFC.String(r.Description)
	r.Image = strings.TrimSpace(r.Image)
	return r
}
