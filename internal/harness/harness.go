package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/myrecipes/internal/authoring"
	"github.com/roach88/myrecipes/internal/controller"
	"github.com/roach88/myrecipes/internal/kv"
	"github.com/roach88/myrecipes/internal/recipe"
	"github.com/roach88/myrecipes/internal/recipestore"
	"github.com/roach88/myrecipes/internal/schema"
	"github.com/roach88/myrecipes/internal/testutil"
)

var (
	errInjectedGet = errors.New("injected get failure")
	errInjectedSet = errors.New("injected set failure")
)

// Harness is the scenario execution engine.
type Harness struct {
	medium *kv.Memory
	faulty *testutil.FaultyMedium
	store  *recipestore.Store
	ctl    *controller.Controller
	source *stepSource
	viewer *recordingViewer
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory medium. Storage faults are
// injected by wrapping it in a testutil.FaultyMedium.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	medium := kv.NewMemory()
	defer medium.Close()
	faulty := testutil.NewFaultyMedium(medium)
	store := recipestore.New(faulty, recipestore.DefaultKey)

	validator, err := schema.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}

	h := &Harness{
		medium: medium,
		faulty: faulty,
		store:  store,
		source: &stepSource{},
		viewer: &recordingViewer{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in runs
	}

	surface, err := authoring.NewSurface(authoring.Config{
		Store:     store,
		Validator: validator,
		Source:    h.source,
		IDs:       testutil.NewSequentialIDGenerator("recipe"),
		Logger:    h.logger,
	})
	if err != nil {
		return nil, err
	}
	h.ctl = controller.New(store,
		controller.WithLogger(h.logger),
		controller.WithAuthoring(surface),
		controller.WithViewer(h.viewer),
	)

	if err := h.seed(ctx, scenario); err != nil {
		return nil, fmt.Errorf("failed to seed: %w", err)
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		h.execute(ctx, i, step, result)
	}

	stored, _, err := medium.Get(ctx, recipestore.DefaultKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored value: %w", err)
	}
	result.Stored = stored

	for _, msg := range h.checkExpect(scenario.Expect, stored) {
		result.AddError(msg)
	}
	return result, nil
}

func (h *Harness) seed(ctx context.Context, s *Scenario) error {
	if s.Stored != nil {
		return h.medium.Set(ctx, recipestore.DefaultKey, *s.Stored)
	}
	if len(s.Recipes) == 0 {
		return nil
	}
	c := make(recipe.Collection, 0, len(s.Recipes))
	for _, r := range s.Recipes {
		c = append(c, r.recipe())
	}
	return h.store.ReplaceAll(ctx, c)
}

// execute runs one step and appends its trace event.
func (h *Harness) execute(ctx context.Context, i int, step Step, result *Result) {
	h.viewer.last = ""
	var stepErr error
	event := Event{Seq: i + 1, Op: step.Op}

	switch step.Op {
	case OpRefresh:
		h.ctl.Refresh(ctx)
		stepErr = h.ctl.LastError()
	case OpDelete:
		event.Index = &step.Index
		h.ctl.Delete(ctx, step.Index)
		stepErr = h.ctl.LastError()
	case OpAdd:
		h.source.step = step
		h.ctl.RequestAdd(ctx)
		stepErr = h.ctl.LastError()
	case OpEdit:
		event.Index = &step.Index
		h.source.step = step
		h.ctl.RequestEdit(ctx, step.Index)
		stepErr = h.ctl.LastError()
	case OpView:
		event.Index = &step.Index
		h.ctl.RequestView(ctx, step.Index)
		stepErr = h.ctl.LastError()
	case OpFailGet:
		h.faulty.FailGet(errInjectedGet)
	case OpFailSet:
		h.faulty.FailSet(errInjectedSet)
	case OpHeal:
		h.faulty.FailGet(nil)
		h.faulty.FailSet(nil)
	}

	event.State = h.ctl.State().String()
	event.Titles = titles(h.ctl.Recipes())
	event.Viewed = h.viewer.last
	event.Error = errorKind(stepErr)
	result.Trace = append(result.Trace, event)

	if event.Error != step.Error {
		result.AddError(fmt.Sprintf("steps[%d] (%s): expected error %q, got %q (%v)",
			i, step.Op, step.Error, event.Error, stepErr))
	}
	h.logger.Info("step executed", "seq", event.Seq, "op", step.Op, "error", event.Error)
}

func (h *Harness) checkExpect(e Expect, stored string) []string {
	var errs []string

	if got := h.ctl.State().String(); got != e.State {
		errs = append(errs, fmt.Sprintf("expect.state: want %q, got %q", e.State, got))
	}
	want := e.Titles
	if want == nil {
		want = []string{}
	}
	if got := titles(h.ctl.Recipes()); !slices.Equal(got, want) {
		errs = append(errs, fmt.Sprintf("expect.titles: want %q, got %q", want, got))
	}
	if got := h.ctl.Degraded(); got != e.Degraded {
		errs = append(errs, fmt.Sprintf("expect.degraded: want %v, got %v", e.Degraded, got))
	}
	if got := h.ctl.View().Message; got != e.Message {
		errs = append(errs, fmt.Sprintf("expect.message: want %q, got %q", e.Message, got))
	}
	if e.Stored != nil && *e.Stored != stored {
		errs = append(errs, fmt.Sprintf("expect.stored: want %s, got %s", *e.Stored, stored))
	}
	return errs
}

func titles(c recipe.Collection) []string {
	out := make([]string, 0, len(c))
	for _, r := range c {
		out = append(out, r.Title)
	}
	return out
}

// errorKind classifies err for comparison with Step.Error.
func errorKind(err error) string {
	var (
		ve    *schema.ValidationError
		stale *authoring.StaleRecordError
	)
	switch {
	case err == nil:
		return ""
	case recipestore.IsIndexOutOfRange(err):
		return ErrKindIndexRange
	case recipestore.IsCorruptData(err):
		return ErrKindCorruptData
	case recipestore.IsPersistence(err):
		return ErrKindPersistence
	case errors.As(err, &ve):
		return ErrKindInvalidRecipe
	case errors.As(err, &stale):
		return ErrKindStale
	case errors.Is(err, authoring.ErrNoInput):
		return ErrKindNoInput
	default:
		return ErrKindOther
	}
}

// stepSource authors records from the step being executed.
type stepSource struct {
	step Step
}

func (s *stepSource) NewRecipe(ctx context.Context) (recipe.Recipe, error) {
	if s.step.Recipe == nil {
		return recipe.Recipe{}, authoring.ErrNoInput
	}
	return s.step.Recipe.recipe(), nil
}

func (s *stepSource) EditRecipe(ctx context.Context, current recipe.Recipe) (recipe.Recipe, error) {
	if s.step.Patch == nil {
		return recipe.Recipe{}, authoring.ErrNoInput
	}
	return authoring.StaticSource{Patch: s.step.Patch.patch()}.EditRecipe(ctx, current)
}

// recordingViewer remembers the title of the last record it was handed.
type recordingViewer struct {
	last string
}

func (v *recordingViewer) View(ctx context.Context, r recipe.Recipe) error {
	v.last = r.Title
	return nil
}
