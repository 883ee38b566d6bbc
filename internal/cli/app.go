package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/myrecipes/internal/authoring"
	"github.com/roach88/myrecipes/internal/config"
	"github.com/roach88/myrecipes/internal/controller"
	"github.com/roach88/myrecipes/internal/kv"
	"github.com/roach88/myrecipes/internal/recipe"
	"github.com/roach88/myrecipes/internal/recipestore"
	"github.com/roach88/myrecipes/internal/schema"
)

// app wires storage, store and controller for one command invocation.
type app struct {
	opts   *RootOptions
	db     *kv.Store
	store  *recipestore.Store
	logger *slog.Logger
	out    *OutputFormatter
}

func openApp(opts *RootOptions, cmd *cobra.Command) (*app, error) {
	path := opts.Config.DB
	if err := config.EnsureParentDir(path); err != nil {
		return nil, WrapExitError(ExitCommandError, ErrCodeOpenFailed, "failed to open database", err)
	}
	db, err := kv.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, ErrCodeOpenFailed, "failed to open database", err)
	}

	a := &app{
		opts:   opts,
		db:     db,
		store:  recipestore.New(db, opts.Config.Key),
		logger: slog.Default().With("db", path, "key", opts.Config.Key),
		out:    newFormatter(opts, cmd),
	}
	a.out.VerboseLog("database: %s (key %q)", path, a.store.Key())
	return a, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("error closing database", "error", err)
	}
}

// controller returns a Controller over the app's store.
func (a *app) controller(opts ...controller.Option) *controller.Controller {
	return controller.New(a.store, append([]controller.Option{controller.WithLogger(a.logger)}, opts...)...)
}

// authoring returns an authoring surface reading from src.
func (a *app) authoring(src authoring.Source) (*authoring.Surface, error) {
	v, err := schema.New()
	if err != nil {
		return nil, fmt.Errorf("load recipe schema: %w", err)
	}
	return authoring.NewSurface(authoring.Config{
		Store:     a.store,
		Validator: v,
		Source:    src,
		Logger:    a.logger,
	})
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// operationError maps a store, controller or authoring failure to an ExitError.
func operationError(message string, err error) *ExitError {
	var (
		ve    *schema.ValidationError
		stale *authoring.StaleRecordError
	)
	switch {
	case recipestore.IsIndexOutOfRange(err):
		return WrapExitError(ExitFailure, ErrCodeIndexRange, message, err)
	case recipestore.IsCorruptData(err):
		return WrapExitError(ExitFailure, ErrCodeCorruptData, message, err)
	case recipestore.IsPersistence(err):
		return WrapExitError(ExitFailure, ErrCodeStorage, message, err)
	case errors.As(err, &ve):
		return WrapExitError(ExitFailure, ErrCodeInvalidRecipe, message, err)
	case errors.As(err, &stale):
		return WrapExitError(ExitFailure, ErrCodeStale, message, err)
	case errors.Is(err, authoring.ErrNoInput):
		return WrapExitError(ExitCommandError, ErrCodeUsage, message, err)
	default:
		return WrapExitError(ExitFailure, ErrCodeGeneric, message, err)
	}
}

// recordAfterWrite returns the record at index once ctl has been refreshed
// after a write. A record that is gone by then (another writer removed it)
// is reported as an IndexOutOfRangeError.
func recordAfterWrite(ctl *controller.Controller, index int) (recipe.Recipe, error) {
	if err := ctl.LastError(); err != nil {
		return recipe.Recipe{}, err
	}
	list := ctl.Recipes()
	if !list.InRange(index) {
		return recipe.Recipe{}, &recipestore.IndexOutOfRangeError{Index: index, Len: list.Len()}
	}
	return list[index], nil
}
