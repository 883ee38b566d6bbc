package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/myrecipes/internal/schema"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Replace bool
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import recipes from a YAML or JSON file",
		Long: `Import recipes from a YAML file (a "recipes:" list) or a JSON array.

Imported recipes are appended unless --replace is given. Every record is
validated before anything is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importRecipes(opts, cmd, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.Replace, "replace", false, "replace the whole list instead of appending")

	return cmd
}

func importRecipes(opts *ImportOptions, cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, ErrCodeFile, "failed to read import file", err)
	}
	incoming, err := decodeRecipeFile(data)
	if err != nil {
		return WrapExitError(ExitFailure, ErrCodeFile, "failed to parse import file", err)
	}

	v, err := schema.New()
	if err != nil {
		return WrapExitError(ExitFailure, ErrCodeGeneric, "failed to load recipe schema", err)
	}
	if err := v.ValidateCollection(incoming); err != nil {
		return operationError("invalid recipe in import file", err)
	}

	a, err := openApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	next := incoming
	if !opts.Replace {
		current, err := a.store.Load(ctx)
		if err != nil {
			return operationError("failed to load recipes", err)
		}
		next = current
		for _, r := range incoming {
			next = next.Append(r)
		}
	}

	if err := a.store.ReplaceAll(ctx, next); err != nil {
		return operationError("failed to save recipes", err)
	}
	a.logger.Info("recipes imported", "file", path, "count", incoming.Len(), "total", next.Len())

	if a.out.JSON() {
		return a.out.Success(map[string]any{"imported": incoming.Len(), "total": next.Len()})
	}
	return a.out.Success(fmt.Sprintf("Imported %d recipes (%d total)", incoming.Len(), next.Len()))
}
