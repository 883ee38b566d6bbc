package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recipes as YAML or JSON",
		Long: `Export all recipes. Writes YAML to stdout unless --output is given;
an output path ending in .json produces a JSON array.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportRecipes(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func exportRecipes(opts *ExportOptions, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctl := a.controller()
	ctl.Refresh(cmd.Context())
	if err := ctl.LastError(); err != nil {
		// An empty export of unreadable data would look like a real backup.
		return operationError("failed to load recipes", err)
	}
	list := ctl.Recipes()

	data, err := encodeRecipeFile(opts.Output, list)
	if err != nil {
		return WrapExitError(ExitFailure, ErrCodeFile, "failed to encode recipes", err)
	}

	if opts.Output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
		return WrapExitError(ExitCommandError, ErrCodeFile, "failed to write export file", err)
	}

	if a.out.JSON() {
		return a.out.Success(map[string]any{"exported": list.Len(), "file": opts.Output})
	}
	return a.out.Success(fmt.Sprintf("Exported %d recipes to %s", list.Len(), opts.Output))
}
