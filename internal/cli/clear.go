package cli

import (
	"github.com/spf13/cobra"
)

// ClearOptions holds flags for the clear command.
type ClearOptions struct {
	*RootOptions
	Yes bool
}

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClearOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return clearRecipes(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "confirm removing every recipe")

	return cmd
}

func clearRecipes(opts *ClearOptions, cmd *cobra.Command) error {
	if !opts.Yes {
		return NewExitError(ExitCommandError, ErrCodeUsage, "refusing to clear without --yes")
	}

	a, err := openApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.Clear(cmd.Context()); err != nil {
		return operationError("failed to clear recipes", err)
	}

	if a.out.JSON() {
		return a.out.Success(map[string]any{"cleared": true})
	}
	return a.out.Success("All recipes removed.")
}
