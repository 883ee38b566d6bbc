package cli

import (
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your recipes",
		Long: `List your recipes in stored order.

Descriptions longer than 50 characters are shortened with "...".
The number in brackets is the index used by show, edit and delete.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecipes(rootOpts, cmd)
		},
	}
	return cmd
}

func listRecipes(opts *RootOptions, cmd *cobra.Command) error {
	a, err := openApp(opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctl := a.controller()
	ctl.Refresh(cmd.Context())

	if ctl.Degraded() {
		a.out.Warn("stored recipes under %q could not be read; showing an empty list", a.store.Key())
	}

	view := ctl.View()
	if a.out.JSON() {
		return a.out.Success(view)
	}
	renderView(a.out.Writer, view)
	return nil
}
