package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/myrecipes/internal/controller"
	"github.com/roach88/myrecipes/internal/recipe"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <index>",
		Short: "Show one recipe in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return showRecipe(rootOpts, cmd, index)
		},
	}
	return cmd
}

// detailViewer prints a record handed over by the controller.
type detailViewer struct {
	out   *OutputFormatter
	index int
}

func (v *detailViewer) View(ctx context.Context, r recipe.Recipe) error {
	if v.out.JSON() {
		return v.out.Success(recipeData(v.index, r))
	}
	renderRecipe(v.out.Writer, r)
	return nil
}

func showRecipe(opts *RootOptions, cmd *cobra.Command, index int) error {
	a, err := openApp(opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctl := a.controller(controller.WithViewer(&detailViewer{out: a.out, index: index}))
	ctl.Refresh(cmd.Context())
	if err := ctl.LastError(); err != nil {
		return operationError("failed to load recipes", err)
	}

	ctl.RequestView(cmd.Context(), index)
	if err := ctl.LastError(); err != nil {
		return operationError("failed to show recipe", err)
	}
	return nil
}
