package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/myrecipes/internal/recipe"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <index>",
		Aliases: []string{"rm"},
		Short:   "Delete a recipe",
		Long: `Delete the recipe at index. Recipes after it move up by one.

Example:
  myrecipes delete 0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return deleteRecipe(rootOpts, cmd, index)
		},
	}
	return cmd
}

func deleteRecipe(opts *RootOptions, cmd *cobra.Command, index int) error {
	a, err := openApp(opts, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctl := a.controller()
	ctl.Refresh(cmd.Context())
	if err := ctl.LastError(); err != nil {
		return operationError("failed to load recipes", err)
	}

	before := ctl.Recipes()
	ctl.Delete(cmd.Context(), index)
	if err := ctl.LastError(); err != nil {
		return operationError("failed to delete recipe", err)
	}

	var removed recipe.Recipe
	if before.InRange(index) {
		removed = before[index]
	}
	remaining := ctl.Recipes().Len()

	if a.out.JSON() {
		return a.out.Success(map[string]any{
			"deleted":   recipeData(index, removed),
			"remaining": remaining,
		})
	}
	return a.out.Success(fmt.Sprintf("Deleted recipe [%d] %s (%d remaining)", index, removed.Title, remaining))
}
