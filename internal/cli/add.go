package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/myrecipes/internal/authoring"
	"github.com/roach88/myrecipes/internal/controller"
	"github.com/roach88/myrecipes/internal/recipe"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Title       string
	Description string
	Image       string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recipe to the end of the list",
		Long: `Add a recipe to the end of the list.

Example:
  myrecipes add --title "Tomato Soup" --description "Roast the tomatoes first" \
    --image https://example.com/soup.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return addRecipe(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "recipe title (required)")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "recipe description")
	cmd.Flags().StringVar(&opts.Image, "image", "", "image URI")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func addRecipe(opts *AddOptions, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	surface, err := a.authoring(authoring.StaticSource{Recipe: &recipe.Recipe{
		Title:       opts.Title,
		Description: opts.Description,
		Image:       opts.Image,
	}})
	if err != nil {
		return WrapExitError(ExitFailure, ErrCodeGeneric, "failed to prepare authoring", err)
	}

	ctl := a.controller(controller.WithAuthoring(surface))
	ctl.RequestAdd(cmd.Context())
	if err := ctl.LastError(); err != nil {
		return operationError("failed to add recipe", err)
	}

	// The controller sees the new record on its next activation.
	ctl.Refresh(cmd.Context())
	index := ctl.Recipes().Len() - 1
	added, err := recordAfterWrite(ctl, index)
	if err != nil {
		return operationError("failed to read added recipe", err)
	}

	if a.out.JSON() {
		return a.out.Success(recipeData(index, added))
	}
	return a.out.Success(fmt.Sprintf("Added recipe [%d] %s", index, added.Title))
}
