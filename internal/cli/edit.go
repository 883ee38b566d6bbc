package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/myrecipes/internal/authoring"
	"github.com/roach88/myrecipes/internal/controller"
)

// EditOptions holds flags for the edit command.
type EditOptions struct {
	*RootOptions
	Title       string
	Description string
	Image       string
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Change fields of a recipe",
		Long: `Change fields of a recipe. Only the flags you pass are changed;
pass --image "" to remove an image.

Example:
  myrecipes edit 2 --description "Now with more garlic"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return editRecipe(opts, cmd, index)
		},
	}

	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&opts.Image, "image", "", "new image URI")

	return cmd
}

func editRecipe(opts *EditOptions, cmd *cobra.Command, index int) error {
	var patch authoring.Patch
	if cmd.Flags().Changed("title") {
		patch.Title = &opts.Title
	}
	if cmd.Flags().Changed("description") {
		patch.Description = &opts.Description
	}
	if cmd.Flags().Changed("image") {
		patch.Image = &opts.Image
	}
	if patch.Empty() {
		return NewExitError(ExitCommandError, ErrCodeUsage, "nothing to change: pass --title, --description or --image")
	}

	a, err := openApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	surface, err := a.authoring(authoring.StaticSource{Patch: patch})
	if err != nil {
		return WrapExitError(ExitFailure, ErrCodeGeneric, "failed to prepare authoring", err)
	}

	ctl := a.controller(controller.WithAuthoring(surface))
	ctl.Refresh(cmd.Context())
	if err := ctl.LastError(); err != nil {
		return operationError("failed to load recipes", err)
	}

	ctl.RequestEdit(cmd.Context(), index)
	if err := ctl.LastError(); err != nil {
		return operationError("failed to edit recipe", err)
	}

	ctl.Refresh(cmd.Context())
	edited, err := recordAfterWrite(ctl, index)
	if err != nil {
		return operationError("failed to read edited recipe", err)
	}

	if a.out.JSON() {
		return a.out.Success(recipeData(index, edited))
	}
	return a.out.Success(fmt.Sprintf("Updated recipe [%d] %s", index, edited.Title))
}
