package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/roach88/myrecipes/internal/controller"
	"github.com/roach88/myrecipes/internal/recipe"
)

// renderView writes the list in text form.
func renderView(w io.Writer, v controller.View) {
	if v.Loading {
		fmt.Fprintln(w, "Loading...")
		return
	}
	if v.Message != "" {
		fmt.Fprintln(w, v.Message)
		return
	}
	for _, item := range v.Items {
		fmt.Fprintf(w, "[%d] %s\n", item.Index, item.Title)
		if item.Description != "" {
			fmt.Fprintf(w, "    %s\n", item.Description)
		}
		if item.HasImage {
			fmt.Fprintf(w, "    image: %s\n", item.Image)
		}
	}
}

// renderRecipe writes one full record in text form.
func renderRecipe(w io.Writer, r recipe.Recipe) {
	fmt.Fprintf(w, "Title:       %s\n", r.Title)
	fmt.Fprintf(w, "Description: %s\n", r.Description)
	if r.HasImage() {
		fmt.Fprintf(w, "Image:       %s\n", r.Image)
	}
	if r.ID != "" {
		fmt.Fprintf(w, "ID:          %s\n", r.ID)
	}

	keys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %s\n", k, string(r.Extra[k]))
	}
}

// recipeData is the JSON payload for a single record.
func recipeData(index int, r recipe.Recipe) map[string]any {
	return map[string]any{
		"index":  index,
		"recipe": r,
	}
}
