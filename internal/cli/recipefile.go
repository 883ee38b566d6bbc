package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/myrecipes/internal/recipe"
)

// recipeFile is the YAML form used by import and export.
//
//	recipes:
//	  - title: Tomato Soup
//	    description: Roast the tomatoes first
//	    image: https://example.com/soup.jpg
type recipeFile struct {
	Recipes []fileRecipe `yaml:"recipes"`
}

type fileRecipe struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Image       string `yaml:"image,omitempty"`
	ID          string `yaml:"id,omitempty"`

	// Extra holds free-form fields.
	Extra map[string]any `yaml:",inline"`
}

// decodeRecipeFile parses a JSON array or a YAML recipe file.
// YAML is decoded strictly: unknown top-level keys are rejected.
func decodeRecipeFile(data []byte) (recipe.Collection, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		return recipe.Decode(string(trimmed))
	}

	var f recipeFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	c := make(recipe.Collection, 0, len(f.Recipes))
	for i, fr := range f.Recipes {
		r := recipe.Recipe{
			Title:       fr.Title,
			Description: fr.Description,
			Image:       fr.Image,
			ID:          fr.ID,
		}
		for k, v := range fr.Extra {
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("recipe %d: field %q: %w", i, k, err)
			}
			if r.Extra == nil {
				r.Extra = make(map[string]json.RawMessage)
			}
			r.Extra[k] = raw
		}
		c = append(c, r)
	}
	return c, nil
}

// encodeRecipeFile serializes c as YAML, or as a JSON array when path ends
// in .json.
func encodeRecipeFile(path string, c recipe.Collection) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		s, err := c.Encode()
		if err != nil {
			return nil, err
		}
		return []byte(s + "\n"), nil
	}

	f := recipeFile{Recipes: make([]fileRecipe, 0, len(c))}
	for i, r := range c {
		fr := fileRecipe{Title: r.Title, Description: r.Description, Image: r.Image, ID: r.ID}
		for k, raw := range r.Extra {
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("recipe %d: field %q: %w", i, k, err)
			}
			if fr.Extra == nil {
				fr.Extra = make(map[string]any)
			}
			fr.Extra[k] = v
		}
		f.Recipes = append(f.Recipes, fr)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}
