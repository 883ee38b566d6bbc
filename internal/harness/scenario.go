package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/myrecipes/internal/authoring"
	"github.com/roach88/myrecipes/internal/recipe"
)

// Scenario drives a controller through a sequence of steps.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario checks.
	Description string `yaml:"description"`

	// Recipes seeds the stored list before the first step.
	Recipes []RecipeSpec `yaml:"recipes,omitempty"`

	// Stored seeds the raw stored value instead of Recipes, for
	// scenarios about undecodable data.
	Stored *string `yaml:"stored,omitempty"`

	Steps  []Step `yaml:"steps"`
	Expect Expect `yaml:"expect"`
}

// RecipeSpec is a record as written in a scenario.
type RecipeSpec struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Image       string `yaml:"image,omitempty"`
	ID          string `yaml:"id,omitempty"`
}

func (s RecipeSpec) recipe() recipe.Recipe {
	return recipe.Recipe{Title: s.Title, Description: s.Description, Image: s.Image, ID: s.ID}
}

// PatchSpec lists the fields an edit step changes.
type PatchSpec struct {
	Title       *string `yaml:"title,omitempty"`
	Description *string `yaml:"description,omitempty"`
	Image       *string `yaml:"image,omitempty"`
}

func (p PatchSpec) patch() authoring.Patch {
	return authoring.Patch{Title: p.Title, Description: p.Description, Image: p.Image}
}

// Step is one controller operation or fault toggle.
type Step struct {
	Op string `yaml:"op"`

	// Index addresses delete, edit and view.
	Index int `yaml:"index,omitempty"`

	// Recipe is the record an add step authors.
	Recipe *RecipeSpec `yaml:"recipe,omitempty"`

	// Patch is the change an edit step applies.
	Patch *PatchSpec `yaml:"patch,omitempty"`

	// Error is the expected error kind of the step; empty means success.
	Error string `yaml:"error,omitempty"`
}

// Expect is checked after the last step.
type Expect struct {
	State    string   `yaml:"state"`
	Titles   []string `yaml:"titles"`
	Degraded bool     `yaml:"degraded,omitempty"`
	Message  string   `yaml:"message,omitempty"`

	// Stored, when set, must equal the final stored value exactly.
	Stored *string `yaml:"stored,omitempty"`
}

// Step operations.
const (
	OpRefresh = "refresh"
	OpDelete  = "delete"
	OpAdd     = "add"
	OpEdit    = "edit"
	OpView    = "view"
	OpFailGet = "fail_get"
	OpFailSet = "fail_set"
	OpHeal    = "heal"
)

// Error kinds a step can expect.
const (
	ErrKindCorruptData   = "corrupt_data"
	ErrKindPersistence   = "persistence"
	ErrKindIndexRange    = "index_out_of_range"
	ErrKindInvalidRecipe = "invalid_recipe"
	ErrKindStale         = "stale"
	ErrKindNoInput       = "no_input"
	ErrKindOther         = "other"
)

var validErrKinds = map[string]bool{
	"":                   true,
	ErrKindCorruptData:   true,
	ErrKindPersistence:   true,
	ErrKindIndexRange:    true,
	ErrKindInvalidRecipe: true,
	ErrKindStale:         true,
	ErrKindNoInput:       true,
	ErrKindOther:         true,
}

var validStates = map[string]bool{"uninitialized": true, "loading": true, "ready": true}

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields (typos) and missing required fields are errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if s.Stored != nil && len(s.Recipes) > 0 {
		return fmt.Errorf("stored and recipes are mutually exclusive")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	if !validStates[s.Expect.State] {
		return fmt.Errorf("expect: unknown state %q", s.Expect.State)
	}
	return nil
}

// validateStep validates a single step based on its op.
func validateStep(index int, st *Step) error {
	if st.Op == "" {
		return fmt.Errorf("steps[%d]: op is required", index)
	}

	switch st.Op {
	case OpRefresh, OpDelete, OpView, OpFailGet, OpFailSet, OpHeal:
	case OpAdd:
		if st.Recipe == nil {
			return fmt.Errorf("steps[%d]: recipe is required for add", index)
		}
	case OpEdit:
		if st.Patch == nil {
			return fmt.Errorf("steps[%d]: patch is required for edit", index)
		}
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, st.Op)
	}

	if !validErrKinds[st.Error] {
		return fmt.Errorf("steps[%d]: unknown error kind %q", index, st.Error)
	}
	return nil
}
