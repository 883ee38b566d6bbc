// Package schema validates recipe records against a CUE definition before
// they are written to storage.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/myrecipes/internal/recipe"
)

//go:embed recipe.cue
var recipeSchema string

// ValidationError describes the first constraint a record violated.
type ValidationError struct {
	// Index is the record position when validating a collection, or -1.
	Index   int
	Field   string
	Message string
	Pos     token.Pos
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("recipe %d: %s: %s", e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator checks records against the #Recipe definition.
//
// Thread-safety: cue.Context is not safe for concurrent use, so calls are
// serialized with an internal mutex.
type Validator struct {
	mu  sync.Mutex
	ctx *cue.Context
	def cue.Value
}

// New compiles the embedded schema.
func New() (*Validator, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(recipeSchema, cue.Filename("recipe.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile recipe schema: %w", err)
	}
	def := v.LookupPath(cue.ParsePath("#Recipe"))
	if !def.Exists() {
		return nil, fmt.Errorf("compile recipe schema: #Recipe not defined")
	}
	return &Validator{ctx: ctx, def: def}, nil
}

// Validate checks a single record.
func (v *Validator) Validate(r recipe.Recipe) error {
	return v.validate(r, -1)
}

// ValidateCollection checks every record and reports the first failure.
func (v *Validator) ValidateCollection(c recipe.Collection) error {
	for i, r := range c {
		if err := v.validate(r, i); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validate(r recipe.Recipe, index int) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("validate recipe: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	val := v.ctx.CompileBytes(data, cue.Filename("recipe.json"))
	if err := val.Err(); err != nil {
		return fmt.Errorf("validate recipe: %w", err)
	}
	unified := v.def.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err, index)
	}
	return nil
}

// formatCUEError extracts the field and position of the first CUE error.
func formatCUEError(err error, index int) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &ValidationError{Index: index, Field: "recipe", Message: err.Error()}
	}

	first := errs[0]
	field := "recipe"
	if path := first.Path(); len(path) > 0 {
		field = path[len(path)-1]
	}
	ve := &ValidationError{Index: index, Field: field, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		ve.Pos = positions[0]
	}
	return ve
}
