package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Field names of the encoded record.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImage       = "image"
	FieldID          = "id"
)

// Recipe is a single user-authored recipe record.
//
// Title and Description are always encoded. Image is an optional URI and ID
// an optional stable identifier; both are omitted when empty. Any other
// fields found in the stored JSON are kept verbatim in Extra so that records
// written by another authoring surface survive a read-modify-write cycle.
type Recipe struct {
	Title       string
	Description string
	Image       string
	ID          string

	// Extra holds free-form fields keyed by JSON name. Values are compact JSON.
	Extra map[string]json.RawMessage
}

// HasImage reports whether the record carries an image URI.
func (r Recipe) HasImage() bool {
	return r.Image != ""
}

// MarshalJSON encodes the record as a JSON object with sorted keys.
// HTML escaping is disabled so stored text matches what the author typed.
func (r Recipe) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(r.Extra)+4)
	for k, v := range r.Extra {
		if isKnownField(k) {
			continue
		}
		m[k] = v
	}
	m[FieldTitle] = r.Title
	m[FieldDescription] = r.Description
	if r.Image != "" {
		m[FieldImage] = r.Image
	}
	if r.ID != "" {
		m[FieldID] = r.ID
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("marshal recipe: %w", err)
	}
	// Encoder adds a trailing newline
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes a JSON object into the record.
// Known fields must be strings or null; everything else lands in Extra.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal recipe: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("unmarshal recipe: expected object, got null")
	}

	out := Recipe{}
	for k, v := range raw {
		var err error
		switch k {
		case FieldTitle:
			out.Title, err = decodeString(k, v)
		case FieldDescription:
			out.Description, err = decodeString(k, v)
		case FieldImage:
			out.Image, err = decodeString(k, v)
		case FieldID:
			out.ID, err = decodeString(k, v)
		default:
			var compact bytes.Buffer
			if err := json.Compact(&compact, v); err != nil {
				return fmt.Errorf("unmarshal recipe: field %q: %w", k, err)
			}
			if out.Extra == nil {
				out.Extra = make(map[string]json.RawMessage)
			}
			out.Extra[k] = json.RawMessage(compact.Bytes())
		}
		if err != nil {
			return err
		}
	}

	*r = out
	return nil
}

// Clone returns a deep copy of the record.
func (r Recipe) Clone() Recipe {
	out := r
	if r.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(r.Extra))
		for k, v := range r.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// Equal reports whether two records have the same content.
// Extra values are compared as compact JSON.
func (r Recipe) Equal(o Recipe) bool {
	if r.Title != o.Title || r.Description != o.Description || r.Image != o.Image || r.ID != o.ID {
		return false
	}
	if len(r.Extra) != len(o.Extra) {
		return false
	}
	for k, v := range r.Extra {
		w, ok := o.Extra[k]
		if !ok || !jsonEqual(v, w) {
			return false
		}
	}
	return true
}

// String returns the title, used by text output.
func (r Recipe) String() string {
	return strings.TrimSpace(r.Title)
}

func isKnownField(name string) bool {
	switch name {
	case FieldTitle, FieldDescription, FieldImage, FieldID:
		return true
	}
	return false
}

func decodeString(field string, v json.RawMessage) (string, error) {
	if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", fmt.Errorf("unmarshal recipe: field %q must be a string: %w", field, err)
	}
	return s, nil
}

func jsonEqual(a, b json.RawMessage) bool {
	var ca, cb bytes.Buffer
	if json.Compact(&ca, a) != nil || json.Compact(&cb, b) != nil {
		return bytes.Equal(a, b)
	}
	return bytes.Equal(ca.Bytes(), cb.Bytes())
}
