package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Collection is the ordered list of recipes stored under one key.
type Collection []Recipe

// Len returns the number of records.
func (c Collection) Len() int {
	return len(c)
}

// InRange reports whether index addresses an existing record.
func (c Collection) InRange(index int) bool {
	return index >= 0 && index < len(c)
}

// Clone returns a deep copy. The result is never nil.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for i, r := range c {
		out[i] = r.Clone()
	}
	return out
}

// Equal reports whether both collections hold equal records in the same order.
// A nil collection equals an empty one.
func (c Collection) Equal(o Collection) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if !c[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Without returns a new collection with the record at index removed.
// Later records shift down by one. Panics if index is out of range;
// callers check InRange first.
func (c Collection) Without(index int) Collection {
	if !c.InRange(index) {
		panic(fmt.Sprintf("recipe: index %d out of range [0,%d)", index, len(c)))
	}
	out := make(Collection, 0, len(c)-1)
	for i, r := range c {
		if i == index {
			continue
		}
		out = append(out, r.Clone())
	}
	return out
}

// Replace returns a new collection with the record at index swapped for r.
// Panics if index is out of range.
func (c Collection) Replace(index int, r Recipe) Collection {
	if !c.InRange(index) {
		panic(fmt.Sprintf("recipe: index %d out of range [0,%d)", index, len(c)))
	}
	out := c.Clone()
	out[index] = r.Clone()
	return out
}

// Append returns a new collection with r added at the end.
func (c Collection) Append(r Recipe) Collection {
	out := make(Collection, len(c), len(c)+1)
	copy(out, c.Clone())
	return append(out, r.Clone())
}

// Encode serializes the collection to its stored JSON array form.
// A nil collection encodes as "[]".
func (c Collection) Encode() (string, error) {
	if c == nil {
		c = Collection{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]Recipe(c)); err != nil {
		return "", fmt.Errorf("encode collection: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Decode parses a stored JSON array. A JSON null decodes to an empty
// collection. The result is never nil on success.
func Decode(data string) (Collection, error) {
	var c Collection
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	if c == nil {
		c = Collection{}
	}
	return c, nil
}
