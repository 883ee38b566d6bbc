package recipestore

import (
	"errors"
	"fmt"
)

// CorruptDataError reports a stored value that failed to decode.
type CorruptDataError struct {
	// Key is the storage key that holds the bad value.
	Key string

	// Err is the decode failure.
	Err error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt recipe data under %q: %v", e.Key, e.Err)
}

func (e *CorruptDataError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failed read or write against the medium.
type PersistenceError struct {
	// Op is "load", "replace" or "clear".
	Op string

	// Key is the storage key involved.
	Key string

	// Err is the medium failure.
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s recipes under %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IndexOutOfRangeError reports an index outside [0, Len).
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("recipe index %d out of range [0,%d)", e.Index, e.Len)
}

// IsCorruptData returns true if err is or wraps a CorruptDataError.
func IsCorruptData(err error) bool {
	var ce *CorruptDataError
	return errors.As(err, &ce)
}

// IsPersistence returns true if err is or wraps a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

// IsIndexOutOfRange returns true if err is or wraps an IndexOutOfRangeError.
func IsIndexOutOfRange(err error) bool {
	var ie *IndexOutOfRangeError
	return errors.As(err, &ie)
}
