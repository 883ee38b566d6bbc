// Package recipe defines the recipe record and collection types shared by
// every other package in myrecipes.
//
// A Collection is an ordered sequence of records persisted as one JSON array
// under a single storage key. Position is the only addressing mechanism:
// operations refer to records by their zero-based index.
//
// Key constraints:
//   - Unknown JSON fields on a record are preserved in Extra and written back
//   - Empty optional fields (image, id) are omitted from the encoded form
//   - A nil Collection encodes as [] (never null)
//
// recipe imports nothing internal.
package recipe
