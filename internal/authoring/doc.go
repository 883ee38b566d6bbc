// Package authoring is a record-authoring surface for the recipe list: it
// builds a new or edited record from a Source, validates it against the CUE
// schema, and persists the whole collection through ReplaceAll.
//
// Surface implements controller.Authoring. The controller never sees the
// written record directly; it picks the change up on its next Refresh.
//
// New records get a UUIDv7 id so they can be told apart even though the
// list itself is addressed by index. Edits check that the record at the
// target index is still the one that was handed out; if the list moved
// underneath, the edit fails with a StaleRecordError instead of
// overwriting a different record.
package authoring
