// Package harness runs recipe-list scenarios end to end.
//
// A scenario seeds the stored list, drives a Controller through refresh,
// delete, add, edit and view steps (optionally with injected storage
// faults), and checks the final list, state and stored blob. Every step is
// recorded in a trace that can be compared against a golden file.
//
// Scenarios are YAML:
//
//	name: delete_middle
//	description: Deleting the middle record keeps the others in order
//	recipes:
//	  - {title: A, description: first}
//	  - {title: B, description: second}
//	steps:
//	  - op: refresh
//	  - op: delete
//	    index: 1
//	expect:
//	  state: ready
//	  titles: [A]
//
// Each run uses a fresh in-memory medium and sequential record IDs, so
// traces are deterministic.
package harness
