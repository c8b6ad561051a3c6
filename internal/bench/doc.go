// Package bench runs every codec against a todo store and checks that each
// one recreates the store exactly.
//
// A run has two phases. Phase 1 encodes the store with each codec, timing
// the encode and writing the bytes to the diagnostics directory. Phase 2
// reads each file back, decodes it (timed) and diffs the result against the
// original. A codec passes only if the diff is empty; a non-empty diff is a
// correctness failure, reported separately from encode or decode errors.
//
// Runs are sequential by default. In parallel mode every codec runs both
// phases on its own goroutine; the store is only read. Cancellation is
// checked between codecs, never inside one.
//
// The package also holds the randomized diff self-test and the YAML
// scenario runner used by "thingstodo scenario".
//
// # Scenario Format
//
//	name: flip_and_add
//	description: "Flipping one item and adding another yields two entries"
//	items:
//	  buy milk: false
//	  walk dog: true
//	steps:
//	  - command: set
//	    args: ["buy milk", "yes"]
//	  - command: add
//	    args: ["call mom"]
//	expect:
//	  entries:
//	    - kind: status_mismatch
//	      name: buy milk
//	      this_status: false
//	      that_status: true
//	    - kind: missing
//	      name: call mom
//	      that_has: true
//	codecs: [json, msgpack]
//
// Steps run against a copy of items; the expected entries describe
// diff(items, copy). Every listed codec must then round-trip the copy.
package bench
