// Package diff compares two todo stores and reports every item whose presence
// or status differs.
//
// The comparison is directional. "this" is the reference store and "that" is
// the store under test (typically a copy recreated by decoding). Entries are
// ordered by item name using the canonical key order, so the same pair of
// stores always yields the same result.
package diff
