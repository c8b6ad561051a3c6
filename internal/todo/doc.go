// Package todo holds the in-memory record store and the command state machine
// that mutates it.
//
// A Store maps item names to a done/not-done status. Names are unique,
// non-empty and NFC normalized at every entry point, so two names that render
// the same always address the same item.
//
// Commands are a closed set of payload types (Add, Clear, Edit, List,
// ListFiltered, Remove, SetStatus, Debug). An Executor applies one command at a
// time; every command is atomic and committed immediately. Failures are
// returned as *CommandError values and never leave the store half-modified.
//
// The store is owned by a single caller. Nothing in this package locks.
package todo
