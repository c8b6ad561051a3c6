package diff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/thingstodo/internal/canon"
	"github.com/roach88/thingstodo/internal/todo"
)

// EntryKind distinguishes the two kinds of difference.
type EntryKind string

const (
	// KindMissing marks an item present on exactly one side.
	KindMissing EntryKind = "missing"

	// KindStatusMismatch marks an item present on both sides with different statuses.
	KindStatusMismatch EntryKind = "status_mismatch"
)

// Entry is one difference between two stores.
//
// For KindMissing, ThisHas and ThatHas say which side holds the item; exactly
// one of them is true. For KindStatusMismatch, ThisStatus and ThatStatus carry
// the two differing statuses.
type Entry struct {
	Kind       EntryKind `json:"kind"`
	Name       string    `json:"name"`
	ThisHas    bool      `json:"this_has"`
	ThatHas    bool      `json:"that_has"`
	ThisStatus bool      `json:"this_status"`
	ThatStatus bool      `json:"that_status"`
}

// Missing builds a KindMissing entry.
func Missing(name string, thisHas, thatHas bool) Entry {
	return Entry{Kind: KindMissing, Name: name, ThisHas: thisHas, ThatHas: thatHas}
}

// StatusMismatch builds a KindStatusMismatch entry.
func StatusMismatch(name string, thisStatus, thatStatus bool) Entry {
	return Entry{Kind: KindStatusMismatch, Name: name, ThisStatus: thisStatus, ThatStatus: thatStatus}
}

// String renders the entry as a sentence.
func (e Entry) String() string {
	switch e.Kind {
	case KindMissing:
		has, lacks := "this", "that"
		if e.ThatHas {
			has, lacks = "that", "this"
		}
		return fmt.Sprintf("%q is in %s but not %s.", e.Name, has, lacks)
	case KindStatusMismatch:
		return fmt.Sprintf("%q is marked as %s in this but %s in that.",
			e.Name, completeness(e.ThisStatus), completeness(e.ThatStatus))
	}
	return fmt.Sprintf("unknown difference for %q", e.Name)
}

func completeness(done bool) string {
	if done {
		return "complete"
	}
	return "incomplete"
}

// Result is the outcome of a comparison. A Result with no entries means the
// stores are identical.
type Result struct {
	Entries []Entry `json:"entries"`
}

// Identical reports whether the compared stores hold exactly the same items
// with the same statuses.
func (r Result) Identical() bool {
	return len(r.Entries) == 0
}

// Count returns the number of differences.
func (r Result) Count() int {
	return len(r.Entries)
}

// String renders the result one entry per line, or "identical".
func (r Result) String() string {
	if r.Identical() {
		return "identical"
	}
	lines := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		lines[i] = fmt.Sprintf("#%d: %s", i+1, e)
	}
	return strings.Join(lines, "\n")
}

// Compare reports how that differs from this.
//
// Every item of this missing from that yields Missing(this=true, that=false);
// every item present in both with a different status yields StatusMismatch;
// every item only in that yields Missing(this=false, that=true). Neither store
// is modified.
func Compare(this, that *todo.Store) Result {
	return CompareMaps(this.Map(), that.Map())
}

// CompareMaps is Compare over raw name -> status mappings. Nil maps are empty.
func CompareMaps(this, that map[string]bool) Result {
	var entries []Entry

	for name, thisStatus := range this {
		thatStatus, ok := that[name]
		switch {
		case !ok:
			entries = append(entries, Missing(name, true, false))
		case thatStatus != thisStatus:
			entries = append(entries, StatusMismatch(name, thisStatus, thatStatus))
		}
	}

	for name := range that {
		if _, ok := this[name]; !ok {
			entries = append(entries, Missing(name, false, true))
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return canon.CompareKeys(entries[i].Name, entries[j].Name) < 0
	})

	return Result{Entries: entries}
}
