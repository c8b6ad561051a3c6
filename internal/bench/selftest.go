package bench

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/roach88/thingstodo/internal/diff"
	"github.com/roach88/thingstodo/internal/todo"
)

// MutationKind is a random change made by the self-test.
type MutationKind string

const (
	MutationFlip   MutationKind = "flip"
	MutationAdd    MutationKind = "add"
	MutationRemove MutationKind = "remove"
)

// Mutation records one change applied to the copy.
type Mutation struct {
	Kind   MutationKind `json:"kind"`
	Name   string       `json:"name"`
	Status bool         `json:"status"`
}

func (m Mutation) String() string {
	switch m.Kind {
	case MutationFlip:
		return fmt.Sprintf("changing status of %q from %t to %t", m.Name, !m.Status, m.Status)
	case MutationAdd:
		return fmt.Sprintf("adding random todo %q with status %t", m.Name, m.Status)
	default:
		return fmt.Sprintf("removing todo %q", m.Name)
	}
}

// SelfTestReport is the outcome of SelfTest.
type SelfTestReport struct {
	Seed uint64 `json:"seed"`

	// CloneIdentical is true when the unmodified copy diffed as identical.
	CloneIdentical bool `json:"clone_identical"`

	Mutations []Mutation  `json:"mutations"`
	Result    diff.Result `json:"result"`

	// CountMatches is true when the diff has one entry per mutation.
	CountMatches bool `json:"count_matches"`

	// Note explains a count mismatch caused by mutations that touch the
	// same item. Such mismatches are not diff defects.
	Note string `json:"note,omitempty"`
}

// Pass reports whether the diff engine behaved as expected. A count
// mismatch explained by overlapping mutations still passes.
func (r *SelfTestReport) Pass() bool {
	return r.CloneIdentical && (r.CountMatches || r.Note != "")
}

// SelfTest exercises the diff engine against s.
//
// It diffs s with an untouched copy (expecting no entries), then applies
// between 1 and Len-1 random mutations (flip a status, add a random item,
// remove an item) to the copy and diffs again. The same seed always makes the
// same mutations. s is not modified. The store needs at least two items.
func SelfTest(s *todo.Store, seed uint64) (*SelfTestReport, error) {
	if s.Len() < 2 {
		return nil, todo.InputInvalid("the diff self-test needs at least 2 items")
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	report := &SelfTestReport{Seed: seed}

	other := s.Clone()
	report.CloneIdentical = diff.Compare(s, other).Identical()

	n := 1 + rng.IntN(s.Len()-1)
	touched := make(map[string]int, n)
	for i := 0; i < n; i++ {
		var m Mutation
		switch rng.IntN(3) {
		case 0:
			m = flipRandom(other, rng)
		case 1:
			m = addRandom(other, rng)
		default:
			m = removeRandom(other, rng)
		}
		touched[m.Name]++
		report.Mutations = append(report.Mutations, m)
	}

	report.Result = diff.Compare(s, other)
	report.CountMatches = report.Result.Count() == len(report.Mutations)
	if !report.CountMatches {
		var overlaps []string
		for _, m := range report.Mutations {
			if touched[m.Name] > 1 {
				overlaps = append(overlaps, m.Name)
			}
		}
		if len(overlaps) > 0 {
			report.Note = fmt.Sprintf("%d diff entries for %d mutations: several mutations touched the same item (%s)",
				report.Result.Count(), len(report.Mutations), strings.Join(dedupe(overlaps), ", "))
		}
	}
	return report, nil
}

// pick returns a random name in canonical order so results follow the seed.
func pick(s *todo.Store, rng *rand.Rand) string {
	names := s.Names()
	return names[rng.IntN(len(names))]
}

func flipRandom(s *todo.Store, rng *rand.Rand) Mutation {
	name := pick(s, rng)
	done, _ := s.Status(name)
	_ = s.SetStatus(name, !done)
	return Mutation{Kind: MutationFlip, Name: name, Status: !done}
}

func addRandom(s *todo.Store, rng *rand.Rand) Mutation {
	for {
		name := fmt.Sprintf("Here is a random todo I added. %d", rng.Uint64())
		status := rng.IntN(2) == 1
		if err := s.Add(name, status); err == nil {
			return Mutation{Kind: MutationAdd, Name: name, Status: status}
		}
	}
}

func removeRandom(s *todo.Store, rng *rand.Rand) Mutation {
	name := pick(s, rng)
	item, _ := s.Remove(name)
	return Mutation{Kind: MutationRemove, Name: name, Status: item.Done}
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// RenderSelfTest renders a self-test report as text.
func RenderSelfTest(r *SelfTestReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Diff self-test (seed %d)\n", r.Seed)
	if r.CloneIdentical {
		b.WriteString(passStyle.Render("Diff against cloned copy returned identical."))
	} else {
		b.WriteString(failStyle.Render("Diff against cloned copy returned changes."))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Making %d changes.\n", len(r.Mutations))
	for i, m := range r.Mutations {
		fmt.Fprintf(&b, "\t- Change #%d: %s\n", i+1, m)
	}

	switch {
	case r.Result.Identical():
		b.WriteString(failStyle.Render("Diff against modified copy returned identical."))
	case r.CountMatches:
		b.WriteString(passStyle.Render(fmt.Sprintf("Diff returned the correct number of changes (%d).", len(r.Mutations))))
	default:
		b.WriteString(failStyle.Render(fmt.Sprintf("There are %d diff results but %d changes were made.", r.Result.Count(), len(r.Mutations))))
	}
	b.WriteString("\n")
	if r.Note != "" {
		b.WriteString(dimStyle.Render("Note: " + r.Note))
		b.WriteString("\n")
	}

	if !r.Result.Identical() {
		b.WriteString("Diff entries:\n")
		b.WriteString(r.Result.String())
		b.WriteString("\n")
	}
	return b.String()
}
