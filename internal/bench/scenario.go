package bench

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/thingstodo/internal/canon"
	"github.com/roach88/thingstodo/internal/codec"
	"github.com/roach88/thingstodo/internal/diff"
	"github.com/roach88/thingstodo/internal/input"
	"github.com/roach88/thingstodo/internal/todo"
)

// Scenario is a scripted diff check loaded from YAML.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Items is the starting store ("this" side of the diff).
	Items map[string]bool `yaml:"items"`

	// Steps are commands applied to a copy of Items ("that" side).
	Steps []Step `yaml:"steps"`

	// Expect describes the diff between Items and the mutated copy.
	Expect *Expect `yaml:"expect"`

	// Codecs must each round-trip the mutated copy exactly.
	Codecs []string `yaml:"codecs,omitempty"`

	// StrictEdit applies edit steps with collision checking.
	StrictEdit bool `yaml:"strict_edit,omitempty"`
}

// Step is one command, written as it would be typed.
type Step struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`

	// Error is the expected error code (e.g. NOT_FOUND). Empty means the
	// step must succeed.
	Error string `yaml:"error,omitempty"`
}

// Expect lists the diff entries a scenario must produce, in name order.
type Expect struct {
	Entries []ExpectedEntry `yaml:"entries"`
}

// ExpectedEntry mirrors diff.Entry for YAML.
type ExpectedEntry struct {
	Kind       string `yaml:"kind"`
	Name       string `yaml:"name"`
	ThisHas    bool   `yaml:"this_has,omitempty"`
	ThatHas    bool   `yaml:"that_has,omitempty"`
	ThisStatus bool   `yaml:"this_status,omitempty"`
	ThatStatus bool   `yaml:"that_status,omitempty"`
}

// entry converts e, normalizing the name the way the store does.
func (e ExpectedEntry) entry() diff.Entry {
	name := canon.NormalizeName(e.Name)
	if diff.EntryKind(e.Kind) == diff.KindMissing {
		return diff.Missing(name, e.ThisHas, e.ThatHas)
	}
	return diff.StatusMismatch(name, e.ThisStatus, e.ThatStatus)
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&sc); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", filepath.Base(path), err)
	}
	return &sc, nil
}

// LoadScenarioDir loads every *.yaml and *.yml file in dir, ordered by file name.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenario files in %s", dir)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		sc, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.Description == "" {
		return errors.New("description is required")
	}
	if s.Expect == nil {
		return errors.New("expect is required (use entries: [] for identical)")
	}

	for i, step := range s.Steps {
		if _, err := input.Lookup(step.Command); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
		if step.Error != "" && !knownCode(step.Error) {
			return fmt.Errorf("steps[%d]: unknown error code %q", i, step.Error)
		}
	}

	for i, e := range s.Expect.Entries {
		switch diff.EntryKind(e.Kind) {
		case diff.KindMissing:
			if e.ThisHas == e.ThatHas {
				return fmt.Errorf("expect.entries[%d]: exactly one of this_has and that_has must be true", i)
			}
		case diff.KindStatusMismatch:
			if e.ThisStatus == e.ThatStatus {
				return fmt.Errorf("expect.entries[%d]: this_status and that_status must differ", i)
			}
		default:
			return fmt.Errorf("expect.entries[%d]: unknown kind %q", i, e.Kind)
		}
		if e.Name == "" {
			return fmt.Errorf("expect.entries[%d]: name is required", i)
		}
	}
	return nil
}

func knownCode(code string) bool {
	switch todo.ErrorCode(code) {
	case todo.ErrCodeAlreadyExists, todo.ErrCodeNotFound, todo.ErrCodeInputInvalid, todo.ErrCodeCollision:
		return true
	}
	return false
}

// ScenarioResult is the outcome of one scenario.
type ScenarioResult struct {
	Name   string       `json:"name"`
	Pass   bool         `json:"pass"`
	Diff   []diff.Entry `json:"diff"`
	Errors []string     `json:"errors,omitempty"`
}

// AddError adds a validation error and marks the result as failed.
func (r *ScenarioResult) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// RunScenario executes sc. Codec names are resolved in reg.
//
// Scenario failures are reported in the result; the error is for scenarios
// that cannot run at all (bad items, unknown codec, cancelled context).
func RunScenario(ctx context.Context, sc *Scenario, reg *codec.Registry) (*ScenarioResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := todo.FromMap(sc.Items)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: items: %w", sc.Name, err)
	}
	codecs := make([]codec.Codec, len(sc.Codecs))
	for i, name := range sc.Codecs {
		c, err := reg.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		codecs[i] = c
	}

	result := &ScenarioResult{Name: sc.Name, Pass: true}
	exec := todo.NewExecutor(base.Clone(), todo.WithStrictEdit(sc.StrictEdit))

	for i, step := range sc.Steps {
		cmd, err := input.Build(step.Command, step.Args)
		if err != nil {
			result.AddError("steps[%d]: %v", i, err)
			continue
		}
		_, err = exec.Apply(ctx, cmd)
		switch {
		case step.Error == "" && err != nil:
			result.AddError("steps[%d] %s: unexpected error: %v", i, step.Command, err)
		case step.Error != "" && err == nil:
			result.AddError("steps[%d] %s: expected %s, got success", i, step.Command, step.Error)
		case step.Error != "" && string(todo.CodeOf(err)) != step.Error:
			result.AddError("steps[%d] %s: expected %s, got %v", i, step.Command, step.Error, err)
		}
	}

	got := diff.Compare(base, exec.Store())
	result.Diff = got.Entries

	want := make([]diff.Entry, len(sc.Expect.Entries))
	for i, e := range sc.Expect.Entries {
		want[i] = e.entry()
	}
	sort.SliceStable(want, func(i, j int) bool {
		return canon.CompareKeys(want[i].Name, want[j].Name) < 0
	})
	compareEntries(result, want, got.Entries)

	for _, c := range codecs {
		checkRoundTrip(result, c, exec.Store())
	}
	return result, nil
}

func compareEntries(result *ScenarioResult, want, got []diff.Entry) {
	if len(want) != len(got) {
		result.AddError("expected %d diff entries, got %d", len(want), len(got))
	}
	for i := 0; i < len(want) && i < len(got); i++ {
		if want[i] != got[i] {
			result.AddError("diff entry %d: expected %s, got %s", i+1, want[i], got[i])
		}
	}
	for i := len(want); i < len(got); i++ {
		result.AddError("unexpected diff entry: %s", got[i])
	}
	for i := len(got); i < len(want); i++ {
		result.AddError("missing diff entry: %s", want[i])
	}
}

func checkRoundTrip(result *ScenarioResult, c codec.Codec, s *todo.Store) {
	data, err := c.Encode(s.Map())
	if err != nil {
		result.AddError("%s: %v", c.Name(), err)
		return
	}
	decoded, err := c.Decode(data)
	if err != nil {
		result.AddError("%s: %v", c.Name(), err)
		return
	}
	if rt := diff.CompareMaps(s.Map(), decoded); !rt.Identical() {
		result.AddError("%s: round trip changed the store:\n%s", c.Name(), rt)
	}
}
