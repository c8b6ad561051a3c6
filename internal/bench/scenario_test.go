package bench

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/thingstodo/internal/codec"
	"github.com/roach88/thingstodo/internal/diff"
)

func TestScenarioDir_AllPass(t *testing.T) {
	scenarios, err := LoadScenarioDir("testdata/scenarios")
	require.NoError(t, err)
	require.Len(t, scenarios, 5)
	assert.Equal(t, "flip_and_add", scenarios[0].Name)

	reg := codec.Builtin()
	for _, sc := range scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			res, err := RunScenario(context.Background(), sc, reg)
			require.NoError(t, err)
			assert.True(t, res.Pass, "errors: %v", res.Errors)
		})
	}
}

func TestLoadScenario_UnknownField(t *testing.T) {
	_, err := LoadScenario("testdata/invalid/typo.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Missing(t *testing.T) {
	_, err := LoadScenario("testdata/nope.yaml")
	assert.Error(t, err)
}

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScenario_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"no name", "description: d\nexpect: {entries: []}\n", "name is required"},
		{"no description", "name: n\nexpect: {entries: []}\n", "description is required"},
		{"no expect", "name: n\ndescription: d\n", "expect is required"},
		{"bad command", "name: n\ndescription: d\nsteps: [{command: frob}]\nexpect: {entries: []}\n", "Unknown command"},
		{"bad code", "name: n\ndescription: d\nsteps: [{command: ls, error: OOPS}]\nexpect: {entries: []}\n", "unknown error code"},
		{"bad kind", "name: n\ndescription: d\nexpect: {entries: [{kind: other, name: a}]}\n", "unknown kind"},
		{"bad missing", "name: n\ndescription: d\nexpect: {entries: [{kind: missing, name: a}]}\n", "exactly one of"},
		{"bad mismatch", "name: n\ndescription: d\nexpect: {entries: [{kind: status_mismatch, name: a}]}\n", "must differ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestRunScenario_ReportsWrongExpectations(t *testing.T) {
	sc := &Scenario{
		Name:        "wrong",
		Description: "expects nothing but changes something",
		Items:       map[string]bool{"a": false},
		Steps: []Step{
			{Command: "set", Args: []string{"a", "true"}},
			{Command: "rm", Args: []string{"a"}, Error: "NOT_FOUND"},
		},
		Expect: &Expect{},
	}

	res, err := RunScenario(context.Background(), sc, codec.Builtin())
	require.NoError(t, err)
	assert.False(t, res.Pass)
	assert.Contains(t, res.Errors, "steps[1] rm: expected NOT_FOUND, got success")
	assert.Contains(t, res.Errors, "expected 0 diff entries, got 1")
}

func TestRunScenario_ExpectedEntriesNormalized(t *testing.T) {
	sc := &Scenario{
		Name:        "unordered",
		Description: "expected entries out of order, one name decomposed",
		Items:       map[string]bool{"caf\u00e9": false, "walk dog": true},
		Steps: []Step{
			{Command: "set", Args: []string{"caf\u00e9", "yes"}},
			{Command: "add", Args: []string{"apples"}},
		},
		Expect: &Expect{Entries: []ExpectedEntry{
			{Kind: string(diff.KindStatusMismatch), Name: "cafe\u0301", ThisStatus: false, ThatStatus: true},
			{Kind: string(diff.KindMissing), Name: "apples", ThatHas: true},
		}},
	}

	res, err := RunScenario(context.Background(), sc, codec.Builtin())
	require.NoError(t, err)
	assert.True(t, res.Pass, "errors: %v", res.Errors)
}

func TestRunScenario_BadArgs(t *testing.T) {
	sc := &Scenario{
		Name:        "bad_args",
		Description: "wrong argument count",
		Steps:       []Step{{Command: "add"}},
		Expect:      &Expect{},
	}

	res, err := RunScenario(context.Background(), sc, codec.Builtin())
	require.NoError(t, err)
	assert.False(t, res.Pass)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Invalid argument count")
}

func TestRunScenario_UnknownCodec(t *testing.T) {
	sc := &Scenario{Name: "n", Description: "d", Expect: &Expect{}, Codecs: []string{"xml"}}
	_, err := RunScenario(context.Background(), sc, codec.Builtin())
	assert.Error(t, err)
}

func TestRunScenario_CodecRoundTripFailure(t *testing.T) {
	sc := &Scenario{
		Name:        "lossy",
		Description: "a lossy codec fails the round trip",
		Items:       map[string]bool{"a": true},
		Expect:      &Expect{},
		Codecs:      []string{"lossy"},
	}

	res, err := RunScenario(context.Background(), sc, codec.NewRegistry(lossyCodec{}))
	require.NoError(t, err)
	assert.False(t, res.Pass)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "lossy: round trip changed the store")
}
