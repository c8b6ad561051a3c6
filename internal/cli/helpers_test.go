package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/roach88/thingstodo/internal/config"
	"github.com/roach88/thingstodo/internal/testutil"
)

type testEnv struct {
	root    string
	dataDir string
	opts    *RootOptions
}

// newTestEnv points every XDG location at a temp dir and returns options
// with a fixed clock, run ID and seed.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv(config.EnvConfig, "")

	return &testEnv{
		root:    root,
		dataDir: filepath.Join(root, "data", "thingstodo"),
		opts: &RootOptions{
			Clock:       testutil.NewStepClock(time.Millisecond),
			IDGenerator: testutil.NewFixedIDGenerator("run-0001"),
			Seed:        func() uint64 { return 7 },
		},
	}
}

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

func (e *testEnv) run(t *testing.T, args ...string) cmdResult {
	t.Helper()
	return e.runWithInput(t, "", args...)
}

func (e *testEnv) runWithInput(t *testing.T, stdin string, args ...string) cmdResult {
	t.Helper()
	cmd := NewRootCommandWithOptions(e.opts)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return cmdResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// mustRun runs args and fails the test on error.
func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	res := e.run(t, args...)
	if res.err != nil {
		t.Fatalf("%v failed: %v\nstdout: %s\nstderr: %s", args, res.err, res.stdout, res.stderr)
	}
	return res.stdout
}
