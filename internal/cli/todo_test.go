package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddThenList(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, "Added \"buy milk\".\n", env.mustRun(t, "add", "buy milk"))
	env.mustRun(t, "add", "walk dog")
	env.mustRun(t, "set", "walk dog", "yes")

	out := env.mustRun(t, "ls")
	assert.Equal(t, "All Todos\n--- -----\n[ ] \"buy milk\"\n[X] \"walk dog\"\n", out)

	assert.FileExists(t, filepath.Join(env.dataDir, "data.msgpack"))
}

func TestList_Empty(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "ls")
	assert.Contains(t, out, "No todos in database")
	assert.NoFileExists(t, filepath.Join(env.dataDir, "data.msgpack"))
}

func TestList_Status(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "a")
	env.mustRun(t, "add", "b")
	env.mustRun(t, "set", "b", "t")

	assert.Equal(t, "Completed Todos\n--------- -----\n\t* \"b\"\n", env.mustRun(t, "ls", "--status", "yes"))
	assert.Equal(t, "Incomplete Todos\n---------- -----\n\t* \"a\"\n", env.mustRun(t, "ls", "--status", "no"))

	res := env.run(t, "ls", "--status", "maybe")
	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
}

func TestAdd_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "a")

	res := env.run(t, "add", "a")
	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
	assert.Equal(t, "ALREADY_EXISTS", ErrorCode(res.err))
}

func TestAdd_JSONError(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "a")

	res := env.run(t, "--format", "json", "add", "a")
	require.Error(t, res.err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ALREADY_EXISTS", resp.Error.Code)
}

func TestAdd_JSONSuccess(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "--format", "json", "add", "a")

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Kind    string `json:"kind"`
			Changed bool   `json:"changed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "add", resp.Data.Kind)
	assert.True(t, resp.Data.Changed)
}

func TestArgumentErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing argument",
			args:    []string{"add"},
			wantErr: `Invalid argument count - the "add" command expects 1 argument, but 0 were received.`,
		},
		{
			name:    "too many arguments",
			args:    []string{"rm", "a", "b"},
			wantErr: `Invalid argument count - the "rm" command expects 1 argument, but 2 were received.`,
		},
		{
			name:    "empty name",
			args:    []string{"add", ""},
			wantErr: `todo cannot be empty for the "add" command.`,
		},
		{
			name:    "bad bool",
			args:    []string{"set", "a", "perhaps"},
			wantErr: "perhaps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.run(t, tt.args...)
			require.Error(t, res.err)
			assert.Equal(t, ExitCommandError, GetExitCode(res.err))
			assert.Equal(t, "INVALID_ARGUMENT", ErrorCode(res.err))
			assert.Contains(t, res.err.Error(), tt.wantErr)
		})
	}
}

func TestEditAndRemove(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "a")

	assert.Equal(t, "Renamed \"a\" to \"b\".\n", env.mustRun(t, "edit", "a", "b"))
	assert.Equal(t, "Removed \"b\".\n", env.mustRun(t, "rm", "b"))

	res := env.run(t, "rm", "b")
	require.Error(t, res.err)
	assert.Equal(t, "NOT_FOUND", ErrorCode(res.err))
}

func TestSet_Unchanged(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "a")

	assert.Equal(t, "\"a\" is already incomplete.\n", env.mustRun(t, "set", "a", "no"))
	assert.Equal(t, "Marked \"a\" as complete.\n", env.mustRun(t, "set", "a", "yes"))
}

func TestClear_Confirmation(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "a")

	res := env.runWithInput(t, "n\n", "clear")
	require.NoError(t, res.err)
	assert.Equal(t, "Cancelling clear operation.\n", res.stdout)
	assert.Contains(t, res.stderr, "Are you sure? [y/N]")
	assert.Contains(t, env.mustRun(t, "ls"), "\"a\"")

	res = env.runWithInput(t, "", "clear")
	require.NoError(t, res.err)
	assert.Equal(t, "Cancelling clear operation.\n", res.stdout)

	res = env.runWithInput(t, "yes\n", "clear")
	require.NoError(t, res.err)
	assert.Equal(t, "Todos cleared.\n", res.stdout)
	assert.Contains(t, env.mustRun(t, "ls"), "No todos in database")
}

func TestClear_Yes(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "a")

	assert.Equal(t, "Todos cleared.\n", env.mustRun(t, "clear", "--yes"))
	assert.Equal(t, "Nothing to clear.\n", env.mustRun(t, "clear", "-y"))
}

func TestDebug_Unknown(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "secret", "bogus")
	assert.Contains(t, out, `Unknown debug command "bogus"`)
}

func TestDebug_Encoding(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "a")
	env.mustRun(t, "add", "b")

	out := env.mustRun(t, "debug", "encoding")
	assert.Contains(t, out, "All 8 codecs recreated the store exactly.")
	assert.FileExists(t, filepath.Join(env.dataDir, "diagnostics", "json.dat"))
}

func TestConfig_DefaultEncoding(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.root, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\ndefault_encoding = \"json\"\n"), 0o644))

	env.mustRun(t, "--config", path, "add", "a")
	assert.FileExists(t, filepath.Join(env.dataDir, "data.json"))
	assert.NoFileExists(t, filepath.Join(env.dataDir, "data.msgpack"))
	assert.Contains(t, env.mustRun(t, "--config", path, "ls"), "\"a\"")
}

func TestConfig_Invalid(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.root, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[storage]\ndefault_encoding = \"morse\"\n"), 0o644))

	res := env.run(t, "--config", path, "ls")
	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
	assert.Contains(t, res.err.Error(), "invalid config")

	res = env.run(t, "--config", filepath.Join(env.root, "missing.toml"), "ls")
	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
}

func TestCorruptDataFile(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.dataDir, "data.msgpack"), []byte{0xc1, 0xff, 0x00}, 0o644))

	res := env.run(t, "ls")
	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
	assert.Contains(t, res.err.Error(), "failed to load todo list")

	res = env.run(t, "--fresh-on-error", "ls")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No todos in database")
	assert.Contains(t, res.stderr, "could not load todo list")
}
