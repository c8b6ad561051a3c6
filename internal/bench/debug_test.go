package bench

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/thingstodo/internal/codec"
	"github.com/roach88/thingstodo/internal/todo"
)

func fixedSeed() uint64 { return 11 }

func TestDebugger_Encoding(t *testing.T) {
	d := NewDebugger(newTestHarness(t, codec.Builtin().All()), fixedSeed)

	out, err := d.HandleDebug(context.Background(), sampleStore(t), "Encoding")
	require.NoError(t, err)
	assert.Contains(t, out, "Serialization comparison")
	assert.Contains(t, out, "msgpack")
	assert.Contains(t, out, "All 8 codecs recreated the store exactly.")
}

func TestDebugger_Diff(t *testing.T) {
	d := NewDebugger(newTestHarness(t, nil), fixedSeed)

	out, err := d.HandleDebug(context.Background(), sampleStore(t), "diff")
	require.NoError(t, err)
	assert.Contains(t, out, "Diff self-test (seed 11)")
}

func TestDebugger_DiffNeedsItems(t *testing.T) {
	d := NewDebugger(newTestHarness(t, nil), fixedSeed)

	_, err := d.HandleDebug(context.Background(), todo.New(), "diff")
	assert.True(t, todo.IsInputInvalid(err))
}

func TestDebugger_Unknown(t *testing.T) {
	d := NewDebugger(newTestHarness(t, nil), nil)

	out, err := d.HandleDebug(context.Background(), todo.New(), "sparkles")
	require.NoError(t, err)
	assert.Equal(t, `Unknown debug command "sparkles"`, out)
}

func TestDebugger_ThroughExecutor(t *testing.T) {
	d := NewDebugger(newTestHarness(t, []codec.Codec{plainCodec{}}), fixedSeed)
	exec := todo.NewExecutor(sampleStore(t), todo.WithDebugHandler(d))

	res, err := exec.Apply(context.Background(), todo.Debug{Text: "encoding"})
	require.NoError(t, err)
	assert.Equal(t, todo.KindDebug, res.Kind)
	assert.Contains(t, res.Text, "plain")
	assert.False(t, res.Changed)
}
