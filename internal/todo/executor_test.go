package todo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecutor(t *testing.T, opts ...Option) *Executor {
	t.Helper()
	return NewExecutor(New(), opts...)
}

func TestApply_Add(t *testing.T) {
	e := newTestExecutor(t)
	ctx := context.Background()

	res, err := e.Apply(ctx, Add{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, KindAdd, res.Kind)
	assert.True(t, res.Changed)

	done, ok := e.Store().Status("x")
	assert.True(t, ok)
	assert.False(t, done, "add always inserts not-done")

	_, err = e.Apply(ctx, Add{Name: "x"})
	assert.True(t, IsAlreadyExists(err))
	assert.Equal(t, 1, e.Store().Len())
}

func TestApply_RemoveMissingOnEmpty(t *testing.T) {
	e := newTestExecutor(t)
	_, err := e.Apply(context.Background(), Remove{Name: "missing"})
	assert.True(t, IsNotFound(err))
}

func TestApply_Remove(t *testing.T) {
	e := newTestExecutor(t)
	ctx := context.Background()
	require.NoError(t, e.Store().Add("x", true))

	res, err := e.Apply(ctx, Remove{Name: "x"})
	require.NoError(t, err)
	require.NotNil(t, res.Removed)
	assert.Equal(t, Item{Name: "x", Done: true}, *res.Removed)
}

func TestApply_Edit(t *testing.T) {
	e := newTestExecutor(t)
	ctx := context.Background()
	require.NoError(t, e.Store().Add("a", true))
	require.NoError(t, e.Store().Add("b", false))

	_, err := e.Apply(ctx, Edit{Existing: "a", NewName: "b"})
	require.NoError(t, err)

	done, _ := e.Store().Status("b")
	assert.True(t, done)
	assert.False(t, e.Store().Has("a"))
}

func TestApply_EditStrict(t *testing.T) {
	e := newTestExecutor(t, WithStrictEdit(true))
	ctx := context.Background()
	require.NoError(t, e.Store().Add("a", true))
	require.NoError(t, e.Store().Add("b", false))

	_, err := e.Apply(ctx, Edit{Existing: "a", NewName: "b"})
	assert.True(t, IsCollision(err))
	assert.Equal(t, 2, e.Store().Len())
}

func TestApply_SetStatus(t *testing.T) {
	e := newTestExecutor(t)
	ctx := context.Background()

	res, err := e.Apply(ctx, SetStatus{Name: "x", Status: true})
	require.NoError(t, err)
	assert.True(t, res.Changed)

	res, err = e.Apply(ctx, SetStatus{Name: "x", Status: true})
	require.NoError(t, err)
	assert.False(t, res.Changed, "same status is not a change")

	_, err = e.Apply(ctx, SetStatus{Name: "", Status: true})
	assert.True(t, IsInputInvalid(err))
}

func TestApply_Clear(t *testing.T) {
	e := newTestExecutor(t)
	ctx := context.Background()

	res, err := e.Apply(ctx, Clear{})
	require.NoError(t, err)
	assert.False(t, res.Changed)

	require.NoError(t, e.Store().Add("a", false))
	res, err = e.Apply(ctx, Clear{})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.True(t, e.Store().IsEmpty())
}

func TestApply_ListAndFiltered(t *testing.T) {
	e := newTestExecutor(t)
	ctx := context.Background()
	require.NoError(t, e.Store().Add("walk dog", true))
	require.NoError(t, e.Store().Add("buy milk", false))

	res, err := e.Apply(ctx, List{})
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, []Item{{Name: "buy milk"}, {Name: "walk dog", Done: true}}, res.Items)

	res, err = e.Apply(ctx, ListFiltered{Status: true})
	require.NoError(t, err)
	assert.Equal(t, []Item{{Name: "walk dog", Done: true}}, res.Items)

	res, err = e.Apply(ctx, ListFiltered{Status: false})
	require.NoError(t, err)
	assert.Equal(t, []Item{{Name: "buy milk"}}, res.Items)
}

func TestApply_DebugWithoutHandler(t *testing.T) {
	e := newTestExecutor(t)
	_, err := e.Apply(context.Background(), Debug{Text: "encoding"})
	assert.True(t, IsInputInvalid(err))
}

func TestApply_DebugHandler(t *testing.T) {
	var seen string
	h := DebugFunc(func(ctx context.Context, s *Store, text string) (string, error) {
		seen = text
		return "report", nil
	})
	e := newTestExecutor(t, WithDebugHandler(h))

	res, err := e.Apply(context.Background(), Debug{Text: "diff"})
	require.NoError(t, err)
	assert.Equal(t, "diff", seen)
	assert.Equal(t, "report", res.Text)
	assert.False(t, res.Changed)
}

func TestApply_DebugHandlerError(t *testing.T) {
	boom := errors.New("boom")
	h := DebugFunc(func(context.Context, *Store, string) (string, error) {
		return "", boom
	})
	e := newTestExecutor(t, WithDebugHandler(h))

	_, err := e.Apply(context.Background(), Debug{Text: "diff"})
	assert.ErrorIs(t, err, boom)
}

func TestApply_Nil(t *testing.T) {
	e := newTestExecutor(t)
	_, err := e.Apply(context.Background(), nil)
	assert.True(t, IsInputInvalid(err))
}

func TestKindMutates(t *testing.T) {
	mutating := map[Kind]bool{
		KindAdd: true, KindClear: true, KindEdit: true, KindRemove: true, KindSetStatus: true,
	}
	for _, k := range AllKinds() {
		assert.Equal(t, mutating[k], k.Mutates(), "kind %s", k)
	}
}
