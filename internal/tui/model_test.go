package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/thingstodo/internal/todo"
)

const (
	actionAdd   = 0
	actionClear = 1
	actionEdit  = 2
	actionLs    = 3
	actionRm    = 5
	actionSet   = 6
	actionExit  = 8
)

type saveCounter struct {
	calls int
	err   error
}

func (s *saveCounter) save() error {
	s.calls++
	return s.err
}

func newTestModel(t *testing.T, items map[string]bool) (Model, *todo.Store, *saveCounter) {
	t.Helper()
	store, err := todo.FromMap(items)
	require.NoError(t, err)
	saves := &saveCounter{}
	return New(context.Background(), todo.NewExecutor(store), saves.save), store, saves
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next, cmd
}

func enter(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func choose(t *testing.T, m Model, action int) Model {
	t.Helper()
	m.actions.Select(action)
	return enter(t, m)
}

func TestNew(t *testing.T) {
	m, _, _ := newTestModel(t, map[string]bool{"a": false, "b": true})

	assert.Equal(t, StepPickAction, m.Step())
	assert.Equal(t, "Loaded 2 todos from disk.", m.Message())
	assert.Nil(t, m.Init())
}

func TestAdd(t *testing.T) {
	m, store, saves := newTestModel(t, nil)

	m = choose(t, m, actionAdd)
	require.Equal(t, StepTypeArgument, m.Step())

	m.text.SetValue("buy milk")
	m = enter(t, m)

	assert.Equal(t, StepPickAction, m.Step())
	assert.Equal(t, `Added "buy milk".`, m.Message())
	assert.True(t, store.Has("buy milk"))
	assert.Equal(t, 1, saves.calls)
}

func TestAdd_EmptyTextStaysOnPrompt(t *testing.T) {
	m, store, saves := newTestModel(t, nil)

	m = choose(t, m, actionAdd)
	m = enter(t, m)

	assert.Equal(t, StepTypeArgument, m.Step())
	assert.Contains(t, m.Message(), `todo cannot be empty for the "add" command.`)
	assert.True(t, store.IsEmpty())
	assert.Zero(t, saves.calls)
}

func TestAdd_Duplicate(t *testing.T) {
	m, _, saves := newTestModel(t, map[string]bool{"a": false})

	m = choose(t, m, actionAdd)
	m.text.SetValue("a")
	m = enter(t, m)

	assert.Equal(t, StepPickAction, m.Step())
	assert.Contains(t, m.Message(), "Error applying action.")
	assert.Contains(t, m.Message(), "ALREADY_EXISTS")
	assert.Zero(t, saves.calls)
}

func TestRemove_PicksExistingItem(t *testing.T) {
	m, store, saves := newTestModel(t, map[string]bool{"a": false, "b": true})

	m = choose(t, m, actionRm)
	require.Equal(t, StepPickItem, m.Step())

	m.items.Select(1)
	m = enter(t, m)

	assert.Equal(t, `Removed "b".`, m.Message())
	assert.False(t, store.Has("b"))
	assert.True(t, store.Has("a"))
	assert.Equal(t, 1, saves.calls)
}

func TestSet_PickThenTypeStatus(t *testing.T) {
	m, store, _ := newTestModel(t, map[string]bool{"a": false})

	m = choose(t, m, actionSet)
	require.Equal(t, StepPickItem, m.Step())
	m = enter(t, m)
	require.Equal(t, StepTypeArgument, m.Step())

	m.text.SetValue("maybe")
	m = enter(t, m)
	assert.Equal(t, StepTypeArgument, m.Step())
	assert.Contains(t, m.Message(), `Unable to parse "maybe"`)

	m.text.SetValue("YES")
	m = enter(t, m)

	assert.Equal(t, StepPickAction, m.Step())
	assert.Equal(t, `Marked "a" as complete.`, m.Message())
	done, ok := store.Status("a")
	assert.True(t, ok)
	assert.True(t, done)
}

func TestEdit_EmptyStoreFallsBackToText(t *testing.T) {
	m, _, saves := newTestModel(t, nil)

	m = choose(t, m, actionEdit)
	require.Equal(t, StepTypeArgument, m.Step())

	m.text.SetValue("ghost")
	m = enter(t, m)
	require.Equal(t, StepTypeArgument, m.Step())

	m.text.SetValue("spirit")
	m = enter(t, m)

	assert.Equal(t, StepPickAction, m.Step())
	assert.Contains(t, m.Message(), "NOT_FOUND")
	assert.Zero(t, saves.calls)
}

func TestList_NoArguments(t *testing.T) {
	m, _, saves := newTestModel(t, map[string]bool{"a": true})

	m = choose(t, m, actionLs)

	assert.Equal(t, StepPickAction, m.Step())
	assert.Equal(t, "All Todos\n--- -----\n[X] \"a\"", m.Message())
	assert.Zero(t, saves.calls)
}

func TestClear_Confirmation(t *testing.T) {
	m, store, saves := newTestModel(t, map[string]bool{"a": false, "b": false})

	m = choose(t, m, actionClear)
	require.Equal(t, StepConfirmClear, m.Step())
	assert.Contains(t, m.View(), "removes all 2 todos")

	// Unparseable keys are ignored.
	m, _ = press(t, m, runes("x"))
	assert.Equal(t, StepConfirmClear, m.Step())

	m, _ = press(t, m, runes("n"))
	assert.Equal(t, StepPickAction, m.Step())
	assert.Equal(t, "Cancelling clear operation.", m.Message())
	assert.Equal(t, 2, store.Len())

	m = choose(t, m, actionClear)
	m, _ = press(t, m, runes("y"))
	assert.Equal(t, "Todos cleared.", m.Message())
	assert.True(t, store.IsEmpty())
	assert.Equal(t, 1, saves.calls)
}

func TestEscCancelsPrompt(t *testing.T) {
	m, store, _ := newTestModel(t, nil)

	m = choose(t, m, actionAdd)
	m.text.SetValue("half typed")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, StepPickAction, m.Step())
	assert.Equal(t, "Argument prompt cancelled.", m.Message())
	assert.True(t, store.IsEmpty())
}

func TestSaveError(t *testing.T) {
	m, store, saves := newTestModel(t, nil)
	saves.err = errors.New("disk full")

	m = choose(t, m, actionAdd)
	m.text.SetValue("a")
	m = enter(t, m)

	assert.True(t, store.Has("a"))
	assert.Contains(t, m.Message(), "Error saving todo list: disk full")
}

func TestExit(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T, m Model) (Model, tea.Cmd)
	}{
		{"exit entry", func(t *testing.T, m Model) (Model, tea.Cmd) {
			m.actions.Select(actionExit)
			return press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		}},
		{"q", func(t *testing.T, m Model) (Model, tea.Cmd) {
			return press(t, m, runes("q"))
		}},
		{"esc", func(t *testing.T, m Model) (Model, tea.Cmd) {
			return press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		}},
		{"ctrl+c mid prompt", func(t *testing.T, m Model) (Model, tea.Cmd) {
			m = choose(t, m, actionAdd)
			return press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newTestModel(t, nil)
			m, cmd := tt.run(t, m)
			assert.Equal(t, StepDone, m.Step())
			assert.NotNil(t, cmd)
			assert.Empty(t, m.View())
		})
	}
}

func TestWindowResize(t *testing.T) {
	m, _, _ := newTestModel(t, map[string]bool{"a": false})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)

	assert.Equal(t, 100, m.width)
	assert.Equal(t, 34, m.height)
	assert.Contains(t, m.View(), "Please choose an option")
}
