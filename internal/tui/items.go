package tui

import (
	"github.com/charmbracelet/bubbles/list"

	"github.com/roach88/thingstodo/internal/input"
)

// actionItem is one entry of the action picker. exit marks the final
// "Exit" entry.
type actionItem struct {
	spec input.Spec
	exit bool
}

func (a actionItem) Title() string {
	if a.exit {
		return "Exit"
	}
	return a.spec.Usage()
}

func (a actionItem) Description() string {
	if a.exit {
		return "Save and leave"
	}
	return a.spec.Summary
}

func (a actionItem) FilterValue() string { return a.Title() }

// todoItem is one existing item offered when an argument must name one.
type todoItem struct {
	name string
	done bool
}

func (t todoItem) Title() string { return t.name }

func (t todoItem) Description() string {
	if t.done {
		return "complete"
	}
	return "incomplete"
}

func (t todoItem) FilterValue() string { return t.name }

func actionItems() []list.Item {
	specs := input.Specs()
	items := make([]list.Item, 0, len(specs)+1)
	for _, s := range specs {
		items = append(items, actionItem{spec: s})
	}
	return append(items, actionItem{exit: true})
}

func newPicker(title string, items []list.Item, width, height int) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	return l
}
