// Package tui is the interactive REPL: pick an action, answer its argument
// prompts, see the result, repeat.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roach88/thingstodo/internal/input"
	"github.com/roach88/thingstodo/internal/todo"
)

// Step is the current REPL screen.
type Step int

const (
	StepPickAction Step = iota
	StepPickItem
	StepTypeArgument
	StepConfirmClear
	StepDone
)

const (
	defaultWidth  = 60
	defaultHeight = 16
)

// SaveFn persists the store after a command changed it.
type SaveFn func() error

// Model is the bubbletea model for the REPL.
type Model struct {
	ctx  context.Context
	exec *todo.Executor
	save SaveFn

	step    Step
	actions list.Model
	items   list.Model
	text    textinput.Model

	spec input.Spec
	args []string

	message string
	failed  bool
	width   int
	height  int
}

// New creates a REPL over exec. save runs after every command that changed
// the store; it may be nil.
func New(ctx context.Context, exec *todo.Executor, save SaveFn) Model {
	text := textinput.New()
	text.Width = 50

	return Model{
		ctx:     ctx,
		exec:    exec,
		save:    save,
		step:    StepPickAction,
		actions: newPicker("Please choose an option", actionItems(), defaultWidth, defaultHeight),
		items:   newPicker("", nil, defaultWidth, defaultHeight),
		text:    text,
		message: fmt.Sprintf("Loaded %d todos from disk.", exec.Store().Len()),
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, max(msg.Height-6, 4)
		m.actions.SetSize(m.width, m.height)
		m.items.SetSize(m.width, m.height)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.step = StepDone
			return m, tea.Quit
		}

		switch m.step {
		case StepPickAction:
			return m.updatePickAction(msg)
		case StepPickItem:
			return m.updatePickItem(msg)
		case StepTypeArgument:
			return m.updateTypeArgument(msg)
		case StepConfirmClear:
			return m.updateConfirmClear(msg)
		}
	}

	return m, nil
}

func (m Model) updatePickAction(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.step = StepDone
		return m, tea.Quit
	case tea.KeyEnter:
		item, ok := m.actions.SelectedItem().(actionItem)
		if !ok {
			return m, nil
		}
		if item.exit {
			m.step = StepDone
			return m, tea.Quit
		}
		m.spec = item.spec
		m.args = nil
		if item.spec.Kind == todo.KindClear {
			m.step = StepConfirmClear
			return m, nil
		}
		return m.nextArgument()
	case tea.KeyRunes:
		if string(msg.Runes) == "q" {
			m.step = StepDone
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.actions, cmd = m.actions.Update(msg)
	return m, cmd
}

func (m Model) updatePickItem(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.cancel()
	case tea.KeyEnter:
		item, ok := m.items.SelectedItem().(todoItem)
		if !ok {
			return m, nil
		}
		m.args = append(m.args, item.name)
		return m.nextArgument()
	}

	var cmd tea.Cmd
	m.items, cmd = m.items.Update(msg)
	return m, cmd
}

func (m Model) updateTypeArgument(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.cancel()
	case tea.KeyEnter:
		arg := m.spec.Args[len(m.args)]
		value := m.text.Value()
		if err := checkArgument(m.spec, arg, value); err != nil {
			m.message, m.failed = err.Error(), true
			return m, nil
		}
		m.message, m.failed = "", false
		m.args = append(m.args, value)
		return m.nextArgument()
	}

	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	return m, cmd
}

func (m Model) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.cancel()
	case tea.KeyRunes:
		yes, err := input.ParseBool(string(msg.Runes))
		if err != nil {
			return m, nil
		}
		if !yes {
			m.step = StepPickAction
			m.message, m.failed = "Cancelling clear operation.", false
			return m, nil
		}
		return m.run()
	}
	return m, nil
}

// nextArgument prompts for the next missing argument, or runs the command
// when every argument is in.
func (m Model) nextArgument() (tea.Model, tea.Cmd) {
	if len(m.args) >= len(m.spec.Args) {
		return m.run()
	}

	arg := m.spec.Args[len(m.args)]
	if arg.Type == input.ArgExisting && !m.exec.Store().IsEmpty() {
		m.items = newPicker(fmt.Sprintf("Choose %s", arg.Name), m.todoItems(), m.width, m.height)
		m.step = StepPickItem
		return m, nil
	}

	m.text.Reset()
	m.text.Placeholder = arg.Name
	m.text.Prompt = fmt.Sprintf("%s: ", arg.Name)
	m.step = StepTypeArgument
	return m, tea.Batch(m.text.Focus(), textinput.Blink)
}

func (m Model) run() (tea.Model, tea.Cmd) {
	m.step = StepPickAction
	m.text.Blur()

	cmd, err := m.spec.Build(m.args)
	if err != nil {
		m.message, m.failed = fmt.Sprintf("Error creating action.\n%v", err), true
		return m, nil
	}

	res, err := m.exec.Apply(m.ctx, cmd)
	if err != nil {
		m.message, m.failed = fmt.Sprintf("Error applying action.\n%v", err), true
		return m, nil
	}

	m.message, m.failed = todo.Describe(cmd, res), false
	if cmd.Kind().Mutates() && res.Changed && m.save != nil {
		if err := m.save(); err != nil {
			m.message, m.failed = fmt.Sprintf("%s\nError saving todo list: %v", m.message, err), true
		}
	}
	return m, nil
}

func (m Model) cancel() (tea.Model, tea.Cmd) {
	m.step = StepPickAction
	m.text.Blur()
	m.message, m.failed = "Argument prompt cancelled.", false
	return m, nil
}

func (m Model) todoItems() []list.Item {
	all := m.exec.Store().Items()
	items := make([]list.Item, len(all))
	for i, it := range all {
		items[i] = todoItem{name: it.Name, done: it.Done}
	}
	return items
}

// checkArgument validates one typed value the way the command builder will.
func checkArgument(spec input.Spec, arg input.Arg, value string) error {
	if arg.Type == input.ArgBool {
		_, err := input.ParseBool(value)
		return err
	}
	if value == "" {
		return &input.Error{
			Kind:    input.InvalidArgument,
			Message: fmt.Sprintf("%s cannot be empty for the %q command.", arg.Name, spec.Word),
		}
	}
	return nil
}

// Step returns the current screen.
func (m Model) Step() Step {
	return m.step
}

// Message returns the last status line shown under the prompt.
func (m Model) Message() string {
	return m.message
}

// Run starts the REPL on in/out and blocks until the user exits.
func Run(ctx context.Context, exec *todo.Executor, save SaveFn, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(ctx, exec, save),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("repl: %w", err)
	}
	return nil
}
