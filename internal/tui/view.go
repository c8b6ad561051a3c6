package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  thingstodo"))
	b.WriteString("\n\n")

	switch m.step {
	case StepPickAction:
		b.WriteString(m.actions.View())
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("enter: choose  q: save and exit"))
		b.WriteString("\n")

	case StepPickItem:
		b.WriteString(m.argumentHeader())
		b.WriteString(m.items.View())
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("enter: choose  esc: cancel"))
		b.WriteString("\n")

	case StepTypeArgument:
		b.WriteString(m.argumentHeader())
		b.WriteString(m.text.View())
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("enter: confirm  esc: cancel"))
		b.WriteString("\n")

	case StepConfirmClear:
		b.WriteString(fmt.Sprintf("Are you sure? This removes all %d todos. [y/n]\n", m.exec.Store().Len()))

	case StepDone:
		return ""
	}

	if m.message != "" {
		b.WriteString("\n")
		style := successStyle
		if m.failed {
			style = errorStyle
		}
		b.WriteString(outputStyle.Render(style.Render(m.message)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) argumentHeader() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render(m.spec.Usage()))
	b.WriteString("\n")
	for i, arg := range m.args {
		fmt.Fprintf(&b, "  %s: %s\n", m.spec.Args[i].Name, arg)
	}
	b.WriteString("\n")
	return b.String()
}
