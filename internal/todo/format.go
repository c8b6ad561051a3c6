package todo

import (
	"fmt"
	"strings"
)

const emptyListMessage = "No todos in database, you're either very on top of things or slacking reallllllly bad."

// Describe renders the outcome of cmd for a terminal.
func Describe(cmd Command, res Result) string {
	switch c := cmd.(type) {
	case Add:
		return fmt.Sprintf("Added %q.", c.Name)
	case Clear:
		if !res.Changed {
			return "Nothing to clear."
		}
		return "Todos cleared."
	case Edit:
		return fmt.Sprintf("Renamed %q to %q.", c.Existing, c.NewName)
	case List:
		return FormatList(res.Items)
	case ListFiltered:
		return FormatFiltered(c.Status, res.Items)
	case Remove:
		if res.Removed != nil {
			return fmt.Sprintf("Removed %q.", res.Removed.Name)
		}
		return fmt.Sprintf("Removed %q.", c.Name)
	case SetStatus:
		if !res.Changed {
			return fmt.Sprintf("%q is already %s.", c.Name, StatusWord(c.Status))
		}
		return fmt.Sprintf("Marked %q as %s.", c.Name, StatusWord(c.Status))
	case Debug:
		return strings.TrimRight(res.Text, "\n")
	}
	return ""
}

// FormatList renders every item with a checkbox.
func FormatList(items []Item) string {
	if len(items) == 0 {
		return emptyListMessage
	}
	var b strings.Builder
	b.WriteString("All Todos\n--- -----")
	for _, it := range items {
		b.WriteString("\n")
		b.WriteString(it.String())
	}
	return b.String()
}

// FormatFiltered renders the items that share one status.
func FormatFiltered(done bool, items []Item) string {
	adjective, title, rule := "incomplete", "Incomplete", "----------"
	if done {
		adjective, title, rule = "completed", "Completed", "---------"
	}
	if len(items) == 0 {
		return fmt.Sprintf("There are no %s todos in the database.", adjective)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Todos\n%s -----", title, rule)
	for _, it := range items {
		fmt.Fprintf(&b, "\n\t* %q", it.Name)
	}
	return b.String()
}
