package input

import (
	"fmt"
	"strings"

	"github.com/roach88/thingstodo/internal/todo"
)

// ArgType describes what an argument holds, so prompts can offer the right
// widget.
type ArgType int

const (
	// ArgText is free text that must not be empty.
	ArgText ArgType = iota
	// ArgBool is a boolean answer, see ParseBool.
	ArgBool
	// ArgExisting names an item already in the store.
	ArgExisting
)

func (t ArgType) String() string {
	switch t {
	case ArgBool:
		return "bool"
	case ArgExisting:
		return "existing item"
	default:
		return "text"
	}
}

// Arg is one positional argument of a command.
type Arg struct {
	Name string
	Type ArgType
}

// Spec describes one command word.
type Spec struct {
	Word    string
	Kind    todo.Kind
	Summary string
	Args    []Arg

	// Variadic joins every argument into the last one.
	Variadic bool
}

var specs = []Spec{
	{Word: "add", Kind: todo.KindAdd, Summary: "Add a new item", Args: []Arg{{"todo", ArgText}}},
	{Word: "clear", Kind: todo.KindClear, Summary: "Remove every item"},
	{Word: "edit", Kind: todo.KindEdit, Summary: "Rename an item", Args: []Arg{{"todo", ArgExisting}, {"new text", ArgText}}},
	{Word: "ls", Kind: todo.KindList, Summary: "List every item"},
	{Word: "lss", Kind: todo.KindListFiltered, Summary: "List items by status", Args: []Arg{{"status", ArgBool}}},
	{Word: "rm", Kind: todo.KindRemove, Summary: "Remove an item", Args: []Arg{{"todo", ArgExisting}}},
	{Word: "set", Kind: todo.KindSetStatus, Summary: "Set an item's status", Args: []Arg{{"todo", ArgExisting}, {"status", ArgBool}}},
	{Word: "debug", Kind: todo.KindDebug, Summary: "Run a diagnostic", Args: []Arg{{"input", ArgText}}, Variadic: true},
}

// Specs returns every command word in presentation order.
func Specs() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// Words returns the command words in presentation order.
func Words() []string {
	words := make([]string, len(specs))
	for i, s := range specs {
		words[i] = s.Word
	}
	return words
}

// Lookup finds the spec for a command word. "secret" is accepted as an
// alias of "debug".
func Lookup(word string) (Spec, error) {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "secret" {
		w = "debug"
	}
	if w == "" {
		return Spec{}, badCommand("Command cannot be empty!")
	}
	for _, s := range specs {
		if s.Word == w {
			return s, nil
		}
	}
	return Spec{}, badCommand("Unknown command %q", word)
}

// Build validates args for a command word and returns the command.
func Build(word string, args []string) (todo.Command, error) {
	spec, err := Lookup(word)
	if err != nil {
		return nil, err
	}
	return spec.Build(args)
}

// Build validates args against s and returns the command.
func (s Spec) Build(args []string) (todo.Command, error) {
	if s.Variadic && len(args) > len(s.Args) {
		n := len(s.Args) - 1
		args = append(args[:n:n], strings.Join(args[n:], " "))
	}
	if len(args) != len(s.Args) {
		return nil, s.argCountError(len(args))
	}

	for i, a := range s.Args {
		if a.Type != ArgBool && args[i] == "" {
			return nil, badArgument("%s cannot be empty for the %q command.", a.Name, s.Word)
		}
	}

	switch s.Kind {
	case todo.KindAdd:
		return todo.Add{Name: args[0]}, nil
	case todo.KindClear:
		return todo.Clear{}, nil
	case todo.KindEdit:
		return todo.Edit{Existing: args[0], NewName: args[1]}, nil
	case todo.KindList:
		return todo.List{}, nil
	case todo.KindListFiltered:
		status, err := ParseBool(args[0])
		if err != nil {
			return nil, err
		}
		return todo.ListFiltered{Status: status}, nil
	case todo.KindRemove:
		return todo.Remove{Name: args[0]}, nil
	case todo.KindSetStatus:
		status, err := ParseBool(args[1])
		if err != nil {
			return nil, err
		}
		return todo.SetStatus{Name: args[0], Status: status}, nil
	case todo.KindDebug:
		return todo.Debug{Text: args[0]}, nil
	}
	return nil, badCommand("no builder for %q", s.Word)
}

// Usage renders the word with its argument names, e.g. "set <todo> <status>".
func (s Spec) Usage() string {
	var b strings.Builder
	b.WriteString(s.Word)
	for _, a := range s.Args {
		fmt.Fprintf(&b, " <%s>", a.Name)
	}
	if s.Variadic {
		b.WriteString("...")
	}
	return b.String()
}

func (s Spec) argCountError(got int) *Error {
	want := len(s.Args)
	noun := "arguments"
	if want == 1 {
		noun = "argument"
	}
	verb := "were"
	if got == 1 {
		verb = "was"
	}
	return badArgument("Invalid argument count - the %q command expects %d %s, but %d %s received.",
		s.Word, want, noun, got, verb)
}
