package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/thingstodo/internal/input"
	"github.com/roach88/thingstodo/internal/todo"
)

// ClearOptions holds flags for the clear command.
type ClearOptions struct {
	*RootOptions
	Yes bool
}

// ListOptions holds flags for the ls command.
type ListOptions struct {
	*RootOptions
	Status string
}

func newTodoCommands(opts *RootOptions) []*cobra.Command {
	var cmds []*cobra.Command
	for _, spec := range input.Specs() {
		switch spec.Word {
		case "clear":
			cmds = append(cmds, NewClearCommand(opts))
		case "ls":
			cmds = append(cmds, NewListCommand(opts))
		default:
			cmds = append(cmds, newWordCommand(opts, spec))
		}
	}
	return cmds
}

// newWordCommand turns an input spec into a subcommand. Argument checking is
// left to the spec so the messages match the REPL.
func newWordCommand(opts *RootOptions, spec input.Spec) *cobra.Command {
	cmd := &cobra.Command{
		Use:           spec.Usage(),
		Short:         spec.Summary,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWord(opts, cmd, spec.Word, args)
		},
	}
	if spec.Kind == todo.KindDebug {
		cmd.Aliases = []string{"secret"}
		cmd.Long = `Run a diagnostic against the stored list.

  encoding  run every codec and compare what comes back
  diff      run the randomized diff self-test`
	}
	return cmd
}

func runWord(opts *RootOptions, cmd *cobra.Command, word string, args []string) error {
	out := formatter(opts, cmd)

	c, err := input.Build(word, args)
	if err != nil {
		return out.Fail(err)
	}
	return runCommand(opts, cmd, c)
}

func runCommand(opts *RootOptions, cmd *cobra.Command, c todo.Command) error {
	out := formatter(opts, cmd)

	sess, err := openSession(cmd, opts, opts.FreshOnError)
	if err != nil {
		return out.Fail(err)
	}
	exec, err := sess.executor()
	if err != nil {
		return out.Fail(err)
	}

	res, err := sess.apply(cmd.Context(), exec, c)
	if err != nil {
		return out.Fail(err)
	}
	return out.Emit(todo.Describe(c, res), res)
}

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClearOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every item",
		Long: `Remove every item from the list.

Asks for confirmation on stdin unless --yes is given.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.Yes && !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Are you sure?") {
				return formatter(opts.RootOptions, cmd).Emit("Cancelling clear operation.", todo.Result{Kind: todo.KindClear})
			}
			return runCommand(opts.RootOptions, cmd, todo.Clear{})
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

// confirm asks a yes/no question. Anything that does not parse as yes,
// including EOF, is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	yes, err := input.ParseBool(strings.TrimSpace(line))
	return err == nil && yes
}

// NewListCommand creates the ls command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List every item",
		Long: `List every item, or only those with a given status.

Examples:
  thingstodo ls
  thingstodo ls --status yes`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("status") {
				return runWord(opts.RootOptions, cmd, "lss", []string{opts.Status})
			}
			return runWord(opts.RootOptions, cmd, "ls", nil)
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "only list items with this status (t/true/y/yes, f/false/n/no)")

	return cmd
}
