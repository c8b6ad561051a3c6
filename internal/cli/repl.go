package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/thingstodo/internal/tui"
)

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Edit the list interactively",
		Long: `Start the interactive prompt: pick an action, answer its prompts, repeat.
The list is saved after every change.

An unreadable data file starts an empty list unless --fresh-on-error=false.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := formatter(rootOpts, cmd)

			fresh := true
			if cmd.Flags().Changed("fresh-on-error") {
				fresh = rootOpts.FreshOnError
			}

			sess, err := openSession(cmd, rootOpts, fresh)
			if err != nil {
				return out.Fail(err)
			}
			exec, err := sess.executor()
			if err != nil {
				return out.Fail(err)
			}

			if sess.recovered {
				sess.logger.Warn("data file left untouched until the first change is saved", "path", sess.files.Path(sess.codec))
			}

			// Changes are saved as they happen; exit only retries a failed save.
			var pending bool
			save := func() error {
				err := sess.save()
				pending = err != nil
				return err
			}

			if err := tui.Run(cmd.Context(), exec, save, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return out.Fail(err)
			}
			if pending {
				if err := sess.save(); err != nil {
					return out.Fail(err)
				}
			}
			return nil
		},
	}
}
