package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/thingstodo/internal/bench"
	"github.com/roach88/thingstodo/internal/canon"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose      bool
	Format       string // "json" | "text"
	ConfigPath   string
	FreshOnError bool

	// Clock, IDGenerator and Seed override benchmark timing, run IDs and
	// self-test seeds. Nil means the real clock, UUIDv7 and random seeds.
	Clock       bench.Clock
	IDGenerator bench.IDGenerator
	Seed        func() uint64
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the thingstodo CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command around opts, so callers
// can preset the testing overrides.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "thingstodo",
		Short:   "A todo list with a serialization test bench",
		Long:    "Keep a todo list on disk and compare how well different encodings recreate it.",
		Version: canon.AppVersion,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/thingstodo/config.toml)")
	cmd.PersistentFlags().BoolVar(&opts.FreshOnError, "fresh-on-error", false, "start from an empty list when the data file cannot be read")

	for _, sub := range newTodoCommands(opts) {
		cmd.AddCommand(sub)
	}
	cmd.AddCommand(NewBenchCommand(opts))
	cmd.AddCommand(NewSelfTestCommand(opts))
	cmd.AddCommand(NewScenarioCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewCodecsCommand(opts))
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewReplCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

func formatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
