package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/thingstodo/internal/config"
)

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long: `Write the default configuration, with comments, to the --config path or
to $XDG_CONFIG_HOME/thingstodo/config.toml. An existing file is never
overwritten.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := formatter(rootOpts, cmd)

			path, err := config.InitFile(rootOpts.ConfigPath)
			if err != nil {
				return out.Fail(err)
			}
			return out.Emit(fmt.Sprintf("Wrote %s", path), map[string]string{"path": path})
		},
	}
}
