package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/thingstodo/internal/codec"
)

// CodecInfo describes one registered codec for output.
type CodecInfo struct {
	codec.Descriptor
	File    string `json:"file"`
	Default bool   `json:"default"`
}

// NewCodecsCommand creates the codecs command.
func NewCodecsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "codecs",
		Short:         "List the available encodings",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := formatter(rootOpts, cmd)

			reg := codec.Builtin()
			cfg, err := loadConfig(rootOpts, reg)
			if err != nil {
				return out.Fail(err)
			}
			def, err := reg.Lookup(cfg.Storage.DefaultEncoding)
			if err != nil {
				return out.Fail(err)
			}

			infos := make([]CodecInfo, 0)
			var b strings.Builder
			for i, c := range reg.All() {
				info := CodecInfo{
					Descriptor: codec.Describe(c),
					File:       codec.FileName(c),
					Default:    c.Name() == def.Name(),
				}
				infos = append(infos, info)

				marker := " "
				if info.Default {
					marker = "*"
				}
				if i > 0 {
					b.WriteString("\n")
				}
				fmt.Fprintf(&b, "%s %-12s %s", marker, info.Name, info.File)
			}
			return out.Emit(b.String(), infos)
		},
	}
}
