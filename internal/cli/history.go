package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/thingstodo/internal/codec"
	"github.com/roach88/thingstodo/internal/history"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit   int
	Summary bool
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded bench runs",
		Long: `List recorded bench runs, newest first. With a run ID, show the per-codec
results of that run. With --summary, average every stored result per codec.

Examples:
  thingstodo history
  thingstodo history --limit 3
  thingstodo history 0190f3c2-7e0a-7c4e-9d38-5b1f3e6c2a11
  thingstodo history --summary`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd, args)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "number of runs to list (0 = all)")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "average results per codec")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command, args []string) error {
	out := formatter(opts.RootOptions, cmd)

	cfg, err := loadConfig(opts.RootOptions, codec.Builtin())
	if err != nil {
		return out.Fail(err)
	}
	hist, err := openHistory(cfg)
	if err != nil {
		return out.Fail(err)
	}
	defer hist.Close()

	ctx := cmd.Context()

	switch {
	case len(args) == 1:
		run, err := hist.GetRun(ctx, args[0])
		if err != nil {
			return out.Fail(err)
		}
		results, err := hist.RunResults(ctx, args[0])
		if err != nil {
			return out.Fail(err)
		}
		data := struct {
			Run     history.Run           `json:"run"`
			Results []history.CodecResult `json:"results"`
		}{run, results}
		return out.Emit(formatRun(run, results), data)

	case opts.Summary:
		summary, err := hist.Summary(ctx)
		if err != nil {
			return out.Fail(err)
		}
		return out.Emit(formatSummary(summary), summary)

	default:
		runs, err := hist.ListRuns(ctx, opts.Limit)
		if err != nil {
			return out.Fail(err)
		}
		return out.Emit(formatRuns(runs), runs)
	}
}

func passWord(pass bool) string {
	if pass {
		return "pass"
	}
	return "FAIL"
}

func formatRuns(runs []history.Run) string {
	if len(runs) == 0 {
		return "No bench runs recorded."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-36s  %-20s  %5s  %-12s  %s", "RUN", "STARTED", "ITEMS", "FINGERPRINT", "RESULT")
	for _, r := range runs {
		result := passWord(r.Pass)
		if !r.Pass {
			result = fmt.Sprintf("%s (%d/%d failed)", result, r.Failures, r.Codecs)
		}
		fmt.Fprintf(&b, "\n%-36s  %-20s  %5d  %-12s  %s",
			r.RunID, r.StartedAt.Format(time.RFC3339), r.Items, r.Fingerprint, result)
	}
	return b.String()
}

func formatRun(run history.Run, results []history.CodecResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s\n", run.RunID)
	fmt.Fprintf(&b, "Started:     %s\n", run.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Items:       %d\n", run.Items)
	fmt.Fprintf(&b, "Fingerprint: %s\n", run.Fingerprint)
	fmt.Fprintf(&b, "Parallel:    %t\n", run.Parallel)
	fmt.Fprintf(&b, "Result:      %s\n\n", passWord(run.Pass))

	fmt.Fprintf(&b, "%-12s  %-14s  %8s  %12s  %12s", "CODEC", "STATUS", "BYTES", "ENCODE", "DECODE")
	for _, r := range results {
		fmt.Fprintf(&b, "\n%-12s  %-14s  %8d  %12s  %12s", r.Codec, r.Status, r.Bytes, r.EncodeTime, r.DecodeTime)
		if r.Error != "" {
			fmt.Fprintf(&b, "\n  %s", r.Error)
		}
	}
	return b.String()
}

func formatSummary(summary []history.CodecSummary) string {
	if len(summary) == 0 {
		return "No bench runs recorded."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s  %5s  %6s  %10s  %12s  %12s", "CODEC", "RUNS", "PASSES", "AVG BYTES", "AVG ENCODE", "AVG DECODE")
	for _, s := range summary {
		fmt.Fprintf(&b, "\n%-12s  %5d  %6d  %10.1f  %12s  %12s",
			s.Codec, s.Runs, s.Passes, s.AvgBytes, s.AvgEncodeTime, s.AvgDecodeTime)
	}
	return b.String()
}
