package cli

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/thingstodo/internal/bench"
	"github.com/roach88/thingstodo/internal/codec"
)

// BenchOptions holds flags for the bench command.
type BenchOptions struct {
	*RootOptions
	Parallel bool
	Record   bool
	Codecs   []string
}

// NewBenchCommand creates the bench command.
func NewBenchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BenchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare every codec on the stored list",
		Long: `Encode the stored list with every codec, write each result to the
diagnostics directory, read it back, decode it, and diff it against the
original. Reports encoded size and timings per codec.

Exit codes:
  0 - Every codec recreated the list exactly
  1 - One or more codecs failed
  2 - Command error (bad config, unreadable data file, etc.)

Examples:
  thingstodo bench
  thingstodo bench --parallel
  thingstodo bench --codec json --codec cbor --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Parallel, "parallel", false, "run each codec on its own goroutine (default from config)")
	cmd.Flags().BoolVar(&opts.Record, "record", false, "store the run in the history database (default from config)")
	cmd.Flags().StringSliceVar(&opts.Codecs, "codec", nil, "only run these codecs")

	return cmd
}

func runBench(opts *BenchOptions, cmd *cobra.Command) error {
	out := formatter(opts.RootOptions, cmd)

	sess, err := openSession(cmd, opts.RootOptions, opts.FreshOnError)
	if err != nil {
		return out.Fail(err)
	}

	parallel := sess.cfg.Diagnostics.Parallel
	if cmd.Flags().Changed("parallel") {
		parallel = opts.Parallel
	}
	record := sess.cfg.Diagnostics.RecordHistory
	if cmd.Flags().Changed("record") {
		record = opts.Record
	}

	var recorder bench.Recorder
	if record {
		hist, err := openHistory(sess.cfg)
		if err != nil {
			return out.Fail(err)
		}
		defer func() {
			if closeErr := hist.Close(); closeErr != nil {
				sess.logger.Error("error closing history", "error", closeErr)
			}
		}()
		recorder = hist
	}

	codecs := sess.registry.All()
	if len(opts.Codecs) > 0 {
		codecs, err = selectCodecs(sess.registry, opts.Codecs)
		if err != nil {
			return out.Fail(err)
		}
	}

	h, err := sess.harness(codecs, parallel, recorder)
	if err != nil {
		return out.Fail(err)
	}

	report, err := h.Run(cmd.Context(), sess.store)
	if report == nil {
		return out.Fail(WrapExitError(ExitCommandError, "bench failed", err))
	}
	if err != nil {
		sess.logger.Error("bench incomplete", "run_id", report.RunID, "error", err)
	}

	var failure *CLIError
	if !report.Pass() || err != nil {
		failure = &CLIError{
			Code:    "E_BENCH_FAILED",
			Message: benchFailureMessage(report, err),
		}
	}
	if emitErr := out.Report(bench.RenderText(report), report, failure); emitErr != nil {
		return emitErr
	}
	if failure != nil {
		return WrapExitError(ExitFailure, failure.Message, err)
	}
	return nil
}

func benchFailureMessage(r *bench.Report, err error) string {
	if err != nil && r.Pass() {
		return "bench run incomplete"
	}
	return fmt.Sprintf("%d of %d codecs failed", len(r.Failures()), len(r.Results))
}

func selectCodecs(reg *codec.Registry, names []string) ([]codec.Codec, error) {
	out := make([]codec.Codec, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		c, err := reg.Lookup(name)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid --codec", err)
		}
		if seen[c.Name()] {
			continue
		}
		seen[c.Name()] = true
		out = append(out, c)
	}
	return out, nil
}

// SelfTestOptions holds flags for the selftest command.
type SelfTestOptions struct {
	*RootOptions
	Seed uint64
}

// NewSelfTestCommand creates the selftest command.
func NewSelfTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SelfTestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Check the diff engine against random changes",
		Long: `Clone the stored list, confirm the clone diffs as identical, apply a
random number of flips, additions and removals to the clone, and confirm
the diff reports them. The stored list is never modified.

The list needs at least two items.

Examples:
  thingstodo selftest
  thingstodo selftest --seed 42`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelfTest(opts, cmd)
		},
	}

	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (0 = random)")

	return cmd
}

func runSelfTest(opts *SelfTestOptions, cmd *cobra.Command) error {
	out := formatter(opts.RootOptions, cmd)

	sess, err := openSession(cmd, opts.RootOptions, opts.FreshOnError)
	if err != nil {
		return out.Fail(err)
	}

	seed := opts.Seed
	if seed == 0 {
		if opts.RootOptions.Seed != nil {
			seed = opts.RootOptions.Seed()
		} else {
			seed = rand.Uint64()
		}
	}

	st, err := bench.SelfTest(sess.store, seed)
	if err != nil {
		return out.Fail(err)
	}

	var failure *CLIError
	if !st.Pass() {
		failure = &CLIError{Code: "E_SELFTEST_FAILED", Message: "diff self-test failed"}
	}
	if err := out.Report(bench.RenderSelfTest(st), st, failure); err != nil {
		return err
	}
	if failure != nil {
		return NewExitError(ExitFailure, failure.Message)
	}
	return nil
}

// ScenarioSummary is the outcome of a scenario directory run.
type ScenarioSummary struct {
	Scenarios []*bench.ScenarioResult `json:"scenarios"`
	Passed    int                     `json:"passed"`
	Failed    int                     `json:"failed"`
	Total     int                     `json:"total"`
}

// NewScenarioCommand creates the scenario command.
func NewScenarioCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario <dir>",
		Short: "Run scripted diff scenarios",
		Long: `Run every YAML scenario in a directory. Each scenario starts from a
list of items, applies commands to a copy, and checks the diff between
the two (and, optionally, that named codecs round-trip the copy).

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (missing directory, invalid scenario file, etc.)

Examples:
  thingstodo scenario ./scenarios
  thingstodo scenario ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runScenarios(opts *RootOptions, cmd *cobra.Command, dir string) error {
	out := formatter(opts, cmd)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return out.Fail(NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", dir)))
	}

	scenarios, err := bench.LoadScenarioDir(dir)
	if err != nil {
		return out.Fail(WrapExitError(ExitCommandError, "failed to load scenarios", err))
	}

	reg := codec.Builtin()
	summary := ScenarioSummary{
		Scenarios: make([]*bench.ScenarioResult, 0, len(scenarios)),
		Total:     len(scenarios),
	}
	var text strings.Builder

	for _, sc := range scenarios {
		res, err := bench.RunScenario(cmd.Context(), sc, reg)
		if err != nil {
			res = &bench.ScenarioResult{Name: sc.Name}
			res.AddError("execution failed: %v", err)
		}
		summary.Scenarios = append(summary.Scenarios, res)

		if res.Pass {
			summary.Passed++
			fmt.Fprintf(&text, "\u2713 %s\n", res.Name)
			continue
		}
		summary.Failed++
		fmt.Fprintf(&text, "\u2717 %s\n", res.Name)
		for _, e := range res.Errors {
			fmt.Fprintf(&text, "  %s\n", e)
		}
	}

	fmt.Fprintf(&text, "\nScenario Summary: %d passed, %d failed, %d total", summary.Passed, summary.Failed, summary.Total)
	if summary.Failed == 0 {
		text.WriteString("\n\u2713 All scenarios passed")
	}

	var failure *CLIError
	if summary.Failed > 0 {
		failure = &CLIError{
			Code:    "E_SCENARIO_FAILED",
			Message: fmt.Sprintf("%d scenario(s) failed", summary.Failed),
		}
	}
	if err := out.Report(text.String(), summary, failure); err != nil {
		return err
	}
	if failure != nil {
		return NewExitError(ExitFailure, failure.Message)
	}
	return nil
}
