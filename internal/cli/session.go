package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/thingstodo/internal/bench"
	"github.com/roach88/thingstodo/internal/codec"
	"github.com/roach88/thingstodo/internal/config"
	"github.com/roach88/thingstodo/internal/history"
	"github.com/roach88/thingstodo/internal/persist"
	"github.com/roach88/thingstodo/internal/todo"
)

// session is one loaded todo list plus everything needed to change and
// persist it.
type session struct {
	opts     *RootOptions
	cfg      *config.Config
	registry *codec.Registry
	codec    codec.Codec
	files    *persist.FileStore
	store    *todo.Store
	logger   *slog.Logger

	// recovered is set when the data file could not be read and the session
	// started from an empty list instead.
	recovered bool
}

func loadConfig(opts *RootOptions, reg *codec.Registry) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if err := cfg.Validate(reg); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid config", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config, verbose bool) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// openSession loads the configured data file. A missing file is an empty
// list. Any other load failure is an error unless freshOnError is set.
func openSession(cmd *cobra.Command, opts *RootOptions, freshOnError bool) (*session, error) {
	reg := codec.Builtin()
	cfg, err := loadConfig(opts, reg)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg, opts.Verbose)

	c, err := reg.Lookup(cfg.Storage.DefaultEncoding)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid config", err)
	}
	dataDir, err := cfg.DataDir()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to resolve data directory", err)
	}

	files := persist.NewFileStore(dataDir,
		persist.WithBackup(cfg.Storage.UseBackup),
		persist.WithLogger(logger),
	)

	recovered := false
	store, err := files.Load(c)
	switch {
	case err == nil:
		logger.Debug("todo list loaded", "path", files.Path(c), "items", store.Len())
	case errors.Is(err, persist.ErrNotFound):
		logger.Debug("no data file yet, starting empty", "path", files.Path(c))
		store = todo.New()
	case freshOnError:
		logger.Warn("could not load todo list, starting empty", "path", files.Path(c), "error", err)
		store = todo.New()
		recovered = true
	default:
		return nil, WrapExitError(ExitCommandError, "failed to load todo list", err)
	}

	return &session{
		opts:      opts,
		cfg:       cfg,
		registry:  reg,
		codec:     c,
		files:     files,
		store:     store,
		logger:    logger,
		recovered: recovered,
	}, nil
}

// harness builds a benchmark harness over codecs. A nil recorder disables
// history.
func (s *session) harness(codecs []codec.Codec, parallel bool, recorder bench.Recorder) (*bench.Harness, error) {
	dir, err := s.cfg.DiagnosticsDir()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to resolve diagnostics directory", err)
	}

	opts := []bench.Option{
		bench.WithParallel(parallel),
		bench.WithLogger(s.logger),
	}
	if recorder != nil {
		opts = append(opts, bench.WithRecorder(recorder))
	}
	if s.opts.Clock != nil {
		opts = append(opts, bench.WithClock(s.opts.Clock))
	}
	if s.opts.IDGenerator != nil {
		opts = append(opts, bench.WithIDGenerator(s.opts.IDGenerator))
	}
	return bench.New(codecs, persist.NewDiagnosticDir(dir), opts...), nil
}

// executor returns an executor over the session store with debug commands
// wired to the benchmark.
func (s *session) executor() (*todo.Executor, error) {
	h, err := s.harness(s.registry.All(), s.cfg.Diagnostics.Parallel, nil)
	if err != nil {
		return nil, err
	}
	return todo.NewExecutor(s.store,
		todo.WithStrictEdit(s.cfg.Edit.Strict),
		todo.WithDebugHandler(bench.NewDebugger(h, s.opts.Seed)),
		todo.WithLogger(s.logger),
	), nil
}

// apply runs cmd and saves the list when it changed.
func (s *session) apply(ctx context.Context, exec *todo.Executor, cmd todo.Command) (todo.Result, error) {
	res, err := exec.Apply(ctx, cmd)
	if err != nil {
		return todo.Result{}, err
	}
	if cmd.Kind().Mutates() && res.Changed {
		if err := s.save(); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (s *session) save() error {
	if err := s.files.Save(s.store, s.codec); err != nil {
		return WrapExitError(ExitCommandError, "failed to save todo list", err)
	}
	return nil
}

// openHistory opens the benchmark history database, creating its directory.
func openHistory(cfg *config.Config) (*history.Store, error) {
	path, err := cfg.HistoryPath()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to resolve history path", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to create history directory", err)
	}
	st, err := history.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to open history %s", path), err)
	}
	return st, nil
}
