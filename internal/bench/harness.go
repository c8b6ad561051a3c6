package bench

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/thingstodo/internal/canon"
	"github.com/roach88/thingstodo/internal/codec"
	"github.com/roach88/thingstodo/internal/diff"
	"github.com/roach88/thingstodo/internal/persist"
	"github.com/roach88/thingstodo/internal/todo"
)

// Clock reads the wall clock. Elapsed times are differences of two readings.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// IDGenerator produces run identifiers.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run IDs.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Recorder persists finished reports.
type Recorder interface {
	RecordRun(ctx context.Context, r *Report) error
}

// Harness runs codecs against a store.
type Harness struct {
	codecs   []codec.Codec
	diag     *persist.DiagnosticDir
	clock    Clock
	ids      IDGenerator
	recorder Recorder
	parallel bool
	logger   *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithClock replaces the wall clock used for timings.
func WithClock(c Clock) Option {
	return func(h *Harness) { h.clock = c }
}

// WithIDGenerator replaces the run ID generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(h *Harness) { h.ids = g }
}

// WithRecorder stores every finished report.
func WithRecorder(r Recorder) Option {
	return func(h *Harness) { h.recorder = r }
}

// WithParallel runs each codec on its own goroutine.
func WithParallel(parallel bool) Option {
	return func(h *Harness) { h.parallel = parallel }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		if l != nil {
			h.logger = l
		}
	}
}

// New creates a harness over codecs, writing artifacts to diag.
func New(codecs []codec.Codec, diag *persist.DiagnosticDir, opts ...Option) *Harness {
	h := &Harness{
		codecs: codecs,
		diag:   diag,
		clock:  systemClock{},
		ids:    UUIDv7Generator{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run benchmarks and verifies every codec against s.
//
// The report always has one result per codec, in codec order. Codec
// failures are recorded in the report, not returned. A non-nil error means
// the run was cut short (context cancelled, codecs never started are marked
// skipped) or the report could not be recorded; the report is still returned.
func (h *Harness) Run(ctx context.Context, s *todo.Store) (*Report, error) {
	original := s.Map()
	fp, err := canon.Fingerprint(original)
	if err != nil {
		return nil, fmt.Errorf("bench: %w", err)
	}

	report := &Report{
		RunID:       h.ids.Generate(),
		StartedAt:   h.clock.Now().UTC(),
		Items:       len(original),
		Fingerprint: canon.ShortFingerprint(fp),
		Parallel:    h.parallel,
		Results:     make([]CodecResult, len(h.codecs)),
	}
	for i, c := range h.codecs {
		report.Results[i] = CodecResult{
			Codec:  c.Name(),
			Ext:    c.Ext(),
			File:   filepath.Base(h.diag.Path(c)),
			Status: StatusSkipped,
		}
	}

	h.logger.Info("bench started", "run_id", report.RunID, "items", report.Items, "codecs", len(h.codecs), "parallel", h.parallel)

	var runErr error
	if h.parallel {
		runErr = h.runParallel(ctx, original, report)
	} else {
		runErr = h.runSequential(ctx, original, report)
	}

	h.logger.Info("bench finished", "run_id", report.RunID, "pass", report.Pass(), "failures", len(report.Failures()))

	if runErr != nil {
		return report, fmt.Errorf("bench: %w", runErr)
	}

	if h.recorder != nil {
		if err := h.recorder.RecordRun(ctx, report); err != nil {
			return report, fmt.Errorf("bench: record run: %w", err)
		}
	}
	return report, nil
}

func (h *Harness) runSequential(ctx context.Context, original map[string]bool, report *Report) error {
	written := make([]bool, len(h.codecs))

	for i, c := range h.codecs {
		if err := ctx.Err(); err != nil {
			return err
		}
		written[i] = h.encodeAndWrite(c, original, &report.Results[i])
	}

	for i, c := range h.codecs {
		if !written[i] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		h.readAndVerify(c, original, &report.Results[i])
	}
	return nil
}

func (h *Harness) runParallel(ctx context.Context, original map[string]bool, report *Report) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		canceled error
	)

	for i, c := range h.codecs {
		wg.Add(1)
		go func(res *CodecResult, c codec.Codec) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				mu.Lock()
				canceled = err
				mu.Unlock()
				return
			}
			if h.encodeAndWrite(c, original, res) {
				h.readAndVerify(c, original, res)
			}
		}(&report.Results[i], c)
	}

	wg.Wait()
	return canceled
}

// encodeAndWrite is phase 1 for one codec. It reports whether bytes reached
// the diagnostics directory.
func (h *Harness) encodeAndWrite(c codec.Codec, original map[string]bool, res *CodecResult) bool {
	start := h.clock.Now()
	data, err := c.Encode(original)
	res.EncodeTime = h.clock.Now().Sub(start)

	if err != nil {
		res.Status = StatusEncodeError
		res.Error = err.Error()
		h.logger.Warn("encode failed", "codec", c.Name(), "error", err)
		return false
	}
	res.Bytes = len(data)

	if err := h.diag.Write(c, data); err != nil {
		res.Status = StatusWriteError
		res.Error = err.Error()
		h.logger.Warn("write failed", "codec", c.Name(), "error", err)
		return false
	}

	res.Status = StatusUnverified
	h.logger.Debug("encoded", "codec", c.Name(), "bytes", res.Bytes, "elapsed", res.EncodeTime)
	return true
}

// readAndVerify is phase 2 for one codec.
func (h *Harness) readAndVerify(c codec.Codec, original map[string]bool, res *CodecResult) {
	data, err := h.diag.Read(c)
	if err != nil {
		res.Status = StatusReadError
		res.Error = err.Error()
		h.logger.Warn("read failed", "codec", c.Name(), "error", err)
		return
	}

	start := h.clock.Now()
	decoded, err := c.Decode(data)
	res.DecodeTime = h.clock.Now().Sub(start)

	if err != nil {
		res.Status = StatusDecodeError
		res.Error = err.Error()
		h.logger.Warn("decode failed", "codec", c.Name(), "error", err)
		return
	}

	if fp, err := canon.Fingerprint(decoded); err == nil {
		res.Fingerprint = canon.ShortFingerprint(fp)
	}

	result := diff.CompareMaps(original, decoded)
	if !result.Identical() {
		res.Status = StatusMismatch
		res.Diff = result.Entries
		h.logger.Warn("round trip mismatch", "codec", c.Name(), "entries", result.Count())
		return
	}

	res.Status = StatusPass
	h.logger.Debug("verified", "codec", c.Name(), "elapsed", res.DecodeTime)
}
