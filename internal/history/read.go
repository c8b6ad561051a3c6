package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/thingstodo/internal/bench"
)

// Run is the summary row of one recorded harness run.
type Run struct {
	RunID       string    `json:"run_id"`
	StartedAt   time.Time `json:"started_at"`
	Items       int       `json:"items"`
	Fingerprint string    `json:"fingerprint"`
	Parallel    bool      `json:"parallel"`
	Pass        bool      `json:"pass"`
	Codecs      int       `json:"codecs"`
	Failures    int       `json:"failures"`
}

// CodecResult is one stored codec measurement. Diff entries are not kept,
// only their count.
type CodecResult struct {
	Codec       string        `json:"codec"`
	Ext         string        `json:"ext"`
	Status      bench.Status  `json:"status"`
	Bytes       int           `json:"bytes"`
	EncodeTime  time.Duration `json:"encode_ns"`
	DecodeTime  time.Duration `json:"decode_ns"`
	Fingerprint string        `json:"fingerprint,omitempty"`
	DiffEntries int           `json:"diff_entries"`
	Error       string        `json:"error,omitempty"`
}

// CodecSummary aggregates every stored result of one codec.
type CodecSummary struct {
	Codec         string        `json:"codec"`
	Runs          int           `json:"runs"`
	Passes        int           `json:"passes"`
	AvgBytes      float64       `json:"avg_bytes"`
	AvgEncodeTime time.Duration `json:"avg_encode_ns"`
	AvgDecodeTime time.Duration `json:"avg_decode_ns"`
}

// ListRuns returns the most recent runs first. A limit of zero or less
// returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT r.run_id, r.started_at, r.items, r.fingerprint, r.parallel, r.pass,
		       COUNT(c.codec),
		       COALESCE(SUM(CASE WHEN c.status <> 'pass' THEN 1 ELSE 0 END), 0)
		FROM runs r
		LEFT JOIN codec_results c ON c.run_id = r.run_id
		GROUP BY r.run_id
		ORDER BY r.started_at DESC, r.run_id COLLATE BINARY DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns the summary of one run.
func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT r.run_id, r.started_at, r.items, r.fingerprint, r.parallel, r.pass,
		       COUNT(c.codec),
		       COALESCE(SUM(CASE WHEN c.status <> 'pass' THEN 1 ELSE 0 END), 0)
		FROM runs r
		LEFT JOIN codec_results c ON c.run_id = r.run_id
		WHERE r.run_id = ?
		GROUP BY r.run_id
	`, runID)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("get run %s: %w", runID, ErrRunNotFound)
	}
	return run, err
}

// RunResults returns the codec results of one run in the order they ran.
func (s *Store) RunResults(ctx context.Context, runID string) ([]CodecResult, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE run_id = ?`, runID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("run results %s: %w", runID, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("run results %s: %w", runID, ErrRunNotFound)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT codec, ext, status, bytes, encode_ns, decode_ns, fingerprint, diff_entries, error
		FROM codec_results
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("run results %s: %w", runID, err)
	}
	defer rows.Close()

	results := []CodecResult{}
	for rows.Next() {
		var (
			res            CodecResult
			status         string
			encode, decode int64
		)
		if err := rows.Scan(
			&res.Codec,
			&res.Ext,
			&status,
			&res.Bytes,
			&encode,
			&decode,
			&res.Fingerprint,
			&res.DiffEntries,
			&res.Error,
		); err != nil {
			return nil, fmt.Errorf("scan codec result: %w", err)
		}
		res.Status = bench.Status(status)
		res.EncodeTime = time.Duration(encode)
		res.DecodeTime = time.Duration(decode)
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate codec results: %w", err)
	}
	return results, nil
}

// Summary aggregates stored results per codec, ordered by codec name.
// Averages cover only results that produced bytes.
func (s *Store) Summary(ctx context.Context) ([]CodecSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT codec,
		       COUNT(*),
		       SUM(CASE WHEN status = 'pass' THEN 1 ELSE 0 END),
		       COALESCE(AVG(CASE WHEN bytes > 0 THEN bytes END), 0),
		       COALESCE(AVG(CASE WHEN bytes > 0 THEN encode_ns END), 0),
		       COALESCE(AVG(CASE WHEN bytes > 0 THEN decode_ns END), 0)
		FROM codec_results
		GROUP BY codec
		ORDER BY codec COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	defer rows.Close()

	out := []CodecSummary{}
	for rows.Next() {
		var (
			sum            CodecSummary
			encode, decode float64
		)
		if err := rows.Scan(&sum.Codec, &sum.Runs, &sum.Passes, &sum.AvgBytes, &encode, &decode); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		sum.AvgEncodeTime = time.Duration(encode)
		sum.AvgDecodeTime = time.Duration(decode)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run            Run
		startedAt      string
		parallel, pass int
	)
	err := row.Scan(
		&run.RunID,
		&startedAt,
		&run.Items,
		&run.Fingerprint,
		&parallel,
		&pass,
		&run.Codecs,
		&run.Failures,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return Run{}, fmt.Errorf("scan run %s: started_at: %w", run.RunID, err)
	}
	run.Parallel = parallel != 0
	run.Pass = pass != 0
	return run, nil
}
