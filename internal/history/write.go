package history

import (
	"context"
	"fmt"
	"time"

	"github.com/roach88/thingstodo/internal/bench"
)

// RecordRun stores a finished report and all of its codec results in one
// transaction. Recording a run ID that already exists fails.
func (s *Store) RecordRun(ctx context.Context, r *bench.Report) error {
	if r == nil {
		return fmt.Errorf("record run: nil report")
	}
	if r.RunID == "" {
		return fmt.Errorf("record run: empty run id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record run: begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, started_at, items, fingerprint, parallel, pass)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		r.RunID,
		formatTime(r.StartedAt),
		r.Items,
		r.Fingerprint,
		boolToInt(r.Parallel),
		boolToInt(r.Pass()),
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", r.RunID, err)
	}

	for i, res := range r.Results {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO codec_results
			(run_id, position, codec, ext, status, bytes, encode_ns, decode_ns, fingerprint, diff_entries, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			r.RunID,
			i,
			res.Codec,
			res.Ext,
			string(res.Status),
			res.Bytes,
			int64(res.EncodeTime),
			int64(res.DecodeTime),
			res.Fingerprint,
			len(res.Diff),
			res.Error,
		)
		if err != nil {
			return fmt.Errorf("record run %s: codec %s: %w", r.RunID, res.Codec, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record run %s: commit: %w", r.RunID, err)
	}
	return nil
}

// DeleteRun removes a run and its codec results.
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("delete run %s: %w", runID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run %s: rows affected: %w", runID, err)
	}
	if n == 0 {
		return fmt.Errorf("delete run %s: %w", runID, ErrRunNotFound)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
