package bench

import (
	"sort"
	"time"

	"github.com/roach88/thingstodo/internal/diff"
)

// Status is the outcome of one codec in a run.
type Status string

const (
	StatusPass        Status = "pass"
	StatusMismatch    Status = "mismatch"
	StatusEncodeError Status = "encode_error"
	StatusWriteError  Status = "write_error"
	StatusReadError   Status = "read_error"
	StatusDecodeError Status = "decode_error"
	StatusSkipped     Status = "skipped"

	// StatusUnverified marks a codec whose bytes were written but never read
	// back, because the run was cancelled between the two phases.
	StatusUnverified Status = "unverified"
)

// CodecResult is everything measured for one codec.
type CodecResult struct {
	Codec string `json:"codec"`
	Ext   string `json:"ext"`

	// File is the base name of the diagnostic artifact.
	File string `json:"file"`

	Status Status `json:"status"`

	// Bytes is the encoded size; zero when encoding failed.
	Bytes int `json:"bytes"`

	EncodeTime time.Duration `json:"encode_ns"`
	DecodeTime time.Duration `json:"decode_ns"`

	// Fingerprint identifies the decoded store (short form).
	Fingerprint string `json:"fingerprint,omitempty"`

	// Diff holds the differences when Status is StatusMismatch.
	Diff []diff.Entry `json:"diff,omitempty"`

	Error string `json:"error,omitempty"`
}

// Passed reports whether the codec recreated the store exactly.
func (r CodecResult) Passed() bool {
	return r.Status == StatusPass
}

// Encoded reports whether phase 1 produced bytes.
func (r CodecResult) Encoded() bool {
	switch r.Status {
	case StatusEncodeError, StatusSkipped:
		return false
	}
	return true
}

// Report is the outcome of one harness run.
type Report struct {
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	Items     int       `json:"items"`

	// Fingerprint identifies the original store (short form).
	Fingerprint string `json:"fingerprint"`

	Parallel bool          `json:"parallel"`
	Results  []CodecResult `json:"results"`
}

// Pass reports whether every codec passed.
func (r *Report) Pass() bool {
	for _, res := range r.Results {
		if !res.Passed() {
			return false
		}
	}
	return true
}

// Failures returns the results that did not pass, in run order.
func (r *Report) Failures() []CodecResult {
	var out []CodecResult
	for _, res := range r.Results {
		if !res.Passed() {
			out = append(out, res)
		}
	}
	return out
}

// Result returns the result for the named codec.
func (r *Report) Result(codec string) (CodecResult, bool) {
	for _, res := range r.Results {
		if res.Codec == codec {
			return res, true
		}
	}
	return CodecResult{}, false
}

// SizeRanking orders every result by encoded size, smallest first. Codecs
// that produced no bytes come last. Ties break by codec name.
func (r *Report) SizeRanking() []CodecResult {
	return r.rank(func(a, b CodecResult) bool { return a.Bytes < b.Bytes })
}

// TimeRanking orders every result by encode time, fastest first. Codecs that
// produced no bytes come last. Ties break by codec name.
func (r *Report) TimeRanking() []CodecResult {
	return r.rank(func(a, b CodecResult) bool { return a.EncodeTime < b.EncodeTime })
}

func (r *Report) rank(less func(a, b CodecResult) bool) []CodecResult {
	out := make([]CodecResult, len(r.Results))
	copy(out, r.Results)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Encoded() != b.Encoded() {
			return a.Encoded()
		}
		if a.Encoded() {
			if less(a, b) {
				return true
			}
			if less(b, a) {
				return false
			}
		}
		return a.Codec < b.Codec
	})
	return out
}
