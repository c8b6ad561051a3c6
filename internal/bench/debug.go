package bench

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/roach88/thingstodo/internal/todo"
)

// Debugger answers todo.Debug commands:
//
//	encoding  run the codec harness and render its report
//	diff      run the randomized diff self-test
//
// Anything else yields a short message, not an error.
type Debugger struct {
	harness *Harness
	seed    func() uint64
}

// NewDebugger creates a Debugger backed by h. Self-test seeds come from seed,
// or are random when seed is nil.
func NewDebugger(h *Harness, seed func() uint64) *Debugger {
	if seed == nil {
		seed = rand.Uint64
	}
	return &Debugger{harness: h, seed: seed}
}

// HandleDebug implements todo.DebugHandler.
func (d *Debugger) HandleDebug(ctx context.Context, s *todo.Store, text string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "encoding":
		report, err := d.harness.Run(ctx, s)
		if report == nil {
			return "", err
		}
		return RenderText(report), err
	case "diff":
		st, err := SelfTest(s, d.seed())
		if err != nil {
			return "", err
		}
		return RenderSelfTest(st), nil
	}
	return fmt.Sprintf("Unknown debug command %q", text), nil
}

var _ todo.DebugHandler = (*Debugger)(nil)
