package todo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// DebugHandler runs diagnostic commands on behalf of the executor.
// The store passed in must be treated as read-only.
type DebugHandler interface {
	HandleDebug(ctx context.Context, s *Store, text string) (string, error)
}

// DebugFunc adapts a function to DebugHandler.
type DebugFunc func(ctx context.Context, s *Store, text string) (string, error)

// HandleDebug calls f.
func (f DebugFunc) HandleDebug(ctx context.Context, s *Store, text string) (string, error) {
	return f(ctx, s, text)
}

// Executor applies commands to a store.
type Executor struct {
	store      *Store
	debug      DebugHandler
	strictEdit bool
	logger     *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithDebugHandler sets the handler for Debug commands.
func WithDebugHandler(h DebugHandler) Option {
	return func(e *Executor) { e.debug = h }
}

// WithStrictEdit makes Edit reject a target name that is already in use.
func WithStrictEdit(strict bool) Option {
	return func(e *Executor) { e.strictEdit = strict }
}

// WithLogger sets the executor's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExecutor creates an executor bound to s.
func NewExecutor(s *Store, opts ...Option) *Executor {
	e := &Executor{
		store:  s,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store returns the store the executor mutates.
func (e *Executor) Store() *Store {
	return e.store
}

// Apply executes one command. On error the store is unchanged.
func (e *Executor) Apply(ctx context.Context, cmd Command) (Result, error) {
	if cmd == nil {
		return Result{}, InputInvalid("no command given")
	}

	res, err := e.apply(ctx, cmd)
	if err != nil {
		e.logger.Debug("command rejected", "kind", cmd.Kind(), "error", err)
		return Result{}, err
	}

	e.logger.Debug("command applied", "kind", cmd.Kind(), "changed", res.Changed, "len", e.store.Len())
	return res, nil
}

func (e *Executor) apply(ctx context.Context, cmd Command) (Result, error) {
	s := e.store
	res := Result{Kind: cmd.Kind()}

	switch c := cmd.(type) {
	case Add:
		if err := s.Add(c.Name, false); err != nil {
			return Result{}, err
		}
		res.Changed = true

	case Clear:
		res.Changed = !s.IsEmpty()
		s.Clear()

	case Edit:
		edit := s.Edit
		if e.strictEdit {
			edit = s.Rename
		}
		if err := edit(c.Existing, c.NewName); err != nil {
			return Result{}, err
		}
		res.Changed = true

	case List:
		res.Items = s.Items()

	case ListFiltered:
		names := s.NamesWithStatus(c.Status)
		res.Items = make([]Item, len(names))
		for i, name := range names {
			res.Items[i] = Item{Name: name, Done: c.Status}
		}

	case Remove:
		removed, err := s.Remove(c.Name)
		if err != nil {
			return Result{}, err
		}
		res.Removed = &removed
		res.Changed = true

	case SetStatus:
		prev, existed := s.Status(c.Name)
		if err := s.SetStatus(c.Name, c.Status); err != nil {
			return Result{}, err
		}
		res.Changed = !existed || prev != c.Status

	case Debug:
		if e.debug == nil {
			return Result{}, InputInvalid("debug commands are not available")
		}
		text, err := e.debug.HandleDebug(ctx, s, c.Text)
		if err != nil {
			return Result{}, fmt.Errorf("debug %q: %w", c.Text, err)
		}
		res.Text = text

	default:
		return Result{}, InputInvalid(fmt.Sprintf("unsupported command %T", cmd))
	}

	return res, nil
}
