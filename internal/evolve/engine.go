package evolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/time/rate"

	"github.com/specialistvlad/weasel/internal/ctxlog"
	"github.com/specialistvlad/weasel/internal/match"
	"github.com/specialistvlad/weasel/internal/mutate"
	"github.com/specialistvlad/weasel/internal/sequence"
)

const (
	// ConvergedMessage is printed once every run is a word.
	ConvergedMessage = "All tokens are dictionary words; finished."
	// InterruptedMessage is printed when the loop is cancelled.
	InterruptedMessage = "Interrupted by user. Exiting cleanly."
	// FinalFrameHeader introduces the frame re-rendered after cancellation.
	FinalFrameHeader = "Final string (locked words highlighted):"
)

// State is the loop's position in its state machine.
type State int

const (
	StateRunning State = iota
	StateConverged
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateConverged:
		return "converged"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Renderer turns a sequence and its locks into display text.
type Renderer interface {
	Render(seq sequence.Sequence, locks match.Locks) string
}

// Frame is everything known about one generation once it has been rendered.
type Frame struct {
	Generation int
	Sequence   sequence.Sequence
	Matches    []match.Match
	Locks      match.Locks
	// Mutation describes how this generation was produced from the previous
	// one. It is zero for the first generation.
	Mutation  mutate.Stats
	Converged bool
}

// Observer receives every rendered frame.
type Observer interface {
	ObserveFrame(ctx context.Context, f Frame) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, f Frame) error

// ObserveFrame implements Observer.
func (fn ObserverFunc) ObserveFrame(ctx context.Context, f Frame) error {
	return fn(ctx, f)
}

// Config bundles the engine's collaborators and parameters.
type Config struct {
	Words    match.WordMembership
	Mutator  mutate.Mutator
	Renderer Renderer
	// Out receives rendered frames and the closing messages.
	Out io.Writer
	// MinBlock is the minimum run length.
	MinBlock int
	// Delay is the pause between frames. Zero disables pacing.
	Delay time.Duration
	// ClearScreen prefixes each frame with a terminal clear sequence.
	ClearScreen bool
	Observers   []Observer
}

// Result describes how a run ended.
type Result struct {
	State       State
	Generations int
	Final       sequence.Sequence
	Matches     []match.Match
}

// Engine runs the evolution loop.
type Engine struct {
	cfg     Config
	limiter *rate.Limiter
}

// ErrMissingCollaborator is returned when a required Config field is nil.
var ErrMissingCollaborator = errors.New("evolve: missing collaborator")

// clearSequence homes the cursor and clears the screen.
const clearSequence = "\033[H\033[J"

// New validates cfg and returns an Engine.
func New(cfg Config) (*Engine, error) {
	switch {
	case cfg.Words == nil:
		return nil, fmt.Errorf("%w: word membership", ErrMissingCollaborator)
	case cfg.Mutator == nil:
		return nil, fmt.Errorf("%w: mutator", ErrMissingCollaborator)
	case cfg.Renderer == nil:
		return nil, fmt.Errorf("%w: renderer", ErrMissingCollaborator)
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if cfg.MinBlock < 1 {
		cfg.MinBlock = 1
	}
	return &Engine{cfg: cfg, limiter: newLimiter(cfg.Delay)}, nil
}

// newLimiter allows one frame per delay. A non-positive delay never waits.
func newLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// Run evolves seed until every run is a word or ctx is cancelled. Both
// outcomes return a nil error; only a failure to write output is an error.
func (e *Engine) Run(ctx context.Context, seed sequence.Sequence) (Result, error) {
	logger := ctxlog.FromContext(ctx)
	if err := seed.Validate(e.cfg.MinBlock); err != nil {
		return Result{}, fmt.Errorf("invalid initial sequence: %w", err)
	}

	cur := seed
	var stats mutate.Stats
	// The first token is spent up front so the first frame is drawn at once.
	e.limiter.Allow()

	for gen := 0; ; gen++ {
		if ctx.Err() != nil {
			return e.cancel(ctx, cur, gen)
		}

		frame := e.frame(gen, cur, stats)
		if err := e.draw(frame); err != nil {
			return Result{}, err
		}
		e.notify(ctx, frame)
		logger.Debug("Generation rendered.",
			"generation", gen,
			"matches", len(frame.Matches),
			"locked_cells", frame.Locks.Count(),
			"mutated", stats.Changed,
			"fallbacks", stats.Fallbacks,
		)

		if frame.Converged {
			logger.Info("Sequence converged.", "generations", gen+1)
			if _, err := fmt.Fprintln(e.cfg.Out, ConvergedMessage); err != nil {
				return Result{}, fmt.Errorf("failed to write output: %w", err)
			}
			return Result{State: StateConverged, Generations: gen + 1, Final: cur, Matches: frame.Matches}, nil
		}

		cur, stats = e.cfg.Mutator.Mutate(cur, frame.Locks)

		// Wait also fails early when the delay would outlast the deadline,
		// which ends the run the same way a cancellation does.
		if err := e.limiter.Wait(ctx); err != nil {
			logger.Debug("Frame wait interrupted.", "error", err)
			return e.cancel(ctx, cur, gen+1)
		}
	}
}

func (e *Engine) frame(gen int, seq sequence.Sequence, stats mutate.Stats) Frame {
	matches := match.Detect(seq, e.cfg.Words, e.cfg.MinBlock)
	return Frame{
		Generation: gen,
		Sequence:   seq,
		Matches:    matches,
		Locks:      match.LockCells(seq, matches),
		Mutation:   stats,
		Converged:  match.Complete(seq, e.cfg.Words, e.cfg.MinBlock),
	}
}

func (e *Engine) draw(f Frame) error {
	text := e.cfg.Renderer.Render(f.Sequence, f.Locks)
	if e.cfg.ClearScreen {
		text = clearSequence + text
	}
	if _, err := fmt.Fprintln(e.cfg.Out, text); err != nil {
		return fmt.Errorf("failed to write frame %d: %w", f.Generation, err)
	}
	return nil
}

func (e *Engine) notify(ctx context.Context, f Frame) {
	for _, o := range e.cfg.Observers {
		if err := o.ObserveFrame(ctx, f); err != nil {
			ctxlog.FromContext(ctx).Warn("Frame observer failed.", "generation", f.Generation, "error", err)
		}
	}
}

// cancel prints the interrupt notice and the latest sequence with its locks.
// gen is the number of generations that had been produced.
func (e *Engine) cancel(ctx context.Context, cur sequence.Sequence, gen int) (Result, error) {
	ctxlog.FromContext(ctx).Info("Evolution cancelled.", "generations", gen)

	f := e.frame(gen, cur, mutate.Stats{})
	text := e.cfg.Renderer.Render(f.Sequence, f.Locks)
	if _, err := fmt.Fprintf(e.cfg.Out, "\n%s\n%s\n%s\n", InterruptedMessage, FinalFrameHeader, text); err != nil {
		return Result{}, fmt.Errorf("failed to write output: %w", err)
	}
	return Result{State: StateCancelled, Generations: gen, Final: cur, Matches: f.Matches}, nil
}
