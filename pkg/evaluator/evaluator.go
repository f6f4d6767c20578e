// Package evaluator implements the gcad execution engine.
//
// The evaluator receives a parsed Abstract Syntax Tree (AST) from the
// parser and executes it statement by statement: expressions are
// evaluated to unit-aware values, identifiers are resolved through an
// explicit scope stack, and machining builtins mutate the machining
// state context and append toolpath segments to the ordered
// instruction buffer.
//
// # Example
//
//	prog, err := parser.Parse(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ev := evaluator.New()
//	ev.State().WriteHeader()
//	if err := ev.Run(prog); err != nil {
//	    log.Fatal(err)
//	}
//
// Execution is single-threaded and single-pass; the first error aborts
// the whole run and no partial program is emitted.
package evaluator

import (
	"io"
	"log/slog"

	"github.com/fpgaminer/gcad/pkg/gcode"
	"github.com/fpgaminer/gcad/pkg/types"
)

// Evaluator executes gcad programs against a machining state.
type Evaluator struct {
	opts      Options
	logger    *slog.Logger
	state     *gcode.State
	materials map[string]Material
	global    *Scope
}

// Material is one feed/speed profile, selected by material(...).
type Material struct {
	StepoverFrac float64 // max radial step as a fraction of cutter diameter
	DepthPerPass float64 // max stepdown per pass, mm
	FeedRate     float64 // cutting feed, mm/min
	PlungeRate   float64 // plunge feed, mm/min
	RPM          float64 // spindle speed
}

// Options configures evaluator behavior.
type Options struct {
	// Debug enables per-statement debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
	// MaxSequenceLen bounds the length of sequences built by linspace.
	// Defaults to 1,000,000; pathological counts beyond it fail with a
	// RuntimeError instead of exhausting memory.
	MaxSequenceLen int
}

// Option configures the evaluator.
type Option func(*Options)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithDebug enables or disables per-statement debug logging.
func WithDebug(enabled bool) Option {
	return func(opts *Options) {
		opts.Debug = enabled
	}
}

// WithMaxSequenceLen sets the maximum linspace sequence length.
func WithMaxSequenceLen(n int) Option {
	return func(opts *Options) {
		opts.MaxSequenceLen = n
	}
}

// New creates an Evaluator with a fresh machining state, an identity
// transform, an empty material library and default options.
func New(opts ...Option) *Evaluator {
	options := Options{
		MaxSequenceLen: 1_000_000,
	}

	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	return &Evaluator{
		opts:      options,
		logger:    options.Logger,
		state:     gcode.NewState(),
		materials: make(map[string]Material),
		global:    NewScope(nil),
	}
}

// State returns the machining state context the evaluator mutates.
func (e *Evaluator) State() *gcode.State {
	return e.state
}

// Run executes a parsed program against the machining state. Variables
// bound at the top level persist across Run calls, which is how the
// built-in material library is loaded before the user script.
func (e *Evaluator) Run(prog *types.Program) error {
	if prog == nil || prog.AST() == nil {
		return types.NewError(types.RuntimeError, "invalid program")
	}

	_, err := e.evalNode(prog.AST(), e.global)
	return err
}

// Finish appends the program-end word and serializes the instruction
// buffer to w. Call it once, after every script has run.
func (e *Evaluator) Finish(w io.Writer) error {
	e.state.EndProgram()
	return gcode.Emit(w, e.state.Program())
}
