package engine

import (
	"errors"
	"log/slog"

	"github.com/roach88/a2b/internal/ir"
)

const (
	// DefaultMaxOperations is the default limit on rewrites per run.
	DefaultMaxOperations = 1024

	// DefaultMaxLength is the default limit on the working string length,
	// sentinels included.
	DefaultMaxLength = 512
)

// Engine executes programs. It holds only configuration, so one Engine
// may run any number of programs, concurrently if its Tracer allows it.
type Engine struct {
	maxOperations int
	maxLength     int
	tracer        Tracer
	runIDs        RunIDGenerator
	logger        *slog.Logger
}

// Option allows configuration of engine parameters.
type Option func(*Engine)

// WithMaxOperations sets the maximum number of rewrites per run.
//
// Default: 1024 (DefaultMaxOperations)
func WithMaxOperations(n int) Option {
	return func(e *Engine) {
		e.maxOperations = n
	}
}

// WithMaxLength sets the maximum working string length.
//
// Default: 512 (DefaultMaxLength)
func WithMaxLength(n int) Option {
	return func(e *Engine) {
		e.maxLength = n
	}
}

// WithTracer installs a tracer that sees every rewrite.
func WithTracer(t Tracer) Option {
	return func(e *Engine) {
		e.tracer = t
	}
}

// WithRunIDGenerator replaces the UUIDv7 run ID generator.
// Use a FixedGenerator for deterministic tests.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(e *Engine) {
		e.runIDs = g
	}
}

// WithLogger sets the logger. Default: a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxOperations: DefaultMaxOperations,
		maxLength:     DefaultMaxLength,
		runIDs:        UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// MaxOperations returns the configured operation limit.
func (e *Engine) MaxOperations() int {
	return e.maxOperations
}

// MaxLength returns the configured length limit.
func (e *Engine) MaxLength() int {
	return e.maxLength
}

// Result is the outcome of a successful run.
type Result struct {
	RunID       string `json:"run_id"`
	ProgramHash string `json:"program_hash"`
	Output      string `json:"output"`
	State       State  `json:"state"`
	Steps       int    `json:"steps"`

	// Firings holds how often each rule fired, indexed like Program.Rules.
	Firings []int `json:"firings"`
}

// Execute runs p on input and returns the final string.
//
// The input is trimmed of ASCII whitespace. On a limit violation Execute
// returns nil and a *RuntimeError; there is no partial result. A nil
// program has no rules and returns the trimmed input unchanged.
func (e *Engine) Execute(p *ir.Program, input string) (*Result, error) {
	runID := e.runIDs.Generate()
	hash := programHash(p)
	log := e.logger.With("run_id", runID, "program_hash", hash)

	r := newRun(runID, p)
	quota := NewQuotaEnforcer(e.maxOperations)
	working := wrap(ir.TrimSpace(input))
	state := Running

	log.Debug("run started",
		"rules", len(r.rules),
		"input", unwrap(working),
		"max_operations", quota.MaxSteps(),
		"max_length", e.maxLength,
	)

	var rerr *RuntimeError
	for !state.Terminal() {
		idx, out, next := r.apply(working)
		if out == skipped {
			state = HaltedNormal
			break
		}
		rule := r.rules[idx]

		quotaErr := quota.Check(runID)
		if e.tracer != nil {
			e.tracer.Step(Step{
				Seq:      quota.Current(),
				Line:     rule.Line,
				Source:   rule.Source,
				Before:   unwrap(working),
				After:    unwrap(next),
				Returned: out == rewroteAndHalt,
			})
		}
		log.Debug("rule applied",
			"step", quota.Current(),
			"line", rule.Line,
			"length", len(next),
		)
		working = next

		// The operation limit is checked before the length limit.
		switch {
		case quotaErr != nil:
			var se *StepsExceededError
			if !errors.As(quotaErr, &se) {
				return nil, quotaErr
			}
			rerr = NewTimeLimitError(se, rule.Line)
		case len(working) > e.maxLength:
			rerr = NewLengthLimitError(runID, quota.Current(), rule.Line, len(working), e.maxLength)
		}

		switch {
		case rerr != nil:
			state = rerr.State()
		case out == rewroteAndHalt:
			state = HaltedByReturn
		}
	}

	if state.Failed() {
		log.Info("run failed", "code", rerr.Code, "step", rerr.Step, "line", rerr.Line,
			"length", len(working))
		return nil, rerr
	}

	res := &Result{
		RunID:       runID,
		ProgramHash: hash,
		Output:      unwrap(working),
		State:       state,
		Steps:       quota.Current(),
		Firings:     r.firings(),
	}
	log.Info("run halted", "state", state.String(), "steps", res.Steps)
	return res, nil
}

// programHash returns the program's content hash, or "" for a nil program.
func programHash(p *ir.Program) string {
	if p == nil {
		return ""
	}
	h, err := ir.ProgramHash(p)
	if err != nil {
		return ""
	}
	return h
}
