package harness

import (
	"github.com/roach88/a2b/internal/compiler"
	"github.com/roach88/a2b/internal/engine"
)

// Runtime error kinds a case can expect.
const (
	ErrorTimeLimit   = "time_limit"
	ErrorLengthLimit = "length_limit"
)

// CaseResult is the outcome of running one case.
type CaseResult struct {
	Input string `json:"input"`

	// Output is the final string. Empty when the run failed.
	Output string `json:"output"`

	// State is the engine state name the run ended in.
	State string `json:"state"`

	// Steps is the number of rewrites, including the one that tripped a limit.
	Steps int `json:"steps"`

	// Error is the runtime error kind, or "" for a successful run.
	Error string `json:"error,omitempty"`

	// Trace holds every rewrite of the run in order.
	Trace []engine.Step `json:"trace"`

	// Firings holds per-rule fire counts of a successful run.
	Firings []int `json:"firings,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every case and assertion matched.
	Pass bool `json:"pass"`

	// ProgramHash identifies the compiled program. Empty on a syntax error.
	ProgramHash string `json:"program_hash,omitempty"`

	// SyntaxError is the parse failure, if the program was rejected.
	SyntaxError *compiler.SyntaxError `json:"syntax_error,omitempty"`

	// Cases holds one result per scenario case, in order.
	Cases []CaseResult `json:"cases"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Cases:  []CaseResult{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddCase appends a case result.
func (r *Result) AddCase(c CaseResult) {
	r.Cases = append(r.Cases, c)
}
