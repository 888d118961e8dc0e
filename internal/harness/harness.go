package harness

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/a2b/internal/compiler"
	"github.com/roach88/a2b/internal/engine"
	"github.com/roach88/a2b/internal/ir"
	"github.com/roach88/a2b/internal/testutil"
)

// Harness is the test execution engine.
// It runs every case of a scenario with a fixed run ID and a recorder.
type Harness struct {
	engine   *engine.Engine
	recorder *engine.Recorder
	logger   *slog.Logger
}

func newHarness(s *Scenario, logger *slog.Logger) *Harness {
	rec := engine.NewRecorder()
	opts := []engine.Option{
		engine.WithRunIDGenerator(testutil.NewFixedRunIDGenerator(s.RunID)),
		engine.WithTracer(rec),
		engine.WithLogger(logger),
	}
	if s.MaxOperations > 0 {
		opts = append(opts, engine.WithMaxOperations(s.MaxOperations))
	}
	if s.MaxLength > 0 {
		opts = append(opts, engine.WithMaxLength(s.MaxLength))
	}

	return &Harness{
		engine:   engine.New(opts...),
		recorder: rec,
		logger:   logger,
	}
}

// Run executes a test scenario and returns the result.
//
// Run returns an error only when the scenario cannot be executed at all,
// e.g. an unreadable program file. Mismatches are reported in
// Result.Errors with Result.Pass set to false.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.DiscardHandler))
}

// RunWithLogger is Run with engine logs sent to logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	src, err := scenario.ProgramSource()
	if err != nil {
		return nil, err
	}

	result := NewResult()

	prog, err := compiler.Parse(src)
	if err != nil {
		var se *compiler.SyntaxError
		if !errors.As(err, &se) {
			return nil, err
		}
		result.SyntaxError = se
		checkSyntaxError(scenario.SyntaxError, se, result)
		return result, nil
	}
	if scenario.SyntaxError != nil {
		result.AddError(fmt.Sprintf("expected syntax error on L%d, but the program parsed",
			scenario.SyntaxError.Line))
		return result, nil
	}

	result.ProgramHash = ir.MustProgramHash(prog)

	h := newHarness(scenario, logger)
	for i, c := range scenario.Cases {
		cr := h.runCase(prog, c.Input)
		result.AddCase(cr)
		if msg := compareCase(i, c, cr); msg != "" {
			result.AddError(msg)
		}
		h.logger.Info("case completed",
			"scenario", scenario.Name,
			"case", i,
			"state", cr.State,
			"steps", cr.Steps,
		)
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// runCase executes one input and records its trace.
func (h *Harness) runCase(prog *ir.Program, input string) CaseResult {
	h.recorder.Reset()
	res, err := h.engine.Execute(prog, input)

	cr := CaseResult{Input: input}
	if err != nil {
		cr.Trace = h.recorder.Steps()
		cr.Steps = len(cr.Trace)
		var rerr *engine.RuntimeError
		if errors.As(err, &rerr) {
			cr.State = rerr.State().String()
			cr.Error = errorKind(rerr)
		} else {
			cr.State = engine.Running.String()
			cr.Error = err.Error()
		}
		return cr
	}

	cr.Output = res.Output
	cr.State = res.State.String()
	cr.Steps = res.Steps
	cr.Trace = h.recorder.Steps()
	cr.Firings = res.Firings
	return cr
}

// errorKind maps a runtime error onto the scenario error vocabulary.
func errorKind(err *engine.RuntimeError) string {
	switch err.Code {
	case engine.ErrCodeTimeLimit:
		return ErrorTimeLimit
	case engine.ErrCodeLengthLimit:
		return ErrorLengthLimit
	default:
		return string(err.Code)
	}
}

// compareCase returns a mismatch message, or "" if the case passed.
func compareCase(i int, c Case, cr CaseResult) string {
	if c.Expect != nil {
		if cr.Error != "" {
			return fmt.Sprintf("case %d (input %q): expected output %q, got %s error", i, c.Input, *c.Expect, cr.Error)
		}
		if cr.Output != *c.Expect {
			return fmt.Sprintf("case %d (input %q): expected output %q, got %q", i, c.Input, *c.Expect, cr.Output)
		}
		return ""
	}

	if cr.Error == "" {
		return fmt.Sprintf("case %d (input %q): expected %s error, got output %q", i, c.Input, c.Error, cr.Output)
	}
	if cr.Error != c.Error {
		return fmt.Sprintf("case %d (input %q): expected %s error, got %s error", i, c.Input, c.Error, cr.Error)
	}
	return ""
}

// checkSyntaxError compares a parse failure with the scenario's expectation.
func checkSyntaxError(want *SyntaxExpectation, got *compiler.SyntaxError, result *Result) {
	if want == nil {
		result.AddError(fmt.Sprintf("unexpected syntax error: %s", got.Error()))
		return
	}
	if got.Line != want.Line {
		result.AddError(fmt.Sprintf("expected syntax error on L%d, got %s", want.Line, got.Error()))
	}
	if want.Code != "" && got.Code != want.Code {
		result.AddError(fmt.Sprintf("expected syntax error code %s, got %s", want.Code, got.Code))
	}
}
