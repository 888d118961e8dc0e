package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/a2b/internal/engine"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string        // Assertion type for categorization
	Case     int           // Index of the case the assertion ran against
	Expected string        // Human-readable expected outcome
	Actual   string        // Human-readable actual outcome
	Trace    []engine.Step // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s (case %d)\n", e.Type, e.Case)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, s := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] L%d: %s\n", s.Seq, s.Line, s.Source)
	}

	return buf.String()
}

// firedLines returns the source line of every step, in order.
func firedLines(trace []engine.Step) []int {
	lines := make([]int, len(trace))
	for i, s := range trace {
		lines[i] = s.Line
	}
	return lines
}

// assertTraceContains checks that the rule on the given line fired.
func assertTraceContains(c CaseResult, a Assertion) error {
	for _, s := range c.Trace {
		if s.Line == a.Line {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Case:     a.Case,
		Expected: fmt.Sprintf("rule on L%d to fire", a.Line),
		Actual:   "not found in trace",
		Trace:    c.Trace,
	}
}

// assertTraceOrder checks that rules fired in the given order.
// Firings don't need to be consecutive (intervening steps are allowed).
func assertTraceOrder(c CaseResult, a Assertion) error {
	next := 0
	for _, s := range c.Trace {
		if next < len(a.Lines) && s.Line == a.Lines[next] {
			next++
		}
	}
	if next == len(a.Lines) {
		return nil
	}

	return &AssertionError{
		Type:     AssertTraceOrder,
		Case:     a.Case,
		Expected: fmt.Sprintf("rules fired in order %v", a.Lines),
		Actual:   fmt.Sprintf("L%d not found after position %d; fired lines %v", a.Lines[next], next, firedLines(c.Trace)),
		Trace:    c.Trace,
	}
}

// assertTraceCount checks that the rule on the given line fired exactly
// the specified number of times.
func assertTraceCount(c CaseResult, a Assertion) error {
	count := 0
	for _, s := range c.Trace {
		if s.Line == a.Line {
			count++
		}
	}

	if count != a.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Case:     a.Case,
			Expected: fmt.Sprintf("%d firings of L%d", a.Count, a.Line),
			Actual:   fmt.Sprintf("%d firings", count),
			Trace:    c.Trace,
		}
	}

	return nil
}

// assertFinalState checks the state the run ended in.
func assertFinalState(c CaseResult, a Assertion) error {
	if c.State == a.State {
		return nil
	}

	return &AssertionError{
		Type:     AssertFinalState,
		Case:     a.Case,
		Expected: fmt.Sprintf("final state %s", a.State),
		Actual:   fmt.Sprintf("final state %s", c.State),
		Trace:    c.Trace,
	}
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, a := range assertions {
		if a.Case < 0 || a.Case >= len(result.Cases) {
			errors = append(errors, fmt.Sprintf("assertion[%d]: case %d out of range", i, a.Case))
			continue
		}
		c := result.Cases[a.Case]

		var err error
		switch a.Type {
		case AssertTraceContains:
			err = assertTraceContains(c, a)
		case AssertTraceOrder:
			err = assertTraceOrder(c, a)
		case AssertTraceCount:
			err = assertTraceCount(c, a)
		case AssertFinalState:
			err = assertFinalState(c, a)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, a.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
