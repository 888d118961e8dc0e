package engine

import (
	"errors"
	"strconv"
)

// RuntimeError reports a run that was stopped by a resource limit.
//
// There is no partial result: the working string at the time of failure
// is kept in Details only for diagnostics.
type RuntimeError struct {
	// Code identifies the limit that was exceeded.
	Code RuntimeErrorCode

	// Message is the fixed user-facing description.
	Message string

	// RunID identifies the failed run.
	RunID string

	// Step is the rewrite operation that tripped the limit.
	Step int

	// Line is the source line of the rule applied on that step.
	Line int

	// Details contains additional context.
	Details map[string]string
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeTimeLimit indicates the run exceeded the rewrite operation limit.
	ErrCodeTimeLimit RuntimeErrorCode = "TIME_LIMIT"

	// ErrCodeLengthLimit indicates the working string exceeded the length limit.
	ErrCodeLengthLimit RuntimeErrorCode = "LENGTH_LIMIT"
)

const (
	msgTimeLimit   = "Time Limit Exceeded"
	msgLengthLimit = "String Length Limit Exceeded"
)

// Error implements the error interface using the interpreter's fixed
// "[Runtime Error]: " prefix.
func (e *RuntimeError) Error() string {
	return "[Runtime Error]: " + e.Message
}

// State returns the terminal run state matching the error code.
func (e *RuntimeError) State() State {
	switch e.Code {
	case ErrCodeTimeLimit:
		return FailedTimeLimit
	case ErrCodeLengthLimit:
		return FailedLengthLimit
	default:
		return Running
	}
}

// IsRuntimeError returns true if err is or wraps a *RuntimeError.
func IsRuntimeError(err error) bool {
	var re *RuntimeError
	return errors.As(err, &re)
}

// IsTimeLimitError returns true if the error is an operation limit error.
// Matches both RuntimeError with ErrCodeTimeLimit and StepsExceededError.
func IsTimeLimitError(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeTimeLimit
	}
	var se *StepsExceededError
	return errors.As(err, &se)
}

// IsLengthLimitError returns true if the error is a length limit error.
func IsLengthLimitError(err error) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == ErrCodeLengthLimit
	}
	return false
}

// NewTimeLimitError converts a quota violation into a RuntimeError.
func NewTimeLimitError(se *StepsExceededError, line int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeTimeLimit,
		Message: msgTimeLimit,
		RunID:   se.RunID,
		Step:    se.Steps,
		Line:    line,
		Details: map[string]string{
			"steps":          strconv.Itoa(se.Steps),
			"max_operations": strconv.Itoa(se.Limit),
		},
	}
}

// NewLengthLimitError creates a RuntimeError for an oversized working string.
func NewLengthLimitError(runID string, step, line, length, maxLength int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeLengthLimit,
		Message: msgLengthLimit,
		RunID:   runID,
		Step:    step,
		Line:    line,
		Details: map[string]string{
			"length":     strconv.Itoa(length),
			"max_length": strconv.Itoa(maxLength),
		},
	}
}

