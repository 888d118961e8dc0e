package compiler

import (
	"errors"
	"fmt"
)

// Syntax error codes (E001-E099)
const (
	ErrSeparatorCount = "E001" // line does not have exactly one "="
	ErrInvalidPattern = "E002" // pattern text fails the character/shape rules
	ErrInvalidKeyword = "E003" // (keyword) is not start/end/return/once
	ErrReturnOnMatch  = "E004" // (return) used on the match side
	ErrOnceOnReplace  = "E005" // (once) used on the replacement side
)

// SyntaxError reports a rejected program line.
// A program with any SyntaxError is unusable; there is no partial result.
type SyntaxError struct {
	Line   int    `json:"line"` // 1-based
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// Error implements the error interface using the interpreter's fixed
// "[Syntax Error on L<n>]: " prefix.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("[Syntax Error on L%d]: %s", e.Line, e.Reason)
}

// IsSyntaxError returns true if err is or wraps a *SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

func newSyntaxError(line int, code, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Line:   line,
		Code:   code,
		Reason: fmt.Sprintf(format, args...),
	}
}
