package compiler

import (
	"fmt"
	"os"
	"strings"

	"github.com/roach88/a2b/internal/ir"
)

const (
	separator    = "="
	commentOpen  = "/*"
	commentClose = "*/"
)

// Mode controls how errors are handled during parsing.
type Mode int

const (
	// ModeFailFast stops on the first error encountered.
	ModeFailFast Mode = iota
	// ModeCollectAll keeps going and reports every bad line.
	ModeCollectAll
)

// Parse compiles program source. It returns the first *SyntaxError found.
func Parse(src string) (*ir.Program, error) {
	prog, errs := parse(src, ModeFailFast)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return prog, nil
}

// Check reports every syntax error in src, in line order.
// An empty result means Parse would succeed.
func Check(src string) []*SyntaxError {
	_, errs := parse(src, ModeCollectAll)
	return errs
}

// ParseFile reads and compiles a program file.
func ParseFile(path string) (*ir.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}
	return Parse(string(data))
}

func parse(src string, mode Mode) (*ir.Program, []*SyntaxError) {
	prog := &ir.Program{}
	var errs []*SyntaxError

	inComment := false
	for i, raw := range strings.Split(src, "\n") {
		lineNo := i + 1
		line := ir.TrimSpace(raw)
		if line == "" {
			continue
		}

		// Comment delimiters occupy whole lines and do not nest. A line
		// that opens a comment never closes it, even if it ends in "*/".
		if inComment {
			if strings.HasSuffix(line, commentClose) {
				inComment = false
			}
			continue
		}
		if strings.HasPrefix(line, commentOpen) {
			inComment = true
			continue
		}

		rule, err := parseRule(lineNo, line)
		if err != nil {
			errs = append(errs, err)
			if mode == ModeFailFast {
				return nil, errs
			}
			continue
		}
		prog.Rules = append(prog.Rules, rule)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return prog, nil
}

// parseRule parses a trimmed, non-comment line.
func parseRule(lineNo int, line string) (ir.Rule, *SyntaxError) {
	if strings.Count(line, separator) != 1 {
		return ir.Rule{}, newSyntaxError(lineNo, ErrSeparatorCount,
			"each line must have exactly one %q separator", separator)
	}
	left, right, _ := strings.Cut(line, separator)

	match, err := parsePattern(lineNo, ir.TrimSpace(left))
	if err != nil {
		return ir.Rule{}, err
	}
	replace, err := parsePattern(lineNo, ir.TrimSpace(right))
	if err != nil {
		return ir.Rule{}, err
	}

	if !match.Keyword.AllowedOnMatch() {
		return ir.Rule{}, newSyntaxError(lineNo, ErrReturnOnMatch,
			"keyword (%s) can't be placed on the left side of a rule", match.Keyword)
	}
	if !replace.Keyword.AllowedOnReplace() {
		return ir.Rule{}, newSyntaxError(lineNo, ErrOnceOnReplace,
			"keyword (%s) can't be placed on the right side of a rule", replace.Keyword)
	}

	return ir.Rule{
		Line:    lineNo,
		Source:  line,
		Match:   match,
		Replace: replace,
	}, nil
}
