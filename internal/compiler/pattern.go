package compiler

import (
	"regexp"

	"github.com/roach88/a2b/internal/ir"
)

// patternRE accepts an optional "(word)" tag followed by pattern text.
// The text class is 7-bit ASCII minus ( ) ^ $ = (0x28 0x29 0x5E 0x24 0x3D).
var patternRE = regexp.MustCompile(`^(?:\((\w+)\))?([\x00-\x23\x25-\x27\x2a-\x3c\x3e-\x5d\x5f-\x7f]*)$`)

// parsePattern parses one side of a rule. Shape is checked before the
// keyword, so "(foo)a^" is an invalid pattern, not an invalid keyword.
func parsePattern(line int, side string) (ir.Pattern, *SyntaxError) {
	m := patternRE.FindStringSubmatch(side)
	if m == nil {
		return ir.Pattern{}, newSyntaxError(line, ErrInvalidPattern, "invalid pattern %q", side)
	}

	p := ir.Pattern{Text: m[2]}
	if m[1] != "" {
		kw, ok := ir.ParseKeyword(m[1])
		if !ok {
			return ir.Pattern{}, newSyntaxError(line, ErrInvalidKeyword, "invalid keyword \"(%s)\"", m[1])
		}
		p.Keyword = kw
	}
	return p, nil
}
