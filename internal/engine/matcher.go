package engine

import (
	"fmt"
	"strings"

	"github.com/roach88/a2b/internal/ir"
)

// wrap adds the boundary sentinels around a body.
func wrap(body string) string {
	return ir.StartSentinel + body + ir.EndSentinel
}

// unwrap removes the boundary sentinels added by wrap.
func unwrap(working string) string {
	return working[len(ir.StartSentinel) : len(working)-len(ir.EndSentinel)]
}

// occursIn reports whether the anchored form of p is a substring of the
// working string. An empty pattern occurs in every string.
func occursIn(p ir.Pattern, working string) bool {
	return strings.Contains(working, p.Anchored())
}

// applyReplacement rewrites the leftmost occurrence of match in the
// working string and returns the new, re-wrapped working string.
//
// The caller must have checked occursIn(match, working); applying a
// pattern that does not occur is a programming error and panics.
func applyReplacement(match, replace ir.Pattern, working string) string {
	needle := match.Anchored()
	if !strings.Contains(working, needle) {
		panic(fmt.Sprintf("applyReplacement: %q does not occur in %q", needle, working))
	}

	var s string
	switch replace.Keyword {
	case ir.KeywordReturn:
		s = replace.Text
	case ir.KeywordStart:
		s = replace.Text + strings.Replace(working, needle, "", 1)
	case ir.KeywordEnd:
		s = strings.Replace(working, needle, "", 1) + replace.Text
	default:
		s = strings.Replace(working, needle, replace.Text, 1)
	}

	// A (start) or (end) rewrite can move sentinels inward, e.g. an empty
	// match prepended to "^world$" gives "hello^world$".
	s = strings.ReplaceAll(s, ir.StartSentinel, "")
	s = strings.ReplaceAll(s, ir.EndSentinel, "")
	return wrap(s)
}
