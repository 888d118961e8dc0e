package engine

import "github.com/roach88/a2b/internal/ir"

// outcome is the result of trying one rule against the working string.
type outcome int

const (
	skipped outcome = iota
	rewrote
	rewroteAndHalt
)

// run holds the state of one Execute call.
type run struct {
	id    string
	rules []ir.Rule
	fired []int // fire counts, parallel to rules
}

func newRun(id string, p *ir.Program) *run {
	var rules []ir.Rule
	if p != nil {
		rules = p.Rules
	}
	return &run{
		id:    id,
		rules: rules,
		fired: make([]int, len(rules)),
	}
}

// tryApply applies rule idx to the working string if it can fire.
// A (once) rule that already fired in this run is skipped.
func (r *run) tryApply(idx int, working string) (outcome, string) {
	rule := r.rules[idx]
	if rule.Match.Keyword == ir.KeywordOnce && r.fired[idx] > 0 {
		return skipped, ""
	}
	if !occursIn(rule.Match, working) {
		return skipped, ""
	}

	r.fired[idx]++
	next := applyReplacement(rule.Match, rule.Replace, working)
	if rule.Replace.Keyword == ir.KeywordReturn {
		return rewroteAndHalt, next
	}
	return rewrote, next
}

// apply tries the rules in program order and applies the first one that
// fires. It returns the index of that rule, or -1 when none fired.
func (r *run) apply(working string) (int, outcome, string) {
	for i := range r.rules {
		if out, next := r.tryApply(i, working); out != skipped {
			return i, out, next
		}
	}
	return -1, skipped, working
}

// firings returns a copy of the fire counts.
func (r *run) firings() []int {
	out := make([]int, len(r.fired))
	copy(out, r.fired)
	return out
}
