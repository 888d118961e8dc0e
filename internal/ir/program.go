package ir

import "strings"

// Rule is one match=replace line of a program.
//
// Rules are immutable once parsed. How often a rule has fired is per-run
// state owned by the engine, so a Program can be shared between runs.
type Rule struct {
	Line    int     `json:"line"`   // 1-based source line
	Source  string  `json:"source"` // trimmed source text, for tracing
	Match   Pattern `json:"match"`
	Replace Pattern `json:"replace"`
}

// String renders the rule in normalized source form.
func (r Rule) String() string {
	return r.Match.String() + "=" + r.Replace.String()
}

// Program is an ordered rule list. Order is significant: the first rule
// that applies wins.
type Program struct {
	Rules []Rule `json:"rules"`
}

// Len returns the number of rules.
func (p *Program) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Rules)
}

// String renders the program one normalized rule per line.
func (p *Program) String() string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	for _, r := range p.Rules {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}
