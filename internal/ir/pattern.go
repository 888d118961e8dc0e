package ir

import "strings"

// Sentinel bytes marking the true boundaries of the working string.
// They are physically present in the working string during execution,
// which is why pattern text may never contain them.
const (
	StartSentinel = "^"
	EndSentinel   = "$"
)

// Space is the whitespace trimmed from program lines and run input.
const Space = " \t\n\r\v\f"

// TrimSpace trims ASCII whitespace from both ends of s. Unicode spaces
// are part of the text.
func TrimSpace(s string) string {
	return strings.Trim(s, Space)
}

// Keyword is the optional anchor/behavior tag of a pattern.
type Keyword int

const (
	KeywordNone   Keyword = iota // plain literal
	KeywordStart                 // anchored at the start of the working string
	KeywordEnd                   // anchored at the end of the working string
	KeywordReturn                // replace side only: halt with the literal text
	KeywordOnce                  // match side only: fire at most once per run
)

var keywordNames = map[Keyword]string{
	KeywordNone:   "",
	KeywordStart:  "start",
	KeywordEnd:    "end",
	KeywordReturn: "return",
	KeywordOnce:   "once",
}

// String returns the source spelling of the keyword ("" for KeywordNone).
func (k Keyword) String() string {
	return keywordNames[k]
}

// ParseKeyword maps source text to a Keyword. Matching is case-sensitive.
// The empty string is not a keyword.
func ParseKeyword(s string) (Keyword, bool) {
	switch s {
	case "start":
		return KeywordStart, true
	case "end":
		return KeywordEnd, true
	case "return":
		return KeywordReturn, true
	case "once":
		return KeywordOnce, true
	default:
		return KeywordNone, false
	}
}

// AllowedOnMatch reports whether the keyword may tag a match pattern.
func (k Keyword) AllowedOnMatch() bool {
	return k != KeywordReturn
}

// AllowedOnReplace reports whether the keyword may tag a replacement pattern.
func (k Keyword) AllowedOnReplace() bool {
	return k != KeywordOnce
}

// Pattern is a literal text fragment with an optional keyword.
type Pattern struct {
	Keyword Keyword `json:"keyword"`
	Text    string  `json:"text"`
}

// Anchored returns the text searched for in the working string.
// Start and end patterns carry the matching sentinel; all others are unchanged.
func (p Pattern) Anchored() string {
	switch p.Keyword {
	case KeywordStart:
		return StartSentinel + p.Text
	case KeywordEnd:
		return p.Text + EndSentinel
	default:
		return p.Text
	}
}

// String renders the pattern in source form, e.g. "(start)abc".
func (p Pattern) String() string {
	if p.Keyword == KeywordNone {
		return p.Text
	}
	return "(" + p.Keyword.String() + ")" + p.Text
}
