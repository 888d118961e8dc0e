package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/a2b/internal/ir"
)

// =============================================================================
// Successful parses
// =============================================================================

func TestParseSingleRule(t *testing.T) {
	prog, err := Parse("a=b")
	require.NoError(t, err)
	require.Len(t, prog.Rules, 1)

	r := prog.Rules[0]
	assert.Equal(t, 1, r.Line)
	assert.Equal(t, "a=b", r.Source)
	assert.Equal(t, ir.Pattern{Text: "a"}, r.Match)
	assert.Equal(t, ir.Pattern{Text: "b"}, r.Replace)
}

func TestParseTrimsAndSkipsBlankLines(t *testing.T) {
	src := "\n   a = b  \n\n\t(start)x=(end)y\r\n"

	prog, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Rules, 2)

	assert.Equal(t, 2, prog.Rules[0].Line)
	assert.Equal(t, "a = b", prog.Rules[0].Source)
	assert.Equal(t, "a", prog.Rules[0].Match.Text)
	assert.Equal(t, "b", prog.Rules[0].Replace.Text)

	assert.Equal(t, 4, prog.Rules[1].Line)
	assert.Equal(t, ir.Pattern{Keyword: ir.KeywordStart, Text: "x"}, prog.Rules[1].Match)
	assert.Equal(t, ir.Pattern{Keyword: ir.KeywordEnd, Text: "y"}, prog.Rules[1].Replace)
}

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		src     string
		match   ir.Pattern
		replace ir.Pattern
	}{
		{"=(return)helloworld", ir.Pattern{}, ir.Pattern{Keyword: ir.KeywordReturn, Text: "helloworld"}},
		{"(once)=(start)hello", ir.Pattern{Keyword: ir.KeywordOnce}, ir.Pattern{Keyword: ir.KeywordStart, Text: "hello"}},
		{"(start)a=", ir.Pattern{Keyword: ir.KeywordStart, Text: "a"}, ir.Pattern{}},
		{"(end)a=(end)", ir.Pattern{Keyword: ir.KeywordEnd, Text: "a"}, ir.Pattern{Keyword: ir.KeywordEnd}},
		{"a b = c d", ir.Pattern{Text: "a b"}, ir.Pattern{Text: "c d"}},
		{"a\tb=c", ir.Pattern{Text: "a\tb"}, ir.Pattern{Text: "c"}},
		{"!#%&*+,-./:;<>?@[]_`{|}~=x", ir.Pattern{Text: "!#%&*+,-./:;<>?@[]_`{|}~"}, ir.Pattern{Text: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog, err := Parse(tt.src)
			require.NoError(t, err)
			require.Len(t, prog.Rules, 1)
			assert.Equal(t, tt.match, prog.Rules[0].Match)
			assert.Equal(t, tt.replace, prog.Rules[0].Replace)
		})
	}
}

func TestParsePreservesOrder(t *testing.T) {
	prog, err := Parse("ba=ab\nca=ac\ncb=bc\n")
	require.NoError(t, err)
	require.Len(t, prog.Rules, 3)
	assert.Equal(t, "ba", prog.Rules[0].Match.Text)
	assert.Equal(t, "ca", prog.Rules[1].Match.Text)
	assert.Equal(t, "cb", prog.Rules[2].Match.Text)
}

func TestParseEmptySource(t *testing.T) {
	prog, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, 0, prog.Len())
}

// =============================================================================
// Comments
// =============================================================================

func TestParseBlockComment(t *testing.T) {
	src := `/* header
ignored = line
  */
a=b`

	prog, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Rules, 1)
	assert.Equal(t, 4, prog.Rules[0].Line)
}

func TestParseCommentBodyIsNotValidated(t *testing.T) {
	src := "/*\nnot a rule at all ^$()\n== ==\n*/\nx=y"

	prog, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Rules, 1)
	assert.Equal(t, "x=y", prog.Rules[0].Source)
}

func TestParseOpeningLineNeverClosesComment(t *testing.T) {
	// Delimiters occupy separate lines: "/* c */" opens a comment that
	// swallows "a=b" until the next line ending in "*/".
	src := "/* c */\na=b\n*/\nc=d"

	prog, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Rules, 1)
	assert.Equal(t, "c=d", prog.Rules[0].Source)
	assert.Equal(t, 4, prog.Rules[0].Line)
}

func TestParseUnterminatedComment(t *testing.T) {
	prog, err := Parse("a=b\n/*\nc=d\n")
	require.NoError(t, err)
	require.Len(t, prog.Rules, 1)
	assert.Equal(t, "a=b", prog.Rules[0].Source)
}

// =============================================================================
// Syntax errors
// =============================================================================

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		line   int
		code   string
		reason string
	}{
		{"no separator", "ab", 1, ErrSeparatorCount, `each line must have exactly one "=" separator`},
		{"two separators", "a=b=c", 1, ErrSeparatorCount, `each line must have exactly one "=" separator`},
		{"paren in text", "a(=b", 1, ErrInvalidPattern, `invalid pattern "a("`},
		{"caret in text", "a^=b", 1, ErrInvalidPattern, `invalid pattern "a^"`},
		{"dollar in replacement", "a=b$", 1, ErrInvalidPattern, `invalid pattern "b$"`},
		{"empty keyword", "()a=b", 1, ErrInvalidPattern, `invalid pattern "()a"`},
		{"spaced keyword", "(on ce)a=b", 1, ErrInvalidPattern, `invalid pattern "(on ce)a"`},
		{"non-ascii", "a=caf\u00e9", 1, ErrInvalidPattern, "invalid pattern \"caf\u00e9\""},
		{"bad pattern wins over bad keyword", "(foo)a^=b", 1, ErrInvalidPattern, `invalid pattern "(foo)a^"`},
		{"unknown keyword", "(foo)a=b", 1, ErrInvalidKeyword, `invalid keyword "(foo)"`},
		{"keywords are case-sensitive", "a=(START)b", 1, ErrInvalidKeyword, `invalid keyword "(START)"`},
		{"return on match side", "(return)a=b", 1, ErrReturnOnMatch, "keyword (return) can't be placed on the left side of a rule"},
		{"once on replace side", "a=(once)b", 1, ErrOnceOnReplace, "keyword (once) can't be placed on the right side of a rule"},
		{"line numbers count blank lines", "\n\n  \nab", 4, ErrSeparatorCount, `each line must have exactly one "=" separator`},
		{"line numbers count comments", "/*\n*/\na=b\nbad", 4, ErrSeparatorCount, `each line must have exactly one "=" separator`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := Parse(tt.src)
			require.Error(t, err)
			assert.Nil(t, prog, "no partial program on error")

			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.line, se.Line)
			assert.Equal(t, tt.code, se.Code)
			assert.Equal(t, tt.reason, se.Reason)
		})
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	_, err := Parse("a=b\n\nab")
	require.Error(t, err)
	assert.Equal(t, `[Syntax Error on L3]: each line must have exactly one "=" separator`, err.Error())
	assert.True(t, IsSyntaxError(err))
	assert.False(t, IsSyntaxError(assert.AnError))
	assert.False(t, IsSyntaxError(nil))
}

func TestParseStopsAtFirstError(t *testing.T) {
	_, err := Parse("ab\n(foo)a=b")
	require.Error(t, err)

	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Line)
}

func TestCheckCollectsAllErrors(t *testing.T) {
	errs := Check("ab\na=b\n(foo)=x\n(return)y=z\n")
	require.Len(t, errs, 3)

	assert.Equal(t, 1, errs[0].Line)
	assert.Equal(t, ErrSeparatorCount, errs[0].Code)
	assert.Equal(t, 3, errs[1].Line)
	assert.Equal(t, ErrInvalidKeyword, errs[1].Code)
	assert.Equal(t, 4, errs[2].Line)
	assert.Equal(t, ErrReturnOnMatch, errs[2].Code)
}

func TestCheckValidSource(t *testing.T) {
	assert.Empty(t, Check("aa=a\nbb=b\ncc=c\n"))
}

// =============================================================================
// Files
// =============================================================================

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sort.a2b")
	require.NoError(t, os.WriteFile(path, []byte("ba=ab\nca=ac\ncb=bc\n"), 0644))

	prog, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, prog.Len())
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.a2b"))
	require.Error(t, err)
	assert.False(t, IsSyntaxError(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
