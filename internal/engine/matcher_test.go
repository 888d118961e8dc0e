package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/a2b/internal/ir"
)

func TestOccursIn(t *testing.T) {
	tests := []struct {
		name    string
		pattern ir.Pattern
		working string
		want    bool
	}{
		{"plain", ir.Pattern{Text: "b"}, "^abc$", true},
		{"plain missing", ir.Pattern{Text: "d"}, "^abc$", false},
		{"empty always occurs", ir.Pattern{}, "^$", true},
		{"start anchored", ir.Pattern{Keyword: ir.KeywordStart, Text: "a"}, "^abc$", true},
		{"start not at start", ir.Pattern{Keyword: ir.KeywordStart, Text: "b"}, "^abc$", false},
		{"end anchored", ir.Pattern{Keyword: ir.KeywordEnd, Text: "c"}, "^abc$", true},
		{"end not at end", ir.Pattern{Keyword: ir.KeywordEnd, Text: "a"}, "^abc$", false},
		{"empty start", ir.Pattern{Keyword: ir.KeywordStart}, "^abc$", true},
		{"once is plain", ir.Pattern{Keyword: ir.KeywordOnce, Text: "bc"}, "^abc$", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, occursIn(tt.pattern, tt.working))
		})
	}
}

func TestApplyReplacement(t *testing.T) {
	tests := []struct {
		name    string
		match   ir.Pattern
		replace ir.Pattern
		working string
		want    string
	}{
		{
			name:    "leftmost occurrence only",
			match:   ir.Pattern{Text: "a"},
			replace: ir.Pattern{Text: "b"},
			working: "^aab$",
			want:    "^bab$",
		},
		{
			name:    "delete at start",
			match:   ir.Pattern{Keyword: ir.KeywordStart, Text: "a"},
			replace: ir.Pattern{},
			working: "^aab$",
			want:    "^ab$",
		},
		{
			name:    "delete at end",
			match:   ir.Pattern{Keyword: ir.KeywordEnd, Text: "a"},
			replace: ir.Pattern{},
			working: "^baa$",
			want:    "^ba$",
		},
		{
			name:    "return discards working string",
			match:   ir.Pattern{Text: "x"},
			replace: ir.Pattern{Keyword: ir.KeywordReturn, Text: "hello"},
			working: "^axb$",
			want:    "^hello$",
		},
		{
			name:    "empty match with start replacement",
			match:   ir.Pattern{Keyword: ir.KeywordOnce},
			replace: ir.Pattern{Keyword: ir.KeywordStart, Text: "hello"},
			working: "^world$",
			want:    "^helloworld$",
		},
		{
			name:    "empty match with end replacement",
			match:   ir.Pattern{},
			replace: ir.Pattern{Keyword: ir.KeywordEnd, Text: "z"},
			working: "^ab$",
			want:    "^abz$",
		},
		{
			name:    "empty match inserts before everything",
			match:   ir.Pattern{},
			replace: ir.Pattern{Text: "x"},
			working: "^ab$",
			want:    "^xab$",
		},
		{
			name:    "move from end to start",
			match:   ir.Pattern{Keyword: ir.KeywordEnd, Text: "b"},
			replace: ir.Pattern{Keyword: ir.KeywordStart, Text: "c"},
			working: "^ab$",
			want:    "^ca$",
		},
		{
			name:    "move from start to end",
			match:   ir.Pattern{Keyword: ir.KeywordStart, Text: "a"},
			replace: ir.Pattern{Keyword: ir.KeywordEnd, Text: "a"},
			working: "^ab$",
			want:    "^ba$",
		},
		{
			name:    "plain match with start replacement",
			match:   ir.Pattern{Text: "b"},
			replace: ir.Pattern{Keyword: ir.KeywordStart, Text: "x"},
			working: "^abc$",
			want:    "^xac$",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, applyReplacement(tt.match, tt.replace, tt.working))
		})
	}
}

func TestApplyReplacement_PanicsWhenPatternAbsent(t *testing.T) {
	assert.Panics(t, func() {
		applyReplacement(ir.Pattern{Text: "x"}, ir.Pattern{Text: "y"}, "^ab$")
	})
}

func TestWrapUnwrap(t *testing.T) {
	assert.Equal(t, "^abc$", wrap("abc"))
	assert.Equal(t, "abc", unwrap("^abc$"))
	assert.Equal(t, "", unwrap(wrap("")))
}
