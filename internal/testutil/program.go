package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/a2b/internal/compiler"
	"github.com/roach88/a2b/internal/ir"
)

// MustParse compiles program source and fails the test on a syntax error.
func MustParse(tb testing.TB, src string) *ir.Program {
	tb.Helper()
	prog, err := compiler.Parse(src)
	require.NoError(tb, err, "program source:\n%s", src)
	return prog
}
