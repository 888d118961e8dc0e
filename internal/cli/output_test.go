package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/a2b/internal/compiler"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"output": "abcc"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("TIME_LIMIT", "[Runtime Error]: Time Limit Exceeded", map[string]string{"steps": "1025"})
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "TIME_LIMIT", resp.Error.Code)
	assert.Equal(t, "[Runtime Error]: Time Limit Exceeded", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("abcc")
	require.NoError(t, err)
	assert.Equal(t, "abcc\n", buf.String())
}

func TestOutputFormatter_TextErrorGoesToErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:    "text",
		Writer:    out,
		ErrWriter: errOut,
	}

	err := formatter.Error("E001", "[Syntax Error on L3]: bad line", nil)
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Equal(t, "[Syntax Error on L3]: bad line\n", errOut.String())
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	details := map[string]string{"line": "3"}
	err := formatter.Error("E001", "bad line", details)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "bad line")
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:  "text",
				Writer:  buf,
				Verbose: tt.verbose,
			}

			formatter.VerboseLog("Parsed %d rule(s)", 3)

			if tt.wantLog {
				assert.Contains(t, buf.String(), "Parsed 3 rule(s)")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestOutputFormatter_ReportedOnlyInJSON(t *testing.T) {
	se := &compiler.SyntaxError{Line: 1, Code: compiler.ErrSeparatorCount, Reason: "bad line"}

	jsonFmt := &OutputFormatter{Format: "json", Writer: &bytes.Buffer{}}
	assert.True(t, IsReported(jsonFmt.reported(ExitWith(ExitFailure, se))))

	textFmt := &OutputFormatter{Format: "text", Writer: &bytes.Buffer{}}
	assert.False(t, IsReported(textFmt.reported(ExitWith(ExitFailure, se))))
}

func TestExitError(t *testing.T) {
	t.Run("message_only", func(t *testing.T) {
		err := NewExitError(ExitCommandError, "bad flags")
		assert.Equal(t, "bad flags", err.Error())
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("wrapped", func(t *testing.T) {
		inner := errors.New("boom")
		err := WrapExitError(ExitFailure, "run failed", inner)
		assert.Equal(t, "run failed: boom", err.Error())
		assert.ErrorIs(t, err, inner)
	})

	t.Run("exit_with_keeps_message", func(t *testing.T) {
		se := &compiler.SyntaxError{Line: 2, Code: compiler.ErrInvalidKeyword, Reason: `invalid keyword "(loop)"`}
		err := ExitWith(ExitFailure, se)
		assert.Equal(t, `[Syntax Error on L2]: invalid keyword "(loop)"`, err.Error())
		assert.True(t, compiler.IsSyntaxError(err))
	})

	t.Run("exit_code_through_wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "inner"))
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("reported", func(t *testing.T) {
		err := NewExitError(ExitFailure, "1 scenario(s) failed")
		assert.False(t, IsReported(err))

		err.Reported = true
		assert.True(t, IsReported(err))
		assert.True(t, IsReported(fmt.Errorf("outer: %w", err)))
		assert.False(t, IsReported(errors.New("x")))
		assert.False(t, IsReported(nil))
	})

	t.Run("plain_errors", func(t *testing.T) {
		assert.Equal(t, ExitSuccess, GetExitCode(nil))
		assert.Equal(t, ExitFailure, GetExitCode(errors.New("x")))
	})
}
