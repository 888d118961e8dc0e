package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/a2b/internal/compiler"
)

func executeValidate(t *testing.T, format, path string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateValidProgram(t *testing.T) {
	path := writeProgram(t, "/* sorts a, b and c */\n*/\n"+sortProgram)

	output, err := executeValidate(t, "text", path)
	require.NoError(t, err)
	assert.Contains(t, output, "✓ Program valid (3 rules, ")
}

func TestValidateValidProgramJSON(t *testing.T) {
	path := writeProgram(t, sortProgram)

	output, err := executeValidate(t, "json", path)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, 3, resp.Data.Rules)
	assert.Len(t, resp.Data.ProgramHash, 64)
}

func TestValidateReportsEveryError(t *testing.T) {
	path := writeProgram(t, "a=b\nab\n(return)x=y\nx=(once)y\n(loop)a=b\nc=d\n")

	output, err := executeValidate(t, "text", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "4 error(s)")
	assert.False(t, IsReported(err))

	assert.Contains(t, output, "✗ Validation failed")
	assert.Contains(t, output, "E001: [Syntax Error on L2]:")
	assert.Contains(t, output, "E004: [Syntax Error on L3]:")
	assert.Contains(t, output, "E005: [Syntax Error on L4]:")
	assert.Contains(t, output, "E003: [Syntax Error on L5]:")
}

func TestValidateErrorsJSON(t *testing.T) {
	path := writeProgram(t, "a=b\nx=(once)y\n")

	output, err := executeValidate(t, "json", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  *CLIError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	require.Len(t, resp.Data.Errors, 1)
	assert.Equal(t, 2, resp.Data.Errors[0].Line)
	assert.Equal(t, compiler.ErrOnceOnReplace, resp.Data.Errors[0].Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, compiler.ErrOnceOnReplace, resp.Error.Code)
}

func TestValidateNonExistentFile(t *testing.T) {
	_, err := executeValidate(t, "text", filepath.Join(t.TempDir(), "missing.a2b"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeNotFound)
}

func TestValidateNonExistentFileJSON(t *testing.T) {
	output, err := executeValidate(t, "json", filepath.Join(t.TempDir(), "missing.a2b"))
	require.Error(t, err)
	assert.True(t, IsReported(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestValidateEmptyProgram(t *testing.T) {
	path := writeProgram(t, "\n   \n")

	output, err := executeValidate(t, "text", path)
	require.NoError(t, err)
	assert.Contains(t, output, "(0 rules, ")
}
