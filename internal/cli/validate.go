package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/a2b/internal/compiler"
	"github.com/roach88/a2b/internal/ir"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool                    `json:"valid"`
	Rules       int                     `json:"rules"`
	ProgramHash string                  `json:"program_hash,omitempty"`
	Errors      []*compiler.SyntaxError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <program-file>",
		Short: "Check a program for syntax errors without running it",
		Long: `Check an A=B program for syntax errors without running it.

Unlike run, which stops at the first bad line, validate reports every
syntax error in the file.`,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	src, err := ReadProgram(path)
	if err != nil {
		return commandError(formatter, err)
	}

	if errs := compiler.Check(src); len(errs) > 0 {
		return outputValidationErrors(formatter, errs)
	}

	// Check passed, so Parse cannot fail.
	prog, err := compiler.Parse(src)
	if err != nil {
		return WrapExitError(ExitFailure, "parse failed", err)
	}
	formatter.VerboseLog("Parsed %d rule(s) from %s", prog.Len(), path)

	hash, err := ir.ProgramHash(prog)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to hash program", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Rules: prog.Len(), ProgramHash: hash})
	}
	fmt.Fprintf(formatter.Writer, "✓ Program valid (%d rules, %s)\n", prog.Len(), ir.ShortHash(hash))
	return nil
}

// outputValidationErrors outputs every syntax error found.
func outputValidationErrors(formatter *OutputFormatter, errs []*compiler.SyntaxError) error {
	failure := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:  false,
				Errors: errs,
			},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Error(),
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return formatter.reported(failure)
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", err.Code, err.Error())
	}
	fmt.Fprintln(formatter.Writer)

	return failure
}
