package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/a2b/internal/compiler"
	"github.com/roach88/a2b/internal/engine"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	MaxOperations int
	MaxLength     int

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs engine.RunIDGenerator
}

// RunResult is the JSON payload of a successful run.
type RunResult struct {
	RunID       string        `json:"run_id"`
	ProgramHash string        `json:"program_hash"`
	Output      string        `json:"output"`
	State       engine.State  `json:"state"`
	Steps       int           `json:"steps"`
	Trace       []engine.Step `json:"trace,omitempty"` // with --verbose only
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <program-file>",
		Short: "Run a program on one line of stdin",
		Long: `Run an A=B program on a single line of input read from stdin and print
the resulting string.

With --verbose every rewrite is printed to stderr as it happens.
A syntax error or a runtime limit prints its message to stderr and exits 1.

Example:
  echo cacb | a2b run sort.a2b
  echo aaaa | a2b run -v --max-ops 100 loop.a2b`,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(opts, args[0], cmd)
		},
	}

	addLimitFlags(cmd, opts)

	return cmd
}

// addLimitFlags registers the engine limit flags on cmd.
func addLimitFlags(cmd *cobra.Command, opts *RunOptions) {
	cmd.Flags().IntVar(&opts.MaxOperations, "max-ops", engine.DefaultMaxOperations, "maximum number of rewrites")
	cmd.Flags().IntVar(&opts.MaxLength, "max-len", engine.DefaultMaxLength, "maximum working string length")
}

func runProgram(opts *RunOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	logger, err := opts.newLogger(cmd.ErrOrStderr())
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	}
	if opts.MaxOperations < 1 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--max-ops must be positive, got %d", opts.MaxOperations))
	}
	if opts.MaxLength < 1 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--max-len must be positive, got %d", opts.MaxLength))
	}

	src, err := ReadProgram(path)
	if err != nil {
		return commandError(formatter, err)
	}

	prog, err := compiler.Parse(src)
	if err != nil {
		var se *compiler.SyntaxError
		if errors.As(err, &se) {
			jsonError(formatter, se.Code, se.Error(), map[string]int{"line": se.Line})
			return formatter.reported(ExitWith(ExitFailure, se))
		}
		return WrapExitError(ExitFailure, "parse failed", err)
	}
	logger.Debug("program loaded", "path", path, "rules", prog.Len())

	input, err := readInputLine(cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}

	runIDs := opts.RunIDs
	if runIDs == nil {
		runIDs = engine.UUIDv7Generator{}
	}
	engOpts := []engine.Option{
		engine.WithMaxOperations(opts.MaxOperations),
		engine.WithMaxLength(opts.MaxLength),
		engine.WithRunIDGenerator(runIDs),
		engine.WithLogger(logger),
	}

	var recorder *engine.Recorder
	if opts.Verbose {
		recorder = engine.NewRecorder()
		engOpts = append(engOpts, engine.WithTracer(engine.MultiTracer(
			engine.NewTextTracer(cmd.ErrOrStderr()),
			recorder,
		)))
	}

	res, err := engine.New(engOpts...).Execute(prog, input)
	if err != nil {
		var rerr *engine.RuntimeError
		if errors.As(err, &rerr) {
			jsonError(formatter, string(rerr.Code), rerr.Error(), rerr.Details)
			return formatter.reported(ExitWith(ExitFailure, rerr))
		}
		return WrapExitError(ExitFailure, "run failed", err)
	}

	if opts.Format != "json" {
		fmt.Fprintln(formatter.Writer, res.Output)
		return nil
	}

	out := RunResult{
		RunID:       res.RunID,
		ProgramHash: res.ProgramHash,
		Output:      res.Output,
		State:       res.State,
		Steps:       res.Steps,
	}
	if recorder != nil {
		out.Trace = recorder.Steps()
	}
	return formatter.Success(out)
}

// readInputLine reads one line from r without its line terminator.
// Empty input yields the empty string.
func readInputLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// commandError reports a LoadError (or any other setup failure) as a
// command error.
func commandError(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		jsonError(formatter, loadErr.Code, loadErr.Message, nil)
		return formatter.reported(ExitWith(ExitCommandError, loadErr))
	}
	jsonError(formatter, ErrCodeGeneric, err.Error(), nil)
	return formatter.reported(ExitWith(ExitCommandError, err))
}

// jsonError writes an error response in json mode. In text mode the error
// is returned to main, which prints it to stderr. Callers mark the
// returned error with formatter.reported.
func jsonError(formatter *OutputFormatter, code, message string, details any) {
	if formatter.Format != "json" {
		return
	}
	_ = formatter.Error(code, message, details)
}
