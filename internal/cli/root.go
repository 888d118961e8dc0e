package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"

	"github.com/roach88/a2b/internal/ir"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose  bool
	Format   string // "json" | "text"
	LogLevel string // "debug" | "info" | "warn" | "error"

	// LogHandlers receive every log record in addition to the stderr
	// text handler (for testing).
	LogHandlers []slog.Handler
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidLogLevels defines the allowed --log-level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

const defaultLogLevel = "warn"

// NewRootCommand creates the root command for the a2b CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	runOpts := &RunOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   "a2b [program-file]",
		Short: "a2b - a priority string-rewriting interpreter",
		Long: `Run A=B programs: ordered lists of literal rewrite rules applied to a
single line of input until no rule matches or a (return) rule fires.

"a2b <program-file>" is shorthand for "a2b run <program-file>".`,
		Args: maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runProgram(runOpts, args[0], cmd)
		},
		Version:       ir.EngineVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			if !isValidLogLevel(opts.LogLevel) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid log level %q: must be one of %v", opts.LogLevel, ValidLogLevels))
			}
			return nil
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "print every rewrite step to stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", defaultLogLevel, "log level (debug|info|warn|error)")
	addLimitFlags(cmd, runOpts)

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// newLogger builds the command logger: a text handler on w at the
// configured level, fanned out to any extra handlers.
func (o *RootOptions) newLogger(w io.Writer) (*slog.Logger, error) {
	name := o.LogLevel
	if name == "" {
		name = defaultLogLevel
	}
	if !isValidLogLevel(name) {
		return nil, fmt.Errorf("invalid log level %q: must be one of %v", name, ValidLogLevels)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return nil, err
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
	}
	handlers = append(handlers, o.LogHandlers...)
	return slog.New(slogmulti.Fanout(handlers...)), nil
}

// exactArgs is cobra.ExactArgs with argument errors reported as command errors.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return WrapExitError(ExitCommandError, "invalid arguments", err)
		}
		return nil
	}
}

// maxArgs is cobra.MaximumNArgs with argument errors reported as command errors.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(n)(cmd, args); err != nil {
			return WrapExitError(ExitCommandError, "invalid arguments", err)
		}
		return nil
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

func isValidLogLevel(level string) bool {
	return slices.Contains(ValidLogLevels, level)
}
