package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: one program and the
// inputs it is run on.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Program is the inline program source.
	Program string `yaml:"program,omitempty"`

	// ProgramFile is a program file path. LoadScenario resolves it
	// relative to the scenario file.
	ProgramFile string `yaml:"program_file,omitempty"`

	// RunID is an optional fixed run ID for deterministic output.
	// If empty, defaults to testutil.DefaultRunID.
	RunID string `yaml:"run_id,omitempty"`

	// MaxOperations and MaxLength override the engine limits when set.
	MaxOperations int `yaml:"max_operations,omitempty"`
	MaxLength     int `yaml:"max_length,omitempty"`

	// SyntaxError, when set, expects the program to be rejected.
	SyntaxError *SyntaxExpectation `yaml:"syntax_error,omitempty"`

	// Cases are run in order against the same compiled program.
	Cases []Case `yaml:"cases,omitempty"`

	// Assertions validate the traces of individual cases.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Case is one input line with its expected outcome.
// Exactly one of Expect and Error is set.
type Case struct {
	Input string `yaml:"input"`

	// Expect is the expected output. A pointer so that "" can be expected.
	Expect *string `yaml:"expect,omitempty"`

	// Error is the expected runtime error kind: time_limit or length_limit.
	Error string `yaml:"error,omitempty"`
}

// SyntaxExpectation describes the syntax error a rejected program must raise.
type SyntaxExpectation struct {
	Line int    `yaml:"line"`
	Code string `yaml:"code,omitempty"`
}

// Assertion validates the trace or outcome of one case.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_contains": the rule on Line fired at least once
	// - "trace_order": rules on Lines fired in this order (gaps allowed)
	// - "trace_count": the rule on Line fired exactly Count times
	// - "final_state": the run ended in State
	Type string `yaml:"type"`

	// Case is the index of the case the assertion applies to.
	Case int `yaml:"case,omitempty"`

	// Line is a 1-based rule source line (trace_contains, trace_count).
	Line int `yaml:"line,omitempty"`

	// Lines is the expected firing order (trace_order).
	Lines []int `yaml:"lines,omitempty"`

	// Count is the expected number of firings (trace_count).
	Count int `yaml:"count,omitempty"`

	// State is the expected engine state name (final_state).
	State string `yaml:"state,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalState    = "final_state"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, fails the CUE schema,
// contains unknown fields (typos), or is semantically inconsistent.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.ProgramFile != "" && !filepath.IsAbs(scenario.ProgramFile) {
		scenario.ProgramFile = filepath.Join(filepath.Dir(path), scenario.ProgramFile)
	}
	return scenario, nil
}

// ParseScenario parses and validates scenario YAML. A relative
// program_file is left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	if err := CheckSchema(data); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	// Strict decode catches anything the schema let through by accident.
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// ProgramSource returns the program text, reading ProgramFile if set.
func (s *Scenario) ProgramSource() (string, error) {
	if s.ProgramFile == "" {
		return s.Program, nil
	}
	data, err := os.ReadFile(s.ProgramFile)
	if err != nil {
		return "", fmt.Errorf("failed to read program file: %w", err)
	}
	return string(data), nil
}

// validateScenario checks the rules the schema does not express.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if (s.Program == "") == (s.ProgramFile == "") {
		return fmt.Errorf("exactly one of program and program_file is required")
	}

	if s.SyntaxError != nil {
		if len(s.Cases) > 0 || len(s.Assertions) > 0 {
			return fmt.Errorf("a scenario expecting a syntax error cannot have cases or assertions")
		}
		return nil
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	for i, c := range s.Cases {
		if (c.Expect == nil) == (c.Error == "") {
			return fmt.Errorf("cases[%d]: exactly one of expect and error is required", i)
		}
		if c.Error != "" && c.Error != ErrorTimeLimit && c.Error != ErrorLengthLimit {
			return fmt.Errorf("cases[%d]: unknown error kind %q", i, c.Error)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a, len(s.Cases)); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, cases int) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	if a.Case < 0 || a.Case >= cases {
		return fmt.Errorf("assertions[%d]: case %d out of range (scenario has %d cases)", index, a.Case, cases)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Line <= 0 {
			return fmt.Errorf("assertions[%d]: line is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Lines) == 0 {
			return fmt.Errorf("assertions[%d]: lines list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Line <= 0 {
			return fmt.Errorf("assertions[%d]: line is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalState:
		if a.State == "" {
			return fmt.Errorf("assertions[%d]: state is required for final_state", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
