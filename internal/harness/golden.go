package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/a2b/internal/ir"
	"github.com/roach88/a2b/internal/testutil"
)

// Snapshot renders a scenario result as canonical JSON for golden file
// comparison. It covers outputs, states and full traces, but not the
// program hash, so reformatting a program does not invalidate goldens.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	cases := make([]any, len(result.Cases))
	for i, c := range result.Cases {
		steps := make([]any, len(c.Trace))
		for j, s := range c.Trace {
			steps[j] = map[string]any{
				"seq":      s.Seq,
				"line":     s.Line,
				"source":   s.Source,
				"before":   s.Before,
				"after":    s.After,
				"returned": s.Returned,
			}
		}

		entry := map[string]any{
			"input": c.Input,
			"state": c.State,
			"steps": c.Steps,
			"trace": steps,
		}
		if c.Error != "" {
			entry["error"] = c.Error
		} else {
			entry["output"] = c.Output
		}
		cases[i] = entry
	}

	runID := scenario.RunID
	if runID == "" {
		runID = testutil.DefaultRunID
	}

	snapshot := map[string]any{
		"scenario_name": scenario.Name,
		"run_id":        runID,
		"cases":         cases,
	}
	if se := result.SyntaxError; se != nil {
		snapshot["syntax_error"] = map[string]any{
			"line":   se.Line,
			"code":   se.Code,
			"reason": se.Reason,
		}
	}

	return ir.MarshalCanonical(snapshot)
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario, result)
}

// AssertGolden compares an existing result against the scenario's golden
// file without re-running it.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
