// Package harness runs A2B conformance scenarios.
//
// A scenario is a YAML file naming one program and a list of cases. Each
// case feeds one input line to the program and expects either an output
// string or a runtime error kind:
//
//	name: sort_abc
//	description: bubble letters into order
//	program: |
//	  ba=ab
//	  ca=ac
//	  cb=bc
//	cases:
//	  - input: cacb
//	    expect: abcc
//	  - input: ""
//	    expect: ""
//	assertions:
//	  - type: trace_count
//	    case: 0
//	    line: 2
//	    count: 2
//
// A scenario can instead expect the program to be rejected, with
// syntax_error: {line: N, code: E00x} and no cases.
//
// # Validation
//
// Scenario files are checked in three passes: against the CUE schema in
// schema.cue (types, enums, closed structs), by a strict YAML decode that
// rejects unknown fields, and by semantic checks that CUE cannot express
// cheaply (program xor program_file, expect xor error, case indexes).
//
// # Determinism
//
// Every case of a scenario runs with the same fixed run ID
// (scenario.run_id, or testutil.DefaultRunID), so the canonical JSON
// snapshot of a run is byte-identical across executions and can be
// compared with a golden file.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/sort.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
