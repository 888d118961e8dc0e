package engine

import (
	"fmt"
	"io"
	"sync"
)

// Step describes one rewrite operation. Before and After are shown
// without sentinels.
type Step struct {
	Seq      int    `json:"seq"`      // 1-based operation number
	Line     int    `json:"line"`     // source line of the applied rule
	Source   string `json:"source"`   // trimmed source text of the rule
	Before   string `json:"before"`   // working string before the rewrite
	After    string `json:"after"`    // working string after the rewrite
	Returned bool   `json:"returned"` // the rule carried (return)
}

// Tracer observes every rewrite of a run, including the one that trips
// a limit.
type Tracer interface {
	Step(Step)
}

// TracerFunc adapts a function to the Tracer interface.
type TracerFunc func(Step)

// Step calls f(s).
func (f TracerFunc) Step(s Step) {
	f(s)
}

// TextTracer writes the human-readable step trace:
//
//	Step 1:
//	  L0: a=b
//	>> abc
//	<< bbc
//
// The L number counts source lines from zero, so a rule on the first
// line of the file prints as L0. Step.Line itself stays 1-based.
//
// Write errors are ignored; a broken trace sink never fails a run.
type TextTracer struct {
	W io.Writer
}

// NewTextTracer creates a tracer writing to w.
func NewTextTracer(w io.Writer) *TextTracer {
	return &TextTracer{W: w}
}

// Step implements Tracer.
func (t *TextTracer) Step(s Step) {
	ret := ""
	if s.Returned {
		ret = "(return)"
	}
	fmt.Fprintf(t.W, "Step %d:\n  L%d: %s\n>> %s\n<< %s%s\n\n",
		s.Seq, s.Line-1, s.Source, s.Before, ret, s.After)
}

// Recorder collects steps in memory.
//
// Thread-safety: Recorder is safe for concurrent use, but steps from
// concurrent runs interleave.
type Recorder struct {
	mu    sync.Mutex
	steps []Step
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Step implements Tracer.
func (r *Recorder) Step(s Step) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, s)
}

// Steps returns a copy of the recorded steps.
func (r *Recorder) Steps() []Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Step, len(r.steps))
	copy(out, r.steps)
	return out
}

// Reset discards recorded steps.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = nil
}

type multiTracer []Tracer

func (m multiTracer) Step(s Step) {
	for _, t := range m {
		t.Step(s)
	}
}

// MultiTracer fans each step out to all non-nil tracers in order.
func MultiTracer(tracers ...Tracer) Tracer {
	var m multiTracer
	for _, t := range tracers {
		if t != nil {
			m = append(m, t)
		}
	}
	return m
}
