package engine

// State is the lifecycle state of a run.
type State int

const (
	Running State = iota
	HaltedNormal
	HaltedByReturn
	FailedTimeLimit
	FailedLengthLimit
)

var stateNames = map[State]string{
	Running:           "running",
	HaltedNormal:      "halted",
	HaltedByReturn:    "returned",
	FailedTimeLimit:   "time_limit_exceeded",
	FailedLengthLimit: "length_limit_exceeded",
}

// String returns the state name used in logs and JSON output.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further rewriting will happen.
func (s State) Terminal() bool {
	return s != Running
}

// Failed reports whether the run ended on a resource limit.
func (s State) Failed() bool {
	return s == FailedTimeLimit || s == FailedLengthLimit
}

// MarshalText implements encoding.TextMarshaler so states render by name
// in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
