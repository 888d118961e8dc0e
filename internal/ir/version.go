package ir

// Version constants for the program representation and engine.
const (
	// IRVersion is the program representation version.
	IRVersion = "1"

	// EngineVersion is the a2b engine version.
	EngineVersion = "0.1.0"
)
