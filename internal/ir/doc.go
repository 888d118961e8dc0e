// Package ir provides the program representation shared by the compiler and
// the rewrite engine.
//
// This package contains type definitions and pure helpers only. All other
// internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Rules are immutable after parsing; per-run state lives in the engine
//   - Rule order is program semantics and is never changed
//   - Pattern text never contains the sentinel bytes '^' and '$'
//   - All JSON tags use snake_case
package ir
