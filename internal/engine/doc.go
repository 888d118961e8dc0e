// Package engine executes compiled A2B programs.
//
// An A2B program is an ordered list of rewrite rules. Execution repeatedly
// scans the rules in program order and applies the first one whose match
// pattern occurs in the working string, until no rule applies, a (return)
// rule fires, or a resource limit is exceeded.
//
// WORKING STRING:
//
// The input is trimmed and wrapped in the sentinels "^" and "$" so that
// (start) and (end) patterns can be found with a plain substring search.
// Sentinels are stripped from every rewrite result and re-added at the
// ends, so they never appear in an Output.
//
// DETERMINISM:
//
// Rules are tried in declaration order on every step and only the leftmost
// occurrence of a pattern is rewritten. There is no indexing of rules and
// no randomness; the same program and input always produce the same steps.
//
// PER-RUN STATE:
//
// How many times each rule fired is held by the run, not by the program.
// Every Execute call starts from zero, so a (once) rule can fire again in
// the next call and one *ir.Program can be shared by concurrent calls.
//
// LIMITS:
//
// A run fails with a *RuntimeError after more than DefaultMaxOperations
// rewrites or when the working string (sentinels included) grows past
// DefaultMaxLength bytes. Both limits are checked after each rewrite and
// before a (return) takes effect.
package engine
