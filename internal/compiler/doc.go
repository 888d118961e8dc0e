// Package compiler turns a2b program source into an ir.Program.
//
// Source is line-oriented. Each non-blank, non-comment line holds exactly
// one rule of the form
//
//	[(keyword)]match = [(keyword)]replacement
//
// where keyword is one of start, end, return or once. Pattern text is
// 7-bit ASCII without the characters ( ) ^ $ =. Block comments open on a
// line starting with "/*" and close on a later line ending with "*/".
//
// Parse stops at the first error. Check reports every error in the source
// and is what the validate command uses.
package compiler
