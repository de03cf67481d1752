// Package trindi provides an information-state dialogue manager in
// the IBIS style: issues under discussion drive what the system asks,
// and plans from a domain decide how to resolve them.
//
// The update and selection rules are in package 'ibis', the rule
// engine and containers are in 'core', and the command-line tools are
// in `cmd`.
package trindi
