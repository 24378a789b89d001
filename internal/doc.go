// Package internal runs the analysis of expression files.
//
// Engine: reads expression files (one expression per line, blank lines and
// lines starting with '#' skipped), validates every expression and applies
// the enabled checks to the valid ones.
//
// Check: one analysis step on a valid expression. The default set counts
// minterms, minimizes the expression and verifies the minimized form
// against the original with a SAT solver.
//
// Report: the outcome for one expression, see package types.
//
// The engine can also watch directories and re-run changed files.
//
// Usage:
//
//	engine := internal.NewEngine(logger, ".bool")
//	engine.IgnoreCheck("verify")
//
//	reports, err := engine.Run("path/to/exprs.bool")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, r := range reports {
//	    fmt.Printf("%s:%d %s => %s\n", r.Filename, r.Line, r.Expression, r.Minimized)
//	}
//
// This package is intended for internal use and should not be imported by
// external packages.
package internal
