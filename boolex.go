// Package boolex validates Boolean expressions written with single-letter
// inputs, builds their truth tables and reduces them to a minimal sum of
// products.
//
// Operators are ! (NOT), . (AND), ^ (XOR) and + (OR), binding in that
// order. Inputs are the letters A to Z and must be used sequentially from
// A; 0 and 1 are constants.
package boolex

import (
	"math/big"

	"github.com/gnoswap-labs/boolex/internal/expr"
	"github.com/gnoswap-labs/boolex/internal/qm"
	"github.com/gnoswap-labs/boolex/internal/solver"
	"github.com/gnoswap-labs/boolex/internal/table"
	"github.com/gnoswap-labs/boolex/internal/tree"
)

// MaxTableInputs is the largest number of inputs a truth table, and so a
// minimization, accepts.
const MaxTableInputs = expr.MaxTableInputs

type (
	Tree       = tree.Tree
	Table      = table.Table
	Result     = qm.Result
	Reason     = expr.Reason
	Validation = expr.ValidationError
)

// Validate checks expression. With forTable set it also rejects expressions
// with more inputs than a truth table allows. Failures are *Validation
// errors; use ReasonOf to classify them.
func Validate(expression string, forTable bool) error {
	return expr.Validate(expr.Strip(expression), forTable)
}

// ReasonOf extracts the failure class of a Validate error.
func ReasonOf(err error) (Reason, bool) {
	return expr.ReasonOf(err)
}

// Parse builds the expression tree of expression.
func Parse(expression string) (*Tree, error) {
	return tree.Parse(expression)
}

// TruthTable enumerates every assignment of the inputs of expression. With
// steps set every sub-expression gets its own column.
func TruthTable(expression string, steps bool) (*Table, error) {
	return table.Generate(expression, steps)
}

// Minimize returns a minimal sum of products equivalent to expression.
func Minimize(expression string) (string, error) {
	return qm.Minimize(expression)
}

// MinimizeDetailed is Minimize with the prime implicants, the essential ones
// and the final cover.
func MinimizeDetailed(expression string) (*Result, error) {
	return qm.Run(expression)
}

// Equivalent reports whether a and b compute the same function over the
// union of their inputs. It has no input ceiling.
func Equivalent(a, b string) (bool, error) {
	return solver.SameFunction(a, b)
}

// Counterexample returns an assignment on which a and b disagree, if any.
func Counterexample(a, b string) (map[string]bool, bool, error) {
	same, model, err := solver.Equivalent(a, b)
	if err != nil || same {
		return nil, false, err
	}
	return model, true, nil
}

// CountMinterms returns how many assignments make expression true.
func CountMinterms(expression string) (*big.Int, error) {
	return solver.CountMinterms(expression)
}
