// Package solver answers satisfiability and equivalence questions about
// expressions without enumerating their truth tables, so it is not bound by
// the table input ceiling.
package solver

import (
	"fmt"

	"github.com/crillab/gophersat/bf"
	"github.com/pkg/errors"

	"github.com/gnoswap-labs/boolex/internal/expr"
	"github.com/gnoswap-labs/boolex/internal/tree"
)

// term is a formula under construction. Constants are folded as they are
// met: the CNF translation does not cope with constant clauses.
type term struct {
	f     bf.Formula
	konst bool
	value bool
}

func constant(v bool) term { return term{konst: true, value: v} }

func (t term) formula() bf.Formula {
	if !t.konst {
		return t.f
	}
	if t.value {
		return bf.True
	}
	return bf.False
}

func not(a term) term {
	if a.konst {
		return constant(!a.value)
	}
	return term{f: bf.Not(a.f)}
}

func and(a, b term) term {
	switch {
	case a.konst && !a.value, b.konst && !b.value:
		return constant(false)
	case a.konst:
		return b
	case b.konst:
		return a
	}
	return term{f: bf.And(a.f, b.f)}
}

func or(a, b term) term {
	switch {
	case a.konst && a.value, b.konst && b.value:
		return constant(true)
	case a.konst:
		return b
	case b.konst:
		return a
	}
	return term{f: bf.Or(a.f, b.f)}
}

func xor(a, b term) term {
	switch {
	case a.konst && b.konst:
		return constant(a.value != b.value)
	case a.konst && a.value:
		return not(b)
	case a.konst:
		return b
	case b.konst && b.value:
		return not(a)
	case b.konst:
		return a
	}
	return term{f: bf.Xor(a.f, b.f)}
}

// Formula translates a parsed expression into a SAT formula whose variables
// are named after the inputs.
func Formula(t *tree.Tree) bf.Formula {
	return translate(t, t.Root()).formula()
}

func translate(t *tree.Tree, id tree.NodeID) term {
	n := t.Node(id)
	switch n.Kind {
	case expr.KindInput:
		return term{f: bf.Var(n.Label)}
	case expr.KindConstant:
		return constant(n.Value)
	case expr.KindNot:
		return not(translate(t, n.Left))
	case expr.KindAnd:
		return and(translate(t, n.Left), translate(t, n.Right))
	case expr.KindOr:
		return or(translate(t, n.Left), translate(t, n.Right))
	case expr.KindXor:
		return xor(translate(t, n.Left), translate(t, n.Right))
	}
	panic(fmt.Sprintf("solver: node %d has kind %v", id, n.Kind))
}

// solve returns a model of t over inputs, or nil when t is unsatisfiable.
// Inputs eliminated by constant folding are reported as false.
func solve(t term, inputs []string) map[string]bool {
	model := make(map[string]bool, len(inputs))
	if t.konst {
		if !t.value {
			return nil
		}
	} else {
		found := bf.Solve(t.f)
		if found == nil {
			return nil
		}
		for k, v := range found {
			model[k] = v
		}
	}
	for _, in := range inputs {
		if _, ok := model[in]; !ok {
			model[in] = false
		}
	}
	return model
}

// Satisfiable reports whether some assignment makes expression true, and
// returns that assignment.
func Satisfiable(expression string) (map[string]bool, bool, error) {
	t, err := tree.Parse(expression)
	if err != nil {
		return nil, false, err
	}
	model := solve(translate(t, t.Root()), t.Inputs())
	return model, model != nil, nil
}

// Tautology reports whether expression is true under every assignment. If
// not, the returned assignment falsifies it.
func Tautology(expression string) (bool, map[string]bool, error) {
	t, err := tree.Parse(expression)
	if err != nil {
		return false, nil, err
	}
	counter := solve(not(translate(t, t.Root())), t.Inputs())
	return counter == nil, counter, nil
}

// Equivalent reports whether a and b agree everywhere by checking that
// a XOR b is unsatisfiable. If they differ, the returned assignment is one
// on which they disagree.
func Equivalent(a, b string) (bool, map[string]bool, error) {
	ta, err := tree.Parse(a)
	if err != nil {
		return false, nil, errors.Wrap(err, "left operand")
	}
	tb, err := tree.Parse(b)
	if err != nil {
		return false, nil, errors.Wrap(err, "right operand")
	}
	diff := xor(translate(ta, ta.Root()), translate(tb, tb.Root()))
	counter := solve(diff, union(ta.Inputs(), tb.Inputs()))
	return counter == nil, counter, nil
}
