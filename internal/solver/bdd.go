package solver

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/dalzilio/rudd"
	"github.com/pkg/errors"

	"github.com/gnoswap-labs/boolex/internal/expr"
	"github.com/gnoswap-labs/boolex/internal/tree"
)

// diagram holds one BDD whose variable i is inputs[i].
type diagram struct {
	bdd    *rudd.BDD
	inputs []string
	level  map[string]int
}

func newDiagram(inputs []string) (*diagram, error) {
	bdd, err := rudd.New(len(inputs))
	if err != nil {
		return nil, errors.Wrapf(err, "allocating BDD over %d inputs", len(inputs))
	}
	d := &diagram{bdd: bdd, inputs: inputs, level: make(map[string]int, len(inputs))}
	for i, in := range inputs {
		d.level[in] = i
	}
	return d, nil
}

func (d *diagram) build(t *tree.Tree, id tree.NodeID) rudd.Node {
	n := t.Node(id)
	switch n.Kind {
	case expr.KindInput:
		return d.bdd.Ithvar(d.level[n.Label])
	case expr.KindConstant:
		if n.Value {
			return d.bdd.True()
		}
		return d.bdd.False()
	case expr.KindNot:
		return d.bdd.Not(d.build(t, n.Left))
	case expr.KindAnd:
		return d.bdd.Apply(d.build(t, n.Left), d.build(t, n.Right), rudd.OPand)
	case expr.KindOr:
		return d.bdd.Apply(d.build(t, n.Left), d.build(t, n.Right), rudd.OPor)
	case expr.KindXor:
		return d.bdd.Apply(d.build(t, n.Left), d.build(t, n.Right), rudd.OPxor)
	}
	panic(fmt.Sprintf("solver: node %d has kind %v", id, n.Kind))
}

func (d *diagram) err() error {
	if msg := d.bdd.Error(); msg != "" {
		return errors.New(msg)
	}
	return nil
}

// CountMinterms returns how many assignments of the expression's inputs make
// it true.
func CountMinterms(expression string) (*big.Int, error) {
	t, err := tree.Parse(expression)
	if err != nil {
		return nil, err
	}
	inputs := t.Inputs()
	if len(inputs) == 0 {
		if t.Evaluate() {
			return big.NewInt(1), nil
		}
		return big.NewInt(0), nil
	}

	d, err := newDiagram(inputs)
	if err != nil {
		return nil, err
	}
	count := d.bdd.Satcount(d.build(t, t.Root()))
	if err := d.err(); err != nil {
		return nil, err
	}
	return count, nil
}

// SameFunction builds both expressions in one diagram over the union of
// their inputs. Reduced ordered BDDs are canonical, so the functions match
// exactly when the two roots are the same node.
func SameFunction(a, b string) (bool, error) {
	ta, err := tree.Parse(a)
	if err != nil {
		return false, errors.Wrap(err, "left operand")
	}
	tb, err := tree.Parse(b)
	if err != nil {
		return false, errors.Wrap(err, "right operand")
	}

	inputs := union(ta.Inputs(), tb.Inputs())
	if len(inputs) == 0 {
		return ta.Evaluate() == tb.Evaluate(), nil
	}

	d, err := newDiagram(inputs)
	if err != nil {
		return false, err
	}
	na, nb := d.build(ta, ta.Root()), d.build(tb, tb.Root())
	if err := d.err(); err != nil {
		return false, err
	}
	return *na == *nb, nil
}

func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range append(append([]string(nil), a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
