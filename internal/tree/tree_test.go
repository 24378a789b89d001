package tree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/boolex/internal/expr"
)

func TestBuildShape(t *testing.T) {
	t.Parallel()

	tr, err := Build("AB.C+")
	require.NoError(t, err)

	root := tr.Node(tr.Root())
	assert.Equal(t, expr.KindOr, root.Kind)
	assert.Equal(t, None, root.Parent)

	left := tr.Node(root.Left)
	assert.Equal(t, expr.KindAnd, left.Kind)
	assert.Equal(t, "A", tr.Node(left.Left).Label)
	assert.Equal(t, "B", tr.Node(left.Right).Label)
	assert.Equal(t, "C", tr.Node(root.Right).Label)

	assert.Equal(t, tr.Root(), tr.Parent(root.Left))
	assert.Equal(t, root.Left, tr.Parent(left.Left))
	assert.Equal(t, 5, tr.Len())
	assert.Equal(t, "((A.B)+C)", tr.String())
}

func TestBuildOperandOrder(t *testing.T) {
	t.Parallel()

	// first pop is the right operand
	tr, err := Build("BA^")
	require.NoError(t, err)
	root := tr.Node(tr.Root())
	assert.Equal(t, "B", tr.Node(root.Left).Label)
	assert.Equal(t, "A", tr.Node(root.Right).Label)
}

func TestBuildComplete(t *testing.T) {
	t.Parallel()

	tr, err := Parse("!(A.B)+C^1.!A")
	require.NoError(t, err)

	tr.Walk(func(id NodeID, n Node) bool {
		switch {
		case n.Kind.IsBinary():
			assert.NotEqual(t, None, n.Left)
			assert.NotEqual(t, None, n.Right)
			assert.Equal(t, id, tr.Parent(n.Left))
			assert.Equal(t, id, tr.Parent(n.Right))
		case n.Kind.IsUnary():
			assert.NotEqual(t, None, n.Left)
			assert.Equal(t, None, n.Right)
		default:
			assert.True(t, n.IsLeaf())
			assert.Equal(t, None, n.Left)
			assert.Equal(t, None, n.Right)
		}
		return true
	})
}

func TestBuildMalformed(t *testing.T) {
	t.Parallel()

	for _, postfix := range []string{"A.", ".", "AB", "", "A!!B", "A(B)."} {
		tr, err := Build(postfix)
		assert.Nil(t, tr, postfix)
		assert.True(t, errors.Is(err, expr.ErrMalformedPostfix), "%q: %v", postfix, err)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	t.Parallel()

	tr, err := Parse("A+C")
	assert.Nil(t, tr)
	assert.True(t, errors.Is(err, expr.ErrNonSequentialInputs))
}

func TestRepeatedInputs(t *testing.T) {
	t.Parallel()

	tr, err := Parse("A.B+A.!B+A")
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, tr.Inputs())
	assert.Equal(t, 3, tr.Instances("A"))
	assert.Equal(t, 2, tr.Instances("B"))
	assert.Equal(t, 0, tr.Instances("C"))

	var occurrences []NodeID
	tr.Walk(func(id NodeID, n Node) bool {
		if n.Kind == expr.KindInput && n.Label == "A" {
			occurrences = append(occurrences, id)
		}
		return true
	})
	require.Len(t, occurrences, 3)

	origin := tr.Node(occurrences[0]).Origin
	for _, id := range occurrences {
		assert.Equal(t, origin, tr.Node(id).Origin)
	}
	assert.Equal(t, 0, tr.Node(occurrences[1]).Instances)

	require.NoError(t, tr.SetInput("A", true))
	for _, id := range occurrences {
		assert.True(t, tr.State(id))
	}
	assert.Error(t, tr.SetInput("Z", true))
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		infix string
		a, b  bool
		want  bool
	}{
		{"A.B", true, true, true},
		{"A.B", true, false, false},
		{"A^B", true, false, true},
		{"A^B", true, true, false},
		{"!A+B", true, false, false},
		{"!(A+B)", false, false, true},
		{"A.1", true, false, true},
		{"A.0+B", false, true, true},
	}

	for _, tt := range tests {
		tr, err := Parse(tt.infix)
		require.NoError(t, err, tt.infix)
		for _, in := range tr.Inputs() {
			state := tt.a
			if in == "B" {
				state = tt.b
			}
			require.NoError(t, tr.SetInput(in, state))
		}
		assert.Equal(t, tt.want, tr.Evaluate(), "%s with A=%v B=%v", tt.infix, tt.a, tt.b)
	}
}

func TestConstantTree(t *testing.T) {
	t.Parallel()

	tr, err := Parse("1")
	require.NoError(t, err)
	assert.Empty(t, tr.Inputs())
	assert.True(t, tr.Evaluate())
	assert.Equal(t, "1", tr.String())
}
