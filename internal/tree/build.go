package tree

import (
	"fmt"

	"github.com/gnoswap-labs/boolex/internal/expr"
)

// Build constructs a tree from a postfix token sequence.
//
// Nodes are assembled in a private arena; on any arity problem the arena
// is dropped and only an error is returned, so callers never observe a
// partial tree.
func Build(postfix string) (*Tree, error) {
	t := &Tree{
		nodes:  make([]Node, 0, len(postfix)),
		root:   None,
		origin: make(map[string]NodeID),
	}

	var stack []NodeID
	pop := func() NodeID {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return id
	}

	for i := 0; i < len(postfix); i++ {
		c := postfix[i]
		kind, ok := expr.Classify(c)
		if !ok {
			return nil, &expr.ValidationError{Reason: expr.InvalidCharacter, Expression: postfix, Detail: fmt.Sprintf("unexpected %q", c)}
		}

		switch {
		case kind == expr.KindInput:
			stack = append(stack, t.addInput(string(c)))

		case kind == expr.KindConstant:
			stack = append(stack, t.add(Node{Kind: kind, Label: string(c), Value: c == '1'}))

		case kind.IsUnary():
			if len(stack) < 1 {
				return nil, malformed(postfix, i, c)
			}
			child := pop()
			stack = append(stack, t.link(Node{Kind: kind, Label: string(c), Left: child, Right: None}))

		case kind.IsBinary():
			if len(stack) < 2 {
				return nil, malformed(postfix, i, c)
			}
			right := pop()
			left := pop()
			stack = append(stack, t.link(Node{Kind: kind, Label: string(c), Left: left, Right: right}))

		default:
			return nil, &expr.ValidationError{Reason: expr.MalformedPostfix, Expression: postfix, Detail: "brackets are not allowed in postfix"}
		}
	}

	if len(stack) != 1 {
		return nil, &expr.ValidationError{
			Reason:     expr.MalformedPostfix,
			Expression: postfix,
			Detail:     fmt.Sprintf("%d nodes left after building, want 1", len(stack)),
		}
	}
	t.root = stack[0]
	return t, nil
}

// Parse validates an infix expression and builds its tree.
func Parse(infix string) (*Tree, error) {
	if err := expr.Validate(infix, false); err != nil {
		return nil, err
	}
	return Build(expr.ToPostfix(infix))
}

func (t *Tree) add(n Node) NodeID {
	id := NodeID(len(t.nodes))
	n.Parent = None
	if n.Kind != expr.KindInput {
		n.Origin = None
	}
	if n.IsLeaf() {
		n.Left, n.Right = None, None
	}
	t.nodes = append(t.nodes, n)
	return id
}

// addInput creates a leaf for label. The first occurrence becomes the
// origin; later ones point at it and bump its counter.
func (t *Tree) addInput(label string) NodeID {
	id := NodeID(len(t.nodes))
	origin, seen := t.origin[label]
	if !seen {
		origin = id
		t.origin[label] = id
	}
	t.add(Node{Kind: expr.KindInput, Label: label, Origin: origin})
	t.nodes[origin].Instances++
	return id
}

// link adds an operator node and points its children back at it.
func (t *Tree) link(n Node) NodeID {
	id := t.add(n)
	t.nodes[n.Left].Parent = id
	if n.Right != None {
		t.nodes[n.Right].Parent = id
	}
	return id
}

func malformed(postfix string, pos int, c byte) error {
	return &expr.ValidationError{
		Reason:     expr.MalformedPostfix,
		Expression: postfix,
		Detail:     fmt.Sprintf("operator %q at offset %d is missing an operand", c, pos),
	}
}
