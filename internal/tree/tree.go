// Package tree builds the expression tree of a validated Boolean
// expression.
//
// Nodes live in an arena owned by the Tree and refer to each other by
// NodeID. Children are owned through the arena; the Parent link is a plain
// index kept for consumers that walk upwards, such as a layout engine.
package tree

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gnoswap-labs/boolex/internal/expr"
)

// NodeID addresses a node inside its Tree.
type NodeID int

// None marks a missing child or parent.
const None NodeID = -1

// Node is one vertex of an expression tree.
type Node struct {
	Kind  expr.Kind
	Label string // input letter, "0"/"1", or the operator symbol
	Left  NodeID // only child of a NOT node
	Right NodeID

	Parent NodeID

	// Value holds a constant's value or an input's state. For repeated
	// inputs only the first occurrence (the origin) is authoritative.
	Value bool

	// Origin is the first Input node sharing this node's label.
	// It equals the node's own id for the first occurrence and None for
	// non-input nodes.
	Origin NodeID

	// Instances counts the occurrences of the label. Only maintained on
	// the origin node.
	Instances int
}

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool {
	return n.Kind.IsOperand()
}

// Tree is a complete binary expression tree.
type Tree struct {
	nodes  []Node
	root   NodeID
	origin map[string]NodeID
}

// Root returns the id of the outermost node.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns a copy of the node with the given id.
func (t *Tree) Node(id NodeID) Node {
	return t.nodes[id]
}

func (t *Tree) Left(id NodeID) NodeID {
	return t.nodes[id].Left
}

func (t *Tree) Right(id NodeID) NodeID {
	return t.nodes[id].Right
}

// Parent returns the parent of id, or None for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	return t.nodes[id].Parent
}

// Inputs returns the distinct input labels in alphabetical order.
func (t *Tree) Inputs() []string {
	labels := make([]string, 0, len(t.origin))
	for label := range t.origin {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Instances returns how many times label occurs in the expression.
func (t *Tree) Instances(label string) int {
	id, ok := t.origin[label]
	if !ok {
		return 0
	}
	return t.nodes[id].Instances
}

// SetInput sets the state shared by every occurrence of label.
func (t *Tree) SetInput(label string, state bool) error {
	id, ok := t.origin[label]
	if !ok {
		return fmt.Errorf("no input %q in expression", label)
	}
	t.nodes[id].Value = state
	return nil
}

// State returns the effective value of a leaf: a constant's value or the
// shared state of an input.
func (t *Tree) State(id NodeID) bool {
	n := t.nodes[id]
	if n.Kind == expr.KindInput {
		return t.nodes[n.Origin].Value
	}
	return n.Value
}

// Walk visits every node in preorder. Returning false from fn skips the
// node's children.
func (t *Tree) Walk(fn func(id NodeID, n Node) bool) {
	t.walk(t.root, fn)
}

func (t *Tree) walk(id NodeID, fn func(NodeID, Node) bool) {
	if id == None {
		return
	}
	n := t.nodes[id]
	if !fn(id, n) {
		return
	}
	t.walk(n.Left, fn)
	t.walk(n.Right, fn)
}

// Evaluate computes the value of the expression for the current input
// states.
func (t *Tree) Evaluate() bool {
	return t.eval(t.root)
}

func (t *Tree) eval(id NodeID) bool {
	n := t.nodes[id]
	switch n.Kind {
	case expr.KindInput, expr.KindConstant:
		return t.State(id)
	case expr.KindNot:
		return !t.eval(n.Left)
	case expr.KindAnd:
		return t.eval(n.Left) && t.eval(n.Right)
	case expr.KindXor:
		return t.eval(n.Left) != t.eval(n.Right)
	case expr.KindOr:
		return t.eval(n.Left) || t.eval(n.Right)
	}
	panic(fmt.Sprintf("tree: node %d has kind %v", id, n.Kind))
}

// String prints the tree as fully parenthesized infix.
func (t *Tree) String() string {
	var sb strings.Builder
	t.format(&sb, t.root)
	return sb.String()
}

func (t *Tree) format(sb *strings.Builder, id NodeID) {
	n := t.nodes[id]
	switch {
	case n.IsLeaf():
		sb.WriteString(n.Label)
	case n.Kind.IsUnary():
		sb.WriteString(n.Label)
		t.format(sb, n.Left)
	default:
		sb.WriteByte('(')
		t.format(sb, n.Left)
		sb.WriteString(n.Label)
		t.format(sb, n.Right)
		sb.WriteByte(')')
	}
}
