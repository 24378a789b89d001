// Package table enumerates truth tables of Boolean expressions.
package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gnoswap-labs/boolex/internal/expr"
)

// Table is the truth table of one expression.
//
// Rows[i] is the input assignment of row i: the binary representation of i
// zero-padded to len(Inputs), Inputs[0] being the most significant bit.
// Output[i][j] is the value of Headers[j] on row i. The last header is
// always the full expression.
type Table struct {
	Expression string
	Inputs     []string
	Rows       []string
	Headers    []string
	Output     [][]byte
}

// NumberOfInputs counts the distinct input letters of expression, or every
// operand occurrence (inputs and constants) when unique is false.
func NumberOfInputs(expression string, unique bool) int {
	if unique {
		return len(expr.Inputs(expression))
	}
	n := 0
	for i := 0; i < len(expression); i++ {
		if kind, ok := expr.Classify(expression[i]); ok && kind.IsOperand() {
			n++
		}
	}
	return n
}

// InputMap returns the 2^n input assignments in counting order.
func InputMap(n int) []string {
	rows := make([]string, 1<<n)
	if n == 0 {
		rows[0] = ""
		return rows
	}
	format := "%0" + strconv.Itoa(n) + "b"
	for i := range rows {
		rows[i] = fmt.Sprintf(format, i)
	}
	return rows
}

// Headers lists the columns of the table. In steps mode every distinct
// sub-expression becomes a column, shortest first; otherwise only the full
// expression is returned.
func Headers(expression string, steps bool) ([]string, error) {
	postfix := expr.ToPostfix(expression)
	labels, err := subexpressions(postfix)
	if err != nil {
		return nil, err
	}
	final := labels[len(labels)-1]
	if !steps {
		return []string{final}, nil
	}

	seen := make(map[string]bool, len(labels))
	headers := make([]string, 0, len(labels))
	for _, label := range labels {
		if seen[label] {
			continue
		}
		// constants are only a column when they are the whole expression
		if isConstant(label) && label != final {
			continue
		}
		seen[label] = true
		headers = append(headers, label)
	}

	sort.SliceStable(headers, func(i, j int) bool {
		if len(headers[i]) != len(headers[j]) {
			return len(headers[i]) < len(headers[j])
		}
		return headers[i] < headers[j]
	})
	return headers, nil
}

// subexpressions walks postfix in evaluation order and returns the label
// of every operand and operator application. The last one is the root.
func subexpressions(postfix string) ([]string, error) {
	var (
		stack  []string
		labels []string
	)
	for i := 0; i < len(postfix); i++ {
		c := postfix[i]
		kind, _ := expr.Classify(c)
		var label string
		switch {
		case kind.IsUnary():
			if len(stack) < 1 {
				return nil, expr.ErrMalformedPostfix
			}
			label = "!" + stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		case kind.IsBinary():
			if len(stack) < 2 {
				return nil, expr.ErrMalformedPostfix
			}
			left, right := stack[len(stack)-2], stack[len(stack)-1]
			stack = stack[:len(stack)-2]
			label = "(" + left + string(c) + right + ")"
		default:
			label = string(c)
		}
		stack = append(stack, label)
		labels = append(labels, label)
	}
	if len(stack) != 1 {
		return nil, expr.ErrMalformedPostfix
	}
	return labels, nil
}

func isConstant(label string) bool {
	return label == "0" || label == "1"
}

// Evaluate computes header on one input row. Every input letter is replaced
// by the row bit at its alphabetical position before the substituted
// expression is converted to postfix and evaluated.
func Evaluate(header string, inputs []string, row string) (byte, error) {
	if len(inputs) != len(row) {
		return 0, fmt.Errorf("row %q does not match %d inputs", row, len(inputs))
	}
	position := make(map[byte]int, len(inputs))
	for i, in := range inputs {
		position[in[0]] = i
	}

	substituted := []byte(header)
	for i, c := range substituted {
		if c < 'A' || c > 'Z' {
			continue
		}
		p, ok := position[c]
		if !ok {
			return 0, fmt.Errorf("input %c of %q is not in the row", c, header)
		}
		substituted[i] = row[p]
	}
	return expr.EvalPostfix(expr.ToPostfix(string(substituted)))
}

// OutputMap evaluates every header against every row.
func OutputMap(headers, inputs, rows []string) ([][]byte, error) {
	out := make([][]byte, len(rows))
	for i, row := range rows {
		out[i] = make([]byte, len(headers))
		for j, header := range headers {
			v, err := Evaluate(header, inputs, row)
			if err != nil {
				return nil, fmt.Errorf("evaluating %s on row %s: %w", header, row, err)
			}
			out[i][j] = v
		}
	}
	return out, nil
}

// Generate validates expression and enumerates its truth table. Expressions
// with more than expr.MaxTableInputs inputs are refused before any row is
// produced.
func Generate(expression string, steps bool) (*Table, error) {
	return GenerateWith(expression, nil, steps)
}

// GenerateWith is Generate over an explicit input set, which must contain
// every input of expression. Extra inputs are enumerated but unused, which
// lets two expressions be compared row by row. A nil set means the
// expression's own inputs.
func GenerateWith(expression string, inputs []string, steps bool) (*Table, error) {
	s := expr.Strip(expression)
	if err := expr.Validate(s, true); err != nil {
		return nil, err
	}

	own := expr.Inputs(s)
	if inputs == nil {
		inputs = own
	}
	if len(inputs) > expr.MaxTableInputs {
		return nil, &expr.ValidationError{
			Reason:     expr.TableTooLarge,
			Expression: s,
			Detail:     fmt.Sprintf("%d inputs, at most %d allowed", len(inputs), expr.MaxTableInputs),
		}
	}
	for _, in := range own {
		if !contains(inputs, in) {
			return nil, fmt.Errorf("input %s of %q is missing from %v", in, s, inputs)
		}
	}

	headers, err := Headers(s, steps)
	if err != nil {
		return nil, err
	}
	rows := InputMap(len(inputs))
	output, err := OutputMap(headers, inputs, rows)
	if err != nil {
		return nil, err
	}

	return &Table{
		Expression: s,
		Inputs:     inputs,
		Rows:       rows,
		Headers:    headers,
		Output:     output,
	}, nil
}

// Equivalent reports whether two expressions agree on every assignment of
// the union of their inputs.
func Equivalent(a, b string) (bool, error) {
	inputs := union(expr.Inputs(expr.Strip(a)), expr.Inputs(expr.Strip(b)))
	ta, err := GenerateWith(a, inputs, false)
	if err != nil {
		return false, err
	}
	tb, err := GenerateWith(b, inputs, false)
	if err != nil {
		return false, err
	}
	return Equal(ta, tb), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func union(a, b []string) []string {
	out := append([]string(nil), a...)
	for _, v := range b {
		if !contains(out, v) {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// Column returns column j top to bottom.
func (t *Table) Column(j int) []byte {
	col := make([]byte, len(t.Output))
	for i, row := range t.Output {
		col[i] = row[j]
	}
	return col
}

// Result returns the value of the full expression on row i.
func (t *Table) Result(i int) byte {
	return t.Output[i][len(t.Headers)-1]
}

// Minterms returns the rows on which the full expression is true.
func (t *Table) Minterms() []string {
	var minterms []string
	for i, row := range t.Rows {
		if t.Result(i) == 1 {
			minterms = append(minterms, row)
		}
	}
	return minterms
}

// String renders the final column as a compact bit string, row 0 first.
func (t *Table) String() string {
	var sb strings.Builder
	for i := range t.Rows {
		sb.WriteByte('0' + t.Result(i))
	}
	return sb.String()
}

// Equal reports whether a and b describe the same function: same inputs
// and identical final columns.
func Equal(a, b *Table) bool {
	if len(a.Inputs) != len(b.Inputs) || len(a.Rows) != len(b.Rows) {
		return false
	}
	for i := range a.Inputs {
		if a.Inputs[i] != b.Inputs[i] {
			return false
		}
	}
	for i := range a.Rows {
		if a.Result(i) != b.Result(i) {
			return false
		}
	}
	return true
}
