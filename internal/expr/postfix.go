package expr

import (
	"fmt"
	"strings"
)

// ToPostfix converts an infix expression to postfix with the
// shunting-yard algorithm. Whitespace is ignored.
//
// An incoming operator only pops operators of strictly higher precedence,
// so equal-precedence operators stay stacked until the end of their group.
// Brackets never reach the output. ToPostfix does not report structural
// problems; Validate does.
func ToPostfix(infix string) string {
	s := Strip(infix)

	var (
		out   strings.Builder
		stack []byte
	)
	out.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		kind, _ := Classify(c)
		switch {
		case kind == KindLParen:
			stack = append(stack, c)
		case kind == KindRParen:
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top == '(' {
					break
				}
				out.WriteByte(top)
			}
		case kind.IsOperator():
			for len(stack) > 0 {
				top, _ := Classify(stack[len(stack)-1])
				if top.Precedence() <= kind.Precedence() {
					break
				}
				out.WriteByte(stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, c)
		default:
			out.WriteByte(c)
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top != '(' {
			out.WriteByte(top)
		}
	}
	return out.String()
}

// checkPostfix simulates evaluation of postfix by depth only.
func checkPostfix(postfix string) *ValidationError {
	depth := 0
	for i := 0; i < len(postfix); i++ {
		kind, _ := Classify(postfix[i])
		switch {
		case kind.IsBinary():
			if depth < 2 {
				return newError(MalformedPostfix, postfix, fmt.Sprintf("operator %q is missing an operand", postfix[i]))
			}
			depth--
		case kind.IsUnary():
			if depth < 1 {
				return newError(MalformedPostfix, postfix, fmt.Sprintf("operator %q is missing an operand", postfix[i]))
			}
		default:
			depth++
		}
	}
	if depth != 1 {
		return newError(MalformedPostfix, postfix, fmt.Sprintf("%d operands left on the stack", depth))
	}
	return nil
}

// ToInfix rebuilds a fully parenthesized infix expression from postfix.
// Binary applications are wrapped in brackets; NOT is written as a prefix.
func ToInfix(postfix string) (string, error) {
	var stack []string
	for i := 0; i < len(postfix); i++ {
		c := postfix[i]
		kind, ok := Classify(c)
		if !ok {
			return "", newError(InvalidCharacter, postfix, fmt.Sprintf("unexpected %q at offset %d", c, i))
		}
		switch {
		case kind.IsOperand():
			stack = append(stack, string(c))
		case kind.IsUnary():
			if len(stack) < 1 {
				return "", newError(MalformedPostfix, postfix, "NOT without operand")
			}
			stack[len(stack)-1] = "!" + stack[len(stack)-1]
		case kind.IsBinary():
			if len(stack) < 2 {
				return "", newError(MalformedPostfix, postfix, fmt.Sprintf("operator %q is missing an operand", c))
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, "("+left+string(c)+right+")")
		default:
			return "", newError(MalformedPostfix, postfix, "brackets are not allowed in postfix")
		}
	}
	if len(stack) != 1 {
		return "", newError(MalformedPostfix, postfix, fmt.Sprintf("%d operands left on the stack", len(stack)))
	}
	return stack[0], nil
}

// EvalPostfix evaluates a postfix expression whose operands are all
// constants and returns 0 or 1.
func EvalPostfix(postfix string) (byte, error) {
	stack := make([]byte, 0, len(postfix))
	for i := 0; i < len(postfix); i++ {
		c := postfix[i]
		switch c {
		case '0', '1':
			stack = append(stack, c-'0')
		case '!':
			if len(stack) < 1 {
				return 0, newError(MalformedPostfix, postfix, "NOT without operand")
			}
			stack[len(stack)-1] = ^stack[len(stack)-1] & 1
		case '.', '+', '^':
			if len(stack) < 2 {
				return 0, newError(MalformedPostfix, postfix, fmt.Sprintf("operator %q is missing an operand", c))
			}
			b := stack[len(stack)-1]
			a := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			var r byte
			switch c {
			case '.':
				r = a & b
			case '+':
				r = a | b
			case '^':
				r = a ^ b
			}
			stack = append(stack, r)
		default:
			return 0, fmt.Errorf("cannot evaluate %q in %q: not a constant or operator", c, postfix)
		}
	}
	if len(stack) != 1 {
		return 0, newError(MalformedPostfix, postfix, fmt.Sprintf("%d operands left on the stack", len(stack)))
	}
	return stack[0], nil
}
