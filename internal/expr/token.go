package expr

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind classifies a single expression character.
type Kind int

const (
	_ Kind = iota
	KindInput
	KindConstant
	KindNot
	KindAnd
	KindXor
	KindOr
	KindLParen
	KindRParen
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindConstant:
		return "constant"
	case KindNot:
		return "!"
	case KindAnd:
		return "."
	case KindXor:
		return "^"
	case KindOr:
		return "+"
	case KindLParen:
		return "("
	case KindRParen:
		return ")"
	default:
		return "?"
	}
}

// Precedence orders the operators: NOT > AND > XOR > OR.
// Non-operators have precedence 0.
func (k Kind) Precedence() int {
	switch k {
	case KindNot:
		return 4
	case KindAnd:
		return 3
	case KindXor:
		return 2
	case KindOr:
		return 1
	default:
		return 0
	}
}

func (k Kind) IsOperand() bool {
	return k == KindInput || k == KindConstant
}

func (k Kind) IsOperator() bool {
	return k.Precedence() > 0
}

func (k Kind) IsUnary() bool {
	return k == KindNot
}

func (k Kind) IsBinary() bool {
	return k == KindAnd || k == KindXor || k == KindOr
}

// Token is one character of an expression together with its class.
type Token struct {
	Kind Kind
	Char byte
	Pos  int // offset in the whitespace-stripped expression
}

func (t Token) String() string {
	return string(t.Char)
}

// Classify returns the kind of c, or false if c is not part of the grammar.
func Classify(c byte) (Kind, bool) {
	switch {
	case c >= 'A' && c <= 'Z':
		return KindInput, true
	case c == '0' || c == '1':
		return KindConstant, true
	}
	switch c {
	case '!':
		return KindNot, true
	case '.':
		return KindAnd, true
	case '^':
		return KindXor, true
	case '+':
		return KindOr, true
	case '(':
		return KindLParen, true
	case ')':
		return KindRParen, true
	}
	return 0, false
}

// Strip removes every whitespace character from s.
func Strip(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Tokenize strips whitespace and classifies every remaining character.
func Tokenize(s string) ([]Token, error) {
	s = Strip(s)
	tokens := make([]Token, 0, len(s))
	for i := 0; i < len(s); i++ {
		kind, ok := Classify(s[i])
		if !ok {
			return nil, newError(InvalidCharacter, s, fmt.Sprintf("unexpected %q at offset %d", s[i], i))
		}
		tokens = append(tokens, Token{Kind: kind, Char: s[i], Pos: i})
	}
	return tokens, nil
}

// Inputs returns the distinct input letters of s in alphabetical order.
// Constants are not inputs.
func Inputs(s string) []string {
	var seen [26]bool
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			seen[c-'A'] = true
		}
	}
	inputs := make([]string, 0, 26)
	for i, ok := range seen {
		if ok {
			inputs = append(inputs, string(rune('A'+i)))
		}
	}
	return inputs
}

// Letter returns the input label at alphabetical position i.
func Letter(i int) string {
	return string(rune('A' + i))
}
