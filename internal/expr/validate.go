package expr

import "fmt"

// MaxTableInputs is the largest number of distinct inputs for which a
// truth table (2^n rows) may be enumerated.
const MaxTableInputs = 13

// Validate reports whether expression belongs to the accepted grammar.
// With forTable set it additionally enforces the table ceiling.
//
// Checks run in a fixed order and the first failure wins: character set,
// bracket balance, sequential inputs, postfix arity, table size.
func Validate(expression string, forTable bool) error {
	s := Strip(expression)

	if _, err := Tokenize(s); err != nil {
		return err
	}
	if err := checkBrackets(s); err != nil {
		return err
	}
	if err := checkSequential(s); err != nil {
		return err
	}
	if err := checkPostfix(ToPostfix(s)); err != nil {
		return newError(MalformedPostfix, s, err.Detail)
	}
	if forTable {
		if n := len(Inputs(s)); n > MaxTableInputs {
			return newError(TableTooLarge, s, fmt.Sprintf("%d inputs, at most %d allowed", n, MaxTableInputs))
		}
	}
	return nil
}

// IsValid is Validate collapsed to a boolean.
func IsValid(expression string, forTable bool) bool {
	return Validate(expression, forTable) == nil
}

func checkBrackets(s string) error {
	var stack []byte
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			stack = append(stack, ')')
		case ')':
			if len(stack) == 0 || stack[len(stack)-1] != s[i] {
				return newError(BracketImbalance, s, fmt.Sprintf("unmatched ')' at offset %d", i))
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) != 0 {
		return newError(BracketImbalance, s, fmt.Sprintf("%d unclosed '('", len(stack)))
	}
	return nil
}

// checkSequential requires the inputs to be A, B, C, ... without gaps.
// This keeps the letter at alphabetical position i bound to table bit i.
func checkSequential(s string) error {
	for i, in := range Inputs(s) {
		if want := Letter(i); in != want {
			return newError(NonSequentialInputs, s, fmt.Sprintf("found %s where %s was expected", in, want))
		}
	}
	return nil
}
