package qm

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rjNemo/underscore"

	"github.com/gnoswap-labs/boolex/internal/expr"
)

// Product renders one implicant over inputs: a 1 becomes the letter, a 0
// its negation, a dash nothing. Several literals are joined with "." and
// parenthesized. An implicant without literals is the constant "1".
func Product(im Implicant, inputs []string) (string, error) {
	if im.Width != len(inputs) {
		return "", errors.Wrapf(ErrInternal, "implicant %s has width %d but there are %d inputs", im, im.Width, len(inputs))
	}
	var lits []string
	for i, in := range inputs {
		b := im.bit(i)
		switch {
		case im.Dashes&b != 0:
		case im.Value&b != 0:
			lits = append(lits, in)
		default:
			lits = append(lits, "!"+in)
		}
	}
	switch len(lits) {
	case 0:
		return "1", nil
	case 1:
		return lits[0], nil
	}
	return "(" + strings.Join(lits, ".") + ")", nil
}

// Format renders a sum of products, terms in lexical order. No implicants
// gives "0"; a cover containing the all-dash implicant gives "1".
//
// Letters that vanished during minimization but sit below the highest
// letter still used are kept as "(X.0)" terms so the result stays a valid
// expression with sequential inputs.
func Format(cover []Implicant, inputs []string) (string, error) {
	if len(cover) == 0 {
		return "0", nil
	}
	terms := make([]string, 0, len(cover))
	for _, im := range cover {
		term, err := Product(im, inputs)
		if err != nil {
			return "", err
		}
		if term == "1" {
			return "1", nil
		}
		terms = append(terms, term)
	}

	sort.Strings(terms)
	out := strings.Join(terms, "+")
	terms = append(terms, underscore.Map(gaps(out), func(in string) string {
		return "(" + in + ".0)"
	})...)
	return strings.Join(terms, "+"), nil
}

// gaps lists the letters missing from s below its highest letter.
func gaps(s string) []string {
	used := expr.Inputs(s)
	if len(used) == 0 {
		return nil
	}
	highest := used[len(used)-1][0]
	var missing []string
	for c := byte('A'); c < highest; c++ {
		if !strings.ContainsRune(s, rune(c)) {
			missing = append(missing, string(c))
		}
	}
	return missing
}
