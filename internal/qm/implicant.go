package qm

import (
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

// MaxWidth bounds the number of inputs an implicant can describe.
const MaxWidth = 32

// ErrInternal marks a broken invariant inside the minimizer. It means an
// expression got past validation that the minimizer cannot handle, and is
// never a user error.
var ErrInternal = errors.New("qm: internal consistency error")

// Implicant is a product term over Width inputs, written as a string over
// {0, 1, -}. Position i of that string is bit Width-1-i of Value, so a
// minterm's Value equals its truth table row index. Dash positions are set
// in Dashes and cleared in Value.
type Implicant struct {
	Value  uint32
	Dashes uint32
	Width  int
}

// ParseImplicant reads an implicant such as "01-".
func ParseImplicant(s string) (Implicant, error) {
	if len(s) > MaxWidth {
		return Implicant{}, errors.Errorf("implicant %q is wider than %d", s, MaxWidth)
	}
	im := Implicant{Width: len(s)}
	for i := 0; i < len(s); i++ {
		b := im.bit(i)
		switch s[i] {
		case '1':
			im.Value |= b
		case '0':
		case '-':
			im.Dashes |= b
		default:
			return Implicant{}, errors.Errorf("implicant %q: unexpected %q", s, s[i])
		}
	}
	return im, nil
}

// Minterm reads a row of the truth table. Dashes are rejected.
func Minterm(row string) (Implicant, error) {
	im, err := ParseImplicant(row)
	if err != nil {
		return Implicant{}, err
	}
	if im.Dashes != 0 {
		return Implicant{}, errors.Errorf("minterm %q contains a dash", row)
	}
	return im, nil
}

func (im Implicant) bit(i int) uint32 {
	return 1 << uint(im.Width-1-i)
}

func (im Implicant) String() string {
	var sb strings.Builder
	sb.Grow(im.Width)
	for i := 0; i < im.Width; i++ {
		b := im.bit(i)
		switch {
		case im.Dashes&b != 0:
			sb.WriteByte('-')
		case im.Value&b != 0:
			sb.WriteByte('1')
		default:
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Literals counts the non-dash positions.
func (im Implicant) Literals() int {
	return im.Width - bits.OnesCount32(im.Dashes)
}

// Ones counts the positions set to 1.
func (im Implicant) Ones() int {
	return bits.OnesCount32(im.Value)
}

// Covers reports whether minterm m lies inside im: they agree on every
// position im does not dash out.
func (im Implicant) Covers(m Implicant) bool {
	return im.Width == m.Width && m.Value&^im.Dashes == im.Value
}

// Merge combines two implicants that share their dash positions and differ
// in exactly one other position. The boolean is false when they cannot be
// merged. Implicants of different widths are an internal error.
func Merge(a, b Implicant) (Implicant, bool, error) {
	if a.Width != b.Width {
		return Implicant{}, false, errors.Wrapf(ErrInternal, "merging %s with %s: width %d != %d", a, b, a.Width, b.Width)
	}
	if a.Dashes != b.Dashes {
		return Implicant{}, false, nil
	}
	diff := a.Value ^ b.Value
	if diff == 0 || diff&(diff-1) != 0 {
		return Implicant{}, false, nil
	}
	return Implicant{
		Value:  a.Value &^ diff,
		Dashes: a.Dashes | diff,
		Width:  a.Width,
	}, true, nil
}

// PrimeImplicants repeatedly merges the implicants of one generation into
// the next until a generation merges nothing. Every implicant that never
// took part in a merge is prime.
//
// Only implicants whose counts of ones differ by one can merge, so each
// generation is grouped by that count first.
func PrimeImplicants(minterms []Implicant) ([]Implicant, error) {
	if len(minterms) == 0 {
		return nil, nil
	}
	width := minterms[0].Width
	for _, m := range minterms {
		if m.Width != width {
			return nil, errors.Wrapf(ErrInternal, "minterm %s has width %d, want %d", m, m.Width, width)
		}
	}

	var primes []Implicant
	current := dedupe(minterms)
	for len(current) > 0 {
		groups := make([][]int, width+1)
		for i, im := range current {
			groups[im.Ones()] = append(groups[im.Ones()], i)
		}

		merged := make([]bool, len(current))
		seen := make(map[Implicant]bool)
		var next []Implicant
		for k := 0; k < width; k++ {
			for _, i := range groups[k] {
				for _, j := range groups[k+1] {
					m, ok, err := Merge(current[i], current[j])
					if err != nil {
						return nil, err
					}
					if !ok {
						continue
					}
					merged[i], merged[j] = true, true
					if !seen[m] {
						seen[m] = true
						next = append(next, m)
					}
				}
			}
		}

		for i, im := range current {
			if !merged[i] {
				primes = append(primes, im)
			}
		}
		current = next
	}
	return primes, nil
}

func dedupe(in []Implicant) []Implicant {
	seen := make(map[Implicant]bool, len(in))
	out := make([]Implicant, 0, len(in))
	for _, im := range in {
		if seen[im] {
			continue
		}
		seen[im] = true
		out = append(out, im)
	}
	return out
}
