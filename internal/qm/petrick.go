package qm

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
	"github.com/rjNemo/underscore"
)

// product is a conjunction of chart rows. sum is a disjunction of products.
type (
	product = mapset.Set[int]
	sum     []product
)

// bracket is a two-term clause (x + y) with x < y.
type bracket struct {
	x, y int
}

func newBracket(a, b int) bracket {
	if a > b {
		a, b = b, a
	}
	return bracket{x: a, y: b}
}

// share returns the term two distinct brackets have in common, along with
// the remaining term of each.
func (p bracket) share(q bracket) (common, a, b int, ok bool) {
	switch {
	case p.x == q.x:
		return p.x, p.y, q.y, true
	case p.x == q.y:
		return p.x, p.y, q.x, true
	case p.y == q.x:
		return p.y, p.x, q.y, true
	case p.y == q.y:
		return p.y, p.x, q.x, true
	}
	return 0, 0, 0, false
}

func (p bracket) sum() sum {
	return sum{single(p.x), single(p.y)}
}

func single(terms ...int) product {
	return mapset.NewThreadUnsafeSet[int](terms...)
}

// Petrick selects rows of a reduced chart so every remaining minterm is
// covered. Each clause lists the rows covering one minterm; the product of
// all clauses is expanded into a sum of products and the smallest product
// wins. Ties go to the fewest literals according to cost, then to the
// product found first. The returned rows are sorted.
func Petrick(clauses [][]int, cost func(row int) int) ([]int, error) {
	if len(clauses) == 0 {
		return nil, nil
	}

	sums, err := factor(clauses)
	if err != nil {
		return nil, err
	}

	expanded := sums[0]
	for _, s := range sums[1:] {
		expanded = multiply(expanded, s)
	}
	if len(expanded) == 0 {
		return nil, errors.Wrap(ErrInternal, "petrick expansion is empty")
	}

	best := expanded[0]
	bestCost := literals(best, cost)
	for _, p := range expanded[1:] {
		c := literals(p, cost)
		if p.Cardinality() < best.Cardinality() ||
			(p.Cardinality() == best.Cardinality() && c < bestCost) {
			best, bestCost = p, c
		}
	}

	rows := best.ToSlice()
	sort.Ints(rows)
	return rows, nil
}

// factor turns the clauses into sums ready for distribution. Identical
// clauses collapse; two-term clauses sharing a term are merged with
// (X + Y)(X + Z) = X + YZ.
func factor(clauses [][]int) ([]sum, error) {
	var (
		sums     []sum
		brackets []bracket
	)
	seenBracket := make(map[bracket]bool)
	seenClause := make(map[string]bool)

	for _, clause := range clauses {
		switch len(clause) {
		case 0:
			return nil, errors.Wrap(ErrInternal, "empty clause in petrick chart")
		case 2:
			b := newBracket(clause[0], clause[1])
			if !seenBracket[b] {
				seenBracket[b] = true
				brackets = append(brackets, b)
			}
		default:
			terms := append([]int(nil), clause...)
			sort.Ints(terms)
			key := clauseKey(terms)
			if seenClause[key] {
				continue
			}
			seenClause[key] = true
			sums = append(sums, underscore.Map(terms, func(t int) product { return single(t) }))
		}
	}

	used := make([]bool, len(brackets))
	for i := range brackets {
		if used[i] {
			continue
		}
		for j := i + 1; j < len(brackets); j++ {
			if used[j] {
				continue
			}
			common, a, b, ok := brackets[i].share(brackets[j])
			if !ok {
				continue
			}
			used[i], used[j] = true, true
			sums = append(sums, sum{single(common), single(a, b)})
			break
		}
		if !used[i] {
			used[i] = true
			sums = append(sums, brackets[i].sum())
		}
	}
	return sums, nil
}

// multiply distributes a over b, dropping duplicate products and applying
// absorption (X + XY = X) to the result.
func multiply(a, b sum) sum {
	var out sum
	for _, p := range a {
		for _, q := range b {
			r := p.Union(q)
			if underscore.Any(out, func(s product) bool { return s.Equal(r) }) {
				continue
			}
			out = append(out, r)
		}
	}
	return absorb(out)
}

func absorb(s sum) sum {
	return underscore.Filter(s, func(p product) bool {
		return !underscore.Any(s, func(q product) bool { return q.IsProperSubset(p) })
	})
}

func literals(p product, cost func(int) int) int {
	n := 0
	p.Each(func(row int) bool {
		n += cost(row)
		return false
	})
	return n
}

func clauseKey(terms []int) string {
	key := make([]byte, 0, len(terms)*3)
	for _, t := range terms {
		key = append(key, byte(t>>16), byte(t>>8), byte(t))
	}
	return string(key)
}
