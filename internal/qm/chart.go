package qm

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// Chart is a prime implicant chart. Row i is Primes[i]; column j is
// Minterms[j]; Cover[i] has bit j set when Primes[i] covers Minterms[j].
//
// A chart belongs to a single minimization and is reduced in place.
type Chart struct {
	Primes   []Implicant
	Minterms []Implicant
	Cover    []*bitset.BitSet
}

// NewChart builds the coverage vectors of every prime.
func NewChart(primes, minterms []Implicant) *Chart {
	c := &Chart{
		Primes:   primes,
		Minterms: minterms,
		Cover:    make([]*bitset.BitSet, len(primes)),
	}
	for i, p := range primes {
		c.Cover[i] = bitset.New(uint(len(minterms)))
		for j, m := range minterms {
			if p.Covers(m) {
				c.Cover[i].Set(uint(j))
			}
		}
	}
	return c
}

// ColumnSum counts the primes covering minterm j.
func (c *Chart) ColumnSum(j int) int {
	n := 0
	for _, cover := range c.Cover {
		if cover.Test(uint(j)) {
			n++
		}
	}
	return n
}

// Essentials returns, in row order, the rows that are the only cover of
// some minterm. A minterm without any cover is an internal error.
func (c *Chart) Essentials() ([]int, error) {
	essential := make([]bool, len(c.Primes))
	for j := range c.Minterms {
		switch c.ColumnSum(j) {
		case 0:
			return nil, errors.Wrapf(ErrInternal, "minterm %s is not covered by any prime implicant", c.Minterms[j])
		case 1:
			for i, cover := range c.Cover {
				if cover.Test(uint(j)) {
					essential[i] = true
				}
			}
		}
	}

	var rows []int
	for i, ok := range essential {
		if ok {
			rows = append(rows, i)
		}
	}
	return rows, nil
}

// Covered ORs the coverage vectors of rows.
func (c *Chart) Covered(rows []int) *bitset.BitSet {
	covered := bitset.New(uint(len(c.Minterms)))
	for _, i := range rows {
		covered.InPlaceUnion(c.Cover[i])
	}
	return covered
}

// Complete reports whether rows cover every minterm.
func (c *Chart) Complete(rows []int) bool {
	return c.Covered(rows).Count() == uint(len(c.Minterms))
}

// Reduce removes rows together with every minterm they cover, then drops
// rows left covering nothing.
func (c *Chart) Reduce(rows []int) {
	covered := c.Covered(rows)
	removed := make(map[int]bool, len(rows))
	for _, i := range rows {
		removed[i] = true
	}

	var keep []int
	minterms := make([]Implicant, 0, len(c.Minterms))
	for j, m := range c.Minterms {
		if !covered.Test(uint(j)) {
			keep = append(keep, j)
			minterms = append(minterms, m)
		}
	}

	var (
		primes []Implicant
		cover  []*bitset.BitSet
	)
	for i, p := range c.Primes {
		if removed[i] {
			continue
		}
		row := bitset.New(uint(len(keep)))
		for nj, j := range keep {
			if c.Cover[i].Test(uint(j)) {
				row.Set(uint(nj))
			}
		}
		if row.None() {
			continue
		}
		primes = append(primes, p)
		cover = append(cover, row)
	}

	c.Primes, c.Minterms, c.Cover = primes, minterms, cover
}

// Clauses returns, for every minterm, the rows covering it: one factor of
// the product of sums solved by Petrick's method.
func (c *Chart) Clauses() ([][]int, error) {
	clauses := make([][]int, len(c.Minterms))
	for j := range c.Minterms {
		for i, cover := range c.Cover {
			if cover.Test(uint(j)) {
				clauses[j] = append(clauses[j], i)
			}
		}
		if len(clauses[j]) == 0 {
			return nil, errors.Wrapf(ErrInternal, "minterm %s is not covered after reduction", c.Minterms[j])
		}
	}
	return clauses, nil
}
