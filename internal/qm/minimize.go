// Package qm minimizes Boolean expressions with the Quine-McCluskey method,
// falling back to Petrick's method when essential prime implicants alone do
// not cover the function.
package qm

import (
	"github.com/pkg/errors"

	"github.com/gnoswap-labs/boolex/internal/table"
)

// Result records every stage of one minimization.
type Result struct {
	// Expression is the minimized sum of products.
	Expression string
	Inputs     []string
	Minterms   []Implicant
	Primes     []Implicant
	Essentials []Implicant
	// Selected is the final cover: the essentials followed by whatever
	// Petrick's method added.
	Selected    []Implicant
	UsedPetrick bool
}

// Minimize returns a minimal sum-of-products expression with the same truth
// table as expression. Invalid expressions fail with the validation error.
func Minimize(expression string) (string, error) {
	res, err := Run(expression)
	if err != nil {
		return "", err
	}
	return res.Expression, nil
}

// Run validates and tabulates expression, then minimizes it.
func Run(expression string) (*Result, error) {
	t, err := table.Generate(expression, false)
	if err != nil {
		return nil, err
	}
	return MinimizeTable(t)
}

// MinimizeTable minimizes the function described by the final column of t.
func MinimizeTable(t *table.Table) (*Result, error) {
	res := &Result{Inputs: t.Inputs}
	for _, row := range t.Minterms() {
		m, err := Minterm(row)
		if err != nil {
			return nil, errors.Wrap(ErrInternal, err.Error())
		}
		res.Minterms = append(res.Minterms, m)
	}
	if len(res.Minterms) == 0 {
		res.Expression = "0"
		return res, nil
	}

	primes, err := PrimeImplicants(res.Minterms)
	if err != nil {
		return nil, err
	}
	res.Primes = primes

	chart := NewChart(primes, res.Minterms)
	essentials, err := chart.Essentials()
	if err != nil {
		return nil, err
	}
	for _, i := range essentials {
		res.Essentials = append(res.Essentials, chart.Primes[i])
	}
	res.Selected = append(res.Selected, res.Essentials...)

	if !chart.Complete(essentials) {
		res.UsedPetrick = true
		chart.Reduce(essentials)
		clauses, err := chart.Clauses()
		if err != nil {
			return nil, err
		}
		rows, err := Petrick(clauses, func(i int) int { return chart.Primes[i].Literals() })
		if err != nil {
			return nil, err
		}
		for _, i := range rows {
			res.Selected = append(res.Selected, chart.Primes[i])
		}
	}

	if err := verifyCover(res.Selected, res.Minterms); err != nil {
		return nil, err
	}
	res.Expression, err = Format(res.Selected, res.Inputs)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func verifyCover(cover, minterms []Implicant) error {
	for _, m := range minterms {
		covered := false
		for _, im := range cover {
			if im.Covers(m) {
				covered = true
				break
			}
		}
		if !covered {
			return errors.Wrapf(ErrInternal, "minterm %s left uncovered", m)
		}
	}
	return nil
}
