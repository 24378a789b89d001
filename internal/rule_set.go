package internal

import (
	"errors"
	"fmt"

	"github.com/gnoswap-labs/boolex/internal/expr"
	"github.com/gnoswap-labs/boolex/internal/qm"
	"github.com/gnoswap-labs/boolex/internal/solver"
	tt "github.com/gnoswap-labs/boolex/internal/types"
)

// Check defines the interface for the analysis steps applied to a valid
// expression.
type Check interface {
	// Apply runs the check and records its findings in r.
	Apply(r *tt.Report) error

	// Name returns the name of the check.
	Name() string
}

// CountCheck counts satisfying assignments with a BDD.
type CountCheck struct{}

func (c *CountCheck) Apply(r *tt.Report) error {
	n, err := solver.CountMinterms(r.Expression)
	if err != nil {
		return err
	}
	r.Minterms = n.Int64()
	return nil
}

func (c *CountCheck) Name() string {
	return "count"
}

// MinimizeCheck runs Quine-McCluskey. Expressions over the table ceiling
// are left unminimized with a note.
type MinimizeCheck struct{}

func (c *MinimizeCheck) Apply(r *tt.Report) error {
	res, err := qm.Run(r.Expression)
	if errors.Is(err, expr.ErrTableTooLarge) {
		r.Note = fmt.Sprintf("not minimized: %d inputs exceed the table limit of %d", len(r.Inputs), expr.MaxTableInputs)
		return nil
	}
	if err != nil {
		return err
	}
	r.Minimized = res.Expression
	r.UsedPetrick = res.UsedPetrick
	return nil
}

func (c *MinimizeCheck) Name() string {
	return "minimize"
}

// VerifyCheck proves the minimized form equivalent to the original.
type VerifyCheck struct{}

func (c *VerifyCheck) Apply(r *tt.Report) error {
	if r.Minimized == "" {
		return nil
	}
	ok, counter, err := solver.Equivalent(r.Expression, r.Minimized)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("minimized form %s differs from the original on %v", r.Minimized, counter)
	}
	r.Verified = true
	return nil
}

func (c *VerifyCheck) Name() string {
	return "verify"
}
