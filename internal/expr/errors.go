package expr

import (
	"errors"
	"fmt"
)

// Reason tags why an expression was rejected.
type Reason int

const (
	_ Reason = iota
	InvalidCharacter
	BracketImbalance
	NonSequentialInputs
	MalformedPostfix
	TableTooLarge
)

func (r Reason) String() string {
	switch r {
	case InvalidCharacter:
		return "invalid-character"
	case BracketImbalance:
		return "bracket-imbalance"
	case NonSequentialInputs:
		return "non-sequential-inputs"
	case MalformedPostfix:
		return "malformed-postfix"
	case TableTooLarge:
		return "table-too-large"
	default:
		return "unknown"
	}
}

// ValidationError reports a user-facing rejection of an expression.
type ValidationError struct {
	Reason     Reason
	Expression string
	Detail     string
}

func newError(reason Reason, expression, detail string) *ValidationError {
	return &ValidationError{Reason: reason, Expression: expression, Detail: detail}
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %q", e.Reason, e.Expression)
	}
	return fmt.Sprintf("%s: %q: %s", e.Reason, e.Expression, e.Detail)
}

// Is matches any ValidationError carrying the same reason, so the
// sentinels below work with errors.Is.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Reason == e.Reason
}

var (
	ErrInvalidCharacter    = &ValidationError{Reason: InvalidCharacter}
	ErrBracketImbalance    = &ValidationError{Reason: BracketImbalance}
	ErrNonSequentialInputs = &ValidationError{Reason: NonSequentialInputs}
	ErrMalformedPostfix    = &ValidationError{Reason: MalformedPostfix}
	ErrTableTooLarge       = &ValidationError{Reason: TableTooLarge}
)

// ReasonOf extracts the rejection reason from err, if any.
func ReasonOf(err error) (Reason, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Reason, true
	}
	return 0, false
}
