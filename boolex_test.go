package boolex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/boolex/internal/expr"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		expression string
		forTable   bool
		reason     Reason
		valid      bool
	}{
		{name: "simple", expression: "A.B+!C", valid: true},
		{name: "spaces stripped", expression: " (A + B) . C ", valid: true},
		{name: "bad character", expression: "A*B", reason: expr.InvalidCharacter},
		{name: "open bracket", expression: "(A.B", reason: expr.BracketImbalance},
		{name: "skipped input", expression: "A+C", reason: expr.NonSequentialInputs},
		{name: "dangling operator", expression: "A+", reason: expr.MalformedPostfix},
		{name: "too wide for table", expression: "A.B.C.D.E.F.G.H.I.J.K.L.M.N", forTable: true, reason: expr.TableTooLarge},
		{name: "wide without table", expression: "A.B.C.D.E.F.G.H.I.J.K.L.M.N", valid: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.expression, tt.forTable)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			reason, ok := ReasonOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tr, err := Parse("(A+B).!C")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, tr.Inputs())

	require.NoError(t, tr.SetInput("A", true))
	assert.True(t, tr.Evaluate())
	require.NoError(t, tr.SetInput("C", true))
	assert.False(t, tr.Evaluate())
}

func TestTruthTable(t *testing.T) {
	t.Parallel()

	tbl, err := TruthTable("A^B", false)
	require.NoError(t, err)
	assert.Equal(t, "0110", tbl.String())
	assert.Equal(t, []string{"01", "10"}, tbl.Minterms())
}

func TestMinimize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expression string
		expected   string
	}{
		{"A+A.B", "A"},
		{"A.B+A.!B", "A"},
		{"A.!A", "0"},
		{"A+!A", "1"},
		{"A.B+A.C+B.C", "(A.B)+(A.C)+(B.C)"},
	}
	for _, tt := range tests {
		got, err := Minimize(tt.expression)
		require.NoError(t, err, tt.expression)
		assert.Equal(t, tt.expected, got, tt.expression)

		same, err := Equivalent(tt.expression, got)
		require.NoError(t, err)
		assert.True(t, same, tt.expression)
	}
}

func TestMinimizeDetailed(t *testing.T) {
	t.Parallel()

	// every prime is needed for some cover but none is essential
	res, err := MinimizeDetailed("!A.!B+!B.C+A.B+!A.B.!C")
	require.NoError(t, err)
	assert.True(t, res.UsedPetrick)
	assert.Empty(t, res.Essentials)
	assert.Len(t, res.Primes, 6)
	assert.Len(t, res.Selected, 3)

	short, err := Minimize("!A.!B+!B.C+A.B+!A.B.!C")
	require.NoError(t, err)
	assert.Equal(t, short, res.Expression)
}

func TestEquivalentAndCounterexample(t *testing.T) {
	t.Parallel()

	same, err := Equivalent("!(A.B)", "!A+!B")
	require.NoError(t, err)
	assert.True(t, same)

	_, found, err := Counterexample("!(A.B)", "!A+!B")
	require.NoError(t, err)
	assert.False(t, found)

	model, found, err := Counterexample("A+B", "A^B")
	require.NoError(t, err)
	require.True(t, found)
	// A+B and A^B only differ when both inputs are true
	assert.Equal(t, map[string]bool{"A": true, "B": true}, model)
}

func TestCountMinterms(t *testing.T) {
	t.Parallel()

	n, err := CountMinterms("A+B+C")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n.Int64())
}
