package formatter

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/boolex/internal/table"
	tt "github.com/gnoswap-labs/boolex/internal/types"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestFormatReports(t *testing.T) {
	t.Parallel()

	reports := []tt.Report{
		{
			Filename:   "a.bool",
			Line:       3,
			Expression: "A+A.B",
			Valid:      true,
			Minterms:   2,
			Minimized:  "A",
			Verified:   true,
		},
		{
			Line:       12,
			Expression: "A+C",
			Reason:     "non-sequential-inputs",
			Message:    `non-sequential-inputs: "A+C"`,
		},
	}

	expected := `ok: valid
 --> a.bool:3
  |
3 | A+A.B
  = minimized: A
  = minterms: 2
  = verified equivalent

error: non-sequential-inputs
  --> <input>:12
   |
12 | A+C
   = non-sequential-inputs: "A+C"

`

	assert.Equal(t, expected, FormatReports(reports))
}

func TestFormatReportPetrickAndNote(t *testing.T) {
	t.Parallel()

	petrick := tt.Report{
		Filename:    "cyclic.bool",
		Line:        1,
		Expression:  "!A.!B+!B.C+A.B",
		Valid:       true,
		Minimized:   "(!A.!B)+(!B.C)+(A.B)",
		UsedPetrick: true,
	}
	assert.Contains(t, FormatReports([]tt.Report{petrick}), "= minimized: (!A.!B)+(!B.C)+(A.B) (petrick)\n")

	large := tt.Report{
		Expression: "A.B.C.D.E.F.G.H.I.J.K.L.M.N",
		Valid:      true,
		Minterms:   1,
		Note:       "not minimized: too many inputs",
	}
	expected := `ok: valid
 --> <input>
  |
  | A.B.C.D.E.F.G.H.I.J.K.L.M.N
  = minterms: 1
Note: not minimized: too many inputs

`
	assert.Equal(t, expected, FormatReports([]tt.Report{large}))
}

func TestFormatReportCheckFailed(t *testing.T) {
	t.Parallel()

	r := tt.Report{
		Filename:   "x.bool",
		Line:       2,
		Expression: "A.B",
		Valid:      true,
		Message:    "verify: minimized form differs",
	}
	out := FormatReports([]tt.Report{r})
	assert.Contains(t, out, "error: check-failed\n")
	assert.Contains(t, out, "  = verify: minimized form differs\n")
}

func TestFormatReportsEmpty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", FormatReports(nil))
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	tbl, err := table.Generate("A.B", false)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, tbl))

	out := buf.String()
	assert.Contains(t, out, "A.B")
	lines := 0
	for _, l := range bytes.Split(buf.Bytes(), []byte("\n")) {
		if bytes.Contains(l, []byte("1")) || bytes.Contains(l, []byte("0")) {
			lines++
		}
	}
	// four data rows
	assert.Equal(t, 4, lines)
}

func TestRenderTableSteps(t *testing.T) {
	t.Parallel()

	tbl, err := table.Generate("!(A+B)", true)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, tbl))
	for _, h := range tbl.Headers {
		assert.Contains(t, buf.String(), h)
	}
}
