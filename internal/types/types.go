package types

// Report is the outcome of analyzing one expression.
type Report struct {
	Filename   string `json:"filename,omitempty"`
	Line       int    `json:"line,omitempty"`
	Expression string `json:"expression"`
	Valid      bool   `json:"valid"`
	// Reason is the validation failure tag, empty for valid expressions.
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
	Note    string `json:"note,omitempty"`

	Inputs      []string `json:"inputs,omitempty"`
	Minterms    int64    `json:"minterms"`
	Minimized   string   `json:"minimized,omitempty"`
	Verified    bool     `json:"verified"`
	UsedPetrick bool     `json:"used_petrick,omitempty"`
}

// Failed reports whether the expression was rejected or a check could not
// complete.
func (r Report) Failed() bool {
	return !r.Valid || r.Message != ""
}
