package judge

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SubmitRequest is the body of a submission sent to the judge.
type SubmitRequest struct {
	SourceCode     string  `json:"source_code"`
	LanguageID     int     `json:"language_id"`
	Stdin          string  `json:"stdin"`
	ExpectedOutput *string `json:"expected_output,omitempty"` // nil for plain runs
}

type Status struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Result is the judge's final answer for one submission. Raw keeps the exact
// payload so it can be stored alongside the verdict.
type Result struct {
	Token         string          `json:"token,omitempty"`
	Status        *Status         `json:"status"`
	Time          Number          `json:"time"`   // seconds
	Memory        Number          `json:"memory"` // KB
	Stdout        *string         `json:"stdout"`
	Stderr        *string         `json:"stderr"`
	CompileOutput *string         `json:"compile_output"`
	Message       *string         `json:"message"`
	Raw           json.RawMessage `json:"-"`
}

// StatusID returns the status id, or nil when the judge sent no status.
func (r *Result) StatusID() *int {
	if r == nil || r.Status == nil {
		return nil
	}
	id := r.Status.ID
	return &id
}

func (r *Result) StatusDescription() string {
	if r == nil || r.Status == nil {
		return ""
	}
	return r.Status.Description
}

// Number decodes numeric fields the judge may send either as JSON numbers or
// as numeric strings ("0.012"). null and "" decode to zero.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("judge: invalid numeric value %s: %w", string(b), err)
	}
	*n = Number(f)
	return nil
}
