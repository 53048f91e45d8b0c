package diag

import (
	"bytes"

	"github.com/go-json-experiment/json"
)

// jsonRelated and jsonDiagnostic mirror Diagnostic/RelatedInfo with the
// linked RelatedInfo chain flattened into a slice, since `tsc --json`
// output is consumed by tooling that expects an array, not a list.
type jsonRelated struct {
	File    string `json:"file"`
	Start   int    `json:"start"`
	Length  int    `json:"length"`
	Message string `json:"message"`
}

type jsonDiagnostic struct {
	File     string        `json:"file"`
	Start    int           `json:"start"`
	Length   int           `json:"length"`
	Category string        `json:"category"`
	Code     int           `json:"code"`
	Message  string        `json:"message"`
	Related  []jsonRelated `json:"related,omitempty"`
}

// MarshalJSON encodes diagnostics for `tsc --json`.
func MarshalJSON(diagnostics []Diagnostic) ([]byte, error) {
	out := make([]jsonDiagnostic, len(diagnostics))
	for i, d := range diagnostics {
		out[i] = jsonDiagnostic{
			File: d.File, Start: d.Start, Length: d.Length,
			Category: d.Category.String(), Code: d.Code, Message: d.Message,
			Related: flattenRelated(d.Related),
		}
	}
	var buf bytes.Buffer
	if err := json.MarshalWrite(&buf, out, json.Deterministic(true)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func flattenRelated(r *RelatedInfo) []jsonRelated {
	var out []jsonRelated
	for cur := r; cur != nil; cur = cur.Next {
		out = append(out, jsonRelated{File: cur.File, Start: cur.Start, Length: cur.Length, Message: cur.Message})
	}
	return out
}
