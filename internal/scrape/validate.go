package scrape

import (
	"encoding/json"
	"time"

	"github.com/jordan/apptrack/internal/llm"
	"github.com/xeipuuv/gojsonschema"
)

// Sentinels used when the model cannot determine the mandatory fields.
const (
	UnknownCompany  = "Unknown Company"
	UnknownPosition = "Unknown Position"
)

// StatusApplied is the status every scraped application starts in.
const StatusApplied = "APPLIED"

// resultSchema is the strict contract for model output: only the five
// announced keys, each a string or null. A key may be absent entirely, which
// downstream treats the same as null, so nothing is required. The prompt
// states the same contract in prose; the schema enforces it.
const resultSchema = `{
  "type": "object",
  "properties": {
    "company":  {"type": ["string", "null"]},
    "position": {"type": ["string", "null"]},
    "location": {"type": ["string", "null"]},
    "salary":   {"type": ["string", "null"]},
    "notes":    {"type": ["string", "null"]}
  },
  "additionalProperties": false
}`

// Result is the typed outcome of a successful scrape. Optional fields are nil
// when the model returned null, so they marshal as absent rather than "".
type Result struct {
	Company     string  `json:"company"`
	Position    string  `json:"position"`
	Location    *string `json:"location,omitempty"`
	Salary      *string `json:"salary,omitempty"`
	Status      string  `json:"status"`
	AppliedDate string  `json:"appliedDate"`
	Notes       *string `json:"notes,omitempty"`
}

// modelOutput mirrors the raw JSON the model returns.
type modelOutput struct {
	Company  *string `json:"company"`
	Position *string `json:"position"`
	Location *string `json:"location"`
	Salary   *string `json:"salary"`
	Notes    *string `json:"notes"`
}

// Validate parses and validates raw model text into a Result. Status and
// applied date are always set here, never taken from the model.
func Validate(rawText string) (*Result, error) {
	return validateAt(rawText, time.Now())
}

func validateAt(rawText string, now time.Time) (*Result, error) {
	cleaned := llm.CleanJSONBlock(rawText)

	var parsed modelOutput
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, &ValidationError{Message: "output is not a JSON object", Raw: rawText, Cause: err}
	}

	schemaLoader := gojsonschema.NewStringLoader(resultSchema)
	documentLoader := gojsonschema.NewStringLoader(cleaned)
	schemaResult, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, &ValidationError{Message: "schema check failed", Raw: rawText, Cause: err}
	}
	if !schemaResult.Valid() {
		first := schemaResult.Errors()[0]
		return nil, &ValidationError{Message: "output violates response contract: " + first.String(), Raw: rawText}
	}

	result := &Result{
		Company:     UnknownCompany,
		Position:    UnknownPosition,
		Location:    nonEmpty(parsed.Location),
		Salary:      nonEmpty(parsed.Salary),
		Status:      StatusApplied,
		AppliedDate: now.Format("2006-01-02"),
		Notes:       nonEmpty(parsed.Notes),
	}
	if p := nonEmpty(parsed.Company); p != nil {
		result.Company = *p
	}
	if p := nonEmpty(parsed.Position); p != nil {
		result.Position = *p
	}

	return result, nil
}

// nonEmpty collapses nil-or-empty into nil so optional fields stay absent.
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
