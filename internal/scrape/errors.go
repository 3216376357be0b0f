// Package scrape orchestrates the job posting extraction pipeline.
package scrape

import "fmt"

// InvalidInputError indicates the request was rejected before the pipeline
// ran: malformed or empty URL.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// ValidationError indicates the model output violated the response contract:
// unparseable JSON or a schema violation. Terminal, never retried.
type ValidationError struct {
	Message string
	Raw     string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid model response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid model response: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
