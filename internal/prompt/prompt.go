// Package prompt assembles the deterministic instruction and content payload
// sent to the language model for job posting extraction.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jordan/apptrack/internal/extract"
)

// SystemInstruction is the fixed extraction contract given to the model. The
// response validator enforces the same key set with a JSON schema, so the two
// must stay in sync.
const SystemInstruction = `You are a professional job posting analyzer. Extract job information from web page content and return it as a JSON object with this exact structure:

{
  "company": "Company name",
  "position": "Job title/position",
  "location": "Location (city, state/country or 'Remote')",
  "salary": "Salary range or compensation info",
  "notes": "Brief summary of key requirements, skills, or benefits"
}

IMPORTANT RULES:
- Return ONLY valid JSON, no additional text or formatting
- If a field cannot be determined, use null for that field
- For location: prefer "City, State" format or "Remote" for remote work
- For salary: include currency and range if available (e.g., "$80,000 - $100,000")
- For notes: summarize key requirements, skills, or benefits in 150 characters max
- Extract the most relevant and accurate information from the content
- If structured data is provided, prioritize it over text content`

// Payload is the two-part conversation sent to the model.
type Payload struct {
	System  string
	Content string
}

// SelectJobPosting returns the first structured entry whose @type identifies
// it as a JobPosting, either as a scalar or as one member of a type list.
func SelectJobPosting(entries []any) (map[string]any, bool) {
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		switch t := m["@type"].(type) {
		case string:
			if t == "JobPosting" {
				return m, true
			}
		case []any:
			for _, item := range t {
				if s, ok := item.(string); ok && s == "JobPosting" {
					return m, true
				}
			}
		}
	}
	return nil, false
}

// Build composes the payload from the page signals. It is pure and
// deterministic: identical inputs always produce identical payloads.
func Build(url string, signals *extract.Signals) *Payload {
	var sb strings.Builder

	fmt.Fprintf(&sb, "URL: %s\n", url)
	fmt.Fprintf(&sb, "Page Title: %s\n", signals.Title)
	fmt.Fprintf(&sb, "Meta Description: %s\n", signals.MetaDescription)
	fmt.Fprintf(&sb, "OG Title: %s\n", signals.OGTitle)
	fmt.Fprintf(&sb, "OG Description: %s\n", signals.OGDescription)
	sb.WriteString("\n")

	// The structured block precedes the free text so the model sees the
	// authoritative data first.
	if posting, ok := SelectJobPosting(signals.StructuredData); ok {
		if pretty, err := json.MarshalIndent(posting, "", "  "); err == nil {
			sb.WriteString("Structured Job Data:\n")
			sb.Write(pretty)
			sb.WriteString("\n\n")
		}
	}

	sb.WriteString("Page Content:\n")
	sb.WriteString(signals.CleanText)

	return &Payload{
		System:  SystemInstruction,
		Content: strings.TrimSpace(sb.String()),
	}
}
