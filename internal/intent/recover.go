package intent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResponse means the generation backend returned nothing usable.
var ErrEmptyResponse = errors.New("empty response from generation backend")

// MalformedResponseError means the response text contained no decodable JSON.
// Snippet carries the offending substring for diagnostics.
type MalformedResponseError struct {
	Snippet string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %v (snippet: %s)", e.Err, truncate(e.Snippet, 120))
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Record is one decoded action object exactly as the model produced it,
// before validation. Unknown fields are dropped by the decoder.
type Record struct {
	Kind            string      `json:"kind"`
	Action          string      `json:"action"` // some models emit "action" instead of "kind"
	Title           string      `json:"title"`
	Date            string      `json:"date"`
	Time            string      `json:"time"`
	DurationMinutes json.Number `json:"durationMinutes"`
	Location        string      `json:"location"`
	DueDate         string      `json:"dueDate"`
	Priority        string      `json:"priority"`
	Notes           string      `json:"notes"`
	Recipient       string      `json:"recipient"`
	Subject         string      `json:"subject"`
	Body            string      `json:"body"`
	Description     string      `json:"description"`
}

// Envelope is the decoded model response: either one inline record, or an
// ordered list of records when the input text encoded multiple intents.
type Envelope struct {
	Record
	Actions []Record `json:"actions"`
}

// Recover strips formatting artifacts from raw model output, extracts the
// JSON object substring, and decodes it into an Envelope.
func Recover(raw string) (*Envelope, error) {
	cleaned := strings.TrimSpace(stripFences(raw))
	if cleaned == "" {
		return nil, ErrEmptyResponse
	}

	jsonStr, err := ExtractJSON(cleaned)
	if err != nil {
		return nil, &MalformedResponseError{Snippet: cleaned, Err: err}
	}

	var env Envelope
	if err := json.Unmarshal([]byte(jsonStr), &env); err != nil {
		return nil, &MalformedResponseError{Snippet: jsonStr, Err: err}
	}
	return &env, nil
}

// stripFences removes triple-backtick code fence markers, with or without a
// language tag, leaving the fenced content in place.
func stripFences(text string) string {
	var out strings.Builder
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			continue
		}
		out.WriteString(line)
		out.WriteString("\n")
	}
	return out.String()
}

// ExtractJSON returns the first balanced JSON object substring of text.
// Leading and trailing commentary around a single object is tolerated;
// interleaved multiple objects are not (only the first is taken).
func ExtractJSON(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", fmt.Errorf("no JSON object found")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	// Unbalanced braces: fall back to the last closing brace, matching the
	// greedy first-{-to-last-} recovery the rest of the pipeline tolerates.
	if end := strings.LastIndexByte(text, '}'); end > start {
		return text[start : end+1], nil
	}
	return "", fmt.Errorf("unterminated JSON object")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
