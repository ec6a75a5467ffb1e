package advisor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse indicates no JSON document could be recovered
// from a model response.
var ErrMalformedResponse = errors.New("malformed model response")

// ExtractJSON parses a chat response expected to contain one JSON
// document. The full text is tried first; on failure the outermost
// balanced brace span is retried, which strips prose and code fences
// around the document. Exhausting both attempts yields
// ErrMalformedResponse.
func ExtractJSON(text string, v any) error {
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return fmt.Errorf("%w: no JSON object found", ErrMalformedResponse)
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
