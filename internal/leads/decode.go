package leads

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeSubmission parses a request body. The body is either a JSON object
// or a JSON string whose contents are a JSON object, as some form clients
// double-encode their payloads.
func DecodeSubmission(body []byte) (*Submission, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidBody)
	}

	if body[0] == '"' {
		var inner string
		if err := json.Unmarshal(body, &inner); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		body = bytes.TrimSpace([]byte(inner))
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: null payload", ErrInvalidBody)
	}

	return NewSubmission(raw), nil
}
