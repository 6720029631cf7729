package paragraph

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// errorFields is the fixed priority order of message fields probed in an
// upstream error body.
var errorFields = []string{"msg", "message", "error"}

// APIError is a non-2xx response from the Paragraph API. Error() returns only
// the message so the envelope shows the upstream text verbatim.
type APIError struct {
	// StatusCode is the HTTP status.
	StatusCode int
	// Message is the best available upstream message.
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// errorMessage extracts a failure message from an error body, falling back to
// the HTTP status line when the body is not JSON or carries no known field.
func errorMessage(status int, body []byte) string {
	fallback := fmt.Sprintf("HTTP %d %s", status, http.StatusText(status))

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fallback
	}
	for _, field := range errorFields {
		if text, ok := parsed[field].(string); ok && strings.TrimSpace(text) != "" {
			return text
		}
	}
	return fallback
}
