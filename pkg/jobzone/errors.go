package jobzone

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sort"
	"strings"
)

// ErrAlreadyApplied is returned by Apply when the API reports an existing
// application for the same job and email.
var ErrAlreadyApplied = errors.New("jobzone: already applied")

// APIError is a non-2xx response from the job board API
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("jobzone: %s: API error (%d)", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("jobzone: %s: API error (%d): %s", e.Op, e.StatusCode, e.Message)
}

// IsTimeout reports whether err was caused by a deadline or a network timeout
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// errorMessage extracts a readable message from an error body. The API uses
// {"error": "..."}, {"message": "..."} and DRF field maps {"error": {"email": ["..."]}}.
func errorMessage(body []byte) string {
	var parsed messageResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return strings.TrimSpace(string(body))
	}

	switch v := parsed.Error.(type) {
	case string:
		if v != "" {
			return v
		}
	case map[string]any:
		parts := make([]string, 0, len(v))
		for field, reasons := range v {
			parts = append(parts, field+": "+flatten(reasons))
		}
		if len(parts) > 0 {
			sort.Strings(parts)
			return strings.Join(parts, "; ")
		}
	}

	if parsed.Message != "" {
		return parsed.Message
	}
	return strings.TrimSpace(string(body))
}

func flatten(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, flatten(item))
		}
		return strings.Join(out, ", ")
	default:
		return fmt.Sprint(t)
	}
}
