package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error kinds. Use errors.Is against these to branch on a failure.
var (
	ErrValidation         = errors.New("validation failed")
	ErrAlreadyApplied     = errors.New("already applied")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrRejected           = errors.New("rejected by server")
	ErrTimeout            = errors.New("request timed out")
	ErrNetwork            = errors.New("network unavailable")
	ErrServer             = errors.New("server error")
	ErrRequestInFlight    = errors.New("request already in flight")
)

// Error is a classified failure with a message fit for display
type Error struct {
	Kind    error
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "; %s: %s", k, e.Fields[k])
		}
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewError builds an Error of the given kind
func NewError(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// NewValidationError builds a local precondition failure with optional per-field reasons
func NewValidationError(message string, fields map[string]string) *Error {
	return &Error{Kind: ErrValidation, Message: message, Fields: fields}
}

// UserMessage returns the reason to show for err. Only server and network failures
// collapse into a generic message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var derr *Error
	if errors.As(err, &derr) && derr.Message != "" {
		switch {
		case errors.Is(err, ErrServer), errors.Is(err, ErrNetwork):
		default:
			return derr.Message
		}
	}

	switch {
	case errors.Is(err, ErrValidation):
		return "some fields are invalid"
	case errors.Is(err, ErrAlreadyApplied):
		return "you have already applied for this job"
	case errors.Is(err, ErrInvalidCredentials):
		return "email or password is incorrect"
	case errors.Is(err, ErrNotFound):
		return "the requested record does not exist"
	case errors.Is(err, ErrConflict):
		return "an account with this email already exists"
	case errors.Is(err, ErrRejected):
		return "the server rejected the request"
	case errors.Is(err, ErrTimeout):
		return "the server took too long to respond, try again"
	case errors.Is(err, ErrRequestInFlight):
		return "a previous request is still in progress"
	case errors.Is(err, ErrNetwork):
		return "cannot reach the server, check your connection"
	default:
		return "something went wrong on the server, try again later"
	}
}
