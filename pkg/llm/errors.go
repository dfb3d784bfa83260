package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed model request. The kinds mirror how the
// conversation layer reports failures to the user: rate limiting and
// authorization problems get specific wording, everything else is a
// transport/server or protocol failure.
type ErrorKind int

const (
	// KindTransport covers network failures, non-success HTTP statuses
	// without a more specific classification, and explicit error payloads
	// in otherwise well-formed responses.
	KindTransport ErrorKind = iota

	// KindRateLimited is an HTTP 429 from the service.
	KindRateLimited

	// KindUnauthorized is an HTTP 400, 401, or 403: the credential is
	// invalid or lacks access to the requested model.
	KindUnauthorized

	// KindProtocol is a well-formed success response carrying no
	// candidates.
	KindProtocol
)

// Error is a typed failure from the model transport.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// RateLimited builds the canonical rate-limit error.
func RateLimited() *Error {
	return &Error{
		Kind:       KindRateLimited,
		StatusCode: 429,
		Message:    "rate limit exceeded, please retry later",
	}
}

// Unauthorized builds the canonical credential error.
func Unauthorized(status int) *Error {
	return &Error{
		Kind:       KindUnauthorized,
		StatusCode: status,
		Message:    "invalid or insufficiently privileged API credential",
	}
}

// Transport builds a transport/server error with the upstream message when
// one is available.
func Transport(status int, upstream string) *Error {
	message := upstream
	if message == "" {
		message = fmt.Sprintf("model service returned status %d", status)
	}
	return &Error{
		Kind:       KindTransport,
		StatusCode: status,
		Message:    message,
	}
}

// NoResponse builds the canonical empty-response protocol error.
func NoResponse() *Error {
	return &Error{
		Kind:    KindProtocol,
		Message: "no response from the service",
	}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}
