package lingvo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidAPIKey indicates the authentication endpoint rejected the API key.
var ErrInvalidAPIKey = errors.New("invalid Lingvo API key")

// AuthenticationError is returned when the API key could not be exchanged for a token.
type AuthenticationError struct {
	StatusCode int
	Body       string
}

func (e *AuthenticationError) Error() string {
	if e.StatusCode == http.StatusUnauthorized {
		return "Lingvo authentication failed: invalid api key"
	}
	if e.Body != "" {
		return fmt.Sprintf("Lingvo authentication failed: HTTP %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("Lingvo authentication failed: HTTP %d", e.StatusCode)
}

func (e *AuthenticationError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrInvalidAPIKey
	}
	return nil
}

// TransportError wraps a network-level failure: connection errors, timeouts,
// cancelled contexts and body read errors. It is never retried by the client.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("lingvo %s: request failed: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError indicates a response body that could not be decoded into the
// request's result type.
type DecodeError struct {
	Method string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("lingvo %s: decode response: %v", e.Method, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RemoteError is the error form of a non-success response envelope.
type RemoteError struct {
	Code        int
	Message     string
	Description json.RawMessage
}

func (e *RemoteError) Error() string {
	if len(e.Description) > 0 && string(e.Description) != "null" {
		return fmt.Sprintf("Lingvo API error %d %s: %s", e.Code, e.Message, e.Description)
	}
	return fmt.Sprintf("Lingvo API error %d %s", e.Code, e.Message)
}

// IsNotFound reports whether err is a RemoteError with status 404.
func IsNotFound(err error) bool {
	var remote *RemoteError
	return errors.As(err, &remote) && remote.Code == http.StatusNotFound
}
