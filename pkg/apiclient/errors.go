package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidBaseURL indicates the client was constructed with an
	// unusable base URL.
	ErrInvalidBaseURL = errors.New("apiclient: invalid base url")

	// ErrEncodePayload indicates the request body could not be encoded.
	ErrEncodePayload = errors.New("apiclient: failed to encode payload")
)

// Code is a backend-provided error code. The wire value may be a JSON
// number (e.g. 401) or a string (e.g. "NETWORK_ERROR"); both decode into
// the string form.
type Code string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (c *Code) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*c = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Code(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = Code(n.String())
	return nil
}

// ErrorBody is the structured payload the backend attaches to failures.
// Data carries backend-native field validation errors, Errors carries the
// custom field validation format; both are field name to message.
type ErrorBody struct {
	Code   Code              `json:"code,omitempty"`
	Data   map[string]string `json:"data,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Error is an HTTP-level failure: the backend responded with a non-2xx
// status. It mirrors the backend's error response shape.
type Error struct {
	StatusCode    int        `json:"statusCode"`
	StatusMessage string     `json:"statusMessage,omitempty"`
	Message       string     `json:"message,omitempty"`
	Data          *ErrorBody `json:"data,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e.StatusMessage != "":
		return e.StatusMessage
	case e.Message != "":
		return e.Message
	default:
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
}

// Text returns the human-oriented message of the failure, preferring
// statusMessage over message.
func (e *Error) Text() string {
	if e.StatusMessage != "" {
		return e.StatusMessage
	}
	return e.Message
}

// NetworkError is a transport-level failure: the call never produced an
// HTTP status code. Timeout reports whether the failure was a timeout, so
// the message text distinguishes the two transient categories.
type NetworkError struct {
	URL     string
	Timeout bool
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("timeout calling %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("network failure calling %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StatusOf extracts the HTTP status code from an error, if the error carries
// one. Transport-level failures have no status.
func StatusOf(err error) (int, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}

// BodyOf extracts the structured error payload, if present.
func BodyOf(err error) *ErrorBody {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Data
	}
	return nil
}
