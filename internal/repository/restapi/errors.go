package restapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"go-jobboard-web/internal/domain"
	"net/http"
	"strings"
)

// User-facing fallbacks
const (
	MsgGeneric = "An unexpected error occurred"
	MsgNetwork = "Network error. Please try again."
)

// FieldError is one key of an error object with its messages.
type FieldError struct {
	Field    string
	Messages []string
}

// APIError is a non-2xx response. Fields keeps the keys of a JSON error
// object in the order the server sent them.
type APIError struct {
	Status int
	Fields []FieldError
	Body   string
}

func (e *APIError) Error() string {
	if msg := e.firstMessage(); msg != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
}

// Is lets errors.Is(err, domain.ErrNotFound) match a 404.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrNotFound && e.Status == http.StatusNotFound
}

func (e *APIError) firstMessage() string {
	if len(e.Fields) == 0 || len(e.Fields[0].Messages) == 0 {
		return ""
	}
	return e.Fields[0].Messages[0]
}

// TransportError means no HTTP response was obtained.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{
		Status: status,
		Fields: parseFieldErrors(body),
		Body:   string(body),
	}
}

// parseFieldErrors reads {"field": ["msg", ...], ...} preserving key order.
// A non-array value becomes a single message. Non-object bodies yield nil.
func parseFieldErrors(body []byte) []FieldError {
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil
	}

	var out []FieldError
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			break
		}
		key, _ := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			break
		}
		out = append(out, FieldError{Field: key, Messages: messagesOf(raw)})
	}
	return out
}

func messagesOf(raw json.RawMessage) []string {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		msgs := make([]string, 0, len(list))
		for _, item := range list {
			msgs = append(msgs, textOf(item))
		}
		return msgs
	}
	return []string{textOf(raw)}
}

func textOf(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// Message is the single string a form shows for err: the first message of
// the first key of an error object, a network notice for transport
// failures, and MsgGeneric for everything else.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.firstMessage(); msg != "" {
			return msg
		}
		return MsgGeneric
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return MsgNetwork
	}
	return MsgGeneric
}

// IsValidation reports a 4xx response carrying field errors.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		apiErr.Status >= 400 && apiErr.Status < 500 &&
		len(apiErr.Fields) > 0
}

// IsTransport reports a network-level failure.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// StatusCode returns the API status for err, or 0 when there was none.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
