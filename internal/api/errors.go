package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// ErrUnauthorized indicates the server rejected the request's credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrorKind discriminates collaborator error shapes.
type ErrorKind int

const (
	// KindGeneric carries a single human-readable message.
	KindGeneric ErrorKind = iota
	// KindField carries a validation message tied to one request field.
	KindField
)

// Error is the typed result of a rejected request. Field-level validation
// failures keep the server's message verbatim under the offending field;
// everything else collapses to a generic message.
type Error struct {
	Kind       ErrorKind
	Field      string
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Kind == KindField {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// decodeError turns a non-2xx response body into a typed error. DRF-style
// bodies are either {"detail": "..."} or {"field": ["msg", ...]}.
func decodeError(status int, body []byte) error {
	apiErr := &Error{Kind: KindGeneric, StatusCode: status, Message: http.StatusText(status)}

	var shape map[string]json.RawMessage
	if err := json.Unmarshal(body, &shape); err == nil {
		if raw, ok := shape["detail"]; ok {
			var detail string
			if json.Unmarshal(raw, &detail) == nil && detail != "" {
				apiErr.Message = detail
			}
		} else if field, msg, ok := firstFieldError(shape); ok {
			apiErr.Kind = KindField
			apiErr.Field = field
			apiErr.Message = msg
		}
	}

	if status == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
	}
	return apiErr
}

// firstFieldError picks the lexically first field key so callers see a
// deterministic message when several fields fail.
func firstFieldError(shape map[string]json.RawMessage) (string, string, bool) {
	keys := make([]string, 0, len(shape))
	for k := range shape {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		var msgs []string
		if json.Unmarshal(shape[key], &msgs) == nil && len(msgs) > 0 {
			return key, msgs[0], true
		}
		var msg string
		if json.Unmarshal(shape[key], &msg) == nil && msg != "" {
			return key, msg, true
		}
	}
	return "", "", false
}
