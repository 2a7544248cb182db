package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// Kind classifies a failed gateway call
type Kind int

const (
	// KindUnauthorized means the session is invalid or expired. The gateway
	// clears the session store before returning it.
	KindUnauthorized Kind = iota
	// KindNotFound means the referenced entity no longer exists
	KindNotFound
	// KindValidation means the caller sent input the server rejected;
	// Field and Message identify what to correct
	KindValidation
	// KindConflict means a concurrent modification was detected
	KindConflict
	// KindNetworkFailure means the request never produced a response
	KindNetworkFailure
	// KindServerFailure covers every other non-success response
	KindServerFailure
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNetworkFailure:
		return "network failure"
	default:
		return "server failure"
	}
}

// Error is the typed failure every gateway operation returns
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 for network failures
	Field   string // set for validation errors
	Message string
	cause   error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindValidation && e.Field != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsKind reports whether err is a gateway error of the given kind
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == kind
}

// errorResponse is the server's error body shape
type errorResponse struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

// classifyResponse maps a non-success HTTP response to a typed error
func classifyResponse(status int, body []byte) *Error {
	var parsed errorResponse
	_ = json.Unmarshal(body, &parsed)
	msg := parsed.Message
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch {
	case status == http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized, Status: status, Message: msg}
	case status == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Status: status, Message: msg}
	case status == http.StatusConflict:
		return &Error{Kind: KindConflict, Status: status, Message: msg}
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		field, fieldMsg := firstDetail(parsed.Details)
		if fieldMsg == "" {
			fieldMsg = msg
		}
		return &Error{Kind: KindValidation, Status: status, Field: field, Message: fieldMsg}
	default:
		return &Error{Kind: KindServerFailure, Status: status, Message: msg}
	}
}

// firstDetail picks the lexicographically first field so validation
// errors are deterministic when the server reports several
func firstDetail(details map[string]string) (string, string) {
	if len(details) == 0 {
		return "", ""
	}
	fields := make([]string, 0, len(details))
	for f := range details {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields[0], details[fields[0]]
}
