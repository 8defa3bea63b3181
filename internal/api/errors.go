package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Kind classifies a normalized API failure. Callers switch on the kind
// instead of probing transport-specific error shapes.
type Kind string

const (
	// KindTransport covers failures before an HTTP response arrived:
	// unreachable host, timeout, interrupted body.
	KindTransport Kind = "transport"

	// KindAuth covers 401 and 403 responses.
	KindAuth Kind = "auth"

	// KindNotFound covers 404 responses.
	KindNotFound Kind = "not_found"

	// KindRemote covers every other non-2xx response.
	KindRemote Kind = "remote"
)

// Error is the single error shape exposed by the API client. Message is
// always human-readable: the server-supplied message when one exists,
// otherwise a transport-level fallback.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	cause      error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// AsError extracts the normalized error from err, if any.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsUnauthorized reports whether err is an authentication or
// authorization failure.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == KindAuth
}

// IsNotFound reports whether err is a 404 from the remote API.
func IsNotFound(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == KindNotFound
}

// transportError wraps a failure that never produced an HTTP response.
func transportError(err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: err.Error(),
		cause:   err,
	}
}

// errorBody is the error payload shape the storefront backend returns.
// Some endpoints use {"message": ...}, others {"error": ...}.
type errorBody struct {
	Message string `json:"message"`
	Err     string `json:"error"`
}

// responseError normalizes a non-2xx response. The body has not been
// consumed yet; at most a small prefix of it is read here.
func responseError(resp *http.Response) *Error {
	kind := KindRemote
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = KindAuth
	case http.StatusNotFound:
		kind = KindNotFound
	}

	message := http.StatusText(resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if err == nil && len(body) > 0 {
		var payload errorBody
		if jsonErr := json.Unmarshal(body, &payload); jsonErr == nil {
			if payload.Message != "" {
				message = payload.Message
			} else if payload.Err != "" {
				message = payload.Err
			}
		} else if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "<") {
			// Plain-text error body; ignore HTML error pages
			message = text
		}
	}

	return &Error{
		Kind:       kind,
		StatusCode: resp.StatusCode,
		Message:    message,
	}
}
