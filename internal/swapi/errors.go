package swapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors. Every failure to obtain a record wraps ErrFetchFailed.
var (
	// ErrFetchFailed covers network errors, non-2xx responses and non-JSON bodies.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrDecode indicates the response body was not the expected JSON document.
	ErrDecode = errors.New("response is not valid JSON")

	// ErrInvalidID indicates the character identifier is not a positive integer.
	ErrInvalidID = errors.New("character id must be a positive integer")
)

// FetchError records which resource failed. It matches both ErrFetchFailed and the cause.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	if e == nil {
		return ErrFetchFailed.Error()
	}
	return fmt.Sprintf("%s: GET %s: %v", ErrFetchFailed, e.URL, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is/As.
func (e *FetchError) Unwrap() []error {
	return []error{ErrFetchFailed, e.Err}
}

// HTTPStatusError means SWAPI answered with a non-2xx status.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Detail     string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "HTTP status error"
	}
	detail := strings.TrimSpace(e.Detail)
	if detail == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, detail)
}

// IsNotFound reports whether err is a 404 from SWAPI.
func IsNotFound(err error) bool {
	var statusErr *HTTPStatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
