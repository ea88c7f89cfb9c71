package bitly

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// ErrMissingAccessToken is returned by New when no access token is given.
var ErrMissingAccessToken = errors.New("bitly: access token is required")

// redactedToken replaces the access token in errors that echo the request URL.
const redactedToken = "REDACTED"

// APIError is returned when the API answers with a status code outside
// [200, 400).
type APIError struct {
	// Method is the API method that was called.
	Method string

	// StatusCode mirrors status_code of the response body, or the HTTP
	// status when the body was not an API envelope.
	StatusCode int

	// StatusTxt mirrors status_txt, e.g. "INVALID_URI".
	StatusTxt string

	// Data mirrors any partial payload returned with the error.
	Data json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bitly: %s returned %d: %s", e.Method, e.StatusCode, e.StatusTxt)
}

// TransportError is returned when the request never produced a response:
// DNS failures, refused connections, timeouts and cancelled contexts.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("bitly: %s: %v", e.Method, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a timeout.
func (e *TransportError) Timeout() bool {
	var timeout interface{ Timeout() bool }
	return errors.As(e.Err, &timeout) && timeout.Timeout()
}

// redactURLError returns err with the access_token query parameter masked
// when err is a *url.Error. Other errors are returned as is.
func redactURLError(err error) error {
	urlErr, ok := err.(*url.Error)
	if !ok {
		return err
	}

	u, parseErr := url.Parse(urlErr.URL)
	if parseErr != nil {
		return &url.Error{Op: urlErr.Op, URL: redactedToken, Err: urlErr.Err}
	}

	query := u.Query()
	if !query.Has("access_token") {
		return err
	}
	query.Set("access_token", redactedToken)
	u.RawQuery = query.Encode()

	return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
}
