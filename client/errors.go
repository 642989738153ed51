package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrSessionExpired is matched by errors that ended the session: the
	// refresh call failed and the stored tokens were cleared.
	ErrSessionExpired = errors.New("session expired")

	// ErrNoAccessToken is returned when an authentication response carries no access token.
	ErrNoAccessToken = errors.New("response did not contain an access token")
)

// HTTPError is returned for any response outside the 2xx range.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected HTTP status %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// RefreshError wraps the failure of a token refresh. Every request that was
// waiting on that refresh receives the same RefreshError.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string { return "token refresh failed: " + e.Err.Error() }
func (e *RefreshError) Unwrap() error { return e.Err }

// Is reports RefreshError as a session expiry.
func (e *RefreshError) Is(target error) bool { return target == ErrSessionExpired }

// StatusCode returns the HTTP status carried by err, or 0 when err is not an HTTPError.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
