package transport

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// LoginPath is where an unauthenticated viewer is sent.
const LoginPath = "/login"

// ErrUnauthenticated matches every *AuthError via errors.Is.
var ErrUnauthenticated = errors.New("unauthenticated")

// Reason tells why re-authentication is needed.
type Reason string

const (
	ReasonNoRefreshToken  Reason = "no refresh token"
	ReasonRefreshRejected Reason = "refresh token expired"
)

// AuthError is fatal for the current operation: the user must log in again.
type AuthError struct {
	Reason Reason
	// Err is the refresh failure, if one happened.
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("(Error 401) the user is not authenticated (%s), please re-login", e.Reason)
}

func (e *AuthError) Is(target error) bool { return target == ErrUnauthenticated }

func (e *AuthError) Unwrap() error { return e.Err }

// RedirectURL is the login location that returns the viewer to current
// afterwards.
func (e *AuthError) RedirectURL(current string) string {
	return LoginPath + "?redirect=" + url.QueryEscape(current)
}

// StatusError is a non-2xx backend response, surfaced unmodified.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// TransientExpected reports whether the status is one the application
// treats as routine: 401 before refresh, 429 from rate-limited syncs, 404
// after deletions.
func (e *StatusError) TransientExpected() bool {
	return expectedStatus(e.Status)
}

func expectedStatus(status int) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusNotFound:
		return true
	}
	return false
}

// Class buckets errors for callers that render messages.
type Class int

const (
	ClassNone Class = iota
	ClassUnauthenticated
	ClassTransientExpected
	ClassServerOrNetwork
)

func (c Class) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassUnauthenticated:
		return "unauthenticated"
	case ClassTransientExpected:
		return "transient-expected"
	default:
		return "server-or-network"
	}
}

// Classify maps an error returned by this package to its Class.
func Classify(err error) Class {
	if err == nil {
		return ClassNone
	}
	if errors.Is(err, ErrUnauthenticated) {
		return ClassUnauthenticated
	}
	var se *StatusError
	if errors.As(err, &se) && se.TransientExpected() {
		return ClassTransientExpected
	}
	return ClassServerOrNetwork
}

// IsStatus reports whether err is a *StatusError with the given status.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}
