// Package resilience classifies upstream failures and retries the ones
// worth retrying.
package resilience

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// TransientError marks a failure that is safe to retry, such as a rate
// limit, a 5xx response, or a dropped connection.
type TransientError struct {
	Err    error
	Status int
}

func (e *TransientError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("transient (status %d): %v", e.Status, e.Err)
	}
	return e.Err.Error()
}

func (e *TransientError) Unwrap() error { return e.Err }

// Transient wraps err as retryable. status is the HTTP status that caused
// it, or 0 when the failure happened below HTTP.
func Transient(err error, status int) *TransientError {
	return &TransientError{Err: err, Status: status}
}

// AuthError marks a rejected credential. It is never retried; the caller
// surfaces setup instructions instead.
type AuthError struct {
	Provider string
	Err      error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: authentication rejected: %v", e.Provider, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Auth wraps err as an authentication failure for the named provider.
func Auth(provider string, err error) *AuthError {
	return &AuthError{Provider: provider, Err: err}
}

// IsAuth reports whether any error in the chain is an AuthError.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// RateLimited reports whether any error in the chain is a transient error
// carrying HTTP status 429.
func RateLimited(err error) bool {
	var te *TransientError
	return errors.As(err, &te) && te.Status == 429
}

// IsTransient reports whether err is worth retrying: an explicit
// TransientError, a network timeout, or a connection-level failure.
// Auth failures are never transient, even if something upstream wrapped
// them in a retryable type.
func IsTransient(err error) bool {
	if err == nil || IsAuth(err) {
		return false
	}

	var te *TransientError
	if errors.As(err, &te) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	// Heuristics for errors flattened to strings by HTTP client layers.
	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"connection reset by peer",
		"broken pipe",
		"no such host",
		"tls handshake timeout",
		"i/o timeout",
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	return false
}

// RetryableStatus reports whether an HTTP status indicates a transient
// server-side problem.
func RetryableStatus(status int) bool {
	switch status {
	case 408, 429, 500, 502, 503, 504:
		return true
	}
	return false
}
