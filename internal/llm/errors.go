package llm

import (
	"errors"
	"net/http"

	"github.com/jepco-digital/support-bot/internal/resilience"
)

// statusError is satisfied by the API error types the pkg clients return.
type statusError interface {
	error
	HTTPStatus() int
}

// classify maps a provider failure onto the retry taxonomy. Rejected
// credentials become auth errors, rate limits and server-side statuses
// become transient, and anything else passes through unchanged.
func classify(provider string, err error) error {
	var se statusError
	if !errors.As(err, &se) {
		return err
	}

	status := se.HTTPStatus()
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return resilience.Auth(provider, err)
	case resilience.RetryableStatus(status) || status == 529:
		return resilience.Transient(err, status)
	}
	return err
}
