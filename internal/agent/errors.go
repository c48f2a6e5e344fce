package agent

import (
	"context"
	"errors"
	"net/http"

	"charm.land/fantasy"

	"github.com/dotcommander/cryptobot/internal/errs"
)

var errNoModel = errs.Error{Reason: "No language model configured."}

// Describe turns a run failure into a user-facing error. Failures are never
// retried; the reason only tells the user what went wrong.
func Describe(err error) errs.Error {
	var e errs.Error
	if errors.As(err, &e) {
		return e
	}

	var providerErr *fantasy.ProviderError
	if errors.As(err, &providerErr) {
		return errs.Error{Err: err, Reason: providerReason(providerErr)}
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return errs.Error{Err: err, Reason: "The agent took too long to answer."}
	case errors.Is(err, context.Canceled):
		return errs.Error{Err: err, Reason: "Request canceled."}
	}
	return errs.Error{Err: err, Reason: "There was a problem with the inference API request."}
}

func providerReason(err *fantasy.ProviderError) string {
	switch code := err.StatusCode; {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return "The inference API rejected the credential. Check GEMINI_API_KEY."
	case code == http.StatusNotFound:
		return "The configured model was not found on the inference API."
	case code == http.StatusTooManyRequests:
		return "The inference API is rate limiting requests. Try again later."
	case code >= http.StatusInternalServerError:
		return "The inference API had a server error."
	}
	if reason := fantasy.ErrorTitleForStatusCode(err.StatusCode); reason != "" {
		return reason
	}
	return "There was a problem with the inference API request."
}
