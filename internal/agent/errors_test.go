package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"charm.land/fantasy"
	"github.com/stretchr/testify/require"

	"github.com/dotcommander/cryptobot/internal/errs"
)

func TestDescribe(t *testing.T) {
	cases := map[string]struct {
		err    error
		reason string
	}{
		"unauthorized": {
			err:    &fantasy.ProviderError{StatusCode: http.StatusUnauthorized, Message: "bad key"},
			reason: "The inference API rejected the credential. Check GEMINI_API_KEY.",
		},
		"forbidden wrapped": {
			err:    fmt.Errorf("generate: %w", &fantasy.ProviderError{StatusCode: http.StatusForbidden}),
			reason: "The inference API rejected the credential. Check GEMINI_API_KEY.",
		},
		"missing model": {
			err:    &fantasy.ProviderError{StatusCode: http.StatusNotFound},
			reason: "The configured model was not found on the inference API.",
		},
		"rate limited": {
			err:    &fantasy.ProviderError{StatusCode: http.StatusTooManyRequests},
			reason: "The inference API is rate limiting requests. Try again later.",
		},
		"server error": {
			err:    &fantasy.ProviderError{StatusCode: http.StatusBadGateway},
			reason: "The inference API had a server error.",
		},
		"deadline": {
			err:    context.DeadlineExceeded,
			reason: "The agent took too long to answer.",
		},
		"canceled": {
			err:    fmt.Errorf("run: %w", context.Canceled),
			reason: "Request canceled.",
		},
		"unknown": {
			err:    errors.New("connection reset"),
			reason: "There was a problem with the inference API request.",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := Describe(tc.err)
			require.Equal(t, tc.reason, got.ReasonText())
			require.ErrorIs(t, got, tc.err)
		})
	}
}

func TestDescribeKeepsUserError(t *testing.T) {
	in := errs.Error{Reason: "already described"}
	require.Equal(t, in, Describe(in))
}
