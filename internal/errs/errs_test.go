package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	t.Run("falls back to reason", func(t *testing.T) {
		err := Error{Reason: "no key"}
		require.Equal(t, "no key", err.Error())
		require.Nil(t, errors.Unwrap(err))
	})

	t.Run("prefers underlying error", func(t *testing.T) {
		inner := errors.New("boom")
		err := Wrap(inner, "Request failed.")
		require.Equal(t, "boom", err.Error())
		require.ErrorIs(t, err, inner)
		require.Equal(t, "Request failed.", err.ReasonText())
	})

	t.Run("wrapf formats reason", func(t *testing.T) {
		err := Wrapf(errors.New("x"), "provider %s failed", "gemini")
		require.Equal(t, "provider gemini failed", err.Reason)
	})
}

func TestErrorInChain(t *testing.T) {
	wrapped := fmt.Errorf("run: %w", Wrap(errors.New("401"), "Authentication failed."))
	var e Error
	require.ErrorAs(t, wrapped, &e)
	require.Equal(t, "Authentication failed.", e.ReasonText())
	require.EqualError(t, wrapped, "run: 401")
}
