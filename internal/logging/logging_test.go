package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	require.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
	require.Equal(t, zerolog.InfoLevel, ParseLevel(""))
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := New(Options{Level: "warn", Out: &buf})
	defer closer.Close()

	logger.Info().Msg("hidden")
	logger.Warn().Str("coin", "bitcoin").Msg("shown")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "bitcoin")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cryptobot.log")
	logger, closer := New(Options{Level: "debug", File: path})
	logger.Debug().Msg("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"message":"to file"`)
}

func TestDefaultFile(t *testing.T) {
	require.Equal(t, "cryptobot.log", filepath.Base(DefaultFile()))
}
