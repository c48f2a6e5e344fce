// Package logging builds the process logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how much is logged.
type Options struct {
	Level string
	// File, when set, receives JSON logs with rotation instead of the console.
	File string
	Out  io.Writer
}

// DefaultFile is the log path used in TUI mode when none is configured.
func DefaultFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "cryptobot", "cryptobot.log")
}

// ParseLevel parses a level name, falling back to info.
func ParseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// New returns a timestamped logger. The returned closer releases the log file,
// if any.
func New(opts Options) (zerolog.Logger, io.Closer) {
	level := ParseLevel(opts.Level)

	if opts.File != "" {
		_ = os.MkdirAll(filepath.Dir(opts.File), 0o700)
		w := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		return zerolog.New(w).Level(level).With().Timestamp().Logger(), w
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return logger, io.NopCloser(nil)
}
