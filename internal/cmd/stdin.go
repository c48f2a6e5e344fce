package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/dotcommander/cryptobot/internal/present"
)

// readStdin returns piped input, or "" when stdin is a terminal.
func readStdin() (string, error) {
	if present.IsInputTTY() {
		return "", nil
	}
	bts, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(bts)), nil
}
