package present

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsTerminalPipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	require.False(t, isTerminal(r)())
	require.False(t, isTerminal(w)())
}

func TestIsTerminalRegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	require.False(t, isTerminal(f)())
}
