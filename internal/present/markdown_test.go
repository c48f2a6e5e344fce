package present

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdownForTTY(t *testing.T) {
	out, err := RenderMarkdownForTTY("The current price of **bitcoin** is $65000.\t\n", 80)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(out, "\n"))
	require.False(t, strings.Contains(out, "\t"))
	require.Contains(t, out, "bitcoin")
}

func TestTidyRendered(t *testing.T) {
	require.Equal(t, "a    b\n", TidyRendered("a\tb  \n\n"))
}

func TestMakeGradientText(t *testing.T) {
	require.Equal(t, "ab", MakeGradientText(lipgloss.NewStyle(), "ab"))
	require.Len(t, MakeGradientRamp(5), 5)
	require.Contains(t, MakeGradientText(lipgloss.NewStyle(), "CRYPTOBOT"), "C")
}

func TestPrintConfirmation(t *testing.T) {
	var buf bytes.Buffer
	PrintConfirmation(&buf, "", "The current price of bitcoin is $65000.")
	require.Contains(t, buf.String(), "PRICE")
	require.Contains(t, buf.String(), "The current price of bitcoin is $65000.")
}
