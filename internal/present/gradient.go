package present

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	rampStart = "#F7931A"
	rampEnd   = "#6B50FF"
)

// MakeGradientRamp returns a color ramp of the given length, running from
// bitcoin orange to violet.
func MakeGradientRamp(length int) []lipgloss.Color {
	var (
		c        = make([]lipgloss.Color, length)
		start, _ = colorful.Hex(rampStart)
		end, _   = colorful.Hex(rampEnd)
	)
	for i := range length {
		step := start.BlendLuv(end, float64(i)/float64(length))
		c[i] = lipgloss.Color(step.Hex())
	}
	return c
}

// MakeGradientText renders str with a gradient applied rune-by-rune.
func MakeGradientText(baseStyle lipgloss.Style, str string) string {
	const minSize = 3
	if len(str) < minSize {
		return str
	}
	var b strings.Builder
	runes := []rune(str)
	for i, c := range MakeGradientRamp(len(runes)) {
		b.WriteString(baseStyle.Foreground(c).Render(string(runes[i])))
	}
	return b.String()
}
