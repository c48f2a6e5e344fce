package present

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/glamour"
)

const markdownTabWidth = 4

// NewMarkdownRenderer returns the glamour renderer used for bot replies.
func NewMarkdownRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithEnvironmentConfig(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return nil, fmt.Errorf("new markdown renderer: %w", err)
	}
	return r, nil
}

// RenderMarkdownForTTY renders markdown for terminal output.
func RenderMarkdownForTTY(input string, wordWrap int) (string, error) {
	r, err := NewMarkdownRenderer(wordWrap)
	if err != nil {
		return "", err
	}
	out, err := r.Render(input)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return TidyRendered(out), nil
}

// TidyRendered trims trailing whitespace from glamour output, expands tabs and
// ends it with a single newline.
func TidyRendered(out string) string {
	out = strings.TrimRightFunc(out, unicode.IsSpace)
	out = strings.ReplaceAll(out, "\t", strings.Repeat(" ", markdownTabWidth))
	return out + "\n"
}
