package present

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

func isTerminal(f *os.File) func() bool {
	return sync.OnceValue(func() bool {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	})
}

var (
	isInputTTY  = isTerminal(os.Stdin)
	isOutputTTY = isTerminal(os.Stdout)
	isErrorTTY  = isTerminal(os.Stderr)
)

// IsInputTTY reports whether stdin is a TTY. Piped questions are read from
// stdin when it is not.
func IsInputTTY() bool {
	return isInputTTY()
}

// IsOutputTTY reports whether stdout is a TTY, which decides between
// rendered markdown and the raw reply.
func IsOutputTTY() bool {
	return isOutputTTY()
}

// IsErrorTTY reports whether stderr is a TTY. The spinner and the full
// screen chat draw there.
func IsErrorTTY() bool {
	return isErrorTTY()
}

var stdoutRenderer = sync.OnceValue(func() *lipgloss.Renderer {
	return lipgloss.DefaultRenderer()
})

// StdoutRenderer returns a lipgloss renderer bound to stdout, used for help
// and price output.
func StdoutRenderer() *lipgloss.Renderer {
	return stdoutRenderer()
}

var stdoutStyles = sync.OnceValue(func() Styles {
	return MakeStyles(StdoutRenderer())
})

// StdoutStyles returns shared styles bound to stdout.
func StdoutStyles() Styles {
	return stdoutStyles()
}

var stderrRenderer = sync.OnceValue(func() *lipgloss.Renderer {
	return lipgloss.NewRenderer(os.Stderr, termenv.WithColorCache(true))
})

// StderrRenderer returns a lipgloss renderer bound to stderr, where the
// chat and spinner draw.
func StderrRenderer() *lipgloss.Renderer {
	return stderrRenderer()
}

var stderrStyles = sync.OnceValue(func() Styles {
	return MakeStyles(StderrRenderer())
})

// StderrStyles returns shared styles bound to stderr.
func StderrStyles() Styles {
	return stderrStyles()
}
