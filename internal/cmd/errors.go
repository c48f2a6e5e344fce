package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/dotcommander/cryptobot/internal/errs"
	"github.com/dotcommander/cryptobot/internal/present"
)

func handleError(err error) {
	renderError(os.Stderr, present.StderrStyles(), err)
}

func renderError(w io.Writer, s present.Styles, err error) {
	format := "\n%s\n\n"

	var ferr flagParseError
	if errors.As(err, &ferr) {
		fmt.Fprintf(w, format+"%s\n\n",
			fmt.Sprintf(
				"Check out %s %s",
				s.InlineCode.Render("cryptobot -h"),
				s.Comment.Render("for help."),
			),
			fmt.Sprintf(ferr.ReasonFormat(), s.InlineCode.Render(ferr.Flag())),
		)
		return
	}

	var merr errs.Error
	if errors.As(err, &merr) {
		args := []any{s.ErrPadding.Render(s.ErrorHeader.String(), merr.Reason)}
		if merr.Err != nil {
			format += "%s\n\n"
			args = append(args, s.ErrPadding.Render(s.ErrorDetails.Render(err.Error())))
		}
		fmt.Fprintf(w, format, args...)
		return
	}

	fmt.Fprintf(w, format, s.ErrPadding.Render(s.ErrorDetails.Render(err.Error())))
}

// flagParseError is a flag parsing error with a user-facing reason.
type flagParseError struct {
	err    error
	reason string
	flag   string
}

var (
	needsArgRe   = regexp.MustCompile(`flag needs an argument: (?:'.' in )?(--?[\w-]+)`)
	shorthandRe  = regexp.MustCompile(`unknown shorthand flag: '.*' in (-\w)`)
	invalidArgRe = regexp.MustCompile(`invalid argument ".*" for "(.*)" flag: .*`)
)

func newFlagParseError(err error) flagParseError {
	var reason, flag string
	s := err.Error()
	switch {
	case strings.HasPrefix(s, "flag needs an argument:"):
		reason = "Flag %s needs an argument."
		if parts := needsArgRe.FindStringSubmatch(s); len(parts) > 1 {
			flag = parts[1]
		}
	case strings.HasPrefix(s, "unknown flag:"):
		reason = "Flag %s is missing."
		flag = strings.TrimPrefix(s, "unknown flag: ")
	case strings.HasPrefix(s, "unknown shorthand flag:"):
		reason = "Short flag %s is missing."
		if parts := shorthandRe.FindStringSubmatch(s); len(parts) > 1 {
			flag = parts[1]
		}
	case strings.HasPrefix(s, "invalid argument"):
		reason = "Flag %s have an invalid argument."
		if parts := invalidArgRe.FindStringSubmatch(s); len(parts) > 1 {
			flag = parts[1]
		}
	default:
		reason = s
	}
	return flagParseError{err: err, reason: reason, flag: flag}
}

func (f flagParseError) Error() string {
	return f.err.Error()
}

func (f flagParseError) ReasonFormat() string {
	return f.reason
}

func (f flagParseError) Flag() string {
	return f.flag
}
