package cmd

import (
	"math/rand"
	"regexp"

	"github.com/dotcommander/cryptobot/internal/present"
)

var examples = map[string]string{
	"Start a chat with a question":   `cryptobot "What's the price of bitcoin?"`,
	"Ask once and keep the answer":   `cryptobot ask -r "How much is ethereum worth?" | tee price.txt`,
	"Check a coin without the LLM":   `cryptobot price dogecoin`,
	"Put the bot behind an HTTP API": `cryptobot serve -l :8000`,
}

var (
	quoteRe = regexp.MustCompile(`"([^"\\]|\\.)*"`)
	pipeRe  = regexp.MustCompile(`\|`)
)

func randomExample() string {
	keys := make([]string, 0, len(examples))
	for k := range examples {
		keys = append(keys, k)
	}
	return keys[rand.Intn(len(keys))] //nolint:gosec
}

func cheapHighlighting(s present.Styles, code string) string {
	code = quoteRe.ReplaceAllStringFunc(code, func(x string) string {
		return s.Quote.Render(x)
	})
	return pipeRe.ReplaceAllStringFunc(code, func(x string) string {
		return s.Pipe.Render(x)
	})
}
