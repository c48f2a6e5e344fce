// Package agent contains cryptobot's core (non-UI) logic.
//
// It bundles the model, instructions and tools into an Agent and runs a user
// message through the agent runtime until a final text answer is produced.
package agent

import (
	"context"
	"time"

	"charm.land/fantasy"
	"github.com/rs/zerolog"
)

// Name is the bot's display name.
const Name = "CRYPTOBOT"

// Instructions is the system prompt given to the model.
const Instructions = "You are a crypto trading bot that tells the real-time price of a cryptocurrency."

// Agent is a static bundle of what a run needs. Built once, shared read-only.
type Agent struct {
	Name         string
	Instructions string
	Model        fantasy.LanguageModel
	Tools        []fantasy.AgentTool
}

// NewCryptoBot builds the price bot around model.
func NewCryptoBot(model fantasy.LanguageModel, tools ...fantasy.AgentTool) Agent {
	return Agent{
		Name:         Name,
		Instructions: Instructions,
		Model:        model,
		Tools:        tools,
	}
}

// Result is the outcome of one run.
type Result struct {
	FinalOutput string
	Steps       int
	Usage       fantasy.Usage
}

// Runner executes agents. The zero value is ready to use and safe for
// concurrent use.
type Runner struct{}

// Run sends input to a and blocks until the runtime produces a final answer,
// calling tools as the model requests.
func (Runner) Run(ctx context.Context, a Agent, input string) (Result, error) {
	log := zerolog.Ctx(ctx).With().Str("agent", a.Name).Logger()
	if a.Model == nil {
		return Result{}, Describe(errNoModel)
	}

	runtime := fantasy.NewAgent(
		a.Model,
		fantasy.WithSystemPrompt(a.Instructions),
		fantasy.WithTools(a.Tools...),
	)

	start := time.Now()
	log.Debug().Str("model", a.Model.Model()).Msg("agent run")
	res, err := runtime.Generate(log.WithContext(ctx), fantasy.AgentCall{Prompt: input})
	if err != nil {
		log.Error().Err(err).Dur("took", time.Since(start)).Msg("agent run failed")
		return Result{}, Describe(err)
	}

	out := Result{
		FinalOutput: res.Response.Content.Text(),
		Steps:       len(res.Steps),
		Usage:       res.TotalUsage,
	}
	log.Info().
		Int("steps", out.Steps).
		Int64("input_tokens", out.Usage.InputTokens).
		Int64("output_tokens", out.Usage.OutputTokens).
		Dur("took", time.Since(start)).
		Msg("agent run finished")
	return out, nil
}
