// Package tools defines the capabilities the agent may call and adapts them
// to the agent runtime.
package tools

import (
	"context"
	"encoding/json"

	"charm.land/fantasy"
	"github.com/rs/zerolog"
)

// Parameters is the JSON schema fragment describing a tool's arguments.
type Parameters struct {
	Properties map[string]any
	Required   []string
}

// Tool is a named capability with a description and an invoke operation.
//
// Invoke returns text meant for the model. An error means the arguments could
// not be used at all; failures the model should read about belong in the text.
type Tool interface {
	Name() string
	Description() string
	Parameters() Parameters
	Invoke(ctx context.Context, args json.RawMessage) (string, error)
}

var _ fantasy.AgentTool = &agentTool{}

type agentTool struct {
	tool Tool
	opts fantasy.ProviderOptions
}

// AgentTool adapts t to the agent runtime.
func AgentTool(t Tool) fantasy.AgentTool {
	return &agentTool{tool: t}
}

// AgentTools adapts every tool in ts.
func AgentTools(ts ...Tool) []fantasy.AgentTool {
	out := make([]fantasy.AgentTool, 0, len(ts))
	for _, t := range ts {
		out = append(out, AgentTool(t))
	}
	return out
}

func (a *agentTool) Info() fantasy.ToolInfo {
	params := a.tool.Parameters()
	return fantasy.ToolInfo{
		Name:        a.tool.Name(),
		Description: a.tool.Description(),
		Parameters:  params.Properties,
		Required:    params.Required,
	}
}

func (a *agentTool) Run(ctx context.Context, call fantasy.ToolCall) (fantasy.ToolResponse, error) {
	log := zerolog.Ctx(ctx).With().Str("tool", a.tool.Name()).Str("call_id", call.ID).Logger()
	log.Debug().Str("input", call.Input).Msg("tool call")

	out, err := a.tool.Invoke(ctx, json.RawMessage(call.Input))
	if err != nil {
		log.Warn().Err(err).Msg("tool call rejected")
		return fantasy.NewTextErrorResponse(err.Error()), nil
	}
	log.Debug().Str("output", out).Msg("tool result")
	return fantasy.NewTextResponse(out), nil
}

func (a *agentTool) ProviderOptions() fantasy.ProviderOptions {
	return a.opts
}

func (a *agentTool) SetProviderOptions(opts fantasy.ProviderOptions) {
	a.opts = opts
}
