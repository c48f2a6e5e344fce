// Package chat connects a chat surface to the agent: each incoming message is
// run on the worker pool and answered with exactly one reply.
package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dotcommander/cryptobot/internal/agent"
	"github.com/dotcommander/cryptobot/internal/workpool"
)

// Message is one user turn.
type Message struct {
	ID        uuid.UUID
	Author    string
	Content   string
	CreatedAt time.Time
}

// NewMessage stamps content with a fresh id and the current time.
func NewMessage(author, content string) Message {
	return Message{
		ID:        uuid.New(),
		Author:    author,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// Sender delivers a reply back to the surface the message came from.
type Sender interface {
	Send(ctx context.Context, reply string) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, reply string) error

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, reply string) error {
	return f(ctx, reply)
}

// Runner runs an agent to completion.
type Runner interface {
	Run(ctx context.Context, a agent.Agent, input string) (agent.Result, error)
}

// Handler answers chat messages with the agent.
type Handler struct {
	agent   agent.Agent
	runner  Runner
	pool    *workpool.Pool
	sender  Sender
	timeout time.Duration
}

// Option configures a Handler.
type Option func(*Handler)

// WithRunTimeout bounds each agent run. Zero means no bound.
func WithRunTimeout(d time.Duration) Option {
	return func(h *Handler) { h.timeout = d }
}

// WithRunner replaces the default agent runner.
func WithRunner(r Runner) Option {
	return func(h *Handler) { h.runner = r }
}

// NewHandler creates a handler that runs a on pool and replies through sender.
func NewHandler(a agent.Agent, pool *workpool.Pool, sender Sender, opts ...Option) *Handler {
	h := &Handler{agent: a, runner: agent.Runner{}, pool: pool, sender: sender}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// OnMessage runs the agent on msg off the caller's goroutine, waits for the
// result and sends it. A failed run is returned and nothing is sent.
func (h *Handler) OnMessage(ctx context.Context, msg Message) error {
	reply, err := h.answer(ctx, msg)
	if err != nil {
		return err
	}
	return h.sender.Send(ctx, reply)
}

func (h *Handler) answer(ctx context.Context, msg Message) (string, error) {
	log := zerolog.Ctx(ctx).With().Str("message_id", msg.ID.String()).Logger()
	ctx = log.WithContext(ctx)
	log.Debug().Str("author", msg.Author).Msg("message received")

	fut := workpool.Submit(ctx, h.pool, func(ctx context.Context) (agent.Result, error) {
		if h.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, h.timeout)
			defer cancel()
		}
		return h.runner.Run(ctx, h.agent, msg.Content)
	})
	res, err := fut.Await(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("agent run failed")
		return "", err
	}
	return res.FinalOutput, nil
}
