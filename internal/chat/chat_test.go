package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dotcommander/cryptobot/internal/agent"
	"github.com/dotcommander/cryptobot/internal/workpool"
)

// recorder logs the order of runs and sends.
type recorder struct {
	mu     sync.Mutex
	events []string
	inputs []string
}

func (r *recorder) add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

type stubRunner struct {
	rec    *recorder
	output string
	err    error
	delay  time.Duration
}

func (s *stubRunner) Run(ctx context.Context, a agent.Agent, input string) (agent.Result, error) {
	s.rec.mu.Lock()
	s.rec.inputs = append(s.rec.inputs, input)
	s.rec.mu.Unlock()
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return agent.Result{}, ctx.Err()
		}
	}
	s.rec.add("run:" + a.Name)
	if s.err != nil {
		return agent.Result{}, s.err
	}
	return agent.Result{FinalOutput: s.output, Steps: 2}, nil
}

func newTestHandler(t *testing.T, runner Runner, opts ...Option) (*Handler, *recorder, *[]string) {
	t.Helper()
	pool := workpool.New(2)
	t.Cleanup(pool.Close)

	rec := &recorder{}
	if sr, ok := runner.(*stubRunner); ok {
		sr.rec = rec
	}
	var replies []string
	sender := SenderFunc(func(_ context.Context, reply string) error {
		rec.add("send")
		replies = append(replies, reply)
		return nil
	})
	opts = append([]Option{WithRunner(runner)}, opts...)
	return NewHandler(agent.NewCryptoBot(nil), pool, sender, opts...), rec, &replies
}

func TestOnMessageSendsOneReply(t *testing.T) {
	runner := &stubRunner{output: "The current price of bitcoin is $65000."}
	h, rec, replies := newTestHandler(t, runner)

	err := h.OnMessage(context.Background(), NewMessage("alice", "What's the price of bitcoin?"))
	require.NoError(t, err)
	require.Equal(t, []string{"The current price of bitcoin is $65000."}, *replies)
	require.Equal(t, []string{"run:CRYPTOBOT", "send"}, rec.events)
	require.Equal(t, []string{"What's the price of bitcoin?"}, rec.inputs)
}

func TestOnMessageNoMemoization(t *testing.T) {
	runner := &stubRunner{output: "reply"}
	h, rec, replies := newTestHandler(t, runner)

	msg := NewMessage("alice", "price of eth")
	require.NoError(t, h.OnMessage(context.Background(), msg))
	require.NoError(t, h.OnMessage(context.Background(), msg))

	require.Len(t, *replies, 2)
	require.Equal(t, []string{"run:CRYPTOBOT", "send", "run:CRYPTOBOT", "send"}, rec.events)
}

func TestOnMessageRunFailureSendsNothing(t *testing.T) {
	boom := errors.New("inference down")
	runner := &stubRunner{err: boom}
	h, _, replies := newTestHandler(t, runner)

	err := h.OnMessage(context.Background(), NewMessage("bob", "hi"))
	require.ErrorIs(t, err, boom)
	require.Empty(t, *replies)
}

func TestOnMessageSendFailure(t *testing.T) {
	pool := workpool.New(1)
	defer pool.Close()

	sendErr := errors.New("channel gone")
	h := NewHandler(agent.NewCryptoBot(nil), pool,
		SenderFunc(func(context.Context, string) error { return sendErr }),
		WithRunner(&stubRunner{rec: &recorder{}, output: "ok"}),
	)
	require.ErrorIs(t, h.OnMessage(context.Background(), NewMessage("bob", "hi")), sendErr)
}

func TestOnMessageRunTimeout(t *testing.T) {
	runner := &stubRunner{output: "late", delay: time.Second}
	h, _, replies := newTestHandler(t, runner, WithRunTimeout(10*time.Millisecond))

	err := h.OnMessage(context.Background(), NewMessage("bob", "hi"))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Empty(t, *replies)
}

func TestOnMessageConcurrent(t *testing.T) {
	runner := &stubRunner{output: "ok", delay: 5 * time.Millisecond}
	pool := workpool.New(2)
	defer pool.Close()

	var mu sync.Mutex
	count := 0
	h := NewHandler(agent.NewCryptoBot(nil), pool, SenderFunc(func(context.Context, string) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	}), WithRunner(runner))
	runner.rec = &recorder{}

	errc := make(chan error, 6)
	for range 6 {
		go func() {
			errc <- h.OnMessage(context.Background(), NewMessage("u", "price"))
		}()
	}
	for range 6 {
		require.NoError(t, <-errc)
	}
	require.Equal(t, 6, count)
}

func TestNewMessage(t *testing.T) {
	a := NewMessage("alice", "hi")
	b := NewMessage("alice", "hi")
	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, "hi", a.Content)
	require.False(t, a.CreatedAt.IsZero())
}
