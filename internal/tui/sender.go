package tui

import "context"

// channelSender hands replies from the chat handler to the Bubble Tea loop.
type channelSender struct {
	ch chan string
}

func newChannelSender() *channelSender {
	return &channelSender{ch: make(chan string, 1)}
}

func (s *channelSender) Send(ctx context.Context, reply string) error {
	select {
	case s.ch <- reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// receive waits for the next reply.
func (s *channelSender) receive(ctx context.Context) (string, error) {
	select {
	case reply := <-s.ch:
		return reply, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
