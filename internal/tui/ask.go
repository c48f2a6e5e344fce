package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dotcommander/cryptobot/internal/agent"
	"github.com/dotcommander/cryptobot/internal/chat"
	"github.com/dotcommander/cryptobot/internal/config"
	"github.com/dotcommander/cryptobot/internal/errs"
	"github.com/dotcommander/cryptobot/internal/present"
	"github.com/dotcommander/cryptobot/internal/workpool"
)

type state int

const (
	requestState state = iota
	doneState
	errorState
)

// Ask is the Bubble Tea model for a one-shot question. It shows a spinner
// while the agent works and quits once the reply is in; the caller prints
// Output afterwards.
type Ask struct {
	// Output is the bot's reply, set when the run succeeds.
	Output string
	Error  *errs.Error

	question string
	state    state
	spinner  spinner.Model
	styles   present.Styles
	cfg      *config.Config

	handler *chat.Handler
	sender  *channelSender
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewAsk creates the model that answers question with a on pool.
func NewAsk(
	ctx context.Context,
	r *lipgloss.Renderer,
	cfg *config.Config,
	a agent.Agent,
	pool *workpool.Pool,
	question string,
	opts ...chat.Option,
) *Ask {
	styles := present.MakeStyles(r)
	sender := newChannelSender()
	ctx, cancel := context.WithCancel(ctx)
	return &Ask{
		question: question,
		state:    requestState,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner)),
		styles:   styles,
		cfg:      cfg,
		handler:  chat.NewHandler(a, pool, sender, opts...),
		sender:   sender,
		ctx:      ctx,
		cancel:   cancel,
	}
}

type askDoneMsg struct {
	reply string
}

// Init implements tea.Model.
func (m *Ask) Init() tea.Cmd {
	cmds := []tea.Cmd{m.askCmd}
	if !m.cfg.Quiet {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Ask) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case askDoneMsg:
		m.Output = msg.reply
		m.state = doneState
		m.cancel()
		return m, tea.Quit

	case errs.Error:
		e := msg
		m.Error = &e
		m.state = errorState
		m.cancel()
		return m, tea.Quit

	case error:
		e := agent.Describe(msg)
		m.Error = &e
		m.state = errorState
		m.cancel()
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			m.state = doneState
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if m.state != requestState || m.cfg.Quiet {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Ask) View() string {
	if m.state != requestState || m.cfg.Quiet {
		return ""
	}
	return m.spinner.View() + " " + m.styles.Comment.Render("Asking "+agent.Name+"...")
}

func (m *Ask) askCmd() tea.Msg {
	if err := m.handler.OnMessage(m.ctx, chat.NewMessage("cli", m.question)); err != nil {
		if errors.Is(err, context.Canceled) && m.ctx.Err() != nil {
			return nil
		}
		return agent.Describe(err)
	}
	reply, err := m.sender.receive(m.ctx)
	if err != nil {
		return agent.Describe(err)
	}
	return askDoneMsg{reply: reply}
}
