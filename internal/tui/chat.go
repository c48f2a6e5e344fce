package tui

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/dotcommander/cryptobot/internal/agent"
	"github.com/dotcommander/cryptobot/internal/chat"
	"github.com/dotcommander/cryptobot/internal/config"
	"github.com/dotcommander/cryptobot/internal/errs"
	"github.com/dotcommander/cryptobot/internal/present"
	"github.com/dotcommander/cryptobot/internal/workpool"
)

type chatState int

const (
	chatInputState chatState = iota
	chatWaitingState
)

type entryKind int

const (
	userEntry entryKind = iota
	botEntry
	errorEntry
	noteEntry
)

type entry struct {
	kind entryKind
	text string
}

// Chat is the Bubble Tea model for the interactive price chat.
type Chat struct {
	state    chatState
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	glam     *glamour.TermRenderer
	renderer *lipgloss.Renderer
	styles   present.Styles

	transcript []entry
	lastReply  string

	agent  agent.Agent
	pool   *workpool.Pool
	opts   []chat.Option
	cfg    *config.Config
	ctx    context.Context
	author string
	copyFn func(string) error

	// turn identifies the in-flight request; replies for older turns are
	// dropped.
	turn         int
	activeCancel context.CancelFunc

	width         int
	height        int
	initialPrompt string
	waitingSince  time.Time
}

// NewChat creates the Bubble Tea model for interactive chat. Each message is
// answered by a on pool.
func NewChat(
	ctx context.Context,
	r *lipgloss.Renderer,
	cfg *config.Config,
	a agent.Agent,
	pool *workpool.Pool,
	initialPrompt string,
	opts ...chat.Option,
) *Chat {
	gr, _ := present.NewMarkdownRenderer(cfg.WordWrap)
	styles := present.MakeStyles(r)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = styles.Prompt
	ti.Placeholder = "What's the price of bitcoin?"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Spinner))

	vp := viewport.New(0, 0)
	vp.GotoBottom()

	return &Chat{
		state:         chatInputState,
		input:         ti,
		viewport:      vp,
		spinner:       sp,
		glam:          gr,
		renderer:      r,
		styles:        styles,
		agent:         a,
		pool:          pool,
		opts:          opts,
		cfg:           cfg,
		ctx:           ctx,
		author:        "you",
		copyFn:        clipboard.WriteAll,
		initialPrompt: initialPrompt,
	}
}

// chatSubmitMsg is sent when the user presses Enter with non-empty input.
type chatSubmitMsg struct {
	prompt string
}

// chatReplyMsg carries the bot's reply for a turn.
type chatReplyMsg struct {
	turn  int
	reply string
}

// chatFailedMsg carries a hard failure for a turn.
type chatFailedMsg struct {
	turn int
	err  error
}

type chatWaitingTickMsg struct{}

// Init implements tea.Model.
func (c *Chat) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if c.initialPrompt != "" {
		cmds = append(cmds, func() tea.Msg {
			return chatSubmitMsg{prompt: c.initialPrompt}
		})
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (c *Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		c.resizeViewport()
		c.refreshViewport()
		return c, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if c.state == chatWaitingState {
				c.cancelTurn()
				c.addEntry(noteEntry, "Canceled.")
				return c, nil
			}
			return c, tea.Quit
		case "ctrl+y":
			c.copyLastReply()
			return c, nil
		case "enter":
			if c.state != chatInputState {
				break
			}
			text := strings.TrimSpace(c.input.Value())
			if text == "" {
				return c, nil
			}
			if text == "/exit" || text == "/quit" {
				return c, tea.Quit
			}
			c.input.SetValue("")
			return c, func() tea.Msg {
				return chatSubmitMsg{prompt: text}
			}
		}

	case chatSubmitMsg:
		c.turn++
		ctx, cancel := context.WithCancel(c.ctx)
		c.activeCancel = cancel
		c.waitingSince = time.Now()
		c.state = chatWaitingState
		c.addEntry(userEntry, msg.prompt)
		c.resizeViewport()
		cmds = append(cmds, c.askCmd(ctx, c.turn, msg.prompt), c.waitingTickCmd())
		if !c.cfg.Quiet {
			cmds = append(cmds, c.spinner.Tick)
		}
		return c, tea.Batch(cmds...)

	case chatReplyMsg:
		if msg.turn != c.turn || c.state != chatWaitingState {
			return c, nil
		}
		c.finishTurn()
		c.lastReply = msg.reply
		c.addEntry(botEntry, msg.reply)
		return c, nil

	case chatFailedMsg:
		if msg.turn != c.turn || c.state != chatWaitingState {
			return c, nil
		}
		c.finishTurn()
		zerolog.Ctx(c.ctx).Error().Err(msg.err).Msg("chat turn failed")
		c.addEntry(errorEntry, agent.Describe(msg.err).ReasonText())
		return c, nil

	case chatWaitingTickMsg:
		if c.state == chatWaitingState {
			return c, c.waitingTickCmd()
		}
		return c, nil

	case spinner.TickMsg:
		if c.state != chatWaitingState || c.cfg.Quiet {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd
	}

	if c.state == chatInputState {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View implements tea.Model.
func (c *Chat) View() string {
	if c.width == 0 || c.height == 0 {
		return ""
	}

	header := present.MakeGradientText(c.styles.AppName, agent.Name) + " " +
		c.styles.Comment.Render("ctrl+y copy · /exit quit")
	divider := c.styles.Comment.Render(strings.Repeat("─", max(c.width, 1)))

	footer := c.input.View()
	if c.state == chatWaitingState {
		footer = c.waitingStatus(time.Now())
	}
	return header + "\n" + c.viewport.View() + "\n" + divider + "\n" + footer
}

func (c *Chat) askCmd(ctx context.Context, turn int, prompt string) tea.Cmd {
	if c.pool == nil {
		return func() tea.Msg {
			return chatFailedMsg{turn: turn, err: errs.Error{Reason: "Agent is not available"}}
		}
	}
	sender := newChannelSender()
	h := chat.NewHandler(c.agent, c.pool, sender, c.opts...)
	msg := chat.NewMessage(c.author, prompt)
	return func() tea.Msg {
		if err := h.OnMessage(ctx, msg); err != nil {
			return chatFailedMsg{turn: turn, err: err}
		}
		reply, err := sender.receive(ctx)
		if err != nil {
			return chatFailedMsg{turn: turn, err: err}
		}
		return chatReplyMsg{turn: turn, reply: reply}
	}
}

func (c *Chat) cancelTurn() {
	c.turn++
	c.finishTurn()
}

func (c *Chat) finishTurn() {
	if c.activeCancel != nil {
		c.activeCancel()
		c.activeCancel = nil
	}
	c.waitingSince = time.Time{}
	c.state = chatInputState
	c.resizeViewport()
}

func (c *Chat) copyLastReply() {
	if c.lastReply == "" {
		return
	}
	if err := c.copyFn(c.lastReply); err != nil {
		c.addEntry(noteEntry, "Could not copy: "+err.Error())
		return
	}
	c.addEntry(noteEntry, "Copied last reply.")
}

func (c *Chat) addEntry(kind entryKind, text string) {
	c.transcript = append(c.transcript, entry{kind: kind, text: text})
	c.refreshViewport()
}

func (c *Chat) renderEntry(e entry) string {
	switch e.kind {
	case errorEntry:
		return c.styles.ErrorHeader.String() + " " + c.styles.ErrorDetails.Render(e.text) + "\n\n"
	case noteEntry:
		return c.styles.Comment.Render(e.text) + "\n\n"
	case userEntry:
		return c.renderMarkdown("> " + e.text)
	default:
		return c.renderMarkdown(e.text)
	}
}

func (c *Chat) renderMarkdown(md string) string {
	if c.glam == nil {
		return md + "\n\n"
	}
	out, err := c.glam.Render(md)
	if err != nil {
		return md + "\n\n"
	}
	return strings.TrimRightFunc(out, unicode.IsSpace) + "\n"
}

func (c *Chat) refreshViewport() {
	if len(c.transcript) == 0 {
		return
	}
	var b strings.Builder
	for _, e := range c.transcript {
		b.WriteString(c.renderEntry(e))
	}

	content := b.String()
	if c.width > 0 {
		content = c.renderer.NewStyle().MaxWidth(c.width).Render(content)
	}

	wasAtBottom := c.viewport.ScrollPercent() >= 1.0
	c.viewport.SetContent(content)
	if wasAtBottom {
		c.viewport.GotoBottom()
	}
}

func (c *Chat) waitingTickCmd() tea.Cmd {
	const waitingInterval = 200 * time.Millisecond
	return tea.Tick(waitingInterval, func(time.Time) tea.Msg {
		return chatWaitingTickMsg{}
	})
}

// header, divider and footer.
const chromeLines = 3

func (c *Chat) resizeViewport() {
	if c.width > 0 {
		c.viewport.Width = c.width
	}
	c.viewport.Height = max(c.height-chromeLines, 1)
}

func (c *Chat) waitingStatus(now time.Time) string {
	status := "Asking " + agent.Name + "..."
	if !c.waitingSince.IsZero() {
		elapsed := max(now.Sub(c.waitingSince), 0)
		status += " [" + formatElapsedClock(elapsed) + "]"
	}
	status = c.styles.Comment.Render(status)
	if c.cfg.Quiet {
		return status
	}
	return c.spinner.View() + " " + status
}

func formatElapsedClock(d time.Duration) string {
	totalSeconds := int(d / time.Second)
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
