package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dotcommander/cryptobot/internal/agent"
	"github.com/dotcommander/cryptobot/internal/chat"
	"github.com/dotcommander/cryptobot/internal/errs"
	"github.com/dotcommander/cryptobot/internal/present"
	"github.com/dotcommander/cryptobot/internal/tui"
)

func newAskCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and print the reply",
		Long:  "Ask a single question and print the reply. Without arguments the question is read from stdin.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rt.cfgErr != nil {
				return rt.cfgErr
			}
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				in, err := readStdin()
				if err != nil {
					return errs.Wrap(err, "Unable to read stdin.")
				}
				question = in
			}
			if question == "" {
				return errs.Error{Reason: "No question given. Try " + present.StderrStyles().InlineCode.Render(`cryptobot ask "price of bitcoin"`) + "."}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return rt.runAsk(ctx, cmd.OutOrStdout(), question)
		},
	}
}

// runAsk answers one question. On a terminal a spinner runs on stderr while
// the reply is rendered as markdown; otherwise the raw reply is written.
func (rt *runtime) runAsk(ctx context.Context, out io.Writer, question string) error {
	interactive := !rt.cfg.Raw && out == os.Stdout && present.IsOutputTTY() && present.IsErrorTTY()
	mode := logConsole
	if interactive {
		mode = logFile
	}

	ctx, a, err := bootstrap(ctx, &rt.cfg, mode, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	if interactive {
		return rt.askTTY(ctx, out, a, question)
	}

	sender := chat.SenderFunc(func(_ context.Context, reply string) error {
		_, err := fmt.Fprintln(out, reply)
		return err
	})
	h := chat.NewHandler(a.agent, a.pool, sender, a.chatOptions(&rt.cfg)...)
	if err := h.OnMessage(ctx, chat.NewMessage("cli", question)); err != nil {
		return agent.Describe(err)
	}
	return nil
}

func (rt *runtime) askTTY(ctx context.Context, out io.Writer, a *app, question string) error {
	model := tui.NewAsk(ctx, present.StderrRenderer(), &rt.cfg, a.agent, a.pool, question, a.chatOptions(&rt.cfg)...)
	opts := []tea.ProgramOption{tea.WithOutput(os.Stderr), tea.WithContext(ctx)}
	if !present.IsInputTTY() {
		opts = append(opts, tea.WithInput(nil))
	}
	m, err := tea.NewProgram(model, opts...).Run()
	if err != nil && ctx.Err() != nil {
		return agent.Describe(ctx.Err())
	}
	if err != nil {
		return errs.Wrap(err, "Couldn't start the spinner.")
	}
	ask := m.(*tui.Ask)
	if ask.Error != nil {
		return *ask.Error
	}
	if ask.Output == "" {
		return nil
	}
	rendered, err := present.RenderMarkdownForTTY(ask.Output, rt.cfg.WordWrap)
	if err != nil {
		rendered = ask.Output
	}
	_, err = fmt.Fprintln(out, rendered)
	return err
}
