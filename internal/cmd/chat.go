package cmd

import (
	"context"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dotcommander/cryptobot/internal/errs"
	"github.com/dotcommander/cryptobot/internal/present"
	"github.com/dotcommander/cryptobot/internal/tui"
)

func (rt *runtime) runChat(ctx context.Context, args []string) error {
	initialPrompt := strings.TrimSpace(strings.Join(args, " "))

	ctx, a, err := bootstrap(ctx, &rt.cfg, logFile, os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Info().Msg("chat session started")
	chat := tui.NewChat(ctx, present.StderrRenderer(), &rt.cfg, a.agent, a.pool, initialPrompt, a.chatOptions(&rt.cfg)...)

	p := tea.NewProgram(chat, tea.WithAltScreen(), tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return errs.Wrap(err, "Couldn't start chat program.")
	}
	a.logger.Info().Msg("chat session ended")
	return nil
}
