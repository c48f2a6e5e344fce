package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dotcommander/cryptobot/internal/present"
	"github.com/dotcommander/cryptobot/internal/server"
)

func newServeCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat handler over HTTP",
		Long:  "Serve the chat handler as a JSON API. POST {\"message\": \"...\"} to /api/v1/chat.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rt.cfgErr != nil {
				return rt.cfgErr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ctx, a, err := bootstrap(ctx, &rt.cfg, logConsole, os.Stderr)
			if err != nil {
				return err
			}
			defer a.Close()

			srv := server.New(a.agent, a.pool, rt.cfg.Listen, a.logger, a.chatOptions(&rt.cfg)...)
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVarP(&rt.cfg.Listen, "listen", "l", rt.cfg.Listen, present.StdoutStyles().FlagDesc.Render(helpText["listen"]))
	return cmd
}
