package cmd

import (
	"fmt"

	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/spf13/cobra"
)

func newManCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:                   "man",
		Short:                 "Generates manpages",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Hidden:                true,
		Args:                  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manPage, err := mcobra.NewManPage(1, root)
			if err != nil {
				return fmt.Errorf("build man page: %w", err)
			}
			manPage = manPage.WithSection("Environment", envHelp)
			if _, err := fmt.Fprint(cmd.OutOrStdout(), manPage.Build(roff.NewDocument())); err != nil {
				return fmt.Errorf("write man page: %w", err)
			}
			return nil
		},
	}
}

const envHelp = `GEMINI_API_KEY holds the inference credential.
CRYPTOBOT_API, CRYPTOBOT_BASE_URL and CRYPTOBOT_MODEL select the inference endpoint.
CRYPTOBOT_PRICE_URL points at a CoinGecko compatible price index.
CRYPTOBOT_WORKERS bounds concurrent agent runs.
Settings may also be placed in a .env file in the working directory.`
