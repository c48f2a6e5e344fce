package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotcommander/cryptobot/internal/present"
)

func newPriceCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "price <coin>",
		Short: "Look up a price directly, without the agent",
		Long:  "Look up the USD price of a coin by its CoinGecko id. No inference API key is needed.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rt.cfgErr != nil {
				return rt.cfgErr
			}
			name := strings.Join(args, "-")
			sentence := newPriceTool(&rt.cfg).Lookup(cmd.Context(), name)

			out := cmd.OutOrStdout()
			if out == os.Stdout && present.IsOutputTTY() && !rt.cfg.Raw {
				present.PrintConfirmation(out, "PRICE", sentence)
				return nil
			}
			_, err := fmt.Fprintln(out, sentence)
			return err
		},
	}
}
