package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dotcommander/cryptobot/internal/config"
	"github.com/dotcommander/cryptobot/internal/fantasybridge"
	"github.com/dotcommander/cryptobot/internal/present"
)

var helpText = map[string]string{
	"api":           "OpenAI compatible API name, or one of the dedicated providers",
	"base-url":      "Inference API base URL",
	"model":         "Model to use",
	"http-proxy":    "HTTP proxy to use for inference requests",
	"price-url":     "Price index base URL",
	"price-timeout": "Timeout for one price lookup (0 waits forever)",
	"run-timeout":   "Timeout for one agent run (0 waits forever)",
	"workers":       "Maximum number of concurrent agent runs",
	"word-wrap":     "Wrap formatted output at specific width",
	"quiet":         "Quiet mode (hide the spinner)",
	"raw":           "Print the reply without markdown rendering",
	"log-level":     "Log level (debug, info, warn, error)",
	"log-file":      "Write logs to this file",
	"listen":        "Address to serve the HTTP API on",
	"help":          "Show help and exit",
}

func flagDesc(name string) string {
	return present.StdoutStyles().FlagDesc.Render(helpText[name])
}

func initRootFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&cfg.API, "api", "a", cfg.API, flagDesc("api"))
	flags.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, flagDesc("base-url"))
	flags.StringVarP(&cfg.Model, "model", "m", cfg.Model, flagDesc("model"))
	flags.StringVarP(&cfg.HTTPProxy, "http-proxy", "x", cfg.HTTPProxy, flagDesc("http-proxy"))
	flags.StringVar(&cfg.PriceURL, "price-url", cfg.PriceURL, flagDesc("price-url"))
	flags.DurationVar(&cfg.PriceTimeout, "price-timeout", cfg.PriceTimeout, flagDesc("price-timeout"))
	flags.DurationVar(&cfg.RunTimeout, "run-timeout", cfg.RunTimeout, flagDesc("run-timeout"))
	flags.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, flagDesc("workers"))
	flags.IntVar(&cfg.WordWrap, "word-wrap", cfg.WordWrap, flagDesc("word-wrap"))
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, flagDesc("quiet"))
	flags.BoolVarP(&cfg.Raw, "raw", "r", cfg.Raw, flagDesc("raw"))
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, flagDesc("log-level"))
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, flagDesc("log-file"))
	flags.SortFlags = false

	_ = cmd.RegisterFlagCompletionFunc("api", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return append([]string{"gemini"}, fantasybridge.KnownAPIs()...), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})
}
