package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"

	"github.com/dotcommander/cryptobot/internal/config"
	"github.com/dotcommander/cryptobot/internal/errs"
	"github.com/dotcommander/cryptobot/internal/logging"
	"github.com/dotcommander/cryptobot/internal/present"
)

const envTemplate = `# cryptobot settings, loaded before the process environment.
# GEMINI_API_KEY=
# CRYPTOBOT_API=gemini
# CRYPTOBOT_BASE_URL=https://generativelanguage.googleapis.com/v1beta/openai
# CRYPTOBOT_MODEL=gemini-1.5-flash
# CRYPTOBOT_PRICE_URL=https://api.coingecko.com/api/v3
# CRYPTOBOT_WORKERS=4
# CRYPTOBOT_LOG_LEVEL=info
`

func newConfigCmd(rt *runtime) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings",
		Long:  "Print the effective settings as YAML. The API key is masked.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rt.cfgErr != nil {
				return rt.cfgErr
			}
			if err := rt.cfg.ResolveAPIKey(cmd.Context()); err != nil {
				return err
			}
			out, err := rt.cfg.YAML()
			if err != nil {
				return errs.Wrap(err, "Could not render settings.")
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Open the .env settings file in $EDITOR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Allow editing even when config parsing failed.
			return editSettings(cmd, &rt.cfg)
		},
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "dirs",
		Short: "Print the settings and log file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := rt.cfg.LogFile
			if path == "" {
				path = logging.DefaultFile()
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Settings: %s\nLog file: %s\n", settingsPath(&rt.cfg), path)
			return err
		},
	})

	return configCmd
}

// settingsPath is the first .env file Load reads.
func settingsPath(cfg *config.Config) string {
	if len(cfg.EnvFiles) > 0 && cfg.EnvFiles[0] != "" {
		return cfg.EnvFiles[0]
	}
	return ".env"
}

func editSettings(cmd *cobra.Command, cfg *config.Config) error {
	path := settingsPath(cfg)
	if err := writeEnvTemplate(path); err != nil {
		return errs.Error{Err: err, Reason: "Could not create your settings file."}
	}

	appName := filepath.Base(os.Args[0])
	c, err := editor.Cmd(appName, path)
	if err != nil {
		return errs.Error{Err: err, Reason: "Could not edit your settings file."}
	}
	c.Stdin = cmd.InOrStdin()
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	if err := c.Run(); err != nil {
		return errs.Error{Err: err, Reason: fmt.Sprintf(
			"Missing %s.",
			present.StderrStyles().InlineCode.Render("$EDITOR"),
		)}
	}

	if !cfg.Quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), "Wrote settings file to:", path)
	}
	return nil
}

// writeEnvTemplate creates path with commented defaults. An existing file is
// left alone.
func writeEnvTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(envTemplate), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
