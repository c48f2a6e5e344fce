package config

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/caarlos0/go-shellwords"

	"github.com/dotcommander/cryptobot/internal/errs"
)

// ResolveAPIKey fills APIKey when it is not set explicitly.
//
// Lookup order: CRYPTOBOT_API_KEY, the variable named by APIKeyEnv (unless a
// key command is configured), the key command, and finally GEMINI_API_KEY.
// A missing key is not an error here; Validate reports it.
func (c *Config) ResolveAPIKey(ctx context.Context) error {
	key := c.APIKey
	if key == "" && c.APIKeyEnv != "" && c.APIKeyCmd == "" {
		key = os.Getenv(c.APIKeyEnv)
	}
	if key == "" && c.APIKeyCmd != "" {
		out, err := runKeyCmd(ctx, c.APIKeyCmd)
		if err != nil {
			return err
		}
		key = out
	}
	if key == "" {
		key = os.Getenv(DefaultAPIKeyEnv)
	}
	c.APIKey = strings.TrimSpace(key)
	return nil
}

func runKeyCmd(ctx context.Context, command string) (string, error) {
	args, err := shellwords.Parse(command)
	if err != nil {
		return "", errs.Error{Err: err, Reason: "Failed to parse api-key-cmd"}
	}
	if len(args) == 0 {
		return "", errs.Error{Reason: "api-key-cmd is empty"}
	}
	// #nosec G204 -- api-key-cmd is explicitly configured by the local user.
	out, err := exec.CommandContext(ctx, args[0], args[1:]...).Output()
	if err != nil {
		return "", errs.Error{Err: err, Reason: "Cannot exec api-key-cmd"}
	}
	return strings.TrimSpace(string(out)), nil
}
