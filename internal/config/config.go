// Package config builds the process-wide configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dotcommander/cryptobot/internal/errs"
)

// EnvPrefix is prepended to every setting read from the environment.
const EnvPrefix = "CRYPTOBOT_"

const (
	// DefaultAPIKeyEnv is the well-known variable holding the credential.
	DefaultAPIKeyEnv = "GEMINI_API_KEY"
	apiKeyDocsURL    = "https://aistudio.google.com/app/apikey"
)

// Settings holds configuration loaded from the environment (and .env files).
type Settings struct {
	API       string `yaml:"api" env:"API" envDefault:"gemini"`
	BaseURL   string `yaml:"base-url" env:"BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai"`
	Model     string `yaml:"model" env:"MODEL" envDefault:"gemini-1.5-flash"`
	APIKey    string `yaml:"api-key" env:"API_KEY"`
	APIKeyEnv string `yaml:"api-key-env" env:"API_KEY_ENV" envDefault:"GEMINI_API_KEY"`
	APIKeyCmd string `yaml:"api-key-cmd" env:"API_KEY_CMD"`
	HTTPProxy string `yaml:"http-proxy" env:"HTTP_PROXY"`

	PriceURL     string        `yaml:"price-url" env:"PRICE_URL" envDefault:"https://api.coingecko.com/api/v3"`
	PriceTimeout time.Duration `yaml:"price-timeout" env:"PRICE_TIMEOUT"`
	RunTimeout   time.Duration `yaml:"run-timeout" env:"RUN_TIMEOUT"`
	Workers      int           `yaml:"workers" env:"WORKERS" envDefault:"4"`

	Listen   string `yaml:"listen" env:"LISTEN" envDefault:":8000"`
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `yaml:"log-file" env:"LOG_FILE"`
	WordWrap int    `yaml:"word-wrap" env:"WORD_WRAP" envDefault:"80"`
	Quiet    bool   `yaml:"quiet" env:"QUIET"`
}

// Runtime holds CLI-only options that are never read from the environment.
type Runtime struct {
	EnvFiles []string
	Raw      bool
}

// Config is the application configuration (settings + runtime-only options).
//
// It is built once at startup and handed by pointer to every component that
// needs it; nothing reads the environment after Load returns.
type Config struct {
	Settings `yaml:",inline"`
	Runtime  `yaml:"-" env:"-"`
}

// Load reads .env files (missing files are ignored) and then the process
// environment.
func Load(envFiles ...string) (Config, error) {
	if err := loadDotenv(envFiles...); err != nil {
		return Config{}, errs.Error{Err: err, Reason: "Could not read .env file."}
	}
	c, err := Parse(nil)
	if err != nil {
		return c, err
	}
	c.EnvFiles = envFiles
	return c, nil
}

// Parse builds a Config from environ. A nil environ means the process
// environment.
func Parse(environ map[string]string) (Config, error) {
	var c Config
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return c, errs.Error{Err: err, Reason: "Could not parse environment into settings."}
	}
	return c, nil
}

// Default returns the default configuration values.
func Default() Config {
	c, _ := Parse(map[string]string{})
	return c
}

func loadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Validate checks the configuration before any client is built.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errs.Error{
			Reason: fmt.Sprintf("%s required; set %s or %sAPI_KEY_CMD.", c.keyEnv(), c.keyEnv(), EnvPrefix),
			Err:    errs.UserErrorf("You can grab one at %s", apiKeyDocsURL),
		}
	}
	if c.API == "" || c.Model == "" {
		return errs.Error{Reason: "Both an API and a model must be configured."}
	}
	if c.Workers < 1 {
		return errs.Error{Reason: fmt.Sprintf("%sWORKERS must be at least 1, got %d.", EnvPrefix, c.Workers)}
	}
	for name, raw := range map[string]string{"base URL": c.BaseURL, "price URL": c.PriceURL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errs.Error{Err: err, Reason: fmt.Sprintf("Invalid %s %q.", name, raw)}
		}
	}
	return nil
}

func (c *Config) keyEnv() string {
	if c.APIKeyEnv != "" {
		return c.APIKeyEnv
	}
	return DefaultAPIKeyEnv
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.APIKey != "" {
		c.APIKey = mask(c.APIKey)
	}
	return c
}

// YAML renders the redacted configuration.
func (c Config) YAML() (string, error) {
	bts, err := yaml.Marshal(c.Redacted())
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(bts), nil
}

func mask(s string) string {
	const visible = 4
	if len(s) <= visible*2 {
		return strings.Repeat("*", len(s))
	}
	return s[:visible] + strings.Repeat("*", len(s)-visible*2) + s[len(s)-visible:]
}
