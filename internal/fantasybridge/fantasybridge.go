// Package fantasybridge builds the inference client: a charm.land/fantasy
// provider bound to one endpoint and credential.
package fantasybridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"charm.land/fantasy"

	"github.com/dotcommander/cryptobot/internal/config"
	"github.com/dotcommander/cryptobot/internal/errs"
)

// Config represents provider configuration used by the fantasy bridge.
type Config struct {
	API        string
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// FromConfig derives the provider configuration from the application config.
func FromConfig(cfg *config.Config) (Config, error) {
	pc := Config{API: cfg.API, BaseURL: cfg.BaseURL, APIKey: cfg.APIKey}
	if err := ApplyProxyConfig(cfg.HTTPProxy, &pc); err != nil {
		return Config{}, err
	}
	return pc, nil
}

// Client is a handle bound to one inference endpoint. It is stateless beyond
// its connection configuration and safe for concurrent use.
type Client struct {
	provider fantasy.Provider
	config   Config
}

// New creates a new Fantasy-backed client.
func New(cfg Config) (*Client, error) {
	if cfg.API == "" {
		return nil, errs.Error{Reason: "missing fantasy provider configuration"}
	}
	provider, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{provider: provider, config: cfg}, nil
}

// API returns the configured API name.
func (c *Client) API() string {
	return c.config.API
}

// LanguageModel resolves a model on the bound endpoint.
func (c *Client) LanguageModel(ctx context.Context, model string) (fantasy.LanguageModel, error) {
	if model == "" {
		return nil, errs.Error{Reason: fmt.Sprintf("No model configured for the %s API.", c.config.API)}
	}
	lm, err := c.provider.LanguageModel(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("fantasy language model: %w", err)
	}
	return lm, nil
}

// ApplyProxyConfig configures the provider HTTP client to use an HTTP proxy.
func ApplyProxyConfig(httpProxy string, providerCfg *Config) error {
	if httpProxy == "" {
		return nil
	}
	proxyURL, err := url.Parse(httpProxy)
	if err != nil {
		return errs.Error{Err: err, Reason: "There was an error parsing your proxy URL."}
	}
	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return errs.Error{Err: errors.New("default transport is not *http.Transport"), Reason: "Could not configure proxy."}
	}
	tr := base.Clone()
	tr.Proxy = http.ProxyURL(proxyURL)
	tr.DialContext = (&net.Dialer{Timeout: 30 * time.Second, KeepAlive: 30 * time.Second}).DialContext
	tr.TLSHandshakeTimeout = 10 * time.Second
	tr.ResponseHeaderTimeout = 30 * time.Second
	tr.IdleConnTimeout = 90 * time.Second
	tr.ExpectContinueTimeout = 1 * time.Second
	providerCfg.HTTPClient = &http.Client{Transport: tr}
	return nil
}
