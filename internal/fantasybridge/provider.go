package fantasybridge

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/fantasy"
	"charm.land/fantasy/providers/anthropic"
	"charm.land/fantasy/providers/azure"
	"charm.land/fantasy/providers/bedrock"
	fgoogle "charm.land/fantasy/providers/google"
	fopenai "charm.land/fantasy/providers/openai"
	fopenaicompat "charm.land/fantasy/providers/openaicompat"
	"charm.land/fantasy/providers/openrouter"
	"charm.land/fantasy/providers/vercel"
)

type providerFactory func(Config) (fantasy.Provider, error)

// Named providers. Any other API name is treated as an OpenAI-compatible
// endpoint, which is how the Gemini openai endpoint is reached by default.
var providers = map[string]providerFactory{
	"openai":     newOpenAI,
	"anthropic":  newAnthropic,
	"google":     newGoogle,
	"azure":      newAzure,
	"azure-ad":   newAzure,
	"openrouter": newOpenRouter,
	"vercel":     newVercel,
	"bedrock":    newBedrock,
}

// KnownAPIs lists the API names with a dedicated provider.
func KnownAPIs() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newProvider(cfg Config) (fantasy.Provider, error) {
	factory, ok := providers[cfg.API]
	if !ok {
		factory = newOpenAICompat
	}
	provider, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("new fantasy %s provider: %w", cfg.API, err)
	}
	return provider, nil
}

func newOpenAICompat(cfg Config) (fantasy.Provider, error) {
	opts := []fopenaicompat.Option{fopenaicompat.WithName(cfg.API)}
	if cfg.APIKey != "" {
		opts = append(opts, fopenaicompat.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, fopenaicompat.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, fopenaicompat.WithHTTPClient(cfg.HTTPClient))
	}
	return fopenaicompat.New(opts...)
}

func newOpenAI(cfg Config) (fantasy.Provider, error) {
	opts := []fopenai.Option{fopenai.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, fopenai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, fopenai.WithHTTPClient(cfg.HTTPClient))
	}
	return fopenai.New(opts...)
}

func newAnthropic(cfg Config) (fantasy.Provider, error) {
	opts := []anthropic.Option{anthropic.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(strings.TrimSuffix(cfg.BaseURL, "/v1")))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, anthropic.WithHTTPClient(cfg.HTTPClient))
	}
	return anthropic.New(opts...)
}

// newGoogle talks to Gemini natively rather than through its openai endpoint.
func newGoogle(cfg Config) (fantasy.Provider, error) {
	opts := []fgoogle.Option{fgoogle.WithGeminiAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" && !strings.HasSuffix(cfg.BaseURL, "/openai") {
		opts = append(opts, fgoogle.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, fgoogle.WithHTTPClient(cfg.HTTPClient))
	}
	return fgoogle.New(opts...)
}

func newAzure(cfg Config) (fantasy.Provider, error) {
	opts := []azure.Option{azure.WithAPIKey(cfg.APIKey), azure.WithBaseURL(cfg.BaseURL)}
	if cfg.HTTPClient != nil {
		opts = append(opts, azure.WithHTTPClient(cfg.HTTPClient))
	}
	return azure.New(opts...)
}

func newOpenRouter(cfg Config) (fantasy.Provider, error) {
	opts := []openrouter.Option{openrouter.WithAPIKey(cfg.APIKey)}
	if cfg.HTTPClient != nil {
		opts = append(opts, openrouter.WithHTTPClient(cfg.HTTPClient))
	}
	return openrouter.New(opts...)
}

func newVercel(cfg Config) (fantasy.Provider, error) {
	opts := []vercel.Option{vercel.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, vercel.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, vercel.WithHTTPClient(cfg.HTTPClient))
	}
	return vercel.New(opts...)
}

func newBedrock(cfg Config) (fantasy.Provider, error) {
	opts := []bedrock.Option{}
	if cfg.APIKey != "" {
		opts = append(opts, bedrock.WithAPIKey(cfg.APIKey))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, bedrock.WithHTTPClient(cfg.HTTPClient))
	}
	return bedrock.New(opts...)
}
