// Package providers loads hosted language models by name and exposes them
// behind a single completion interface.
package providers

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrMissingAPIKey is returned when a provider needs a key that is not set.
var ErrMissingAPIKey = errors.New("missing API key")

// Model completes prompts with one hosted model.
type Model interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

type ProviderParams struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int // negative leaves the client default
}

type ProviderOption func(*ProviderParams)

func WithBaseURL(baseURL string) ProviderOption {
	return func(p *ProviderParams) {
		p.BaseURL = baseURL
	}
}

func WithAPIKey(apiKey string) ProviderOption {
	return func(p *ProviderParams) {
		p.APIKey = apiKey
	}
}

func WithTimeout(timeout time.Duration) ProviderOption {
	return func(p *ProviderParams) {
		p.Timeout = timeout
	}
}

// WithMaxRetries sets how many times a failed completion is retried. OpenAI
// hands it to the client; Gemini retries 429 and 5xx responses itself.
func WithMaxRetries(retries int) ProviderOption {
	return func(p *ProviderParams) {
		p.MaxRetries = retries
	}
}

func newProviderParams(opts []ProviderOption) *ProviderParams {
	params := &ProviderParams{MaxRetries: -1}
	for _, opt := range opts {
		opt(params)
	}
	return params
}

// Load returns the model named by name. "gemini/<model>" selects Gemini,
// "openai/<model>" selects OpenAI, and any other name is passed unchanged to
// the OpenAI-compatible endpoint.
func Load(ctx context.Context, name string, opts ...ProviderOption) (Model, error) {
	provider, model, found := strings.Cut(name, "/")
	if found {
		switch strings.ToLower(provider) {
		case "gemini", "google":
			return Gemini(ctx, model, opts...)
		case "openai":
			return OpenAi(ctx, model, opts...), nil
		}
	}
	return OpenAi(ctx, name, opts...), nil
}
