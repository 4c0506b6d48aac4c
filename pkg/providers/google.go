package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"google.golang.org/genai"
)

const geminiRetryDelay = 500 * time.Millisecond

type GeminiClient struct {
	client     *genai.Client
	model      string
	maxRetries int
	retryDelay time.Duration
}

// Gemini creates a Gemini API client for model. The key falls back to
// GEMINI_API_KEY.
func Gemini(ctx context.Context, model string, opts ...ProviderOption) (*GeminiClient, error) {
	params := newProviderParams(opts)

	apiKey := params.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w: set GEMINI_API_KEY", ErrMissingAPIKey)
	}

	httpOptions := genai.HTTPOptions{BaseURL: params.BaseURL}
	if params.Timeout > 0 {
		timeout := params.Timeout
		httpOptions.Timeout = &timeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: httpOptions,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	maxRetries := params.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &GeminiClient{
		client:     client,
		model:      model,
		maxRetries: maxRetries,
		retryDelay: geminiRetryDelay,
	}, nil
}

func (c *GeminiClient) Name() string {
	return "gemini/" + c.model
}

// Complete retries failures the service may recover from (429, 5xx and
// transport errors) up to maxRetries times, doubling the delay each time.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	delay := c.retryDelay
	for attempt := 0; ; attempt++ {
		result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
		if err == nil {
			return result.Text(), nil
		}
		if attempt >= c.maxRetries || !retryable(ctx, err) {
			return "", fmt.Errorf("complete with %s: %w", c.Name(), err)
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("complete with %s: %w", c.Name(), ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return true
}
