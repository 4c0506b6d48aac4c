package providers

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1/"

type OpenAIClient struct {
	client openai.Client
	model  string
}

// OpenAi creates a client for model. Unset options fall back to
// OPENAI_API_BASE_URL and OPENAI_API_KEY.
func OpenAi(ctx context.Context, model string, opts ...ProviderOption) *OpenAIClient {
	params := newProviderParams(opts)

	if params.BaseURL == "" {
		params.BaseURL = os.Getenv("OPENAI_API_BASE_URL")
		if params.BaseURL == "" {
			params.BaseURL = defaultOpenAIBaseURL
		}
	}
	if params.APIKey == "" {
		params.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	reqOpts := []option.RequestOption{option.WithBaseURL(params.BaseURL)}
	if params.APIKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(params.APIKey))
	}
	if params.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(params.Timeout))
	}
	if params.MaxRetries >= 0 {
		reqOpts = append(reqOpts, option.WithMaxRetries(params.MaxRetries))
	}

	return &OpenAIClient{
		client: openai.NewClient(reqOpts...),
		model:  model,
	}
}

func (c *OpenAIClient) Name() string {
	return "openai/" + c.model
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	chatCompletion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: c.model,
	})
	if err != nil {
		return "", fmt.Errorf("complete with %s: %w", c.Name(), err)
	}
	if len(chatCompletion.Choices) == 0 {
		return "", fmt.Errorf("complete with %s: no choices returned", c.Name())
	}
	return chatCompletion.Choices[0].Message.Content, nil
}
