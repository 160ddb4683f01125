package augment

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"

	"github.com/sells-group/finqa-cli/internal/resilience"
	"github.com/sells-group/finqa-cli/pkg/anthropic"
	"github.com/sells-group/finqa-cli/pkg/openrouter"
)

// OpenRouterChat adapts the OpenRouter client to the ChatClient interface.
type OpenRouterChat struct {
	Client      openrouter.Client
	Model       string
	Temperature float64
}

// Complete issues one chat completion. A 429 response surfaces as a typed
// quota error so the gateway can trip its latch.
func (c *OpenRouterChat) Complete(ctx context.Context, system, user string) (string, error) {
	temp := c.Temperature
	resp, err := c.Client.ChatCompletion(ctx, openrouter.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openrouter.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: &temp,
	})
	if err != nil {
		var se *openrouter.StatusError
		if errors.As(err, &se) && resilience.IsQuotaHTTPStatus(se.StatusCode) {
			return "", resilience.NewQuotaError(err, se.StatusCode)
		}
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", eris.New("augment: openrouter response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// AnthropicChat adapts the Anthropic client to the ChatClient interface.
type AnthropicChat struct {
	Client      anthropic.Client
	Model       string
	Temperature float64
	MaxTokens   int64
}

// Complete issues one message creation. SDK rate-limit errors are recognized
// by the gateway's quota classification.
func (c *AnthropicChat) Complete(ctx context.Context, system, user string) (string, error) {
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	temp := c.Temperature
	resp, err := c.Client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       c.Model,
		MaxTokens:   maxTokens,
		System:      system,
		Messages:    []anthropic.Message{{Role: "user", Content: user}},
		Temperature: &temp,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
