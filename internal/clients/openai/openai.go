package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/kanweiwei/cai/internal/clients/common"
	"github.com/kanweiwei/cai/internal/config"
	"github.com/rs/zerolog/log"
	goopenai "github.com/sashabaranov/go-openai"
)

const userAgent = "cai"

// Client talks to any OpenAI-compatible chat completion endpoint.
type Client struct {
	client *goopenai.Client
	model  string
}

func NewClient(cfg config.LLMConfig) *Client {
	clientConfig := common.DefaultConfig()
	clientConfig.Headers["User-Agent"] = userAgent

	oc := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = common.NewHTTPClient(clientConfig)

	return &Client{
		client: goopenai.NewClientWithConfig(oc),
		model:  cfg.Model,
	}
}

// Complete sends a system and a user turn and returns the first choice.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: userPrompt},
		},
	}

	log.Debug().Str("model", c.model).Int("prompt_bytes", len(systemPrompt)+len(userPrompt)).Msg("Sending chat completion request")

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("API error: status=%d, type=%s: %s", apiErr.HTTPStatusCode, apiErr.Type, apiErr.Message)
		}
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	content := resp.Choices[0].Message.Content
	log.Debug().Int("bytes", len(content)).Msg("Received chat completion")
	if content == "" {
		return "", fmt.Errorf("empty content in response")
	}
	return content, nil
}
