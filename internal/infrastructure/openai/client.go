package openaiinfra

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-projects-nosql/internal/config"
	"github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a UI enhancement assistant that ONLY returns HTML/CSS code with no additional text or explanations."

// Client sends single-turn chat completions and returns the model's HTML.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient returns nil when no API key is configured.
func NewClient(cfg *config.Config) *Client {
	if cfg.OpenAIAPIKey == "" {
		slog.Warn("OPENAI_API_KEY not set, ai wireframes will use the fallback template")
		return nil
	}
	slog.Info("initializing openai client", "model", cfg.OpenAIModel)
	return &Client{
		client: openai.NewClient(cfg.OpenAIAPIKey),
		model:  cfg.OpenAIModel,
	}
}

// CompleteHTML asks the model for HTML/CSS and strips any markdown fences from the answer.
func (c *Client) CompleteHTML(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   2000,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errors.New("openai returned no content")
	}
	slog.Debug("received openai completion", "finish_reason", resp.Choices[0].FinishReason)
	return StripFences(resp.Choices[0].Message.Content), nil
}

var fenceReplacer = strings.NewReplacer("```html", "", "```HTML", "", "```css", "", "```CSS", "", "```", "")

// StripFences removes markdown code fences the model sometimes wraps around its answer.
func StripFences(s string) string {
	return strings.TrimSpace(fenceReplacer.Replace(strings.TrimSpace(s)))
}
