// Package anthropic provides the chat_anthropic client constructor,
// bridging btw sessions to the Anthropic Messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	goanthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/flemzord/btw/pkg/chat"
)

// Name is the constructor token this package registers under.
const Name = "chat_anthropic"

// defaultModel is the model used when none is specified.
// Pinned to a dated release for reproducibility; update when a newer
// stable version is validated.
const defaultModel = "claude-sonnet-4-5-20250929"

// defaultMaxTokens bounds the completion when the option is absent.
const defaultMaxTokens = 4096

const envAPIKey = "ANTHROPIC_API_KEY"

// ErrMissingAPIKey reports that neither the api_key option nor the
// ANTHROPIC_API_KEY environment variable provides a key.
var ErrMissingAPIKey = errors.New("anthropic: missing API key")

var knownOptions = []string{"api_key", "model", "max_tokens"}

// New builds an Anthropic-backed chat client from constructor options.
// Option keys outside api_key, model and max_tokens are rejected.
func New(opts map[string]any) (chat.Client, error) {
	for key := range opts {
		if !slices.Contains(knownOptions, key) {
			return nil, fmt.Errorf("anthropic: unknown option %q", key)
		}
	}

	apiKey, err := stringOption(opts, "api_key")
	if err != nil {
		return nil, err
	}
	if apiKey == "" {
		apiKey = os.Getenv(envAPIKey)
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	model, err := stringOption(opts, "model")
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = defaultModel
	}

	maxTokens := defaultMaxTokens
	if raw, ok := opts["max_tokens"]; ok {
		switch v := raw.(type) {
		case int:
			maxTokens = v
		case float64:
			maxTokens = int(v)
		default:
			return nil, fmt.Errorf("anthropic: option max_tokens must be an integer, got %T", raw)
		}
		if maxTokens <= 0 {
			return nil, fmt.Errorf("anthropic: option max_tokens must be positive, got %d", maxTokens)
		}
	}

	return &client{
		api:       goanthropic.NewClient(apiKey),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

func stringOption(opts map[string]any, key string) (string, error) {
	raw, ok := opts[key]
	if !ok {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("anthropic: option %s must be a string, got %T", key, raw)
	}
	return s, nil
}

type client struct {
	api       *goanthropic.Client
	model     string
	maxTokens int

	prompt string
	tools  []chat.ToolDef
}

func (c *client) Provider() string { return "anthropic" }

func (c *client) Model() string { return c.model }

func (c *client) SystemPrompt() string { return c.prompt }

func (c *client) SetSystemPrompt(prompt string) { c.prompt = prompt }

func (c *client) Tools() []chat.ToolDef { return slices.Clone(c.tools) }

func (c *client) SetTools(defs []chat.ToolDef) { c.tools = slices.Clone(defs) }

func (c *client) Clone() chat.Client {
	dup := *c
	dup.tools = slices.Clone(c.tools)
	return &dup
}

// Complete sends a single user message and returns the concatenated
// text blocks of the response.
func (c *client) Complete(ctx context.Context, text string) (string, error) {
	req := goanthropic.MessagesRequest{
		Model:     goanthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []goanthropic.Message{
			{
				Role:    goanthropic.RoleUser,
				Content: []goanthropic.MessageContent{goanthropic.NewTextMessageContent(text)},
			},
		},
	}
	if c.prompt != "" {
		req.System = c.prompt
	}

	resp, err := c.api.CreateMessages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("anthropic: create messages: %w", err)
	}

	var out string
	for _, block := range resp.Content {
		if block.Type == goanthropic.MessagesContentTypeText && block.Text != nil {
			out += *block.Text
		}
	}
	return out, nil
}
