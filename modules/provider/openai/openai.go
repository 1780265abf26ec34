// Package openai provides the chat_openai client constructor, bridging
// btw sessions to the OpenAI Chat Completions API. A base_url option
// points the client at any OpenAI-compatible endpoint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	goopenai "github.com/meguminnnnnnnnn/go-openai"

	"github.com/flemzord/btw/pkg/chat"
)

// Name is the constructor token this package registers under.
const Name = "chat_openai"

// defaultModel is the model used when none is specified.
const defaultModel = "gpt-4o"

const envAPIKey = "OPENAI_API_KEY"

// ErrMissingAPIKey reports that neither the api_key option nor the
// OPENAI_API_KEY environment variable provides a key.
var ErrMissingAPIKey = errors.New("openai: missing API key")

// ErrEmptyResponse reports a completion with no choices.
var ErrEmptyResponse = errors.New("openai: empty response")

var knownOptions = []string{"api_key", "model", "base_url"}

// New builds an OpenAI-backed chat client from constructor options.
// Option keys outside api_key, model and base_url are rejected.
func New(opts map[string]any) (chat.Client, error) {
	for key := range opts {
		if !slices.Contains(knownOptions, key) {
			return nil, fmt.Errorf("openai: unknown option %q", key)
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

	baseURL, err := stringOption(opts, "base_url")
	if err != nil {
		return nil, err
	}

	config := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &client{
		api:   goopenai.NewClientWithConfig(config),
		model: model,
	}, nil
}

func stringOption(opts map[string]any, key string) (string, error) {
	raw, ok := opts[key]
	if !ok {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("openai: option %s must be a string, got %T", key, raw)
	}
	return s, nil
}

type client struct {
	api   *goopenai.Client
	model string

	prompt string
	tools  []chat.ToolDef
}

func (c *client) Provider() string { return "openai" }

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

// Complete sends a single user message and returns the first choice's
// message content.
func (c *client) Complete(ctx context.Context, text string) (string, error) {
	messages := []goopenai.ChatCompletionMessage{
		{Role: goopenai.ChatMessageRoleUser, Content: text},
	}
	if c.prompt != "" {
		messages = append([]goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: c.prompt},
		}, messages...)
	}

	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("openai: create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
