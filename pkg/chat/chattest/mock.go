// Package chattest provides a fake chat client for tests.
package chattest

import (
	"context"
	"slices"

	"github.com/flemzord/btw/pkg/chat"
)

// Client is a configurable in-memory chat.Client.
type Client struct {
	ProviderName string
	ModelName    string
	Prompt       string
	Defs         []chat.ToolDef

	// Reply is returned by Complete. CompleteErr takes precedence.
	Reply       string
	CompleteErr error

	// Sent records every Complete input.
	Sent []string

	// Clones counts Clone calls.
	Clones int
}

var _ chat.Client = (*Client)(nil)

func (c *Client) Provider() string { return c.ProviderName }
func (c *Client) Model() string    { return c.ModelName }

func (c *Client) SystemPrompt() string          { return c.Prompt }
func (c *Client) SetSystemPrompt(prompt string) { c.Prompt = prompt }

func (c *Client) Tools() []chat.ToolDef        { return c.Defs }
func (c *Client) SetTools(defs []chat.ToolDef) { c.Defs = defs }

func (c *Client) Complete(_ context.Context, text string) (string, error) {
	c.Sent = append(c.Sent, text)
	if c.CompleteErr != nil {
		return "", c.CompleteErr
	}
	return c.Reply, nil
}

func (c *Client) Clone() chat.Client {
	c.Clones++
	clone := *c
	clone.Defs = slices.Clone(c.Defs)
	clone.Sent = nil
	return &clone
}
