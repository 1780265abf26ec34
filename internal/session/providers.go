package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flemzord/btw/pkg/chat"
)

var (
	// ErrUnknownProvider is returned when a provider token maps to no
	// registered constructor.
	ErrUnknownProvider = errors.New("unknown chat provider")

	// ErrNoProvider is returned when resolution reaches the hardcoded
	// default and no constructors are registered at all.
	ErrNoProvider = errors.New("no chat providers registered")
)

// constructorPrefix is applied to provider tokens that are not already
// full constructor names: "anthropic" dispatches to "chat_anthropic".
const constructorPrefix = "chat_"

// Constructor builds a chat client from named options. Unknown option keys
// are an error, not silently dropped.
type Constructor func(opts map[string]any) (chat.Client, error)

// Providers is an explicit finite mapping from constructor name to
// constructor. Dispatch is keyed by data (the front matter provider token),
// normalised by lower-casing and prefixing.
type Providers map[string]Constructor

// Build constructs a client for the given provider token with the given
// constructor options.
func (p Providers) Build(token string, opts map[string]any) (chat.Client, error) {
	if len(p) == 0 {
		return nil, ErrNoProvider
	}

	name := strings.ToLower(strings.TrimSpace(token))
	if !strings.HasPrefix(name, constructorPrefix) {
		name = constructorPrefix + name
	}

	ctor, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, token)
	}
	return ctor(opts)
}
