// Package env provides tools describing the host environment: platform
// facts and environment variables, with secret values redacted.
package env

import (
	"github.com/flemzord/btw/internal/tool"
)

// Descriptors returns the env-group tool descriptors.
func Descriptors() []tool.Descriptor {
	return []tool.Descriptor{
		{
			Name:  "platform",
			Group: "env",
			Hints: tool.Hints{
				Title:      "Platform info",
				ReadOnly:   tool.Bool(true),
				Idempotent: tool.Bool(true),
				OpenWorld:  tool.Bool(false),
			},
			New: func() (tool.Tool, bool) {
				return &platformTool{}, true
			},
		},
		{
			Name:  "env_vars",
			Group: "env",
			Hints: tool.Hints{
				Title:      "Environment variables",
				ReadOnly:   tool.Bool(true),
				Idempotent: tool.Bool(true),
				OpenWorld:  tool.Bool(false),
			},
			New: func() (tool.Tool, bool) {
				return &envVarsTool{}, true
			},
		},
	}
}
