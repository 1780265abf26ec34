// Package files provides the sandboxed file tools: listing, reading, and
// writing files under the working directory. Every path argument is
// relative and validated against the sandbox before any I/O.
package files

import (
	"errors"

	"github.com/flemzord/btw/internal/tool"
)

var (
	// ErrNotTextFile is returned when read_file targets a binary-classified
	// file.
	ErrNotTextFile = errors.New("not a text file")

	// ErrNotRegularFile is returned when an operation targets a directory
	// or other non-regular file where a regular file is required.
	ErrNotRegularFile = errors.New("not a regular file")
)

// Descriptors returns the files-group tool descriptors rooted at root.
func Descriptors(root string) []tool.Descriptor {
	return []tool.Descriptor{
		{
			Name:  "list_files",
			Group: "files",
			Hints: tool.Hints{
				Title:      "List files",
				ReadOnly:   tool.Bool(true),
				Idempotent: tool.Bool(true),
				OpenWorld:  tool.Bool(false),
			},
			New: func() (tool.Tool, bool) {
				return &listTool{root: root}, true
			},
		},
		{
			Name:  "read_file",
			Group: "files",
			Hints: tool.Hints{
				Title:      "Read file",
				ReadOnly:   tool.Bool(true),
				Idempotent: tool.Bool(true),
				OpenWorld:  tool.Bool(false),
			},
			New: func() (tool.Tool, bool) {
				return &readTool{root: root}, true
			},
		},
		{
			Name:  "write_file",
			Group: "files",
			Hints: tool.Hints{
				Title:      "Write file",
				ReadOnly:   tool.Bool(false),
				Idempotent: tool.Bool(false),
				OpenWorld:  tool.Bool(false),
			},
			New: func() (tool.Tool, bool) {
				return &writeTool{root: root}, true
			},
		},
	}
}
