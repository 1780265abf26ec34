package tool

import "errors"

var (
	// ErrEmptyToolName is returned when a descriptor name is empty.
	ErrEmptyToolName = errors.New("tool name must not be empty")

	// ErrDuplicateTool is returned when registering a descriptor with a name
	// that already exists in the registry.
	ErrDuplicateTool = errors.New("tool already registered")

	// ErrUnknownGroup is returned when a descriptor's group is not one of
	// the fixed group set.
	ErrUnknownGroup = errors.New("unknown tool group")

	// ErrNilFactory is returned when a descriptor has no factory.
	ErrNilFactory = errors.New("tool factory must not be nil")

	// ErrInvalidSelection is returned when a selection value has a shape
	// that cannot be interpreted as a tool selection.
	ErrInvalidSelection = errors.New("invalid tool selection")

	// ErrInvalidArgs is returned when tool arguments fail schema validation.
	ErrInvalidArgs = errors.New("invalid tool arguments")
)
