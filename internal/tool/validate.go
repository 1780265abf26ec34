package tool

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateArgs checks JSON-encoded arguments against the tool's parameter
// schema before execution. Schema compilation failures and invalid documents
// both surface as ErrInvalidArgs so the caller can report them as a
// tool-call failure rather than a crash.
func ValidateArgs(t Tool, args []byte) error {
	schema := t.Schema()
	if len(schema) == 0 {
		return nil
	}
	if len(args) == 0 {
		args = []byte(`{}`)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(args)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidArgs, t.Name(), err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s: %s", ErrInvalidArgs, t.Name(), strings.Join(msgs, "; "))
	}

	return nil
}
