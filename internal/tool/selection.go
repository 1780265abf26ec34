package tool

import (
	"fmt"
	"sort"
	"strings"
)

type selectionKind int

const (
	selectAll selectionKind = iota
	selectNone
	selectTokens
)

// Selection describes which registered tools a session activates: everything,
// nothing, or a set of name/group tokens. The zero value selects ALL.
type Selection struct {
	kind   selectionKind
	tokens map[string]struct{}
}

// SelectAll returns a selection matching every registered tool.
func SelectAll() Selection { return Selection{kind: selectAll} }

// SelectNone returns a selection matching no tools.
func SelectNone() Selection { return Selection{kind: selectNone} }

// SelectTokens returns a selection matching the given name or group tokens.
// An empty token list behaves as NONE.
func SelectTokens(tokens ...string) Selection {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			set[tok] = struct{}{}
		}
	}
	if len(set) == 0 {
		return SelectNone()
	}
	return Selection{kind: selectTokens, tokens: set}
}

// IsAll reports whether the selection matches every tool.
func (s Selection) IsAll() bool { return s.kind == selectAll }

// IsNone reports whether the selection matches no tools.
func (s Selection) IsNone() bool { return s.kind == selectNone }

// Has reports whether the token set contains tok. Always false for ALL
// and NONE selections.
func (s Selection) Has(tok string) bool {
	_, ok := s.tokens[tok]
	return ok
}

// String renders the selection for logs and the context command.
func (s Selection) String() string {
	switch s.kind {
	case selectNone:
		return "none"
	case selectTokens:
		toks := make([]string, 0, len(s.tokens))
		for tok := range s.tokens {
			toks = append(toks, tok)
		}
		sort.Strings(toks)
		return strings.Join(toks, ",")
	default:
		return "all"
	}
}

// ParseSelection interprets a dynamically typed selection value, as found in
// project-file front matter or YAML config. Accepted shapes:
//
//	false, "none"        -> NONE
//	true, "all"          -> ALL
//	"files"              -> single token
//	["files", "session"] -> token set
//
// Strings are compared case-insensitively for the "all"/"none" spellings.
// Any other shape returns ErrInvalidSelection.
func ParseSelection(v any) (Selection, error) {
	switch val := v.(type) {
	case nil:
		return SelectAll(), nil
	case bool:
		if val {
			return SelectAll(), nil
		}
		return SelectNone(), nil
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "none", "false":
			return SelectNone(), nil
		case "all", "true", "":
			return SelectAll(), nil
		default:
			return SelectTokens(val), nil
		}
	case []string:
		return SelectTokens(val...), nil
	case []any:
		tokens := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return Selection{}, fmt.Errorf("%w: list element %T is not a string", ErrInvalidSelection, item)
			}
			tokens = append(tokens, s)
		}
		return SelectTokens(tokens...), nil
	default:
		return Selection{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidSelection, v)
	}
}
