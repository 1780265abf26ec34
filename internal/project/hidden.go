package project

import "strings"

// Hidden-region marker lines. Comparison is whitespace-trimmed and
// case-sensitive; the markers must otherwise match exactly.
const (
	hideMarker   = "<!-- HIDE -->"
	unhideMarker = "<!-- /HIDE -->"
)

// FilterHidden removes operator-marked hidden regions from project body
// lines before they reach a system prompt. A HIDE marker opens a region and
// an UNHIDE marker closes the most recently opened one; regions nest, so a
// line is kept only when every opened region around it has been closed.
// An UNHIDE with no open region is a no-op. Marker lines themselves never
// appear in the output. A HIDE with no matching UNHIDE hides everything
// through end of input.
//
// Pure function: no I/O, retained lines keep their order.
func FilterHidden(lines []string) []string {
	out := make([]string, 0, len(lines))
	depth := 0

	for _, line := range lines {
		switch strings.TrimSpace(line) {
		case hideMarker:
			depth++
		case unhideMarker:
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				out = append(out, line)
			}
		}
	}

	return out
}
