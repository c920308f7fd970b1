package tui

import "github.com/muesli/reflow/truncate"

// maxTitleWidth bounds card titles in the list.
const maxTitleWidth = 72

// truncateEnd shortens s to at most limit cells, ending in an ellipsis when
// cut. Width is measured in terminal cells, so wide runes and ANSI styling
// are handled.
func truncateEnd(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(limit), "…")
}
