package tui

import (
	"fmt"
	"strings"
)

// Canonical short status messages used across the app.
const (
	MsgLoadingRecommendations = "Loading recommendations…"
	MsgNoPreview              = "No preview image"
	MsgPlaceholderCard        = "Still loading, pick a card once results arrive"
)

func MsgCopiedTitle(title string) string {
	return fmt.Sprintf("Copied '%s'", strings.TrimSpace(title))
}

func MsgOpeningPreview(title string) string {
	return fmt.Sprintf("Opening preview of '%s'…", strings.TrimSpace(title))
}

func MsgRecommendationsCount(n int) string {
	if n == 1 {
		return "1 recommendation"
	}
	return fmt.Sprintf("%d recommendations", n)
}
