package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pders01/crossover/internal/catalog"
)

// detailMarkdown renders a card as the markdown shown in the detail pane.
func detailMarkdown(card catalog.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", card.Title)
	fmt.Fprintf(&b, "*%s*\n\n", card.Description)
	if card.PreviewImage != "" {
		fmt.Fprintf(&b, "[Preview image](%s)\n\n", card.PreviewImage)
	}
	b.WriteString("---\n\n")
	if overview := strings.TrimSpace(card.Overview); overview != "" {
		b.WriteString(overview)
	} else {
		b.WriteString("_No overview available._")
	}
	b.WriteString("\n")
	return b.String()
}

func (a *App) openDetail(card catalog.Card) tea.Cmd {
	a.detail = &card
	a.view = ViewDetail
	a.viewport.SetContent(renderMuted("Rendering…"))
	return a.renderDetail(card)
}

func (a *App) renderDetail(card catalog.Card) tea.Cmd {
	md := detailMarkdown(card)
	r, err := a.getRenderer()
	return func() tea.Msg {
		if err != nil {
			return detailRenderedMsg{itemID: card.ItemID, content: "Error initializing renderer: " + err.Error()}
		}
		rendered, err := r.Render(md)
		if err != nil {
			return detailRenderedMsg{itemID: card.ItemID, content: md}
		}
		return detailRenderedMsg{itemID: card.ItemID, content: rendered}
	}
}
