package tui

import (
	"github.com/pders01/crossover/internal/catalog"
)

type View int

const (
	ViewSearch View = iota
	ViewDetail
)

// focusArea is which pane of the search view receives keys.
type focusArea int

const (
	focusInput focusArea = iota
	focusCards
)

type cardItem struct {
	card catalog.Card
}

func (i cardItem) Title() string {
	if i.card.Placeholder {
		return PlaceholderStyle.Render(i.card.Title)
	}
	return truncateEnd(i.card.Title, maxTitleWidth)
}

func (i cardItem) Description() string {
	return i.card.Description
}

func (i cardItem) FilterValue() string { return i.card.Title }

type detailRenderedMsg struct {
	itemID  string
	content string
}

type statusMsg struct {
	text string
	kind StatusKind
}

type errorMsg struct {
	err error
}
