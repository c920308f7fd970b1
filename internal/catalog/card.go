package catalog

import "strings"

const ratingStar = "⭐"

// Card is one rendered recommendation.
type Card struct {
	ItemID       string
	Title        string
	Description  string
	PreviewImage string
	Overview     string
	Placeholder  bool
}

// NewCard renders item as a recommendation card.
func NewCard(item Item) Card {
	return Card{
		ItemID:       item.ID.String(),
		Title:        item.Title,
		Description:  Describe(item),
		PreviewImage: item.PreviewImage,
		Overview:     item.Overview,
	}
}

// Describe renders the card description line.
//
// Items with authors print their rating as-is; items without authors print
// half of it. The two backends rate on different scales (Google Books 0-5,
// TMDB 0-10) and the halving is kept exactly as it has always rendered.
func Describe(item Item) string {
	if item.HasAuthors() {
		return describeCredited(item.Authors, item.Year.String(), FormatNumber(item.Rating))
	}
	return item.Year.String() + " | " + FormatNumber(item.Rating/2) + " " + ratingStar
}

func describeCredited(credits []string, year, rating string) string {
	return "By " + strings.Join(credits, ", ") + " | " + year + " | " + rating + " " + ratingStar
}

// Skeleton returns n loading placeholder cards for mode.
func Skeleton(mode Mode, n int, c *Copy) []Card {
	tc := c.For(mode)
	card := Card{
		Title:       tc.SkeletonTitle,
		Description: describeCredited([]string{tc.SkeletonCredit}, c.Skeleton.Year, c.Skeleton.Rating),
		Placeholder: true,
	}
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = card
	}
	return cards
}

// NewCards renders items in order.
func NewCards(items []Item) []Card {
	cards := make([]Card, 0, len(items))
	for _, item := range items {
		cards = append(cards, NewCard(item))
	}
	return cards
}
