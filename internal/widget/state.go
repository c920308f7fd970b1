package widget

import "github.com/pders01/crossover/internal/catalog"

// Dropdown is the autocomplete list under the query input.
type Dropdown struct {
	Open   bool
	Items  []catalog.Item
	Cursor int
}

// Highlighted returns the item under the cursor.
func (d Dropdown) Highlighted() (catalog.Item, bool) {
	if d.Cursor < 0 || d.Cursor >= len(d.Items) {
		return catalog.Item{}, false
	}
	return d.Items[d.Cursor], true
}

// ViewState is everything the presentation layer renders. Slices are
// replaced, never mutated in place, so a copy returned by State is safe to
// hold across updates.
type ViewState struct {
	Mode     catalog.Mode
	Selected *catalog.Item
	Query    string

	Label       string
	Placeholder string
	Attribution string

	Filters  catalog.Filters
	Dropdown Dropdown
	Cards    []catalog.Card
	Loading  bool
}
