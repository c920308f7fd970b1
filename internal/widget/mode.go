package widget

import "github.com/pders01/crossover/internal/catalog"

// SetMode switches the active mode and resets everything tied to the
// previous one: query, selection, dropdown, cards and any pending or
// in-flight work. The input copy switches to the complementary type, which
// is what the user now searches for.
func (w *Widget) SetMode(mode catalog.Mode) {
	tc := w.opts.Copy.For(mode.Complement())

	w.state.Mode = mode
	w.state.Label = tc.Label
	w.state.Placeholder = tc.Placeholder
	w.state.Attribution = tc.Attribution

	w.state.Query = ""
	w.state.Selected = nil
	w.state.Dropdown = Dropdown{}
	w.state.Loading = false
	w.setCards(nil)
	w.err = nil

	w.debounce.Cancel()
	w.blur.Cancel()
	w.searchSeq++
	w.recommendSeq++

	w.log.Debugf("mode set to %s", mode)
}

// ToggleMode flips between Book and Movie.
func (w *Widget) ToggleMode() {
	w.SetMode(w.state.Mode.Complement())
}
