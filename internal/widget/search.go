package widget

import (
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pders01/crossover/internal/api"
	"github.com/pders01/crossover/internal/catalog"
)

// OnQueryInput records the new input text. Text shorter than the minimum
// length closes the dropdown without a request; anything longer
// (re)schedules the debounced search.
func (w *Widget) OnQueryInput(text string) tea.Cmd {
	w.state.Query = text

	if utf8.RuneCountInString(text) < w.opts.MinQueryLength {
		w.debounce.Cancel()
		w.searchSeq++
		w.state.Dropdown.Open = false
		return nil
	}

	seq := w.debounce.Schedule()
	return w.tick(w.opts.Debounce, func(time.Time) tea.Msg {
		return debounceFiredMsg{seq: seq, query: text}
	})
}

func (w *Widget) onDebounceFired(msg debounceFiredMsg) tea.Cmd {
	if !w.debounce.Fire(msg.seq) {
		return nil
	}

	w.searchSeq++
	seq := w.searchSeq
	q := api.SearchQuery{
		Query:   msg.query,
		Type:    w.state.Mode.Complement(),
		Filters: w.state.Filters,
	}
	w.log.Debugf("searching %s for %q", q.Type, q.Query)

	backend := w.backend
	return func() tea.Msg {
		ctx, cancel := w.requestContext()
		defer cancel()
		items, err := backend.Search(ctx, q)
		return searchResultMsg{seq: seq, items: items, err: err}
	}
}

func (w *Widget) onSearchResult(msg searchResultMsg) {
	if msg.seq != w.searchSeq {
		w.log.Debugf("dropping stale search response %d (latest %d)", msg.seq, w.searchSeq)
		return
	}

	if msg.err != nil {
		w.log.Errorf("search failed: %v", msg.err)
		w.err = msg.err
		w.state.Dropdown = Dropdown{}
		return
	}

	w.err = nil
	w.state.Dropdown = Dropdown{
		Open:  len(msg.items) > 0,
		Items: msg.items,
	}
}

// OnFocus reopens the dropdown if it still holds results and cancels a
// pending blur close.
func (w *Widget) OnFocus() {
	w.blur.Cancel()
	w.state.Dropdown.Open = len(w.state.Dropdown.Items) > 0
}

// OnBlur closes the dropdown after the grace delay, leaving room for a
// click on a dropdown row to land first.
func (w *Widget) OnBlur() tea.Cmd {
	seq := w.blur.Schedule()
	return w.tick(w.opts.BlurGrace, func(time.Time) tea.Msg {
		return blurElapsedMsg{seq: seq}
	})
}

// CloseDropdown hides the dropdown and keeps its items.
func (w *Widget) CloseDropdown() {
	w.state.Dropdown.Open = false
}

// OnItemSelect makes item the selection and fetches recommendations for it.
func (w *Widget) OnItemSelect(item catalog.Item) tea.Cmd {
	w.debounce.Cancel()
	w.searchSeq++

	selected := item
	w.state.Selected = &selected
	w.state.Query = item.Title
	w.state.Dropdown.Open = false

	return w.FetchRecommendationsFor(item.ID.String())
}

// MoveCursor moves the dropdown highlight by delta, clamped to the list.
func (w *Widget) MoveCursor(delta int) {
	d := &w.state.Dropdown
	if !d.Open || len(d.Items) == 0 {
		return
	}
	d.Cursor += delta
	if d.Cursor < 0 {
		d.Cursor = 0
	}
	if d.Cursor >= len(d.Items) {
		d.Cursor = len(d.Items) - 1
	}
}

// SelectHighlighted selects the item under the cursor of an open dropdown.
func (w *Widget) SelectHighlighted() tea.Cmd {
	if !w.state.Dropdown.Open {
		return nil
	}
	item, ok := w.state.Dropdown.Highlighted()
	if !ok {
		return nil
	}
	return w.OnItemSelect(item)
}

// SelectAt selects the i-th dropdown row, as a pointer click does.
func (w *Widget) SelectAt(i int) tea.Cmd {
	items := w.state.Dropdown.Items
	if !w.state.Dropdown.Open || i < 0 || i >= len(items) {
		return nil
	}
	w.state.Dropdown.Cursor = i
	return w.OnItemSelect(items[i])
}
