package widget

import tea "github.com/charmbracelet/bubbletea"

// ToggleAdult flips the adult-content filter.
func (w *Widget) ToggleAdult() tea.Cmd {
	w.state.Filters.IncludeAdult = !w.state.Filters.IncludeAdult
	return w.OnToggleChange()
}

// ToggleAdaptations flips the include-adaptations filter.
func (w *Widget) ToggleAdaptations() tea.Cmd {
	w.state.Filters.IncludeAdaptations = !w.state.Filters.IncludeAdaptations
	return w.OnToggleChange()
}

// OnToggleChange refetches recommendations for the current selection with
// the new filters. Without a selection it does nothing.
func (w *Widget) OnToggleChange() tea.Cmd {
	if w.state.Selected == nil {
		return nil
	}
	return w.FetchRecommendationsFor(w.state.Selected.ID.String())
}
