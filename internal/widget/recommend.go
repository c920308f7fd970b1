package widget

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pders01/crossover/internal/api"
	"github.com/pders01/crossover/internal/catalog"
)

// FetchRecommendationsFor shows the loading skeleton immediately and returns
// the request for id, routed by the active mode with the current filters.
func (w *Widget) FetchRecommendationsFor(id string) tea.Cmd {
	mode := w.state.Mode
	w.setCards(catalog.Skeleton(mode, w.opts.SkeletonCards, w.opts.Copy))
	w.state.Loading = true

	w.recommendSeq++
	seq := w.recommendSeq
	q := api.RecommendQuery{
		Mode:    mode,
		ID:      id,
		Filters: w.state.Filters,
	}
	w.log.Debugf("recommending %s for %s (adult=%t adaptations=%t)",
		mode, id, q.Filters.IncludeAdult, q.Filters.IncludeAdaptations)

	backend := w.backend
	return func() tea.Msg {
		ctx, cancel := w.requestContext()
		defer cancel()
		items, err := backend.Recommend(ctx, q)
		return recommendationsMsg{seq: seq, id: id, items: items, err: err}
	}
}

func (w *Widget) onRecommendations(msg recommendationsMsg) {
	if msg.seq != w.recommendSeq {
		w.log.Debugf("dropping stale recommendations for %s", msg.id)
		return
	}

	w.state.Loading = false
	if msg.err != nil {
		// Skeleton stays up; the next selection or toggle retries.
		w.log.Errorf("recommendations for %s failed: %v", msg.id, msg.err)
		w.err = msg.err
		return
	}

	w.err = nil
	w.setCards(catalog.NewCards(msg.items))
}
