// Package widget is the interaction state machine of the search-and-recommend
// widget. Handlers run on the bubbletea event loop, mutate the ViewState
// synchronously and return commands for timers and backend requests; the
// results come back through Update.
package widget

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pders01/crossover/internal/api"
	"github.com/pders01/crossover/internal/catalog"
	"github.com/pders01/crossover/internal/config"
	"github.com/pders01/crossover/internal/debuglog"
)

// Searcher runs autocomplete lookups.
type Searcher interface {
	Search(ctx context.Context, q api.SearchQuery) ([]catalog.Item, error)
}

// Recommender fetches recommendations for a selected item.
type Recommender interface {
	Recommend(ctx context.Context, q api.RecommendQuery) ([]catalog.Item, error)
}

// Backend is both halves of the service. *api.Client satisfies it.
type Backend interface {
	Searcher
	Recommender
}

// Options tunes timing and presentation.
type Options struct {
	Debounce       time.Duration
	BlurGrace      time.Duration
	MinQueryLength int
	SkeletonCards  int
	RequestTimeout time.Duration
	Copy           *catalog.Copy
}

// OptionsFromConfig maps the loaded config onto widget options.
func OptionsFromConfig(cfg *config.Config, c *catalog.Copy) Options {
	return Options{
		Debounce:       cfg.Search.Debounce,
		BlurGrace:      cfg.Search.BlurGrace,
		MinQueryLength: cfg.Search.MinQueryLength,
		SkeletonCards:  cfg.Search.SkeletonCards,
		RequestTimeout: cfg.API.HTTPTimeout,
		Copy:           c,
	}
}

type tickFunc func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

// Widget owns the ViewState, the debounce and blur Tasks and the request
// sequence numbers that discard stale responses.
type Widget struct {
	backend Backend
	opts    Options
	state   ViewState

	debounce     Task
	blur         Task
	searchSeq    uint64
	recommendSeq uint64

	err      error
	revision uint64

	tick tickFunc
	log  *debuglog.FieldLogger
}

// New builds a widget in mode with the given filters. The dropdown starts
// closed and no cards are shown.
func New(backend Backend, opts Options, mode catalog.Mode, filters catalog.Filters) *Widget {
	if opts.Copy == nil {
		opts.Copy = catalog.DefaultCopy()
	}
	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = 2
	}
	if opts.SkeletonCards <= 0 {
		opts.SkeletonCards = 4
	}

	w := &Widget{
		backend: backend,
		opts:    opts,
		tick:    tea.Tick,
		log:     debuglog.WithFields(map[string]interface{}{"component": "widget"}),
	}
	w.state.Filters = filters
	w.SetMode(mode)
	return w
}

// State returns a snapshot of the view state.
func (w *Widget) State() ViewState {
	return w.state
}

// Err returns the last backend failure, cleared by the next success.
func (w *Widget) Err() error {
	return w.err
}

// Copy returns the UI copy the widget renders labels from.
func (w *Widget) Copy() *catalog.Copy {
	return w.opts.Copy
}

// CardsRevision changes every time the card list is replaced.
func (w *Widget) CardsRevision() uint64 {
	return w.revision
}

// Update routes timer and backend results back into the state machine.
// Messages it does not own are ignored.
func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case debounceFiredMsg:
		return w.onDebounceFired(msg)
	case blurElapsedMsg:
		if w.blur.Fire(msg.seq) {
			w.CloseDropdown()
		}
	case searchResultMsg:
		w.onSearchResult(msg)
	case recommendationsMsg:
		w.onRecommendations(msg)
	}
	return nil
}

func (w *Widget) setCards(cards []catalog.Card) {
	w.state.Cards = cards
	w.revision++
}

func (w *Widget) requestContext() (context.Context, context.CancelFunc) {
	if w.opts.RequestTimeout > 0 {
		return context.WithTimeout(context.Background(), w.opts.RequestTimeout)
	}
	return context.WithCancel(context.Background())
}
