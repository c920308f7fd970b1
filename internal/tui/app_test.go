package tui

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/crossover/internal/api"
	"github.com/pders01/crossover/internal/catalog"
	"github.com/pders01/crossover/internal/config"
	"github.com/pders01/crossover/internal/media"
	"github.com/pders01/crossover/internal/widget"
)

type fakeBackend struct {
	mu         sync.Mutex
	searches   []api.SearchQuery
	recommends []api.RecommendQuery

	searchItems    []catalog.Item
	recommendItems []catalog.Item
	recommendErr   error
}

func (f *fakeBackend) Search(_ context.Context, q api.SearchQuery) ([]catalog.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, q)
	return f.searchItems, nil
}

func (f *fakeBackend) Recommend(_ context.Context, q api.RecommendQuery) ([]catalog.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recommends = append(f.recommends, q)
	if f.recommendErr != nil {
		return nil, fmt.Errorf("%w: %w", api.ErrRecommendationRequestFailed, f.recommendErr)
	}
	return f.recommendItems, nil
}

func newGaBackend() *fakeBackend {
	return &fakeBackend{
		searchItems: []catalog.Item{
			{ID: "m1", Title: "Gattaca", Year: "1997", Rating: 7.5},
			{ID: "m2", Title: "Gandhi", Year: "1982", Rating: 8},
			{ID: "m3", Title: "Gladiator", Year: "2000", Rating: 8.5},
		},
		recommendItems: []catalog.Item{
			{ID: "b1", Title: "Freedom at Midnight", Authors: []string{"Larry Collins"}, Year: "1975", Rating: 4.4, PreviewImage: "https://books.google.com/cover.jpg"},
			{ID: "b2", Title: "Gandhi the Man", Authors: []string{"Eknath Easwaran"}, Year: "1972", Rating: 4.1},
		},
	}
}

func newTestApp(t *testing.T, backend *fakeBackend) *App {
	t.Helper()
	cfg := config.TestConfig()
	w := widget.New(backend, widget.OptionsFromConfig(cfg, catalog.DefaultCopy()), catalog.Book, catalog.Filters{})
	app := NewApp(cfg, w, media.NewLauncher(cfg))
	app.queryInput.Cursor.SetMode(cursor.CursorStatic)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return app
}

// pump runs cmds and feeds the app every message produced by this module
// until no work is left. Framework messages such as spinner ticks are
// dropped, and commands that take longer than the wait are abandoned.
func pump(app *App, cmds ...tea.Cmd) {
	const wait = 250 * time.Millisecond

	queue := cmds
	for round := 0; round < 20 && len(queue) > 0; round++ {
		results := make(chan tea.Msg, 64)
		n := 0
		for _, cmd := range queue {
			if cmd == nil {
				continue
			}
			n++
			go func(cmd tea.Cmd) { results <- cmd() }(cmd)
		}
		queue = nil

		deadline := time.After(wait)
	collect:
		for i := 0; i < n; i++ {
			select {
			case msg := <-results:
				queue = append(queue, dispatch(app, msg)...)
			case <-deadline:
				break collect
			}
		}
	}
}

func dispatch(app *App, msg tea.Msg) []tea.Cmd {
	if batch, ok := msg.(tea.BatchMsg); ok {
		return batch
	}
	if msg == nil || !ownMessage(msg) {
		return nil
	}
	_, cmd := app.Update(msg)
	return []tea.Cmd{cmd}
}

func ownMessage(msg tea.Msg) bool {
	t := reflect.TypeOf(msg)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return strings.HasPrefix(t.PkgPath(), "github.com/pders01/crossover/")
}

func typeText(app *App, text string) []tea.Cmd {
	var cmds []tea.Cmd
	for _, r := range text {
		_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		cmds = append(cmds, cmd)
	}
	return cmds
}

func press(app *App, t tea.KeyType) tea.Cmd {
	_, cmd := app.Update(tea.KeyMsg{Type: t})
	return cmd
}

func openDropdown(t *testing.T, app *App) {
	t.Helper()
	pump(app, typeText(app, "Ga")...)
	require.True(t, app.widget.State().Dropdown.Open, "dropdown should open after typing")
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t, &fakeBackend{})

	assert.Equal(t, ViewSearch, app.view)
	assert.Equal(t, focusInput, app.focus)
	assert.True(t, app.queryInput.Focused())
	assert.Equal(t, `Enter a favorite movie, e.g. "Seven Samurai"`, app.queryInput.Placeholder)
	assert.Empty(t, app.cardList.Items())
}

func TestTypingOpensDropdown(t *testing.T) {
	backend := newGaBackend()
	app := newTestApp(t, backend)

	openDropdown(t, app)

	require.Len(t, backend.searches, 1)
	assert.Equal(t, api.SearchQuery{Query: "Ga", Type: catalog.Movie}, backend.searches[0])

	view := app.View()
	for _, title := range []string{"Gattaca", "Gandhi", "Gladiator"} {
		assert.Contains(t, view, title)
	}
}

func TestEnterSelectsHighlighted(t *testing.T) {
	backend := newGaBackend()
	app := newTestApp(t, backend)
	openDropdown(t, app)

	press(app, tea.KeyDown)
	assert.Equal(t, 1, app.widget.State().Dropdown.Cursor)

	cmd := press(app, tea.KeyEnter)
	assert.Equal(t, focusCards, app.focus)
	assert.Equal(t, "Gandhi", app.queryInput.Value())
	assert.Len(t, app.cardList.Items(), 4, "skeleton shows while loading")
	assert.True(t, app.spinning)

	pump(app, cmd)

	require.Len(t, backend.recommends, 1)
	assert.Equal(t, api.RecommendQuery{Mode: catalog.Book, ID: "m2"}, backend.recommends[0])
	require.Len(t, app.cardList.Items(), 2)
	assert.Equal(t, "Freedom at Midnight", app.cardList.Items()[0].(cardItem).card.Title)
	assert.Equal(t, MsgRecommendationsCount(2), app.status)
	assert.False(t, app.spinning)
}

func TestEscClosesDropdown(t *testing.T) {
	app := newTestApp(t, newGaBackend())
	openDropdown(t, app)

	press(app, tea.KeyEsc)
	assert.False(t, app.widget.State().Dropdown.Open)
	assert.Equal(t, "Ga", app.queryInput.Value())
}

func TestMouseClickSelectsDropdownRow(t *testing.T) {
	backend := newGaBackend()
	app := newTestApp(t, backend)
	openDropdown(t, app)
	app.View()

	_, cmd := app.Update(tea.MouseMsg{
		X:      4,
		Y:      app.dropdownTop + 2,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	assert.Equal(t, "Gladiator", app.widget.State().Query)

	pump(app, cmd)
	require.Len(t, backend.recommends, 1)
	assert.Equal(t, "m3", backend.recommends[0].ID)
}

func TestToggleModeKey(t *testing.T) {
	backend := newGaBackend()
	app := newTestApp(t, backend)
	openDropdown(t, app)

	press(app, tea.KeyCtrlT)

	s := app.widget.State()
	assert.Equal(t, catalog.Movie, s.Mode)
	assert.False(t, s.Dropdown.Open)
	assert.Empty(t, app.queryInput.Value())
	assert.Equal(t, `Enter a favorite book, e.g. "The Great Gatsby"`, app.queryInput.Placeholder)
	assert.Equal(t, focusInput, app.focus)
}

func TestFilterToggleKeys(t *testing.T) {
	backend := newGaBackend()
	app := newTestApp(t, backend)
	openDropdown(t, app)
	pump(app, press(app, tea.KeyEnter))
	require.Len(t, backend.recommends, 1)

	pump(app, press(app, tea.KeyCtrlA))
	assert.True(t, app.widget.State().Filters.IncludeAdult)
	require.Len(t, backend.recommends, 2)
	assert.True(t, backend.recommends[1].Filters.IncludeAdult)

	pump(app, press(app, tea.KeyCtrlD))
	assert.True(t, app.widget.State().Filters.IncludeAdaptations)
	require.Len(t, backend.recommends, 3)
}

func TestCardDetailRoundTrip(t *testing.T) {
	app := newTestApp(t, newGaBackend())
	openDropdown(t, app)
	pump(app, press(app, tea.KeyEnter))
	require.Equal(t, focusCards, app.focus)

	cmd := press(app, tea.KeyEnter)
	require.Equal(t, ViewDetail, app.view)
	require.NotNil(t, app.detail)
	assert.Equal(t, "Freedom at Midnight", app.detail.Title)

	pump(app, cmd)
	assert.Contains(t, app.viewport.View(), "Freedom at Midnight")

	press(app, tea.KeyEsc)
	assert.Equal(t, ViewSearch, app.view)
	assert.Nil(t, app.detail)
}

func TestPlaceholderCardsAreInert(t *testing.T) {
	app := newTestApp(t, newGaBackend())
	openDropdown(t, app)

	// Select without delivering the recommendations.
	press(app, tea.KeyEnter)
	require.True(t, app.widget.State().Loading)

	press(app, tea.KeyEnter)
	assert.Equal(t, ViewSearch, app.view)
	assert.Equal(t, MsgPlaceholderCard, app.status)
}

func TestFocusMovesBetweenInputAndCards(t *testing.T) {
	app := newTestApp(t, newGaBackend())
	openDropdown(t, app)
	pump(app, press(app, tea.KeyEnter))
	require.Equal(t, focusCards, app.focus)
	assert.False(t, app.queryInput.Focused())

	press(app, tea.KeyTab)
	assert.Equal(t, focusInput, app.focus)
	assert.True(t, app.queryInput.Focused())

	press(app, tea.KeyTab)
	assert.Equal(t, focusCards, app.focus)

	press(app, tea.KeyUp)
	assert.Equal(t, focusInput, app.focus, "up on the first card returns to the input")
}

func TestCopyTitle(t *testing.T) {
	app := newTestApp(t, newGaBackend())
	var copied string
	app.copyText = func(s string) error {
		copied = s
		return nil
	}
	openDropdown(t, app)
	pump(app, press(app, tea.KeyEnter))

	pump(app, press(app, tea.KeyCtrlY))
	assert.Equal(t, "Freedom at Midnight", copied)
	assert.Equal(t, MsgCopiedTitle("Freedom at Midnight"), app.status)
}

func TestCopyTitleFailure(t *testing.T) {
	app := newTestApp(t, newGaBackend())
	app.copyText = func(string) error { return errors.New("no clipboard") }
	openDropdown(t, app)
	pump(app, press(app, tea.KeyEnter))

	pump(app, press(app, tea.KeyCtrlY))
	require.Error(t, app.err)
	var actionErr *cardActionError
	require.ErrorAs(t, app.err, &actionErr)
	assert.Equal(t, "copy title", actionErr.action)
	assert.Equal(t, "copy title for 'Freedom at Midnight': no clipboard", app.err.Error())
	assert.Contains(t, app.View(), "no clipboard")
}

func TestOpenPreviewWithoutImage(t *testing.T) {
	app := newTestApp(t, newGaBackend())
	openDropdown(t, app)
	pump(app, press(app, tea.KeyEnter))
	press(app, tea.KeyDown)

	card, ok := app.selectedCard()
	require.True(t, ok)
	require.Equal(t, "Gandhi the Man", card.Title)

	cmd := press(app, tea.KeyCtrlO)
	assert.Nil(t, cmd)
	assert.Equal(t, MsgNoPreview, app.status)
	assert.Equal(t, StatusWarn, app.statusKind)
}

func TestRecommendationFailureIsShown(t *testing.T) {
	backend := newGaBackend()
	backend.recommendErr = errors.New("boom")
	app := newTestApp(t, backend)
	openDropdown(t, app)

	pump(app, press(app, tea.KeyEnter))

	assert.Len(t, app.cardList.Items(), 4, "skeleton stays after a failure")
	assert.Contains(t, app.View(), api.ErrRecommendationRequestFailed.Error())
}

func TestQuitKeys(t *testing.T) {
	app := newTestApp(t, &fakeBackend{})

	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyCtrlQ} {
		_, cmd := app.keyHandler.HandleKey(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestStatusBarGlyphs(t *testing.T) {
	app := newTestApp(t, &fakeBackend{})

	app.setStatus(MsgNoPreview, StatusWarn)
	assert.Contains(t, app.getCustomStatusBar(), "! "+MsgNoPreview)

	app.setStatus(MsgRecommendationsCount(3), StatusSuccess)
	assert.Contains(t, app.getCustomStatusBar(), "✓ 3 recommendations")

	assert.Equal(t, "›", StatusInfo.Glyph())
	assert.Equal(t, "✗", StatusError.Glyph())
}

func TestDetailMarkdown(t *testing.T) {
	md := detailMarkdown(catalog.Card{
		Title:        "Dune",
		Description:  "By Frank Herbert | 1965 | 4.3 ⭐",
		PreviewImage: "https://books.google.com/dune.jpg",
		Overview:     "Melange.",
	})
	assert.True(t, strings.HasPrefix(md, "# Dune\n"))
	assert.Contains(t, md, "*By Frank Herbert | 1965 | 4.3 ⭐*")
	assert.Contains(t, md, "[Preview image](https://books.google.com/dune.jpg)")
	assert.Contains(t, md, "Melange.")

	md = detailMarkdown(catalog.Card{Title: "Heat", Description: "1995 | 8.3 ⭐"})
	assert.NotContains(t, md, "Preview image")
	assert.Contains(t, md, "_No overview available._")
}
