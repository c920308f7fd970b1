package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/pders01/crossover/internal/catalog"
	"github.com/pders01/crossover/internal/config"
	"github.com/pders01/crossover/internal/media"
	"github.com/pders01/crossover/internal/widget"
)

// detailHeaderHeight is the header and blank line above the detail viewport.
const detailHeaderHeight = 3

type App struct {
	config     *config.Config
	widget     *widget.Widget
	launcher   *media.Launcher
	keyHandler *KeyHandler
	copyText   func(string) error

	queryInput textinput.Model
	cardList   list.Model
	viewport   viewport.Model
	spinner    spinner.Model

	view   View
	focus  focusArea
	detail *catalog.Card
	width  int
	height int

	err        error
	status     string
	statusKind StatusKind

	cardsRevision uint64
	spinning      bool
	// dropdownTop is the screen row of the first dropdown entry, recorded
	// by View for mouse hit-testing.
	dropdownTop int

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
}

func NewApp(cfg *config.Config, w *widget.Widget, launcher *media.Launcher) *App {
	cardList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	cardList.Title = "› recommendations"
	cardList.SetShowStatusBar(false)
	cardList.SetFilteringEnabled(false)
	cardList.SetShowHelp(false)

	qi := textinput.New()
	qi.Prompt = "› "
	qi.CharLimit = 256
	qi.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor)

	app := &App{
		config:     cfg,
		widget:     w,
		launcher:   launcher,
		copyText:   clipboard.WriteAll,
		queryInput: qi,
		cardList:   cardList,
		viewport:   viewport.New(0, 0),
		spinner:    sp,
		view:       ViewSearch,
		focus:      focusInput,
	}
	app.keyHandler = NewKeyHandler(app, cfg)
	app.sync()

	return app
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := (a.width * 9) / 10
	if wordWrapWidth > 100 {
		wordWrapWidth = 100
	}
	if wordWrapWidth < 20 {
		wordWrapWidth = 20
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.EnterAltScreen,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = msg.Width
		a.viewport.Height = max(msg.Height-2-detailHeaderHeight, 1)
		a.queryInput.Width = a.inputWidth()
		if a.view == ViewDetail && a.detail != nil {
			cmds = append(cmds, a.renderDetail(*a.detail))
		}

	case tea.KeyMsg:
		_, cmd := a.keyHandler.HandleKey(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		cmds = append(cmds, a.keyHandler.HandleMouse(msg))

	case spinner.TickMsg:
		if a.spinning {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case detailRenderedMsg:
		if a.view == ViewDetail && a.detail != nil && a.detail.ItemID == msg.itemID {
			a.viewport.SetContent(msg.content)
			a.viewport.GotoTop()
		}

	case statusMsg:
		a.setStatus(msg.text, msg.kind)

	case errorMsg:
		a.err = msg.err

	default:
		cmds = append(cmds, a.widget.Update(msg))
		var cmd tea.Cmd
		a.queryInput, cmd = a.queryInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, a.sync())
	return a, tea.Batch(cmds...)
}

// sync copies widget state into the bubbles components.
func (a *App) sync() tea.Cmd {
	s := a.widget.State()
	var cmds []tea.Cmd

	a.queryInput.Placeholder = s.Placeholder
	if a.queryInput.Value() != s.Query {
		a.queryInput.SetValue(s.Query)
		a.queryInput.CursorEnd()
	}

	if rev := a.widget.CardsRevision(); rev != a.cardsRevision {
		a.cardsRevision = rev
		items := make([]list.Item, len(s.Cards))
		for i, c := range s.Cards {
			items[i] = cardItem{card: c}
		}
		cmds = append(cmds, a.cardList.SetItems(items))
		a.cardList.Select(0)
		if len(s.Cards) > 0 && !s.Cards[0].Placeholder {
			a.setStatus(MsgRecommendationsCount(len(s.Cards)), StatusSuccess)
		}
		if len(s.Cards) == 0 && a.view == ViewDetail {
			a.view = ViewSearch
			a.detail = nil
		}
	}

	if s.Loading && !a.spinning {
		a.spinning = true
		cmds = append(cmds, a.spinner.Tick)
	}
	if !s.Loading {
		a.spinning = false
	}

	return tea.Batch(cmds...)
}

func (a *App) setStatus(text string, kind StatusKind) {
	a.status = text
	a.statusKind = kind
}

func (a *App) clearStatus() {
	a.status = ""
	a.err = nil
}

func (a *App) inputWidth() int {
	w := a.width - 8
	if w < 10 {
		w = a.width - 4
	}
	if w < 1 {
		w = 1
	}
	return w
}

// selectedCard returns the card the card-level actions apply to.
func (a *App) selectedCard() (catalog.Card, bool) {
	if a.view == ViewDetail && a.detail != nil {
		return *a.detail, true
	}
	if i, ok := a.cardList.SelectedItem().(cardItem); ok {
		return i.card, true
	}
	return catalog.Card{}, false
}

func (a *App) View() string {
	var content string

	contentHeight := a.height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}

	switch a.view {
	case ViewDetail:
		header := renderHeader("› "+CompactLogo, "Recommended for "+a.widget.State().Query, a.width)
		content = lipgloss.JoinVertical(lipgloss.Left, header, "", a.viewport.View())
	default:
		content = a.searchView(contentHeight)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	separatorWidth := a.width - 2
	if separatorWidth < 0 {
		separatorWidth = 0
	}
	separator := SeparatorStyle.Render("─" + strings.Repeat("─", separatorWidth))

	return lipgloss.JoinVertical(lipgloss.Top, content, separator, a.getCustomStatusBar())
}

func (a *App) searchView(height int) string {
	s := a.widget.State()
	c := a.widget.Copy()

	header := lipgloss.JoinHorizontal(
		lipgloss.Center,
		HeaderStyle.Render("› "+CompactLogo),
		"  ",
		renderTabs([]string{c.For(catalog.Book).Label, c.For(catalog.Movie).Label}, int(s.Mode)),
		"  ",
		renderCheckbox("adult", s.Filters.IncludeAdult),
		"  ",
		renderCheckbox("adaptations", s.Filters.IncludeAdaptations),
	)

	a.queryInput.Width = a.inputWidth()
	top := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		LabelStyle.Render(s.Label),
		renderInputFrame(a.queryInput.View(), a.focus == focusInput, a.queryInput.Width),
	)
	a.dropdownTop = lipgloss.Height(top)

	rows := []string{top}
	if s.Dropdown.Open {
		for i, item := range s.Dropdown.Items {
			rows = append(rows, a.renderDropdownRow(item, i == s.Dropdown.Cursor))
		}
	}
	rows = append(rows, AttributionStyle.Render(s.Attribution), "")
	if s.Loading {
		rows = append(rows, a.spinner.View()+" "+renderMuted(MsgLoadingRecommendations))
	}
	upper := lipgloss.JoinVertical(lipgloss.Left, rows...)

	remaining := height - lipgloss.Height(upper)
	if remaining < 4 {
		remaining = 4
	}

	var cards string
	if len(s.Cards) == 0 {
		hint := "Type a title, pick it from the list and get recommendations"
		cards = renderCentered(a.width, remaining, GetWelcomeMessage(hint))
	} else {
		a.cardList.SetSize(a.width, remaining)
		cards = a.cardList.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, upper, cards)
}

func (a *App) renderDropdownRow(item catalog.Item, highlighted bool) string {
	text := item.Title
	if item.Year != "" {
		text = fmt.Sprintf("%s · %s", item.Title, item.Year)
	}
	text = truncateEnd(text, a.width-4)
	if highlighted {
		return DropdownCursorStyle.Render(text)
	}
	return DropdownRowStyle.Render(text)
}

func (a *App) getCustomStatusBar() string {
	err := a.err
	if err == nil {
		err = a.widget.Err()
	}

	if err != nil {
		return StatusBarStyle.
			Width(a.width).
			Render(ErrorMessageStyle.Render(fmt.Sprintf("%s %v", StatusError.Glyph(), err)))
	}

	if a.status != "" {
		return StatusBarStyle.
			Width(a.width).
			Render(StatusStyle(a.statusKind).Render(a.statusKind.Glyph() + " " + a.status))
	}

	commands := a.keyHandler.GetHelpForCurrentView()
	return StatusBarStyle.
		Width(a.width).
		Render(strings.Join(commands, " • "))
}
