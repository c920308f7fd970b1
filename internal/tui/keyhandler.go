package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pders01/crossover/internal/catalog"
	"github.com/pders01/crossover/internal/config"
)

type KeyHandler struct {
	app         *App
	config      *config.Config
	modifierKey string
	bindings    config.KeyBindings
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	return &KeyHandler{
		app:         app,
		config:      cfg,
		modifierKey: cfg.Keys.Modifier + "+",
		bindings:    cfg.Keys.Bindings,
	}
}

// bound returns the key string of a modifier binding.
func (kh *KeyHandler) bound(binding string) string {
	if binding == "" {
		return ""
	}
	return kh.modifierKey + binding
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	kh.app.clearStatus()

	if key == "ctrl+c" || key == kh.bound(kh.bindings.Quit) {
		return kh.app, tea.Quit
	}

	if model, cmd, handled := kh.handleCustomKeys(key); handled {
		return model, cmd
	}

	if kh.app.view == ViewDetail {
		return kh.handleDetailKeys(msg)
	}

	if kh.isInTextInputMode() {
		return kh.handleTextInputMode(msg)
	}

	return kh.delegateToCharm(msg)
}

func (kh *KeyHandler) isInTextInputMode() bool {
	return kh.app.view == ViewSearch && kh.app.focus == focusInput
}

// handleCustomKeys handles the modifier actions available everywhere.
func (kh *KeyHandler) handleCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	w := kh.app.widget

	switch key {
	case kh.bound(kh.bindings.ToggleMode):
		w.ToggleMode()
		kh.app.view = ViewSearch
		kh.app.detail = nil
		return kh.app, kh.focusInput(), true
	case kh.bound(kh.bindings.ToggleAdult):
		return kh.app, w.ToggleAdult(), true
	case kh.bound(kh.bindings.ToggleAdaptations):
		return kh.app, w.ToggleAdaptations(), true
	case kh.bound(kh.bindings.OpenImage):
		if card, ok := kh.app.selectedCard(); ok {
			return kh.app, kh.openPreview(card), true
		}
		return kh.app, nil, true
	case kh.bound(kh.bindings.CopyTitle):
		if card, ok := kh.app.selectedCard(); ok {
			return kh.app, kh.copyTitle(card), true
		}
		return kh.app, nil, true
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := kh.app.widget

	switch msg.String() {
	case kh.bindings.Back:
		w.CloseDropdown()
		return kh.app, nil
	case "enter":
		cmd := w.SelectHighlighted()
		if cmd == nil {
			return kh.app, nil
		}
		return kh.app, tea.Batch(cmd, kh.focusCards())
	case "up":
		w.MoveCursor(-1)
		return kh.app, nil
	case "down":
		if w.State().Dropdown.Open {
			w.MoveCursor(1)
			return kh.app, nil
		}
		if len(kh.app.cardList.Items()) > 0 {
			return kh.app, kh.focusCards()
		}
		return kh.app, nil
	case "tab", "shift+tab":
		return kh.app, kh.focusCards()
	default:
		return kh.delegateToTextInput(msg)
	}
}

// delegateToTextInput passes the key to the query input and reports changed
// text to the widget.
func (kh *KeyHandler) delegateToTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prev := kh.app.queryInput.Value()
	newInput, cmd := kh.app.queryInput.Update(msg)
	kh.app.queryInput = newInput

	if val := kh.app.queryInput.Value(); val != prev {
		return kh.app, tea.Batch(cmd, kh.app.widget.OnQueryInput(val))
	}
	return kh.app, cmd
}

// delegateToCharm lets the card list handle keys we don't intercept.
func (kh *KeyHandler) delegateToCharm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "/", "i":
		return kh.app, kh.focusInput()
	case kh.bindings.Back:
		return kh.app, kh.focusInput()
	case "up":
		if kh.app.cardList.Index() == 0 {
			return kh.app, kh.focusInput()
		}
	case "enter":
		if card, ok := kh.app.selectedCard(); ok {
			if card.Placeholder {
				kh.app.setStatus(MsgPlaceholderCard, StatusWarn)
				return kh.app, nil
			}
			return kh.app, kh.app.openDetail(card)
		}
		return kh.app, nil
	}

	var cmd tea.Cmd
	kh.app.cardList, cmd = kh.app.cardList.Update(msg)
	return kh.app, cmd
}

func (kh *KeyHandler) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == kh.bindings.Back || msg.String() == "q" {
		kh.app.view = ViewSearch
		kh.app.detail = nil
		return kh.app, nil
	}
	var cmd tea.Cmd
	kh.app.viewport, cmd = kh.app.viewport.Update(msg)
	return kh.app, cmd
}

// HandleMouse maps a left click on a dropdown row to selection and a click
// on the input frame to focus.
func (kh *KeyHandler) HandleMouse(msg tea.MouseMsg) tea.Cmd {
	if kh.app.view != ViewSearch || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	top := kh.app.dropdownTop
	if s := kh.app.widget.State(); s.Dropdown.Open {
		if row := msg.Y - top; row >= 0 && row < len(s.Dropdown.Items) {
			cmd := kh.app.widget.SelectAt(row)
			return tea.Batch(cmd, kh.focusCards())
		}
	}

	// Input frame: border, text, border.
	if msg.Y >= top-3 && msg.Y < top {
		return kh.focusInput()
	}
	return nil
}

func (kh *KeyHandler) focusInput() tea.Cmd {
	if kh.app.focus == focusInput && kh.app.queryInput.Focused() {
		return nil
	}
	kh.app.focus = focusInput
	cmd := kh.app.queryInput.Focus()
	kh.app.widget.OnFocus()
	return cmd
}

func (kh *KeyHandler) focusCards() tea.Cmd {
	if kh.app.focus == focusCards {
		return nil
	}
	kh.app.focus = focusCards
	kh.app.queryInput.Blur()
	return kh.app.widget.OnBlur()
}

func (kh *KeyHandler) openPreview(card catalog.Card) tea.Cmd {
	if card.Placeholder {
		return nil
	}
	if card.PreviewImage == "" {
		kh.app.setStatus(MsgNoPreview, StatusWarn)
		return nil
	}
	kh.app.setStatus(MsgOpeningPreview(card.Title), StatusInfo)
	launcher := kh.app.launcher
	return func() tea.Msg {
		if err := launcher.Open(card.PreviewImage); err != nil {
			return errorMsg{err: &cardActionError{action: "open preview", title: card.Title, err: err}}
		}
		return nil
	}
}

func (kh *KeyHandler) copyTitle(card catalog.Card) tea.Cmd {
	if card.Placeholder {
		return nil
	}
	copyText := kh.app.copyText
	return func() tea.Msg {
		if err := copyText(card.Title); err != nil {
			return errorMsg{err: &cardActionError{action: "copy title", title: card.Title, err: err}}
		}
		return statusMsg{text: MsgCopiedTitle(card.Title), kind: StatusSuccess}
	}
}

// GetHelpForCurrentView returns the key hints for the status bar.
func (kh *KeyHandler) GetHelpForCurrentView() []string {
	global := []string{
		kh.bound(kh.bindings.ToggleMode) + ": mode",
		kh.bound(kh.bindings.ToggleAdult) + ": adult",
		kh.bound(kh.bindings.ToggleAdaptations) + ": adaptations",
		kh.bound(kh.bindings.Quit) + ": quit",
	}

	switch {
	case kh.app.view == ViewDetail:
		return []string{
			kh.bindings.Back + ": back",
			kh.bound(kh.bindings.OpenImage) + ": preview",
			kh.bound(kh.bindings.CopyTitle) + ": copy title",
		}
	case kh.app.focus == focusInput:
		return append([]string{"↑↓: pick", "enter: select", "tab: cards"}, global...)
	default:
		return append([]string{
			"enter: details",
			kh.bound(kh.bindings.OpenImage) + ": preview",
			kh.bound(kh.bindings.CopyTitle) + ": copy",
			"tab: search",
		}, global...)
	}
}
