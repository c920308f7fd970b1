package tui

import "fmt"

// cardActionError reports a card action that failed outside the widget,
// such as starting an image viewer or writing the clipboard.
type cardActionError struct {
	action string
	title  string
	err    error
}

func (e *cardActionError) Error() string {
	return fmt.Sprintf("%s for '%s': %v", e.action, e.title, e.err)
}

func (e *cardActionError) Unwrap() error { return e.err }
