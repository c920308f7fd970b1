package tui

// StatusKind is the severity of a status bar message.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarn
	StatusError
)

// Glyph is the marker printed before a status message of this kind.
func (k StatusKind) Glyph() string {
	switch k {
	case StatusSuccess:
		return "✓"
	case StatusWarn:
		return "!"
	case StatusError:
		return "✗"
	default:
		return "›"
	}
}
