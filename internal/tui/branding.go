package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/pders01/crossover/internal/config"
)

const AppName = "crossover"

// LogoLines is the banner shown by ShowBanner and the empty card area.
var LogoLines = []string{
	"┌─┐┬─┐┌─┐┌─┐┌─┐┌─┐┬  ┬┌─┐┬─┐",
	"│  ├┬┘│ │└─┐└─┐│ │└┐┌┘├┤ ├┬┘",
	"└─┘┴└─└─┘└─┘└─┘└─┘ └┘ └─┘┴└─",
}

const CompactLogo = `crossover ⇄`

var BannerColors = []lipgloss.Color{
	lipgloss.Color("#FF6B6B"),
	lipgloss.Color("#95E1D3"),
	lipgloss.Color("#4ECDC4"),
}

// Palette. Overridden from [ui.colors] by ApplyTheme.
var (
	PrimaryColor   = lipgloss.Color("#FF6B6B")
	SecondaryColor = lipgloss.Color("#4ECDC4")
	AccentColor    = lipgloss.Color("#95E1D3")

	BackgroundColor = lipgloss.Color("#1A1A2E")
	SurfaceColor    = lipgloss.Color("#16213E")
	TextColor       = lipgloss.Color("#EAEAEA")
	MutedColor      = lipgloss.Color("#94A3B8")

	ErrorColor   = lipgloss.Color("#F87171")
	SuccessColor = lipgloss.Color("#4ADE80")
	WarnColor    = lipgloss.Color("#FFE66D")
)

var (
	LogoStyle           lipgloss.Style
	HeaderStyle         lipgloss.Style
	StatusBarStyle      lipgloss.Style
	HelpStyle           lipgloss.Style
	SeparatorStyle      lipgloss.Style
	ActiveTabStyle      lipgloss.Style
	InactiveTabStyle    lipgloss.Style
	LabelStyle          lipgloss.Style
	DropdownRowStyle    lipgloss.Style
	DropdownCursorStyle lipgloss.Style
	AttributionStyle    lipgloss.Style
	PlaceholderStyle    lipgloss.Style
	ErrorMessageStyle   lipgloss.Style
	StatusInfoStyle     lipgloss.Style
	StatusSuccessStyle  lipgloss.Style
	StatusWarnStyle     lipgloss.Style
	StatusErrorStyle    lipgloss.Style
)

func init() {
	buildStyles()
}

func buildStyles() {
	LogoStyle = lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)

	HeaderStyle = lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true)
	StatusBarStyle = lipgloss.NewStyle().Foreground(MutedColor).Background(SurfaceColor).Padding(0, 1)
	HelpStyle = lipgloss.NewStyle().Foreground(MutedColor).Italic(true)
	SeparatorStyle = lipgloss.NewStyle().Foreground(MutedColor)

	ActiveTabStyle = lipgloss.NewStyle().
		Foreground(BackgroundColor).
		Background(AccentColor).
		Bold(true).
		Padding(0, 1)
	InactiveTabStyle = lipgloss.NewStyle().Foreground(MutedColor).Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true)
	DropdownRowStyle = lipgloss.NewStyle().Foreground(TextColor).PaddingLeft(2)
	DropdownCursorStyle = lipgloss.NewStyle().
		Foreground(BackgroundColor).
		Background(AccentColor).
		Bold(true).
		PaddingLeft(2)
	AttributionStyle = lipgloss.NewStyle().Foreground(MutedColor).Faint(true).PaddingLeft(2)
	PlaceholderStyle = lipgloss.NewStyle().Foreground(MutedColor).Faint(true)

	ErrorMessageStyle = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	StatusInfoStyle = lipgloss.NewStyle().Foreground(MutedColor)
	StatusSuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	StatusWarnStyle = lipgloss.NewStyle().Foreground(WarnColor)
	StatusErrorStyle = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
}

// ApplyTheme replaces palette entries with the non-empty colors of c.
func ApplyTheme(c config.UIColors) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&PrimaryColor, c.Primary)
	set(&SecondaryColor, c.Secondary)
	set(&AccentColor, c.Accent)
	set(&BackgroundColor, c.Background)
	set(&SurfaceColor, c.Surface)
	set(&TextColor, c.Text)
	set(&MutedColor, c.Muted)
	set(&ErrorColor, c.Error)
	set(&SuccessColor, c.Success)
	buildStyles()
}

// StatusStyle returns the style for a status of the given kind.
func StatusStyle(kind StatusKind) lipgloss.Style {
	switch kind {
	case StatusSuccess:
		return StatusSuccessStyle
	case StatusWarn:
		return StatusWarnStyle
	case StatusError:
		return StatusErrorStyle
	default:
		return StatusInfoStyle
	}
}

func GetWelcomeMessage(message string) string {
	var lines []string
	for _, line := range LogoLines {
		lines = append(lines, LogoStyle.Render(line))
	}
	return lipgloss.JoinVertical(
		lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...),
		"",
		HelpStyle.Render(message),
	)
}

// ShowBanner prints the logo and version to stdout.
func ShowBanner(version string) {
	lines := append([]string(nil), LogoLines...)
	lines = append(lines, "")

	tag := "books ⇄ movies"
	if version != "" && version != "dev" {
		if version[0] != 'v' && version[0] != 'V' {
			version = "v" + version
		}
		tag = fmt.Sprintf("%s %s", tag, version)
	}
	lines = append(lines, tag)

	var colored []string
	for i, line := range lines {
		if line == "" {
			colored = append(colored, line)
			continue
		}
		style := lipgloss.NewStyle().
			Foreground(BannerColors[i%len(BannerColors)]).
			Bold(i < len(LogoLines))
		colored = append(colored, style.Render(line))
	}

	banner := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(SecondaryColor).
		Padding(1, 3).
		MarginTop(1).
		Render(lipgloss.JoinVertical(lipgloss.Center, colored...))

	fmt.Println(lipgloss.NewStyle().Width(60).Align(lipgloss.Center).Render(banner))
}
