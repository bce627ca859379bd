package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/alexanderramin/lumen/internal/analysis"
	"github.com/alexanderramin/lumen/internal/trust"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

var plain bool

// SetPlain switches every renderer to uncolored, borderless output. Used
// when stdout is not a terminal.
func SetPlain(on bool) {
	plain = on
	if on {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// IsPlain reports whether plain output is active.
func IsPlain() bool {
	return plain
}

// MoodStyle colors a mood level or average: red for crisis territory,
// yellow for middling, green once the user is doing well.
func MoodStyle(level float64) lipgloss.Style {
	switch {
	case level <= 4:
		return StyleRed
	case level < 7:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// Mood renders a mood value with one decimal.
func Mood(level float64) string {
	return MoodStyle(level).Render(fmt.Sprintf("%.1f", level))
}

// InterpretationPill returns a colored label such as "▲ strongly positive".
func InterpretationPill(i analysis.Interpretation) string {
	label := strings.ReplaceAll(string(i), "_", " ")
	switch i {
	case analysis.StronglyPositive, analysis.WeaklyPositive:
		return StyleGreen.Render("▲ " + label)
	case analysis.StronglyNegative, analysis.WeaklyNegative:
		return StyleRed.Render("▼ " + label)
	default:
		return StyleDim.Render("● " + label)
	}
}

// TrustBadge renders "L3 Construyendo" in a color that warms with the level.
func TrustBadge(l trust.Level) string {
	switch l {
	case trust.Level1:
		return StyleDim.Render(l.String())
	case trust.Level2:
		return StyleBlue.Render(l.String())
	case trust.Level3:
		return StyleYellow.Render(l.String())
	case trust.Level4:
		return StyleGreen.Render(l.String())
	default:
		return StylePurple.Render(l.String())
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
