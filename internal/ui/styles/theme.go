package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/octaltask/octaltask/internal/models"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
}

// Nightfall is the default color theme
var Nightfall = Theme{
	Name: "Nightfall",

	Background:    lipgloss.Color("#16161e"),
	Foreground:    lipgloss.Color("#c8d0f0"),
	ForegroundDim: lipgloss.Color("#5a6291"),

	Primary:   lipgloss.Color("#82aaff"),
	Secondary: lipgloss.Color("#c099ff"),
	Accent:    lipgloss.Color("#86e1fc"),

	Success: lipgloss.Color("#c3e88d"),
	Warning: lipgloss.Color("#ffc777"),
	Error:   lipgloss.Color("#ff757f"),

	Border:      lipgloss.Color("#3b4261"),
	BorderFocus: lipgloss.Color("#82aaff"),
	Selection:   lipgloss.Color("#2d3f76"),
}

// Current holds the active theme
var Current = Nightfall

// listColors maps the list color tags to terminal colors.
var listColors = map[string]lipgloss.Color{
	models.ColorBlue:   lipgloss.Color("#82aaff"),
	models.ColorGreen:  lipgloss.Color("#c3e88d"),
	models.ColorRed:    lipgloss.Color("#ff757f"),
	models.ColorPurple: lipgloss.Color("#c099ff"),
	models.ColorAmber:  lipgloss.Color("#ffc777"),
	models.ColorBlack:  lipgloss.Color("#444a73"),
}

// ListColor returns the terminal color for a list color tag.
func ListColor(tag string) lipgloss.Color {
	if c, ok := listColors[tag]; ok {
		return c
	}
	return Current.ForegroundDim
}

// listIcons maps the list icon tags to glyphs.
var listIcons = map[string]string{
	models.IconPersonal: "●",
	models.IconWork:     "■",
	models.IconHome:     "⌂",
	models.IconStudy:    "✎",
	models.IconDefault:  "○",
}

// ListIcon returns the glyph for a list icon tag.
func ListIcon(tag string) string {
	if g, ok := listIcons[tag]; ok {
		return g
	}
	return listIcons[models.IconDefault]
}

// MaxWidth is the maximum content width for the app
const MaxWidth = 90

// ContentWidth returns the actual content width to use
func ContentWidth(terminalWidth int) int {
	if terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	TaskDone    lipgloss.Style
	TaskPending lipgloss.Style
	TaskStar    lipgloss.Style
	DueDate     lipgloss.Style

	SharedBadge lipgloss.Style
	Comment     lipgloss.Style
	CommentMeta lipgloss.Style

	InputFocused lipgloss.Style

	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	Error     lipgloss.Style
	StatusBar lipgloss.Style

	Detail lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 2),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 2).
			Bold(true),

		TaskDone: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Strikethrough(true),

		TaskPending: lipgloss.NewStyle().
			Foreground(t.Foreground),

		TaskStar: lipgloss.NewStyle().
			Foreground(t.Warning),

		DueDate: lipgloss.NewStyle().
			Foreground(t.Accent),

		SharedBadge: lipgloss.NewStyle().
			Foreground(t.Secondary),

		Comment: lipgloss.NewStyle().
			Foreground(t.Foreground).
			PaddingLeft(2),

		CommentMeta: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			PaddingLeft(2),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Error: lipgloss.NewStyle().
			Foreground(t.Error).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),

		Detail: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
	}
}
