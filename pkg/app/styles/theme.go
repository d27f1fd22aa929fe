package styles

import "github.com/charmbracelet/lipgloss"

// Palette: crawl yellow on deep space, with hologram blue for secondary text.
var (
	Crawl     = lipgloss.Color("#FFE81F")
	Hologram  = lipgloss.Color("#4BD5EE")
	Space     = lipgloss.Color("#0B0F14")
	Starlight = lipgloss.Color("#EEFFFF")
	Dust      = lipgloss.Color("#546E7A")

	Success = lipgloss.Color("#C3E88D")
	Warning = lipgloss.Color("#FFCB6B")
	Danger  = lipgloss.Color("#F07178")
	Info    = lipgloss.Color("#82AAFF")
)

var (
	TitleStyle    = lipgloss.NewStyle().Foreground(Crawl).Bold(true).MarginBottom(1)
	SubtitleStyle = lipgloss.NewStyle().Foreground(Hologram).Italic(true)
	TextStyle     = lipgloss.NewStyle().Foreground(Starlight)
	MutedStyle    = lipgloss.NewStyle().Foreground(Dust)
	LabelStyle    = lipgloss.NewStyle().Foreground(Hologram).Bold(true)
	SelectedStyle = lipgloss.NewStyle().Foreground(Crawl).Bold(true)
	HelpStyle     = lipgloss.NewStyle().Foreground(Dust).Italic(true).MarginTop(1)

	PagerFilledStyle = lipgloss.NewStyle().Foreground(Crawl)
	PagerEmptyStyle  = lipgloss.NewStyle().Foreground(Dust)

	StatusLoading = status(Info)
	StatusWarning = status(Warning)
	StatusError   = status(Danger)
)

var statusStyles = map[string]lipgloss.Style{
	"loading":   StatusLoading,
	"loaded":    status(Success),
	"saved":     status(Success),
	"exported":  status(Success),
	"not found": StatusWarning,
	"failed":    StatusError,
	"error":     StatusError,
}

func status(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// StatusStyle picks the style for a load status as rendered by
// services.Status.String, or for a notice kind. Unknown values are muted.
func StatusStyle(s string) lipgloss.Style {
	if style, ok := statusStyles[s]; ok {
		return style
	}
	return MutedStyle
}

// Card frames one resource; the highlighted card gets a thick crawl-yellow
// border.
func Card(highlighted bool) lipgloss.Style {
	if highlighted {
		return lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(Crawl).Padding(0, 1)
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Dust).Padding(0, 1)
}

func Input(focused bool) lipgloss.Style {
	border := Dust
	if focused {
		border = Crawl
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1)
}

func Tab(active bool) lipgloss.Style {
	if active {
		return lipgloss.NewStyle().Foreground(Space).Background(Crawl).Padding(0, 2).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(Dust).Padding(0, 2)
}
