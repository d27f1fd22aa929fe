package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/holocron/pkg/app/styles"
	"github.com/kerbaras/holocron/pkg/data"
	"github.com/kerbaras/holocron/pkg/services"
)

// DetailsScreen shows one resource with its resolved references.
type DetailsScreen struct {
	ctx        context.Context
	controller *services.Controller
	viewer     services.Viewer
	target     Target
	offset     int
	notice     string
	noticeKind string
	width      int
	height     int
}

func NewDetailsScreen(ctx context.Context, controller *services.Controller, target Target) (*DetailsScreen, error) {
	viewer, err := controller.NewDetails(target.Kind)
	if err != nil {
		return nil, err
	}
	return &DetailsScreen{
		ctx:        ctx,
		controller: controller,
		viewer:     viewer,
		target:     target,
	}, nil
}

func (s *DetailsScreen) Init() tea.Cmd {
	return s.load
}

// Close abandons a load still in flight.
func (s *DetailsScreen) Close() {
	s.viewer.Cancel()
}

func (s *DetailsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			s.offset++
		case "r":
			if !s.viewer.Loading() {
				s.offset = 0
				s.notice = ""
				return s, s.load
			}
		case "s":
			if s.viewer.Status() == services.StatusLoaded {
				return s, s.save
			}
		case "e":
			if s.viewer.Status() == services.StatusLoaded {
				s.setNotice("loading", "Exporting...")
				return s, s.export
			}
		case "esc", "backspace":
			s.Close()
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: "back"}
			}
		}

	case detailsLoadedMsg:
		s.offset = 0

	case savedMsg:
		if msg.err != nil {
			s.setNotice("error", fmt.Sprintf("Error: %s", msg.err))
		} else {
			s.setNotice("saved", fmt.Sprintf("Saved %s to library", msg.entry.Name))
		}

	case exportedMsg:
		if msg.err != nil {
			s.setNotice("error", fmt.Sprintf("Error: %s", msg.err))
		} else {
			s.setNotice("exported", fmt.Sprintf("Exported to %s", msg.path))
		}
	}

	return s, nil
}

func (s *DetailsScreen) setNotice(kind, text string) {
	s.noticeKind = kind
	s.notice = text
}

func (s *DetailsScreen) View() string {
	singular := s.target.Kind.Singular()

	var body string
	switch s.viewer.Status() {
	case services.StatusIdle, services.StatusLoading:
		body = styles.StatusLoading.Render(fmt.Sprintf("Loading %s details...", strings.ToLower(singular)))
	case services.StatusNotFound:
		body = styles.StatusWarning.Render(s.viewer.Err())
	case services.StatusFailed:
		body = styles.StatusError.Render(s.viewer.Err())
	default:
		body = s.renderRecord(s.viewer.Record())
	}

	var notice string
	if s.notice != "" {
		notice = styles.StatusStyle(s.noticeKind).Render(s.notice) + "\n"
	}

	help := styles.HelpStyle.Render(
		"↑/k ↓/j: scroll • s: save • e: export • r: reload • esc: back • q: quit",
	)

	return fmt.Sprintf("%s\n%s%s", body, notice, help)
}

func (s *DetailsScreen) renderRecord(rec data.Record) string {
	primary := rec.Primary()
	if primary == nil {
		return ""
	}

	header := styles.TitleStyle.Render(primary.DisplayName())
	lines := []string{header, s.renderFields(primary.Fields())}

	if film, ok := primary.(data.Film); ok && film.OpeningCrawl.Known() {
		crawl := strings.Join(strings.Fields(string(film.OpeningCrawl)), " ")
		lines = append(lines, styles.SubtitleStyle.Width(max(s.width-8, 20)).Render(crawl), "")
	}

	for _, g := range rec.Related() {
		lines = append(lines, styles.LabelStyle.Render(fmt.Sprintf("%s (%d)", g.Title, len(g.Items))))
		if len(g.Items) == 0 {
			lines = append(lines, styles.MutedStyle.Render("  none"))
			continue
		}
		for _, item := range g.Items {
			lines = append(lines, styles.TextStyle.Render("  • "+item.DisplayName()))
		}
	}

	content := strings.Split(lipgloss.JoinVertical(lipgloss.Left, lines...), "\n")
	return strings.Join(s.window(content), "\n")
}

func (s *DetailsScreen) renderFields(fields []data.Field) string {
	if len(fields) == 0 {
		return ""
	}
	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f.Label))
	}
	rows := make([]string, len(fields))
	for i, f := range fields {
		label := styles.LabelStyle.Width(width + 2).Render(f.Label)
		rows[i] = lipgloss.JoinHorizontal(lipgloss.Top, label, styles.TextStyle.Render(f.Value))
	}
	return styles.Card(false).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// window returns the lines visible at the current scroll offset.
func (s *DetailsScreen) window(lines []string) []string {
	visible := s.height - 8
	if visible <= 0 || len(lines) <= visible {
		s.offset = 0
		return lines
	}
	if maxOffset := len(lines) - visible; s.offset > maxOffset {
		s.offset = maxOffset
	}
	return lines[s.offset : s.offset+visible]
}

func (s *DetailsScreen) load() tea.Msg {
	s.viewer.Load(s.ctx, s.target.ID)
	return detailsLoadedMsg{target: s.target}
}

func (s *DetailsScreen) save() tea.Msg {
	entry, err := s.controller.Save(s.target.Kind, s.viewer.Record().Primary(), "")
	return savedMsg{entry: entry, err: err}
}

func (s *DetailsScreen) export() tea.Msg {
	path, err := s.controller.ExportRecord(s.viewer.Record())
	return exportedMsg{path: path, err: err}
}
