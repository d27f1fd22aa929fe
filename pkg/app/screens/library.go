package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/holocron/pkg/app/components"
	"github.com/kerbaras/holocron/pkg/app/styles"
	"github.com/kerbaras/holocron/pkg/data"
	"github.com/kerbaras/holocron/pkg/services"
)

// LibraryScreen lists the saved bookmarks.
type LibraryScreen struct {
	controller *services.Controller
	list       *components.ResourceList
	entries    []*data.Entry
	width      int
	height     int
	err        error
}

func NewLibraryScreen(controller *services.Controller) *LibraryScreen {
	list := components.NewResourceList()
	list.Empty = "Library is empty. Press s on a details screen to save."
	list.Details = 3
	return &LibraryScreen{
		controller: controller,
		list:       list,
	}
}

func (s *LibraryScreen) Title() string {
	return "Library"
}

func (s *LibraryScreen) Capturing() bool {
	return false
}

func (s *LibraryScreen) Init() tea.Cmd {
	return s.loadLibrary
}

func (s *LibraryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width - 4
		s.list.Height = msg.Height - 10

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.list.Prev()
		case "down", "j":
			s.list.Next()
		case "r":
			return s, s.loadLibrary
		case "d":
			if entry := s.selected(); entry != nil {
				return s, s.remove(entry.URL)
			}
		case "enter":
			if entry := s.selected(); entry != nil {
				target := TargetFor(entry.Kind, entry)
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: target}
				}
			}
		}

	case libraryLoadedMsg:
		s.err = msg.err
		s.entries = msg.entries
		items := make([]data.Resource, len(msg.entries))
		for i, e := range msg.entries {
			items[i] = *e
		}
		s.list.SetItems(items)

	case removedMsg:
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		return s, s.loadLibrary
	}

	return s, nil
}

func (s *LibraryScreen) selected() *data.Entry {
	if len(s.entries) == 0 || s.list.SelectedIndex >= len(s.entries) {
		return nil
	}
	return s.entries[s.list.SelectedIndex]
}

func (s *LibraryScreen) View() string {
	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	}

	header := styles.SubtitleStyle.Render(fmt.Sprintf("%d saved", len(s.entries)))

	help := styles.HelpStyle.Render(
		"↑/k ↓/j: select • enter: details • d: remove • r: refresh • tab: switch • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s%s\n%s", header, errorMsg, s.list.View(), help)
}

func (s *LibraryScreen) loadLibrary() tea.Msg {
	entries, err := s.controller.Library("")
	return libraryLoadedMsg{entries: entries, err: err}
}

func (s *LibraryScreen) remove(url string) tea.Cmd {
	return func() tea.Msg {
		return removedMsg{err: s.controller.Remove(url)}
	}
}
