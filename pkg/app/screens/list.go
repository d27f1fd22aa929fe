package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/holocron/pkg/app/components"
	"github.com/kerbaras/holocron/pkg/app/styles"
	"github.com/kerbaras/holocron/pkg/services"
)

// ListScreen browses one resource kind: search box, one page of cards and a
// pager.
type ListScreen struct {
	ctx     context.Context
	browser services.Browser
	list    *components.ResourceList
	input   textinput.Model
	started bool
	width   int
	height  int
}

func NewListScreen(ctx context.Context, browser services.Browser) *ListScreen {
	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("Search %s...", strings.ToLower(browser.Kind().Plural()))
	ti.CharLimit = 100
	ti.Width = 40

	list := components.NewResourceList()
	list.Empty = fmt.Sprintf("No %s found", strings.ToLower(browser.Kind().Plural()))

	return &ListScreen{
		ctx:     ctx,
		browser: browser,
		list:    list,
		input:   ti,
	}
}

func (s *ListScreen) Title() string {
	return s.browser.Kind().Plural()
}

// Capturing reports whether the screen is consuming keystrokes as text.
func (s *ListScreen) Capturing() bool {
	return s.input.Focused()
}

// Init loads the collection the first time the screen is shown.
func (s *ListScreen) Init() tea.Cmd {
	if s.started {
		return nil
	}
	s.started = true
	return s.load
}

func (s *ListScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.list.Width = msg.Width - 4
		s.list.Height = msg.Height - 12

	case listLoadedMsg:
		s.input.SetValue("")
		s.refresh()

	case tea.KeyMsg:
		if s.input.Focused() {
			switch msg.String() {
			case "enter", "esc":
				s.input.Blur()
				return s, nil
			}
			s.input, cmd = s.input.Update(msg)
			s.browser.Search(s.input.Value())
			s.refresh()
			return s, cmd
		}

		switch msg.String() {
		case "/":
			s.input.Focus()
			return s, textinput.Blink
		case "up", "k":
			s.list.Prev()
		case "down", "j":
			s.list.Next()
		case "n", "right", "l":
			s.browser.NextPage()
			s.refresh()
		case "p", "left", "h":
			s.browser.PreviousPage()
			s.refresh()
		case "r":
			if !s.browser.Loading() {
				return s, s.load
			}
		case "enter":
			if selected := s.list.Selected(); selected != nil {
				target := TargetFor(s.browser.Kind(), selected)
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: target}
				}
			}
		}
	}

	return s, cmd
}

func (s *ListScreen) refresh() {
	s.list.SetItems(s.browser.PageResources())
}

func (s *ListScreen) View() string {
	plural := strings.ToLower(s.browser.Kind().Plural())

	inputView := styles.Input(s.input.Focused()).Render(s.input.View())

	var body string
	switch {
	case s.browser.Loading():
		body = styles.StatusLoading.Render(fmt.Sprintf("Loading %s...", plural))
	case s.browser.Err() != "":
		body = styles.StatusError.Render(s.browser.Err())
	default:
		body = s.list.View()
		if strings.TrimSpace(s.browser.Query()) != "" {
			body = styles.SubtitleStyle.Render(fmt.Sprintf("%d matching %q", s.browser.Count(), s.browser.Query())) + "\n\n" + body
		}
	}

	pager := components.Pager(s.browser.Page(), s.browser.TotalPages(), min(max(s.width-8, 10), 40))

	help := styles.HelpStyle.Render(
		"/: search • ↑/k ↓/j: select • n/p: page • enter: details • r: reload • tab: switch • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s", inputView, body, pager, help)
}

func (s *ListScreen) load() tea.Msg {
	s.browser.Load(s.ctx)
	return listLoadedMsg{kind: s.browser.Kind()}
}
