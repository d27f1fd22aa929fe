package screens

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/holocron/pkg/app/styles"
	"github.com/kerbaras/holocron/pkg/data"
	"github.com/kerbaras/holocron/pkg/services"
)

// tab is a screen reachable from the tab bar.
type tab interface {
	tea.Model
	Title() string
	Capturing() bool
}

type RootScreen struct {
	ctx        context.Context
	controller *services.Controller

	tabs    []tab
	lists   map[data.Kind]*ListScreen
	current int
	details *DetailsScreen
	err     error

	width  int
	height int
}

// NewRootScreen builds one list tab per resource kind followed by the
// library tab.
func NewRootScreen(ctx context.Context, controller *services.Controller) (*RootScreen, error) {
	r := &RootScreen{
		ctx:        ctx,
		controller: controller,
		lists:      make(map[data.Kind]*ListScreen, len(data.Kinds)),
	}
	for _, kind := range data.Kinds {
		browser, err := controller.NewList(kind)
		if err != nil {
			return nil, err
		}
		list := NewListScreen(ctx, browser)
		r.lists[kind] = list
		r.tabs = append(r.tabs, list)
	}
	r.tabs = append(r.tabs, NewLibraryScreen(controller))
	return r, nil
}

func (r *RootScreen) Init() tea.Cmd {
	return r.tabs[r.current].Init()
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 3}
		var cmds []tea.Cmd
		for _, t := range r.tabs {
			_, cmd := t.Update(inner)
			cmds = append(cmds, cmd)
		}
		if r.details != nil {
			_, cmd := r.details.Update(inner)
			cmds = append(cmds, cmd)
		}
		return r, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return r, tea.Quit
		}
		if !r.capturing() {
			switch msg.String() {
			case "q":
				return r, tea.Quit
			case "tab":
				if r.details == nil {
					return r, r.switchTab(r.current + 1)
				}
			case "shift+tab":
				if r.details == nil {
					return r, r.switchTab(r.current - 1)
				}
			}
		}

	case listLoadedMsg:
		// Loads finish in the background; deliver to the owning tab even if
		// another one is showing.
		if list, ok := r.lists[msg.kind]; ok {
			_, cmd := list.Update(msg)
			return r, cmd
		}
		return r, nil

	case SwitchScreenMsg:
		return r, r.switchScreen(msg)
	}

	if r.details != nil {
		_, cmd := r.details.Update(msg)
		return r, cmd
	}
	_, cmd := r.tabs[r.current].Update(msg)
	return r, cmd
}

func (r *RootScreen) capturing() bool {
	return r.details == nil && r.tabs[r.current].Capturing()
}

func (r *RootScreen) switchTab(i int) tea.Cmd {
	n := len(r.tabs)
	r.current = ((i % n) + n) % n
	return r.tabs[r.current].Init()
}

func (r *RootScreen) switchScreen(msg SwitchScreenMsg) tea.Cmd {
	switch msg.Screen {
	case "details":
		target, ok := msg.Data.(Target)
		if !ok {
			return nil
		}
		if r.details != nil {
			r.details.Close()
		}
		details, err := NewDetailsScreen(r.ctx, r.controller, target)
		if err != nil {
			r.err = err
			return nil
		}
		r.err = nil
		r.details = details
		r.details.Update(tea.WindowSizeMsg{Width: r.width, Height: r.height - 3})
		return r.details.Init()
	case "back":
		r.details = nil
		// The library may have changed while the details were open.
		if _, ok := r.tabs[r.current].(*LibraryScreen); ok {
			return r.tabs[r.current].Init()
		}
	}
	return nil
}

func (r *RootScreen) View() string {
	if r.details != nil {
		return r.details.View()
	}

	var errorMsg string
	if r.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", r.err)) + "\n"
	}

	return fmt.Sprintf("%s\n\n%s%s", r.renderTabs(), errorMsg, r.tabs[r.current].View())
}

func (r *RootScreen) renderTabs() string {
	rendered := make([]string, len(r.tabs))
	for i, t := range r.tabs {
		rendered[i] = styles.Tab(i == r.current).Render(t.Title())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
