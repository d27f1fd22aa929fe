package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/holocron/pkg/app/screens"
	"github.com/kerbaras/holocron/pkg/services"
)

type App struct {
	controller *services.Controller
}

func NewApp(controller *services.Controller) *App {
	return &App{controller: controller}
}

func (a *App) Run(ctx context.Context) error {
	model, err := screens.NewRootScreen(ctx, a.controller)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
