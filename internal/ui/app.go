package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/byteme/internal/ui/views"
)

type App struct {
	console *views.ConsoleView
}

// Creates a new application
func NewApp(runner views.Runner) *App {
	return &App{
		console: views.NewConsoleView(runner),
	}
}

func (a *App) Init() tea.Cmd {
	return a.console.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := a.console.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	return a.console.View()
}
