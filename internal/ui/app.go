package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/octaltask/octaltask/internal/state"
	"github.com/octaltask/octaltask/internal/ui/styles"
	"github.com/octaltask/octaltask/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewLists View = iota
	ViewTasks
)

type App struct {
	container   *state.Container
	currentView View
	listsView   *views.ListsView
	tasksView   *views.TasksView
	styles      *styles.Styles
	width       int
	height      int
}

// NewApp creates the root model over a loaded state container.
func NewApp(container *state.Container) *App {
	return &App{
		container:   container,
		currentView: ViewLists,
		listsView:   views.NewListsView(container),
		styles:      styles.NewStyles(),
	}
}

func (a *App) Init() tea.Cmd {
	return a.listsView.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// the lists view persists across screens, keep it sized
		a.listsView.Update(msg)

	case views.SelectedList:
		a.currentView = ViewTasks
		a.tasksView = views.NewTasksView(a.container, msg.List)
		return a, tea.Batch(
			a.tasksView.Init(),
			func() tea.Msg {
				return tea.WindowSizeMsg{Width: a.width, Height: a.height}
			},
		)

	case views.BackToLists:
		a.currentView = ViewLists
		return a, tea.Batch(
			a.listsView.Init(),
			func() tea.Msg {
				return tea.WindowSizeMsg{Width: a.width, Height: a.height}
			},
		)
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewLists:
		_, cmd = a.listsView.Update(msg)
	case ViewTasks:
		_, cmd = a.tasksView.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	var body string
	switch a.currentView {
	case ViewTasks:
		if a.tasksView != nil {
			body = a.tasksView.View()
		}
	default:
		body = a.listsView.View()
	}

	if err := a.container.LoadErr(); err != nil {
		banner := a.styles.Error.Render("storage unavailable, changes may not persist: " + err.Error())
		return lipgloss.JoinVertical(lipgloss.Left, banner, body)
	}
	return body
}
