package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/octaltask/octaltask/internal/models"
	"github.com/octaltask/octaltask/internal/state"
	"github.com/octaltask/octaltask/internal/ui/keys"
	"github.com/octaltask/octaltask/internal/ui/styles"
)

type taskItem struct {
	task models.Task
}

func (i taskItem) Title() string       { return i.task.Title }
func (i taskItem) FilterValue() string { return i.task.Title }

func (i taskItem) Description() string {
	var parts []string
	if i.task.DueDate != nil {
		parts = append(parts, "due "+*i.task.DueDate)
	}
	if n := len(i.task.Comments); n > 0 {
		parts = append(parts, fmt.Sprintf("%d comments", n))
	}
	if n := len(i.task.SharedWith); n > 0 {
		parts = append(parts, fmt.Sprintf("shared with %d", n))
	}
	if len(parts) == 0 {
		return " "
	}
	return strings.Join(parts, " · ")
}

type taskDelegate struct {
	styles *styles.Styles
	width  int
}

func (d taskDelegate) Height() int                               { return 2 }
func (d taskDelegate) Spacing() int                              { return 1 }
func (d taskDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(taskItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	check := "[ ]"
	titleStyle := d.styles.TaskPending
	if ti.task.Completed {
		check = "[x]"
		titleStyle = d.styles.TaskDone
	}
	star := " "
	if ti.task.Starred {
		star = d.styles.TaskStar.Render("★")
	}
	line := fmt.Sprintf("%s %s %s", check, star, titleStyle.Render(ti.task.Title))

	var rowStyle, descStyle lipgloss.Style
	if selected {
		rowStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		rowStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	fmt.Fprintf(w, "%s\n%s", rowStyle.Render(line), descStyle.Render(ti.Description()))
}

// BackToLists tells the app to return to the lists screen.
type BackToLists struct{}

type tasksReloadedMsg struct{}

// opDoneMsg reports the outcome of an async container operation.
type opDoneMsg struct {
	err error
}

type taskMode int

const (
	modeBrowse taskMode = iota
	modeCreate
	modeComment
	modeShare
	modeConfirmDelete
	modeDetail
)

var shareRoles = []models.Role{models.RoleViewer, models.RoleEditor, models.RoleAdmin}

// TasksView shows the tasks of one list and the task detail pane.
type TasksView struct {
	container *state.Container
	taskList  models.TaskList
	list      list.Model
	delegate  *taskDelegate
	styles    *styles.Styles
	keys      keys.KeyMap
	width     int
	height    int

	mode         taskMode
	input        textinput.Model
	roleIdx      int
	deleteTarget models.Task
	detailID     string
	lastErr      error
}

// NewTasksView creates the task screen for one list.
func NewTasksView(container *state.Container, taskList models.TaskList) *TasksView {
	s := styles.NewStyles()

	input := textinput.New()
	input.CharLimit = 200

	delegate := &taskDelegate{styles: s, width: 80}
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = taskList.Name
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &TasksView{
		container: container,
		taskList:  taskList,
		list:      l,
		delegate:  delegate,
		styles:    s,
		keys:      keys.DefaultKeyMap(),
		input:     input,
	}
}

func (v *TasksView) Init() tea.Cmd {
	return func() tea.Msg { return tasksReloadedMsg{} }
}

func (v *TasksView) refreshItems() {
	tasks := v.container.TasksByList(v.taskList.ID)
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = taskItem{task: t}
	}
	v.list.SetItems(items)
}

func (v *TasksView) selected() (models.Task, bool) {
	item, ok := v.list.SelectedItem().(taskItem)
	if !ok {
		return models.Task{}, false
	}
	// the item snapshot may be stale; re-read from the container
	t, err := v.container.TaskByID(item.task.ID)
	if err != nil {
		return models.Task{}, false
	}
	return t, true
}

func (v *TasksView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-6)
		return v, nil

	case tasksReloadedMsg:
		v.refreshItems()
		return v, nil

	case opDoneMsg:
		v.lastErr = msg.err
		v.refreshItems()
		return v, nil

	case tea.KeyMsg:
		v.lastErr = nil
		switch v.mode {
		case modeCreate, modeComment, modeShare:
			return v.updateInput(msg)
		case modeConfirmDelete:
			return v.updateConfirmDelete(msg)
		case modeDetail:
			if key.Matches(msg, v.keys.Back) || key.Matches(msg, v.keys.Enter) {
				v.mode = modeBrowse
			}
			return v, nil
		}
		return v.updateBrowse(msg)
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *TasksView) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToLists{} }

	case key.Matches(msg, v.keys.New):
		v.mode = modeCreate
		v.input.Placeholder = "Task title"
		v.input.Reset()
		v.input.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Toggle):
		if t, ok := v.selected(); ok {
			done := !t.Completed
			_, err := v.container.UpdateTask(t.ID, state.TaskPatch{Completed: &done})
			v.lastErr = err
			v.refreshItems()
		}
		return v, nil

	case key.Matches(msg, v.keys.Star):
		if t, ok := v.selected(); ok {
			starred := !t.Starred
			_, err := v.container.UpdateTask(t.ID, state.TaskPatch{Starred: &starred})
			v.lastErr = err
			v.refreshItems()
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if t, ok := v.selected(); ok {
			v.mode = modeConfirmDelete
			v.deleteTarget = t
		}
		return v, nil

	case key.Matches(msg, v.keys.Comment):
		if _, ok := v.selected(); ok {
			v.mode = modeComment
			v.input.Placeholder = "Comment"
			v.input.Reset()
			v.input.Focus()
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Share):
		if _, ok := v.selected(); ok {
			v.mode = modeShare
			v.roleIdx = 0
			v.input.Placeholder = "email@example.com"
			v.input.Reset()
			v.input.Focus()
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if t, ok := v.selected(); ok {
			v.mode = modeDetail
			v.detailID = t.ID
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *TasksView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = modeBrowse
		v.lastErr = v.container.DeleteTask(v.deleteTarget.ID)
		v.refreshItems()
		return v, nil
	case "n", "N", "esc":
		v.mode = modeBrowse
		return v, nil
	}
	return v, nil
}

func (v *TasksView) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.mode = modeBrowse
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		if v.mode == modeShare {
			v.roleIdx = (v.roleIdx + 1) % len(shareRoles)
		}
		return v, nil

	case msg.String() == "enter":
		value := strings.TrimSpace(v.input.Value())
		if value == "" {
			return v, nil
		}
		mode := v.mode
		v.mode = modeBrowse

		switch mode {
		case modeCreate:
			_, err := v.container.AddTask(models.Task{Title: value, ListID: &v.taskList.ID})
			v.lastErr = err
			v.refreshItems()
			return v, nil

		case modeComment:
			t, ok := v.selected()
			if !ok {
				return v, nil
			}
			// collaborator-bound; run off the update loop
			return v, func() tea.Msg {
				_, err := v.container.AddComment(context.Background(), t.ID, value)
				return opDoneMsg{err: err}
			}

		case modeShare:
			t, ok := v.selected()
			if !ok {
				return v, nil
			}
			role := shareRoles[v.roleIdx]
			return v, func() tea.Msg {
				_, err := v.container.ShareTask(context.Background(), t.ID, value, role)
				return opDoneMsg{err: err}
			}
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *TasksView) View() string {
	switch v.mode {
	case modeConfirmDelete:
		return v.styles.Help.Render(fmt.Sprintf("Delete task %q? (y/n)", v.deleteTarget.Title))

	case modeCreate, modeComment, modeShare:
		title := map[taskMode]string{
			modeCreate:  "New task",
			modeComment: "Add comment",
			modeShare:   "Share task",
		}[v.mode]
		rows := []string{
			v.styles.Title.Render(title),
			v.styles.InputFocused.Render(v.input.View()),
		}
		if v.mode == modeShare {
			rows = append(rows, v.styles.StatusBar.Render(
				"role: "+string(shareRoles[v.roleIdx])+"  (tab to change, enter to share, esc to cancel)"))
		}
		return lipgloss.JoinVertical(lipgloss.Left, rows...)

	case modeDetail:
		return v.detailView()
	}

	status := "n new · space done · * star · c comment · s share · d delete · enter detail · esc back"
	rows := []string{v.list.View()}
	if v.lastErr != nil {
		rows = append(rows, v.styles.Error.Render(v.lastErr.Error()))
	}
	rows = append(rows, v.styles.StatusBar.Render(status))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *TasksView) detailView() string {
	t, err := v.container.TaskByID(v.detailID)
	if err != nil {
		return v.styles.Error.Render("task no longer exists")
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(t.Title) + "\n")
	if t.DueDate != nil {
		b.WriteString(v.styles.DueDate.Render("due "+*t.DueDate) + "\n")
	}
	if t.Notes != "" {
		b.WriteString(t.Notes + "\n")
	}

	if len(t.Subtasks) > 0 {
		b.WriteString("\n" + v.styles.TitleMuted.Render("Subtasks") + "\n")
		for _, st := range t.Subtasks {
			check := "[ ]"
			if st.Completed {
				check = "[x]"
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", check, st.Title))
		}
	}

	if len(t.SharedWith) > 0 {
		b.WriteString("\n" + v.styles.TitleMuted.Render("Shared with") + "\n")
		for _, su := range t.SharedWith {
			b.WriteString(v.styles.SharedBadge.Render(
				fmt.Sprintf("  %s <%s> - %s", su.Name, su.Email, su.Role)) + "\n")
		}
	}

	if len(t.Attachments) > 0 {
		b.WriteString("\n" + v.styles.TitleMuted.Render("Attachments") + "\n")
		for _, a := range t.Attachments {
			b.WriteString(fmt.Sprintf("  %s (%d bytes)\n", a.FileName, a.FileSize))
		}
	}

	if len(t.Comments) > 0 {
		b.WriteString("\n" + v.styles.TitleMuted.Render("Comments") + "\n")
		for _, cm := range t.Comments {
			meta := cm.UserName
			if cm.Pending {
				meta += " (sending...)"
			}
			b.WriteString(v.styles.CommentMeta.Render(meta) + "\n")
			b.WriteString(v.styles.Comment.Render(cm.Content) + "\n")
		}
	}

	b.WriteString("\n" + v.styles.StatusBar.Render("esc to close"))
	return v.styles.Detail.Render(b.String())
}
