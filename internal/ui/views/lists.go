package views

import (
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

type listItem struct {
	list models.TaskList
}

func (i listItem) Title() string       { return i.list.Name }
func (i listItem) FilterValue() string { return i.list.Name }

func (i listItem) Description() string {
	if i.list.IsShared {
		return fmt.Sprintf("shared with %d", len(i.list.SharedWith))
	}
	return "private"
}

type listDelegate struct {
	styles *styles.Styles
	width  int
}

func (d listDelegate) Height() int                               { return 2 }
func (d listDelegate) Spacing() int                              { return 1 }
func (d listDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d listDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	li, ok := item.(listItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	icon := lipgloss.NewStyle().
		Foreground(styles.ListColor(li.list.Color)).
		Render(styles.ListIcon(li.list.Icon))

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	fmt.Fprintf(w, "%s\n%s",
		titleStyle.Render(icon+" "+li.list.Name),
		descStyle.Render(li.Description()))
}

// SelectedList tells the app a list was opened.
type SelectedList struct {
	List models.TaskList
}

type listsReloadedMsg struct{}

// ListsView shows every task list and lets the user create, rename and
// delete them.
type ListsView struct {
	container *state.Container
	list      list.Model
	delegate  *listDelegate
	styles    *styles.Styles
	keys      keys.KeyMap
	width     int
	height    int

	creating         bool
	newName          textinput.Model
	colorIdx         int
	confirmingDelete bool
	deleteTarget     models.TaskList
	showHelp         bool
}

var listColorOrder = []string{
	models.ColorBlue, models.ColorGreen, models.ColorRed,
	models.ColorPurple, models.ColorAmber, models.ColorBlack,
}

// NewListsView creates the lists screen.
func NewListsView(container *state.Container) *ListsView {
	s := styles.NewStyles()

	newName := textinput.New()
	newName.Placeholder = "List name"
	newName.CharLimit = 100

	delegate := &listDelegate{styles: s, width: 80}
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Lists"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &ListsView{
		container: container,
		list:      l,
		delegate:  delegate,
		styles:    s,
		keys:      keys.DefaultKeyMap(),
		newName:   newName,
	}
}

func (v *ListsView) Init() tea.Cmd {
	return v.reload
}

func (v *ListsView) reload() tea.Msg {
	return listsReloadedMsg{}
}

func (v *ListsView) refreshItems() {
	lists := v.container.Lists()
	items := make([]list.Item, len(lists))
	for i, l := range lists {
		items[i] = listItem{list: l}
	}
	v.list.SetItems(items)
}

func (v *ListsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-6)
		return v, nil

	case listsReloadedMsg:
		v.refreshItems()
		return v, nil

	case tea.KeyMsg:
		if v.showHelp {
			v.showHelp = false
			return v, nil
		}
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.creating {
			return v.updateCreating(msg)
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Help):
			v.showHelp = true
			return v, nil
		case key.Matches(msg, v.keys.New):
			v.creating = true
			v.colorIdx = 0
			v.newName.Reset()
			v.newName.Focus()
			return v, textinput.Blink
		case key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(listItem); ok {
				return v, func() tea.Msg {
					return SelectedList{List: item.list}
				}
			}
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(listItem); ok {
				v.confirmingDelete = true
				v.deleteTarget = item.list
				return v, nil
			}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *ListsView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		// tasks in the list survive; they just lose the reference
		if err := v.container.DeleteList(v.deleteTarget.ID); err == nil {
			v.refreshItems()
		}
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *ListsView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.colorIdx = (v.colorIdx + 1) % len(listColorOrder)
		return v, nil

	case msg.String() == "enter":
		name := strings.TrimSpace(v.newName.Value())
		if name == "" {
			return v, nil
		}
		l, err := v.container.AddList(models.TaskList{
			Name:  name,
			Color: listColorOrder[v.colorIdx],
			Icon:  models.IconDefault,
		})
		if err != nil {
			return v, nil
		}
		v.creating = false
		v.refreshItems()
		return v, func() tea.Msg {
			return SelectedList{List: l}
		}
	}

	var cmd tea.Cmd
	v.newName, cmd = v.newName.Update(msg)
	return v, cmd
}

func (v *ListsView) View() string {
	if v.showHelp {
		return v.helpView()
	}
	if v.confirmingDelete {
		return v.styles.Help.Render(fmt.Sprintf(
			"Delete list %q? Its tasks stay and become unlisted. (y/n)",
			v.deleteTarget.Name))
	}
	if v.creating {
		color := lipgloss.NewStyle().
			Foreground(styles.ListColor(listColorOrder[v.colorIdx])).
			Render(listColorOrder[v.colorIdx])
		return lipgloss.JoinVertical(lipgloss.Left,
			v.styles.Title.Render("New list"),
			v.styles.InputFocused.Render(v.newName.View()),
			v.styles.StatusBar.Render("color: "+color+"  (tab to change, enter to create, esc to cancel)"),
		)
	}

	help := v.styles.StatusBar.Render("n new · enter open · d delete · ? help · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, v.list.View(), help)
}

func (v *ListsView) helpView() string {
	rows := [][2]string{
		{"enter", "open list"},
		{"n", "new list"},
		{"d", "delete list"},
		{"/", "filter"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Keys") + "\n\n")
	for _, r := range rows {
		b.WriteString(v.styles.HelpKey.Render(r[0]) + "  " + v.styles.HelpDesc.Render(r[1]) + "\n")
	}
	return v.styles.Help.Render(b.String())
}
