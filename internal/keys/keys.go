// Package keys defines taskprog's key bindings.
package keys

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Page is a navigation target reachable by shortcut.
type Page int

const (
	Dashboard Page = iota
	Tasks
	AddTask
	// EditTask has no tab or shortcut; it is entered from the task list.
	EditTask
)

// Path is the page's route on the web front end, used as the fallback
// form id for drafts. EditTask's path is a prefix; see EditPath.
func (p Page) Path() string {
	switch p {
	case Tasks:
		return "/tasks"
	case AddTask:
		return "/add_task"
	case EditTask:
		return "/edit_task"
	default:
		return "/"
	}
}

// EditPath is the edit page's route for one task.
func EditPath(id int) string {
	return EditTask.Path() + "/" + strconv.Itoa(id)
}

func (p Page) String() string {
	switch p {
	case Tasks:
		return "Tasks"
	case AddTask:
		return "Add Task"
	case EditTask:
		return "Edit Task"
	default:
		return "Dashboard"
	}
}

// Global bindings work on every screen, forms included.
var Global = struct {
	NewTask   key.Binding
	Home      key.Binding
	TaskList  key.Binding
	Close     key.Binding
	ForceQuit key.Binding
}{
	NewTask: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "new task"),
	),
	Home: key.NewBinding(
		key.WithKeys("ctrl+h"),
		key.WithHelp("ctrl+h", "dashboard"),
	),
	TaskList: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "tasks"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// Browse bindings apply outside forms, where plain letters are free.
var Browse = struct {
	Page1    key.Binding
	Page2    key.Binding
	Page3    key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Up       key.Binding
	Down     key.Binding
	Edit     key.Binding
	Add      key.Binding
	Delete   key.Binding
	Filter   key.Binding
	Increase key.Binding
	Decrease key.Binding
	Refresh  key.Binding
	Dismiss  key.Binding
	Quit     key.Binding
}{
	Page1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1-3", "pages")),
	Page2:    key.NewBinding(key.WithKeys("2")),
	Page3:    key.NewBinding(key.WithKeys("3")),
	PrevPage: key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "switch page")),
	NextPage: key.NewBinding(key.WithKeys("right")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	Add:      key.NewBinding(key.WithKeys("n", "a"), key.WithHelp("n/a", "add")),
	Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter status")),
	Increase: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "progress ±10")),
	Decrease: key.NewBinding(key.WithKeys("-")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Dismiss:  key.NewBinding(key.WithKeys("x", "esc"), key.WithHelp("x", "dismiss notice")),
	Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

// Form bindings drive the task form.
var Form = struct {
	Next     key.Binding
	Prev     key.Binding
	Submit   key.Binding
	StepUp   key.Binding
	StepDown key.Binding
	Paste    key.Binding
}{
	Next:     key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	StepUp:   key.NewBinding(key.WithKeys("right"), key.WithHelp("←/→", "adjust progress")),
	StepDown: key.NewBinding(key.WithKeys("left")),
	Paste:    key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
}

// Confirm bindings answer a yes/no prompt.
var Confirm = struct {
	Yes key.Binding
	No  key.Binding
}{
	Yes: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
	No:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
}

// Navigate resolves a global page shortcut.
func Navigate(msg tea.KeyMsg) (Page, bool) {
	switch {
	case key.Matches(msg, Global.NewTask):
		return AddTask, true
	case key.Matches(msg, Global.Home):
		return Dashboard, true
	case key.Matches(msg, Global.TaskList):
		return Tasks, true
	}
	return Dashboard, false
}

// BrowseHelp is the footer for the dashboard and task list.
func BrowseHelp(onTasks bool) []key.Binding {
	if !onTasks {
		return []key.Binding{Browse.Page1, Browse.PrevPage, Global.NewTask, Browse.Refresh, Browse.Dismiss, Browse.Quit}
	}
	return []key.Binding{
		Browse.Up, Browse.Down, Browse.Edit, Browse.Add, Browse.Delete,
		Browse.Filter, Browse.Increase, Browse.Refresh, Browse.Dismiss, Browse.Quit,
	}
}

// FormHelp is the footer while a form is open.
func FormHelp() []key.Binding {
	return []key.Binding{Form.Next, Form.Prev, Form.StepUp, Form.Submit, Global.Close}
}
