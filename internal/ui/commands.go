package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskprog/internal/api"
	"taskprog/internal/notify"
)

// TaskClient is the part of the API the UI calls.
type TaskClient interface {
	ListTasks(ctx context.Context, status string) ([]api.Task, error)
	GetTask(ctx context.Context, id int) (api.Task, error)
	CreateTask(ctx context.Context, task api.NewTask) (api.Task, error)
	UpdateTask(ctx context.Context, id int, update api.TaskUpdate) (api.Task, error)
	UpdateProgress(ctx context.Context, id, progress int) (api.Task, error)
	DeleteTask(ctx context.Context, id int) (string, error)
	Stats(ctx context.Context) (api.Stats, error)
}

type tasksLoadedMsg struct {
	filter string
	tasks  []api.Task
	err    error
}

type statsLoadedMsg struct {
	stats api.Stats
	err   error
}

type taskFetchedMsg struct {
	id   int
	task api.Task
	err  error
}

type taskSavedMsg struct {
	formID  string
	created bool
	task    api.Task
	err     error
}

type progressSavedMsg struct {
	task api.Task
	err  error
}

type taskDeletedMsg struct {
	id      int
	message string
	err     error
}

// noticeTickMsg redraws the status line once a notice may have expired.
type noticeTickMsg struct{}

// submitTimeoutMsg releases a form stuck in its busy state. It only
// applies to the submit that started at submittedAt.
type submitTimeoutMsg struct {
	formID      string
	submittedAt time.Time
}

// clipboardMsg carries pasted text for one field of one form.
type clipboardMsg struct {
	formID string
	field  string
	text   string
	err    error
}

func (m Model) loadTasks() tea.Cmd {
	ctx, client, filter := m.ctx, m.client, m.filter
	return func() tea.Msg {
		tasks, err := client.ListTasks(ctx, filter)
		return tasksLoadedMsg{filter: filter, tasks: tasks, err: err}
	}
}

func (m Model) loadStats() tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		stats, err := client.Stats(ctx)
		return statsLoadedMsg{stats: stats, err: err}
	}
}

func (m Model) fetchTask(id int) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		task, err := client.GetTask(ctx, id)
		return taskFetchedMsg{id: id, task: task, err: err}
	}
}

func (m Model) createTask(formID string, in api.NewTask) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		task, err := client.CreateTask(ctx, in)
		return taskSavedMsg{formID: formID, created: true, task: task, err: err}
	}
}

func (m Model) updateTask(formID string, id int, in api.TaskUpdate) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		task, err := client.UpdateTask(ctx, id, in)
		return taskSavedMsg{formID: formID, task: task, err: err}
	}
}

func (m Model) updateProgress(id, value int) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		task, err := client.UpdateProgress(ctx, id, value)
		return progressSavedMsg{task: task, err: err}
	}
}

func (m Model) deleteTask(id int) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		message, err := client.DeleteTask(ctx, id)
		return taskDeletedMsg{id: id, message: message, err: err}
	}
}

func (m Model) readClipboard(formID, field string) tea.Cmd {
	read := m.clipboard
	return func() tea.Msg {
		text, err := read()
		return clipboardMsg{formID: formID, field: field, text: text, err: err}
	}
}

// notify posts a notice and schedules the redraw that hides it.
func (m Model) notify(message string, level notify.Level) tea.Cmd {
	m.notices.Notify(message, level)
	return noticeTick()
}

func noticeTick() tea.Cmd {
	return tea.Tick(notify.DefaultTTL, func(time.Time) tea.Msg { return noticeTickMsg{} })
}

func submitTimeoutCmd(formID string, at time.Time) tea.Cmd {
	return tea.Tick(submitTimeout, func(time.Time) tea.Msg {
		return submitTimeoutMsg{formID: formID, submittedAt: at}
	})
}
