// Package ui is the terminal front end. It binds key events to the pure
// draft and progress handlers and runs API calls as bubbletea commands.
package ui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"taskprog/internal/api"
	"taskprog/internal/draft"
	"taskprog/internal/keys"
	"taskprog/internal/notify"
	"taskprog/internal/progress"
)

// quickStep is how much +/- moves a task's progress from the list.
const quickStep = 10

var filters = append([]string{""}, api.Statuses...)

type confirmDelete struct {
	id    int
	title string
}

type Options struct {
	Context context.Context
	Client  TaskClient
	Drafts  *draft.Store
	Notices *notify.Center
	Logger  zerolog.Logger
}

type Model struct {
	ctx     context.Context
	client  TaskClient
	drafts  *draft.Store
	notices *notify.Center
	logger  zerolog.Logger
	now     func() time.Time

	clipboard func() (string, error)

	page        keys.Page
	tasks       []api.Task
	table       table.Model
	filter      string
	stats       api.Stats
	statsLoaded bool
	form        *taskForm
	confirm     *confirmDelete
	help        help.Model
	completion  progressbar.Model
	width       int
	height      int
}

func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	notices := opts.Notices
	if notices == nil {
		notices = notify.NewCenter()
	}
	drafts := opts.Drafts
	if drafts == nil {
		drafts = draft.NewStore(nil, opts.Logger)
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 5},
			{Title: "Title", Width: 32},
			{Title: "Status", Width: 13},
			{Title: "Progress", Width: 9},
			{Title: "Assignee", Width: 14},
			{Title: "Due", Width: 11},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	return Model{
		ctx:        ctx,
		client:     opts.Client,
		drafts:     drafts,
		notices:    notices,
		logger:     opts.Logger.With().Str("component", "ui").Logger(),
		now:        time.Now,
		clipboard:  clipboard.ReadAll,
		page:       keys.Dashboard,
		table:      t,
		help:       help.New(),
		completion: progressbar.New(progressbar.WithDefaultGradient(), progressbar.WithWidth(40)),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadStats(), m.loadTasks())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.adjustLayout()
		return m, nil

	case noticeTickMsg:
		m.notices.Prune(m.now())
		return m, nil

	case submitTimeoutMsg:
		f := m.form
		if f != nil && f.formID() == msg.formID && f.submittedAt.Equal(msg.submittedAt) {
			f.submitting = false
		}
		return m, nil

	case tasksLoadedMsg:
		if msg.err != nil {
			return m, noticeTick()
		}
		m.logger.Debug().Str("filter", msg.filter).Int("count", len(msg.tasks)).Msg("tasks loaded")
		m.tasks = msg.tasks
		m.table.SetRows(m.taskRows())
		if m.table.Cursor() >= len(m.tasks) {
			m.table.SetCursor(max(0, len(m.tasks)-1))
		}
		return m, nil

	case statsLoadedMsg:
		if msg.err != nil {
			return m, noticeTick()
		}
		m.stats = msg.stats
		m.statsLoaded = true
		return m, nil

	case taskFetchedMsg:
		if api.IsNotFound(msg.err) {
			text := fmt.Sprintf("Task #%d no longer exists", msg.id)
			return m, tea.Batch(m.notify(text, notify.Warning), m.loadTasks(), m.loadStats())
		}
		if msg.err != nil {
			return m, noticeTick()
		}
		return m, m.openForm(&msg.task)

	case taskSavedMsg:
		return m.handleSaved(msg)

	case progressSavedMsg:
		if msg.err != nil {
			return m, noticeTick()
		}
		m.replaceTask(msg.task)
		return m, m.loadStats()

	case taskDeletedMsg:
		if msg.err != nil {
			return m, noticeTick()
		}
		m.removeTask(msg.id)
		text := msg.message
		if text == "" {
			text = fmt.Sprintf("Deleted task #%d", msg.id)
		}
		return m, tea.Batch(m.notify("🗑️ "+text, notify.Danger), m.loadStats())

	case clipboardMsg:
		f := m.form
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Msg("read clipboard")
			return m, m.notify("Clipboard is not available", notify.Warning)
		}
		if f == nil || f.formID() != msg.formID || f.focusedName() != msg.field {
			return m, nil
		}
		changed, cmd := f.paste(msg.text)
		if changed {
			m.saveDraft()
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other input plumbing.
	if m.form != nil {
		changed, cmd := m.form.input(msg)
		if changed {
			m.saveDraft()
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) adjustLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	tableHeight := m.height - 10
	if tableHeight < 5 {
		tableHeight = 5
	}
	m.table.SetHeight(tableHeight)
	m.help.Width = m.width
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Global.ForceQuit) {
		return m, tea.Quit
	}
	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}
	if page, ok := keys.Navigate(msg); ok {
		return m.navigate(page)
	}
	if m.form != nil {
		return m.handleFormKey(msg)
	}
	return m.handleBrowseKey(msg)
}

func (m Model) navigate(page keys.Page) (tea.Model, tea.Cmd) {
	switch page {
	case keys.AddTask:
		if m.form != nil && !m.form.editing() {
			return m, nil
		}
		return m, m.openForm(nil)
	case keys.Tasks:
		m.form = nil
		m.page = keys.Tasks
		return m, m.loadTasks()
	default:
		m.form = nil
		m.page = keys.Dashboard
		return m, m.loadStats()
	}
}

// openForm shows the task form, refilling blank fields from any saved
// draft. A nil task opens the create form.
func (m *Model) openForm(task *api.Task) tea.Cmd {
	f := newTaskForm(task)
	f.restore(m.drafts.Restore(m.ctx, f.formID()))
	m.form = f
	if task == nil {
		m.page = keys.AddTask
	} else {
		m.page = keys.EditTask
	}
	return textinput.Blink
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch {
	case key.Matches(msg, keys.Global.Close):
		m.form = nil
		m.page = keys.Tasks
		return m, tea.Batch(m.notify("❌ Edit cancelled, draft kept", notify.Warning), m.loadTasks())

	case key.Matches(msg, keys.Form.Submit):
		return m.submit()

	case key.Matches(msg, keys.Form.Next):
		return m, f.moveFocus(1)

	case key.Matches(msg, keys.Form.Prev):
		return m, f.moveFocus(-1)

	case key.Matches(msg, keys.Form.Paste):
		return m, m.readClipboard(f.formID(), f.focusedName())

	case f.focusedName() == progressField && key.Matches(msg, keys.Form.StepUp):
		f.stepProgress(progressStep)
		m.saveDraft()
		return m, nil

	case f.focusedName() == progressField && key.Matches(msg, keys.Form.StepDown):
		f.stepProgress(-progressStep)
		m.saveDraft()
		return m, nil
	}

	changed, cmd := f.input(msg)
	if changed {
		m.saveDraft()
	}
	return m, cmd
}

func (m Model) saveDraft() {
	m.drafts.Save(m.ctx, m.form.formID(), draft.Snapshot(m.form.draftFields()))
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	f := m.form
	now := m.now()
	if !f.canSubmit(now) {
		return m, nil
	}

	var call tea.Cmd
	if f.editing() {
		update, err := f.update()
		if err != nil {
			return m, m.notify(err.Error(), notify.Warning)
		}
		call = m.updateTask(f.formID(), f.taskID, update)
	} else {
		in, err := f.newTask()
		if err != nil {
			return m, m.notify(err.Error(), notify.Warning)
		}
		call = m.createTask(f.formID(), in)
	}

	f.submitting = true
	f.submittedAt = now
	m.logger.Debug().Str("form", f.formID()).Msg("submit")
	return m, tea.Batch(call, submitTimeoutCmd(f.formID(), now))
}

func (m Model) handleSaved(msg taskSavedMsg) (tea.Model, tea.Cmd) {
	open := m.form != nil && m.form.formID() == msg.formID
	if msg.err != nil {
		if open {
			m.form.submitting = false
		}
		return m, noticeTick()
	}

	m.drafts.Clear(m.ctx, msg.formID)
	if open {
		m.form = nil
		m.page = keys.Tasks
	}

	text := fmt.Sprintf("✅ Updated task #%d", msg.task.ID)
	if msg.created {
		text = fmt.Sprintf("✅ Created task #%d", msg.task.ID)
	}
	return m, tea.Batch(m.notify(text, notify.Success), m.loadTasks(), m.loadStats())
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Confirm.Yes):
		id := m.confirm.id
		m.confirm = nil
		return m, m.deleteTask(id)
	case key.Matches(msg, keys.Confirm.No):
		m.confirm = nil
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Browse.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Browse.Page1):
		return m.navigate(keys.Dashboard)
	case key.Matches(msg, keys.Browse.Page2):
		return m.navigate(keys.Tasks)
	case key.Matches(msg, keys.Browse.Page3):
		return m.navigate(keys.AddTask)
	case key.Matches(msg, keys.Browse.PrevPage):
		return m.navigate((m.page + 2) % 3)
	case key.Matches(msg, keys.Browse.NextPage):
		return m.navigate((m.page + 1) % 3)
	case key.Matches(msg, keys.Browse.Refresh):
		return m, tea.Batch(m.loadStats(), m.loadTasks())
	case key.Matches(msg, keys.Browse.Dismiss):
		if n, ok := m.notices.Latest(m.now()); ok {
			m.notices.Dismiss(n.ID)
		}
		return m, nil
	}

	if m.page != keys.Tasks {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Browse.Up), key.Matches(msg, keys.Browse.Down):
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	case key.Matches(msg, keys.Browse.Add):
		return m, m.openForm(nil)
	case key.Matches(msg, keys.Browse.Filter):
		m.filter = nextFilter(m.filter)
		return m, m.loadTasks()
	}

	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, keys.Browse.Edit):
		return m, m.fetchTask(task.ID)
	case key.Matches(msg, keys.Browse.Delete):
		m.confirm = &confirmDelete{id: task.ID, title: task.Title}
	case key.Matches(msg, keys.Browse.Increase):
		return m, m.updateProgress(task.ID, progress.Clamp(task.Progress+quickStep))
	case key.Matches(msg, keys.Browse.Decrease):
		return m, m.updateProgress(task.ID, progress.Clamp(task.Progress-quickStep))
	}
	return m, nil
}

func nextFilter(current string) string {
	for i, f := range filters {
		if f == current {
			return filters[(i+1)%len(filters)]
		}
	}
	return ""
}

func (m Model) selectedTask() (api.Task, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.tasks) {
		return api.Task{}, false
	}
	return m.tasks[cursor], true
}

func (m *Model) replaceTask(task api.Task) {
	for i := range m.tasks {
		if m.tasks[i].ID == task.ID {
			m.tasks[i] = task
			m.table.SetRows(m.taskRows())
			return
		}
	}
}

func (m *Model) removeTask(id int) {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			m.table.SetRows(m.taskRows())
			if m.table.Cursor() >= len(m.tasks) && len(m.tasks) > 0 {
				m.table.SetCursor(len(m.tasks) - 1)
			}
			return
		}
	}
}

func (m Model) taskRows() []table.Row {
	rows := make([]table.Row, 0, len(m.tasks))
	for _, t := range m.tasks {
		clamped := progress.Clamp(t.Progress)
		due := t.PlannedEndDate
		if due == "" {
			due = "-"
		}
		assignee := t.Assignee
		if assignee == "" {
			assignee = "unassigned"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(t.ID),
			t.Title,
			statusStyle(t.Status).Render(t.Status),
			tierStyle(progress.TierFor(clamped)).Render(strconv.Itoa(clamped) + "%"),
			assignee,
			due,
		})
	}
	return rows
}
