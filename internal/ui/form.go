package ui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskprog/internal/api"
	"taskprog/internal/draft"
	"taskprog/internal/keys"
	"taskprog/internal/progress"
)

// submitTimeout re-enables a form whose submit never came back.
const submitTimeout = 5 * time.Second

// progressStep is how far left/right moves the progress field.
const progressStep = 5

const progressField = "progress"

type fieldSpec struct {
	name        string
	label       string
	placeholder string
}

var createFields = []fieldSpec{
	{"title", "Title:", "what needs doing"},
	{"description", "Description:", ""},
	{"status", "Status:", "pending | in-progress | completed"},
	{progressField, "Progress (%):", "0"},
	{"assignee", "Assignee:", "unassigned"},
	{"category", "Category:", "general"},
	{"planned_start_date", "Planned start:", "YYYY-MM-DD"},
	{"planned_end_date", "Planned end:", "YYYY-MM-DD"},
}

// The update endpoint only accepts these.
var editFields = createFields[:4]

type formField struct {
	name  string
	label string
	input textinput.Model
}

// taskForm is the add/edit task form. Its action and page path give the
// draft key, as a web form's action and location would.
type taskForm struct {
	taskID   int
	action   string
	pagePath string
	fields   []formField
	focus    int
	bar      progress.Bar
	widget   progressbar.Model

	submitting  bool
	submittedAt time.Time
}

// newTaskForm builds an empty create form, or an edit form filled with
// task's current values.
func newTaskForm(task *api.Task) *taskForm {
	f := &taskForm{
		action:   "/api/tasks",
		pagePath: keys.AddTask.Path(),
		widget: progressbar.New(
			progressbar.WithSolidFill(colorGray),
			progressbar.WithWidth(40),
			progressbar.WithoutPercentage(),
		),
	}
	specs := createFields
	values := map[string]string{}
	if task != nil {
		f.taskID = task.ID
		f.action = fmt.Sprintf("/api/tasks/%d", task.ID)
		f.pagePath = keys.EditPath(task.ID)
		specs = editFields
		values = map[string]string{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			progressField: strconv.Itoa(task.Progress),
		}
	}

	for _, spec := range specs {
		ti := textinput.New()
		ti.Placeholder = spec.placeholder
		ti.Prompt = "> "
		ti.CharLimit = 200
		ti.Width = 50
		ti.SetValue(values[spec.name])
		// Paste is routed through the model so it is saved like typing.
		ti.KeyMap.Paste.SetEnabled(false)
		f.fields = append(f.fields, formField{name: spec.name, label: spec.label, input: ti})
	}
	f.fields[0].input.Focus()
	f.syncBar()
	return f
}

func (f *taskForm) formID() string {
	return draft.FormID(f.action, f.pagePath)
}

func (f *taskForm) editing() bool { return f.taskID != 0 }

func (f *taskForm) draftFields() []draft.Field {
	out := make([]draft.Field, len(f.fields))
	for i, fld := range f.fields {
		out[i] = draft.Field{Name: fld.name, Value: fld.input.Value()}
	}
	return out
}

// restore fills empty fields from rec.
func (f *taskForm) restore(rec draft.Record) {
	for i, fld := range draft.Fill(f.draftFields(), rec) {
		if fld.Value != f.fields[i].input.Value() {
			f.fields[i].input.SetValue(fld.Value)
		}
	}
	f.syncBar()
}

func (f *taskForm) index(name string) int {
	return slices.IndexFunc(f.fields, func(fld formField) bool { return fld.name == name })
}

func (f *taskForm) value(name string) string {
	if i := f.index(name); i >= 0 {
		return strings.TrimSpace(f.fields[i].input.Value())
	}
	return ""
}

func (f *taskForm) focusedName() string {
	return f.fields[f.focus].name
}

func (f *taskForm) moveFocus(delta int) tea.Cmd {
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	return f.fields[f.focus].input.Focus()
}

// syncBar redraws the bar from the field without touching its text.
func (f *taskForm) syncBar() {
	if i := f.index(progressField); i >= 0 {
		clamped, _ := progress.Reflect(f.fields[i].input.Value())
		f.bar = progress.BarFor(f.formID(), clamped)
	}
}

// reflectProgress runs the progress field through one reflect cycle,
// correcting its text and updating the bar.
func (f *taskForm) reflectProgress() {
	i := f.index(progressField)
	if i < 0 {
		return
	}
	field := progress.Field{Group: f.formID(), Value: f.fields[i].input.Value()}
	field, bars := progress.Apply(field, []progress.Bar{{Group: f.formID()}})
	if field.Value != f.fields[i].input.Value() {
		f.fields[i].input.SetValue(field.Value)
	}
	f.bar = bars[0]
}

func (f *taskForm) stepProgress(delta int) {
	i := f.index(progressField)
	if i < 0 {
		return
	}
	f.fields[i].input.SetValue(progress.Step(f.fields[i].input.Value(), delta))
	f.reflectProgress()
}

// input forwards msg to the focused field and reports whether any value
// changed.
func (f *taskForm) input(msg tea.Msg) (bool, tea.Cmd) {
	before := f.fields[f.focus].input.Value()
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	changed := f.fields[f.focus].input.Value() != before
	if changed && f.focusedName() == progressField {
		f.reflectProgress()
	}
	return changed, cmd
}

// paste inserts text at the focused field's cursor, as typing it would.
func (f *taskForm) paste(text string) (bool, tea.Cmd) {
	return f.input(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text), Paste: true})
}

// canSubmit reports whether a submit may start at now.
func (f *taskForm) canSubmit(now time.Time) bool {
	return !f.submitting || now.Sub(f.submittedAt) >= submitTimeout
}

var errTitleRequired = errors.New("Title is required")

func (f *taskForm) validate() error {
	if f.value("title") == "" {
		return errTitleRequired
	}
	if s := f.value("status"); s != "" && !slices.Contains(api.Statuses, s) {
		return fmt.Errorf("Status must be one of %s", strings.Join(api.Statuses, ", "))
	}
	for _, name := range []string{"planned_start_date", "planned_end_date"} {
		if d := f.value(name); d != "" {
			if _, err := time.Parse(time.DateOnly, d); err != nil {
				return fmt.Errorf("%s must be YYYY-MM-DD", strings.ReplaceAll(name, "_", " "))
			}
		}
	}
	return nil
}

func (f *taskForm) clampedProgress() int {
	clamped, _ := progress.Reflect(f.value(progressField))
	return clamped
}

func (f *taskForm) newTask() (api.NewTask, error) {
	if err := f.validate(); err != nil {
		return api.NewTask{}, err
	}
	return api.NewTask{
		Title:            f.value("title"),
		Description:      f.value("description"),
		Status:           f.value("status"),
		Progress:         f.clampedProgress(),
		Assignee:         f.value("assignee"),
		Category:         f.value("category"),
		PlannedStartDate: f.value("planned_start_date"),
		PlannedEndDate:   f.value("planned_end_date"),
	}, nil
}

func (f *taskForm) update() (api.TaskUpdate, error) {
	if err := f.validate(); err != nil {
		return api.TaskUpdate{}, err
	}
	title := f.value("title")
	description := f.value("description")
	p := f.clampedProgress()
	u := api.TaskUpdate{Title: &title, Description: &description, Progress: &p}
	if s := f.value("status"); s != "" {
		u.Status = &s
	}
	return u, nil
}

func (f *taskForm) view() string {
	var rows []string
	for i, fld := range f.fields {
		label := labelStyle.Render(fld.label)
		if i == f.focus {
			label = focusedLabelStyle.Render(fld.label)
		}
		rows = append(rows, label+"\n"+fld.input.View())
		if fld.name == progressField {
			f.widget.FullColor = tierColor(f.bar.Tier)
			bar := f.widget.ViewAs(float64(f.bar.Percent) / 100)
			rows = append(rows, bar+" "+tierStyle(f.bar.Tier).Render(f.bar.Label))
		}
	}

	title := "➕ New Task"
	if f.editing() {
		title = fmt.Sprintf("✏️ Editing Task #%d", f.taskID)
	}
	if f.submitting {
		title += " " + mutedStyle.Render("(saving…)")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(title),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
