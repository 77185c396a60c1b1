package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskprog/internal/api"
	"taskprog/internal/progress"
)

func setField(t *testing.T, f *taskForm, name, value string) {
	t.Helper()
	i := f.index(name)
	require.GreaterOrEqual(t, i, 0, "no field %q", name)
	f.fields[i].input.SetValue(value)
}

func TestNewTaskForm_Create(t *testing.T) {
	f := newTaskForm(nil)

	assert.False(t, f.editing())
	assert.Equal(t, "/api/tasks", f.formID())
	assert.Len(t, f.fields, len(createFields))
	assert.Equal(t, "title", f.focusedName())
	assert.Equal(t, 0, f.bar.Percent)
	assert.Equal(t, progress.Neutral, f.bar.Tier)
}

func TestNewTaskForm_Edit(t *testing.T) {
	f := newTaskForm(&api.Task{ID: 4, Title: "T", Status: api.StatusCompleted, Progress: 80})

	assert.True(t, f.editing())
	assert.Equal(t, "/api/tasks/4", f.formID())
	assert.Equal(t, "/edit_task/4", f.pagePath)
	assert.Equal(t, "80", f.value(progressField))
	assert.Equal(t, progress.Success, f.bar.Tier)
	assert.Equal(t, -1, f.index("assignee"))
}

func TestMoveFocus_Wraps(t *testing.T) {
	f := newTaskForm(nil)
	f.moveFocus(-1)
	assert.Equal(t, "planned_end_date", f.focusedName())
	f.moveFocus(1)
	assert.Equal(t, "title", f.focusedName())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]string
		wantErr string
	}{
		{name: "ok", fields: map[string]string{"title": "A"}},
		{name: "missing title", fields: map[string]string{"title": "   "}, wantErr: "Title is required"},
		{name: "bad status", fields: map[string]string{"title": "A", "status": "done"}, wantErr: "Status must be one of"},
		{name: "good dates", fields: map[string]string{"title": "A", "planned_start_date": "2026-01-02", "planned_end_date": "2026-02-03"}},
		{name: "bad date", fields: map[string]string{"title": "A", "planned_end_date": "02/03/2026"}, wantErr: "planned end date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTaskForm(nil)
			for k, v := range tt.fields {
				setField(t, f, k, v)
			}
			err := f.validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewTask_ClampsProgress(t *testing.T) {
	f := newTaskForm(nil)
	setField(t, f, "title", "  Plan trip ")
	setField(t, f, progressField, "250")
	setField(t, f, "assignee", "sam")

	in, err := f.newTask()
	require.NoError(t, err)
	assert.Equal(t, "Plan trip", in.Title)
	assert.Equal(t, 100, in.Progress)
	assert.Equal(t, "sam", in.Assignee)
}

func TestUpdate_EmptyStatusOmitted(t *testing.T) {
	f := newTaskForm(&api.Task{ID: 2, Title: "X"})
	setField(t, f, "status", "")
	setField(t, f, progressField, "")

	u, err := f.update()
	require.NoError(t, err)
	assert.Nil(t, u.Status)
	require.NotNil(t, u.Progress)
	assert.Equal(t, 0, *u.Progress)
}

func TestStepProgress(t *testing.T) {
	f := newTaskForm(nil)
	f.stepProgress(progressStep)
	assert.Equal(t, "5", f.value(progressField))
	assert.Equal(t, progress.Danger, f.bar.Tier)

	setField(t, f, progressField, "68")
	f.stepProgress(progressStep)
	assert.Equal(t, "73", f.value(progressField))
	assert.Equal(t, progress.Success, f.bar.Tier)
}

func TestCanSubmit(t *testing.T) {
	f := newTaskForm(nil)
	now := f.submittedAt
	assert.True(t, f.canSubmit(now))

	f.submitting = true
	f.submittedAt = now
	assert.False(t, f.canSubmit(now.Add(submitTimeout/2)))
	assert.True(t, f.canSubmit(now.Add(submitTimeout)))
}

func TestFormView(t *testing.T) {
	f := newTaskForm(&api.Task{ID: 9, Title: "X", Progress: 45})
	out := f.view()
	assert.Contains(t, out, "Editing Task #9")
	assert.Contains(t, out, "45%")
}
