package api

// Task statuses understood by the server.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Statuses lists the task statuses in workflow order.
var Statuses = []string{StatusPending, StatusInProgress, StatusCompleted}

type Task struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	Status           string `json:"status"`
	Progress         int    `json:"progress"`
	PlannedStartDate string `json:"planned_start_date,omitempty"`
	PlannedEndDate   string `json:"planned_end_date,omitempty"`
	Assignee         string `json:"assignee,omitempty"`
	Category         string `json:"category,omitempty"`
	CreatorID        int    `json:"creator_id,omitempty"`
	CreatorName      string `json:"creator_name,omitempty"`
	CreatedAt        string `json:"created_at,omitempty"`
	UpdatedAt        string `json:"updated_at,omitempty"`
}

// NewTask is the body of a create request. Empty optional fields are left
// out so the server applies its defaults.
type NewTask struct {
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	Status           string `json:"status,omitempty"`
	Progress         int    `json:"progress"`
	PlannedStartDate string `json:"planned_start_date,omitempty"`
	PlannedEndDate   string `json:"planned_end_date,omitempty"`
	Assignee         string `json:"assignee,omitempty"`
	Category         string `json:"category,omitempty"`
}

// TaskUpdate is a partial update; nil fields are not sent.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Progress    *int    `json:"progress,omitempty"`
}

type Stats struct {
	TotalTasks      int     `json:"total_tasks"`
	CompletedTasks  int     `json:"completed_tasks"`
	InProgressTasks int     `json:"in_progress_tasks"`
	PendingTasks    int     `json:"pending_tasks"`
	CompletionRate  float64 `json:"completion_rate"`
}

type taskList struct {
	Tasks []Task `json:"tasks"`
	Count int    `json:"count"`
}

type taskEnvelope struct {
	Task Task `json:"task"`
}

type progressBody struct {
	Progress int `json:"progress"`
}

type messageBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
