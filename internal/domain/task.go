package domain

import "time"

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a deadline inside a project. DueDate is stored as a unix-seconds number so
// that the status/due_date index can answer range queries; tasks without a due date
// are absent from that index.
type Task struct {
	TaskID      string     `json:"id" dynamodbav:"task_id"`
	ProjectID   string     `json:"project_id" dynamodbav:"project_id"`
	Title       string     `json:"title" dynamodbav:"title"`
	Description string     `json:"description" dynamodbav:"description"`
	Priority    string     `json:"priority" dynamodbav:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty" dynamodbav:"due_date,omitempty,unixtime"`
	Status      TaskStatus `json:"status" dynamodbav:"status"`
	CreatedAt   time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time  `json:"updated" dynamodbav:"updated_at"`
}

// Toggle flips the task between pending and completed.
func (t *Task) Toggle() {
	if t.Status == TaskCompleted {
		t.Status = TaskPending
		return
	}
	t.Status = TaskCompleted
}

type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
}

type UpdateTaskRequest struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	DueDate     *time.Time  `json:"due_date"`
	Priority    *string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status      *TaskStatus `json:"status" validate:"omitempty,oneof=pending completed"`
}
