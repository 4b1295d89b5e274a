package domain

import "time"

type NotificationType string

const (
	NotificationDeadlineApproaching NotificationType = "deadline_approaching"
	NotificationDeadlinePassed      NotificationType = "deadline_passed"
)

// Notification is created by the deadline scheduler. UserID is resolved from the
// task's project at write time and never re-derived afterwards.
type Notification struct {
	NotificationID string           `json:"id" dynamodbav:"notification_id"`
	UserID         string           `json:"user_id" dynamodbav:"user_id"`
	TaskID         string           `json:"task_id" dynamodbav:"task_id"`
	ProjectID      string           `json:"project_id" dynamodbav:"project_id"`
	Type           NotificationType `json:"type" dynamodbav:"type"`
	DedupKey       string           `json:"-" dynamodbav:"task_type"`
	Title          string           `json:"title" dynamodbav:"title"`
	Message        string           `json:"message" dynamodbav:"message"`
	IsRead         bool             `json:"is_read" dynamodbav:"is_read"`
	CreatedAt      time.Time        `json:"created" dynamodbav:"created_at,unixtime"`

	Task    *NotificationTask    `json:"task,omitempty" dynamodbav:"-"`
	Project *NotificationProject `json:"project,omitempty" dynamodbav:"-"`
}

// NotificationTask and NotificationProject are the display fields attached to the feed.
type NotificationTask struct {
	Title   string     `json:"title"`
	DueDate *time.Time `json:"due_date,omitempty"`
	Status  TaskStatus `json:"status"`
}

type NotificationProject struct {
	Name string `json:"name"`
}

// NotificationDedupKey is the partition value of the dedup index: one partition per (task, type).
func NotificationDedupKey(taskID string, t NotificationType) string {
	return taskID + "#" + string(t)
}

// DeadlineTask is a task annotated with the window it currently falls in.
type DeadlineTask struct {
	Task
	Window string `json:"window"`
}
