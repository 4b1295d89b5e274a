package domain

import "time"

const (
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectArchived  = "archived"

	DefaultProjectColor = "#4A90E2"
)

// ProjectStats is a denormalized counter block kept on the project item.
type ProjectStats struct {
	Wireframes int `json:"wireframes" dynamodbav:"wireframes"`
	Designs    int `json:"designs" dynamodbav:"designs"`
	Deadlines  int `json:"deadlines" dynamodbav:"deadlines"`
}

type Project struct {
	ProjectID   string       `json:"id" dynamodbav:"project_id"`
	UserID      string       `json:"user_id" dynamodbav:"user_id"`
	Name        string       `json:"name" dynamodbav:"name"`
	Description string       `json:"description" dynamodbav:"description"`
	Status      string       `json:"status" dynamodbav:"status"`
	Progress    int          `json:"progress" dynamodbav:"progress"`
	Color       string       `json:"color" dynamodbav:"color"`
	Deadline    *time.Time   `json:"deadline,omitempty" dynamodbav:"deadline,omitempty"`
	LastUpdate  time.Time    `json:"last_update" dynamodbav:"last_update"`
	Stats       ProjectStats `json:"stats" dynamodbav:"stats"`
	CreatedAt   time.Time    `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time    `json:"updated" dynamodbav:"updated_at"`
}

type CreateProjectRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Color       string     `json:"color" validate:"omitempty,hexcolor"`
	Deadline    *time.Time `json:"deadline"`
}

type UpdateProjectRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" validate:"omitempty,oneof=active completed archived"`
	Progress    *int       `json:"progress" validate:"omitempty,min=0,max=100"`
	Color       *string    `json:"color" validate:"omitempty,hexcolor"`
	Deadline    *time.Time `json:"deadline"`
}
