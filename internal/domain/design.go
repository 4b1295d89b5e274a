package domain

import "time"

type Design struct {
	DesignID    string    `json:"id" dynamodbav:"design_id"`
	ProjectID   string    `json:"project_id" dynamodbav:"project_id"`
	Title       string    `json:"title" dynamodbav:"title"`
	Description string    `json:"description" dynamodbav:"description"`
	ImageURL    string    `json:"image_url" dynamodbav:"image_url"`
	ObjectKey   string    `json:"-" dynamodbav:"object_key,omitempty"` // set when the image lives in our bucket
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateDesignRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

type UpdateDesignRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type DesignStats struct {
	ProjectID          string       `json:"project_id"`
	ProjectStats       ProjectStats `json:"project_stats"`
	ActualDesignsCount int          `json:"actual_designs_count"`
}
