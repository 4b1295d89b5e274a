package domain

import "time"

const (
	WireframeMethodPython = "python"
	WireframeMethodAI     = "ai"

	DefaultPrimaryColor = "#2196F3"
)

// WireframeGeneration records one generation request against a project.
type WireframeGeneration struct {
	GenerationID string    `json:"id" dynamodbav:"generation_id"`
	ProjectID    string    `json:"project_id" dynamodbav:"project_id"`
	Prompt       string    `json:"prompt" dynamodbav:"prompt"`
	Method       string    `json:"method" dynamodbav:"method"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
}

type GenerateWireframeRequest struct {
	Prompt       string `json:"prompt" validate:"required"`
	Method       string `json:"method" validate:"omitempty,oneof=python ai"`
	PrimaryColor string `json:"primary_color" validate:"omitempty,hexcolor"`
	ProjectID    string `json:"project_id" validate:"omitempty,ulid"`
}

type WireframeSnapshotRequest struct {
	HTML         string `json:"html" validate:"required"`
	Prompt       string `json:"prompt" validate:"required"`
	PrimaryColor string `json:"primary_color" validate:"required,hexcolor"`
}

type WireframeSnapshot struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
