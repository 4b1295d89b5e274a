package task

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/go-projects-nosql/internal/domain"
	"github.com/go-projects-nosql/internal/infrastructure/dynamo"
	"github.com/go-projects-nosql/internal/pkg/id"
	"github.com/go-projects-nosql/internal/pkg/ownership"
)

type Service interface {
	ListByProject(ctx context.Context, userID, projectID string) ([]domain.Task, error)
	Create(ctx context.Context, userID, projectID string, req domain.CreateTaskRequest) (*domain.Task, error)
	Update(ctx context.Context, userID, taskID string, req domain.UpdateTaskRequest) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
	ToggleStatus(ctx context.Context, userID, taskID string) (*domain.Task, error)
}

type taskStore interface {
	Put(ctx context.Context, t *domain.Task) error
	Get(ctx context.Context, taskID string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Task, error)
	Delete(ctx context.Context, taskID string) error
}

type projectStore interface {
	ownership.ProjectGetter
	Touch(ctx context.Context, projectID string) error
	AdjustStat(ctx context.Context, projectID, stat string, delta int) error
}

type service struct {
	tasks    taskStore
	projects projectStore
}

func NewService(tasks taskStore, projects projectStore) Service {
	return &service{tasks: tasks, projects: projects}
}

// ListByProject returns the project's tasks by due date, undated tasks last.
func (s *service) ListByProject(ctx context.Context, userID, projectID string) ([]domain.Task, error) {
	if _, err := ownership.Project(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].DueDate, tasks[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return tasks, nil
}

func (s *service) Create(ctx context.Context, userID, projectID string, req domain.CreateTaskRequest) (*domain.Task, error) {
	if _, err := ownership.Project(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	now := time.Now().UTC()
	t := &domain.Task{
		TaskID:      id.New(),
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     utcPtr(req.DueDate),
		Status:      domain.TaskPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.Put(ctx, t); err != nil {
		return nil, err
	}
	if err := s.projects.AdjustStat(ctx, projectID, dynamo.StatDeadlines, 1); err != nil {
		slog.Warn("failed to bump deadlines counter", "project_id", projectID, "err", err)
	}
	return t, nil
}

func (s *service) Update(ctx context.Context, userID, taskID string, req domain.UpdateTaskRequest) (*domain.Task, error) {
	t, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if req.Title != nil && *req.Title != "" {
		t.Title = *req.Title
	}
	if req.Description != nil && *req.Description != "" {
		t.Description = *req.Description
	}
	if req.DueDate != nil {
		t.DueDate = utcPtr(req.DueDate)
	}
	if req.Priority != nil && *req.Priority != "" {
		t.Priority = *req.Priority
	}
	if req.Status != nil && *req.Status != "" {
		t.Status = *req.Status
	}
	return s.save(ctx, t)
}

func (s *service) Delete(ctx context.Context, userID, taskID string) error {
	t, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}
	if err := s.projects.AdjustStat(ctx, t.ProjectID, dynamo.StatDeadlines, -1); err != nil {
		slog.Warn("failed to decrement deadlines counter", "project_id", t.ProjectID, "err", err)
	}
	return nil
}

func (s *service) ToggleStatus(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	t, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	t.Toggle()
	return s.save(ctx, t)
}

// save writes the whole item so due_date keeps its numeric index encoding.
func (s *service) save(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	t.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Put(ctx, t); err != nil {
		return nil, err
	}
	if err := s.projects.Touch(ctx, t.ProjectID); err != nil {
		slog.Warn("failed to touch project", "project_id", t.ProjectID, "err", err)
	}
	return t, nil
}

// ownedTask loads the task and verifies the caller owns its project.
func (s *service) ownedTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	t, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := ownership.Project(ctx, s.projects, userID, t.ProjectID); err != nil {
		return nil, err
	}
	return t, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
