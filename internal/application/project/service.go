package project

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/go-projects-nosql/internal/domain"
	"github.com/go-projects-nosql/internal/pkg/id"
	"github.com/go-projects-nosql/internal/pkg/ownership"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldStatus      = "status"
	fieldProgress    = "progress"
	fieldColor       = "color"
	fieldDeadline    = "deadline"
)

type Service interface {
	List(ctx context.Context, userID string) ([]domain.Project, error)
	Create(ctx context.Context, userID string, req domain.CreateProjectRequest) (*domain.Project, error)
	Get(ctx context.Context, userID, projectID string) (*domain.Project, error)
	Update(ctx context.Context, userID, projectID string, req domain.UpdateProjectRequest) (*domain.Project, error)
	Delete(ctx context.Context, userID, projectID string) error
}

type projectStore interface {
	ownership.ProjectGetter
	Put(ctx context.Context, p *domain.Project) error
	ListByUser(ctx context.Context, userID string) ([]domain.Project, error)
	Update(ctx context.Context, projectID string, updates map[string]interface{}) error
	SetStats(ctx context.Context, projectID string, stats domain.ProjectStats) error
	Delete(ctx context.Context, projectID string) error
}

type taskStore interface {
	ListByProject(ctx context.Context, projectID string) ([]domain.Task, error)
	Delete(ctx context.Context, taskID string) error
}

type designStore interface {
	ListByProject(ctx context.Context, projectID string) ([]domain.Design, error)
	Delete(ctx context.Context, designID string) error
}

type objectDeleter interface {
	Delete(ctx context.Context, key string) error
}

type service struct {
	projects projectStore
	tasks    taskStore
	designs  designStore
	objects  objectDeleter
}

type ServiceDeps struct {
	ProjectRepo projectStore
	TaskRepo    taskStore
	DesignRepo  designStore
	Objects     objectDeleter
}

func NewService(deps ServiceDeps) Service {
	return &service{
		projects: deps.ProjectRepo,
		tasks:    deps.TaskRepo,
		designs:  deps.DesignRepo,
		objects:  deps.Objects,
	}
}

// List returns the caller's projects, most recently updated first.
func (s *service) List(ctx context.Context, userID string) ([]domain.Project, error) {
	projects, err := s.projects.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})
	return projects, nil
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateProjectRequest) (*domain.Project, error) {
	color := req.Color
	if color == "" {
		color = domain.DefaultProjectColor
	}
	now := time.Now().UTC()
	p := &domain.Project{
		ProjectID:   id.New(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.ProjectActive,
		Color:       color,
		Deadline:    req.Deadline,
		LastUpdate:  now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns the project with its design and deadline counters recomputed
// from the stores. The wireframe counter is only ever incremented.
func (s *service) Get(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	p, err := ownership.Project(ctx, s.projects, userID, projectID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	designs, err := s.designs.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	stats := domain.ProjectStats{
		Wireframes: p.Stats.Wireframes,
		Designs:    len(designs),
		Deadlines:  len(tasks),
	}
	if stats != p.Stats {
		if err := s.projects.SetStats(ctx, projectID, stats); err != nil {
			return nil, err
		}
		p.Stats = stats
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, userID, projectID string, req domain.UpdateProjectRequest) (*domain.Project, error) {
	if _, err := ownership.Project(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Name != nil && *req.Name != "" {
		updates[fieldName] = *req.Name
	}
	if req.Description != nil && *req.Description != "" {
		updates[fieldDescription] = *req.Description
	}
	if req.Status != nil && *req.Status != "" {
		updates[fieldStatus] = *req.Status
	}
	if req.Progress != nil {
		updates[fieldProgress] = *req.Progress
	}
	if req.Color != nil && *req.Color != "" {
		updates[fieldColor] = *req.Color
	}
	if req.Deadline != nil {
		updates[fieldDeadline] = req.Deadline.UTC()
	}
	// Update always stamps last_update, even for an empty body.
	if err := s.projects.Update(ctx, projectID, updates); err != nil {
		return nil, err
	}
	return s.projects.Get(ctx, projectID)
}

// Delete removes the project together with its tasks and designs.
func (s *service) Delete(ctx context.Context, userID, projectID string) error {
	if _, err := ownership.Project(ctx, s.projects, userID, projectID); err != nil {
		return err
	}
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if err := s.tasks.Delete(ctx, t.TaskID); err != nil {
			return err
		}
	}
	designs, err := s.designs.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}
	for _, d := range designs {
		if err := s.designs.Delete(ctx, d.DesignID); err != nil {
			return err
		}
		if d.ObjectKey != "" && s.objects != nil {
			if err := s.objects.Delete(ctx, d.ObjectKey); err != nil {
				slog.Warn("failed to delete design object", "design_id", d.DesignID, "key", d.ObjectKey, "err", err)
			}
		}
	}
	return s.projects.Delete(ctx, projectID)
}
