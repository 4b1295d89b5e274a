package design

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/go-projects-nosql/internal/domain"
	"github.com/go-projects-nosql/internal/infrastructure/dynamo"
	"github.com/go-projects-nosql/internal/pkg/id"
	"github.com/go-projects-nosql/internal/pkg/ownership"
)

const (
	fieldTitle       = "title"
	fieldDescription = "description"
)

// Upload is an image sent with the create request instead of an image URL.
type Upload struct {
	Body        io.Reader
	Filename    string
	ContentType string
}

type Service interface {
	List(ctx context.Context, userID, projectID string) ([]domain.Design, error)
	Create(ctx context.Context, userID, projectID string, req domain.CreateDesignRequest, upload *Upload) (*domain.Design, error)
	Update(ctx context.Context, userID, designID string, req domain.UpdateDesignRequest) (*domain.Design, error)
	Delete(ctx context.Context, userID, designID string) error
	Stats(ctx context.Context, userID, projectID string) (*domain.DesignStats, error)
}

type designStore interface {
	Put(ctx context.Context, d *domain.Design) error
	Get(ctx context.Context, designID string) (*domain.Design, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Design, error)
	CountByProject(ctx context.Context, projectID string) (int, error)
	Update(ctx context.Context, designID string, updates map[string]interface{}) error
	Delete(ctx context.Context, designID string) error
}

type projectStore interface {
	ownership.ProjectGetter
	AdjustStat(ctx context.Context, projectID, stat string, delta int) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	URL(key string) string
	Delete(ctx context.Context, key string) error
}

type service struct {
	designs  designStore
	projects projectStore
	objects  objectStore
}

type ServiceDeps struct {
	DesignRepo  designStore
	ProjectRepo projectStore
	Objects     objectStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		designs:  deps.DesignRepo,
		projects: deps.ProjectRepo,
		objects:  deps.Objects,
	}
}

func (s *service) List(ctx context.Context, userID, projectID string) ([]domain.Design, error) {
	if _, err := ownership.Project(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	return s.designs.ListByProject(ctx, projectID)
}

// Create stores a design. An upload takes precedence over req.ImageURL and is
// written to the bucket under designs/<project>/<design><ext>.
func (s *service) Create(ctx context.Context, userID, projectID string, req domain.CreateDesignRequest, upload *Upload) (*domain.Design, error) {
	if _, err := ownership.Project(ctx, s.projects, userID, projectID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	d := &domain.Design{
		DesignID:    id.New(),
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if upload != nil {
		if s.objects == nil {
			return nil, fmt.Errorf("object storage not configured: %w", domain.ErrUnavailable)
		}
		key := "designs/" + projectID + "/" + d.DesignID + strings.ToLower(path.Ext(upload.Filename))
		if err := s.objects.Upload(ctx, key, upload.Body, upload.ContentType); err != nil {
			return nil, fmt.Errorf("upload design image: %w", err)
		}
		d.ObjectKey = key
		d.ImageURL = s.objects.URL(key)
	}
	if d.ImageURL == "" {
		return nil, fmt.Errorf("no image provided: %w", domain.ErrBadRequest)
	}
	if err := s.designs.Put(ctx, d); err != nil {
		return nil, err
	}
	if err := s.projects.AdjustStat(ctx, projectID, dynamo.StatDesigns, 1); err != nil {
		slog.Warn("failed to bump designs counter", "project_id", projectID, "err", err)
	}
	return d, nil
}

func (s *service) Update(ctx context.Context, userID, designID string, req domain.UpdateDesignRequest) (*domain.Design, error) {
	d, err := s.ownedDesign(ctx, userID, designID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Title != nil && *req.Title != "" {
		updates[fieldTitle] = *req.Title
		d.Title = *req.Title
	}
	if req.Description != nil && *req.Description != "" {
		updates[fieldDescription] = *req.Description
		d.Description = *req.Description
	}
	if len(updates) == 0 {
		return d, nil
	}
	if err := s.designs.Update(ctx, designID, updates); err != nil {
		return nil, err
	}
	return s.designs.Get(ctx, designID)
}

func (s *service) Delete(ctx context.Context, userID, designID string) error {
	d, err := s.ownedDesign(ctx, userID, designID)
	if err != nil {
		return err
	}
	if err := s.designs.Delete(ctx, designID); err != nil {
		return err
	}
	if d.ObjectKey != "" && s.objects != nil {
		if err := s.objects.Delete(ctx, d.ObjectKey); err != nil {
			slog.Warn("failed to delete design object", "design_id", designID, "key", d.ObjectKey, "err", err)
		}
	}
	if err := s.projects.AdjustStat(ctx, d.ProjectID, dynamo.StatDesigns, -1); err != nil {
		slog.Warn("failed to decrement designs counter", "project_id", d.ProjectID, "err", err)
	}
	return nil
}

// Stats reports the stored counters next to the live design count.
func (s *service) Stats(ctx context.Context, userID, projectID string) (*domain.DesignStats, error) {
	p, err := ownership.Project(ctx, s.projects, userID, projectID)
	if err != nil {
		return nil, err
	}
	n, err := s.designs.CountByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &domain.DesignStats{
		ProjectID:          projectID,
		ProjectStats:       p.Stats,
		ActualDesignsCount: n,
	}, nil
}

func (s *service) ownedDesign(ctx context.Context, userID, designID string) (*domain.Design, error) {
	d, err := s.designs.Get(ctx, designID)
	if err != nil {
		return nil, err
	}
	if _, err := ownership.Project(ctx, s.projects, userID, d.ProjectID); err != nil {
		return nil, err
	}
	return d, nil
}
