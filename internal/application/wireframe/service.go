package wireframe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-projects-nosql/internal/domain"
	"github.com/go-projects-nosql/internal/infrastructure/dynamo"
	"github.com/go-projects-nosql/internal/pkg/id"
	"github.com/go-projects-nosql/internal/pkg/ownership"
)

// SnapshotTTL is how long a snapshot's presigned URL stays valid.
const SnapshotTTL = 24 * time.Hour

type Service interface {
	Generate(ctx context.Context, userID string, req domain.GenerateWireframeRequest) (string, error)
	Count(ctx context.Context, userID, projectID string) (int, error)
	Snapshot(ctx context.Context, req domain.WireframeSnapshotRequest) (*domain.WireframeSnapshot, error)
}

type modelClient interface {
	Predict(ctx context.Context, prompt, color string) (string, error)
}

type llmClient interface {
	CompleteHTML(ctx context.Context, prompt string) (string, error)
}

type generationStore interface {
	Put(ctx context.Context, g *domain.WireframeGeneration) error
	CountByProject(ctx context.Context, projectID string) (int, error)
}

type projectStore interface {
	ownership.ProjectGetter
	AdjustStat(ctx context.Context, projectID, stat string, delta int) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type service struct {
	model       modelClient
	llm         llmClient
	generations generationStore
	projects    projectStore
	objects     objectStore
}

// ServiceDeps wires the service. LLM and Objects may be left nil: ai generation
// then always uses the fallback template and snapshots are unavailable.
type ServiceDeps struct {
	Model          modelClient
	LLM            llmClient
	GenerationRepo generationStore
	ProjectRepo    projectStore
	Objects        objectStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		model:       deps.Model,
		llm:         deps.LLM,
		generations: deps.GenerationRepo,
		projects:    deps.ProjectRepo,
		objects:     deps.Objects,
	}
}

// Generate returns wireframe HTML for the prompt. When a project is given the
// generation is recorded against it; recording failures are only logged.
func (s *service) Generate(ctx context.Context, userID string, req domain.GenerateWireframeRequest) (string, error) {
	method := req.Method
	if method == "" {
		method = domain.WireframeMethodPython
	}
	color := req.PrimaryColor
	if color == "" {
		color = domain.DefaultPrimaryColor
	}
	if req.ProjectID != "" {
		if _, err := ownership.Project(ctx, s.projects, userID, req.ProjectID); err != nil {
			return "", err
		}
	}

	var out string
	switch method {
	case domain.WireframeMethodPython:
		html, err := s.model.Predict(ctx, req.Prompt, color)
		if err != nil {
			return "", fmt.Errorf("generate wireframe: %w", err)
		}
		out = html
	case domain.WireframeMethodAI:
		out = s.complete(ctx, generatePrompt(req.Prompt, color), req.Prompt, color)
	default:
		return "", fmt.Errorf("invalid generation method %q: %w", method, domain.ErrBadRequest)
	}

	if req.ProjectID != "" {
		s.record(ctx, req.ProjectID, req.Prompt, method)
	}
	return out, nil
}

func (s *service) record(ctx context.Context, projectID, prompt, method string) {
	g := &domain.WireframeGeneration{
		GenerationID: id.New(),
		ProjectID:    projectID,
		Prompt:       prompt,
		Method:       method,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.generations.Put(ctx, g); err != nil {
		slog.Error("failed to save wireframe generation", "project_id", projectID, "err", err)
		return
	}
	if err := s.projects.AdjustStat(ctx, projectID, dynamo.StatWireframes, 1); err != nil {
		slog.Warn("failed to bump wireframes counter", "project_id", projectID, "err", err)
	}
}

func (s *service) Count(ctx context.Context, userID, projectID string) (int, error) {
	if _, err := ownership.Project(ctx, s.projects, userID, projectID); err != nil {
		return 0, err
	}
	return s.generations.CountByProject(ctx, projectID)
}

// Snapshot turns the HTML into a monochrome wireframe, stores it in the bucket
// and returns a presigned link to it.
func (s *service) Snapshot(ctx context.Context, req domain.WireframeSnapshotRequest) (*domain.WireframeSnapshot, error) {
	if s.objects == nil {
		return nil, fmt.Errorf("object storage not configured: %w", domain.ErrUnavailable)
	}
	out := s.complete(ctx, monochromePrompt(req.HTML, req.Prompt), req.Prompt, req.PrimaryColor)
	key := "wireframes/" + id.New() + ".html"
	if err := s.objects.Upload(ctx, key, strings.NewReader(out), "text/html; charset=utf-8"); err != nil {
		return nil, fmt.Errorf("store snapshot: %w", err)
	}
	url, err := s.objects.PresignedURL(ctx, key, SnapshotTTL)
	if err != nil {
		return nil, fmt.Errorf("presign snapshot: %w", err)
	}
	return &domain.WireframeSnapshot{Key: key, URL: url}, nil
}

// complete asks the language model and falls back to the fixed template on any failure.
func (s *service) complete(ctx context.Context, llmPrompt, prompt, color string) string {
	if s.llm == nil {
		return Fallback(prompt, color)
	}
	out, err := s.llm.CompleteHTML(ctx, llmPrompt)
	if err != nil {
		slog.Warn("llm wireframe failed, using fallback", "err", err)
		return Fallback(prompt, color)
	}
	return out
}

func generatePrompt(prompt, color string) string {
	return fmt.Sprintf("You are a UI wireframe generator. Create a complete HTML/CSS wireframe based on this description: \"%s\". "+
		"Use the primary color %s for key elements. The wireframe should be responsive and follow modern design principles. "+
		"Return ONLY the complete HTML/CSS code.", prompt, color)
}

func monochromePrompt(html, prompt string) string {
	return fmt.Sprintf("You are a UI wireframe assistant. ONLY return HTML/CSS for a wireframe in black, white, and gray (no other colors). "+
		"Do not use any color except black, white, or gray for backgrounds, borders, or text. "+
		"The image should be visually simple and minimal, with no color. "+
		"Input HTML: %s User's original request: \"%s\" Generate a small, minimal, black-and-white wireframe.", html, prompt)
}
