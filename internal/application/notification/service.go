package notification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-projects-nosql/internal/application/deadline"
	"github.com/go-projects-nosql/internal/domain"
)

// FeedLimit caps the unread feed.
const FeedLimit = 20

type Service interface {
	List(ctx context.Context, userID string) ([]domain.Notification, error)
	Deadlines(ctx context.Context, userID string) ([]domain.DeadlineTask, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) (int, error)
	Count(ctx context.Context, userID string) (int, error)
	TriggerPassedCheck(ctx context.Context) (deadline.PassResult, error)
}

type notificationStore interface {
	ListUnread(ctx context.Context, userID string, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	MarkAllRead(ctx context.Context, userID string) (int, error)
}

type taskStore interface {
	Get(ctx context.Context, taskID string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Task, error)
}

type projectStore interface {
	Get(ctx context.Context, projectID string) (*domain.Project, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Project, error)
}

type passRunner interface {
	RunPassedPass(ctx context.Context) (deadline.PassResult, error)
}

type service struct {
	notifications notificationStore
	tasks         taskStore
	projects      projectStore
	runner        passRunner
	now           func() time.Time
}

type ServiceDeps struct {
	NotificationRepo notificationStore
	TaskRepo         taskStore
	ProjectRepo      projectStore
	Scheduler        passRunner
}

func NewService(deps ServiceDeps) Service {
	return &service{
		notifications: deps.NotificationRepo,
		tasks:         deps.TaskRepo,
		projects:      deps.ProjectRepo,
		runner:        deps.Scheduler,
		now:           time.Now,
	}
}

// List returns the caller's unread notifications, newest first, with the task
// and project display fields attached when those still exist.
func (s *service) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	ns, err := s.notifications.ListUnread(ctx, userID, FeedLimit)
	if err != nil {
		return nil, err
	}
	tasks := map[string]*domain.NotificationTask{}
	projects := map[string]*domain.NotificationProject{}
	for i := range ns {
		n := &ns[i]
		if n.TaskID != "" {
			t, ok := tasks[n.TaskID]
			if !ok {
				t = s.taskView(ctx, n.TaskID)
				tasks[n.TaskID] = t
			}
			n.Task = t
		}
		if n.ProjectID != "" {
			p, ok := projects[n.ProjectID]
			if !ok {
				p = s.projectView(ctx, n.ProjectID)
				projects[n.ProjectID] = p
			}
			n.Project = p
		}
	}
	return ns, nil
}

func (s *service) taskView(ctx context.Context, taskID string) *domain.NotificationTask {
	t, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Warn("failed to load notification task", "task_id", taskID, "err", err)
		}
		return nil
	}
	return &domain.NotificationTask{Title: t.Title, DueDate: t.DueDate, Status: t.Status}
}

func (s *service) projectView(ctx context.Context, projectID string) *domain.NotificationProject {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Warn("failed to load notification project", "project_id", projectID, "err", err)
		}
		return nil
	}
	return &domain.NotificationProject{Name: p.Name}
}

// Deadlines classifies the caller's upcoming pending tasks without persisting
// anything. A task appears once per window it matches.
func (s *service) Deadlines(ctx context.Context, userID string) ([]domain.DeadlineTask, error) {
	projects, err := s.projects.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := []domain.DeadlineTask{}
	for _, p := range projects {
		tasks, err := s.tasks.ListByProject(ctx, p.ProjectID)
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			if t.Status != domain.TaskPending || t.DueDate == nil || t.DueDate.Before(now) {
				continue
			}
			for _, w := range deadline.Classify(now, *t.DueDate) {
				out = append(out, domain.DeadlineTask{Task: t, Window: w.Label})
			}
		}
	}
	return out, nil
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID string) error {
	return s.notifications.MarkRead(ctx, userID, notificationID)
}

func (s *service) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}

func (s *service) Count(ctx context.Context, userID string) (int, error) {
	return s.notifications.CountUnread(ctx, userID)
}

// TriggerPassedCheck runs the overdue pass now. It fails with a conflict while
// a scheduled check is in progress.
func (s *service) TriggerPassedCheck(ctx context.Context) (deadline.PassResult, error) {
	return s.runner.RunPassedPass(ctx)
}
