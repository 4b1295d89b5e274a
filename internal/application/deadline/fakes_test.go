package deadline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-projects-nosql/internal/domain"
)

// fakeTasks mimics the status/due_date index: pending tasks with a due date only.
type fakeTasks struct {
	tasks       []domain.Task
	upcomingErr error
	overdueErr  error
}

func (f *fakeTasks) ListPendingDueFrom(_ context.Context, from time.Time) ([]domain.Task, error) {
	if f.upcomingErr != nil {
		return nil, f.upcomingErr
	}
	var out []domain.Task
	for _, t := range f.tasks {
		if t.Status == domain.TaskPending && t.DueDate != nil && !t.DueDate.Before(from) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTasks) ListPendingDueBefore(_ context.Context, before time.Time) ([]domain.Task, error) {
	if f.overdueErr != nil {
		return nil, f.overdueErr
	}
	var out []domain.Task
	for _, t := range f.tasks {
		if t.Status == domain.TaskPending && t.DueDate != nil && t.DueDate.Before(before) {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeProjects struct {
	projects map[string]domain.Project
	err      error
	calls    int
}

func (f *fakeProjects) Get(_ context.Context, projectID string) (*domain.Project, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.projects[projectID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

type fakeNotifications struct {
	mu        sync.Mutex
	items     []domain.Notification
	putErrFor map[string]error
	lookupErr error
}

func (f *fakeNotifications) ExistsSince(_ context.Context, taskID string, t domain.NotificationType, since time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	for _, n := range f.items {
		if n.TaskID == taskID && n.Type == t && !n.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotifications) Put(_ context.Context, n *domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.putErrFor[n.TaskID]; err != nil {
		return err
	}
	f.items = append(f.items, *n)
	return nil
}

func (f *fakeNotifications) ofType(t domain.NotificationType) []domain.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Notification
	for _, n := range f.items {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

// clock is a settable time source.
type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

var errStore = errors.New("store unavailable")

func ptr(t time.Time) *time.Time { return &t }
