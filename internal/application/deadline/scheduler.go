package deadline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-projects-nosql/internal/domain"
	"github.com/go-projects-nosql/internal/pkg/id"
	"github.com/robfig/cron/v3"
)

const (
	DefaultInterval = 10 * time.Minute

	TitleApproaching = "Deadline Approaching"
	TitlePassed      = "Deadline Passed"
)

// ErrBusy is returned when a run is requested while another one is in progress.
var ErrBusy = fmt.Errorf("deadline check already running: %w", domain.ErrConflict)

// Trigger labels for logs and metrics.
const (
	triggerTick   = "tick"
	triggerManual = "manual"
)

type taskStore interface {
	ListPendingDueFrom(ctx context.Context, from time.Time) ([]domain.Task, error)
	ListPendingDueBefore(ctx context.Context, before time.Time) ([]domain.Task, error)
}

type projectStore interface {
	Get(ctx context.Context, projectID string) (*domain.Project, error)
}

type notificationStore interface {
	recentLookup
	Put(ctx context.Context, n *domain.Notification) error
}

// Dispatcher delivers a persisted notification outside the in-app feed.
type Dispatcher interface {
	Dispatch(ctx context.Context, n *domain.Notification) error
}

// PassResult summarizes one pass over the task store.
type PassResult struct {
	Found      int // tasks that qualified for the pass
	Created    int
	Suppressed int // skipped by the recency window
	Skipped    int // project or owner could not be resolved
	Failed     int
}

// TickResult is the outcome of both passes. A non-nil error means that pass's task query failed.
type TickResult struct {
	Approaching    PassResult
	Passed         PassResult
	ApproachingErr error
	PassedErr      error
}

// Scheduler periodically turns task deadlines into notifications. It owns its
// cron engine; Start and Stop bracket its lifetime.
type Scheduler struct {
	tasks         taskStore
	projects      projectStore
	notifications notificationStore
	dedup         *Deduplicator
	dispatcher    Dispatcher
	metrics       *Metrics
	log           *slog.Logger
	interval      time.Duration
	now           func() time.Time

	cron    *cron.Cron
	running atomic.Bool
}

type Option func(*Scheduler)

func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

func WithDispatcher(d Dispatcher) Option {
	return func(s *Scheduler) { s.dispatcher = d }
}

func WithMetrics(m *Metrics) Option {
	return func(s *Scheduler) { s.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

func NewScheduler(tasks taskStore, projects projectStore, notifications notificationStore, opts ...Option) *Scheduler {
	s := &Scheduler{
		tasks:         tasks,
		projects:      projects,
		notifications: notifications,
		dedup:         NewDeduplicator(notifications),
		log:           slog.Default(),
		interval:      DefaultInterval,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "deadline_scheduler")
	logger := cronLogger{log: s.log}
	s.cron = cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	return s
}

// Start registers the periodic check and starts the engine. Ticks run with ctx;
// cancelling it aborts in-flight store calls but does not stop the engine.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc("@every "+s.interval.String(), func() { s.tick(ctx) }); err != nil {
		return fmt.Errorf("schedule deadline check: %w", err)
	}
	s.cron.Start()
	s.log.Info("deadline scheduler started", "interval", s.interval)
	return nil
}

// Stop halts the engine. The returned context is done once a running tick has finished.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("deadline scheduler stopping")
	return s.cron.Stop()
}

func (s *Scheduler) tick(ctx context.Context) {
	res, err := s.RunOnce(ctx)
	if err != nil {
		s.log.Warn("deadline tick not run", "err", err)
		return
	}
	if res.ApproachingErr != nil || res.PassedErr != nil {
		s.metrics.tick(triggerTick, "partial")
		return
	}
	s.metrics.tick(triggerTick, "ok")
}

// RunOnce runs the approaching pass and then the passed pass. A failure in one
// pass does not prevent the other. It returns ErrBusy if a run is in progress.
func (s *Scheduler) RunOnce(ctx context.Context) (TickResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		s.metrics.tick(triggerTick, "busy")
		return TickResult{}, ErrBusy
	}
	defer s.running.Store(false)

	start := time.Now()
	defer func() { s.metrics.observeTick(time.Since(start).Seconds()) }()

	now := s.now()
	var res TickResult
	res.Approaching, res.ApproachingErr = s.approachingPass(ctx, now)
	res.Passed, res.PassedErr = s.passedPass(ctx, now)
	return res, nil
}

// RunPassedPass runs only the passed pass, synchronously, for the manual trigger.
func (s *Scheduler) RunPassedPass(ctx context.Context) (PassResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		s.metrics.tick(triggerManual, "busy")
		return PassResult{}, ErrBusy
	}
	defer s.running.Store(false)

	res, err := s.passedPass(ctx, s.now())
	if err != nil {
		s.metrics.tick(triggerManual, "failed")
		return res, err
	}
	s.metrics.tick(triggerManual, "ok")
	return res, nil
}

func (s *Scheduler) approachingPass(ctx context.Context, now time.Time) (PassResult, error) {
	var res PassResult
	tasks, err := s.tasks.ListPendingDueFrom(ctx, now)
	if err != nil {
		s.log.Error("approaching pass: list tasks", "err", err)
		return res, fmt.Errorf("list upcoming tasks: %w", err)
	}

	owners := newOwnerCache(s.projects)
	for i := range tasks {
		t := &tasks[i]
		if t.DueDate == nil || t.Status != domain.TaskPending {
			continue
		}
		windows := Classify(now, *t.DueDate)
		if len(windows) == 0 {
			continue
		}
		res.Found++
		for _, w := range windows {
			msg := fmt.Sprintf("Task \"%s\" is due in %s", t.Title, w.Label)
			s.emit(ctx, now, t, owners, domain.NotificationDeadlineApproaching, TitleApproaching, msg, &res)
		}
	}
	s.log.Info("approaching pass done",
		"found", res.Found, "created", res.Created, "suppressed", res.Suppressed,
		"skipped", res.Skipped, "failed", res.Failed)
	return res, nil
}

func (s *Scheduler) passedPass(ctx context.Context, now time.Time) (PassResult, error) {
	var res PassResult
	tasks, err := s.tasks.ListPendingDueBefore(ctx, now)
	if err != nil {
		s.log.Error("passed pass: list tasks", "err", err)
		return res, fmt.Errorf("list overdue tasks: %w", err)
	}

	owners := newOwnerCache(s.projects)
	for i := range tasks {
		t := &tasks[i]
		if t.DueDate == nil || t.Status != domain.TaskPending || !IsPassed(now, *t.DueDate) {
			continue
		}
		res.Found++
		msg := fmt.Sprintf("Task \"%s\" has passed its deadline", t.Title)
		s.emit(ctx, now, t, owners, domain.NotificationDeadlinePassed, TitlePassed, msg, &res)
	}
	s.log.Info("passed pass done",
		"found", res.Found, "created", res.Created, "suppressed", res.Suppressed,
		"skipped", res.Skipped, "failed", res.Failed)
	return res, nil
}

// emit resolves the owner, applies dedup, persists and dispatches one notification.
// Every failure is contained here and recorded on res.
func (s *Scheduler) emit(ctx context.Context, now time.Time, t *domain.Task, owners *ownerCache,
	typ domain.NotificationType, title, msg string, res *PassResult) {
	log := s.log.With("task_id", t.TaskID, "type", typ)

	userID, err := owners.resolve(ctx, t.ProjectID)
	if errors.Is(err, errNoOwner) {
		log.Warn("skipping task without resolvable owner", "project_id", t.ProjectID, "err", err)
		res.Skipped++
		s.metrics.taskFailed("owner_missing")
		return
	}
	if err != nil {
		log.Error("resolve task owner", "project_id", t.ProjectID, "err", err)
		res.Failed++
		s.metrics.taskFailed("owner_lookup")
		return
	}

	ok, err := s.dedup.ShouldEmit(ctx, t.TaskID, typ, now)
	if err != nil {
		log.Error("dedup check", "err", err)
		res.Failed++
		s.metrics.taskFailed("dedup")
		return
	}
	if !ok {
		res.Suppressed++
		s.metrics.notificationSuppressed(typ)
		return
	}

	n := &domain.Notification{
		NotificationID: id.New(),
		UserID:         userID,
		TaskID:         t.TaskID,
		ProjectID:      t.ProjectID,
		Type:           typ,
		Title:          title,
		Message:        msg,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.notifications.Put(ctx, n); err != nil {
		log.Error("persist notification", "err", err)
		res.Failed++
		s.metrics.taskFailed("persist")
		return
	}
	res.Created++
	s.metrics.notificationCreated(typ)
	log.Info("notification created", "notification_id", n.NotificationID, "user_id", userID)

	if s.dispatcher != nil {
		if err := s.dispatcher.Dispatch(ctx, n); err != nil {
			log.Warn("deliver notification", "notification_id", n.NotificationID, "err", err)
			s.metrics.taskFailed("dispatch")
		}
	}
}

var errNoOwner = errors.New("task has no resolvable owner")

// ownerCache memoizes project owner lookups for the duration of one pass.
type ownerCache struct {
	projects projectStore
	owners   map[string]string
}

func newOwnerCache(projects projectStore) *ownerCache {
	return &ownerCache{projects: projects, owners: make(map[string]string)}
}

func (c *ownerCache) resolve(ctx context.Context, projectID string) (string, error) {
	if userID, ok := c.owners[projectID]; ok {
		if userID == "" {
			return "", errNoOwner
		}
		return userID, nil
	}
	if projectID == "" {
		return "", errNoOwner
	}
	p, err := c.projects.Get(ctx, projectID)
	if errors.Is(err, domain.ErrNotFound) {
		c.owners[projectID] = ""
		return "", fmt.Errorf("project %s: %w", projectID, errNoOwner)
	}
	if err != nil {
		return "", err
	}
	c.owners[projectID] = p.UserID
	if p.UserID == "" {
		return "", errNoOwner
	}
	return p.UserID, nil
}
