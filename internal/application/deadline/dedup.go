package deadline

import (
	"context"
	"fmt"
	"time"

	"github.com/go-projects-nosql/internal/domain"
)

const (
	ApproachingRecency = 10 * time.Minute
	PassedRecency      = 60 * time.Minute
)

// RecencyWindow is how far back an earlier notification of type t suppresses a new one.
func RecencyWindow(t domain.NotificationType) time.Duration {
	if t == domain.NotificationDeadlinePassed {
		return PassedRecency
	}
	return ApproachingRecency
}

type recentLookup interface {
	ExistsSince(ctx context.Context, taskID string, t domain.NotificationType, since time.Time) (bool, error)
}

// Deduplicator suppresses a notification when one of the same task and type was
// stored within the type's recency window. Check and insert are not atomic.
type Deduplicator struct {
	store recentLookup
}

func NewDeduplicator(store recentLookup) *Deduplicator {
	return &Deduplicator{store: store}
}

func (d *Deduplicator) ShouldEmit(ctx context.Context, taskID string, t domain.NotificationType, now time.Time) (bool, error) {
	exists, err := d.store.ExistsSince(ctx, taskID, t, now.Add(-RecencyWindow(t)))
	if err != nil {
		return false, fmt.Errorf("dedup lookup for task %s: %w", taskID, err)
	}
	return !exists, nil
}
