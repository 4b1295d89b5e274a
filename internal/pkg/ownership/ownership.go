package ownership

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-projects-nosql/internal/domain"
)

// ProjectGetter is the slice of the project store ownership checks need.
type ProjectGetter interface {
	Get(ctx context.Context, projectID string) (*domain.Project, error)
}

// Project returns the project when userID owns it. A project owned by someone
// else is reported as not found so its existence is not leaked.
func Project(ctx context.Context, projects ProjectGetter, userID, projectID string) (*domain.Project, error) {
	p, err := projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("project not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	if p.UserID != userID {
		return nil, fmt.Errorf("project not found: %w", domain.ErrNotFound)
	}
	return p, nil
}
