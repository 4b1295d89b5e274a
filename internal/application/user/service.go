package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-projects-nosql/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldUsername     = "username"
	fieldEmail        = "email"
	fieldContact      = "contact"
	fieldBio          = "bio"
	fieldProfileImage = "profile_image"
	fieldPasswordHash = "password_hash"
)

type Service interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error)
	UpdateProfileImage(ctx context.Context, userID, imageURL string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID string, req domain.ChangePasswordRequest) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type service struct {
	repo userStore
}

func NewService(repo userStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

// UpdateProfile applies the non-empty fields of req. A new username or email
// must not belong to another account.
func (s *service) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Username != nil && *req.Username != "" && *req.Username != u.Username {
		if err := s.ensureFree(ctx, s.repo.GetByUsername, *req.Username, userID); err != nil {
			return nil, err
		}
		updates[fieldUsername] = *req.Username
	}
	if req.Email != nil && *req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != u.Email {
			if err := s.ensureFree(ctx, s.repo.GetByEmail, email, userID); err != nil {
				return nil, err
			}
			updates[fieldEmail] = email
		}
	}
	if req.Contact != nil && *req.Contact != "" {
		updates[fieldContact] = *req.Contact
	}
	if req.Bio != nil && *req.Bio != "" {
		updates[fieldBio] = *req.Bio
	}
	if len(updates) == 0 {
		return u, nil
	}
	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) ensureFree(ctx context.Context, lookup func(context.Context, string) (*domain.User, error), value, userID string) error {
	other, err := lookup(ctx, value)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.UserID != userID {
		return fmt.Errorf("username or email already taken: %w", domain.ErrConflict)
	}
	return nil
}

func (s *service) UpdateProfileImage(ctx context.Context, userID, imageURL string) (*domain.User, error) {
	if err := s.repo.Update(ctx, userID, map[string]interface{}{fieldProfileImage: imageURL}); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) ChangePassword(ctx context.Context, userID string, req domain.ChangePasswordRequest) error {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrUnauthorized)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, userID, map[string]interface{}{fieldPasswordHash: string(hash)})
}
