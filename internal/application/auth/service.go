package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-projects-nosql/internal/domain"
	"github.com/go-projects-nosql/internal/infrastructure/google"
	"github.com/go-projects-nosql/internal/pkg/id"
	pkgtoken "github.com/go-projects-nosql/internal/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

// Result is returned by every successful sign-in.
type Result struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*Result, error)
	Login(ctx context.Context, req domain.LoginRequest) (*Result, error)
	Google(ctx context.Context, req domain.GoogleAuthRequest) (*Result, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByGoogleSub(ctx context.Context, sub string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type jwtSigner interface {
	Sign(userID, role string) (string, error)
}

type googleVerifier interface {
	Verify(ctx context.Context, token string) (*google.Payload, error)
}

type service struct {
	users    userStore
	jwt      jwtSigner
	verifier googleVerifier
}

func NewService(users userStore, jwt jwtSigner, verifier googleVerifier) Service {
	return &service{users: users, jwt: jwt, verifier: verifier}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*Result, error) {
	role := domain.RoleUser
	switch req.Role {
	case "", domain.RoleUser:
	case domain.RoleAdmin:
		return nil, fmt.Errorf("admin accounts cannot self-register: %w", domain.ErrBadRequest)
	default:
		return nil, fmt.Errorf("invalid role: %w", domain.ErrBadRequest)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("username already taken: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Email:        email,
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		Contact:      req.Contact,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}
	return s.result(u)
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*Result, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	// Accounts created through Google have no password until one is set.
	if u.PasswordHash == "" {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	return s.result(u)
}

// Google signs in with a Google ID token. The account is matched by Google
// subject first, then by email (linking it), and created when neither exists.
func (s *service) Google(ctx context.Context, req domain.GoogleAuthRequest) (*Result, error) {
	p, err := s.verifier.Verify(ctx, req.IDToken)
	if err != nil {
		return nil, err
	}
	if p.Email == "" {
		return nil, fmt.Errorf("google account has no email: %w", domain.ErrBadRequest)
	}
	email := strings.ToLower(p.Email)

	u, err := s.users.GetByGoogleSub(ctx, p.Sub)
	if err == nil {
		return s.result(u)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	u, err = s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.linkGoogle(ctx, u, p); err != nil {
			return nil, err
		}
		return s.result(u)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	suffix, err := pkgtoken.LowerAlnum(4)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u = &domain.User{
		UserID:            id.New(),
		Email:             email,
		Username:          strings.SplitN(email, "@", 2)[0] + "_" + suffix,
		Role:              domain.RoleUser,
		ProfileImage:      p.Picture,
		GoogleSub:         p.Sub,
		GoogleEmail:       email,
		GoogleDisplayName: p.Name,
		GooglePhotoURL:    p.Picture,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}
	slog.Info("created user from google sign-in", "user_id", u.UserID)
	return s.result(u)
}

func (s *service) linkGoogle(ctx context.Context, u *domain.User, p *google.Payload) error {
	updates := map[string]interface{}{
		"google_sub":          p.Sub,
		"google_email":        strings.ToLower(p.Email),
		"google_display_name": p.Name,
		"google_photo_url":    p.Picture,
	}
	if u.ProfileImage == "" && p.Picture != "" {
		updates["profile_image"] = p.Picture
		u.ProfileImage = p.Picture
	}
	if err := s.users.Update(ctx, u.UserID, updates); err != nil {
		return err
	}
	u.GoogleSub = p.Sub
	u.GoogleEmail = strings.ToLower(p.Email)
	u.GoogleDisplayName = p.Name
	u.GooglePhotoURL = p.Picture
	slog.Info("linked google account", "user_id", u.UserID)
	return nil
}

func (s *service) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.Get(ctx, userID)
}

func (s *service) result(u *domain.User) (*Result, error) {
	tok, err := s.jwt.Sign(u.UserID, u.Role)
	if err != nil {
		return nil, err
	}
	return &Result{Token: tok, User: u}, nil
}
