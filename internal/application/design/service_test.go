package design

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/go-projects-nosql/internal/domain"
	"github.com/go-projects-nosql/internal/infrastructure/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockDesignStore struct{ mock.Mock }

func (m *mockDesignStore) Put(ctx context.Context, d *domain.Design) error {
	return m.Called(ctx, d).Error(0)
}
func (m *mockDesignStore) Get(ctx context.Context, designID string) (*domain.Design, error) {
	args := m.Called(ctx, designID)
	if d, _ := args.Get(0).(*domain.Design); d != nil {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockDesignStore) ListByProject(ctx context.Context, projectID string) ([]domain.Design, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.Design), args.Error(1)
}
func (m *mockDesignStore) CountByProject(ctx context.Context, projectID string) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}
func (m *mockDesignStore) Update(ctx context.Context, designID string, updates map[string]interface{}) error {
	return m.Called(ctx, designID, updates).Error(0)
}
func (m *mockDesignStore) Delete(ctx context.Context, designID string) error {
	return m.Called(ctx, designID).Error(0)
}

type mockProjectStore struct{ mock.Mock }

func (m *mockProjectStore) Get(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if p, _ := args.Get(0).(*domain.Project); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProjectStore) AdjustStat(ctx context.Context, projectID, stat string, delta int) error {
	return m.Called(ctx, projectID, stat, delta).Error(0)
}

type mockObjects struct{ mock.Mock }

func (m *mockObjects) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	return m.Called(ctx, key, r, contentType).Error(0)
}
func (m *mockObjects) URL(key string) string {
	return m.Called(key).String(0)
}
func (m *mockObjects) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mocks struct {
	designs  *mockDesignStore
	projects *mockProjectStore
	objects  *mockObjects
}

func newService() (Service, mocks) {
	m := mocks{&mockDesignStore{}, &mockProjectStore{}, &mockObjects{}}
	return NewService(ServiceDeps{
		DesignRepo:  m.designs,
		ProjectRepo: m.projects,
		Objects:     m.objects,
	}), m
}

func owned() *domain.Project {
	return &domain.Project{ProjectID: "p1", UserID: "u1", Stats: domain.ProjectStats{Designs: 4}}
}

func TestCreate_WithImageURL(t *testing.T) {
	svc, m := newService()
	m.projects.On("Get", mock.Anything, "p1").Return(owned(), nil)
	m.designs.On("Put", mock.Anything, mock.AnythingOfType("*domain.Design")).Return(nil)
	m.projects.On("AdjustStat", mock.Anything, "p1", dynamo.StatDesigns, 1).Return(nil)

	d, err := svc.Create(context.Background(), "u1", "p1", domain.CreateDesignRequest{Title: "Home", ImageURL: "https://img/x.png"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://img/x.png", d.ImageURL)
	assert.Empty(t, d.ObjectKey)
	m.projects.AssertExpectations(t)
	m.objects.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_WithUpload(t *testing.T) {
	svc, m := newService()
	m.projects.On("Get", mock.Anything, "p1").Return(owned(), nil)
	m.objects.On("Upload", mock.Anything, mock.MatchedBy(func(k string) bool {
		return strings.HasPrefix(k, "designs/p1/") && strings.HasSuffix(k, ".png")
	}), mock.Anything, "image/png").Return(nil)
	m.objects.On("URL", mock.Anything).Return("https://bucket/designs/p1/x.png")
	m.designs.On("Put", mock.Anything, mock.Anything).Return(nil)
	m.projects.On("AdjustStat", mock.Anything, "p1", dynamo.StatDesigns, 1).Return(nil)

	up := &Upload{Body: strings.NewReader("png"), Filename: "Shot.PNG", ContentType: "image/png"}
	d, err := svc.Create(context.Background(), "u1", "p1", domain.CreateDesignRequest{}, up)
	require.NoError(t, err)
	assert.Equal(t, "https://bucket/designs/p1/x.png", d.ImageURL)
	assert.True(t, strings.HasPrefix(d.ObjectKey, "designs/p1/"+d.DesignID))
}

func TestCreate_NoImage(t *testing.T) {
	svc, m := newService()
	m.projects.On("Get", mock.Anything, "p1").Return(owned(), nil)

	_, err := svc.Create(context.Background(), "u1", "p1", domain.CreateDesignRequest{Title: "x"}, nil)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	m.designs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCreate_ForeignProject(t *testing.T) {
	svc, m := newService()
	m.projects.On("Get", mock.Anything, "p1").Return(owned(), nil)

	_, err := svc.Create(context.Background(), "intruder", "p1", domain.CreateDesignRequest{ImageURL: "https://x"}, nil)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdate_IgnoresEmptyFields(t *testing.T) {
	svc, m := newService()
	stored := &domain.Design{DesignID: "d1", ProjectID: "p1", Title: "Old", Description: "keep"}
	m.designs.On("Get", mock.Anything, "d1").Return(stored, nil)
	m.projects.On("Get", mock.Anything, "p1").Return(owned(), nil)
	m.designs.On("Update", mock.Anything, "d1", map[string]interface{}{fieldTitle: "New"}).Return(nil)

	title, empty := "New", ""
	_, err := svc.Update(context.Background(), "u1", "d1", domain.UpdateDesignRequest{Title: &title, Description: &empty})
	require.NoError(t, err)
	m.designs.AssertExpectations(t)
}

func TestDelete_RemovesObjectAndDecrements(t *testing.T) {
	svc, m := newService()
	m.designs.On("Get", mock.Anything, "d1").Return(&domain.Design{DesignID: "d1", ProjectID: "p1", ObjectKey: "designs/p1/d1.png"}, nil)
	m.projects.On("Get", mock.Anything, "p1").Return(owned(), nil)
	m.designs.On("Delete", mock.Anything, "d1").Return(nil)
	m.objects.On("Delete", mock.Anything, "designs/p1/d1.png").Return(errors.New("gone"))
	m.projects.On("AdjustStat", mock.Anything, "p1", dynamo.StatDesigns, -1).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), "u1", "d1"))
	m.objects.AssertExpectations(t)
	m.projects.AssertExpectations(t)
}

func TestStats(t *testing.T) {
	svc, m := newService()
	m.projects.On("Get", mock.Anything, "p1").Return(owned(), nil)
	m.designs.On("CountByProject", mock.Anything, "p1").Return(2, nil)

	st, err := svc.Stats(context.Background(), "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, st.ProjectStats.Designs)
	assert.Equal(t, 2, st.ActualDesignsCount)
}
