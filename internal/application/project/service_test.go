package project

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-projects-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockProjectStore struct{ mock.Mock }

func (m *mockProjectStore) Get(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if p, _ := args.Get(0).(*domain.Project); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProjectStore) Put(ctx context.Context, p *domain.Project) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockProjectStore) ListByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Project), args.Error(1)
}
func (m *mockProjectStore) Update(ctx context.Context, projectID string, updates map[string]interface{}) error {
	return m.Called(ctx, projectID, updates).Error(0)
}
func (m *mockProjectStore) SetStats(ctx context.Context, projectID string, stats domain.ProjectStats) error {
	return m.Called(ctx, projectID, stats).Error(0)
}
func (m *mockProjectStore) Delete(ctx context.Context, projectID string) error {
	return m.Called(ctx, projectID).Error(0)
}

type mockTaskStore struct{ mock.Mock }

func (m *mockTaskStore) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.Task), args.Error(1)
}
func (m *mockTaskStore) Delete(ctx context.Context, taskID string) error {
	return m.Called(ctx, taskID).Error(0)
}

type mockDesignStore struct{ mock.Mock }

func (m *mockDesignStore) ListByProject(ctx context.Context, projectID string) ([]domain.Design, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]domain.Design), args.Error(1)
}
func (m *mockDesignStore) Delete(ctx context.Context, designID string) error {
	return m.Called(ctx, designID).Error(0)
}

type mockObjects struct{ mock.Mock }

func (m *mockObjects) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mocks struct {
	projects *mockProjectStore
	tasks    *mockTaskStore
	designs  *mockDesignStore
	objects  *mockObjects
}

func newService() (Service, mocks) {
	m := mocks{&mockProjectStore{}, &mockTaskStore{}, &mockDesignStore{}, &mockObjects{}}
	return NewService(ServiceDeps{
		ProjectRepo: m.projects,
		TaskRepo:    m.tasks,
		DesignRepo:  m.designs,
		Objects:     m.objects,
	}), m
}

func owned() *domain.Project {
	return &domain.Project{ProjectID: "p1", UserID: "u1", Name: "Site", Stats: domain.ProjectStats{Wireframes: 3, Designs: 9, Deadlines: 9}}
}

func TestCreate_Defaults(t *testing.T) {
	svc, m := newService()
	m.projects.On("Put", mock.Anything, mock.AnythingOfType("*domain.Project")).Return(nil)

	p, err := svc.Create(context.Background(), "u1", domain.CreateProjectRequest{Name: "Site"})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProjectColor, p.Color)
	assert.Equal(t, domain.ProjectActive, p.Status)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, domain.ProjectStats{}, p.Stats)
}

func TestList_SortedByUpdatedDesc(t *testing.T) {
	svc, m := newService()
	now := time.Now()
	m.projects.On("ListByUser", mock.Anything, "u1").Return([]domain.Project{
		{ProjectID: "old", UpdatedAt: now.Add(-time.Hour)},
		{ProjectID: "new", UpdatedAt: now},
	}, nil)

	ps, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "new", ps[0].ProjectID)
	assert.Equal(t, "old", ps[1].ProjectID)
}

func TestGet_RecomputesStats(t *testing.T) {
	svc, m := newService()
	m.projects.On("Get", mock.Anything, "p1").Return(owned(), nil)
	m.tasks.On("ListByProject", mock.Anything, "p1").Return([]domain.Task{{TaskID: "t1"}, {TaskID: "t2"}}, nil)
	m.designs.On("ListByProject", mock.Anything, "p1").Return([]domain.Design{{DesignID: "d1"}}, nil)
	want := domain.ProjectStats{Wireframes: 3, Designs: 1, Deadlines: 2}
	m.projects.On("SetStats", mock.Anything, "p1", want).Return(nil)

	p, err := svc.Get(context.Background(), "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, want, p.Stats)
	m.projects.AssertExpectations(t)
}

func TestGet_ForeignProjectIsNotFound(t *testing.T) {
	svc, m := newService()
	m.projects.On("Get", mock.Anything, "p1").Return(owned(), nil)

	_, err := svc.Get(context.Background(), "intruder", "p1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdate_PartialFields(t *testing.T) {
	svc, m := newService()
	name, progress, empty := "Renamed", 0, ""
	m.projects.On("Get", mock.Anything, "p1").Return(owned(), nil)
	m.projects.On("Update", mock.Anything, "p1", map[string]interface{}{
		fieldName:     "Renamed",
		fieldProgress: 0,
	}).Return(nil)

	_, err := svc.Update(context.Background(), "u1", "p1", domain.UpdateProjectRequest{
		Name:        &name,
		Progress:    &progress,
		Description: &empty,
	})
	require.NoError(t, err)
	m.projects.AssertExpectations(t)
}

func TestDelete_Cascades(t *testing.T) {
	svc, m := newService()
	m.projects.On("Get", mock.Anything, "p1").Return(owned(), nil)
	m.tasks.On("ListByProject", mock.Anything, "p1").Return([]domain.Task{{TaskID: "t1"}}, nil)
	m.tasks.On("Delete", mock.Anything, "t1").Return(nil)
	m.designs.On("ListByProject", mock.Anything, "p1").Return([]domain.Design{
		{DesignID: "d1", ObjectKey: "designs/p1/d1.png"},
		{DesignID: "d2"},
	}, nil)
	m.designs.On("Delete", mock.Anything, "d1").Return(nil)
	m.designs.On("Delete", mock.Anything, "d2").Return(nil)
	m.objects.On("Delete", mock.Anything, "designs/p1/d1.png").Return(errors.New("s3 down"))
	m.projects.On("Delete", mock.Anything, "p1").Return(nil)

	require.NoError(t, svc.Delete(context.Background(), "u1", "p1"))
	m.tasks.AssertExpectations(t)
	m.designs.AssertExpectations(t)
	m.objects.AssertExpectations(t)
	m.projects.AssertExpectations(t)
}
