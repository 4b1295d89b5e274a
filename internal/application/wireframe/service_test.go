package wireframe

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/go-projects-nosql/internal/domain"
	"github.com/go-projects-nosql/internal/infrastructure/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockModel struct{ mock.Mock }

func (m *mockModel) Predict(ctx context.Context, prompt, color string) (string, error) {
	args := m.Called(ctx, prompt, color)
	return args.String(0), args.Error(1)
}

type mockLLM struct{ mock.Mock }

func (m *mockLLM) CompleteHTML(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type mockGenerations struct{ mock.Mock }

func (m *mockGenerations) Put(ctx context.Context, g *domain.WireframeGeneration) error {
	return m.Called(ctx, g).Error(0)
}
func (m *mockGenerations) CountByProject(ctx context.Context, projectID string) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
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
	body, _ := io.ReadAll(r)
	return m.Called(ctx, key, string(body), contentType).Error(0)
}
func (m *mockObjects) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

type mocks struct {
	model       *mockModel
	llm         *mockLLM
	generations *mockGenerations
	projects    *mockProjectStore
	objects     *mockObjects
}

func newService() (Service, mocks) {
	m := mocks{&mockModel{}, &mockLLM{}, &mockGenerations{}, &mockProjectStore{}, &mockObjects{}}
	return NewService(ServiceDeps{
		Model:          m.model,
		LLM:            m.llm,
		GenerationRepo: m.generations,
		ProjectRepo:    m.projects,
		Objects:        m.objects,
	}), m
}

func TestGenerate_PythonDefaultsMethodAndColor(t *testing.T) {
	svc, m := newService()
	m.model.On("Predict", mock.Anything, "a landing page", domain.DefaultPrimaryColor).Return("<div>lp</div>", nil)

	out, err := svc.Generate(context.Background(), "u1", domain.GenerateWireframeRequest{Prompt: "a landing page"})
	require.NoError(t, err)
	assert.Equal(t, "<div>lp</div>", out)
	m.generations.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestGenerate_PythonFailureIsReturned(t *testing.T) {
	svc, m := newService()
	m.model.On("Predict", mock.Anything, mock.Anything, mock.Anything).Return("", domain.ErrUnavailable)

	_, err := svc.Generate(context.Background(), "u1", domain.GenerateWireframeRequest{Prompt: "x", Method: "python"})
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
}

func TestGenerate_AIUsesGeneratorPrompt(t *testing.T) {
	svc, m := newService()
	m.llm.On("CompleteHTML", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, `description: "pricing table"`) && strings.Contains(p, "#112233")
	})).Return("<table></table>", nil)

	out, err := svc.Generate(context.Background(), "u1", domain.GenerateWireframeRequest{Prompt: "pricing table", Method: "ai", PrimaryColor: "#112233"})
	require.NoError(t, err)
	assert.Equal(t, "<table></table>", out)
}

func TestGenerate_AIFailureFallsBack(t *testing.T) {
	svc, m := newService()
	m.llm.On("CompleteHTML", mock.Anything, mock.Anything).Return("", errors.New("rate limited"))

	out, err := svc.Generate(context.Background(), "u1", domain.GenerateWireframeRequest{Prompt: "Login screen", Method: "ai", PrimaryColor: "#ff0000"})
	require.NoError(t, err)
	assert.Contains(t, out, "Sign In")
	assert.Contains(t, out, "#ff0000")
}

func TestGenerate_AIWithoutClientFallsBack(t *testing.T) {
	svc := NewService(ServiceDeps{Model: &mockModel{}})

	out, err := svc.Generate(context.Background(), "u1", domain.GenerateWireframeRequest{Prompt: "admin dashboard", Method: "ai"})
	require.NoError(t, err)
	assert.Contains(t, out, "Dashboard")
	assert.Contains(t, out, domain.DefaultPrimaryColor)
}

func TestGenerate_InvalidMethod(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Generate(context.Background(), "u1", domain.GenerateWireframeRequest{Prompt: "x", Method: "magic"})
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestGenerate_RecordsAgainstProject(t *testing.T) {
	svc, m := newService()
	m.projects.On("Get", mock.Anything, "p1").Return(&domain.Project{ProjectID: "p1", UserID: "u1"}, nil)
	m.model.On("Predict", mock.Anything, "x", mock.Anything).Return("<div/>", nil)
	m.generations.On("Put", mock.Anything, mock.MatchedBy(func(g *domain.WireframeGeneration) bool {
		return g.ProjectID == "p1" && g.Prompt == "x" && g.Method == domain.WireframeMethodPython
	})).Return(nil)
	m.projects.On("AdjustStat", mock.Anything, "p1", dynamo.StatWireframes, 1).Return(nil)

	_, err := svc.Generate(context.Background(), "u1", domain.GenerateWireframeRequest{Prompt: "x", ProjectID: "p1"})
	require.NoError(t, err)
	m.generations.AssertExpectations(t)
	m.projects.AssertExpectations(t)
}

func TestGenerate_RecordFailureOnlyLogged(t *testing.T) {
	svc, m := newService()
	m.projects.On("Get", mock.Anything, "p1").Return(&domain.Project{ProjectID: "p1", UserID: "u1"}, nil)
	m.model.On("Predict", mock.Anything, mock.Anything, mock.Anything).Return("<div/>", nil)
	m.generations.On("Put", mock.Anything, mock.Anything).Return(errors.New("boom"))

	out, err := svc.Generate(context.Background(), "u1", domain.GenerateWireframeRequest{Prompt: "x", ProjectID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "<div/>", out)
	m.projects.AssertNotCalled(t, "AdjustStat", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_ForeignProject(t *testing.T) {
	svc, m := newService()
	m.projects.On("Get", mock.Anything, "p1").Return(&domain.Project{ProjectID: "p1", UserID: "owner"}, nil)

	_, err := svc.Generate(context.Background(), "u1", domain.GenerateWireframeRequest{Prompt: "x", ProjectID: "p1"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	m.model.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything, mock.Anything)
}

func TestCount(t *testing.T) {
	svc, m := newService()
	m.projects.On("Get", mock.Anything, "p1").Return(&domain.Project{ProjectID: "p1", UserID: "u1"}, nil)
	m.generations.On("CountByProject", mock.Anything, "p1").Return(7, nil)

	n, err := svc.Count(context.Background(), "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestSnapshot_StoresEnhancedHTML(t *testing.T) {
	svc, m := newService()
	m.llm.On("CompleteHTML", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "black, white, and gray") && strings.Contains(p, "Input HTML: <p>hi</p>")
	})).Return("<p>mono</p>", nil)
	m.objects.On("Upload", mock.Anything, mock.MatchedBy(func(k string) bool {
		return strings.HasPrefix(k, "wireframes/") && strings.HasSuffix(k, ".html")
	}), "<p>mono</p>", "text/html; charset=utf-8").Return(nil)
	m.objects.On("PresignedURL", mock.Anything, mock.Anything, SnapshotTTL).Return("https://signed", nil)

	snap, err := svc.Snapshot(context.Background(), domain.WireframeSnapshotRequest{HTML: "<p>hi</p>", Prompt: "hello", PrimaryColor: "#000000"})
	require.NoError(t, err)
	assert.Equal(t, "https://signed", snap.URL)
	assert.True(t, strings.HasPrefix(snap.Key, "wireframes/"))
}

func TestSnapshot_NoStorage(t *testing.T) {
	svc := NewService(ServiceDeps{})

	_, err := svc.Snapshot(context.Background(), domain.WireframeSnapshotRequest{HTML: "x", Prompt: "y", PrimaryColor: "#000000"})
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
}

func TestFallback_Variants(t *testing.T) {
	cases := []struct {
		prompt string
		want   string
	}{
		{"Login page", ">Login</h2>"},
		{"please sign in", "Forgot Password?"},
		{"Contact form", "Send Message"},
		{"feedback FORM", "Contact Us"},
		{"sales dashboard", "Quick Actions"},
		{"a gallery", "Content area for: a gallery"},
	}
	for _, tc := range cases {
		t.Run(tc.prompt, func(t *testing.T) {
			out := Fallback(tc.prompt, "#123456")
			assert.Contains(t, out, tc.want)
			assert.True(t, strings.HasPrefix(out, `<div class="wireframe-container"`))
			assert.True(t, strings.HasSuffix(out, "</div>"))
		})
	}
}

func TestFallback_EscapesPrompt(t *testing.T) {
	out := Fallback(`<script>alert(1)</script>`, "#123456")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}
