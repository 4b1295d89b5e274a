package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-projects-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWireframeSvc struct{ mock.Mock }

func (m *mockWireframeSvc) Generate(ctx context.Context, userID string, req domain.GenerateWireframeRequest) (string, error) {
	args := m.Called(ctx, userID, req)
	return args.String(0), args.Error(1)
}

func (m *mockWireframeSvc) Count(ctx context.Context, userID, projectID string) (int, error) {
	args := m.Called(ctx, userID, projectID)
	return args.Int(0), args.Error(1)
}

func (m *mockWireframeSvc) Snapshot(ctx context.Context, req domain.WireframeSnapshotRequest) (*domain.WireframeSnapshot, error) {
	args := m.Called(ctx, req)
	if s, _ := args.Get(0).(*domain.WireframeSnapshot); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestGenerate_ResponseEnvelope(t *testing.T) {
	svc := &mockWireframeSvc{}
	req := domain.GenerateWireframeRequest{Prompt: "login page", Method: "ai"}
	svc.On("Generate", mock.Anything, "u1", req).Return("<div>login</div>", nil)
	h := NewWireframeHandler(svc)

	rr := httptest.NewRecorder()
	h.Generate(rr, asUser(httptest.NewRequest(http.MethodPost, "/api/wireframe/generate", jsonBody(t, req)), "u1"))

	require.Equal(t, http.StatusOK, rr.Code)
	var body generateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "<div>login</div>", body.Data.RefinedHTML)
}

func TestGenerate_InvalidMethodIsUnprocessable(t *testing.T) {
	svc := &mockWireframeSvc{}
	h := NewWireframeHandler(svc)

	rr := httptest.NewRecorder()
	body := strings.NewReader(`{"prompt":"x","method":"rust"}`)
	h.Generate(rr, asUser(httptest.NewRequest(http.MethodPost, "/", body), "u1"))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerate_ModelDownIsBadGateway(t *testing.T) {
	svc := &mockWireframeSvc{}
	svc.On("Generate", mock.Anything, "u1", mock.Anything).
		Return("", fmt.Errorf("wireframe model: %w", domain.ErrUnavailable))
	h := NewWireframeHandler(svc)

	rr := httptest.NewRecorder()
	h.Generate(rr, asUser(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"prompt":"x"}`)), "u1"))
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestWireframeCount(t *testing.T) {
	svc := &mockWireframeSvc{}
	svc.On("Count", mock.Anything, "u1", "p1").Return(7, nil)
	h := NewWireframeHandler(svc)

	rr := httptest.NewRecorder()
	h.Count(rr, withParam(asUser(httptest.NewRequest(http.MethodGet, "/", nil), "u1"), "projectId", "p1"))
	assert.JSONEq(t, `{"count":7}`, rr.Body.String())
}

func TestSnapshot_NotConfigured(t *testing.T) {
	svc := &mockWireframeSvc{}
	svc.On("Snapshot", mock.Anything, mock.Anything).Return(nil, domain.ErrUnavailable)
	h := NewWireframeHandler(svc)

	req := domain.WireframeSnapshotRequest{HTML: "<div/>", Prompt: "x", PrimaryColor: "#000000"}
	rr := httptest.NewRecorder()
	h.Snapshot(rr, asUser(httptest.NewRequest(http.MethodPost, "/", jsonBody(t, req)), "u1"))
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}
