package hfspace

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-projects-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSpace(t *testing.T, status int, body string, seen *predictRequest) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/predict", r.URL.Path)
		if seen != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second)
}

func TestPredict_PrefersRefinedOutput(t *testing.T) {
	var seen predictRequest
	c := newSpace(t, http.StatusOK, `{"data":["<raw/>","<refined/>"]}`, &seen)

	html, err := c.Predict(context.Background(), "login page", "#2196F3")
	require.NoError(t, err)
	assert.Equal(t, "<refined/>", html)
	assert.Equal(t, []string{"login page", "#2196F3"}, seen.Data)
}

func TestPredict_FallsBackToFirstOutput(t *testing.T) {
	c := newSpace(t, http.StatusOK, `{"data":["<raw/>",null]}`, nil)

	html, err := c.Predict(context.Background(), "p", "#000000")
	require.NoError(t, err)
	assert.Equal(t, "<raw/>", html)
}

func TestPredict_NonStringPassedThrough(t *testing.T) {
	c := newSpace(t, http.StatusOK, `{"data":[{"a":1}]}`, nil)

	html, err := c.Predict(context.Background(), "p", "#000000")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, html)
}

func TestPredict_SpaceError(t *testing.T) {
	c := newSpace(t, http.StatusOK, `{"error":"model loading"}`, nil)

	_, err := c.Predict(context.Background(), "p", "#000000")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.ErrorContains(t, err, "model loading")
}

func TestPredict_ServerError(t *testing.T) {
	c := newSpace(t, http.StatusInternalServerError, `oops`, nil)

	_, err := c.Predict(context.Background(), "p", "#000000")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
