package hfspace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-projects-nosql/internal/domain"
)

// Client calls the wireframe model hosted as a Gradio Space.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Data []string `json:"data"`
}

type predictResponse struct {
	Data  []json.RawMessage `json:"data"`
	Error string            `json:"error"`
}

// Predict posts prompt and color to /api/predict and returns the refined HTML.
// The Space answers with [raw, refined]; the refined output wins when present.
func (c *Client) Predict(ctx context.Context, prompt, color string) (string, error) {
	body, err := json.Marshal(predictRequest{Data: []string{prompt, color}})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/predict", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var ne interface{ Timeout() bool }
		if errors.As(err, &ne) && ne.Timeout() {
			return "", fmt.Errorf("wireframe space: request timed out: %w", domain.ErrUnavailable)
		}
		return "", fmt.Errorf("wireframe space: %v: %w", err, domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", fmt.Errorf("wireframe space: read body: %w", err)
	}

	var out predictResponse
	decodeErr := json.Unmarshal(raw, &out)
	if out.Error != "" {
		return "", fmt.Errorf("wireframe space: %s: %w", out.Error, domain.ErrUnavailable)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("wireframe space: status %d: %w", resp.StatusCode, domain.ErrUnavailable)
	}
	if decodeErr != nil || len(out.Data) == 0 {
		return "", fmt.Errorf("wireframe space: invalid response format: %w", domain.ErrUnavailable)
	}

	pick := out.Data[0]
	if len(out.Data) > 1 && !isEmpty(out.Data[1]) {
		pick = out.Data[1]
	}
	var html string
	if err := json.Unmarshal(pick, &html); err != nil {
		// Non-string output is passed through as JSON text.
		return string(pick), nil
	}
	return html, nil
}

func isEmpty(v json.RawMessage) bool {
	s := strings.TrimSpace(string(v))
	return s == "" || s == "null" || s == `""` || s == "false" || s == "0"
}
