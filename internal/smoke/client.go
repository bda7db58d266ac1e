package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// client wraps http.Client with the quiz API surface.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// health checks /healthz and accepts any 200 response.
func (c *client) health(ctx context.Context) error {
	resp, err := c.get(ctx, "/healthz", "")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// round fetches one quiz round. The second return value reports whether the
// cache was still warming up (503).
func (c *client) round(ctx context.Context, category string) ([]quizEntry, bool, error) {
	resp, err := c.get(ctx, "/api/quiz", category)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return nil, true, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("quiz request failed with status: %d", resp.StatusCode)
	}

	var round []quizEntry
	if err := decodeBody(resp, &round); err != nil {
		return nil, false, err
	}
	return round, false, nil
}

// submit posts one score.
func (c *client) submit(ctx context.Context, p scorePayload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal score: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/scores", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("score submit failed with status: %d", resp.StatusCode)
	}
	return nil
}

// leaderboard fetches the top rows for a category.
func (c *client) leaderboard(ctx context.Context, category string) ([]leaderRow, error) {
	resp, err := c.get(ctx, "/api/leaderboard", category)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("leaderboard request failed with status: %d", resp.StatusCode)
	}

	var rows []leaderRow
	if err := decodeBody(resp, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *client) get(ctx context.Context, path, category string) (*http.Response, error) {
	u := c.baseURL + path
	if category != "" {
		u += "?category=" + url.QueryEscape(category)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.http.Do(req)
}

func decodeBody(resp *http.Response, v any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
