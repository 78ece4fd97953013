package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/climawatch/news-service/app/cfg"
)

// Client is the shared HTTP client for all providers. Every outbound
// call goes through the same retry policy: up to Retries attempts with
// a linearly increasing delay between them.
type Client struct {
	httpClient *http.Client
	userAgent  string
	retries    int
}

func NewClient() *Client {
	c := cfg.Get()

	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(c.FetchTimeout) * time.Second,
		},
		userAgent: c.UserAgent,
		retries:   c.FetchRetries,
	}
}

// Get fetches url, retrying failed attempts with 1s, 2s, ... delays
// before giving up with the last error.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * time.Second):
			}
		}

		data, err := c.get(ctx, url)
		if err == nil {
			return data, nil
		}

		lastErr = err
		slog.Debug("Fetch attempt failed", "url", url, "attempt", attempt, "error", err)
	}

	return nil, lastErr
}

// GetJSON fetches url and decodes the response body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v interface{}) error {
	data, err := c.Get(ctx, url)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
