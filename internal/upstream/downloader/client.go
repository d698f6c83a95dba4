// Package downloader proxies the social-media downloader API.
package downloader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client resolves social-media URLs into direct download URLs via the
// RapidAPI downloader. A single proxied call, no state.
type Client struct {
	baseURL string
	apiKey  string
	host    string
	httpc   *http.Client
}

// NewClient creates a downloader client.
func NewClient(baseURL, apiKey, host string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		host:    host,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Resolve returns the direct download URL for target.
func (c *Client) Resolve(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"?url="+url.QueryEscape(target), nil)
	if err != nil {
		return "", fmt.Errorf("downloader: failed to build request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloader: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("downloader: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("downloader: failed to read response: %w", err)
	}

	var payload struct {
		DownloadURL string `json:"download_url"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("downloader: failed to decode response: %w", err)
	}

	return payload.DownloadURL, nil
}
