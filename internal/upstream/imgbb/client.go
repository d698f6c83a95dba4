// Package imgbb re-hosts images on the ImgBB image host.
package imgbb

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client uploads images and returns their public URLs.
type Client struct {
	endpoint   string
	apiKey     string
	expiration int
	httpc      *http.Client
}

// NewClient creates an ImgBB client. expiration is the hosted image
// lifetime in seconds.
func NewClient(endpoint, apiKey string, expiration int, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		expiration: expiration,
		httpc:      &http.Client{Timeout: timeout},
	}
}

// Upload base64-encodes content, posts it to the upload endpoint and
// returns the stable public URL.
func (c *Client) Upload(ctx context.Context, content []byte) (string, error) {
	form := url.Values{}
	form.Set("key", c.apiKey)
	form.Set("image", base64.StdEncoding.EncodeToString(content))
	form.Set("expiration", strconv.Itoa(c.expiration))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("imgbb: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("imgbb: upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("imgbb: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("imgbb: failed to read response: %w", err)
	}

	var payload struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("imgbb: failed to decode response: %w", err)
	}
	if payload.Data.URL == "" {
		return "", fmt.Errorf("imgbb: response carried no url")
	}

	return payload.Data.URL, nil
}
