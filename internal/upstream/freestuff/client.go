// Package freestuff is a client for the FreeStuff game-deal feed.
package freestuff

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"floppahub-rest-api/internal/model"
)

// StatusError reports a non-2xx response from the feed. The status code is
// carried so the HTTP layer can pass it through (429 is special-cased).
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("freestuff: unexpected status %d from %s", e.StatusCode, e.URL)
}

// Client calls the FreeStuff API with a fixed per-call deadline.
type Client struct {
	baseURL string
	apiKey  string
	lang    string
	httpc   *http.Client
}

// NewClient creates a FreeStuff client. timeout bounds every outbound call.
func NewClient(baseURL, apiKey, lang string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		lang:    lang,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// FreeGameIDs fetches the current list of free-game identifiers.
// Feed order defines "most recent"; the list is returned as delivered.
func (c *Client) FreeGameIDs(ctx context.Context) ([]int64, error) {
	url := c.baseURL + "/games/free"
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data []int64 `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("freestuff: failed to decode feed: %w", err)
	}
	return payload.Data, nil
}

// gameInfo mirrors the upstream per-game payload. Fields the pipeline does
// not consume are omitted.
type gameInfo struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	URLs        struct {
		Browser string `json:"browser"`
	} `json:"urls"`
	OrgPrice struct {
		BRL float64 `json:"brl"`
	} `json:"org_price"`
	Localized map[string]struct {
		Until string `json:"until"`
	} `json:"localized"`
	Thumbnail struct {
		Org string `json:"org"`
	} `json:"thumbnail"`
}

// GameDetails expands one identifier into full game details. The upstream
// payload is keyed by the stringified id; a missing entry returns nil.
func (c *Client) GameDetails(ctx context.Context, gameID int64) (*model.GameDetails, error) {
	url := fmt.Sprintf("%s/game/%d/info?lang=%s", c.baseURL, gameID, c.lang)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data map[string]gameInfo `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("freestuff: failed to decode game info: %w", err)
	}

	info, ok := payload.Data[fmt.Sprintf("%d", gameID)]
	if !ok {
		return nil, nil
	}

	details := &model.GameDetails{
		RawID:        info.ID.String(),
		Title:        info.Title,
		Description:  info.Description,
		BrowserURL:   info.URLs.Browser,
		PriceBRL:     info.OrgPrice.BRL,
		ThumbnailURL: info.Thumbnail.Org,
	}
	if loc, ok := info.Localized[c.lang]; ok {
		details.ExpiryLocal = loc.Until
	}
	return details, nil
}

// DownloadImage fetches raw image bytes from an arbitrary URL, used for
// thumbnail re-hosting.
func (c *Client) DownloadImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("freestuff: failed to build image request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("freestuff: image download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("freestuff: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("freestuff: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	return io.ReadAll(resp.Body)
}
