// Package lastfm is a client for the Last.fm (Audioscrobbler) web API.
package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"floppahub-rest-api/internal/cache"
)

// Client calls the Last.fm API. Top-list responses may be served from the
// cache (TTL-bounded) when one is configured; recent-track and track-info
// calls always hit upstream because they describe live state.
type Client struct {
	baseURL  string
	apiKey   string
	httpc    *http.Client
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewClient creates a Last.fm client. c may be nil to disable caching.
func NewClient(baseURL, apiKey string, timeout time.Duration, c cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		httpc:    &http.Client{Timeout: timeout},
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// call performs one API method invocation and returns the raw body.
func (c *Client) call(ctx context.Context, method string, params map[string]string) ([]byte, error) {
	q := url.Values{}
	q.Set("method", method)
	q.Set("api_key", c.apiKey)
	q.Set("format", "json")
	for k, v := range params {
		q.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("lastfm: failed to build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lastfm: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("lastfm: unexpected status %d for %s", resp.StatusCode, method)
	}

	return io.ReadAll(resp.Body)
}

// cachedCall is call with a read-through cache keyed per method+user.
func (c *Client) cachedCall(ctx context.Context, method, user string) ([]byte, error) {
	if c.cache == nil {
		return c.call(ctx, method, map[string]string{"user": user})
	}

	key := fmt.Sprintf("lastfm:%s:%s", method, user)
	return c.cache.GetOrSet(ctx, key, c.cacheTTL, func() ([]byte, error) {
		return c.call(ctx, method, map[string]string{"user": user})
	})
}

// RecentTrack fetches the user's single most recent play event.
// Returns nil when the user has no track history.
func (c *Client) RecentTrack(ctx context.Context, user string) (*Track, error) {
	body, err := c.call(ctx, "user.getrecenttracks", map[string]string{"user": user, "limit": "1"})
	if err != nil {
		return nil, err
	}

	var payload struct {
		RecentTracks struct {
			Track []Track `json:"track"`
		} `json:"recenttracks"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("lastfm: failed to decode recent tracks: %w", err)
	}

	if len(payload.RecentTracks.Track) == 0 {
		return nil, nil
	}
	return &payload.RecentTracks.Track[0], nil
}

// TopAlbums fetches the user's top albums in upstream order.
func (c *Client) TopAlbums(ctx context.Context, user string) ([]TopEntry, error) {
	body, err := c.cachedCall(ctx, "user.gettopalbums", user)
	if err != nil {
		return nil, err
	}

	var payload struct {
		TopAlbums struct {
			Album []TopEntry `json:"album"`
		} `json:"topalbums"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("lastfm: failed to decode top albums: %w", err)
	}
	return payload.TopAlbums.Album, nil
}

// TopTracks fetches the user's top tracks in upstream order.
func (c *Client) TopTracks(ctx context.Context, user string) ([]TopEntry, error) {
	body, err := c.cachedCall(ctx, "user.gettoptracks", user)
	if err != nil {
		return nil, err
	}

	var payload struct {
		TopTracks struct {
			Track []TopEntry `json:"track"`
		} `json:"toptracks"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("lastfm: failed to decode top tracks: %w", err)
	}
	return payload.TopTracks.Track, nil
}

// TopArtists fetches the user's top artists in upstream order.
func (c *Client) TopArtists(ctx context.Context, user string) ([]TopEntry, error) {
	body, err := c.cachedCall(ctx, "user.gettopartists", user)
	if err != nil {
		return nil, err
	}

	var payload struct {
		TopArtists struct {
			Artist []TopEntry `json:"artist"`
		} `json:"topartists"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("lastfm: failed to decode top artists: %w", err)
	}
	return payload.TopArtists.Artist, nil
}

// TrackUserPlayCount fetches the exact play count of one track/artist pair
// for the user. A missing count decodes as "0".
func (c *Client) TrackUserPlayCount(ctx context.Context, user, artist, track string) (string, error) {
	body, err := c.call(ctx, "track.getInfo", map[string]string{
		"user":   user,
		"artist": artist,
		"track":  track,
	})
	if err != nil {
		return "", err
	}

	var payload struct {
		Track struct {
			UserPlayCount string `json:"userplaycount"`
		} `json:"track"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("lastfm: failed to decode track info: %w", err)
	}

	if payload.Track.UserPlayCount == "" {
		return "0", nil
	}
	return payload.Track.UserPlayCount, nil
}
