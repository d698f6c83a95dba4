package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floppahub-rest-api/internal/model"
	"floppahub-rest-api/internal/repository"
	"floppahub-rest-api/internal/service"
	"floppahub-rest-api/internal/upstream/freestuff"
)

type stubFeed struct {
	ids     []int64
	idsErr  error
	details *model.GameDetails
	image   []byte
}

func (f *stubFeed) FreeGameIDs(ctx context.Context) ([]int64, error) {
	return f.ids, f.idsErr
}

func (f *stubFeed) GameDetails(ctx context.Context, id int64) (*model.GameDetails, error) {
	return f.details, nil
}

func (f *stubFeed) DownloadImage(ctx context.Context, url string) ([]byte, error) {
	return f.image, nil
}

type stubImageHost struct{ url string }

func (h *stubImageHost) Upload(ctx context.Context, content []byte) (string, error) {
	return h.url, nil
}

func newAlertHandler(feed service.Feed, marker repository.MarkerRepository) *AlertHandler {
	svc := service.NewAlertService(feed, &stubImageHost{url: "https://i.ibb.co/abc/thumb.png"}, marker)
	return NewAlertHandler(svc)
}

func TestGames_NewGameReturnsSingletonList(t *testing.T) {
	feed := &stubFeed{
		ids: []int64{7},
		details: &model.GameDetails{
			RawID:        "7",
			Title:        "Some Game",
			ThumbnailURL: "https://cdn.example/thumb.png",
		},
		image: []byte("png"),
	}
	h := newAlertHandler(feed, repository.NewMemoryMarkerRepository())

	req := httptest.NewRequest(http.MethodGet, "/alert/games", nil)
	rec := httptest.NewRecorder()
	h.Games(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)

	var alerts []model.GameAlert
	require.NoError(t, json.Unmarshal(env.Data, &alerts))
	require.Len(t, alerts, 1)
	assert.Equal(t, "7", alerts[0].ID)
	assert.Equal(t, "https://i.ibb.co/abc/thumb.png", alerts[0].ThumbnailURL)
}

func TestGames_NothingNewReturnsEmptyList(t *testing.T) {
	feed := &stubFeed{ids: nil}
	h := newAlertHandler(feed, repository.NewMemoryMarkerRepository())

	req := httptest.NewRequest(http.MethodGet, "/alert/games", nil)
	rec := httptest.NewRecorder()
	h.Games(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)

	var alerts []model.GameAlert
	require.NoError(t, json.Unmarshal(env.Data, &alerts))
	assert.Empty(t, alerts)
}

func TestGames_Feed429PassesThrough(t *testing.T) {
	feed := &stubFeed{idsErr: &freestuff.StatusError{StatusCode: 429, URL: "https://api.example"}}
	h := newAlertHandler(feed, repository.NewMemoryMarkerRepository())

	req := httptest.NewRequest(http.MethodGet, "/alert/games", nil)
	rec := httptest.NewRecorder()
	h.Games(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "RATE_LIMIT", decodeEnvelope(t, rec).Error.Code)
}

func TestGames_FeedServerErrorPassesStatusThrough(t *testing.T) {
	feed := &stubFeed{idsErr: &freestuff.StatusError{StatusCode: 503, URL: "https://api.example"}}
	h := newAlertHandler(feed, repository.NewMemoryMarkerRepository())

	req := httptest.NewRequest(http.MethodGet, "/alert/games", nil)
	rec := httptest.NewRecorder()
	h.Games(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "UPSTREAM_ERROR", decodeEnvelope(t, rec).Error.Code)
}
