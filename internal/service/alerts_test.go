package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floppahub-rest-api/internal/model"
	"floppahub-rest-api/internal/repository"
	"floppahub-rest-api/internal/upstream/freestuff"
)

type stubFeed struct {
	ids        []int64
	idsErr     error
	details    *model.GameDetails
	detailsErr error
	image      []byte
	imageErr   error

	detailCalls int
}

func (f *stubFeed) FreeGameIDs(ctx context.Context) ([]int64, error) {
	return f.ids, f.idsErr
}

func (f *stubFeed) GameDetails(ctx context.Context, id int64) (*model.GameDetails, error) {
	f.detailCalls++
	return f.details, f.detailsErr
}

func (f *stubFeed) DownloadImage(ctx context.Context, url string) ([]byte, error) {
	return f.image, f.imageErr
}

type stubImageHost struct {
	url     string
	err     error
	uploads int
}

func (h *stubImageHost) Upload(ctx context.Context, content []byte) (string, error) {
	h.uploads++
	return h.url, h.err
}

func gameDetails(rawID string) *model.GameDetails {
	return &model.GameDetails{
		RawID:        rawID,
		Title:        "Some Game",
		Description:  "Free for a limited time",
		BrowserURL:   "https://store.example/some-game",
		PriceBRL:     59.99,
		ExpiryLocal:  "31-12-2026 20:59:59",
		ThumbnailURL: "https://cdn.example/thumb.png",
	}
}

func TestAlertService_EmitsAlertAndAdvancesMarker(t *testing.T) {
	feed := &stubFeed{ids: []int64{7}, details: gameDetails("7"), image: []byte("png")}
	images := &stubImageHost{url: "https://i.ibb.co/abc/thumb.png"}
	marker := repository.NewMemoryMarkerRepository()

	svc := NewAlertService(feed, images, marker)
	alert, err := svc.Run(context.Background())

	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, "7", alert.ID)
	assert.Equal(t, "Some Game", alert.Name)
	assert.Equal(t, "https://i.ibb.co/abc/thumb.png", alert.ThumbnailURL)

	id, ok, err := marker.Read(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)
}

func TestAlertService_EmptyFeedYieldsNothing(t *testing.T) {
	feed := &stubFeed{ids: nil}
	images := &stubImageHost{}
	svc := NewAlertService(feed, images, repository.NewMemoryMarkerRepository())

	alert, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Nil(t, alert)
	assert.Zero(t, feed.detailCalls)
}

func TestAlertService_FeedErrorPropagates(t *testing.T) {
	feedErr := &freestuff.StatusError{StatusCode: 429, URL: "https://api.example/games/free"}
	feed := &stubFeed{idsErr: feedErr}
	svc := NewAlertService(feed, &stubImageHost{}, repository.NewMemoryMarkerRepository())

	_, err := svc.Run(context.Background())
	var statusErr *freestuff.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 429, statusErr.StatusCode)
}

func TestAlertService_DuplicateIsSuppressed(t *testing.T) {
	feed := &stubFeed{ids: []int64{42}, details: gameDetails("42"), image: []byte("png")}
	images := &stubImageHost{url: "https://i.ibb.co/abc/thumb.png"}
	marker := repository.NewMemoryMarkerRepository()
	require.NoError(t, marker.Write(context.Background(), 42))

	svc := NewAlertService(feed, images, marker)
	alert, err := svc.Run(context.Background())

	require.NoError(t, err)
	assert.Nil(t, alert)
	assert.Zero(t, images.uploads, "duplicate pass must not upload a thumbnail")
}

func TestAlertService_DetailFailureIsSoft(t *testing.T) {
	feed := &stubFeed{ids: []int64{7}, detailsErr: errors.New("boom")}
	svc := NewAlertService(feed, &stubImageHost{}, repository.NewMemoryMarkerRepository())

	alert, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Nil(t, alert)
}

func TestAlertService_MissingDetailsYieldNothing(t *testing.T) {
	feed := &stubFeed{ids: []int64{7}, details: nil}
	svc := NewAlertService(feed, &stubImageHost{}, repository.NewMemoryMarkerRepository())

	alert, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Nil(t, alert)
}

func TestAlertService_UnparseableIDEmitsWithoutAdvancing(t *testing.T) {
	feed := &stubFeed{ids: []int64{7}, details: gameDetails("not-a-number"), image: []byte("png")}
	images := &stubImageHost{url: "https://i.ibb.co/abc/thumb.png"}
	marker := repository.NewMemoryMarkerRepository()

	svc := NewAlertService(feed, images, marker)
	alert, err := svc.Run(context.Background())

	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, "not-a-number", alert.ID)

	_, ok, err := marker.Read(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "marker must not advance without a numeric id")
}

func TestAlertService_ThumbnailFailureDegrades(t *testing.T) {
	feed := &stubFeed{ids: []int64{7}, details: gameDetails("7"), imageErr: errors.New("timeout")}
	marker := repository.NewMemoryMarkerRepository()

	svc := NewAlertService(feed, &stubImageHost{}, marker)
	alert, err := svc.Run(context.Background())

	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Empty(t, alert.ThumbnailURL)

	id, ok, err := marker.Read(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)
}

func TestAlertService_UploadFailureDegrades(t *testing.T) {
	feed := &stubFeed{ids: []int64{7}, details: gameDetails("7"), image: []byte("png")}
	images := &stubImageHost{err: errors.New("upload rejected")}

	svc := NewAlertService(feed, images, repository.NewMemoryMarkerRepository())
	alert, err := svc.Run(context.Background())

	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Empty(t, alert.ThumbnailURL)
}

func TestAlertService_NoThumbnailSourceSkipsUpload(t *testing.T) {
	details := gameDetails("7")
	details.ThumbnailURL = ""
	feed := &stubFeed{ids: []int64{7}, details: details}
	images := &stubImageHost{}

	svc := NewAlertService(feed, images, repository.NewMemoryMarkerRepository())
	alert, err := svc.Run(context.Background())

	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Empty(t, alert.ThumbnailURL)
	assert.Zero(t, images.uploads)
}
