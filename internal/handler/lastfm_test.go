package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floppahub-rest-api/internal/repository"
	"floppahub-rest-api/internal/service"
	"floppahub-rest-api/internal/upstream/lastfm"
)

type stubScrobbler struct {
	recent     *lastfm.Track
	recentErr  error
	topAlbums  []lastfm.TopEntry
	topTracks  []lastfm.TopEntry
	topArtists []lastfm.TopEntry
	topErr     error
	playCount  string
}

func (s *stubScrobbler) RecentTrack(ctx context.Context, user string) (*lastfm.Track, error) {
	return s.recent, s.recentErr
}

func (s *stubScrobbler) TopAlbums(ctx context.Context, user string) ([]lastfm.TopEntry, error) {
	return s.topAlbums, s.topErr
}

func (s *stubScrobbler) TopTracks(ctx context.Context, user string) ([]lastfm.TopEntry, error) {
	return s.topTracks, s.topErr
}

func (s *stubScrobbler) TopArtists(ctx context.Context, user string) ([]lastfm.TopEntry, error) {
	return s.topArtists, s.topErr
}

func (s *stubScrobbler) TrackUserPlayCount(ctx context.Context, user, artist, track string) (string, error) {
	return s.playCount, nil
}

func newFMHandler(scrobbler service.Scrobbler, registry repository.RegistryRepository) *FMHandler {
	return NewFMHandler(service.NewScrobbleService(scrobbler, registry))
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRegister(t *testing.T) {
	registry := repository.NewMemoryRegistryRepository()
	h := newFMHandler(&stubScrobbler{}, registry)

	req := httptest.NewRequest(http.MethodGet, "/fm/register?user=someuser&number=5511999999999@s.whatsapp.net", nil)
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	username, err := registry.Lookup(context.Background(), "5511999999999")
	require.NoError(t, err)
	assert.Equal(t, "someuser", username, "JID suffix must be stripped before storing")
}

func TestRegister_MissingParams(t *testing.T) {
	h := newFMHandler(&stubScrobbler{}, repository.NewMemoryRegistryRepository())

	req := httptest.NewRequest(http.MethodGet, "/fm/register?user=someuser", nil)
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", decodeEnvelope(t, rec).Error.Code)
}

func TestRecent_ByRegisteredNumber(t *testing.T) {
	registry := repository.NewMemoryRegistryRepository()
	require.NoError(t, registry.Upsert(context.Background(), "5511999999999", "someuser"))

	scrobbler := &stubScrobbler{
		recent: &lastfm.Track{
			Name:   "Paranoid",
			Artist: lastfm.TextField{Text: "Black Sabbath"},
			Album:  lastfm.TextField{Text: "Paranoid"},
			Attr:   &lastfm.TrackAttr{NowPlaying: "true"},
		},
		playCount: "123",
	}
	h := newFMHandler(scrobbler, registry)

	req := httptest.NewRequest(http.MethodGet, "/fm/recent?number=5511999999999", nil)
	rec := httptest.NewRecorder()
	h.Recent(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)

	var track struct {
		TrackName  string `json:"track_name"`
		Artist     string `json:"artist"`
		PlayCount  string `json:"playcount"`
		NowPlaying bool   `json:"now_playing"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &track))
	assert.Equal(t, "Paranoid", track.TrackName)
	assert.Equal(t, "Black Sabbath", track.Artist)
	assert.Equal(t, "123", track.PlayCount)
	assert.True(t, track.NowPlaying)
}

func TestRecent_UnregisteredNumberIs404(t *testing.T) {
	h := newFMHandler(&stubScrobbler{}, repository.NewMemoryRegistryRepository())

	req := httptest.NewRequest(http.MethodGet, "/fm/recent?number=5511999999999", nil)
	rec := httptest.NewRecorder()
	h.Recent(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecent_NoParamsIs400(t *testing.T) {
	h := newFMHandler(&stubScrobbler{}, repository.NewMemoryRegistryRepository())

	req := httptest.NewRequest(http.MethodGet, "/fm/recent", nil)
	rec := httptest.NewRecorder()
	h.Recent(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecent_ExplicitUserFallback(t *testing.T) {
	scrobbler := &stubScrobbler{
		recent:    &lastfm.Track{Name: "Paranoid", Artist: lastfm.TextField{Text: "Black Sabbath"}},
		playCount: "1",
	}
	h := newFMHandler(scrobbler, repository.NewMemoryRegistryRepository())

	req := httptest.NewRequest(http.MethodGet, "/fm/recent?user=someuser", nil)
	rec := httptest.NewRecorder()
	h.Recent(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecent_NoHistoryIs404(t *testing.T) {
	h := newFMHandler(&stubScrobbler{recent: nil}, repository.NewMemoryRegistryRepository())

	req := httptest.NewRequest(http.MethodGet, "/fm/recent?user=someuser", nil)
	rec := httptest.NewRecorder()
	h.Recent(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTopAlbums(t *testing.T) {
	scrobbler := &stubScrobbler{
		topAlbums: []lastfm.TopEntry{
			{Name: "Paranoid", PlayCount: "99", Artist: lastfm.NameField{Name: "Black Sabbath"}},
			{Name: "Master of Reality", PlayCount: "50", Artist: lastfm.NameField{Name: "Black Sabbath"}},
		},
	}
	h := newFMHandler(scrobbler, repository.NewMemoryRegistryRepository())

	req := httptest.NewRequest(http.MethodGet, "/fm/top/album?user=someuser", nil)
	rec := httptest.NewRecorder()
	h.TopAlbums(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)

	var items []struct {
		Rank      int    `json:"rank"`
		Name      string `json:"name"`
		Artist    string `json:"artist"`
		PlayCount string `json:"playcount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].Rank)
	assert.Equal(t, "Paranoid", items[0].Name)
	assert.Equal(t, 1, items[1].Rank)
}

func TestAlbum_JoinsPlayCount(t *testing.T) {
	scrobbler := &stubScrobbler{
		recent: &lastfm.Track{
			Name:   "Paranoid",
			Artist: lastfm.TextField{Text: "Black Sabbath"},
			Album:  lastfm.TextField{Text: "Paranoid"},
		},
		topAlbums: []lastfm.TopEntry{{Name: "Paranoid", PlayCount: "99"}},
	}
	h := newFMHandler(scrobbler, repository.NewMemoryRegistryRepository())

	req := httptest.NewRequest(http.MethodGet, "/fm/album?user=someuser", nil)
	rec := httptest.NewRecorder()
	h.Album(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)

	var summary struct {
		Name      string `json:"name"`
		PlayCount string `json:"playcount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, "Paranoid", summary.Name)
	assert.Equal(t, "99", summary.PlayCount)
}
