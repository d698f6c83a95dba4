package service

import (
	"context"
	"log"

	"floppahub-rest-api/internal/model"
	"floppahub-rest-api/internal/repository"
	"floppahub-rest-api/internal/upstream/lastfm"
)

// topListSize bounds every ranked response.
const topListSize = 5

// Scrobbler exposes the slice of the Last.fm API the aggregator consumes.
type Scrobbler interface {
	RecentTrack(ctx context.Context, user string) (*lastfm.Track, error)
	TopAlbums(ctx context.Context, user string) ([]lastfm.TopEntry, error)
	TopTracks(ctx context.Context, user string) ([]lastfm.TopEntry, error)
	TopArtists(ctx context.Context, user string) ([]lastfm.TopEntry, error)
	TrackUserPlayCount(ctx context.Context, user, artist, track string) (string, error)
}

// ScrobbleService aggregates scrobble data for registered identities.
// Upstream transport failures surface as ErrNotFound: callers only ever see
// "data absent", never a raw transport error.
type ScrobbleService struct {
	scrobbler Scrobbler
	registry  repository.RegistryRepository
}

// NewScrobbleService creates a new scrobble service.
func NewScrobbleService(scrobbler Scrobbler, registry repository.RegistryRepository) *ScrobbleService {
	return &ScrobbleService{
		scrobbler: scrobbler,
		registry:  registry,
	}
}

// Register upserts the identifier -> username mapping.
func (s *ScrobbleService) Register(ctx context.Context, identifier, username string) error {
	return s.registry.Upsert(ctx, identifier, username)
}

// ResolveUsername maps an identifier to its registered username, falling
// back to the explicit username when no mapping exists. Neither present
// returns ErrNoMapping.
func (s *ScrobbleService) ResolveUsername(ctx context.Context, identifier, explicit string) (string, error) {
	if identifier != "" {
		username, err := s.registry.Lookup(ctx, identifier)
		if err != nil {
			return "", err
		}
		if username != "" {
			return username, nil
		}
	}
	if explicit != "" {
		return explicit, nil
	}
	return "", ErrNoMapping
}

// RecentTrack returns the user's latest play event with its exact play
// count merged in.
func (s *ScrobbleService) RecentTrack(ctx context.Context, username string) (*model.RecentTrack, error) {
	track, err := s.scrobbler.RecentTrack(ctx, username)
	if err != nil {
		log.Printf("[ScrobbleService] recent track fetch for %s failed: %v", username, err)
		return nil, ErrNotFound
	}
	if track == nil {
		return nil, ErrNotFound
	}

	count, err := s.scrobbler.TrackUserPlayCount(ctx, username, track.Artist.Text, track.Name)
	if err != nil {
		count = "0"
	}

	return &model.RecentTrack{
		TrackName:  track.Name,
		Artist:     track.Artist.Text,
		Album:      track.Album.Text,
		PlayCount:  count,
		NowPlaying: track.IsNowPlaying(),
		ImageURL:   track.LargestImageURL(),
	}, nil
}

// TopAlbums returns the user's top albums, at most topListSize entries in
// upstream order.
func (s *ScrobbleService) TopAlbums(ctx context.Context, username string) ([]model.RankedItem, error) {
	entries, err := s.scrobbler.TopAlbums(ctx, username)
	if err != nil {
		log.Printf("[ScrobbleService] top albums fetch for %s failed: %v", username, err)
		return nil, ErrNotFound
	}
	return rank(entries, true), nil
}

// TopTracks returns the user's top tracks, at most topListSize entries in
// upstream order.
func (s *ScrobbleService) TopTracks(ctx context.Context, username string) ([]model.RankedItem, error) {
	entries, err := s.scrobbler.TopTracks(ctx, username)
	if err != nil {
		log.Printf("[ScrobbleService] top tracks fetch for %s failed: %v", username, err)
		return nil, ErrNotFound
	}
	return rank(entries, true), nil
}

// TopArtists returns the user's top artists, at most topListSize entries in
// upstream order.
func (s *ScrobbleService) TopArtists(ctx context.Context, username string) ([]model.RankedItem, error) {
	entries, err := s.scrobbler.TopArtists(ctx, username)
	if err != nil {
		log.Printf("[ScrobbleService] top artists fetch for %s failed: %v", username, err)
		return nil, ErrNotFound
	}
	return rank(entries, false), nil
}

// AlbumNow joins the recent track's album name against the top-albums list.
func (s *ScrobbleService) AlbumNow(ctx context.Context, username string) (*model.NowPlayingSummary, error) {
	track, err := s.scrobbler.RecentTrack(ctx, username)
	if err != nil || track == nil {
		return nil, ErrNotFound
	}

	entries, err := s.scrobbler.TopAlbums(ctx, username)
	if err != nil {
		return nil, ErrNotFound
	}

	return &model.NowPlayingSummary{
		Name:      track.Album.Text,
		PlayCount: playCountFor(entries, track.Album.Text),
		ImageURL:  track.LargestImageURL(),
	}, nil
}

// ArtistNow joins the recent track's artist name against the top-artists
// list.
func (s *ScrobbleService) ArtistNow(ctx context.Context, username string) (*model.NowPlayingSummary, error) {
	track, err := s.scrobbler.RecentTrack(ctx, username)
	if err != nil || track == nil {
		return nil, ErrNotFound
	}

	entries, err := s.scrobbler.TopArtists(ctx, username)
	if err != nil {
		return nil, ErrNotFound
	}

	return &model.NowPlayingSummary{
		Name:      track.Artist.Text,
		PlayCount: playCountFor(entries, track.Artist.Text),
		ImageURL:  track.LargestImageURL(),
	}, nil
}

// rank truncates entries to topListSize and assigns 0-based ranks in
// upstream order. Upstream already sorts; no re-sorting here.
func rank(entries []lastfm.TopEntry, withArtist bool) []model.RankedItem {
	if len(entries) > topListSize {
		entries = entries[:topListSize]
	}

	items := make([]model.RankedItem, 0, len(entries))
	for i, e := range entries {
		item := model.RankedItem{
			Rank:      i,
			Name:      e.Name,
			PlayCount: e.PlayCount,
		}
		if withArtist {
			item.Artist = e.Artist.Name
		}
		items = append(items, item)
	}
	return items
}

// playCountFor finds the entry matching name exactly and returns its play
// count, "0" on no match. The recent track and the top list are separate
// snapshots, so a miss is a normal outcome.
func playCountFor(entries []lastfm.TopEntry, name string) string {
	for _, e := range entries {
		if e.Name == name {
			return e.PlayCount
		}
	}
	return "0"
}
