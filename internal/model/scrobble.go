package model

// RecentTrack is the snapshot of a user's latest play event, with the exact
// per-track play count merged in from a second upstream call.
type RecentTrack struct {
	TrackName  string `json:"track_name"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	PlayCount  string `json:"playcount"`
	NowPlaying bool   `json:"now_playing"`
	ImageURL   string `json:"image_url"`
}

// RankedItem is one entry of a top-N listing. Rank is the 0-based position
// in the truncated sequence; upstream order is trusted, no re-sorting.
type RankedItem struct {
	Rank      int    `json:"rank"`
	Name      string `json:"name"`
	Artist    string `json:"artist,omitempty"`
	PlayCount string `json:"playcount"`
}

// NowPlayingSummary joins the current album or artist against the user's top
// list. PlayCount is "0" when the join finds no match.
type NowPlayingSummary struct {
	Name      string `json:"name"`
	PlayCount string `json:"playcount"`
	ImageURL  string `json:"image_url"`
}
