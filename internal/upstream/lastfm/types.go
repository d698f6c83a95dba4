package lastfm

// TextField is the Last.fm convention for nested names ({"#text": ...}).
type TextField struct {
	Text string `json:"#text"`
}

// NameField is the convention used inside top-list entries.
type NameField struct {
	Name string `json:"name"`
}

// Image is one entry of an image size ladder; the last entry is largest.
type Image struct {
	Size string `json:"size"`
	URL  string `json:"#text"`
}

// TrackAttr carries per-track attributes of a recent-tracks entry.
type TrackAttr struct {
	NowPlaying string `json:"nowplaying"`
}

// Track is one recent-tracks entry.
type Track struct {
	Name   string     `json:"name"`
	Artist TextField  `json:"artist"`
	Album  TextField  `json:"album"`
	Image  []Image    `json:"image"`
	Attr   *TrackAttr `json:"@attr,omitempty"`
}

// IsNowPlaying derives the boolean from the upstream "currently playing"
// flag, which is only present while a track is live.
func (t *Track) IsNowPlaying() bool {
	return t.Attr != nil && t.Attr.NowPlaying == "true"
}

// LargestImageURL returns the last (largest) image URL, or "".
func (t *Track) LargestImageURL() string {
	if len(t.Image) == 0 {
		return ""
	}
	return t.Image[len(t.Image)-1].URL
}

// TopEntry is one entry of a top-albums/tracks/artists list. Artist is only
// populated for album and track lists.
type TopEntry struct {
	Name      string    `json:"name"`
	PlayCount string    `json:"playcount"`
	Artist    NameField `json:"artist"`
}
