package model

// GameDetails holds the fields of one FreeStuff game info payload that the
// alert pipeline consumes. RawID is kept as delivered; numeric parsing
// happens in the pipeline because the marker comparison needs it.
type GameDetails struct {
	RawID        string
	Title        string
	Description  string
	BrowserURL   string
	PriceBRL     float64
	ExpiryLocal  string
	ThumbnailURL string
}

// GameAlert is the pipeline's output unit: zero or one per pass.
type GameAlert struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Link         string  `json:"link"`
	EndDate      string  `json:"end_date"`
	Price        float64 `json:"price"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
}
