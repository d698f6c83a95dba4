package service

import (
	"context"
	"log"
	"strconv"

	"floppahub-rest-api/internal/model"
	"floppahub-rest-api/internal/repository"
)

// Feed lists free games and resolves their details.
type Feed interface {
	FreeGameIDs(ctx context.Context) ([]int64, error)
	GameDetails(ctx context.Context, id int64) (*model.GameDetails, error)
	DownloadImage(ctx context.Context, url string) ([]byte, error)
}

// ImageHost re-hosts a thumbnail and returns its public URL.
type ImageHost interface {
	Upload(ctx context.Context, content []byte) (string, error)
}

// AlertService turns the free-games feed into at most one deduplicated
// alert per pass.
type AlertService struct {
	feed   Feed
	images ImageHost
	marker repository.MarkerRepository
}

// NewAlertService creates a new alert service.
func NewAlertService(feed Feed, images ImageHost, marker repository.MarkerRepository) *AlertService {
	return &AlertService{
		feed:   feed,
		images: images,
		marker: marker,
	}
}

// Run performs one pipeline pass. It returns (nil, nil) when there is
// nothing new to announce. Feed fetch failures propagate so the caller can
// relay the upstream status; detail and thumbnail failures degrade.
func (s *AlertService) Run(ctx context.Context) (*model.GameAlert, error) {
	ids, err := s.feed.FreeGameIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	// Feed order defines recency: only the head entry matters per pass.
	details, err := s.feed.GameDetails(ctx, ids[0])
	if err != nil {
		log.Printf("[AlertService] detail fetch for game %d failed: %v", ids[0], err)
		return nil, nil
	}
	if details == nil || details.RawID == "" {
		return nil, nil
	}

	numericID, parseErr := strconv.ParseInt(details.RawID, 10, 64)
	parsed := parseErr == nil

	if parsed {
		marker, ok, err := s.marker.Read(ctx)
		if err != nil {
			return nil, err
		}
		if ok && marker == numericID {
			return nil, nil
		}
	}

	alert := &model.GameAlert{
		ID:           details.RawID,
		Name:         details.Title,
		Description:  details.Description,
		Link:         details.BrowserURL,
		EndDate:      details.ExpiryLocal,
		Price:        details.PriceBRL,
		ThumbnailURL: s.rehostThumbnail(ctx, details.ThumbnailURL),
	}

	// Without a numeric id there is nothing to compare against next pass,
	// so the marker stays put and the alert may repeat.
	if parsed {
		if err := s.marker.Write(ctx, numericID); err != nil {
			return nil, err
		}
	}

	return alert, nil
}

// rehostThumbnail downloads the source image and re-hosts it. Every failure
// degrades to an empty URL.
func (s *AlertService) rehostThumbnail(ctx context.Context, sourceURL string) string {
	if sourceURL == "" {
		return ""
	}

	content, err := s.feed.DownloadImage(ctx, sourceURL)
	if err != nil {
		log.Printf("[AlertService] thumbnail download failed: %v", err)
		return ""
	}

	hosted, err := s.images.Upload(ctx, content)
	if err != nil {
		log.Printf("[AlertService] thumbnail upload failed: %v", err)
		return ""
	}

	return hosted
}
