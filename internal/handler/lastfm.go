package handler

import (
	"errors"
	"net/http"
	"strings"

	"floppahub-rest-api/internal/service"
	"floppahub-rest-api/pkg/apierror"
	"floppahub-rest-api/pkg/response"
)

// whatsappSuffix is stripped from identifiers so chat-bot JIDs and bare
// phone numbers register under the same key.
const whatsappSuffix = "@s.whatsapp.net"

// FMHandler handles scrobble-related HTTP requests.
type FMHandler struct {
	scrobbles *service.ScrobbleService
}

// NewFMHandler creates a new scrobble handler.
func NewFMHandler(scrobbles *service.ScrobbleService) *FMHandler {
	return &FMHandler{scrobbles: scrobbles}
}

// Register handles GET /fm/register?user=&number=
func (h *FMHandler) Register(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("user")
	number := r.URL.Query().Get("number")
	if username == "" || number == "" {
		response.Error(w, apierror.BadRequest("user and number are required"))
		return
	}

	identifier := strings.TrimSuffix(number, whatsappSuffix)

	if err := h.scrobbles.Register(r.Context(), identifier, username); err != nil {
		response.Error(w, apierror.InternalError("failed to save registration"))
		return
	}

	response.OK(w, map[string]string{
		"identifier": identifier,
		"username":   username,
	})
}

// Recent handles GET /fm/recent
func (h *FMHandler) Recent(w http.ResponseWriter, r *http.Request) {
	username, ok := h.resolve(w, r)
	if !ok {
		return
	}

	track, err := h.scrobbles.RecentTrack(r.Context(), username)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	response.OK(w, track)
}

// Album handles GET /fm/album
func (h *FMHandler) Album(w http.ResponseWriter, r *http.Request) {
	username, ok := h.resolve(w, r)
	if !ok {
		return
	}

	summary, err := h.scrobbles.AlbumNow(r.Context(), username)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	response.OK(w, summary)
}

// Artist handles GET /fm/artist
func (h *FMHandler) Artist(w http.ResponseWriter, r *http.Request) {
	username, ok := h.resolve(w, r)
	if !ok {
		return
	}

	summary, err := h.scrobbles.ArtistNow(r.Context(), username)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	response.OK(w, summary)
}

// TopAlbums handles GET /fm/top/album
func (h *FMHandler) TopAlbums(w http.ResponseWriter, r *http.Request) {
	username, ok := h.resolve(w, r)
	if !ok {
		return
	}

	items, err := h.scrobbles.TopAlbums(r.Context(), username)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	response.OK(w, items)
}

// TopTracks handles GET /fm/top/track
func (h *FMHandler) TopTracks(w http.ResponseWriter, r *http.Request) {
	username, ok := h.resolve(w, r)
	if !ok {
		return
	}

	items, err := h.scrobbles.TopTracks(r.Context(), username)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	response.OK(w, items)
}

// TopArtists handles GET /fm/top/artist
func (h *FMHandler) TopArtists(w http.ResponseWriter, r *http.Request) {
	username, ok := h.resolve(w, r)
	if !ok {
		return
	}

	items, err := h.scrobbles.TopArtists(r.Context(), username)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	response.OK(w, items)
}

// resolve maps the number/user query parameters to a scrobble username and
// writes the error response itself when resolution fails: 404 when a number
// was given but never registered, 400 when neither parameter arrived.
func (h *FMHandler) resolve(w http.ResponseWriter, r *http.Request) (string, bool) {
	number := strings.TrimSuffix(r.URL.Query().Get("number"), whatsappSuffix)
	explicit := r.URL.Query().Get("user")

	username, err := h.scrobbles.ResolveUsername(r.Context(), number, explicit)
	if err != nil {
		if errors.Is(err, service.ErrNoMapping) && number != "" {
			response.Error(w, apierror.NotFound("no username registered for this number"))
		} else if errors.Is(err, service.ErrNoMapping) {
			response.Error(w, apierror.BadRequest("user or number is required"))
		} else {
			response.Error(w, apierror.InternalError("failed to resolve username"))
		}
		return "", false
	}
	return username, true
}

func (h *FMHandler) writeDomainError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrNotFound) {
		response.Error(w, apierror.NotFound("no scrobble data found"))
		return
	}
	response.Error(w, apierror.InternalError("scrobble lookup failed"))
}
