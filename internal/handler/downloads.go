package handler

import (
	"context"
	"net/http"

	"floppahub-rest-api/pkg/apierror"
	"floppahub-rest-api/pkg/response"
)

// Resolver turns a social-media URL into a direct download URL.
type Resolver interface {
	Resolve(ctx context.Context, target string) (string, error)
}

// DownloaderHandler handles download-proxy HTTP requests.
type DownloaderHandler struct {
	resolver Resolver
}

// NewDownloaderHandler creates a new downloader handler.
func NewDownloaderHandler(resolver Resolver) *DownloaderHandler {
	return &DownloaderHandler{resolver: resolver}
}

// General handles GET /downloader/geral?input=
func (h *DownloaderHandler) General(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("input")
	if input == "" {
		response.Error(w, apierror.BadRequest("input is required"))
		return
	}

	downloadURL, err := h.resolver.Resolve(r.Context(), input)
	if err != nil || downloadURL == "" {
		response.Error(w, apierror.Upstream(0, "downloader service unavailable"))
		return
	}

	response.OK(w, map[string]string{"text": downloadURL})
}
