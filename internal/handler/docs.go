package handler

import (
	"net/http"

	"floppahub-rest-api/pkg/response"
)

// RouteDoc describes one route of the public catalog.
type RouteDoc struct {
	Method  string   `json:"method"`
	Path    string   `json:"path"`
	Params  []string `json:"params,omitempty"`
	Auth    bool     `json:"auth"`
	Example string   `json:"example,omitempty"`
	About   string   `json:"about"`
}

// DocsHandler serves the static route catalog.
type DocsHandler struct {
	routes []RouteDoc
}

// NewDocsHandler creates a new docs handler.
func NewDocsHandler() *DocsHandler {
	return &DocsHandler{routes: routeCatalog()}
}

// Docs handles GET /docs
func (h *DocsHandler) Docs(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]interface{}{
		"service": "floppahub-rest-api",
		"auth":    "pass the API key as ?apikey= or the X-API-Key header",
		"routes":  h.routes,
	})
}

// Simple handles GET /docs/simple
func (h *DocsHandler) Simple(w http.ResponseWriter, r *http.Request) {
	paths := make([]string, 0, len(h.routes))
	for _, route := range h.routes {
		paths = append(paths, route.Method+" "+route.Path)
	}
	response.OK(w, paths)
}

func routeCatalog() []RouteDoc {
	return []RouteDoc{
		{
			Method:  "GET",
			Path:    "/alert/games",
			Auth:    true,
			Example: "/alert/games?apikey=KEY",
			About:   "Newest free-game alert, deduplicated; empty list when nothing new. Rate limited.",
		},
		{
			Method:  "GET",
			Path:    "/fm/register",
			Params:  []string{"user", "number"},
			Auth:    true,
			Example: "/fm/register?user=someuser&number=5511999999999&apikey=KEY",
			About:   "Register a Last.fm username for a phone number.",
		},
		{
			Method:  "GET",
			Path:    "/fm/recent",
			Params:  []string{"number", "user"},
			Auth:    true,
			Example: "/fm/recent?number=5511999999999&apikey=KEY",
			About:   "Most recent track with exact play count.",
		},
		{
			Method: "GET",
			Path:   "/fm/album",
			Params: []string{"number", "user"},
			Auth:   true,
			About:  "Current track's album with its play count.",
		},
		{
			Method: "GET",
			Path:   "/fm/artist",
			Params: []string{"number", "user"},
			Auth:   true,
			About:  "Current track's artist with its play count.",
		},
		{
			Method: "GET",
			Path:   "/fm/top/album",
			Params: []string{"number", "user"},
			Auth:   true,
			About:  "Top 5 albums.",
		},
		{
			Method: "GET",
			Path:   "/fm/top/track",
			Params: []string{"number", "user"},
			Auth:   true,
			About:  "Top 5 tracks.",
		},
		{
			Method: "GET",
			Path:   "/fm/top/artist",
			Params: []string{"number", "user"},
			Auth:   true,
			About:  "Top 5 artists.",
		},
		{
			Method:  "GET",
			Path:    "/downloader/geral",
			Params:  []string{"input"},
			Auth:    true,
			Example: "/downloader/geral?input=https://...&apikey=KEY",
			About:   "Resolve a social-media URL into a direct download URL.",
		},
		{
			Method: "GET",
			Path:   "/ai/gpt4",
			Params: []string{"input"},
			Auth:   true,
			About:  "Single-shot chat completion.",
		},
		{
			Method: "GET",
			Path:   "/api/status",
			About:  "Service status for monitoring.",
		},
		{
			Method: "GET",
			Path:   "/api/v1/health",
			About:  "Liveness probe.",
		},
		{
			Method: "GET",
			Path:   "/api/v1/ready",
			About:  "Readiness probe.",
		},
	}
}
