package router

import (
	"net/http"

	"floppahub-rest-api/internal/handler"
	"floppahub-rest-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler           *handler.Handler
	AlertHandler      *handler.AlertHandler
	FMHandler         *handler.FMHandler
	DownloaderHandler *handler.DownloaderHandler
	ChatHandler       *handler.ChatHandler
	DocsHandler       *handler.DocsHandler
	AuthMiddleware    func(http.Handler) http.Handler
	AlertRateLimiter  *middleware.RateLimiter
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "X-API-Key"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// PUBLIC routes (no auth required)
	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
		r.Get("/api/v1/health", cfg.Handler.Health)
		r.Get("/api/v1/ready", cfg.Handler.Ready)
	}
	if cfg.DocsHandler != nil {
		r.Get("/docs", cfg.DocsHandler.Docs)
		r.Get("/docs/simple", cfg.DocsHandler.Simple)
	}

	// AUTHENTICATED routes (use Group to apply auth middleware only to these)
	r.Group(func(r chi.Router) {
		if cfg.AuthMiddleware != nil {
			r.Use(cfg.AuthMiddleware)
		}

		// Alert endpoint carries its own rate limit on top of auth
		if cfg.AlertHandler != nil {
			r.Group(func(r chi.Router) {
				if cfg.AlertRateLimiter != nil {
					r.Use(cfg.AlertRateLimiter.Limit)
				}
				r.Get("/alert/games", cfg.AlertHandler.Games)
			})
		}

		if cfg.FMHandler != nil {
			r.Route("/fm", func(r chi.Router) {
				r.Get("/register", cfg.FMHandler.Register)
				r.Get("/recent", cfg.FMHandler.Recent)
				r.Get("/album", cfg.FMHandler.Album)
				r.Get("/artist", cfg.FMHandler.Artist)
				r.Route("/top", func(r chi.Router) {
					r.Get("/album", cfg.FMHandler.TopAlbums)
					r.Get("/track", cfg.FMHandler.TopTracks)
					r.Get("/artist", cfg.FMHandler.TopArtists)
				})
			})
		}

		if cfg.DownloaderHandler != nil {
			r.Get("/downloader/geral", cfg.DownloaderHandler.General)
		}

		if cfg.ChatHandler != nil {
			r.Get("/ai/gpt4", cfg.ChatHandler.Complete)
		}
	})

	return r
}
