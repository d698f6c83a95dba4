package middleware

import (
	"net/http"
	"strings"

	"floppahub-rest-api/pkg/apierror"
)

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	APIKeys []string
}

// NewAuthMiddleware creates an API-key authentication middleware. Clients
// pass the key either as the apikey query parameter or the X-API-Key
// header. Docs and health endpoints stay public.
func NewAuthMiddleware(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			apiKey := r.URL.Query().Get("apikey")
			if apiKey == "" {
				apiKey = r.Header.Get("X-API-Key")
			}

			if apiKey == "" {
				writeError(w, apierror.Unauthorized("Authentication required. Use the apikey query parameter or X-API-Key header."))
				return
			}

			if !isValidKey(apiKey, cfg.APIKeys) {
				writeError(w, apierror.Unauthorized("Invalid API key"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isPublicPath reports whether the path is reachable without a key.
func isPublicPath(path string) bool {
	if path == "/api/status" || path == "/api/v1/health" || path == "/api/v1/ready" {
		return true
	}
	return strings.HasPrefix(path, "/docs")
}

// writeError writes an API error response.
func writeError(w http.ResponseWriter, err *apierror.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	w.Write(err.ToJSON())
}

// isValidKey checks if the provided key is in the valid keys list.
func isValidKey(key string, validKeys []string) bool {
	for _, valid := range validKeys {
		if key == valid {
			return true
		}
	}
	return false
}
