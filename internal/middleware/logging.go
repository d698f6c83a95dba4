package middleware

import (
	"log"
	"net/http"
	"net/url"
	"time"
)

// Logging is a middleware that logs HTTP requests. The apikey query
// parameter is redacted before the URL reaches the log.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Printf(
			"[%s] %s %s %d %s",
			r.Method,
			redactedURL(r.URL),
			r.RemoteAddr,
			wrapped.statusCode,
			duration,
		)
	})
}

// redactedURL renders the request URL with the apikey value masked.
func redactedURL(u *url.URL) string {
	q := u.Query()
	if q.Get("apikey") == "" {
		return u.RequestURI()
	}
	q.Set("apikey", "REDACTED")

	masked := *u
	masked.RawQuery = q.Encode()
	return masked.RequestURI()
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
