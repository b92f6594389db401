package server

import (
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/omnicloud/transmission-proxy/internal/auth"
)

const sessionCookieName = "transmission_proxy_session"

// loggingMiddleware logs every request's method, path, status, and
// duration.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		log.Printf("%s %s %d %v", r.Method, r.RequestURI, wrapped.statusCode, time.Since(start))
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code for
// logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// identify resolves r's caller identity: first a HTTP Basic header (always
// re-verified against the password it carries), then a session cookie
// (already verified, at login time), falling back to Anonymous.
func (s *Server) identify(r *http.Request) auth.Identity {
	if username, password, ok := r.BasicAuth(); ok {
		return auth.Identity{Kind: auth.Basic, Username: username, Password: &password}
	}

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return auth.Identity{Kind: auth.Anonymous}
	}

	id, err := s.signer.Verify(cookie.Value)
	if err != nil {
		return auth.Identity{Kind: auth.Anonymous}
	}
	return id
}

// trimBase strips the server's mount prefix from path.
func (s *Server) trimBase(path string) string {
	return strings.TrimPrefix(path, s.base)
}

// trimBaseFromRequest returns a shallow copy of r with its URL path rebased
// to drop the server's mount prefix, so the mediator and upstream never see
// it (mirrors the stdlib http.StripPrefix pattern).
func (s *Server) trimBaseFromRequest(r *http.Request) *http.Request {
	if s.base == "" {
		return r
	}
	trimmed := s.trimBase(r.URL.Path)
	if trimmed == "" {
		trimmed = "/"
	}
	r2 := new(http.Request)
	*r2 = *r
	r2.URL = new(url.URL)
	*r2.URL = *r.URL
	r2.URL.Path = trimmed
	return r2
}
