// Package server wires the HTTP listener: routing, auth views, and the
// RPC mediator.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/omnicloud/transmission-proxy/internal/auth"
	"github.com/omnicloud/transmission-proxy/internal/mediator"
)

// Server is the proxy's HTTP front end.
type Server struct {
	router    *mux.Router
	server    *http.Server
	bind      string
	base      string
	serveRoot string

	med       *mediator.Mediator
	providers *auth.Providers
	signer    *auth.TokenSigner
}

// New builds a Server. base is the mount prefix (e.g. "/t"); all routes
// below it are registered under base.
func New(bind, base, serveRoot string, med *mediator.Mediator, providers *auth.Providers, signer *auth.TokenSigner) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		bind:      bind,
		base:      base,
		serveRoot: serveRoot,
		med:       med,
		providers: providers,
		signer:    signer,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.loggingMiddleware)

	s.router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)

	base := s.router.PathPrefix(s.base).Subrouter()
	base.HandleFunc("/login", s.handleLoginView).Methods(http.MethodGet)
	base.HandleFunc("/auth/basic", s.handleBasicLogin).Methods(http.MethodPost)
	base.HandleFunc("/logout", s.handleLogout).Methods(http.MethodGet, http.MethodPost)
	base.HandleFunc("/auth/{provider}/login", s.handleOAuth2Login).Methods(http.MethodGet)
	base.HandleFunc("/auth/{provider}/callback", s.handleOAuth2Callback).Methods(http.MethodGet)

	// Everything else under base flows into the mediator: RPC paths get
	// the full filter pipeline, anything else is forwarded unmodified.
	base.PathPrefix("/").HandlerFunc(s.handleProxied)

	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir(s.serveRoot)))

	log.Println("[server] routes configured")
}

func (s *Server) handleProxied(w http.ResponseWriter, r *http.Request) {
	id := s.identify(r)
	r = s.trimBaseFromRequest(r)

	if mediator.IsRPCPath(r.URL.Path) {
		s.med.ServeHTTP(w, r, id)
		return
	}
	s.med.ServeNonRPC(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Start begins listening. It blocks until the server stops or errors.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.bind,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	log.Printf("[server] listening on %s", s.bind)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("[server] shutting down")
	return s.server.Shutdown(ctx)
}

// loginURL builds the absolute path to the login view under base.
func (s *Server) loginURL() string {
	return s.base + "/login"
}
