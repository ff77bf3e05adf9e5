package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driven"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/ports/driving"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/services"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/worker"
)

// Server represents the console's HTTP server
type Server struct {
	httpServer *http.Server
	router     *mux.Router
	version    string

	sessionTTL   time.Duration
	cookieSecure bool

	// Services
	guard  driving.NavigationGuard
	loader *worker.Loader

	// Infrastructure
	apiClient driven.APIClient
	sessions  driven.SessionStore
	signer    driven.TokenSigner
	logger    *slog.Logger
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	Version      string
	SessionTTL   time.Duration
	CookieSecure bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:       "0.0.0.0",
		Port:       8080,
		Version:    "dev",
		SessionTTL: 12 * time.Hour,
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	guard driving.NavigationGuard,
	loader *worker.Loader,
	apiClient driven.APIClient,
	sessions driven.SessionStore,
	signer driven.TokenSigner,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	sessionTTL := cfg.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}

	s := &Server{
		router:       mux.NewRouter(),
		version:      cfg.Version,
		sessionTTL:   sessionTTL,
		cookieSecure: cfg.CookieSecure,
		guard:        guard,
		loader:       loader,
		apiClient:    apiClient,
		sessions:     sessions,
		signer:       signer,
		logger:       logger,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	sessionMW := NewSessionMiddleware(s.sessions, s.signer)
	guardMW := NewGuardMiddleware(s.guard)

	// Health endpoints (no session)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)

	// Auth endpoints
	s.router.Handle("/api/v1/auth/login",
		sessionMW.Resolve(http.HandlerFunc(s.handleLogin))).Methods(http.MethodPost)
	s.router.Handle("/api/v1/auth/logout",
		sessionMW.Resolve(
			sessionMW.RequireSession(http.HandlerFunc(s.handleLogout)))).Methods(http.MethodPost)
	s.router.Handle("/api/v1/auth/session",
		sessionMW.Resolve(http.HandlerFunc(s.handleSession))).Methods(http.MethodGet)

	// Guarded views; every navigation runs through the guard
	s.router.Handle("/views/{view}",
		sessionMW.Resolve(
			guardMW.Guard(http.HandlerFunc(s.handleView)))).Methods(http.MethodGet)
	s.router.Handle("/",
		sessionMW.Resolve(
			guardMW.Guard(http.HandlerFunc(s.handleView)))).Methods(http.MethodGet)

	// Resource endpoints (session required)
	s.router.Handle("/api/v1/{resource}",
		sessionMW.Resolve(
			sessionMW.RequireSession(http.HandlerFunc(s.handleListResource)))).Methods(http.MethodGet)
	s.router.Handle("/api/v1/{resource}",
		sessionMW.Resolve(
			sessionMW.RequireSession(http.HandlerFunc(s.handleCreateResource)))).Methods(http.MethodPost)
	s.router.Handle("/api/v1/{resource}/{id}",
		sessionMW.Resolve(
			sessionMW.RequireSession(http.HandlerFunc(s.handleGetResource)))).Methods(http.MethodGet)
	s.router.Handle("/api/v1/{resource}/{id}",
		sessionMW.Resolve(
			sessionMW.RequireSession(http.HandlerFunc(s.handleUpdateResource)))).Methods(http.MethodPut)
	s.router.Handle("/api/v1/{resource}/{id}",
		sessionMW.Resolve(
			sessionMW.RequireSession(http.HandlerFunc(s.handleDeleteResource)))).Methods(http.MethodDelete)
}

// resourceService builds the per-session resource service. The gateway is
// bound to the session's credentials so an authentication failure clears
// exactly that session.
func (s *Server) resourceService(session *domain.Session) driving.ResourceService {
	gateway := services.NewAuthGateway(s.apiClient, session.Credentials)
	return services.NewResourceService(s.apiClient, gateway)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
