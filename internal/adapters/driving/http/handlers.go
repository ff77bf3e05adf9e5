package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/domain"
	"github.com/gregor-dietrich/midas-gui-sub000/internal/core/services"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// SessionResponse describes the current operator session
// @Description Current operator session state
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// ViewResponse is the view model behind a guarded navigation
// @Description View model for a console view
type ViewResponse struct {
	View       string `json:"view"`
	ShowLogout bool   `json:"show_logout"`
	Username   string `json:"username,omitempty"`
	// Retry is the navigation target offered by the backend-error view.
	Retry string `json:"retry,omitempty"`
}

// Console endpoints

// handleHealth godoc
// @Summary      Console health check
// @Description  Returns the health status of the console itself
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion godoc
// @Summary      Get console version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleLogin godoc
// @Summary      Operator login
// @Description  Validate credentials against the backend and open a console session
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.AuthOutcome
// @Failure      400      {object}  domain.AuthOutcome  "Missing username or password"
// @Failure      401      {object}  domain.AuthOutcome  "Invalid credentials"
// @Failure      502      {object}  domain.AuthOutcome  "Backend unavailable"
// @Router       /api/v1/auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session := GetSession(r.Context())
	created := false
	if session == nil {
		now := time.Now()
		session = &domain.Session{
			ID:          uuid.NewString(),
			Credentials: domain.NewCredentialStore(),
			ExpiresAt:   now.Add(s.sessionTTL),
			CreatedAt:   now,
			LastSeenAt:  now,
		}
		created = true
	}

	gateway := services.NewAuthGateway(s.apiClient, session.Credentials)
	outcome := gateway.Authenticate(r.Context(), req.Username, req.Password)

	switch outcome.Status {
	case domain.AuthSuccess:
		if created {
			if err := s.sessions.Create(r.Context(), session); err != nil {
				writeError(w, http.StatusInternalServerError, "failed to create session")
				return
			}
		} else if err := s.sessions.Save(r.Context(), session); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to save session")
			return
		}

		signed, err := s.signer.Sign(session.ID, session.ExpiresAt)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to sign session token")
			return
		}
		s.setSessionCookie(w, signed, session.ExpiresAt)
		writeJSON(w, http.StatusOK, outcome)

	case domain.AuthInvalidInput:
		writeJSON(w, http.StatusBadRequest, outcome)

	case domain.AuthInvalidCredentials:
		// The operator stays on the login view; only the password field
		// should be cleared client-side.
		writeJSON(w, http.StatusUnauthorized, outcome)

	default:
		writeJSON(w, http.StatusBadGateway, outcome)
	}
}

// handleLogout godoc
// @Summary      Operator logout
// @Description  Clears the session's credentials and removes the session
// @Tags         Authentication
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse  "No session"
// @Router       /api/v1/auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	session := GetSession(r.Context())

	gateway := services.NewAuthGateway(s.apiClient, session.Credentials)
	gateway.Logout()

	if err := s.sessions.Delete(r.Context(), session.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// handleSession godoc
// @Summary      Current session state
// @Tags         Authentication
// @Produce      json
// @Success      200  {object}  SessionResponse
// @Router       /api/v1/auth/session [get]
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	session := GetSession(r.Context())
	if session == nil {
		writeJSON(w, http.StatusOK, SessionResponse{Authenticated: false})
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{
		Authenticated: session.Credentials.IsAuthenticated(),
		Username:      session.Credentials.Username(),
	})
}

// View endpoint

// handleView godoc
// @Summary      Render a console view model
// @Description  Reached only when the navigation guard resolved Proceed
// @Tags         Views
// @Produce      json
// @Param        view  path      string  true  "View slug"
// @Success      200   {object}  ViewResponse
// @Failure      404   {object}  ErrorResponse  "Unknown view"
// @Router       /views/{view} [get]
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	view, _ := viewFromSlug(mux.Vars(r)["view"])
	decision := GetDecision(r.Context())

	resp := ViewResponse{View: string(view), ShowLogout: decision.ShowLogout}
	if view == domain.ViewBackendError {
		resp.Retry = "/views/dashboard"
	}
	if decision.ShowLogout {
		if session := GetSession(r.Context()); session != nil {
			resp.Username = session.Credentials.Username()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Resource endpoints

// handleListResource godoc
// @Summary      List records of a collection
// @Description  Bulk load dispatched off the request path under a 30s bound
// @Tags         Resources
// @Produce      json
// @Param        resource  path      string  true  "Collection name"
// @Success      200       {array}   object
// @Failure      401       {object}  ErrorResponse  "Session expired"
// @Failure      502       {object}  ErrorResponse  "Backend failure"
// @Router       /api/v1/{resource} [get]
func (s *Server) handleListResource(w http.ResponseWriter, r *http.Request) {
	resource := domain.Resource(mux.Vars(r)["resource"])
	if !resource.IsValid() {
		writeError(w, http.StatusNotFound, "unknown resource")
		return
	}

	session := GetSession(r.Context())
	svc := s.resourceService(session)

	result := <-s.loader.Load(r.Context(), resource, func(ctx context.Context) ([]domain.Document, error) {
		return svc.List(ctx, resource)
	})
	if result.Err != nil {
		s.writeClassified(w, r, session, result.Err)
		return
	}

	if result.Docs == nil {
		result.Docs = []domain.Document{}
	}
	writeJSON(w, http.StatusOK, result.Docs)
}

// handleGetResource godoc
// @Summary      Fetch one record
// @Tags         Resources
// @Produce      json
// @Router       /api/v1/{resource}/{id} [get]
func (s *Server) handleGetResource(w http.ResponseWriter, r *http.Request) {
	resource, id := resourceVars(r)
	if !resource.IsValid() {
		writeError(w, http.StatusNotFound, "unknown resource")
		return
	}

	session := GetSession(r.Context())
	doc, err := s.resourceService(session).Get(r.Context(), resource, id)
	if err != nil {
		s.writeClassified(w, r, session, err)
		return
	}
	writeRawJSON(w, http.StatusOK, doc)
}

// handleCreateResource godoc
// @Summary      Create a record
// @Tags         Resources
// @Accept       json
// @Produce      json
// @Router       /api/v1/{resource} [post]
func (s *Server) handleCreateResource(w http.ResponseWriter, r *http.Request) {
	resource := domain.Resource(mux.Vars(r)["resource"])
	if !resource.IsValid() {
		writeError(w, http.StatusNotFound, "unknown resource")
		return
	}

	doc, ok := readDocument(w, r)
	if !ok {
		return
	}

	session := GetSession(r.Context())
	created, err := s.resourceService(session).Create(r.Context(), resource, doc)
	if err != nil {
		s.writeClassified(w, r, session, err)
		return
	}
	writeRawJSON(w, http.StatusCreated, created)
}

// handleUpdateResource godoc
// @Summary      Update a record
// @Tags         Resources
// @Accept       json
// @Produce      json
// @Router       /api/v1/{resource}/{id} [put]
func (s *Server) handleUpdateResource(w http.ResponseWriter, r *http.Request) {
	resource, id := resourceVars(r)
	if !resource.IsValid() {
		writeError(w, http.StatusNotFound, "unknown resource")
		return
	}

	doc, ok := readDocument(w, r)
	if !ok {
		return
	}

	session := GetSession(r.Context())
	updated, err := s.resourceService(session).Update(r.Context(), resource, id, doc)
	if err != nil {
		s.writeClassified(w, r, session, err)
		return
	}
	writeRawJSON(w, http.StatusOK, updated)
}

// handleDeleteResource godoc
// @Summary      Delete a record
// @Tags         Resources
// @Router       /api/v1/{resource}/{id} [delete]
func (s *Server) handleDeleteResource(w http.ResponseWriter, r *http.Request) {
	resource, id := resourceVars(r)
	if !resource.IsValid() {
		writeError(w, http.StatusNotFound, "unknown resource")
		return
	}

	session := GetSession(r.Context())
	if err := s.resourceService(session).Delete(r.Context(), resource, id); err != nil {
		s.writeClassified(w, r, session, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeClassified maps a classified failure onto the console's response
// policy. A 401 already logged the session out via the classifier; the
// cleared state is persisted and the client told to return to login.
func (s *Server) writeClassified(w http.ResponseWriter, r *http.Request, session *domain.Session, err error) {
	var classified *domain.ClassifiedError
	if !errors.As(err, &classified) {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid input")
			return
		}
		writeError(w, http.StatusInternalServerError, "unexpected error")
		return
	}

	switch classified.Kind {
	case domain.ErrorKindAuthentication:
		if err := s.sessions.Save(r.Context(), session); err != nil {
			s.logger.Warn("failed to persist invalidated session", "error", err)
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":    classified.Message,
			"redirect": "/views/login",
		})

	case domain.ErrorKindConnection:
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":    classified.Message,
			"redirect": "/views/backend-error",
		})

	default:
		// Inline notification; the current view stays intact.
		writeError(w, http.StatusBadGateway, classified.Message)
	}
}

// Helper functions

func resourceVars(r *http.Request) (domain.Resource, string) {
	vars := mux.Vars(r)
	return domain.Resource(vars["resource"]), vars["id"]
}

func readDocument(w http.ResponseWriter, r *http.Request) (domain.Document, bool) {
	data, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil || !json.Valid(data) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	return domain.Document(data), true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeRawJSON(w http.ResponseWriter, status int, doc domain.Document) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(doc)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
