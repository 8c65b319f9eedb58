// Package mockapi is an in-memory implementation of the task backend REST API.
// It backs the integration tests and the `mockapi` development binary.
package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/types"
)

const (
	SessionCookie = "lista_session"
	XSRFCookie    = "XSRF-TOKEN"
	XSRFHeader    = "X-XSRF-TOKEN"
)

type ctxKey struct{}

// Server serves the REST API under /api with versioned resources under /api/<version>
type Server struct {
	router  *mux.Router
	store   *store
	version string

	mu     sync.Mutex
	hits   map[string]int
	faults []fault
	delay  time.Duration
}

type fault struct {
	method string
	prefix string
	status int
}

// Option configures a Server
type Option func(*Server)

// WithVersion sets the version segment (default v1)
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.store.now = now }
}

// New builds a server with an empty store
func New(opts ...Option) *Server {
	s := &Server{
		store:   newStore(),
		version: "v1",
		hits:    make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.Use(s.countHits, s.injectFaults)

	r.HandleFunc("/sanctum/csrf-cookie", s.csrfCookie).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.checkXSRF)

	auth := api.PathPrefix("/auth/session").Subrouter()
	auth.HandleFunc("/login", s.login).Methods(http.MethodPost)
	auth.HandleFunc("/register", s.register).Methods(http.MethodPost)
	auth.Handle("/logout", s.requireUser(http.HandlerFunc(s.logout))).Methods(http.MethodPost)
	auth.Handle("/me", s.requireUser(http.HandlerFunc(s.me))).Methods(http.MethodGet)

	v := api.PathPrefix("/" + s.version).Subrouter()
	v.Use(s.requireUser)

	v.HandleFunc("/workspaces", s.listWorkspaces).Methods(http.MethodGet)
	v.HandleFunc("/workspaces", s.createWorkspace).Methods(http.MethodPost)
	v.HandleFunc("/workspaces/{id}", s.getWorkspace).Methods(http.MethodGet)
	v.HandleFunc("/workspaces/{id}", s.updateWorkspace).Methods(http.MethodPut)
	v.HandleFunc("/workspaces/{id}", s.deleteWorkspace).Methods(http.MethodDelete)
	v.HandleFunc("/workspaces/{id}/last-visited", s.lastVisited).Methods(http.MethodPost)

	v.HandleFunc("/workspaces/{id}/spaces", s.listSpaces).Methods(http.MethodGet)
	v.HandleFunc("/workspaces/{id}/spaces", s.createSpace).Methods(http.MethodPost)
	v.HandleFunc("/spaces/{id}", s.getSpace).Methods(http.MethodGet)
	v.HandleFunc("/spaces/{id}", s.updateSpace).Methods(http.MethodPut)
	v.HandleFunc("/spaces/{id}", s.deleteSpace).Methods(http.MethodDelete)

	v.HandleFunc("/spaces/{id}/groups", s.listGroups).Methods(http.MethodGet)
	v.HandleFunc("/spaces/{id}/groups", s.createGroup).Methods(http.MethodPost)
	v.HandleFunc("/groups/{id}", s.getGroup).Methods(http.MethodGet)
	v.HandleFunc("/groups/{id}", s.updateGroup).Methods(http.MethodPut)
	v.HandleFunc("/groups/{id}", s.deleteGroup).Methods(http.MethodDelete)

	v.HandleFunc("/spaces/{id}/lists", s.listLists).Methods(http.MethodGet)
	v.HandleFunc("/spaces/{id}/lists", s.createList).Methods(http.MethodPost)
	v.HandleFunc("/lists/{id}", s.getList).Methods(http.MethodGet)
	v.HandleFunc("/lists/{id}", s.updateList).Methods(http.MethodPut)
	v.HandleFunc("/lists/{id}", s.deleteList).Methods(http.MethodDelete)

	v.HandleFunc("/tasks", s.listAllTasks).Methods(http.MethodGet)
	v.HandleFunc("/lists/{id}/tasks", s.listTasks).Methods(http.MethodGet)
	v.HandleFunc("/lists/{id}/tasks", s.createTask).Methods(http.MethodPost)
	v.HandleFunc("/tasks/{id}", s.getTask).Methods(http.MethodGet)
	v.HandleFunc("/tasks/{id}", s.updateTask).Methods(http.MethodPut)
	v.HandleFunc("/tasks/{id}", s.deleteTask).Methods(http.MethodDelete)

	v.HandleFunc("/tasks/{id}/comments", s.listComments).Methods(http.MethodGet)
	v.HandleFunc("/tasks/{id}/comments", s.createComment).Methods(http.MethodPost)
	v.HandleFunc("/comments/{id}", s.deleteComment).Methods(http.MethodDelete)
	v.HandleFunc("/tasks/{id}/attachments", s.listAttachments).Methods(http.MethodGet)
	v.HandleFunc("/tasks/{id}/attachments", s.createAttachment).Methods(http.MethodPost)
	v.HandleFunc("/attachments/{id}", s.deleteAttachment).Methods(http.MethodDelete)

	v.HandleFunc("/projects", s.listProjects).Methods(http.MethodGet)
	v.HandleFunc("/projects", s.createProject).Methods(http.MethodPost)
	v.HandleFunc("/projects/{id}", s.getProject).Methods(http.MethodGet)
	v.HandleFunc("/projects/{id}", s.updateProject).Methods(http.MethodPut)
	v.HandleFunc("/projects/{id}", s.deleteProject).Methods(http.MethodDelete)
	v.HandleFunc("/projects/{id}/tasks", s.listProjectTasks).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found.", nil)
	})
	s.router = r
}

// ============================================================================
// Test controls
// ============================================================================

// Hits returns how many requests reached method+path (path as sent, e.g. /api/v1/workspaces)
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+path]
}

// FailNext makes the next request matching method and path prefix answer with status
func (s *Server) FailNext(method, pathPrefix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, fault{method: method, prefix: pathPrefix, status: status})
}

// SetLatency delays every response, used to exercise request de-duplication
func (s *Server) SetLatency(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// ExpireSessions drops every open session so the next request answers 401
func (s *Server) ExpireSessions() {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.sessions = make(map[string]types.UserID)
}

// ErrEmailTaken is returned by AddUser for an email that already has an account
var ErrEmailTaken = errors.New("email already registered")

// AddUser registers an account directly, bypassing the HTTP flow. An existing
// account with the same email is left untouched.
func (s *Server) AddUser(name, email, password string) (*models.User, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if _, exists := s.store.accounts[strings.ToLower(email)]; exists {
		return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
	}
	return s.store.addUser(name, email, password), nil
}

func (st *store) addUser(name, email, password string) *models.User {
	now := st.now()
	u := &models.User{ID: st.numericID(), Name: name, Email: email, CreatedAt: now, UpdatedAt: now}
	st.accounts[strings.ToLower(email)] = &account{user: u, password: password}
	return u
}

// ============================================================================
// Middleware
// ============================================================================

func (s *Server) countHits(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.Method+" "+r.URL.Path]++
		delay := s.delay
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFaults(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		for i, f := range s.faults {
			if f.method == r.Method && strings.HasPrefix(r.URL.Path, f.prefix) {
				s.faults = append(s.faults[:i], s.faults[i+1:]...)
				s.mu.Unlock()
				writeError(w, f.status, http.StatusText(f.status), nil)
				return
			}
		}
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// checkXSRF requires the X-XSRF-TOKEN header to echo the XSRF cookie on
// state-changing requests. 419 is the status Laravel uses for a token mismatch.
func (s *Server) checkXSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(XSRFCookie)
		if err != nil {
			writeError(w, 419, "CSRF token mismatch.", nil)
			return
		}
		want, _ := url.QueryUnescape(cookie.Value)
		if want == "" || r.Header.Get(XSRFHeader) != want {
			writeError(w, 419, "CSRF token mismatch.", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthenticated.", nil)
			return
		}

		s.store.mu.Lock()
		userID, ok := s.store.sessions[cookie.Value]
		s.store.mu.Unlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthenticated.", nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, userID)))
	})
}

func currentUserID(r *http.Request) types.UserID {
	id, _ := r.Context().Value(ctxKey{}).(types.UserID)
	return id
}

// ============================================================================
// Auth handlers
// ============================================================================

func (s *Server) csrfCookie(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:  XSRFCookie,
		Value: url.QueryEscape(uuid.NewString() + "=="),
		Path:  "/",
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	acc, ok := s.store.accounts[strings.ToLower(req.Email)]
	s.store.mu.Unlock()
	if !ok || acc.password != req.Password {
		writeError(w, http.StatusUnprocessableEntity, "These credentials do not match our records.",
			map[string][]string{"email": {"These credentials do not match our records."}})
		return
	}

	s.openSession(w, acc.user)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	fields := map[string][]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = append(fields["name"], "The name field is required.")
	}
	if !strings.Contains(req.Email, "@") {
		fields["email"] = append(fields["email"], "The email field must be a valid email address.")
	}
	if len(req.Password) < 8 {
		fields["password"] = append(fields["password"], "The password field must be at least 8 characters.")
	}
	if req.Password != req.PasswordConfirmation {
		fields["password"] = append(fields["password"], "The password field confirmation does not match.")
	}

	s.store.mu.Lock()
	if _, exists := s.store.accounts[strings.ToLower(req.Email)]; exists {
		fields["email"] = append(fields["email"], "The email has already been taken.")
	}
	if len(fields) > 0 {
		s.store.mu.Unlock()
		writeError(w, http.StatusUnprocessableEntity, "The given data was invalid.", fields)
		return
	}
	user := s.store.addUser(strings.TrimSpace(req.Name), req.Email, req.Password)
	s.store.mu.Unlock()

	s.openSession(w, user)
}

func (s *Server) openSession(w http.ResponseWriter, user *models.User) {
	token := uuid.NewString()
	s.store.mu.Lock()
	s.store.sessions[token] = user.ID
	s.store.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: token, Path: "/", HttpOnly: true})
	slog.Debug("mockapi session opened", "user", user.ID)
	writeJSON(w, http.StatusOK, models.AuthResponse{User: user})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		s.store.mu.Lock()
		delete(s.store.sessions, cookie.Value)
		s.store.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	user := s.store.userByID(currentUserID(r))
	s.store.mu.Unlock()
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthenticated.", nil)
		return
	}
	writeData(w, http.StatusOK, user)
}

// ============================================================================
// Response helpers
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("mockapi failed to encode response", "error", err)
	}
}

func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, map[string]any{"data": v})
}

func writeError(w http.ResponseWriter, status int, message string, fields map[string][]string) {
	body := map[string]any{"message": message}
	if len(fields) > 0 {
		body["errors"] = fields
	}
	writeJSON(w, status, body)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Malformed JSON body.", nil)
		return false
	}
	return true
}
