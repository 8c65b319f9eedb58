// Package session tracks who is logged in.
// A Session moves Uninitialized -> Checking -> Authenticated or Anonymous.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/thenoetrevino/lista/internal/models"
)

// ErrNotInitialized is returned by operations that need a settled session
var ErrNotInitialized = errors.New("session not initialized")

// State of the session lifecycle
type State int

const (
	Uninitialized State = iota
	Checking
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "uninitialized"
	}
}

// Paths reachable without a session
var publicPaths = []string{"/login", "/register"}

// Session holds the current user. Safe for concurrent use.
type Session struct {
	mu              sync.Mutex
	user            *models.User
	isAuthenticated bool
	initialized     bool
	checking        bool
	done            chan struct{}
}

func New() *Session {
	return &Session{done: make(chan struct{})}
}

// WhoAmI resolves the current user from the backend
type WhoAmI func(ctx context.Context) (*models.User, error)

// Initialize runs whoami once. Later calls wait for the first to settle
// and return the resulting state.
func (s *Session) Initialize(ctx context.Context, whoami WhoAmI) State {
	s.mu.Lock()
	if s.initialized || s.checking {
		done := s.done
		s.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
		}
		return s.State()
	}
	s.checking = true
	s.mu.Unlock()

	user, err := whoami(ctx)
	if err != nil || user == nil {
		if err != nil {
			slog.Debug("session check failed", "error", err)
		}
		s.ClearAuth()
	} else {
		s.SetAuth(user)
	}

	s.mu.Lock()
	s.checking = false
	if !s.initialized {
		s.initialized = true
		close(s.done)
	}
	s.mu.Unlock()

	return s.State()
}

// SetAuth marks the session authenticated as user
func (s *Session) SetAuth(user *models.User) {
	if user == nil {
		s.ClearAuth()
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.user = &u
	s.isAuthenticated = true
}

// ClearAuth forgets the user
func (s *Session) ClearAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.isAuthenticated = false
}

// MarkInitialized settles the session without a backend check
func (s *Session) MarkInitialized() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return
	}
	s.initialized = true
	s.checking = false
	close(s.done)
}

func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isAuthenticated
}

func (s *Session) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.initialized && s.isAuthenticated:
		return Authenticated
	case s.initialized:
		return Anonymous
	case s.checking:
		return Checking
	default:
		return Uninitialized
	}
}

// RequireUser returns the user or an error when the session is not settled or anonymous
func (s *Session) RequireUser() (*models.User, error) {
	if !s.Initialized() {
		return nil, ErrNotInitialized
	}
	if u := s.User(); u != nil {
		return u, nil
	}
	return nil, ErrAnonymous
}

// ErrAnonymous is returned when a user is required but nobody is logged in
var ErrAnonymous = errors.New("not logged in")

// IsPublicPath reports whether path is reachable without a session
func IsPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p || strings.HasPrefix(path, p+"/") || strings.HasPrefix(path, p+"?") {
			return true
		}
	}
	return false
}

// Guard decides whether path can be shown. ok=false with an empty redirect
// means "wait": the session is still being checked.
func (s *Session) Guard(path string) (redirect string, ok bool) {
	switch s.State() {
	case Uninitialized, Checking:
		return "", false
	case Anonymous:
		if IsPublicPath(path) {
			return "", true
		}
		return "/login", false
	default:
		return "", true
	}
}
