package app

import (
	"net/http"
	"time"

	"github.com/thenoetrevino/lista/internal/favorites"
)

// Storage is the local key-value store behind favorites and cookies
type Storage interface {
	favorites.Storage
}

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	storage    Storage
	transport  http.RoundTripper
	startPath  string
	retryDelay time.Duration
}

// WithStorage replaces the SQLite store, e.g. with favorites.NewMemoryStorage in tests
func WithStorage(s Storage) Option {
	return func(cfg *appConfig) {
		cfg.storage = s
	}
}

// WithTransport sets the HTTP transport of the API client
func WithTransport(rt http.RoundTripper) Option {
	return func(cfg *appConfig) {
		cfg.transport = rt
	}
}

// WithStartPath sets the navigator's initial path
func WithStartPath(path string) Option {
	return func(cfg *appConfig) {
		if path != "" {
			cfg.startPath = path
		}
	}
}

// WithRetryDelay sets the pause before the single read retry
func WithRetryDelay(d time.Duration) Option {
	return func(cfg *appConfig) {
		cfg.retryDelay = d
	}
}
