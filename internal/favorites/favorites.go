// Package favorites keeps per-workspace pinned shortcuts in local storage.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/navigation"
	"github.com/thenoetrevino/lista/internal/types"
)

// StorageKey holds the whole favorites document
const StorageKey = "workspace-favorites"

var (
	ErrEmptyID   = errors.New("favorite id cannot be empty")
	ErrEmptyName = errors.New("favorite name cannot be empty")
	ErrEmptyURL  = errors.New("favorite url cannot be empty")
)

// Storage is the key-value port favorites are persisted through
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// document maps workspace id to its favorites
type document map[string][]models.Favorite

// Store reads and writes favorites. Each operation loads the document fresh
// so several processes sharing the storage see each other's changes.
type Store struct {
	mu      sync.Mutex
	storage Storage
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

func (s *Store) load(ctx context.Context) (document, error) {
	raw, ok, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	doc := document{}
	if !ok || len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		slog.Warn("favorites document is corrupt, starting empty", "error", err)
		return document{}, nil
	}
	return doc, nil
}

func (s *Store) save(ctx context.Context, doc document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := s.storage.Set(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

// List returns the favorites of a workspace in insertion order
func (s *Store) List(ctx context.Context, ws types.WorkspaceID) ([]models.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return append([]models.Favorite{}, doc[ws.String()]...), nil
}

// Add appends fav unless one with the same id exists. It reports whether it was added.
func (s *Store) Add(ctx context.Context, ws types.WorkspaceID, fav models.Favorite) (bool, error) {
	if err := validate(fav); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	items := doc[ws.String()]
	for _, f := range items {
		if f.ID == fav.ID {
			return false, nil
		}
	}
	doc[ws.String()] = append(items, fav)
	return true, s.save(ctx, doc)
}

// Remove drops the favorite with id. It reports whether one was removed.
func (s *Store) Remove(ctx context.Context, ws types.WorkspaceID, id types.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	items := doc[ws.String()]
	kept := make([]models.Favorite, 0, len(items))
	for _, f := range items {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	doc[ws.String()] = kept
	return true, s.save(ctx, doc)
}

func (s *Store) IsFavorited(ctx context.Context, ws types.WorkspaceID, id types.ID) (bool, error) {
	items, err := s.List(ctx, ws)
	if err != nil {
		return false, err
	}
	for _, f := range items {
		if f.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// Toggle adds fav when absent and removes it otherwise. It reports the new state.
func (s *Store) Toggle(ctx context.Context, ws types.WorkspaceID, fav models.Favorite) (bool, error) {
	on, err := s.IsFavorited(ctx, ws, fav.ID)
	if err != nil {
		return false, err
	}
	if on {
		_, err = s.Remove(ctx, ws, fav.ID)
		return false, err
	}
	_, err = s.Add(ctx, ws, fav)
	return err == nil, err
}

func validate(f models.Favorite) error {
	switch {
	case f.ID.Empty():
		return ErrEmptyID
	case strings.TrimSpace(f.Name) == "":
		return ErrEmptyName
	case strings.TrimSpace(f.URL) == "":
		return ErrEmptyURL
	}
	return nil
}

// ForSpace builds the favorite pinning a space
func ForSpace(ws types.WorkspaceID, sp *models.Space) models.Favorite {
	return models.Favorite{
		ID:   types.ID("space-" + sp.ID.String()),
		Name: sp.Name,
		Type: models.FavoriteFolder,
		URL:  navigation.SpacePath(ws, sp.ID),
	}
}

// ForList builds the favorite pinning a list at its current location
func ForList(ws types.WorkspaceID, l *models.TaskList) models.Favorite {
	return models.Favorite{
		ID:   types.ID("list-" + l.ID.String()),
		Name: l.Name,
		Type: models.FavoriteList,
		URL:  navigation.ListPath(ws, navigation.LocateList(l), l.ID),
	}
}
