package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/lista/internal/api"
	"github.com/thenoetrevino/lista/internal/config"
	"github.com/thenoetrevino/lista/internal/database"
	"github.com/thenoetrevino/lista/internal/favorites"
	"github.com/thenoetrevino/lista/internal/models"
	"github.com/thenoetrevino/lista/internal/navigation"
	"github.com/thenoetrevino/lista/internal/query"
	authservice "github.com/thenoetrevino/lista/internal/services/auth"
	groupservice "github.com/thenoetrevino/lista/internal/services/group"
	listservice "github.com/thenoetrevino/lista/internal/services/list"
	projectservice "github.com/thenoetrevino/lista/internal/services/project"
	spaceservice "github.com/thenoetrevino/lista/internal/services/space"
	taskservice "github.com/thenoetrevino/lista/internal/services/task"
	workspaceservice "github.com/thenoetrevino/lista/internal/services/workspace"
	"github.com/thenoetrevino/lista/internal/session"
	"github.com/thenoetrevino/lista/internal/types"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	Config *config.Config

	// Infrastructure shared by the services
	Client    *api.Client
	Cache     *query.Client
	Session   *session.Session
	Navigator *navigation.Navigator
	Expansion *navigation.Expansion
	Favorites *favorites.Store

	// Service layer
	AuthService      authservice.Service
	WorkspaceService workspaceservice.Service
	SpaceService     spaceservice.Service
	GroupService     groupservice.Service
	ListService      listservice.Service
	TaskService      taskservice.Service
	ProjectService   projectservice.Service

	db *sql.DB
}

// New creates the application container. Without WithStorage the local
// SQLite store under cfg.DataDir is opened.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	o := &appConfig{startPath: navigation.Home}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{Config: cfg}

	storage := o.storage
	if storage == nil {
		db, err := database.InitDB(ctx, cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open local storage: %w", err)
		}
		a.db = db
		storage = database.NewKVStore(db)
	}

	a.Session = session.New()
	a.Navigator = navigation.NewNavigator(o.startPath, nil)
	a.Expansion = navigation.NewExpansion()
	a.Favorites = favorites.NewStore(storage)
	a.Cache = query.NewClient(query.WithStaleTime(cfg.Cache.StaleTime), query.WithGCTime(cfg.Cache.GCTime))

	client, err := api.New(ctx, api.Options{
		BaseURL:    cfg.API.BaseURL,
		Domain:     cfg.API.Domain,
		Version:    cfg.API.Version,
		Timeout:    cfg.API.Timeout,
		Navigator:  a.Navigator,
		Cookies:    storage,
		RetryDelay: o.retryDelay,
		Transport:  o.transport,
	})
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}
	a.Client = client

	a.WorkspaceService = workspaceservice.NewService(client, a.Cache)
	a.SpaceService = spaceservice.NewService(client, a.Cache)
	a.GroupService = groupservice.NewService(client, a.Cache)
	a.ListService = listservice.NewService(client, a.Cache)
	a.TaskService = taskservice.NewService(client, a.Cache)
	a.ProjectService = projectservice.NewService(client, a.Cache)
	a.AuthService = authservice.NewService(client, a.Cache, a.Session, a.WorkspaceService, a.Navigator)
	a.Navigator.SetRecorder(a.WorkspaceService)

	// a redirect to the login page means the backend dropped the session
	a.Navigator.OnChange(func(path string) {
		if path == "/login" && a.Session.IsAuthenticated() {
			slog.Info("session expired, logging out locally")
			a.Session.ClearAuth()
			a.Cache.Remove(query.CurrentUserKey())
		}
	})

	return a, nil
}

// Close releases the local database when the app opened it
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// RunGC drops unused cache entries every interval until ctx is done
func (a *App) RunGC(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.Cache.GC()
		}
	}
}

// NameLookup resolves breadcrumb ids through the services (and so the cache)
func (a *App) NameLookup(ctx context.Context) navigation.NameLookup {
	return func(collection string, id types.ID) (string, bool) {
		var (
			name string
			err  error
		)
		switch collection {
		case "workspaces":
			var ws *models.Workspace
			if ws, err = a.WorkspaceService.Get(ctx, id); err == nil {
				name = ws.Name
			}
		case "spaces":
			var sp *models.Space
			if sp, err = a.SpaceService.Get(ctx, id); err == nil {
				name = sp.Name
			}
		case "groups":
			var g *models.Group
			if g, err = a.GroupService.Get(ctx, id); err == nil {
				name = g.Name
			}
		case "lists":
			var l *models.TaskList
			if l, err = a.ListService.Get(ctx, id); err == nil {
				name = l.Name
			}
		case "tasks":
			var t *models.Task
			if t, err = a.TaskService.Get(ctx, id); err == nil {
				name = t.Title
			}
		case "projects":
			var p *models.Project
			if p, err = a.ProjectService.Get(ctx, id); err == nil {
				name = p.Name
			}
		default:
			return "", false
		}
		if err != nil {
			slog.Debug("breadcrumb lookup failed", "collection", collection, "id", id, "error", err)
			return "", false
		}
		return name, true
	}
}

// SyncTree opens the sidebar nodes the path needs, using the lists of the
// path's space to find the group of a list
func (a *App) SyncTree(ctx context.Context, path string) {
	route := navigation.ParseRoute(path)
	var known navigation.Known
	if !route.SpaceID.Empty() {
		lists, err := a.ListService.List(ctx, route.SpaceID)
		if err != nil {
			slog.Debug("failed to load lists for tree sync", "space", route.SpaceID, "error", err)
		}
		known = navigation.KnownFromLists(lists)
	}
	a.Expansion.Sync(path, known)
}
