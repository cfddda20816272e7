// Package cli wires the dock engine for the command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/cli/styles"
	"github.com/bnema/dockyard/internal/domain/build"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/infrastructure/config"
	"github.com/bnema/dockyard/internal/infrastructure/host"
	"github.com/bnema/dockyard/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/dockyard/internal/infrastructure/serializer"
	"github.com/bnema/dockyard/internal/infrastructure/snapshot"
	"github.com/bnema/dockyard/internal/logging"
)

// Options overrides the locations NewApp would otherwise take from XDG and
// the config file. Zero values keep the defaults.
type Options struct {
	ConfigDir    string
	DatabasePath string
	LogWriter    io.Writer
}

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	Theme         *styles.Theme
	BuildInfo     build.Info

	Factory     *usecase.Factory
	Workspaces  *usecase.ManageWorkspacesUseCase
	DockManager *usecase.DockManager
	Hosts       *host.Registry
	Bounds      *host.BoundsTracker
	// Autosave is nil when workspace.autosave is off.
	Autosave *snapshot.Service

	db        *sqlite.LazyDB
	ctx       context.Context
	logCloser io.Closer

	// mu serializes layout access between commands and autosave timers.
	mu            sync.Mutex
	stopObserving func()
}

// NewApp creates a new CLI application with all dependencies.
func NewApp(opts Options) (*App, error) {
	mgr, err := newConfigManager(opts.ConfigDir)
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger, logCloser, err := newLogger(cfg.Logging, opts.LogWriter)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	ctx := logging.WithComponent(logging.WithContext(context.Background(), logger), "cli")

	primary, err := serializer.New(cfg.Workspace.Format)
	if err != nil {
		closeQuietly(logCloser)
		return nil, fmt.Errorf("workspace format: %w", err)
	}

	dbPath := cfg.Database.Path
	if opts.DatabasePath != "" {
		dbPath = opts.DatabasePath
	}
	db := sqlite.NewLazyDB(dbPath)

	hosts := host.NewRegistry(ctx)
	bounds := host.NewBoundsTracker()
	factory := usecase.NewFactory(ctx, entity.NewLayout(),
		usecase.WithOptions(usecase.FactoryOptions{
			HideToolsOnClose:     cfg.Docking.HideToolsOnClose,
			HideDocumentsOnClose: cfg.Docking.HideDocumentsOnClose,
			FloatDefaultWidth:    cfg.Docking.FloatDefaultWidth,
			FloatDefaultHeight:   cfg.Docking.FloatDefaultHeight,
			CascadeOffset:        cfg.Docking.CascadeOffset,
		}),
		usecase.WithDefaultHostWindow(hosts.Factory()),
		usecase.WithBoundsProvider(bounds),
	)

	workspaces := usecase.NewManageWorkspacesUseCase(factory, primary, sqlite.NewLazyWorkspaceRepository(db))
	for _, format := range serializer.Formats() {
		if format == primary.Format() {
			continue
		}
		s, _ := serializer.New(format)
		workspaces.RegisterDecoder(s)
	}

	app := &App{
		Config:        cfg,
		ConfigManager: mgr,
		Theme:         styles.NewTheme(),
		Factory:       factory,
		Workspaces:    workspaces,
		DockManager:   usecase.NewDockManager(factory),
		Hosts:         hosts,
		Bounds:        bounds,
		db:            db,
		ctx:           ctx,
		logCloser:     logCloser,
	}

	if cfg.Workspace.Autosave {
		app.Autosave = snapshot.NewService(workspaces, cfg.Workspace.AutosaveIntervalMs)
		app.Autosave.SetDispatcher(app.locked)
		app.Autosave.Start(ctx)
	}

	logger.Debug().
		Str("config", mgr.GetConfigFile()).
		Str("db_path", dbPath).
		Str("format", primary.Format()).
		Bool("autosave", cfg.Workspace.Autosave).
		Msg("cli app initialized")
	return app, nil
}

func newConfigManager(dir string) (*config.Manager, error) {
	if dir != "" {
		return config.NewManagerWithDir(dir)
	}
	return config.NewManager()
}

func newLogger(cfg config.LoggingConfig, w io.Writer) (zerolog.Logger, io.Closer, error) {
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Level, logCfg.Level)
	logCfg.Format = cfg.Format
	logCfg.TimeFormat = "15:04:05"

	if cfg.EnableFileLog {
		return logging.NewWithFile(logCfg, logging.RotatorConfig{
			Dir:        cfg.LogDir,
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAgeDays: cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
	}
	if w == nil {
		w = os.Stderr
	}
	return logging.NewWithWriter(logCfg, w), nil, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Layout returns the live layout.
func (a *App) Layout() *entity.Layout {
	return a.Factory.Layout()
}

func (a *App) locked(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn()
}

// LoadDemo replaces the live layout with the built-in demo layout.
func (a *App) LoadDemo() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.Factory.ReplaceLayout(usecase.NewDemoLayout()); err != nil {
		return fmt.Errorf("load demo layout: %w", err)
	}
	a.Factory.PresentWindows()
	return nil
}

// LoadWorkspace applies a stored workspace and makes it the autosave target.
func (a *App) LoadWorkspace(id entity.WorkspaceID) (*entity.DockWorkspace, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.Workspaces.Apply(a.ctx, id); err != nil {
		return nil, err
	}
	ws, err := a.Workspaces.Get(a.ctx, id)
	if err != nil {
		return nil, err
	}
	a.track(ws.ID, ws.Name)
	logging.FromContext(logging.WithWorkspace(a.ctx, string(ws.ID))).Debug().
		Int("windows", len(a.Layout().Windows())).
		Msg("workspace loaded")
	return ws, nil
}

// SaveWorkspace captures the live layout and persists it under id.
func (a *App) SaveWorkspace(id entity.WorkspaceID, name string) (*entity.DockWorkspace, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ws, err := a.Workspaces.Save(a.ctx, id, name)
	if err != nil {
		return nil, err
	}
	a.track(ws.ID, ws.Name)
	return ws, nil
}

// Persist writes pending changes of the loaded workspace. With autosave on
// the pending debounce is flushed, otherwise the layout is saved directly.
func (a *App) Persist(id entity.WorkspaceID, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.Autosave != nil {
		return a.Autosave.SaveNow(a.ctx)
	}
	_, err := a.Workspaces.Save(a.ctx, id, name)
	return err
}

// track starts autosave observation after a workspace is loaded so the load
// itself is not recorded as a change.
func (a *App) track(id entity.WorkspaceID, name string) {
	a.Workspaces.Track(id)
	if a.Autosave == nil {
		return
	}
	if a.stopObserving == nil {
		a.stopObserving = a.Autosave.Observe(a.Factory.Bus())
	}
	a.Autosave.SetWorkspace(id, name)
}

// Node resolves a node of the live layout by id.
func (a *App) Node(id string) (*entity.Node, error) {
	n := a.Layout().FindByID(id)
	if n == nil {
		return nil, fmt.Errorf("no dockable with id %q", id)
	}
	return n, nil
}

// Close releases all resources. Pending autosaves are flushed first.
func (a *App) Close() error {
	var errs []error
	if a.Autosave != nil {
		if err := a.Autosave.Stop(a.ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.stopObserving != nil {
		a.stopObserving()
	}
	a.Workspaces.Close()
	if err := a.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	if a.logCloser != nil {
		if err := a.logCloser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close log file: %w", err))
		}
	}
	return errors.Join(errs...)
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

// ParseWorkspaceID trims a workspace id argument and rejects empty ones.
func ParseWorkspaceID(arg string) (entity.WorkspaceID, error) {
	id := entity.WorkspaceID(strings.TrimSpace(arg))
	if id.Key() == "" {
		return "", fmt.Errorf("workspace id required")
	}
	return id, nil
}
