package snapshot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/event"
	"github.com/bnema/dockyard/internal/logging"
)

// WorkspaceSaver captures and persists the live layout under a workspace id.
type WorkspaceSaver interface {
	Save(ctx context.Context, id entity.WorkspaceID, name string) (*entity.DockWorkspace, error)
}

// Dispatcher runs fn on the goroutine that owns the layout.
type Dispatcher func(fn func())

// Service handles debounced workspace autosaves.
type Service struct {
	saver      WorkspaceSaver
	interval   time.Duration
	dispatch   Dispatcher
	retries    int
	retryDelay time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	dirty     bool
	workspace entity.WorkspaceID
	name      string
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewService creates a new autosave service. Saves run inline on the timer
// goroutine unless a dispatcher is set.
func NewService(saver WorkspaceSaver, intervalMs int) *Service {
	if intervalMs <= 0 {
		intervalMs = 2000
	}
	return &Service{
		saver:      saver,
		interval:   time.Duration(intervalMs) * time.Millisecond,
		dispatch:   func(fn func()) { fn() },
		retries:    2,
		retryDelay: 50 * time.Millisecond,
	}
}

// SetDispatcher routes timer-triggered saves through d.
func (s *Service) SetDispatcher(d Dispatcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d != nil {
		s.dispatch = d
	}
}

// Start begins watching for dirty state.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctx, s.cancel = context.WithCancel(ctx)
	logging.FromContext(ctx).Debug().Dur("interval", s.interval).Msg("autosave service started")
}

// Observe subscribes the service to structural events on bus.
func (s *Service) Observe(bus *event.Bus) func() {
	return bus.Subscribe(event.ObserverFunc(func(e event.Event) {
		if e.Kind.IsStructural() {
			s.MarkDirty()
		}
	}))
}

// SetWorkspace selects the workspace autosaves write to. A pending dirty
// state is flushed once a workspace is set.
func (s *Service) SetWorkspace(id entity.WorkspaceID, name string) {
	s.mu.Lock()
	s.workspace = id
	s.name = name
	dirty := s.dirty
	ctx := s.ctx
	s.mu.Unlock()

	if dirty && ctx != nil && id.Key() != "" {
		s.schedule(0)
	}
}

// Stop stops the service and saves final state.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	return s.SaveNow(ctx)
}

// MarkDirty signals that the layout changed. Saves are debounced.
func (s *Service) MarkDirty() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()

	s.schedule(s.interval)
}

func (s *Service) schedule(delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		ctx := s.ctx
		dispatch := s.dispatch
		s.mu.Unlock()

		if ctx == nil || ctx.Err() != nil {
			return
		}

		dispatch(func() {
			if !s.Dirty() {
				return
			}
			if err := s.save(ctx); err != nil {
				logging.FromContext(ctx).Error().Err(err).Msg("failed to autosave workspace")
			}
		})
	})
}

// SaveNow forces an immediate save of pending changes.
func (s *Service) SaveNow(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	dirty := s.dirty
	s.mu.Unlock()

	if !dirty {
		return nil
	}

	return s.save(ctx)
}

// Dirty reports whether changes are waiting to be saved.
func (s *Service) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *Service) save(ctx context.Context) error {
	s.mu.Lock()
	id, name := s.workspace, s.name
	if id.Key() == "" {
		// Keep the pending state until a workspace is selected.
		s.mu.Unlock()
		return nil
	}
	s.dirty = false
	s.mu.Unlock()

	var err error
retry:
	for attempt := 0; ; attempt++ {
		_, err = s.saver.Save(ctx, id, name)
		if err == nil || !isBusy(err) || attempt >= s.retries {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break retry
		case <-time.After(s.retryDelay):
		}
	}
	if err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		return fmt.Errorf("autosave workspace %s: %w", id, err)
	}

	logging.FromContext(ctx).Debug().Str("workspace", string(id)).Msg("workspace autosaved")
	return nil
}

// isBusy reports whether err is a transient SQLite lock error worth a retry.
func isBusy(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "sqlite_busy")
}
