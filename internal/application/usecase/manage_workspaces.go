package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/event"
	"github.com/bnema/dockyard/internal/domain/repository"
	"github.com/bnema/dockyard/internal/logging"
)

// ManageWorkspacesUseCase captures, stores and re-applies named layouts.
// Workspaces are keyed case-insensitively. The repository is optional; without
// one workspaces live only in memory.
type ManageWorkspacesUseCase struct {
	factory    *Factory
	serializer port.DockSerializer
	decoders   map[string]port.DockSerializer
	repo       repository.WorkspaceRepository

	mu         sync.RWMutex
	workspaces map[string]*entity.DockWorkspace
	tracked    string

	unsubscribe func()
}

// NewManageWorkspacesUseCase creates the use case and starts tracking
// structural events for dirty marking.
func NewManageWorkspacesUseCase(factory *Factory, serializer port.DockSerializer, repo repository.WorkspaceRepository) *ManageWorkspacesUseCase {
	uc := &ManageWorkspacesUseCase{
		factory:    factory,
		serializer: serializer,
		decoders:   map[string]port.DockSerializer{serializer.Format(): serializer},
		repo:       repo,
		workspaces: make(map[string]*entity.DockWorkspace),
	}
	uc.unsubscribe = factory.Bus().Subscribe(event.ObserverFunc(uc.onEvent))
	return uc
}

// RegisterDecoder lets Decode read workspaces stored in another format.
// Captures always use the primary serializer.
func (uc *ManageWorkspacesUseCase) RegisterDecoder(s port.DockSerializer) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.decoders[s.Format()] = s
}

// Close stops dirty tracking.
func (uc *ManageWorkspacesUseCase) Close() {
	if uc.unsubscribe != nil {
		uc.unsubscribe()
	}
}

// Capture serializes the current layout under id, replacing any workspace
// with the same key.
func (uc *ManageWorkspacesUseCase) Capture(ctx context.Context, id entity.WorkspaceID, name string) (*entity.DockWorkspace, error) {
	log := logging.FromContext(ctx)

	if id.Key() == "" {
		return nil, fmt.Errorf("workspace id required")
	}

	layout := uc.factory.Layout()
	state := entity.SnapshotLayout(layout)
	data, err := uc.serializer.Serialize(state)
	if err != nil {
		return nil, fmt.Errorf("serialize workspace %s: %w", id, err)
	}

	content := entity.NewDockState()
	content.Save(layout)

	ws := &entity.DockWorkspace{
		ID:      id,
		Name:    name,
		Layout:  data,
		Format:  uc.serializer.Format(),
		State:   content,
		SavedAt: state.SavedAt,
	}

	uc.mu.Lock()
	uc.workspaces[id.Key()] = ws
	uc.tracked = id.Key()
	uc.mu.Unlock()

	log.Debug().
		Str("workspace", string(id)).
		Str("format", ws.Format).
		Int("dockables", state.CountDockables()).
		Msg("workspace captured")
	return ws, nil
}

// Save captures the current layout and persists it.
func (uc *ManageWorkspacesUseCase) Save(ctx context.Context, id entity.WorkspaceID, name string) (*entity.DockWorkspace, error) {
	ws, err := uc.Capture(ctx, id, name)
	if err != nil {
		return nil, err
	}
	if uc.repo == nil {
		return ws, nil
	}
	if err := uc.repo.Save(ctx, ws); err != nil {
		return nil, fmt.Errorf("save workspace %s: %w", id, err)
	}
	return ws, nil
}

// Get returns a workspace from memory or, failing that, from the repository.
func (uc *ManageWorkspacesUseCase) Get(ctx context.Context, id entity.WorkspaceID) (*entity.DockWorkspace, error) {
	uc.mu.RLock()
	ws, ok := uc.workspaces[id.Key()]
	uc.mu.RUnlock()
	if ok {
		return ws, nil
	}
	if uc.repo == nil {
		return nil, fmt.Errorf("get workspace %s: %w", id, repository.ErrWorkspaceNotFound)
	}
	ws, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get workspace %s: %w", id, err)
	}
	uc.mu.Lock()
	uc.workspaces[id.Key()] = ws
	uc.mu.Unlock()
	return ws, nil
}

// Decode turns a stored workspace back into a layout without touching the
// live one. Runtime content from the workspace snapshot is re-attached.
func (uc *ManageWorkspacesUseCase) Decode(ws *entity.DockWorkspace) (*entity.Layout, error) {
	decoder := uc.serializer
	if ws.Format != "" {
		uc.mu.RLock()
		d, ok := uc.decoders[ws.Format]
		uc.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("decode workspace %s: format %q, serializer is %q", ws.ID, ws.Format, uc.serializer.Format())
		}
		decoder = d
	}
	var state entity.LayoutState
	if err := decoder.Deserialize(ws.Layout, &state); err != nil {
		return nil, fmt.Errorf("decode workspace %s: %w", ws.ID, err)
	}
	layout, err := entity.LayoutFromSnapshot(&state)
	if err != nil {
		return nil, fmt.Errorf("decode workspace %s: %w", ws.ID, err)
	}
	if ws.State != nil {
		ws.State.Restore(layout)
	}
	return layout, nil
}

// Apply replaces the live layout with a stored workspace and initializes it.
func (uc *ManageWorkspacesUseCase) Apply(ctx context.Context, id entity.WorkspaceID) error {
	log := logging.FromContext(ctx)

	ws, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	layout, err := uc.Decode(ws)
	if err != nil {
		return err
	}

	if err := uc.factory.ReplaceLayout(layout); err != nil {
		return fmt.Errorf("apply workspace %s: %w", id, err)
	}
	uc.factory.PresentWindows()

	uc.mu.Lock()
	ws.IsDirty = false
	uc.tracked = id.Key()
	uc.mu.Unlock()

	log.Info().Str("workspace", ws.DisplayName()).Msg("workspace applied")
	return nil
}

// Remove forgets a workspace in memory and in the repository.
func (uc *ManageWorkspacesUseCase) Remove(ctx context.Context, id entity.WorkspaceID) error {
	uc.mu.Lock()
	delete(uc.workspaces, id.Key())
	if uc.tracked == id.Key() {
		uc.tracked = ""
	}
	uc.mu.Unlock()

	if uc.repo == nil {
		return nil
	}
	if err := uc.repo.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrWorkspaceNotFound) {
		return fmt.Errorf("delete workspace %s: %w", id, err)
	}
	return nil
}

// List returns the known workspaces ordered by key, merging stored ones.
func (uc *ManageWorkspacesUseCase) List(ctx context.Context) ([]*entity.DockWorkspace, error) {
	if uc.repo != nil {
		stored, err := uc.repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list workspaces: %w", err)
		}
		uc.mu.Lock()
		for _, ws := range stored {
			if _, ok := uc.workspaces[ws.ID.Key()]; !ok {
				uc.workspaces[ws.ID.Key()] = ws
			}
		}
		uc.mu.Unlock()
	}

	uc.mu.RLock()
	defer uc.mu.RUnlock()
	out := make([]*entity.DockWorkspace, 0, len(uc.workspaces))
	for _, ws := range uc.workspaces {
		out = append(out, ws)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Key() < out[j].ID.Key() })
	return out, nil
}

// Track makes id the workspace marked dirty by structural changes.
func (uc *ManageWorkspacesUseCase) Track(id entity.WorkspaceID) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.tracked = id.Key()
}

// MarkDirty flags a workspace as diverged from the live layout.
func (uc *ManageWorkspacesUseCase) MarkDirty(id entity.WorkspaceID) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if ws, ok := uc.workspaces[id.Key()]; ok {
		ws.IsDirty = true
	}
}

// Dirty reports whether the tracked workspace has unsaved changes.
func (uc *ManageWorkspacesUseCase) Dirty() bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	ws, ok := uc.workspaces[uc.tracked]
	return ok && ws.IsDirty
}

func (uc *ManageWorkspacesUseCase) onEvent(e event.Event) {
	if !e.Kind.IsStructural() {
		return
	}
	uc.mu.RLock()
	tracked := uc.tracked
	uc.mu.RUnlock()
	if tracked != "" {
		uc.MarkDirty(entity.WorkspaceID(tracked))
	}
}

// Verify decodes a workspace without applying it.
func (uc *ManageWorkspacesUseCase) Verify(ctx context.Context, ws *entity.DockWorkspace) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("verify workspace %s: %w", ws.ID, err)
	}
	_, err := uc.Decode(ws)
	return err
}
