// Package sqlite provides SQLite implementations of domain repositories.
package sqlite

import (
	"context"
	"sync"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/repository"
)

// LazyWorkspaceRepository opens the database on the first repository call.
type LazyWorkspaceRepository struct {
	provider port.DatabaseProvider
	repo     repository.WorkspaceRepository
	once     sync.Once
	initErr  error
}

// NewLazyWorkspaceRepository creates a lazy-loading workspace repository.
func NewLazyWorkspaceRepository(provider port.DatabaseProvider) repository.WorkspaceRepository {
	return &LazyWorkspaceRepository{provider: provider}
}

func (r *LazyWorkspaceRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewWorkspaceRepository(db)
	})
	return r.initErr
}

func (r *LazyWorkspaceRepository) Save(ctx context.Context, ws *entity.DockWorkspace) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Save(ctx, ws)
}

func (r *LazyWorkspaceRepository) Get(ctx context.Context, id entity.WorkspaceID) (*entity.DockWorkspace, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.Get(ctx, id)
}

func (r *LazyWorkspaceRepository) List(ctx context.Context) ([]*entity.DockWorkspace, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.List(ctx)
}

func (r *LazyWorkspaceRepository) Delete(ctx context.Context, id entity.WorkspaceID) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Delete(ctx, id)
}
