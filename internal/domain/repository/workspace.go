package repository

import (
	"context"
	"errors"

	"github.com/bnema/dockyard/internal/domain/entity"
)

// ErrWorkspaceNotFound is returned when no stored workspace matches an id.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// WorkspaceRepository persists serialized dock workspaces.
type WorkspaceRepository interface {
	// Save inserts or replaces a workspace, keyed case-insensitively by id.
	Save(ctx context.Context, ws *entity.DockWorkspace) error

	// Get returns a stored workspace or ErrWorkspaceNotFound.
	Get(ctx context.Context, id entity.WorkspaceID) (*entity.DockWorkspace, error)

	// List returns every stored workspace ordered by id.
	List(ctx context.Context) ([]*entity.DockWorkspace, error)

	// Delete removes a workspace. Deleting a missing id is not an error.
	Delete(ctx context.Context, id entity.WorkspaceID) error
}
