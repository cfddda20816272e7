package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/repository"
	"github.com/bnema/dockyard/internal/logging"
)

const timeLayout = time.RFC3339Nano

type workspaceRepo struct {
	db *sql.DB
}

// NewWorkspaceRepository stores serialized workspaces in db. Runtime
// content (DockWorkspace.State) and the dirty flag are not persisted.
func NewWorkspaceRepository(db *sql.DB) repository.WorkspaceRepository {
	return &workspaceRepo{db: db}
}

func (r *workspaceRepo) Save(ctx context.Context, ws *entity.DockWorkspace) error {
	log := logging.FromContext(ctx)

	key := ws.ID.Key()
	if key == "" {
		return fmt.Errorf("save workspace: id required")
	}
	if ws.Format == "" {
		return fmt.Errorf("save workspace %s: format required", ws.ID)
	}
	savedAt := ws.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	log.Debug().Str("workspace", string(ws.ID)).Str("format", ws.Format).Int("bytes", len(ws.Layout)).Msg("saving workspace")

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workspaces (key, id, name, format, layout, saved_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			id = excluded.id,
			name = excluded.name,
			format = excluded.format,
			layout = excluded.layout,
			saved_at = excluded.saved_at,
			updated_at = excluded.updated_at`,
		key, string(ws.ID), ws.Name, ws.Format, ws.Layout,
		savedAt.UTC().Format(timeLayout), time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("save workspace %s: %w", ws.ID, err)
	}
	return nil
}

func (r *workspaceRepo) Get(ctx context.Context, id entity.WorkspaceID) (*entity.DockWorkspace, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, format, layout, saved_at FROM workspaces WHERE key = ?`, id.Key())
	ws, err := scanWorkspace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrWorkspaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get workspace %s: %w", id, err)
	}
	return ws, nil
}

func (r *workspaceRepo) List(ctx context.Context) ([]*entity.DockWorkspace, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, format, layout, saved_at FROM workspaces ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.DockWorkspace
	for rows.Next() {
		ws, err := scanWorkspace(rows)
		if err != nil {
			return nil, fmt.Errorf("list workspaces: %w", err)
		}
		out = append(out, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	return out, nil
}

func (r *workspaceRepo) Delete(ctx context.Context, id entity.WorkspaceID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM workspaces WHERE key = ?`, id.Key()); err != nil {
		return fmt.Errorf("delete workspace %s: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkspace(s scanner) (*entity.DockWorkspace, error) {
	var (
		ws      entity.DockWorkspace
		id      string
		savedAt string
	)
	if err := s.Scan(&id, &ws.Name, &ws.Format, &ws.Layout, &savedAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(timeLayout, savedAt)
	if err != nil {
		return nil, fmt.Errorf("parse saved_at %q: %w", savedAt, err)
	}
	ws.ID = entity.WorkspaceID(id)
	ws.SavedAt = t
	return &ws, nil
}
