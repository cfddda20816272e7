package entity

import (
	"strings"
	"time"
)

// WorkspaceID identifies a named workspace. Lookups are case-insensitive.
type WorkspaceID string

// Key returns the normalized lookup key.
func (id WorkspaceID) Key() string {
	return strings.ToLower(strings.TrimSpace(string(id)))
}

// DockWorkspace is a named, serialized layout plus an optional snapshot of
// the runtime content that the serializer cannot carry.
type DockWorkspace struct {
	ID      WorkspaceID
	Name    string
	Layout  string // serialized LayoutState
	Format  string // serializer format name, e.g. "json"
	State   *DockState
	IsDirty bool
	SavedAt time.Time
}

// DisplayName returns Name, falling back to ID.
func (w *DockWorkspace) DisplayName() string {
	if w.Name != "" {
		return w.Name
	}
	return string(w.ID)
}
