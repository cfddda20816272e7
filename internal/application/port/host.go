package port

import "github.com/bnema/dockyard/internal/domain/entity"

// HostWindow is the platform window presenting a floating dock window.
type HostWindow interface {
	// Present shows the window, modally when isDialog is true.
	Present(isDialog bool)
	Activate()
	// Exit closes the window as a user close would.
	Exit()
	// Destroy releases platform resources without close notifications.
	Destroy()
	SetBounds(bounds entity.Rect)
	Bounds() entity.Rect
	SetTitle(title string)
}

// HostWindowFactory creates a host window for a dock window key.
type HostWindowFactory func(key string) HostWindow

// BoundsProvider exposes what the rendering layer knows about geometry.
// Only floating-window placement uses it.
type BoundsProvider interface {
	// VisibleBounds returns the on-screen bounds of a dockable, if rendered.
	VisibleBounds(h entity.Handle) (entity.Rect, bool)
	SetVisibleBounds(h entity.Handle, bounds entity.Rect)
	// PointerScreenPosition returns the live pointer position, if known.
	PointerScreenPosition() (x, y float64, ok bool)
}

// ContextFactory resolves runtime content for a dockable id.
type ContextFactory func(id string) any
