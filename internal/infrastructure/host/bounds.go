package host

import (
	"sync"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
)

// Compile-time interface check.
var _ port.BoundsProvider = (*BoundsTracker)(nil)

// BoundsTracker is an in-memory port.BoundsProvider. A renderer or test
// feeds it the last known geometry.
type BoundsTracker struct {
	mu         sync.RWMutex
	bounds     map[entity.Handle]entity.Rect
	pointerX   float64
	pointerY   float64
	hasPointer bool
}

// NewBoundsTracker creates an empty tracker.
func NewBoundsTracker() *BoundsTracker {
	return &BoundsTracker{bounds: make(map[entity.Handle]entity.Rect)}
}

func (b *BoundsTracker) VisibleBounds(h entity.Handle) (entity.Rect, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r, ok := b.bounds[h]
	return r, ok
}

// SetVisibleBounds records bounds for h. An empty rect forgets h.
func (b *BoundsTracker) SetVisibleBounds(h entity.Handle, bounds entity.Rect) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if bounds == (entity.Rect{}) {
		delete(b.bounds, h)
		return
	}
	b.bounds[h] = bounds
}

func (b *BoundsTracker) PointerScreenPosition() (x, y float64, ok bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pointerX, b.pointerY, b.hasPointer
}

// SetPointer records the live pointer position.
func (b *BoundsTracker) SetPointer(x, y float64) {
	b.mu.Lock()
	b.pointerX, b.pointerY, b.hasPointer = x, y, true
	b.mu.Unlock()
}

// ClearPointer forgets the pointer position.
func (b *BoundsTracker) ClearPointer() {
	b.mu.Lock()
	b.hasPointer = false
	b.mu.Unlock()
}
