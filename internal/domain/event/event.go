// Package event carries dock tree notifications to any number of observers.
package event

import (
	"sync"

	"github.com/bnema/dockyard/internal/domain/entity"
)

// Kind names a notification.
type Kind int

const (
	DockableAdded Kind = iota + 1
	DockableRemoved
	DockableMoved
	DockableSwapped
	DockableDocked
	DockableUndocked
	DockablePinned
	DockableUnpinned
	DockableHidden
	DockableRestored
	DockableClosed
	ActiveDockableChanged
	FocusedDockableChanged
	WindowAdded
	WindowRemoved
	WindowOpened
	WindowClosed
)

var kindNames = map[Kind]string{
	DockableAdded:          "dockable_added",
	DockableRemoved:        "dockable_removed",
	DockableMoved:          "dockable_moved",
	DockableSwapped:        "dockable_swapped",
	DockableDocked:         "dockable_docked",
	DockableUndocked:       "dockable_undocked",
	DockablePinned:         "dockable_pinned",
	DockableUnpinned:       "dockable_unpinned",
	DockableHidden:         "dockable_hidden",
	DockableRestored:       "dockable_restored",
	DockableClosed:         "dockable_closed",
	ActiveDockableChanged:  "active_dockable_changed",
	FocusedDockableChanged: "focused_dockable_changed",
	WindowAdded:            "window_added",
	WindowRemoved:          "window_removed",
	WindowOpened:           "window_opened",
	WindowClosed:           "window_closed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsStructural reports whether the event changes the persisted layout.
func (k Kind) IsStructural() bool {
	switch k {
	case ActiveDockableChanged, FocusedDockableChanged, WindowOpened:
		return false
	default:
		return true
	}
}

// Event is a single notification. Dock is the container involved, when any;
// Previous is the replaced handle for Active/Focused changes.
type Event struct {
	Kind     Kind
	Dockable entity.Handle
	Dock     entity.Handle
	Previous entity.Handle
	Window   entity.WindowID
}

// Observer receives events.
type Observer interface {
	OnDockEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnDockEvent calls f.
func (f ObserverFunc) OnDockEvent(e Event) {
	f(e)
}

// Bus fans events out to subscribed observers in subscription order.
type Bus struct {
	mu        sync.RWMutex
	observers map[uint64]Observer
	order     []uint64
	nextID    uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{observers: make(map[uint64]Observer)}
}

// Subscribe registers o and returns a function removing it.
func (b *Bus) Subscribe(o Observer) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.observers[id] = o
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.observers, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Publish delivers e synchronously to every observer.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	targets := make([]Observer, 0, len(b.order))
	for _, id := range b.order {
		targets = append(targets, b.observers[id])
	}
	b.mu.RUnlock()

	for _, o := range targets {
		o.OnDockEvent(e)
	}
}

// Len returns the number of subscribed observers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

// Recorder is an Observer keeping every event it receives.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// OnDockEvent records e.
func (r *Recorder) OnDockEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Kinds returns the recorded event kinds in order.
func (r *Recorder) Kinds() []Kind {
	events := r.Events()
	out := make([]Kind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

// Reset drops recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
