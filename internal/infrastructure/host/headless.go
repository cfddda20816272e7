// Package host provides headless host windows and bounds tracking for
// running the layout engine without a windowing toolkit.
package host

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/logging"
)

// Compile-time interface check.
var _ port.HostWindow = (*HeadlessWindow)(nil)

// WindowState is a point-in-time copy of a headless window.
type WindowState struct {
	Key       string
	Title     string
	Bounds    entity.Rect
	Presented bool
	Dialog    bool
	Active    bool
	Closed    bool
	Destroyed bool
}

// HeadlessWindow records what a platform window would have been asked to do.
type HeadlessWindow struct {
	mu     sync.Mutex
	state  WindowState
	onExit func()
	log    zerolog.Logger
}

// Present shows the window, modally when isDialog is true.
func (w *HeadlessWindow) Present(isDialog bool) {
	w.mu.Lock()
	w.state.Presented = true
	w.state.Dialog = isDialog
	w.state.Closed = false
	w.mu.Unlock()
	w.log.Debug().Bool("dialog", isDialog).Msg("host window presented")
}

func (w *HeadlessWindow) Activate() {
	w.mu.Lock()
	w.state.Active = true
	w.mu.Unlock()
}

// Exit closes the window and runs the exit hook, if any.
func (w *HeadlessWindow) Exit() {
	w.mu.Lock()
	if w.state.Closed {
		w.mu.Unlock()
		return
	}
	w.state.Closed = true
	w.state.Presented = false
	w.state.Active = false
	onExit := w.onExit
	w.mu.Unlock()

	w.log.Debug().Msg("host window exited")
	if onExit != nil {
		onExit()
	}
}

// Destroy releases the window without running the exit hook.
func (w *HeadlessWindow) Destroy() {
	w.mu.Lock()
	w.state.Destroyed = true
	w.state.Presented = false
	w.state.Active = false
	w.mu.Unlock()
	w.log.Debug().Msg("host window destroyed")
}

func (w *HeadlessWindow) SetBounds(bounds entity.Rect) {
	w.mu.Lock()
	w.state.Bounds = bounds
	w.mu.Unlock()
}

func (w *HeadlessWindow) Bounds() entity.Rect {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Bounds
}

func (w *HeadlessWindow) SetTitle(title string) {
	w.mu.Lock()
	w.state.Title = title
	w.mu.Unlock()
}

// OnExit registers a hook run once when the window is exited.
func (w *HeadlessWindow) OnExit(fn func()) {
	w.mu.Lock()
	w.onExit = fn
	w.mu.Unlock()
}

// State returns a copy of the window state.
func (w *HeadlessWindow) State() WindowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Registry creates headless windows and keeps every window it created.
type Registry struct {
	mu      sync.Mutex
	windows []*HeadlessWindow
	log     zerolog.Logger
}

// NewRegistry creates a registry logging through the context logger.
func NewRegistry(ctx context.Context) *Registry {
	return &Registry{
		log: logging.FromContext(ctx).With().Str("component", "host").Logger(),
	}
}

// Factory returns a port.HostWindowFactory backed by the registry.
func (r *Registry) Factory() port.HostWindowFactory {
	return func(key string) port.HostWindow {
		return r.Create(key)
	}
}

// Create makes a new headless window for key.
func (r *Registry) Create(key string) *HeadlessWindow {
	w := &HeadlessWindow{
		state: WindowState{Key: key},
		log:   r.log.With().Str("window_key", key).Logger(),
	}
	r.mu.Lock()
	r.windows = append(r.windows, w)
	r.mu.Unlock()
	return w
}

// Windows returns the windows created so far, in creation order.
func (r *Registry) Windows() []*HeadlessWindow {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*HeadlessWindow, len(r.windows))
	copy(out, r.windows)
	return out
}

// Open returns the states of windows that are presented and not destroyed,
// sorted by key then title.
func (r *Registry) Open() []WindowState {
	var open []WindowState
	for _, w := range r.Windows() {
		st := w.State()
		if st.Presented && !st.Destroyed {
			open = append(open, st)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		if open[i].Key != open[j].Key {
			return open[i].Key < open[j].Key
		}
		return open[i].Title < open[j].Title
	})
	return open
}
