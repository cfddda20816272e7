package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/event"
	"github.com/bnema/dockyard/internal/domain/policy"
	"github.com/bnema/dockyard/internal/logging"
)

var (
	// ErrSplitNotSupported is returned for split requests with a non-split operation.
	ErrSplitNotSupported = errors.New("split operation not supported")
	// ErrHostNotRegistered is returned when no host window factory matches a window key.
	ErrHostNotRegistered = errors.New("host window not registered")
	// ErrContextNotRegistered is returned when a context locator is configured but
	// has no entry for a dockable id.
	ErrContextNotRegistered = errors.New("context not registered")
)

// FactoryOptions are the tunables of the layout engine.
type FactoryOptions struct {
	HideToolsOnClose     bool
	HideDocumentsOnClose bool
	FloatDefaultWidth    float64
	FloatDefaultHeight   float64
	CascadeOffset        float64
}

// DefaultFactoryOptions returns the engine defaults.
func DefaultFactoryOptions() FactoryOptions {
	return FactoryOptions{
		FloatDefaultWidth:  300,
		FloatDefaultHeight: 400,
		CascadeOffset:      24,
	}
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithOptions replaces the engine tunables.
func WithOptions(opts FactoryOptions) FactoryOption {
	return func(f *Factory) { f.opts = opts }
}

// WithBus publishes events on an existing bus.
func WithBus(bus *event.Bus) FactoryOption {
	return func(f *Factory) { f.bus = bus }
}

// WithIDGenerator overrides the id source for synthesized nodes.
func WithIDGenerator(gen entity.IDGenerator) FactoryOption {
	return func(f *Factory) { f.idGen = gen }
}

// WithBoundsProvider wires the rendering layer geometry.
func WithBoundsProvider(p port.BoundsProvider) FactoryOption {
	return func(f *Factory) { f.bounds = p }
}

// WithHostWindow registers a host window factory for a window key.
func WithHostWindow(key string, factory port.HostWindowFactory) FactoryOption {
	return func(f *Factory) { f.hostLocator[key] = factory }
}

// WithDefaultHostWindow sets the factory used when no key matches.
func WithDefaultHostWindow(factory port.HostWindowFactory) FactoryOption {
	return func(f *Factory) { f.defaultHost = factory }
}

// WithContext registers a context factory for a dockable id.
func WithContext(id string, factory port.ContextFactory) FactoryOption {
	return func(f *Factory) { f.contextLocator[id] = factory }
}

// WithDefaultContext sets the context factory used when no id matches.
func WithDefaultContext(factory port.ContextFactory) FactoryOption {
	return func(f *Factory) { f.defaultContext = factory }
}

// Factory owns every structural mutation of a layout. All operations are
// synchronous and must be called from a single goroutine.
type Factory struct {
	layout *entity.Layout
	bus    *event.Bus
	opts   FactoryOptions
	idGen  entity.IDGenerator
	bounds port.BoundsProvider

	hostLocator    map[string]port.HostWindowFactory
	defaultHost    port.HostWindowFactory
	contextLocator map[string]port.ContextFactory
	defaultContext port.ContextFactory
	hosts          map[entity.WindowID]port.HostWindow

	logger zerolog.Logger
}

// NewFactory creates the engine for layout. The logger comes from ctx.
func NewFactory(ctx context.Context, layout *entity.Layout, opts ...FactoryOption) *Factory {
	log := logging.FromContext(ctx)
	f := &Factory{
		layout:         layout,
		opts:           DefaultFactoryOptions(),
		idGen:          uuid.NewString,
		hostLocator:    make(map[string]port.HostWindowFactory),
		contextLocator: make(map[string]port.ContextFactory),
		hosts:          make(map[entity.WindowID]port.HostWindow),
		logger:         log.With().Str("component", "factory").Logger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.bus == nil {
		f.bus = event.NewBus()
	}
	return f
}

// Layout returns the arena the factory mutates.
func (f *Factory) Layout() *entity.Layout {
	return f.layout
}

// Bus returns the event bus.
func (f *Factory) Bus() *event.Bus {
	return f.bus
}

// Options returns the engine tunables.
func (f *Factory) Options() FactoryOptions {
	return f.opts
}

// BoundsProvider returns the wired geometry source, possibly nil.
func (f *Factory) BoundsProvider() port.BoundsProvider {
	return f.bounds
}

// NewID returns a fresh identifier from the configured generator.
func (f *Factory) NewID() string {
	return f.idGen()
}

func (f *Factory) node(h entity.Handle) *entity.Node {
	return f.layout.Node(h)
}

// dock resolves h only when it is a container.
func (f *Factory) dock(h entity.Handle) *entity.Node {
	n := f.layout.Node(h)
	if n == nil || n.Container == nil {
		return nil
	}
	return n
}

func (f *Factory) emit(kind event.Kind, dockable, dock entity.Handle) {
	f.bus.Publish(event.Event{Kind: kind, Dockable: dockable, Dock: dock})
}

func (f *Factory) isEnabled(h entity.Handle, c entity.Capability) bool {
	return policy.IsEnabled(f.layout, h, c, entity.NoHandle)
}

// NewNode allocates an unattached node of kind with a generated id.
func (f *Factory) NewNode(kind entity.Kind) *entity.Node {
	return f.layout.NewNode(kind, f.idGen())
}

// FindRoot returns the root of h, preferring a focusable one.
func (f *Factory) FindRoot(h entity.Handle) *entity.Node {
	if r := f.layout.FindRoot(h, func(n *entity.Node) bool { return n.Root.IsFocusableRoot }); r != nil {
		return r
	}
	return f.layout.FindRoot(h, nil)
}

// pinRoot returns the nearest root of h, the one holding its pinned and hidden lists.
func (f *Factory) pinRoot(h entity.Handle) *entity.Node {
	return f.layout.FindRoot(h, nil)
}

// IsDockablePinned reports whether h sits in a pinned list of its root.
func (f *Factory) IsDockablePinned(h entity.Handle) bool {
	root := f.pinRoot(h)
	if root == nil {
		return false
	}
	_, ok := root.Root.PinnedAlignment(h)
	return ok
}

// IsDockableHidden reports whether h is parked in its root's hidden list.
func (f *Factory) IsDockableHidden(h entity.Handle) bool {
	root := f.pinRoot(h)
	return root != nil && root.Root.IsHidden(h)
}

// contentCount counts the non-splitter children of a dock.
func (f *Factory) contentCount(d *entity.Node) int {
	count := 0
	for _, h := range d.Visible() {
		if c := f.node(h); c != nil && !c.IsSplitter() {
			count++
		}
	}
	return count
}

// lastContent returns the last non-splitter child of d.
func (f *Factory) lastContent(d *entity.Node) entity.Handle {
	list := d.Visible()
	for i := len(list) - 1; i >= 0; i-- {
		if c := f.node(list[i]); c != nil && !c.IsSplitter() {
			return list[i]
		}
	}
	return entity.NoHandle
}

// SetActiveDockable makes h the active child of its owner.
func (f *Factory) SetActiveDockable(h entity.Handle) {
	n := f.node(h)
	if n == nil || n.IsSplitter() {
		return
	}
	owner := f.dock(n.Owner)
	if owner == nil || entity.IndexOf(owner.Container.VisibleDockables, h) < 0 {
		return
	}
	f.setActive(owner, h)
}

func (f *Factory) setActive(d *entity.Node, h entity.Handle) {
	if d.Container.ActiveDockable == h {
		return
	}
	prev := d.Container.ActiveDockable
	d.Container.ActiveDockable = h
	f.bus.Publish(event.Event{Kind: event.ActiveDockableChanged, Dockable: h, Dock: d.Handle, Previous: prev})
}

// SetFocusedDockable records h as the focused dockable of the root owning
// dock, moving the IsActive marker between owner docks.
func (f *Factory) SetFocusedDockable(dock, h entity.Handle) {
	root := f.FindRoot(dock)
	if root == nil {
		return
	}
	prev := root.Root.FocusedDockable
	if prev == h {
		return
	}
	if owner := f.dock(f.ownerOf(prev)); owner != nil {
		owner.Container.IsActive = false
	}
	root.Root.FocusedDockable = h
	if owner := f.dock(f.ownerOf(h)); owner != nil {
		owner.Container.IsActive = true
	}
	f.bus.Publish(event.Event{Kind: event.FocusedDockableChanged, Dockable: h, Dock: root.Handle, Previous: prev})
}

func (f *Factory) ownerOf(h entity.Handle) entity.Handle {
	if n := f.node(h); n != nil {
		return n.Owner
	}
	return entity.NoHandle
}

// UpdateIsEmpty recomputes IsEmpty for dock and every ancestor.
func (f *Factory) UpdateIsEmpty(dock entity.Handle) {
	f.propagate(dock, func(d *entity.Node) {
		d.Container.IsEmpty = f.computeIsEmpty(d)
	})
}

// UpdateOpenedDockablesCount recomputes the leaf count for dock and every ancestor.
func (f *Factory) UpdateOpenedDockablesCount(dock entity.Handle) {
	f.propagate(dock, func(d *entity.Node) {
		d.Container.OpenedDockablesCount = f.computeOpenedCount(d)
	})
}

func (f *Factory) propagate(h entity.Handle, fn func(*entity.Node)) {
	if d := f.dock(h); d != nil {
		fn(d)
	}
	for _, a := range f.layout.Ancestors(h) {
		if a.Container != nil {
			fn(a)
		}
	}
}

func (f *Factory) computeIsEmpty(d *entity.Node) bool {
	for _, h := range d.Visible() {
		c := f.node(h)
		if c == nil || c.IsSplitter() {
			continue
		}
		if c.IsDock() && c.Container.IsCollapsable && c.Container.IsEmpty {
			continue
		}
		return false
	}
	return true
}

func (f *Factory) computeOpenedCount(d *entity.Node) int {
	count := 0
	for _, h := range d.Visible() {
		c := f.node(h)
		switch {
		case c == nil, c.IsSplitter():
		case c.IsDock():
			count += c.Container.OpenedDockablesCount
		default:
			count++
		}
	}
	return count
}

// changed refreshes derived state after a structural edit.
func (f *Factory) changed(docks ...entity.Handle) {
	for _, h := range docks {
		f.UpdateIsEmpty(h)
		f.UpdateOpenedDockablesCount(h)
	}
	f.layout.Touch()
}

// InitLayout binds owners, resolves contexts and recomputes derived state for
// the main root and every floating window it lists. Host and context lookup
// failures are returned joined.
func (f *Factory) InitLayout() error {
	root := f.dock(f.layout.Root)
	if root == nil || root.Root == nil {
		return fmt.Errorf("init layout: %w", entity.ErrInvalidLayoutState)
	}
	errs := f.initDockable(root.Handle, entity.NoHandle)
	for _, wid := range append([]entity.WindowID(nil), root.Root.Windows...) {
		if err := f.InitDockWindow(wid, root.Handle); err != nil {
			errs = append(errs, err)
		}
	}
	f.layout.Touch()
	f.logger.Debug().Int("nodes", f.layout.Len()).Int("windows", len(root.Root.Windows)).Msg("layout initialized")
	return errors.Join(errs...)
}

// InitDockable binds h to owner and initializes its subtree.
func (f *Factory) InitDockable(h, owner entity.Handle) error {
	return errors.Join(f.initDockable(h, owner)...)
}

func (f *Factory) initDockable(h, owner entity.Handle) []error {
	n := f.node(h)
	if n == nil {
		return nil
	}
	n.Owner = owner

	var errs []error
	if n.Context == nil && !n.IsSplitter() {
		ctxValue, err := f.resolveContext(n.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("init %s: %w", n.ID, err))
		}
		n.Context = ctxValue
	}
	if n.Container == nil {
		return errs
	}

	for _, c := range n.Container.VisibleDockables {
		errs = append(errs, f.initDockable(c, h)...)
	}
	if r := n.Root; r != nil {
		for _, list := range [][]entity.Handle{
			r.HiddenDockables, r.LeftPinnedDockables, r.RightPinnedDockables,
			r.TopPinnedDockables, r.BottomPinnedDockables,
		} {
			for _, c := range list {
				errs = append(errs, f.initDockable(c, h)...)
			}
		}
		if preview := f.dock(r.PinnedDock); preview != nil {
			preview.Owner = h
			preview.Container.VisibleDockables = nil
			preview.Container.ActiveDockable = entity.NoHandle
		}
	}

	active := n.Container.ActiveDockable
	if !active.IsValid() || entity.IndexOf(n.Container.VisibleDockables, active) < 0 || f.node(active).IsSplitter() {
		n.Container.ActiveDockable = f.firstContent(n)
	}
	n.Container.IsEmpty = f.computeIsEmpty(n)
	n.Container.OpenedDockablesCount = f.computeOpenedCount(n)
	return errs
}

func (f *Factory) firstContent(d *entity.Node) entity.Handle {
	for _, h := range d.Visible() {
		if c := f.node(h); c != nil && !c.IsSplitter() {
			return h
		}
	}
	return entity.NoHandle
}

func (f *Factory) resolveContext(id string) (any, error) {
	if factory, ok := f.contextLocator[id]; ok {
		return factory(id), nil
	}
	if f.defaultContext != nil {
		return f.defaultContext(id), nil
	}
	if len(f.contextLocator) == 0 {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrContextNotRegistered, id)
}

// GetHostWindow resolves a host window for a window key.
func (f *Factory) GetHostWindow(key string) (port.HostWindow, error) {
	if factory, ok := f.hostLocator[key]; ok {
		return factory(key), nil
	}
	if f.defaultHost != nil {
		return f.defaultHost(key), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrHostNotRegistered, key)
}

// Host returns the host presenting a window, if any.
func (f *Factory) Host(id entity.WindowID) port.HostWindow {
	return f.hosts[id]
}
