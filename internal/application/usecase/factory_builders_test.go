package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/domain/entity"
	"github.com/bnema/dockyard/internal/domain/event"
)

// tree builds layouts for tests. Children passed to a container are attached
// in order; splitters get generated ids.
type tree struct {
	l         *entity.Layout
	splitters int
}

func newTree() *tree {
	return &tree{l: entity.NewLayout()}
}

func (b *tree) dock(kind entity.Kind, id string, children ...*entity.Node) *entity.Node {
	n := b.l.NewNode(kind, id)
	n.Title = id
	for _, c := range children {
		c.Owner = n.Handle
		n.Container.VisibleDockables = append(n.Container.VisibleDockables, c.Handle)
	}
	if len(children) > 0 {
		n.Container.ActiveDockable = children[0].Handle
	}
	return n
}

func (b *tree) tool(id string) *entity.Node {
	n := b.l.NewNode(entity.KindTool, id)
	n.Title = id
	return n
}

func (b *tree) document(id string) *entity.Node {
	n := b.l.NewNode(entity.KindDocument, id)
	n.Title = id
	return n
}

func (b *tree) splitter() *entity.Node {
	b.splitters++
	return b.l.NewNode(entity.KindSplitter, fmt.Sprintf("split-%d", b.splitters))
}

func (b *tree) toolDock(id string, children ...*entity.Node) *entity.Node {
	return b.dock(entity.KindToolDock, id, children...)
}

func (b *tree) documentDock(id string, children ...*entity.Node) *entity.Node {
	return b.dock(entity.KindDocumentDock, id, children...)
}

func (b *tree) proportional(id string, o entity.Orientation, children ...*entity.Node) *entity.Node {
	n := b.dock(entity.KindProportionalDock, id, children...)
	n.Proportional.Orientation = o
	return n
}

func (b *tree) root(id string, children ...*entity.Node) *entity.Node {
	n := b.dock(entity.KindRootDock, id, children...)
	b.l.Root = n.Handle
	return n
}

// fixture is the standard test layout:
//
//	root
//	└── main (horizontal)
//	    ├── tools  [A, B]   (tool dock, left)
//	    ├── split-1
//	    └── docs   [X, Y]   (document dock)
type fixture struct {
	t   *testing.T
	l   *entity.Layout
	f   *Factory
	rec *event.Recorder
}

func seqIDs() entity.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	}
}

func newFixture(t *testing.T, opts ...FactoryOption) *fixture {
	t.Helper()
	b := newTree()
	tools := b.toolDock("tools", b.tool("A"), b.tool("B"))
	tools.ToolDock.Alignment = entity.AlignLeft
	docs := b.documentDock("docs", b.document("X"), b.document("Y"))
	b.root("root", b.proportional("main", entity.OrientationHorizontal, tools, b.splitter(), docs))
	return buildFixture(t, b.l, opts...)
}

func buildFixture(t *testing.T, l *entity.Layout, opts ...FactoryOption) *fixture {
	t.Helper()
	rec := &event.Recorder{}
	bus := event.NewBus()
	bus.Subscribe(rec)
	all := append([]FactoryOption{WithBus(bus), WithIDGenerator(seqIDs())}, opts...)
	f := NewFactory(context.Background(), l, all...)
	require.NoError(t, f.InitLayout())
	rec.Reset()
	return &fixture{t: t, l: l, f: f, rec: rec}
}

// h resolves a node handle by id and fails the test when it is missing.
func (fx *fixture) h(id string) entity.Handle {
	fx.t.Helper()
	n := fx.l.FindByID(id)
	require.NotNil(fx.t, n, "node %q not found", id)
	return n.Handle
}

func (fx *fixture) n(id string) *entity.Node {
	return fx.l.Node(fx.h(id))
}

// ids lists the visible children of a dock by id.
func (fx *fixture) ids(dockID string) []string {
	var out []string
	for _, h := range fx.n(dockID).Visible() {
		out = append(out, fx.l.Node(h).ID)
	}
	return out
}

func (fx *fixture) idOf(h entity.Handle) string {
	if n := fx.l.Node(h); n != nil {
		return n.ID
	}
	return ""
}

func (fx *fixture) rootNode() *entity.Node {
	return fx.l.Node(fx.l.Root)
}

// stubHost is a host window that only records calls.
type stubHost struct {
	presented int
	exited    int
	destroyed int
	title     string
	bounds    entity.Rect
}

func (s *stubHost) Present(bool)            { s.presented++ }
func (s *stubHost) Activate()               {}
func (s *stubHost) Exit()                   { s.exited++ }
func (s *stubHost) Destroy()                { s.destroyed++ }
func (s *stubHost) SetBounds(b entity.Rect) { s.bounds = b }
func (s *stubHost) Bounds() entity.Rect     { return s.bounds }
func (s *stubHost) SetTitle(title string)   { s.title = title }

func stubHosts(created *[]*stubHost) port.HostWindowFactory {
	return func(string) port.HostWindow {
		h := &stubHost{}
		*created = append(*created, h)
		return h
	}
}

// fakeBounds is a BoundsProvider with fixed answers.
type fakeBounds struct {
	bounds  map[entity.Handle]entity.Rect
	pointer *entity.Point
}

func (p *fakeBounds) VisibleBounds(h entity.Handle) (entity.Rect, bool) {
	b, ok := p.bounds[h]
	return b, ok
}

func (p *fakeBounds) SetVisibleBounds(h entity.Handle, b entity.Rect) {
	if p.bounds == nil {
		p.bounds = make(map[entity.Handle]entity.Rect)
	}
	p.bounds[h] = b
}

func (p *fakeBounds) PointerScreenPosition() (float64, float64, bool) {
	if p.pointer == nil {
		return 0, 0, false
	}
	return p.pointer.X, p.pointer.Y, true
}

// assertTreeInvariants checks owner back-references, active membership and
// splitter placement for every dock reachable from the main root.
func assertTreeInvariants(t *testing.T, l *entity.Layout) {
	t.Helper()
	for h := range l.Reachable() {
		n := l.Node(h)
		if n.Container == nil {
			continue
		}
		list := n.Container.VisibleDockables
		for i, c := range list {
			child := l.Node(c)
			require.NotNil(t, child)
			if child.Owner != n.Handle {
				t.Fatalf("%s: child %s has owner %d, want %d", n.ID, child.ID, child.Owner, n.Handle)
			}
			if child.IsSplitter() {
				if i == 0 || i == len(list)-1 || l.Node(list[i-1]).IsSplitter() {
					t.Fatalf("%s: dangling splitter %s at %d", n.ID, child.ID, i)
				}
			}
		}
		if a := n.Container.ActiveDockable; a.IsValid() {
			require.GreaterOrEqual(t, entity.IndexOf(list, a), 0, "%s: active not visible", n.ID)
			require.False(t, l.Node(a).IsSplitter(), "%s: active is a splitter", n.ID)
		}
	}
}
