package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/domain/entity"
)

func move(source, target entity.Handle, op entity.DockOperation) DropRequest {
	return DropRequest{Source: source, Target: target, Action: entity.ActionMove, Operation: op}
}

func TestDockManager_FillMoveLandsAfterActive(t *testing.T) {
	fx := newFixture(t)
	m := NewDockManager(fx.f)

	p := m.Decide(move(fx.h("A"), fx.h("docs"), entity.OpFill))

	require.True(t, p.Legal(), p.Reason.String())
	assert.Equal(t, PlanMoveBetween, p.Kind)
	assert.Equal(t, fx.h("docs"), p.TargetDock)
	assert.Equal(t, fx.h("X"), p.TargetDockable)

	require.NoError(t, m.Apply(p))
	assert.Equal(t, []string{"X", "A", "Y"}, fx.ids("docs"))
	assert.Equal(t, []string{"B"}, fx.ids("tools"))
	assertTreeInvariants(t, fx.l)
}

func TestDockManager_DecideIsReadOnly(t *testing.T) {
	fx := newFixture(t)
	m := NewDockManager(fx.f)
	rev := fx.l.Revision()

	m.Decide(move(fx.h("A"), fx.h("docs"), entity.OpFill))
	m.Decide(move(fx.h("A"), fx.h("docs"), entity.OpRight))
	m.Decide(move(fx.h("tools"), fx.h("docs"), entity.OpFill))

	assert.Equal(t, rev, fx.l.Revision())
	assert.Equal(t, []string{"A", "B"}, fx.ids("tools"))
	assert.Equal(t, []string{"X", "Y"}, fx.ids("docs"))
	assert.Empty(t, fx.rec.Events())
}

func TestDockManager_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(fx *fixture)
		request func(fx *fixture) DropRequest
		reason  Reason
	}{
		{
			name: "copy",
			request: func(fx *fixture) DropRequest {
				req := move(fx.h("A"), fx.h("docs"), entity.OpFill)
				req.Action = entity.ActionCopy
				return req
			},
			reason: ReasonCopyUnsupported,
		},
		{
			name:    "document into tool dock",
			request: func(fx *fixture) DropRequest { return move(fx.h("X"), fx.h("tools"), entity.OpFill) },
			reason:  ReasonKindMismatch,
		},
		{
			name:    "last dockable onto its own dock",
			prepare: func(fx *fixture) { fx.f.RemoveDockable(fx.h("B"), false) },
			request: func(fx *fixture) DropRequest { return move(fx.h("A"), fx.h("tools"), entity.OpFill) },
			reason:  ReasonLastDockable,
		},
		{
			name:    "group mismatch",
			prepare: func(fx *fixture) { fx.n("A").DockGroup = "inspectors" },
			request: func(fx *fixture) DropRequest { return move(fx.h("A"), fx.h("docs"), entity.OpFill) },
			reason:  ReasonGroupMismatch,
		},
		{
			name:    "root target",
			request: func(fx *fixture) DropRequest { return move(fx.h("A"), fx.l.Root, entity.OpFill) },
			reason:  ReasonInvalidTarget,
		},
		{
			name:    "proportional target",
			request: func(fx *fixture) DropRequest { return move(fx.h("A"), fx.h("main"), entity.OpFill) },
			reason:  ReasonInvalidTarget,
		},
		{
			name:    "splitter target",
			request: func(fx *fixture) DropRequest { return move(fx.h("A"), fx.h("split-1"), entity.OpFill) },
			reason:  ReasonInvalidTarget,
		},
		{
			name:    "proportional source",
			request: func(fx *fixture) DropRequest { return move(fx.h("main"), fx.h("docs"), entity.OpFill) },
			reason:  ReasonInvalidSource,
		},
		{
			name:    "onto itself",
			request: func(fx *fixture) DropRequest { return move(fx.h("A"), fx.h("A"), entity.OpFill) },
			reason:  ReasonSameTarget,
		},
		{
			name:    "dock into itself",
			request: func(fx *fixture) DropRequest { return move(fx.h("tools"), fx.h("A"), entity.OpFill) },
			reason:  ReasonInvalidTarget,
		},
		{
			name:    "drag disabled",
			prepare: func(fx *fixture) { fx.n("A").Caps.CanDrag = false },
			request: func(fx *fixture) DropRequest { return move(fx.h("A"), fx.h("docs"), entity.OpFill) },
			reason:  ReasonCapabilityDisabled,
		},
		{
			name: "drop disabled on target dock",
			prepare: func(fx *fixture) {
				fx.n("docs").Container.CapabilityPolicy = new(entity.CapabilityPolicy).Set(entity.CapabilityDrop, false)
			},
			request: func(fx *fixture) DropRequest { return move(fx.h("A"), fx.h("docs"), entity.OpFill) },
			reason:  ReasonCapabilityDisabled,
		},
		{
			name:    "hidden source",
			prepare: func(fx *fixture) { fx.f.HideDockable(fx.h("X")) },
			request: func(fx *fixture) DropRequest { return move(fx.h("X"), fx.h("Y"), entity.OpFill) },
			reason:  ReasonInvalidSource,
		},
		{
			name:    "hidden source to window",
			prepare: func(fx *fixture) { fx.f.HideDockable(fx.h("A")) },
			request: func(fx *fixture) DropRequest { return move(fx.h("A"), fx.h("docs"), entity.OpWindow) },
			reason:  ReasonInvalidSource,
		},
		{
			name:    "unknown source",
			request: func(fx *fixture) DropRequest { return move(entity.Handle(999), fx.h("docs"), entity.OpFill) },
			reason:  ReasonInvalidSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			if tt.prepare != nil {
				tt.prepare(fx)
			}
			m := NewDockManager(fx.f)

			p := m.Decide(tt.request(fx))

			assert.False(t, p.Legal())
			assert.Equal(t, PlanNone, p.Kind)
			assert.Equal(t, tt.reason, p.Reason)
			require.ErrorIs(t, m.Apply(p), ErrPlanRejected)
		})
	}
}

func TestDockManager_ApplyRefusesStalePlan(t *testing.T) {
	fx := newFixture(t)
	m := NewDockManager(fx.f)

	p := m.Decide(move(fx.h("A"), fx.h("docs"), entity.OpFill))
	require.True(t, p.Legal())

	fx.f.RemoveDockable(fx.h("Y"), false)

	require.ErrorIs(t, m.Apply(p), ErrStalePlan)
	assert.Equal(t, []string{"A", "B"}, fx.ids("tools"))
}

func TestDockManager_ApplyRefusesPlanAfterLayoutReplaced(t *testing.T) {
	fx := newFixture(t)
	m := NewDockManager(fx.f)

	p := m.Decide(move(fx.h("A"), fx.h("docs"), entity.OpFill))

	b := newTree()
	b.root("other", b.documentDock("docs", b.document("Q")))
	require.NoError(t, fx.f.ReplaceLayout(b.l))

	require.ErrorIs(t, m.Apply(p), ErrStalePlan)
}

func TestDockManager_SplitDrop(t *testing.T) {
	fx := newFixture(t)
	m := NewDockManager(fx.f)

	p := m.Decide(move(fx.h("A"), fx.h("docs"), entity.OpRight))

	require.True(t, p.Legal(), p.Reason.String())
	assert.Equal(t, PlanSplit, p.Kind)
	assert.Equal(t, entity.KindToolDock, p.WrapKind)

	require.NoError(t, m.Apply(p))
	wrapper := fx.l.Node(fx.n("docs").Owner)
	require.Equal(t, entity.KindProportionalDock, wrapper.Kind)
	assert.Equal(t, entity.OrientationHorizontal, wrapper.Proportional.Orientation)
	assert.Equal(t, fx.h("docs"), wrapper.Container.VisibleDockables[0])
	assert.Equal(t, []string{"B"}, fx.ids("tools"))
	assertTreeInvariants(t, fx.l)
}

func TestDockManager_DockIntoDockMovesEveryChild(t *testing.T) {
	fx := newFixture(t)
	m := NewDockManager(fx.f)

	p := m.Decide(move(fx.h("tools"), fx.h("docs"), entity.OpFill))

	require.True(t, p.Legal(), p.Reason.String())
	assert.Equal(t, PlanSequence, p.Kind)
	require.Len(t, p.Steps, 2)
	assert.Equal(t, fx.h("X"), p.Steps[0].TargetDockable)
	assert.Equal(t, fx.h("A"), p.Steps[1].TargetDockable)

	require.NoError(t, m.Apply(p))
	assert.Equal(t, []string{"X", "A", "B", "Y"}, fx.ids("docs"))
	assert.Equal(t, []string{"docs"}, fx.ids("main"))
	assert.False(t, fx.l.IsReachable(fx.h("tools")))
	assertTreeInvariants(t, fx.l)
}

func TestDockManager_LinkSwapsAcrossDocks(t *testing.T) {
	fx := newFixture(t)
	m := NewDockManager(fx.f)

	p := m.Decide(DropRequest{Source: fx.h("A"), Target: fx.h("X"), Action: entity.ActionLink, Operation: entity.OpFill})

	require.True(t, p.Legal(), p.Reason.String())
	assert.Equal(t, PlanSwapBetween, p.Kind)
	require.NoError(t, m.Apply(p))
	assert.Equal(t, []string{"X", "B"}, fx.ids("tools"))
	assert.Equal(t, []string{"A", "Y"}, fx.ids("docs"))
}

func TestDockManager_FillOntoSiblingReorders(t *testing.T) {
	fx := newFixture(t)
	m := NewDockManager(fx.f)

	p := m.Decide(move(fx.h("Y"), fx.h("X"), entity.OpFill))

	require.True(t, p.Legal(), p.Reason.String())
	assert.Equal(t, PlanMoveWithin, p.Kind)
	require.NoError(t, m.Apply(p))
	assert.Equal(t, []string{"Y", "X"}, fx.ids("docs"))
}

func TestDockManager_WindowDropFloats(t *testing.T) {
	var hosts []*stubHost
	fx := newFixture(t, WithDefaultHostWindow(stubHosts(&hosts)))
	m := NewDockManager(fx.f)

	req := move(fx.h("A"), fx.h("docs"), entity.OpWindow)
	req.Pointer = &entity.Point{X: 10, Y: 20}
	p := m.Decide(req)

	require.True(t, p.Legal(), p.Reason.String())
	assert.Equal(t, PlanFloat, p.Kind)
	assert.Equal(t, entity.Rect{X: 10, Y: 20, W: 300, H: 400}, p.Bounds)

	require.NoError(t, m.Apply(p))
	require.Len(t, hosts, 1)
	assert.Equal(t, entity.Rect{X: 10, Y: 20, W: 300, H: 400}, hosts[0].bounds)
	assert.Len(t, fx.rootNode().Root.Windows, 1)
}

func TestDockManager_WindowDropWithoutHostFails(t *testing.T) {
	fx := newFixture(t)
	m := NewDockManager(fx.f)

	p := m.Decide(move(fx.h("A"), fx.h("docs"), entity.OpWindow))
	require.True(t, p.Legal())

	require.ErrorIs(t, m.Apply(p), ErrHostNotRegistered)
	assert.Equal(t, []string{"A", "B"}, fx.ids("tools"))
}

func TestDockManager_Validate(t *testing.T) {
	fx := newFixture(t)
	m := NewDockManager(fx.f)

	assert.False(t, m.ValidateTool(fx.h("X"), fx.h("docs"), entity.ActionMove, entity.OpFill, false))
	assert.False(t, m.ValidateDocument(fx.h("A"), fx.h("docs"), entity.ActionMove, entity.OpFill, false))
	assert.False(t, m.ValidateDock(fx.h("A"), fx.h("docs"), entity.ActionMove, entity.OpFill, false))

	assert.True(t, m.ValidateTool(fx.h("A"), fx.h("docs"), entity.ActionMove, entity.OpFill, false))
	assert.Equal(t, []string{"A", "B"}, fx.ids("tools"), "validation without execute does not mutate")

	assert.True(t, m.ValidateTool(fx.h("A"), fx.h("docs"), entity.ActionMove, entity.OpFill, true))
	assert.Equal(t, []string{"X", "A", "Y"}, fx.ids("docs"))
}

func TestDockManager_PinnedSourceAppliesWhatWasDecided(t *testing.T) {
	t.Run("move", func(t *testing.T) {
		fx := newFixture(t)
		fx.f.PinDockable(fx.h("A"))
		m := NewDockManager(fx.f)

		p := m.Decide(move(fx.h("A"), fx.h("docs"), entity.OpFill))
		require.True(t, p.Legal(), p.Reason.String())
		require.NoError(t, m.Apply(p))

		assert.Equal(t, []string{"X", "A", "Y"}, fx.ids("docs"))
		assert.False(t, fx.f.IsDockablePinned(fx.h("A")))
		assertTreeInvariants(t, fx.l)
	})

	t.Run("swap", func(t *testing.T) {
		fx := newFixture(t)
		fx.f.PinDockable(fx.h("A"))
		m := NewDockManager(fx.f)

		req := move(fx.h("A"), fx.h("X"), entity.OpFill)
		req.Action = entity.ActionLink
		p := m.Decide(req)
		require.True(t, p.Legal(), p.Reason.String())
		require.NoError(t, m.Apply(p))

		assert.Equal(t, fx.h("docs"), fx.n("A").Owner)
		assert.Equal(t, fx.h("tools"), fx.n("X").Owner)
		assert.Contains(t, fx.ids("tools"), "X")
		assert.False(t, fx.f.IsDockablePinned(fx.h("A")))
		assertTreeInvariants(t, fx.l)
	})
}
