package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockyard/internal/domain/entity"
)

func sampleLayout() *entity.Layout {
	l := entity.NewLayout()
	root := l.NewNode(entity.KindRootDock, "root")
	prop := l.NewNode(entity.KindProportionalDock, "main")
	tools := l.NewNode(entity.KindToolDock, "tools")
	splitter := l.NewNode(entity.KindSplitter, "split-1")
	docs := l.NewNode(entity.KindDocumentDock, "docs")
	explorer := l.NewNode(entity.KindTool, "explorer")
	readme := l.NewNode(entity.KindDocument, "readme")
	output := l.NewNode(entity.KindTool, "output")

	l.Root = root.Handle
	attach(l, root, prop)
	attach(l, prop, tools, splitter, docs)
	attach(l, tools, explorer)
	attach(l, docs, readme)
	prop.Proportional.Orientation = entity.OrientationVertical
	tools.Proportion = 0.25
	tools.ToolDock.Alignment = entity.AlignLeft
	docs.DocumentDock.Presentation = entity.PresentationMdi
	docs.Container.ActiveDockable = readme.Handle
	readme.DockGroup = "editors"

	output.Owner = root.Handle
	output.OriginalOwner = tools.Handle
	root.Root.BottomPinnedDockables = []entity.Handle{output.Handle}
	root.Root.FocusedDockable = readme.Handle

	floatRoot := l.NewNode(entity.KindRootDock, "float-root")
	floatTools := l.NewNode(entity.KindToolDock, "float-tools")
	props := l.NewNode(entity.KindTool, "properties")
	attach(l, floatRoot, floatTools)
	attach(l, floatTools, props)
	win := l.NewWindow("props-window")
	win.Layout = floatRoot.Handle
	win.Owner = root.Handle
	win.Bounds = entity.Rect{X: 10, Y: 20, W: 300, H: 400}
	floatRoot.Root.Window = win.ID
	root.Root.Windows = []entity.WindowID{win.ID}
	return l
}

func TestLayoutState_RoundTripThroughJSON(t *testing.T) {
	state := entity.SnapshotLayout(sampleLayout())
	assert.Equal(t, 4, state.CountDockables())

	data, err := json.Marshal(state)
	require.NoError(t, err)

	var decoded entity.LayoutState
	require.NoError(t, json.Unmarshal(data, &decoded))

	l, err := entity.LayoutFromSnapshot(&decoded)
	require.NoError(t, err)

	root := l.Node(l.Root)
	require.NotNil(t, root.Root)

	tools := l.FindByID("tools")
	require.NotNil(t, tools)
	assert.InDelta(t, 0.25, tools.Proportion, 1e-9)
	assert.Equal(t, entity.AlignLeft, tools.ToolDock.Alignment)

	main := l.FindByID("main")
	assert.False(t, main.HasProportion())
	assert.Equal(t, entity.OrientationVertical, main.Proportional.Orientation)
	assert.Len(t, main.Container.VisibleDockables, 3)

	docs := l.FindByID("docs")
	readme := l.FindByID("readme")
	assert.Equal(t, readme.Handle, docs.Container.ActiveDockable)
	assert.Equal(t, docs.Handle, readme.Owner)
	assert.Equal(t, "editors", readme.DockGroup)
	assert.Equal(t, entity.PresentationMdi, docs.DocumentDock.Presentation)

	output := l.FindByID("output")
	assert.Equal(t, []entity.Handle{output.Handle}, root.Root.BottomPinnedDockables)
	assert.Equal(t, tools.Handle, output.OriginalOwner)
	assert.Equal(t, root.Handle, output.Owner)
	assert.Equal(t, readme.Handle, root.Root.FocusedDockable)

	require.Len(t, root.Root.Windows, 1)
	win := l.Window(root.Root.Windows[0])
	assert.Equal(t, "props-window", win.Key)
	assert.True(t, win.IsFloating())
	assert.Equal(t, 300.0, win.Bounds.W)
	floatRoot := l.Node(win.Layout)
	assert.Equal(t, win.ID, floatRoot.Root.Window)
	assert.NotNil(t, l.FindByID("properties"))
}

func TestLayoutFromSnapshot_Rejects(t *testing.T) {
	_, err := entity.LayoutFromSnapshot(nil)
	assert.ErrorIs(t, err, entity.ErrInvalidLayoutState)

	_, err = entity.LayoutFromSnapshot(&entity.LayoutState{Version: 1, Root: &entity.NodeSnapshot{ID: "x", Kind: "tool"}})
	assert.ErrorIs(t, err, entity.ErrInvalidLayoutState)

	_, err = entity.LayoutFromSnapshot(&entity.LayoutState{Version: 1, Root: &entity.NodeSnapshot{ID: "x", Kind: "bogus"}})
	assert.ErrorIs(t, err, entity.ErrInvalidLayoutState)

	_, err = entity.LayoutFromSnapshot(&entity.LayoutState{Version: 99, Root: &entity.NodeSnapshot{ID: "x", Kind: "root_dock"}})
	assert.ErrorIs(t, err, entity.ErrInvalidLayoutState)
}

func TestDockState_SaveAndRestore(t *testing.T) {
	l := sampleLayout()
	l.FindByID("readme").Context = "readme-buffer"
	l.FindByID("docs").DocumentDock.Template = "new-file-template"
	l.FindByID("output").Context = 42

	state := entity.NewDockState()
	state.Save(l)
	assert.Equal(t, 3, state.Len())

	restored, err := entity.LayoutFromSnapshot(entity.SnapshotLayout(l))
	require.NoError(t, err)
	assert.Nil(t, restored.FindByID("readme").Context)

	assert.Equal(t, 3, state.Restore(restored))
	assert.Equal(t, "readme-buffer", restored.FindByID("readme").Context)
	assert.Equal(t, "new-file-template", restored.FindByID("docs").DocumentDock.Template)
	assert.Equal(t, 42, restored.FindByID("output").Context)

	content, ok := state.Content("readme")
	assert.True(t, ok)
	assert.Equal(t, "readme-buffer", content)

	state.Reset()
	assert.Equal(t, 0, state.Len())
}

func TestWorkspaceID_KeyIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, entity.WorkspaceID("Debug").Key(), entity.WorkspaceID(" debug ").Key())
	ws := &entity.DockWorkspace{ID: "debug"}
	assert.Equal(t, "debug", ws.DisplayName())
	ws.Name = "Debugging"
	assert.Equal(t, "Debugging", ws.DisplayName())
}
