package usecase

import (
	"strconv"

	"github.com/bnema/dockyard/internal/domain/entity"
)

// NewDemoLayout builds an IDE-style layout:
//
//	root
//	└── main (horizontal)
//	    ├── left     [solution-explorer, class-view]
//	    ├── center (vertical)
//	    │   ├── documents [readme.md, main.go]
//	    │   └── bottom    [output, errors]
//	    └── right    [properties]
//
// Adjacent children of proportional docks are separated by splitters.
func NewDemoLayout() *entity.Layout {
	l := entity.NewLayout()
	splitters := 0
	node := func(kind entity.Kind, id, title string) *entity.Node {
		n := l.NewNode(kind, id)
		n.Title = title
		return n
	}
	dock := func(kind entity.Kind, id string, children ...*entity.Node) *entity.Node {
		d := node(kind, id, id)
		for i, c := range children {
			if kind == entity.KindProportionalDock && i > 0 {
				splitters++
				s := l.NewNode(entity.KindSplitter, "splitter-"+strconv.Itoa(splitters))
				s.Owner = d.Handle
				d.Container.VisibleDockables = append(d.Container.VisibleDockables, s.Handle)
			}
			c.Owner = d.Handle
			d.Container.VisibleDockables = append(d.Container.VisibleDockables, c.Handle)
		}
		if len(children) > 0 && kind != entity.KindProportionalDock {
			d.Container.ActiveDockable = children[0].Handle
		}
		return d
	}

	left := dock(entity.KindToolDock, "left",
		node(entity.KindTool, "solution-explorer", "Solution Explorer"),
		node(entity.KindTool, "class-view", "Class View"))
	left.ToolDock.Alignment = entity.AlignLeft
	left.Proportion = 0.2

	documents := dock(entity.KindDocumentDock, "documents",
		node(entity.KindDocument, "readme.md", "README.md"),
		node(entity.KindDocument, "main.go", "main.go"))
	documents.Proportion = 0.75

	bottom := dock(entity.KindToolDock, "bottom",
		node(entity.KindTool, "output", "Output"),
		node(entity.KindTool, "errors", "Error List"))
	bottom.ToolDock.Alignment = entity.AlignBottom
	bottom.Proportion = 0.25

	center := dock(entity.KindProportionalDock, "center", documents, bottom)
	center.Proportional.Orientation = entity.OrientationVertical
	center.Proportion = 0.6

	right := dock(entity.KindToolDock, "right",
		node(entity.KindTool, "properties", "Properties"))
	right.ToolDock.Alignment = entity.AlignRight
	right.Proportion = 0.2

	main := dock(entity.KindProportionalDock, "main", left, center, right)
	main.Proportional.Orientation = entity.OrientationHorizontal

	root := dock(entity.KindRootDock, "root", main)
	l.Root = root.Handle
	return l
}
