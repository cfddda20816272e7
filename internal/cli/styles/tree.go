package styles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/bnema/dockyard/internal/domain/entity"
)

// LayoutRenderer renders a dock layout as a tree.
type LayoutRenderer struct {
	theme *Theme
	// ShowSplitters includes splitter markers in the output.
	ShowSplitters bool
}

// NewLayoutRenderer creates a new layout renderer with the given theme.
func NewLayoutRenderer(theme *Theme) *LayoutRenderer {
	return &LayoutRenderer{theme: theme}
}

// Render renders the main root followed by every floating window.
func (r *LayoutRenderer) Render(l *entity.Layout) string {
	if l == nil || !l.Root.IsValid() || l.Node(l.Root) == nil {
		return r.theme.Subtle.Render("(empty layout)")
	}

	parts := []string{r.renderNode(l, l.Root).String()}
	for _, w := range l.Windows() {
		if !w.IsFloating() || l.Node(w.Layout) == nil {
			continue
		}
		header := fmt.Sprintf("%s %s", IconWindow, WindowLabel(w))
		parts = append(parts, "", r.theme.Subtitle.Render(header), r.renderNode(l, w.Layout).String())
	}
	return strings.Join(parts, "\n")
}

func (r *LayoutRenderer) renderNode(l *entity.Layout, h entity.Handle) *tree.Tree {
	n := l.Node(h)
	t := tree.Root(r.styledLabel(l, n)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(r.theme.Enumerator)

	for _, c := range n.Visible() {
		child := l.Node(c)
		if child == nil || (child.IsSplitter() && !r.ShowSplitters) {
			continue
		}
		if child.IsDock() {
			t.Child(r.renderNode(l, c))
			continue
		}
		t.Child(r.styledLabel(l, child))
	}

	if n.Root != nil {
		for _, line := range r.rootExtras(l, n.Root) {
			t.Child(r.theme.Subtle.Render(line))
		}
	}
	return t
}

func (r *LayoutRenderer) styledLabel(l *entity.Layout, n *entity.Node) string {
	if n.IsDock() {
		return r.theme.DockLabel.Render(NodeLabel(n, false))
	}
	active := false
	if owner := l.Node(n.Owner); owner != nil && owner.Container != nil {
		active = owner.Container.ActiveDockable == n.Handle
	}
	label := NodeLabel(n, active)
	if active {
		return r.theme.ActiveLabel.Render(label)
	}
	return r.theme.LeafLabel.Render(label)
}

func (r *LayoutRenderer) rootExtras(l *entity.Layout, root *entity.RootFacet) []string {
	var lines []string
	for _, a := range []entity.Alignment{entity.AlignLeft, entity.AlignRight, entity.AlignTop, entity.AlignBottom} {
		if ids := nodeIDs(l, *root.PinnedList(a)); len(ids) > 0 {
			lines = append(lines, fmt.Sprintf("%s pinned %s: %s", IconPin, a, strings.Join(ids, ", ")))
		}
	}
	if ids := nodeIDs(l, root.HiddenDockables); len(ids) > 0 {
		lines = append(lines, fmt.Sprintf("%s hidden: %s", IconHidden, strings.Join(ids, ", ")))
	}
	return lines
}

// NodeLabel is the plain text label of a node. Active leaves are prefixed
// with an asterisk.
func NodeLabel(n *entity.Node, active bool) string {
	id := n.ID
	if id == "" {
		id = "#" + strconv.FormatUint(uint64(n.Handle), 10)
	}

	if !n.IsDock() {
		var sb strings.Builder
		if active {
			sb.WriteString("* ")
		}
		sb.WriteString(id)
		if n.Title != "" && n.Title != n.ID {
			fmt.Fprintf(&sb, " %q", n.Title)
		}
		if n.IsModified {
			sb.WriteString(" (modified)")
		}
		return sb.String()
	}

	details := []string{n.Kind.String()}
	switch {
	case n.Proportional != nil:
		details = append(details, orientationName(n.Proportional.Orientation))
	case n.ToolDock != nil && n.ToolDock.Alignment != entity.AlignUnset:
		details = append(details, n.ToolDock.Alignment.String())
	case n.DocumentDock != nil && n.DocumentDock.Presentation == entity.PresentationMdi:
		details = append(details, "mdi")
	}
	if n.HasProportion() {
		details = append(details, strconv.FormatFloat(n.Proportion*100, 'f', 0, 64)+"%")
	}
	return fmt.Sprintf("%s [%s]", id, strings.Join(details, " "))
}

// WindowLabel describes a floating window by key, title and bounds.
func WindowLabel(w *entity.Window) string {
	label := "window " + w.Key
	if w.Title != "" {
		label += fmt.Sprintf(" %q", w.Title)
	}
	if w.Bounds.HasSize() {
		label += fmt.Sprintf(" at %g,%g %gx%g", w.Bounds.X, w.Bounds.Y, w.Bounds.W, w.Bounds.H)
	}
	return label
}

func orientationName(o entity.Orientation) string {
	if o == entity.OrientationVertical {
		return "vertical"
	}
	return "horizontal"
}

func nodeIDs(l *entity.Layout, handles []entity.Handle) []string {
	ids := make([]string, 0, len(handles))
	for _, h := range handles {
		if n := l.Node(h); n != nil {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// RenderTitle renders a section heading.
func (r *LayoutRenderer) RenderTitle(title string) string {
	return r.theme.Title.Render(title)
}
