package entity

// DockState snapshots transient, non-serializable content keyed by dockable
// Id: tool and document payloads and document dock templates. It lives
// independently of the tree so content can be re-attached after a
// structural deserialize.
type DockState struct {
	contents  map[string]any
	templates map[string]any
}

// NewDockState creates an empty content snapshot.
func NewDockState() *DockState {
	return &DockState{
		contents:  make(map[string]any),
		templates: make(map[string]any),
	}
}

// Save captures the content of every node reachable in l.
func (s *DockState) Save(l *Layout) {
	if l == nil {
		return
	}
	for h := range l.Reachable() {
		n := l.Node(h)
		if n.ID == "" {
			continue
		}
		if n.Context != nil {
			s.contents[n.ID] = n.Context
		}
		if n.DocumentDock != nil && n.DocumentDock.Template != nil {
			s.templates[n.ID] = n.DocumentDock.Template
		}
	}
}

// Restore writes saved content back onto the nodes of l with matching ids.
// Returns the number of nodes that received content.
func (s *DockState) Restore(l *Layout) int {
	if l == nil {
		return 0
	}
	restored := 0
	for h := range l.Reachable() {
		n := l.Node(h)
		touched := false
		if content, ok := s.contents[n.ID]; ok {
			n.Context = content
			touched = true
		}
		if template, ok := s.templates[n.ID]; ok && n.DocumentDock != nil {
			n.DocumentDock.Template = template
			touched = true
		}
		if touched {
			restored++
		}
	}
	return restored
}

// Content returns the saved payload for a dockable id.
func (s *DockState) Content(id string) (any, bool) {
	v, ok := s.contents[id]
	return v, ok
}

// Template returns the saved document template for a document dock id.
func (s *DockState) Template(id string) (any, bool) {
	v, ok := s.templates[id]
	return v, ok
}

// Len returns the number of captured payloads and templates.
func (s *DockState) Len() int {
	return len(s.contents) + len(s.templates)
}

// Reset drops everything captured so far.
func (s *DockState) Reset() {
	s.contents = make(map[string]any)
	s.templates = make(map[string]any)
}
