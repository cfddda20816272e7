package entity

// Capability names one of the resolvable boolean dockable permissions.
type Capability int

const (
	CapabilityClose Capability = iota
	CapabilityPin
	CapabilityFloat
	CapabilityDrag
	CapabilityDrop
	CapabilityDockAsDocument
)

func (c Capability) String() string {
	switch c {
	case CapabilityClose:
		return "close"
	case CapabilityPin:
		return "pin"
	case CapabilityFloat:
		return "float"
	case CapabilityDrag:
		return "drag"
	case CapabilityDrop:
		return "drop"
	case CapabilityDockAsDocument:
		return "dock_as_document"
	default:
		return "unknown"
	}
}

// AllCapabilities lists every capability in declaration order.
func AllCapabilities() []Capability {
	return []Capability{
		CapabilityClose,
		CapabilityPin,
		CapabilityFloat,
		CapabilityDrag,
		CapabilityDrop,
		CapabilityDockAsDocument,
	}
}

// Capabilities are the raw per-instance flags, before policy resolution.
type Capabilities struct {
	CanClose          bool `json:"can_close" yaml:"can_close"`
	CanPin            bool `json:"can_pin" yaml:"can_pin"`
	CanFloat          bool `json:"can_float" yaml:"can_float"`
	CanDrag           bool `json:"can_drag" yaml:"can_drag"`
	CanDrop           bool `json:"can_drop" yaml:"can_drop"`
	CanDockAsDocument bool `json:"can_dock_as_document" yaml:"can_dock_as_document"`
}

// DefaultCapabilities enables everything.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		CanClose:          true,
		CanPin:            true,
		CanFloat:          true,
		CanDrag:           true,
		CanDrop:           true,
		CanDockAsDocument: true,
	}
}

// Get returns the raw flag for c.
func (c Capabilities) Get(capability Capability) bool {
	switch capability {
	case CapabilityClose:
		return c.CanClose
	case CapabilityPin:
		return c.CanPin
	case CapabilityFloat:
		return c.CanFloat
	case CapabilityDrag:
		return c.CanDrag
	case CapabilityDrop:
		return c.CanDrop
	case CapabilityDockAsDocument:
		return c.CanDockAsDocument
	default:
		return false
	}
}

// CapabilityPolicy is an optional override table. Nil entries are absent.
type CapabilityPolicy struct {
	CanClose          *bool `json:"can_close,omitempty" yaml:"can_close,omitempty"`
	CanPin            *bool `json:"can_pin,omitempty" yaml:"can_pin,omitempty"`
	CanFloat          *bool `json:"can_float,omitempty" yaml:"can_float,omitempty"`
	CanDrag           *bool `json:"can_drag,omitempty" yaml:"can_drag,omitempty"`
	CanDrop           *bool `json:"can_drop,omitempty" yaml:"can_drop,omitempty"`
	CanDockAsDocument *bool `json:"can_dock_as_document,omitempty" yaml:"can_dock_as_document,omitempty"`
}

func (p *CapabilityPolicy) slot(capability Capability) **bool {
	switch capability {
	case CapabilityClose:
		return &p.CanClose
	case CapabilityPin:
		return &p.CanPin
	case CapabilityFloat:
		return &p.CanFloat
	case CapabilityDrag:
		return &p.CanDrag
	case CapabilityDrop:
		return &p.CanDrop
	case CapabilityDockAsDocument:
		return &p.CanDockAsDocument
	default:
		return nil
	}
}

// Value returns the override for capability and whether one is present.
func (p *CapabilityPolicy) Value(capability Capability) (value, ok bool) {
	if p == nil {
		return false, false
	}
	slot := p.slot(capability)
	if slot == nil || *slot == nil {
		return false, false
	}
	return **slot, true
}

// Set assigns an override for capability.
func (p *CapabilityPolicy) Set(capability Capability, value bool) *CapabilityPolicy {
	if slot := p.slot(capability); slot != nil {
		v := value
		*slot = &v
	}
	return p
}

// Clear removes the override for capability.
func (p *CapabilityPolicy) Clear(capability Capability) {
	if slot := p.slot(capability); slot != nil {
		*slot = nil
	}
}

// IsEmpty reports whether no override is present.
func (p *CapabilityPolicy) IsEmpty() bool {
	if p == nil {
		return true
	}
	for _, c := range AllCapabilities() {
		if _, ok := p.Value(c); ok {
			return false
		}
	}
	return true
}
