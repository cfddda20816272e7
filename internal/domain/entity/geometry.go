package entity

// Rect is a position and size in screen or parent coordinates.
// The engine never measures; it only stores and forwards bounds.
type Rect struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// HasSize reports whether the rect has a positive width and height.
func (r Rect) HasSize() bool {
	return r.W > 0 && r.H > 0
}

// IsZero reports whether every component is zero.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (cx, cy float64) {
	return r.X + r.W/2, r.Y + r.H/2
}
