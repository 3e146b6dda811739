package wobbly

// Rect is an axis-aligned box: origin plus size.
type Rect struct {
	X, Y float64
	W, H float64
}

// Empty reports whether the box has no usable area.
func (r Rect) Empty() bool {
	return !(r.W > 0) || !(r.H > 0)
}

// Surface is the host object being deformed. Geometry returns false while the
// surface is not available yet (not mapped, not allocated).
type Surface interface {
	Geometry() (Rect, bool)
}

// Vertex is a deformed mesh vertex relative to the surface's own origin. Z is
// a depth bias: 1 for the anchor vertex, 0 otherwise.
type Vertex struct {
	X, Y, Z float64
}
