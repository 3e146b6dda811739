package desktop

import "github.com/olivier-w/wobbly/internal/wobbly"

// Window is a rectangle on the desktop. Coordinates are in canvas dots.
type Window struct {
	ID    string
	Title string

	X, Y float64
	W, H float64

	// Popup windows are never wobbled.
	Popup bool

	// Hue picks the window's colour in [0,1).
	Hue float64

	effect *wobbly.Controller
}

// Geometry implements wobbly.Surface.
func (w *Window) Geometry() (wobbly.Rect, bool) {
	r := wobbly.Rect{X: w.X, Y: w.Y, W: w.W, H: w.H}
	return r, !r.Empty()
}

// Effect returns the attached wobble effect, or nil.
func (w *Window) Effect() *wobbly.Controller { return w.effect }

// Contains reports whether the point lies inside the undeformed frame.
func (w *Window) Contains(x, y float64) bool {
	return x >= w.X && x < w.X+w.W && y >= w.Y && y < w.Y+w.H
}

// InResizeHandle reports whether the point is on the bottom-right corner.
func (w *Window) InResizeHandle(x, y float64) bool {
	const handle = 4
	return w.Contains(x, y) && x >= w.X+w.W-handle && y >= w.Y+w.H-handle
}
