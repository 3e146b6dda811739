package ui

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/olivier-w/wobbly/internal/desktop"
)

// glide moves a window toward a keyboard-chosen target along a harmonica
// spring while holding a synthetic grab, so keyboard moves wobble like drags.
type glide struct {
	spring harmonica.Spring
	win    *desktop.Window

	x, y   float64
	vx, vy float64
	tx, ty float64
}

func newGlide(fps int) glide {
	return glide{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 0.6)}
}

func (g *glide) active() bool { return g.win != nil }

// push moves the target of w by (dx,dy), grabbing w by its title bar if it is
// not already gliding.
func (g *glide) push(d *desktop.Desktop, w *desktop.Window, dx, dy float64) {
	if w == nil {
		return
	}
	if g.win != w {
		g.cancel(d)
		g.win = w
		g.x, g.y = w.X, w.Y
		g.vx, g.vy = 0, 0
		g.tx, g.ty = w.X, w.Y
		d.BeginGrab(w, desktop.GrabMoving, w.X+w.W/2, w.Y+titleBand/2)
	}
	g.tx += dx
	g.ty += dy
}

// step advances the glide by one frame. It reports whether it is still
// running.
func (g *glide) step(d *desktop.Desktop) bool {
	if g.win == nil {
		return false
	}
	nx, vx := g.spring.Update(g.x, g.vx, g.tx)
	ny, vy := g.spring.Update(g.y, g.vy, g.ty)
	g.x, g.y, g.vx, g.vy = nx, ny, vx, vy
	d.MoveTo(g.win, g.x, g.y)

	if math.Abs(g.tx-g.x) < 0.25 && math.Abs(g.ty-g.y) < 0.25 && math.Abs(g.vx)+math.Abs(g.vy) < 0.25 {
		d.MoveTo(g.win, g.tx, g.ty)
		g.cancel(d)
		return false
	}
	return true
}

// cancel releases the synthetic grab where the window currently is.
func (g *glide) cancel(d *desktop.Desktop) {
	if g.win == nil {
		return
	}
	d.EndGrab(g.win, desktop.GrabMoving)
	g.win = nil
}
