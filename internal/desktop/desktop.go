package desktop

import (
	"fmt"
	"io"
	"log"

	"github.com/olivier-w/wobbly/internal/wobbly"
)

// EffectName is the name the wobble effect is attached under.
const EffectName = "wobbly"

// MinSize is the smallest width or height a window can be resized to.
const MinSize = 8

// GrabOp is the kind of pointer drag in progress.
type GrabOp uint8

const (
	GrabMoving GrabOp = iota
	GrabResizing
)

// Desktop is an ordered stack of windows, back to front. It is only mutated
// from Bubbletea's single-threaded Update loop.
type Desktop struct {
	windows []*Window
	focus   int
	cfg     wobbly.Config
	log     *log.Logger
}

// New creates an empty desktop whose effects use cfg.
func New(cfg wobbly.Config) (*Desktop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("desktop: %w", err)
	}
	return &Desktop{cfg: cfg, log: log.New(io.Discard, "", 0)}, nil
}

// SetLogger routes effect lifecycle events to l.
func (d *Desktop) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	d.log = l
}

func (d *Desktop) Config() wobbly.Config { return d.cfg }

// Add puts w on top of the stack and focuses it.
func (d *Desktop) Add(w *Window) {
	d.windows = append(d.windows, w)
	d.focus = len(d.windows) - 1
}

// Windows returns the stack, back to front.
func (d *Desktop) Windows() []*Window { return d.windows }

// Len returns the number of windows.
func (d *Desktop) Len() int { return len(d.windows) }

// Focused returns the focused window, or nil if the desktop is empty.
func (d *Desktop) Focused() *Window {
	if d.focus < 0 || d.focus >= len(d.windows) {
		return nil
	}
	return d.windows[d.focus]
}

// FocusNext raises the bottom window and focuses it, cycling the stack.
func (d *Desktop) FocusNext() *Window {
	if len(d.windows) == 0 {
		return nil
	}
	w := d.windows[0]
	d.Raise(w)
	return w
}

// WindowAt returns the topmost window containing the point.
func (d *Desktop) WindowAt(x, y float64) *Window {
	for i := len(d.windows) - 1; i >= 0; i-- {
		if d.windows[i].Contains(x, y) {
			return d.windows[i]
		}
	}
	return nil
}

// Raise moves w to the top of the stack and focuses it.
func (d *Desktop) Raise(w *Window) {
	i := d.index(w)
	if i < 0 {
		return
	}
	copy(d.windows[i:], d.windows[i+1:])
	d.windows[len(d.windows)-1] = w
	d.focus = len(d.windows) - 1
}

func (d *Desktop) index(w *Window) int {
	for i, x := range d.windows {
		if x == w {
			return i
		}
	}
	return -1
}

// BeginGrab starts a drag on w with the pointer at (px,py). Move drags on
// regular windows attach the wobble effect if needed and pin it under the
// pointer. It reports whether an effect is now holding the window.
func (d *Desktop) BeginGrab(w *Window, op GrabOp, px, py float64) bool {
	if w == nil || w.Popup || op != GrabMoving {
		return false
	}
	if w.effect == nil {
		c, err := wobbly.NewController(w, d.cfg)
		if err != nil {
			d.log.Printf("attach %s to %s: %v", EffectName, w.ID, err)
			return false
		}
		w.effect = c
		d.log.Printf("attach %s to %s", EffectName, w.ID)
	}
	if err := w.effect.BeginGrab(px, py); err != nil {
		d.log.Printf("grab %s at %g, %g: %v", w.ID, px, py, err)
		return false
	}
	return true
}

// EndGrab ends the drag on w, letting its effect settle.
func (d *Desktop) EndGrab(w *Window, op GrabOp) {
	if w == nil || w.Popup || op != GrabMoving || w.effect == nil {
		return
	}
	w.effect.EndGrab()
	d.reap(w)
}

// MoveBy translates w and lets its effect follow.
func (d *Desktop) MoveBy(w *Window, dx, dy float64) {
	w.X += dx
	w.Y += dy
	if w.effect != nil {
		w.effect.Sync()
	}
}

// MoveTo places w at (x,y) and lets its effect follow.
func (d *Desktop) MoveTo(w *Window, x, y float64) {
	w.X, w.Y = x, y
	if w.effect != nil {
		w.effect.Sync()
	}
}

// Resize sets the size of w, clamped to MinSize. The effect rebuilds its mesh
// on the next tick.
func (d *Desktop) Resize(w *Window, width, height float64) {
	w.W = max(width, MinSize)
	w.H = max(height, MinSize)
	if w.effect != nil {
		w.effect.Sync()
	}
}

// Tick advances every attached effect by one frame and detaches those that
// settled. It reports whether any effect still wants frames.
func (d *Desktop) Tick() bool {
	animating := false
	for _, w := range d.windows {
		if w.effect == nil {
			continue
		}
		if res := w.effect.Tick(); res.Stop {
			d.log.Printf("%s on %s settled (velocity %.3f)", EffectName, w.ID, res.TotalVelocity)
		}
		d.reap(w)
		if w.effect != nil && w.effect.Animating() {
			animating = true
		}
	}
	return animating
}

// Animating reports whether any effect still wants frames.
func (d *Desktop) Animating() bool {
	for _, w := range d.windows {
		if w.effect != nil && w.effect.Animating() {
			return true
		}
	}
	return false
}

// SetTiles changes the mesh resolution for current and future effects.
func (d *Desktop) SetTiles(xTiles, yTiles int) error {
	cfg := d.cfg
	cfg.XTiles, cfg.YTiles = xTiles, yTiles
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("desktop: %w", err)
	}
	d.cfg = cfg
	for _, w := range d.windows {
		if w.effect == nil {
			continue
		}
		if err := w.effect.SetTiles(xTiles, yTiles); err != nil {
			return fmt.Errorf("desktop: retile %s: %w", w.ID, err)
		}
	}
	return nil
}

// DisableAll removes every effect.
func (d *Desktop) DisableAll() {
	for _, w := range d.windows {
		if w.effect != nil {
			d.log.Printf("detach %s from %s", EffectName, w.ID)
			w.effect = nil
		}
	}
}

func (d *Desktop) reap(w *Window) {
	if w.effect != nil && w.effect.State() == wobbly.StateRemoved {
		d.log.Printf("detach %s from %s", EffectName, w.ID)
		w.effect = nil
	}
}
