package wobbly

import (
	"errors"
	"fmt"
	"math"
)

// BeginGrab failures.
var (
	ErrNotReady = errors.New("wobbly: surface not ready")
	ErrRemoved  = errors.New("wobbly: effect removed")
	ErrNoNode   = errors.New("wobbly: no mesh node under pointer")
)

// State is the lifecycle of one wobble effect.
type State uint8

const (
	// StateIdle has no grid and no grab yet.
	StateIdle State = iota
	// StateGrabbed has an anchor pinned to the pointer.
	StateGrabbed
	// StateWobbling has been released and is settling.
	StateWobbling
	// StateRemoved is terminal; the grid has been discarded.
	StateRemoved
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGrabbed:
		return "grabbed"
	case StateWobbling:
		return "wobbling"
	case StateRemoved:
		return "removed"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Controller glues the simulation to host drag events, frame ticks and vertex
// queries for one surface. It is driven from a single goroutine and Tick must
// not be called reentrantly.
type Controller struct {
	surface Surface
	cfg     Config
	sim     *Simulator
	grid    *Grid
	state   State

	last    Rect
	tracked bool
}

// NewController attaches a wobble effect to s. The grid is built lazily.
func NewController(s Surface, cfg Config) (*Controller, error) {
	if s == nil {
		return nil, fmt.Errorf("wobbly: nil surface")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		surface: s,
		cfg:     cfg,
		sim:     NewSimulator(cfg),
		grid:    NewGrid(cfg.XTiles, cfg.YTiles),
	}
	if r, ok := s.Geometry(); ok {
		c.last, c.tracked = r, true
	}
	return c, nil
}

// State returns the effect's lifecycle state.
func (c *Controller) State() State { return c.state }

// Config returns the constants the effect simulates with.
func (c *Controller) Config() Config { return c.cfg }

// Animating reports whether the host should keep delivering frame ticks.
func (c *Controller) Animating() bool {
	return c.state == StateGrabbed || c.state == StateWobbling
}

// Wobbling reports whether the mesh has moved at all since the effect began.
func (c *Controller) Wobbling() bool {
	return c.grid != nil && c.grid.Wobbling()
}

// BeginGrab pins the grid node nearest to the pointer, given in the surface's
// parent coordinates. It fails with ErrNotReady while the surface has no
// geometry, ErrRemoved once the effect is gone, and ErrNoNode when the
// pointer maps past the mesh. A failed grab leaves the state unchanged.
func (c *Controller) BeginGrab(px, py float64) error {
	if c.state == StateRemoved {
		return ErrRemoved
	}
	if !c.grid.Ensure(c.surface) {
		return ErrNotReady
	}
	r, ok := c.surface.Geometry()
	if !ok || r.Empty() {
		return ErrNotReady
	}

	x, y := px-r.X, py-r.Y
	col := nearest(x / r.W * float64(c.cfg.XTiles))
	row := nearest(y / r.H * float64(c.cfg.YTiles))
	if c.cfg.LegacyAnchorRow {
		row = nearest(y / r.W * float64(c.cfg.XTiles))
	}
	if !c.grid.Has(col, row) {
		xt, yt := c.grid.Tiles()
		return fmt.Errorf("%w: node %d, %d on a %dx%d grid", ErrNoNode, col, row, xt, yt)
	}

	c.grid.SetAnchor(col, row)
	c.grid.SetCanStop(false)
	c.state = StateGrabbed
	return nil
}

// EndGrab releases the anchor. A grid that never moved is removed right away;
// otherwise it is allowed to stop once it settles.
func (c *Controller) EndGrab() {
	if c.state == StateRemoved {
		return
	}
	c.grid.ClearAnchor()
	if !c.grid.Wobbling() {
		c.remove()
		return
	}
	c.grid.SetCanStop(true)
	c.state = StateWobbling
}

// SurfaceMoved carries the anchor along with the surface.
func (c *Controller) SurfaceMoved(dx, dy float64) {
	if c.grid == nil {
		return
	}
	c.grid.MoveAnchor(dx, dy)
}

// SurfaceResized drops the mesh; the next tick rebuilds it at rest.
func (c *Controller) SurfaceResized() {
	if c.grid == nil {
		return
	}
	c.grid.Invalidate()
}

// Sync compares the surface geometry with what was seen last and forwards
// moves and resizes. The first observed geometry is only recorded.
func (c *Controller) Sync() {
	r, ok := c.surface.Geometry()
	if !ok {
		return
	}
	if !c.tracked {
		c.last, c.tracked = r, true
		return
	}
	if r.X != c.last.X || r.Y != c.last.Y {
		c.SurfaceMoved(r.X-c.last.X, r.Y-c.last.Y)
	}
	if r.W != c.last.W || r.H != c.last.H {
		c.SurfaceResized()
	}
	c.last = r
}

// SetTiles changes the mesh resolution. The current grid is invalidated and
// any anchor is dropped.
func (c *Controller) SetTiles(xTiles, yTiles int) error {
	cfg := c.cfg
	cfg.XTiles, cfg.YTiles = xTiles, yTiles
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	if c.grid != nil {
		c.grid.SetTiles(xTiles, yTiles)
	}
	return nil
}

// Tick advances the simulation by one frame. When the released mesh settles
// the effect moves to StateRemoved and its grid is discarded.
func (c *Controller) Tick() StepResult {
	if c.state == StateIdle || c.state == StateRemoved {
		return StepResult{}
	}
	res := c.sim.Step(c.grid, c.surface)
	if res.Stop {
		c.remove()
	}
	return res
}

// Deform returns the vertex for normalized tile coordinates (tx,ty) in
// [0,1], relative to the surface's current origin.
func (c *Controller) Deform(tx, ty float64) (Vertex, bool) {
	if c.grid == nil || !c.grid.Built() {
		return Vertex{}, false
	}
	r, ok := c.surface.Geometry()
	if !ok {
		return Vertex{}, false
	}
	xt, yt := c.grid.Tiles()
	col := int(math.Floor(tx * float64(xt)))
	row := int(math.Floor(ty * float64(yt)))
	i := c.grid.Index(col, row)
	p := c.grid.points[i]

	v := Vertex{X: p.X - r.X, Y: p.Y - r.Y}
	if a, ok := c.grid.Anchor(); ok && a == i {
		v.Z = 1
	}
	return v, true
}

// Bounds returns the box around the deformed mesh in parent coordinates.
func (c *Controller) Bounds() (Rect, bool) {
	if c.grid == nil || !c.grid.Built() {
		return Rect{}, false
	}
	return c.grid.Bounds()
}

func (c *Controller) remove() {
	c.grid = nil
	c.state = StateRemoved
}

// nearest rounds half up, so a pointer exactly between two nodes picks the
// later one.
func nearest(v float64) int {
	return int(math.Floor(v + 0.5))
}
