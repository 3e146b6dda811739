package wobbly

import (
	"fmt"
	"math"
)

type gridState uint8

const (
	gridDirty gridState = iota
	gridBuilt
)

func (s gridState) String() string {
	if s == gridBuilt {
		return "built"
	}
	return "dirty"
}

const noAnchor = -1

// Grid owns the points and springs tiling one surface. It starts dirty and is
// rebuilt in full by Ensure after every invalidation.
type Grid struct {
	xTiles, yTiles int

	points  []Point
	springs []Spring
	state   gridState

	anchor int

	wobbling bool
	canStop  bool
}

// NewGrid returns an unbuilt grid of xTiles by yTiles cells.
func NewGrid(xTiles, yTiles int) *Grid {
	if xTiles < 1 || yTiles < 1 {
		panic(fmt.Sprintf("wobbly: invalid tile count %dx%d", xTiles, yTiles))
	}
	return &Grid{xTiles: xTiles, yTiles: yTiles, anchor: noAnchor}
}

// Tiles returns the mesh resolution.
func (g *Grid) Tiles() (x, y int) { return g.xTiles, g.yTiles }

// Built reports whether the grid holds a current model.
func (g *Grid) Built() bool { return g.state == gridBuilt }

// Invalidate discards the model lazily; the next Ensure rebuilds it.
func (g *Grid) Invalidate() { g.state = gridDirty }

// SetTiles changes the resolution and invalidates the grid. An anchor moves
// to the node at the same relative position on the new mesh.
func (g *Grid) SetTiles(xTiles, yTiles int) {
	if xTiles < 1 || yTiles < 1 {
		panic(fmt.Sprintf("wobbly: invalid tile count %dx%d", xTiles, yTiles))
	}
	if xTiles == g.xTiles && yTiles == g.yTiles {
		return
	}
	if g.anchor != noAnchor {
		cols := g.xTiles + 1
		col := nearest(float64(g.anchor%cols) * float64(xTiles) / float64(g.xTiles))
		row := nearest(float64(g.anchor/cols) * float64(yTiles) / float64(g.yTiles))
		g.anchor = row*(xTiles+1) + col
	}
	g.xTiles, g.yTiles = xTiles, yTiles
	g.points, g.springs = nil, nil
	g.Invalidate()
}

// Ensure builds the grid from the surface's geometry if it is dirty. It
// returns false when the surface is unavailable or has no area.
func (g *Grid) Ensure(s Surface) bool {
	if g.state == gridBuilt {
		return true
	}
	if s == nil {
		return false
	}
	r, ok := s.Geometry()
	if !ok || r.Empty() {
		return false
	}
	g.Build(r)
	return true
}

// Build lays out a fresh undeformed mesh over r. Every point starts at rest.
// The anchor index survives and its new point is pinned again.
func (g *Grid) Build(r Rect) {
	cols, rows := g.xTiles+1, g.yTiles+1

	g.points = make([]Point, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			tx := float64(col) / float64(g.xTiles)
			ty := float64(row) / float64(g.yTiles)
			g.points[row*cols+col] = Point{X: r.X + tx*r.W, Y: r.Y + ty*r.H}
		}
	}

	xRest := r.W / float64(g.xTiles)
	yRest := r.H / float64(g.yTiles)

	g.springs = make([]Spring, 0, g.xTiles*rows+cols*g.yTiles)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if col > 0 {
				g.springs = append(g.springs, Spring{A: g.At(col-1, row), B: g.At(col, row), RestX: xRest})
			}
			if row > 0 {
				g.springs = append(g.springs, Spring{A: g.At(col, row-1), B: g.At(col, row), RestY: yRest})
			}
		}
	}

	if g.anchor != noAnchor {
		g.points[g.anchor].Pinned = true
	}
	g.state = gridBuilt
}

// Has reports whether (col,row) names a node of the mesh.
func (g *Grid) Has(col, row int) bool {
	return col >= 0 && col <= g.xTiles && row >= 0 && row <= g.yTiles
}

// Index maps a node coordinate to its row-major position. Coordinates outside
// [0,xTiles]x[0,yTiles] are a programming error and panic.
func (g *Grid) Index(col, row int) int {
	if !g.Has(col, row) {
		panic(fmt.Sprintf("wobbly: no point at %d, %d (grid is %dx%d)", col, row, g.xTiles, g.yTiles))
	}
	return row*(g.xTiles+1) + col
}

// At returns the point at a node coordinate. It panics when out of range or
// when the grid has never been built.
func (g *Grid) At(col, row int) *Point {
	i := g.Index(col, row)
	if i >= len(g.points) {
		panic(fmt.Sprintf("wobbly: no point at %d, %d (grid not built)", col, row))
	}
	return &g.points[i]
}

func (g *Grid) Points() []Point   { return g.points }
func (g *Grid) Springs() []Spring { return g.springs }

// Anchor returns the pinned point's index, if any.
func (g *Grid) Anchor() (int, bool) {
	return g.anchor, g.anchor != noAnchor
}

// SetAnchor unpins the previous anchor and pins the point at (col,row).
func (g *Grid) SetAnchor(col, row int) {
	i := g.Index(col, row)
	g.ClearAnchor()
	g.anchor = i
	if i < len(g.points) {
		g.points[i].Pinned = true
	}
}

// ClearAnchor unpins the anchor point, if any.
func (g *Grid) ClearAnchor() {
	if g.anchor != noAnchor && g.anchor < len(g.points) {
		g.points[g.anchor].Pinned = false
	}
	g.anchor = noAnchor
}

// MoveAnchor carries the anchor point along with the surface. Other points
// only follow through the springs.
func (g *Grid) MoveAnchor(dx, dy float64) {
	if g.anchor == noAnchor || g.anchor >= len(g.points) {
		return
	}
	g.points[g.anchor].Move(dx, dy)
}

// Wobbling reports whether any tick of this grid has seen a net force.
func (g *Grid) Wobbling() bool { return g.wobbling }

// CanStop reports whether the grid may be torn down once it settles.
func (g *Grid) CanStop() bool { return g.canStop }

func (g *Grid) SetCanStop(v bool) { g.canStop = v }

// Bounds returns the box enclosing every point, or false if the grid holds no
// model.
func (g *Grid) Bounds() (Rect, bool) {
	if len(g.points) == 0 {
		return Rect{}, false
	}
	x1, y1 := g.points[0].X, g.points[0].Y
	x2, y2 := x1, y1
	for _, p := range g.points[1:] {
		x1 = math.Min(x1, p.X)
		y1 = math.Min(y1, p.Y)
		x2 = math.Max(x2, p.X)
		y2 = math.Max(y2, p.Y)
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}, true
}
