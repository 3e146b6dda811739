package wobbly

import (
	"strings"
	"testing"
)

type fakeSurface struct {
	r  Rect
	ok bool
}

func (s *fakeSurface) Geometry() (Rect, bool) { return s.r, s.ok }

func newSurface(x, y, w, h float64) *fakeSurface {
	return &fakeSurface{r: Rect{X: x, Y: y, W: w, H: h}, ok: true}
}

func mustPanic(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", want)
		}
		if msg, _ := r.(string); !strings.Contains(msg, want) {
			t.Fatalf("panic = %v, want it to contain %q", r, want)
		}
	}()
	fn()
}

func TestGridCounts(t *testing.T) {
	cases := []struct{ x, y int }{{1, 1}, {8, 8}, {3, 5}, {12, 2}, {1, 7}}
	for _, tc := range cases {
		g := NewGrid(tc.x, tc.y)
		g.Build(Rect{W: 100, H: 60})
		wantPoints := (tc.x + 1) * (tc.y + 1)
		wantSprings := tc.x*(tc.y+1) + (tc.x+1)*tc.y
		if got := len(g.Points()); got != wantPoints {
			t.Fatalf("%dx%d: %d points, want %d", tc.x, tc.y, got, wantPoints)
		}
		if got := len(g.Springs()); got != wantSprings {
			t.Fatalf("%dx%d: %d springs, want %d", tc.x, tc.y, got, wantSprings)
		}
	}
}

func TestGridLayoutIsRowMajor(t *testing.T) {
	g := NewGrid(4, 2)
	g.Build(Rect{X: 10, Y: 20, W: 100, H: 50})

	for row := 0; row <= 2; row++ {
		for col := 0; col <= 4; col++ {
			p := g.Points()[row*5+col]
			wantX := 10 + float64(col)/4*100
			wantY := 20 + float64(row)/2*50
			if p.X != wantX || p.Y != wantY {
				t.Fatalf("point (%d,%d) at (%v,%v), want (%v,%v)", col, row, p.X, p.Y, wantX, wantY)
			}
			if g.At(col, row) != &g.Points()[row*5+col] {
				t.Fatalf("At(%d,%d) does not alias the row-major slot", col, row)
			}
		}
	}
}

func TestGridSpringRestOffsets(t *testing.T) {
	g := NewGrid(4, 2)
	g.Build(Rect{W: 100, H: 50})

	var horiz, vert int
	for _, s := range g.Springs() {
		switch {
		case s.RestX == 25 && s.RestY == 0:
			horiz++
			if s.B.X-s.A.X != 25 || s.B.Y != s.A.Y {
				t.Fatalf("row spring does not join left neighbours: %+v %+v", *s.A, *s.B)
			}
		case s.RestX == 0 && s.RestY == 25:
			vert++
			if s.B.Y-s.A.Y != 25 || s.B.X != s.A.X {
				t.Fatalf("column spring does not join top neighbours: %+v %+v", *s.A, *s.B)
			}
		default:
			t.Fatalf("unexpected rest offset (%v,%v)", s.RestX, s.RestY)
		}
	}
	if horiz != 4*3 || vert != 5*2 {
		t.Fatalf("got %d row and %d column springs, want 12 and 10", horiz, vert)
	}
}

func TestGridOutOfRangePanics(t *testing.T) {
	g := NewGrid(8, 8)
	g.Build(Rect{W: 100, H: 100})

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {9, 0}, {0, 9}, {9, 9}} {
		c := c
		mustPanic(t, "no point at", func() { g.At(c[0], c[1]) })
	}
	// Corners are valid.
	g.At(0, 0)
	g.At(8, 8)
}

func TestGridAtBeforeBuildPanics(t *testing.T) {
	g := NewGrid(2, 2)
	mustPanic(t, "not built", func() { g.At(1, 1) })
}

func TestGridEnsureIsLazy(t *testing.T) {
	s := newSurface(0, 0, 100, 100)
	g := NewGrid(8, 8)
	if g.Built() || g.state.String() != "dirty" {
		t.Fatal("new grid should start dirty")
	}
	if !g.Ensure(s) || !g.Built() || g.state.String() != "built" {
		t.Fatal("expected Ensure to build")
	}

	g.At(3, 3).VX = 5
	s.r.W = 200
	if !g.Ensure(s) {
		t.Fatal("expected Ensure to succeed on a built grid")
	}
	if g.At(3, 3).VX != 5 {
		t.Fatal("Ensure rebuilt a grid that was not invalidated")
	}

	g.Invalidate()
	if g.Built() {
		t.Fatal("Invalidate should not rebuild immediately")
	}
	if g.At(3, 3).VX != 5 {
		t.Fatal("Invalidate should keep the old model until the next Ensure")
	}
	g.Ensure(s)
	if got := g.At(8, 0).X; got != 200 {
		t.Fatalf("rebuilt grid right edge at %v, want 200", got)
	}
	if g.At(3, 3).VX != 0 {
		t.Fatal("rebuild should discard velocities")
	}
}

func TestGridEnsureNotReady(t *testing.T) {
	g := NewGrid(8, 8)
	if g.Ensure(nil) {
		t.Fatal("nil surface should not be ready")
	}
	if g.Ensure(&fakeSurface{}) {
		t.Fatal("unavailable surface should not be ready")
	}
	if g.Ensure(newSurface(0, 0, 0, 100)) {
		t.Fatal("zero-width surface should not be ready")
	}
	if g.Ensure(newSurface(0, 0, 100, -1)) {
		t.Fatal("negative-height surface should not be ready")
	}
	if g.Built() {
		t.Fatal("grid should still be dirty")
	}
}

func TestGridAnchorSurvivesRebuild(t *testing.T) {
	g := NewGrid(4, 4)
	g.Build(Rect{W: 40, H: 40})
	g.SetAnchor(2, 1)

	g.Invalidate()
	g.Build(Rect{W: 80, H: 80})

	i, ok := g.Anchor()
	if !ok || i != g.Index(2, 1) {
		t.Fatalf("anchor = %d,%v after rebuild", i, ok)
	}
	if !g.At(2, 1).Pinned {
		t.Fatal("rebuilt anchor point should be pinned")
	}
	pinned := 0
	for _, p := range g.Points() {
		if p.Pinned {
			pinned++
		}
	}
	if pinned != 1 {
		t.Fatalf("%d pinned points, want 1", pinned)
	}
}

func TestGridSetAnchorUnpinsPrevious(t *testing.T) {
	g := NewGrid(4, 4)
	g.Build(Rect{W: 40, H: 40})
	g.SetAnchor(0, 0)
	g.SetAnchor(4, 4)
	if g.At(0, 0).Pinned {
		t.Fatal("previous anchor still pinned")
	}
	if !g.At(4, 4).Pinned {
		t.Fatal("new anchor not pinned")
	}
	g.ClearAnchor()
	if g.At(4, 4).Pinned {
		t.Fatal("cleared anchor still pinned")
	}
	if _, ok := g.Anchor(); ok {
		t.Fatal("expected no anchor")
	}
}

func TestGridMoveAnchorOnly(t *testing.T) {
	g := NewGrid(2, 2)
	g.Build(Rect{W: 20, H: 20})
	g.MoveAnchor(5, 5)
	for i, p := range g.Points() {
		if p.X != float64(i%3)*10 || p.Y != float64(i/3)*10 {
			t.Fatalf("point %d moved without an anchor", i)
		}
	}

	g.SetAnchor(1, 1)
	g.MoveAnchor(3, -2)
	if p := g.At(1, 1); p.X != 13 || p.Y != 8 {
		t.Fatalf("anchor at (%v,%v), want (13,8)", p.X, p.Y)
	}
	if p := g.At(0, 0); p.X != 0 || p.Y != 0 {
		t.Fatalf("non-anchor point moved to (%v,%v)", p.X, p.Y)
	}
}

func TestGridSetTilesKeepsRelativeAnchor(t *testing.T) {
	g := NewGrid(8, 8)
	g.Build(Rect{W: 100, H: 100})
	g.SetAnchor(6, 2)

	g.SetTiles(4, 4)
	if x, y := g.Tiles(); x != 4 || y != 4 {
		t.Fatalf("tiles = %dx%d, want 4x4", x, y)
	}
	if g.Built() {
		t.Fatal("SetTiles should invalidate")
	}
	g.Ensure(newSurface(0, 0, 100, 100))
	if got := len(g.Points()); got != 25 {
		t.Fatalf("%d points after SetTiles(4,4), want 25", got)
	}
	i, ok := g.Anchor()
	if !ok || i != g.Index(3, 1) {
		t.Fatalf("anchor index %d (%v), want %d", i, ok, g.Index(3, 1))
	}
	if p := g.At(3, 1); !p.Pinned || p.X != 75 || p.Y != 25 {
		t.Fatalf("anchor point = %+v, want pinned at (75,25)", *p)
	}

	g.SetTiles(2, 6)
	g.Ensure(newSurface(0, 0, 100, 100))
	if i, _ := g.Anchor(); i != g.Index(2, 2) {
		t.Fatalf("anchor index %d after 2x6, want %d", i, g.Index(2, 2))
	}
}

func TestGridHas(t *testing.T) {
	g := NewGrid(3, 2)
	for _, tc := range []struct {
		col, row int
		want     bool
	}{
		{0, 0, true},
		{3, 2, true},
		{4, 0, false},
		{0, 3, false},
		{-1, 1, false},
	} {
		if got := g.Has(tc.col, tc.row); got != tc.want {
			t.Fatalf("Has(%d,%d) = %v, want %v", tc.col, tc.row, got, tc.want)
		}
	}
}

func TestGridBounds(t *testing.T) {
	g := NewGrid(2, 2)
	if _, ok := g.Bounds(); ok {
		t.Fatal("unbuilt grid should have no bounds")
	}
	g.Build(Rect{X: 5, Y: 5, W: 10, H: 10})
	g.At(2, 2).Move(4, 6)
	g.At(0, 0).Move(-1, 0)
	b, ok := g.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	if b != (Rect{X: 4, Y: 5, W: 15, H: 16}) {
		t.Fatalf("bounds = %+v", b)
	}
}
