package ui

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/olivier-w/wobbly/internal/canvas"
	"github.com/olivier-w/wobbly/internal/desktop"
)

// Title band height and interior pattern pitch, in dots.
const (
	titleBand    = 4
	patternPitch = 8
)

var anchorColor = colorful.Color{R: 1, G: 1, B: 1}

// mesh holds a window's vertex lattice in desktop coordinates.
type mesh struct {
	xTiles, yTiles int
	x, y, z        []float64
}

func (m *mesh) at(col, row int) int { return row*(m.xTiles+1) + col }

// windowMesh samples the window's effect through its vertex query. Windows
// without a live mesh get a flat single tile.
func windowMesh(w *desktop.Window) mesh {
	if eff := w.Effect(); eff != nil {
		cfg := eff.Config()
		m := mesh{xTiles: cfg.XTiles, yTiles: cfg.YTiles}
		n := (m.xTiles + 1) * (m.yTiles + 1)
		m.x, m.y, m.z = make([]float64, n), make([]float64, n), make([]float64, n)
		ok := true
		for row := 0; row <= m.yTiles && ok; row++ {
			for col := 0; col <= m.xTiles; col++ {
				// Sample mid-cell so float error cannot floor into the
				// previous node.
				tx := math.Min(1, (float64(col)+0.5)/float64(m.xTiles))
				ty := math.Min(1, (float64(row)+0.5)/float64(m.yTiles))
				v, live := eff.Deform(tx, ty)
				if !live {
					ok = false
					break
				}
				i := m.at(col, row)
				m.x[i], m.y[i], m.z[i] = w.X+v.X, w.Y+v.Y, v.Z
			}
		}
		if ok {
			return m
		}
	}
	return mesh{
		xTiles: 1, yTiles: 1,
		x: []float64{w.X, w.X + w.W, w.X, w.X + w.W},
		y: []float64{w.Y, w.Y, w.Y + w.H, w.Y + w.H},
		z: make([]float64, 4),
	}
}

// ink reports whether the window texture has a dot at (tx,ty) and whether it
// belongs to the frame rather than the body pattern.
func ink(tx, ty, w, h float64) (lit, frame bool) {
	switch {
	case tx < 1 || tx >= w-1 || ty < 1 || ty >= h-1:
		return true, true
	case ty < titleBand:
		return true, true
	case tx >= w-4 && ty >= h-4:
		return true, true
	}
	if int(tx)%patternPitch == 0 || int(ty)%patternPitch == 0 {
		return int(tx+ty)%2 == 0, false
	}
	return false, false
}

// drawWindow rasterises the window's texture through its deformed mesh. Each
// texture dot is placed by bilinear interpolation inside its tile.
func drawWindow(cv *canvas.Canvas, w *desktop.Window, focused bool) {
	if w.W <= 0 || w.H <= 0 {
		return
	}
	m := windowMesh(w)

	value := 0.75
	if focused {
		value = 1
	}
	hue := math.Mod(w.Hue, 1) * 360
	if hue < 0 {
		hue += 360
	}
	frameColor := colorful.Hsv(hue, 0.55, value)
	bodyColor := colorful.Hsv(hue, 0.45, value*0.55)

	const step = 0.5
	for ty := 0.0; ty < w.H; ty += step {
		v := ty / w.H * float64(m.yTiles)
		row := min(int(v), m.yTiles-1)
		fv := v - float64(row)
		for tx := 0.0; tx < w.W; tx += step {
			lit, frame := ink(tx, ty, w.W, w.H)
			if !lit {
				continue
			}
			u := tx / w.W * float64(m.xTiles)
			col := min(int(u), m.xTiles-1)
			fu := u - float64(col)

			i00, i10 := m.at(col, row), m.at(col+1, row)
			i01, i11 := m.at(col, row+1), m.at(col+1, row+1)
			x := lerp(lerp(m.x[i00], m.x[i10], fu), lerp(m.x[i01], m.x[i11], fu), fv)
			y := lerp(lerp(m.y[i00], m.y[i10], fu), lerp(m.y[i01], m.y[i11], fu), fv)

			c := bodyColor
			if frame {
				c = frameColor
			}
			cv.Set(x, y, c)
		}
	}

	// The anchor vertex sits above the rest of the mesh.
	for i, z := range m.z {
		if z > 0 {
			cv.Line(m.x[i]-2, m.y[i], m.x[i]+2, m.y[i], anchorColor)
			cv.Line(m.x[i], m.y[i]-2, m.x[i], m.y[i]+2, anchorColor)
		}
	}
}

func drawDesktop(cv *canvas.Canvas, d *desktop.Desktop) {
	cv.Clear()
	focused := d.Focused()
	for _, w := range d.Windows() {
		drawWindow(cv, w, w == focused)
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
