package canvas

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// Dots per terminal cell.
const (
	DotsX = 2
	DotsY = 4
)

// Canvas is a grid of terminal cells drawn with Braille dots. Each cell
// carries one colour: the last one plotted into it.
type Canvas struct {
	cols, rows int
	bits       []uint8
	colors     []colorful.Color
	profile    termenv.Profile
}

// New returns a blank canvas of cols x rows cells using the same colour
// profile as the rest of the UI.
func New(cols, rows int) *Canvas {
	return NewWithProfile(cols, rows, lipgloss.ColorProfile())
}

func NewWithProfile(cols, rows int, p termenv.Profile) *Canvas {
	cols, rows = max(cols, 0), max(rows, 0)
	return &Canvas{
		cols:    cols,
		rows:    rows,
		bits:    make([]uint8, cols*rows),
		colors:  make([]colorful.Color, cols*rows),
		profile: p,
	}
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	clear(c.bits)
	clear(c.colors)
}

// Set lights the dot at (x,y). Dots off the canvas are ignored.
func (c *Canvas) Set(x, y float64, col colorful.Color) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	dx, dy := int(math.Floor(x)), int(math.Floor(y))
	if dx < 0 || dy < 0 || dx >= c.cols*DotsX || dy >= c.rows*DotsY {
		return
	}
	i := (dy/DotsY)*c.cols + dx/DotsX
	c.bits[i] |= 1 << brailleBits[dx%DotsX][dy%DotsY]
	c.colors[i] = col
}

func (c *Canvas) lit(x, y int) bool {
	if x < 0 || y < 0 || x >= c.cols*DotsX || y >= c.rows*DotsY {
		return false
	}
	return c.bits[(y/DotsY)*c.cols+x/DotsX]&(1<<brailleBits[x%DotsX][y%DotsY]) != 0
}

// Line plots a straight segment between two dot positions.
func (c *Canvas) Line(x0, y0, x1, y1 float64, col colorful.Color) {
	n := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if n < 1 || n > 1<<16 {
		c.Set(x0, y0, col)
		return
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		c.Set(x0+(x1-x0)*t, y0+(y1-y0)*t, col)
	}
}

// String renders the canvas, one line per cell row. Adjacent cells of the
// same colour share one styled run.
func (c *Canvas) String() string {
	var out, run strings.Builder
	var runColor colorful.Color

	flush := func() {
		if run.Len() == 0 {
			return
		}
		if c.profile == termenv.Ascii {
			out.WriteString(run.String())
		} else {
			style := c.profile.String(run.String()).Foreground(c.profile.FromColor(runColor))
			out.WriteString(style.String())
		}
		run.Reset()
	}

	for r := 0; r < c.rows; r++ {
		if r > 0 {
			out.WriteByte('\n')
		}
		for col := 0; col < c.cols; col++ {
			i := r*c.cols + col
			if c.bits[i] == 0 {
				flush()
				out.WriteByte(' ')
				continue
			}
			if run.Len() > 0 && c.colors[i] != runColor {
				flush()
			}
			runColor = c.colors[i]
			run.WriteRune(rune(0x2800 + int(c.bits[i])))
		}
		flush()
	}
	return out.String()
}
