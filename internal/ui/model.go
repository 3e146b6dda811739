package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/wobbly/internal/canvas"
	"github.com/olivier-w/wobbly/internal/desktop"
	"github.com/olivier-w/wobbly/internal/util"
)

// Rows above the canvas.
const headerRows = 1

// Keyboard glide distance and the preset sizes "r" cycles through, in dots.
const glideStep = 12

var presetSizes = [][2]float64{{56, 32}, {80, 40}, {40, 48}, {100, 24}}

type drag struct {
	win  *desktop.Window
	op   desktop.GrabOp
	x, y float64
}

// Model is the Bubbletea model hosting the wobbly desktop.
type Model struct {
	desk  *desktop.Desktop
	fps   int
	keys  keyMap
	help  help.Model
	glide glide
	drag  drag

	width    int
	height   int
	ticking  bool
	sizeIdx  int
	status   string
	quitting bool
}

// New creates a Model for d, delivering frames at fps while anything moves.
func New(d *desktop.Desktop, fps int) Model {
	if fps < 1 {
		fps = 60
	}
	return Model{
		desk:  d,
		fps:   fps,
		keys:  newKeyMap(),
		help:  help.New(),
		glide: newGlide(fps),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("wobbly")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.handleMsg(msg)
	return next, cmd
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case frameMsg:
		m.desk.Tick()
		gliding := m.glide.step(m.desk)
		if m.desk.Animating() || gliding {
			return m, frameCmd(m.fps)
		}
		m.ticking = false
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.glide.cancel(m.desk)
		m.desk.DisableAll()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Focus):
		m.desk.FocusNext()

	case key.Matches(msg, m.keys.Left):
		return m.startGlide(-glideStep, 0)
	case key.Matches(msg, m.keys.Right):
		return m.startGlide(glideStep, 0)
	case key.Matches(msg, m.keys.Up):
		return m.startGlide(0, -glideStep)
	case key.Matches(msg, m.keys.Down):
		return m.startGlide(0, glideStep)

	case key.Matches(msg, m.keys.More):
		m.retile(1)
	case key.Matches(msg, m.keys.Fewer):
		m.retile(-1)

	case key.Matches(msg, m.keys.Resize):
		if w := m.desk.Focused(); w != nil {
			m.sizeIdx = (m.sizeIdx + 1) % len(presetSizes)
			sz := presetSizes[m.sizeIdx]
			m.desk.Resize(w, sz[0], sz[1])
			m.status = fmt.Sprintf("%s resized to %gx%g", w.Title, w.W, w.H)
		}

	case key.Matches(msg, m.keys.Disable):
		m.glide.cancel(m.desk)
		m.desk.DisableAll()
		m.status = "effects removed"

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) startGlide(dx, dy float64) (Model, tea.Cmd) {
	w := m.desk.Focused()
	if w == nil || m.drag.win != nil {
		return m, nil
	}
	m.glide.push(m.desk, w, dx, dy)
	return m.startTicking()
}

func (m *Model) retile(delta int) {
	cfg := m.desk.Config()
	x, y := cfg.XTiles+delta, cfg.YTiles+delta
	if err := m.desk.SetTiles(x, y); err != nil {
		m.status = "tiles must be at least 1"
		return
	}
	m.status = "tiles " + util.FormatTiles(x, y)
}

// dotPos maps a terminal cell to the centre of its dots on the canvas.
func dotPos(x, y int) (float64, float64) {
	return float64(x*canvas.DotsX) + 1, float64((y-headerRows)*canvas.DotsY) + 2
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	x, y := dotPos(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.drag.win != nil {
			return m, nil
		}
		w := m.desk.WindowAt(x, y)
		if w == nil {
			return m, nil
		}
		if m.glide.win == w {
			m.glide.cancel(m.desk)
		}
		m.desk.Raise(w)
		op := desktop.GrabMoving
		if w.InResizeHandle(x, y) {
			op = desktop.GrabResizing
		}
		m.drag = drag{win: w, op: op, x: x, y: y}
		if m.desk.BeginGrab(w, op, x, y) {
			return m.startTicking()
		}

	case tea.MouseActionMotion:
		if m.drag.win == nil {
			return m, nil
		}
		dx, dy := x-m.drag.x, y-m.drag.y
		m.drag.x, m.drag.y = x, y
		if m.drag.op == desktop.GrabResizing {
			m.desk.Resize(m.drag.win, m.drag.win.W+dx, m.drag.win.H+dy)
		} else {
			m.desk.MoveBy(m.drag.win, dx, dy)
		}

	case tea.MouseActionRelease:
		if m.drag.win == nil {
			return m, nil
		}
		m.desk.EndGrab(m.drag.win, m.drag.op)
		m.drag = drag{}
	}
	return m, nil
}

// startTicking begins the frame loop unless one is already running.
func (m Model) startTicking() (Model, tea.Cmd) {
	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, frameCmd(m.fps)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := "  " + headerStyle.Render("wobbly")
	if w := m.desk.Focused(); w != nil {
		header += "  " + titleStyle.Render(w.Title)
	}
	header += "  " + statusStyle.Render(renderStatus(m.desk, m.status))

	footer := "  " + helpStyle.Render(m.help.View(m.keys))

	rows := m.height - headerRows - lipgloss.Height(footer)
	if m.width < 1 || rows < 1 {
		return lipgloss.JoinVertical(lipgloss.Left, header, footer)
	}
	cv := canvas.New(m.width, rows)
	drawDesktop(cv, m.desk)

	return lipgloss.JoinVertical(lipgloss.Left, header, cv.String(), footer)
}
