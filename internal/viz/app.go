package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/san-kum/orrery/internal/debris"
	"github.com/san-kum/orrery/internal/pick"
	"github.com/san-kum/orrery/internal/sim"
)

const (
	rotateStep = 0.15
	minCols    = 20
	minRows    = 8
)

type TickMsg time.Time

// Model is the bubbletea front end. It owns the frame clock and feeds
// mouse events to the pointer dispatcher.
type Model struct {
	driver        *sim.Driver
	world         *sim.World
	dispatcher    *pick.Dispatcher
	renderer      *SceneRenderer
	canvas        *Canvas
	interval      time.Duration
	clock         *sim.Clock
	width, height int
	fps           float64
	showHelp      bool
	err           error
	log           *log.Logger
}

// NewModel wires a driver to a braille canvas sized for an 80x24 terminal
// until the first WindowSizeMsg arrives.
func NewModel(d *sim.Driver, theme Theme, interval time.Duration, logger *log.Logger) Model {
	m := Model{
		driver:   d,
		world:    d.World(),
		interval: interval,
		clock:    &sim.Clock{},
		log:      logger,
	}
	m.canvas = NewCanvas(minCols, minRows)
	m.renderer = NewSceneRenderer(m.canvas, theme)
	m.dispatcher = m.world.Dispatcher(m.canvas.Viewport())
	d.SetRenderer(m.renderer)
	m.resize(80, 24)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		dt := m.clock.Advance(time.Time(msg))
		if dt > 0 {
			m.fps = 0.9*m.fps + 0.1/dt
		}
		if err := m.driver.Tick(dt); err != nil {
			m.err = err
			m.log.Error("frame failed", "err", err)
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctl := m.world.Controls
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.driver.TogglePause()
	case "+", "=":
		ctl.ZoomIn()
	case "-", "_":
		ctl.ZoomOut()
	case "left", "h":
		ctl.Rotate(-rotateStep, 0)
	case "right", "l":
		ctl.Rotate(rotateStep, 0)
	case "up", "k":
		ctl.Rotate(0, -rotateStep)
	case "down", "j":
		ctl.Rotate(0, rotateStep)
	case "[":
		m.setTimeScale(m.driver.TimeScale() / 2)
	case "]":
		m.setTimeScale(m.driver.TimeScale() * 2)
	case "o":
		m.renderer.ShowOrbits = !m.renderer.ShowOrbits
	case "t":
		m.renderer.Theme = NextTheme(m.renderer.Theme.Name)
		m.log.Debug("theme changed", "theme", m.renderer.Theme.Name)
	case "esc":
		m.world.UI.Close()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m Model) setTimeScale(s float64) {
	if s < 1.0/64 || s > 1024 {
		return
	}
	if err := m.driver.SetTimeScale(s); err != nil {
		m.log.Warn("time scale rejected", "scale", s, "err", err)
	}
}

// handleMouse converts a terminal cell to the centre of its sub-pixel block.
func (m Model) handleMouse(msg tea.MouseMsg) {
	col, row := msg.X-canvasPadX, msg.Y-canvasPadY
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		if msg.Action == tea.MouseActionMotion {
			m.world.UI.Tooltip.Opacity = 0
		}
		return
	}
	x, y := float64(col*2+1), float64(row*4+2)

	switch {
	case msg.Action == tea.MouseActionMotion:
		m.dispatcher.Dispatch(pick.PointerMoved{X: x, Y: y})
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.dispatcher.Dispatch(pick.PointerClicked{X: x, Y: y})
	case msg.Button == tea.MouseButtonWheelUp:
		m.world.Controls.ZoomIn()
	case msg.Button == tea.MouseButtonWheelDown:
		m.world.Controls.ZoomOut()
	}
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	cols := w - sidePanelWidth - 2*canvasPadX - 2
	rows := h - 2*canvasPadY
	if cols < minCols {
		cols = minCols
	}
	if rows < minRows {
		rows = minRows
	}
	m.canvas.Resize(cols, rows)
	m.dispatcher.Resize(m.canvas.Viewport())
}

// Err returns the error that stopped the program, if any.
func (m Model) Err() error { return m.err }

// View renders the canvas and the side panel.
func (m Model) View() string {
	theme := m.renderer.Theme
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Foreground(theme.Accent).Render("ORRERY") + "\n")
	if m.driver.Paused() {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	} else {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", m.world.Elapsed)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("x%g", m.driver.TimeScale())) + "\n")
	s.WriteString(labelStyle.Render("FPS") + valueStyle.Render(fmt.Sprintf("%.0f", m.fps)) + "\n")
	s.WriteString(labelStyle.Render("Meteors") + valueStyle.Render(fmt.Sprintf("%d / %d",
		len(m.world.Debris.Live(debris.ShootingStar)), len(m.world.Debris.Live(debris.Meteorite)))) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(theme.Name) + "\n")

	if panel := m.world.UI.Panel; panel.Open {
		title := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render(panel.Title)
		body := lipgloss.NewStyle().Width(sidePanelWidth - 4).Foreground(theme.Text).Render(StripHTML(panel.HTML))
		s.WriteString("\n" + title + "\n" + lipgloss.NewStyle().Foreground(theme.Muted).Render(panel.Image) + "\n\n" + body + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render("\nSPACE pause   Q quit\n←→↑↓ rotate   +/- zoom\n[ ] speed     T theme\nO orbits      ESC close\nmouse: hover / click a planet"))
	} else {
		s.WriteString(helpStyle.Render("\n? help"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(s.String()))
}
