// Package tui renders the lamp in a terminal: a braille-canvas tank tinted
// with the frame's primary color next to a live telemetry column.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/solhav/moodlamp/internal/engine"
	"github.com/solhav/moodlamp/internal/signal"
)

const (
	canvasWidth     = 46 // character cells
	canvasHeight    = 22
	historyCapacity = 600
	nudgeStep       = 0.1
)

// TickMsg drives the frame loop.
type TickMsg time.Time

// Model is the bubbletea state for the terminal lamp.
type Model struct {
	eng    *engine.Engine
	manual *signal.Manual

	signalName string
	period     float64
	seed       int64
	dt         float64
	fps        int

	canvas        *Canvas
	energyHistory []float64
	running       bool
	err           error
}

// NewModel wires a lamp view around eng. signalName names the generator the
// engine is currently running; the number keys rebuild sources with the same
// period and seed so switching stays reproducible.
func NewModel(eng *engine.Engine, signalName string, period float64, seed int64, dt float64, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	return Model{
		eng:           eng,
		manual:        signal.NewManual(),
		signalName:    signalName,
		period:        period,
		seed:          seed,
		dt:            dt,
		fps:           fps,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		energyHistory: make([]float64, 0, historyCapacity),
		running:       true,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles key input and advances the engine on each frame tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "1":
			m.setSignal("sine")
		case "2":
			m.setSignal("noise")
		case "3":
			m.setSignal("step")
		case "4":
			m.setSignal("still")
		case "m":
			m.signalName = "manual"
			m.eng.SetSource(m.manual)
		case "left":
			m.nudge(-nudgeStep, 0, 0)
		case "right":
			m.nudge(nudgeStep, 0, 0)
		case "up":
			m.nudge(0, nudgeStep, 0)
		case "down":
			m.nudge(0, -nudgeStep, 0)
		case "+", "=":
			m.nudge(0, 0, nudgeStep)
		case "-", "_":
			m.nudge(0, 0, -nudgeStep)
		}
	case TickMsg:
		if m.running {
			if _, err := m.eng.Tick(m.dt); err != nil {
				m.err = err
				m.running = false
			} else {
				m.err = nil
				m.energyHistory = append(m.energyHistory, m.eng.Telemetry().Energy)
				if len(m.energyHistory) > historyCapacity {
					m.energyHistory = m.energyHistory[1:]
				}
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) setSignal(name string) {
	src, err := signal.New(name, m.period, m.seed)
	if err != nil {
		m.err = err
		return
	}
	m.signalName = name
	m.eng.SetSource(src)
}

// nudge steers the manual target; ignored while a generator is driving.
func (m *Model) nudge(dv, da, dd float64) {
	if m.signalName != "manual" {
		return
	}
	m.manual.Nudge(dv, da, dd)
}

// reset replays the run from zero: engine state, generator clocks and the
// energy chart all start over.
func (m *Model) reset() {
	m.eng.Reset()
	m.manual = signal.NewManual()
	if m.signalName == "manual" {
		m.eng.SetSource(m.manual)
	} else {
		m.setSignal(m.signalName)
	}
	m.energyHistory = m.energyHistory[:0]
	m.err = nil
}

// draw repaints the tank: glass border plus one filled circle per blob.
func (m *Model) draw() {
	m.canvas.Clear()
	pw, ph := m.canvas.PixelSize()

	side := min(pw, ph) - 2
	ox := (pw - side) / 2
	oy := (ph - side) / 2

	m.canvas.DrawLine(ox, oy, ox+side, oy)
	m.canvas.DrawLine(ox+side, oy, ox+side, oy+side)
	m.canvas.DrawLine(ox+side, oy+side, ox, oy+side)
	m.canvas.DrawLine(ox, oy+side, ox, oy)

	for _, b := range m.eng.Blobs() {
		px := ox + int(b.Pos.X*float64(side))
		py := oy + int((1-b.Pos.Y)*float64(side))
		r := int(b.Radius * 0.35 * float64(side))
		m.canvas.FillCircle(px, py, max(r, 1))
	}
}

// View renders the lamp next to the stats column.
func (m Model) View() string {
	m.draw()

	p := m.eng.Params()
	tel := m.eng.Telemetry()

	canvasView := canvasStyle.
		Foreground(lipgloss.Color(p.HSVPrimary.Hex())).
		Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("MOODLAMP") + "\n")

	status := statusRunning.Render("RUNNING")
	if m.err != nil {
		status = statusError.Render("ERROR " + m.err.Error())
	} else if !m.running {
		status = statusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", tel.Elapsed))
	row("Valence", fmt.Sprintf("%+.2f", tel.Smoothed.Valence))
	row("Arousal", fmt.Sprintf("%+.2f", tel.Smoothed.Arousal))
	row("Dominance", fmt.Sprintf("%+.2f", tel.Smoothed.Dominance))
	row("Energy", fmt.Sprintf("%.3f", tel.Energy))
	row("Blobs", fmt.Sprintf("%d", tel.BlobCount))
	row("Turbulence", fmt.Sprintf("%.2f", tel.Turbulence))
	row("Signal", m.signalName)
	if m.signalName == "manual" {
		t := m.manual.Target()
		row("Steering", fmt.Sprintf("V%+.1f A%+.1f D%+.1f", t.Valence, t.Arousal, t.Dominance))
	}

	s.WriteString(helpStyle.Render("\n──────────────────────\n" +
		"SP:Pause R:Reset Q:Quit\n" +
		"1:Sine 2:Noise 3:Step 4:Still\n" +
		"M:Manual ←→:Val ↑↓:Aro +-:Dom"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
