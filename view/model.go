// Package view hosts the choreography in a terminal: a bubbletea program
// supplies the frame ticks and key presses, and a Renderer draws each frame.
package view

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-g-everett/cubedance/dance"
)

type tickMsg time.Time

var statusStyle = lipgloss.NewStyle().Faint(true)

// Model is the bubbletea model driving a dance.Controller.
type Model struct {
	controller *dance.Controller
	zoom       *dance.DampedZoom
	renderer   *Renderer
	interval   time.Duration
	resetKey   string
	start      time.Time

	frame  *dance.Frame
	width  int
	height int
}

// NewModel creates a Model. Runtime is measured from start.
func NewModel(controller *dance.Controller, zoom *dance.DampedZoom, config dance.Config, start time.Time) *Model {
	m := new(Model)
	m.controller = controller
	m.zoom = zoom
	m.renderer = NewRenderer()
	m.interval = time.Duration(float64(time.Second) / config.Display.FrameRate)
	m.resetKey = config.Display.ResetKey
	m.start = start
	return m
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		runtimeMs := time.Time(msg).Sub(m.start).Milliseconds()
		m.frame = m.controller.CalculateFrame(runtimeMs)
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Width > 0 && msg.Height > 1 {
			m.controller.Scene().Camera.Aspect = GridAspect(msg.Width, msg.Height-1)
		}

	case tea.KeyMsg:
		if m.isResetKey(msg) {
			m.controller.RestartChoreography()
			log.Printf("Restarted, generation %d", m.controller.Generation())
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "+", "=":
			m.zoom.In()
		case "-", "_":
			m.zoom.Out()
		}
	}
	return m, nil
}

func (m *Model) isResetKey(msg tea.KeyMsg) bool {
	if msg.String() == m.resetKey {
		return true
	}
	return msg.Type == tea.KeySpace && (m.resetKey == " " || m.resetKey == "space")
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.frame == nil || m.width == 0 || m.height < 2 {
		return "warming up..."
	}
	status := fmt.Sprintf("gen %d  t=%.1fs  zoom %.2f  [space] restart  [+/-] zoom  [q] quit",
		m.frame.Generation, float64(m.frame.RuntimeMs)/1000, m.zoom.Zoom())
	return m.renderer.Render(m.frame, m.width, m.height-1) + "\n" + statusStyle.Render(status)
}

// Frame returns the most recently calculated frame.
func (m *Model) Frame() *dance.Frame {
	return m.frame
}
