// Package tui drives a holographic run interactively in the terminal.
package tui

import (
	"fmt"
	"math/cmplx"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/holosim/internal/dynamo"
)

const (
	historyCapacity = 400
	frameInterval   = time.Second / 30
	defaultBatch    = 50
	maxBatch        = 5000
)

type TickMsg time.Time

// StartFunc begins a fresh run; it is called again on reset.
type StartFunc func() (*dynamo.Run, error)

// Model advances a run a batch of steps per frame.
type Model struct {
	start   StartFunc
	model   dynamo.ForceModel
	run     *dynamo.Run
	last    dynamo.Record
	batch   int
	running bool
	err     error

	forceHistory []float64
	xHistory     []float64
}

func NewModel(start StartFunc, model dynamo.ForceModel) (Model, error) {
	run, err := start()
	if err != nil {
		return Model{}, err
	}
	return Model{
		start:        start,
		model:        model,
		run:          run,
		batch:        defaultBatch,
		running:      true,
		forceHistory: make([]float64, 0, historyCapacity),
		xHistory:     make([]float64, 0, historyCapacity),
	}, nil
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
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
		case "up", "k":
			m.batch = min(m.batch*2, maxBatch)
		case "down", "j":
			m.batch = max(m.batch/2, 1)
		}
	case TickMsg:
		if m.running && !m.run.Done() && m.err == nil {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < m.batch && !m.run.Done(); i++ {
		rec, err := m.run.Next()
		if err != nil {
			m.err = err
			return
		}
		m.last = rec
	}
	m.forceHistory = pushCapped(m.forceHistory, m.last.Force.Norm())
	m.xHistory = pushCapped(m.xHistory, m.last.Pos.X)
}

func (m *Model) reset() {
	run, err := m.start()
	if err != nil {
		m.err = err
		return
	}
	m.run = run
	m.last = dynamo.Record{}
	m.err = nil
	m.forceHistory = m.forceHistory[:0]
	m.xHistory = m.xHistory[:0]
}

func pushCapped(h []float64, v float64) []float64 {
	if len(h) == historyCapacity {
		copy(h, h[1:])
		h = h[:len(h)-1]
	}
	return append(h, v)
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return StatusPaused.Render("ERROR: " + m.err.Error())
	case m.run.Done():
		return StatusDone.Render("DONE")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	default:
		return StatusRunning.Render("RUNNING")
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	cfg := m.run.Config()
	st := m.run.State()

	var graphs strings.Builder
	if len(m.forceHistory) > 1 {
		graphs.WriteString(graphStyle.Render(asciigraph.Plot(m.forceHistory,
			asciigraph.Height(6), asciigraph.Width(50), asciigraph.Caption("|F| (N)"))))
		graphs.WriteString("\n")
		graphs.WriteString(graphStyle.Render(asciigraph.Plot(m.xHistory,
			asciigraph.Height(6), asciigraph.Width(50), asciigraph.Caption("x (m)"))))
	} else {
		graphs.WriteString(Subtle.Render("waiting for samples..."))
	}

	h := m.model.Sample(st.Pos, st.T)
	intensity := cmplx.Abs(h) * cmplx.Abs(h)

	var s strings.Builder
	s.WriteString(Title.Render("HOLOGRAPHIC FORCE") + "\n")
	s.WriteString(m.status() + "\n\n")
	s.WriteString(ProgressBar(st.T/cfg.Duration, 20) + "\n\n")
	s.WriteString(Metric("Step", fmt.Sprintf("%d", st.Step)) + "\n")
	s.WriteString(Metric("Time", fmt.Sprintf("%.3fs", st.T)) + "\n")
	s.WriteString(Metric("Position", formatVec(st.Pos)) + "\n")
	s.WriteString(Metric("Velocity", formatVec(st.Vel)) + "\n")
	s.WriteString(Metric("Force", formatVec(m.last.Force)) + "\n")
	s.WriteString(Metric("Intensity", fmt.Sprintf("%.3f", intensity)) + "\n")
	s.WriteString(Metric("Field", fmt.Sprintf("%.2f%+.2fi", real(h), imag(h))) + "\n")
	s.WriteString(Metric("Steps/frame", fmt.Sprintf("%d", m.batch)) + "\n")
	s.WriteString(KeyHint.Render("\nSP:Pause R:Reset Q:Quit ↑↓:Speed"))

	return lipgloss.JoinHorizontal(lipgloss.Top, graphs.String(), Panel.Render(s.String()))
}

func formatVec(v dynamo.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// Run starts the interactive program and blocks until it exits.
func Run(start StartFunc, model dynamo.ForceModel) error {
	m, err := NewModel(start, model)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
