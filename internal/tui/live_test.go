package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/holosim/internal/dynamo"
	"github.com/san-kum/holosim/internal/force"
	"github.com/san-kum/holosim/internal/integrators"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	model := force.Default()
	sim := dynamo.New(model, integrators.NewSemiImplicitEuler())
	cfg := dynamo.DefaultConfig()
	cfg.Duration = 0.2
	cfg.InitialPos = dynamo.Vec3{X: 0.5}

	m, err := NewModel(func() (*dynamo.Run, error) { return sim.Start(cfg) }, model)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func send(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestTickAdvancesBatch(t *testing.T) {
	m := newTestModel(t)
	m = send(m, TickMsg(time.Now()))

	if st := m.run.State(); st.Step != defaultBatch {
		t.Errorf("expected %d steps, got %d", defaultBatch, st.Step)
	}
	if len(m.forceHistory) != 1 {
		t.Errorf("expected one history sample, got %d", len(m.forceHistory))
	}

	// 200 steps total
	for i := 0; i < 10; i++ {
		m = send(m, TickMsg(time.Now()))
	}
	if !m.run.Done() || m.run.State().Step != 200 {
		t.Errorf("expected finished run at step 200, got %d", m.run.State().Step)
	}
	if !strings.Contains(m.View(), "DONE") {
		t.Error("expected DONE status")
	}
}

func TestPauseAndSpeed(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeySpace})
	m = send(m, TickMsg(time.Now()))
	if m.run.State().Step != 0 {
		t.Error("paused model advanced")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected PAUSED status")
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.batch != defaultBatch*2 {
		t.Errorf("expected batch %d, got %d", defaultBatch*2, m.batch)
	}
	for i := 0; i < 20; i++ {
		m = send(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.batch != 1 {
		t.Errorf("expected batch floor 1, got %d", m.batch)
	}
}

func TestReset(t *testing.T) {
	m := newTestModel(t)
	m = send(m, TickMsg(time.Now()))
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})

	if m.run.State().Step != 0 || len(m.forceHistory) != 0 {
		t.Error("reset did not restart the run")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestProgressBar(t *testing.T) {
	if got := ProgressBar(0.5, 10); got != "[=====-----]  50%" {
		t.Errorf("unexpected bar %q", got)
	}
	if got := ProgressBar(2, 4); got != "[====] 100%" {
		t.Errorf("unexpected clamped bar %q", got)
	}
}
