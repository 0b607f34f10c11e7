package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/osokolkov/steploop/internal/core"
	"github.com/osokolkov/steploop/internal/registry"
	"github.com/osokolkov/steploop/internal/storage"
	"github.com/osokolkov/steploop/internal/timestep"
)

var hudStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// Model is the Bubble Tea model for running timestep demos. Frames
// arrive at the render rate; each frame the scheduler decides how many
// fixed-interval updates are due and hands back the interpolation
// fraction for the in-between render.
type Model struct {
	demo       registry.Demo
	sched      *timestep.Scheduler
	clock      timestep.Clock
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       *KeyMapper
	inputFrame core.InputFrame
	demoState  core.DemoState
	lastFrame  timestep.FrameResult
	stats      timestep.Stats
	startedAt  time.Time
	quitting   bool
	runSaved   bool // Whether the run report has been saved on exit
}

// NewModel creates a new Bubble Tea model for the given demo.
func NewModel(demo registry.Demo, store *storage.Store, cfg core.RuntimeConfig) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	sched, err := timestep.NewScheduler(cfg.UpdateRate, timestep.WithMaxCatchUp(cfg.MaxCatchUp))
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}

	clock := timestep.SystemClock

	m := Model{
		demo:       demo,
		sched:      sched,
		clock:      clock,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		startedAt:  clock.Now(),
	}
	m.demo.Reset(m.config)
	m.demoState = m.demo.State()
	return m, nil
}

// Init starts the frame loop. The scheduler anchors its step grid on
// the first Advance, so the time between Init and the first frame does
// not produce a burst of catch-up updates.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.config.FrameRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionToggleLerp:
		// Interpolation is a platform concern, not a demo one
		m.config.Interpolate = !m.config.Interpolate
	case core.ActionNone:
		// Ignore unbound keys
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	// Reserve the bottom line for the HUD
	h := msg.Height - 1
	if h < 1 {
		h = 1
	}

	m.config.ScreenW = msg.Width
	m.config.ScreenH = h
	m.screen.Resize(msg.Width, h)

	// Note: this resets the demo - could be improved to preserve state
	if !m.demoState.Done {
		m.demo.Reset(m.config)
		m.demoState = m.demo.State()
	}

	return m, nil
}

// handleFrame processes one render frame: run however many fixed
// updates are due, then remember the interpolation fraction for View.
func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) {
		m.config.Seed = time.Now().UnixNano()
		m.demo.Reset(m.config)
		m.demoState = m.demo.State()
		m.sched.Start(m.clock.Now())
		m.stats = timestep.Stats{}
		m.startedAt = m.clock.Now()
		m.runSaved = false
		m.inputFrame.Clear()
		return m, frameCmd(m.config.FrameRate)
	}

	res := m.sched.Advance(m.clock.Now(), func(dt time.Duration) {
		result := m.demo.Step(m.inputFrame, dt)
		m.demoState = result.State
		// Input applies to the first step of a catch-up burst only
		m.inputFrame.Clear()
	})

	m.lastFrame = res
	m.stats.Frames++
	m.stats.Renders++
	m.stats.Updates += uint64(res.Steps)
	m.stats.Dropped += uint64(res.Dropped)

	return m, frameCmd(m.config.FrameRate)
}

// saveRun persists the run report. Best effort: quitting proceeds
// regardless.
func (m *Model) saveRun() {
	if m.store == nil || m.runSaved {
		return
	}
	wall := m.clock.Now().Sub(m.startedAt)
	//nolint:errcheck // Best-effort save on the way out
	m.store.SaveRun(storage.RunReport{
		DemoID:     m.demo.ID(),
		UpdateRate: m.config.UpdateRate,
		FrameRate:  m.config.FrameRate,
		MaxCatchUp: m.config.MaxCatchUp,
		Frames:     int64(m.stats.Frames),
		Updates:    int64(m.stats.Updates),
		Renders:    int64(m.stats.Renders),
		Dropped:    int64(m.stats.Dropped),
		WallMillis: wall.Milliseconds(),
	})
	m.runSaved = true
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	alpha := m.lastFrame.Alpha
	if !m.config.Interpolate {
		alpha = 0
	}

	m.screen.Clear()
	m.demo.Render(m.screen, alpha)

	return RenderScreen(m.screen) + "\n" + m.hud(alpha)
}

// hud renders the one-line status bar under the demo area.
func (m Model) hud(alpha float64) string {
	interp := "on"
	if !m.config.Interpolate {
		interp = "off"
	}
	status := fmt.Sprintf(
		"%s | %d ups / %d fps | alpha %.2f | dropped %d | [i]nterp %s  [p]ause  [r]estart  [q]uit",
		m.demo.ID(), m.config.UpdateRate, m.config.FrameRate,
		alpha, m.stats.Dropped, interp,
	)
	return hudStyle.Render(status)
}

// Run starts the Bubble Tea program with the given demo.
func Run(demo registry.Demo, store *storage.Store, cfg core.RuntimeConfig) error {
	model, err := NewModel(demo, store, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
