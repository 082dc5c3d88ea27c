package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/five82/wxsched/internal/prefs"
	"github.com/five82/wxsched/internal/state"
)

// View represents the current active pane.
type View int

const (
	ViewLastHeard View = iota
	ViewHistory
	ViewSchedule
)

var viewOrder = []View{ViewLastHeard, ViewHistory, ViewSchedule}

func (v View) title() string {
	switch v {
	case ViewHistory:
		return "Executed"
	case ViewSchedule:
		return "Schedule"
	default:
		return "Last heard"
	}
}

// Options configures the monitor.
type Options struct {
	Context   context.Context
	Store     *state.Store
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
	DryRun    bool

	// Disconnect queues a force disconnect; false means it was not queued.
	Disconnect func() bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	store      *state.Store
	prefsPath  string
	pollTick   time.Duration
	dryRun     bool
	disconnect func() bool
	keys       keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	notice      string

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	viewport viewport.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:         ctx,
		store:       opts.Store,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		dryRun:      opts.DryRun,
		disconnect:  opts.Disconnect,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(opts.ThemeName),
		currentView: ViewLastHeard,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyHeight := maxInt(1, m.height-headerLines)
		if !m.ready {
			m.viewport = viewport.New(m.width, bodyHeight)
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = bodyHeight
		}
		m.ready = true
		m.updateViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.updateViewport()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.saveTheme()
		m.updateViewport()

	case key.Matches(msg, m.keys.Disconnect):
		m.requestDisconnect()

	case key.Matches(msg, m.keys.Tab):
		m.switchView(m.stepView(1))
	case key.Matches(msg, m.keys.ShiftTab):
		m.switchView(m.stepView(-1))
	case key.Matches(msg, m.keys.ViewLastHeard):
		m.switchView(ViewLastHeard)
	case key.Matches(msg, m.keys.ViewHistory):
		m.switchView(ViewHistory)
	case key.Matches(msg, m.keys.ViewSchedule):
		m.switchView(ViewSchedule)

	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfPageUp()
	}
	return m, nil
}

func (m Model) stepView(delta int) View {
	for i, v := range viewOrder {
		if v == m.currentView {
			n := len(viewOrder)
			return viewOrder[((i+delta)%n+n)%n]
		}
	}
	return ViewLastHeard
}

func (m *Model) switchView(v View) {
	if v == m.currentView {
		return
	}
	m.currentView = v
	m.updateViewport()
	m.viewport.GotoTop()
}

func (m *Model) requestDisconnect() {
	switch {
	case m.disconnect == nil:
		m.notice = "Force disconnect is not available"
	case m.disconnect():
		m.notice = "Force disconnect queued"
	default:
		m.notice = "Busy, force disconnect not queued"
	}
}

// saveTheme keeps the other preferences intact.
func (m Model) saveTheme() {
	if m.prefsPath == "" {
		return
	}
	p, _ := prefs.Load(m.prefsPath)
	p.Theme = m.theme.Name
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Warn("save theme", "err", err)
	}
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.ctx.Err() != nil {
		return m, tea.Quit
	}
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

func (m *Model) updateViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderContent())
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		return nil
	}
	return err
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
