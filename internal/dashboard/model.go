package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/pidash/internal/clock"
	"github.com/rileyhilliard/pidash/internal/errors"
	"github.com/rileyhilliard/pidash/internal/fleet"
	"github.com/rileyhilliard/pidash/internal/logger"
	"github.com/rileyhilliard/pidash/internal/selection"
	"github.com/rileyhilliard/pidash/internal/simulator"
	"github.com/rileyhilliard/pidash/internal/widget"
)

// Layout constants
const (
	browserWidth = 30
	headerHeight = 2
	footerHeight = 2
)

// Options configures a Model.
type Options struct {
	// Refresh is the tick period. Zero uses simulator.DefaultInterval.
	Refresh time.Duration
	// Backfill is how many historical samples a new widget is seeded with.
	Backfill int
	// SnapshotDir is where the snapshot key writes SVG files.
	SnapshotDir string
	// Layout sizes widget charts when their tier changes. It must also be
	// installed as the registry's listener (Layout.Option). Without it the
	// model resizes charts itself.
	Layout *Layout
	Clock  clock.Clock
	Log    logger.Logger
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	fleet *fleet.Fleet
	tree  *selection.Tree
	reg   *widget.Registry
	feed  *simulator.Feed
	clock clock.Clock
	log   logger.Logger
	opts  Options

	keys KeyMap
	help help.Model

	focus        Focus
	cursor       int
	widgetCursor int

	width, height int
	zone          viewport.Model
	zoneReady     bool

	lastUpdate time.Time
	status     string
	statusErr  bool
	showHelp   bool
	quitting   bool
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// snapshotMsg reports the outcome of a snapshot export.
type snapshotMsg struct {
	path string
	err  error
}

// NewModel wires a dashboard over the fleet. reg receives every widget the
// browser opens; feed supplies their readings.
func NewModel(f *fleet.Fleet, reg *widget.Registry, feed *simulator.Feed, opts Options) Model {
	if opts.Refresh <= 0 {
		opts.Refresh = simulator.DefaultInterval
	}
	if opts.SnapshotDir == "" {
		opts.SnapshotDir = "."
	}
	if opts.Log == nil {
		opts.Log = logger.Noop()
	}
	if opts.Layout != nil {
		opts.Layout.Bind(reg)
	}
	return Model{
		fleet: f,
		tree:  selection.New(f, reg, opts.Log),
		reg:   reg,
		feed:  feed,
		clock: clock.OrWall(opts.Clock),
		log:   opts.Log,
		opts:  opts,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
}

// Init starts the refresh timer.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			m.refreshZone()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		zoneWidth := max(m.width-browserWidth-4, 10)
		zoneHeight := max(m.height-headerHeight-footerHeight, 1)
		if !m.zoneReady {
			m.zone = viewport.New(zoneWidth, zoneHeight)
			m.zone.YPosition = headerHeight
			m.zoneReady = true
		} else {
			m.zone.Width = zoneWidth
			m.zone.Height = zoneHeight
		}
		m.refreshZone()

	case tickMsg:
		m.Tick()
		m.refreshZone()
		return m, m.tickCmd()

	case snapshotMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus("saved " + msg.path)
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.opts.Refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Tick steps the simulator for every open widget, delivers the readings and
// redraws graphs. A graph redraws even without a new sample so old points
// slide out of the window.
func (m *Model) Tick() {
	ids := m.reg.IDs()
	if len(ids) > 0 && m.feed != nil {
		simulator.Apply(m.reg, m.feed.Step(ids), m.log)
	}
	for _, w := range m.reg.List() {
		w.Redraw()
	}
	m.lastUpdate = m.clock.Now()
}

// open seeds a freshly created widget so neither the card nor the graph
// starts blank.
func (m *Model) open(sensorID string) {
	if m.feed == nil {
		return
	}
	m.feed.Prime(m.reg, sensorID, m.opts.Backfill)
}

// Rows returns the visible browser rows.
func (m Model) Rows() []selection.Row {
	return m.tree.Rows()
}

// Cursor returns the browser cursor index.
func (m Model) Cursor() int { return m.cursor }

// Focus returns the focused pane.
func (m Model) Focus() Focus { return m.focus }

// Status returns the last status line message.
func (m Model) Status() string { return m.status }

// Tree exposes the selection state.
func (m Model) Tree() *selection.Tree { return m.tree }

// FocusedWidget returns the widget keys act on: the highlighted widget in
// the widget pane, or the open widget under the browser cursor.
func (m Model) FocusedWidget() (*widget.Instance, bool) {
	if m.focus == FocusWidgets {
		list := m.reg.List()
		if m.widgetCursor >= 0 && m.widgetCursor < len(list) {
			return list[m.widgetCursor], true
		}
		return nil, false
	}
	rows := m.tree.Rows()
	if m.cursor < 0 || m.cursor >= len(rows) || rows[m.cursor].Level != selection.LevelSensor {
		return nil, false
	}
	return m.reg.Get(rows[m.cursor].ID)
}

func (m *Model) clampCursors() {
	rows := len(m.tree.Rows())
	m.cursor = clampInt(m.cursor, max(rows-1, 0))

	n := m.reg.Len()
	if n == 0 {
		m.widgetCursor = 0
		if m.focus == FocusWidgets {
			m.focus = FocusBrowser
		}
		return
	}
	m.widgetCursor = clampInt(m.widgetCursor, n-1)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = errors.Summary(err)
	m.statusErr = true
	m.log.Debug("dashboard: %v", err)
}

func (m *Model) refreshZone() {
	if !m.zoneReady {
		return
	}
	m.zone.SetContent(m.renderZone(m.zone.Width))
}
