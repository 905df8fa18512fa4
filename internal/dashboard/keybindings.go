package dashboard

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/pidash/internal/errors"
	"github.com/rileyhilliard/pidash/internal/export"
	"github.com/rileyhilliard/pidash/internal/selection"
	"github.com/rileyhilliard/pidash/internal/widget"
)

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Help toggle takes priority
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp && key.Matches(msg, m.keys.Collapse) {
		m.showHelp = false
		return true, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, m.keys.Focus):
		if m.focus == FocusBrowser && m.reg.Len() > 0 {
			m.focus = FocusWidgets
		} else {
			m.focus = FocusBrowser
		}
		m.clampCursors()
		return true, nil

	case key.Matches(msg, m.keys.Up):
		if m.focus == FocusWidgets {
			m.widgetCursor--
		} else {
			m.cursor--
		}
		m.clampCursors()
		return true, nil

	case key.Matches(msg, m.keys.Down):
		if m.focus == FocusWidgets {
			m.widgetCursor++
		} else {
			m.cursor++
		}
		m.clampCursors()
		return true, nil

	case key.Matches(msg, m.keys.Select):
		if m.focus == FocusWidgets {
			m.toggleGraph()
			return true, nil
		}
		m.activate()
		return true, nil

	case key.Matches(msg, m.keys.Collapse):
		m.tree.Reset()
		m.cursor = 0
		m.focus = FocusBrowser
		m.clampCursors()
		return true, nil

	case key.Matches(msg, m.keys.Graph):
		m.toggleGraph()
		return true, nil

	case key.Matches(msg, m.keys.Tier1):
		m.setTier(widget.Tier1)
		return true, nil
	case key.Matches(msg, m.keys.Tier2):
		m.setTier(widget.Tier2)
		return true, nil
	case key.Matches(msg, m.keys.Tier3):
		m.setTier(widget.Tier3)
		return true, nil

	case key.Matches(msg, m.keys.Close):
		if w, ok := m.FocusedWidget(); ok {
			m.reg.Close(w.Ref().SensorID)
			m.setStatus("closed " + w.Ref().SensorID)
		}
		m.clampCursors()
		return true, nil

	case key.Matches(msg, m.keys.CloseAll):
		n := m.reg.CloseAll()
		m.setStatus(fmt.Sprintf("closed %d widgets", n))
		m.clampCursors()
		return true, nil

	case key.Matches(msg, m.keys.Snapshot):
		w, ok := m.FocusedWidget()
		if !ok {
			return true, nil
		}
		return true, m.snapshotCmd(w)
	}

	return false, nil
}

// activate applies the browser transition for the row under the cursor.
func (m *Model) activate() {
	rows := m.tree.Rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return
	}
	ev, err := m.tree.Activate(rows[m.cursor])
	if err != nil {
		m.setError(err)
		return
	}

	switch ev.Kind {
	case selection.SensorOpened:
		m.open(ev.ID)
		m.setStatus("opened " + ev.ID)
	case selection.SensorClosed:
		m.setStatus("closed " + ev.ID)
	default:
		m.setStatus("")
	}

	// Keep the cursor on the row that was activated; rows above it never
	// change when something below expands or collapses.
	m.clampCursors()
}

func (m *Model) toggleGraph() {
	w, ok := m.FocusedWidget()
	if !ok {
		return
	}
	mode, err := w.ToggleMode()
	if err != nil {
		m.setError(err)
		return
	}
	m.setStatus(fmt.Sprintf("%s: %s", w.Ref().SensorID, mode))
}

func (m *Model) setTier(t widget.SizeTier) {
	w, ok := m.FocusedWidget()
	if !ok {
		return
	}
	if err := w.SetSizeTier(t); err != nil {
		m.setError(err)
		return
	}
	if m.opts.Layout == nil {
		w.SetViewport(widget.DefaultViewport(t))
	}
}

// snapshotCmd exports the widget's current window as an SVG file.
func (m *Model) snapshotCmd(w *widget.Instance) tea.Cmd {
	dir := m.opts.SnapshotDir
	now := m.clock.Now()
	return func() tea.Msg {
		ref := w.Ref()
		if widget.ProfileFor(ref).Kind == widget.KindGeo {
			return snapshotMsg{err: errors.New(errors.ErrExport,
				"Position widgets have no chart to export", "")}
		}
		path := filepath.Join(dir, fmt.Sprintf("%s-%s.svg", ref.SensorID, now.Format("20060102-150405")))
		f, err := os.Create(path)
		if err != nil {
			return snapshotMsg{err: errors.WrapWithCode(err, errors.ErrExport,
				fmt.Sprintf("Cannot create %s", path), "Check the snapshot directory is writable")}
		}
		defer f.Close()

		sc := w.RenderAt(w.Viewport())
		if err := export.Write(f, sc, export.SVG, export.Options{}); err != nil {
			return snapshotMsg{err: err}
		}
		return snapshotMsg{path: path}
	}
}
