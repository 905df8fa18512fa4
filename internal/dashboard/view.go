package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/pidash/internal/chart"
	"github.com/rileyhilliard/pidash/internal/selection"
	"github.com/rileyhilliard/pidash/internal/widget"
)

// Placeholder is shown in the widget zone when nothing is open.
const Placeholder = "select a sensor"

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	var zone string
	if m.zoneReady {
		zone = m.zone.View()
	} else {
		zone = m.renderZone(80)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderBrowser(), zone))

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the dashboard header with summary stats.
func (m Model) renderHeader() string {
	hosts, _, sensors := m.fleet.Counts()

	updateText := "waiting"
	if !m.lastUpdate.IsZero() {
		secs := int(m.clock.Now().Sub(m.lastUpdate).Seconds())
		switch secs {
		case 0:
			updateText = "just now"
		default:
			updateText = fmt.Sprintf("%ds ago", secs)
		}
	}

	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("pidash")

	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(fmt.Sprintf(" | %d hosts | %d sensors | %d widgets | updated %s",
			hosts, sensors, m.reg.Len(), updateText))

	return HeaderStyle.Render(title + stats)
}

// renderBrowser renders the host -> device -> sensor tree.
func (m Model) renderBrowser() string {
	rows := m.tree.Rows()
	inner := browserWidth - 4

	var lines []string
	lines = append(lines, TitleStyle.Render("Devices"))
	for i, r := range rows {
		lines = append(lines, m.renderRow(r, i == m.cursor && m.focus == FocusBrowser, inner))
	}

	style := BrowserStyle
	if m.focus == FocusBrowser {
		style = BrowserFocusedStyle
	}
	style = style.Width(browserWidth - 2)
	if m.height > headerHeight+footerHeight+2 {
		style = style.Height(m.height - headerHeight - footerHeight - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) renderRow(r selection.Row, current bool, width int) string {
	prefix := "  "
	if current {
		prefix = CursorStyle.Render("›") + " "
	}

	var indent, glyph string
	label := LabelStyle
	switch r.Level {
	case selection.LevelHost:
		glyph = GlyphCollapsed
		if r.Expanded {
			glyph = GlyphExpanded
		}
		label = TitleStyle
	case selection.LevelDevice:
		indent = "  "
		glyph = GlyphCollapsed
		if r.Expanded {
			glyph = GlyphExpanded
		}
	default:
		indent = "    "
		glyph = GlyphIdle
		if r.Selected {
			glyph = TagStyle.Render(GlyphSelected)
		}
	}

	text := truncateWithEllipsis(r.Label, width-lipgloss.Width(indent)-4)
	if current {
		label = label.Foreground(ColorAccent)
	}
	return prefix + indent + glyph + " " + label.Render(text)
}

// renderZone lays out the open widgets, most recent first.
func (m Model) renderZone(width int) string {
	list := m.reg.List()
	if len(list) == 0 {
		return MutedStyle.Padding(1, 2).Render(Placeholder)
	}

	var cards []string
	for i, w := range list {
		selected := m.focus == FocusWidgets && i == m.widgetCursor
		cards = append(cards, m.renderWidget(w, selected))
	}
	return layoutCards(cards, width)
}

// layoutCards flows cards left to right, wrapping when the next card would
// overflow width.
func layoutCards(cards []string, width int) string {
	var rows []string
	var row []string
	used := 0
	for _, c := range cards {
		w := lipgloss.Width(c)
		if len(row) > 0 && used+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
		row = append(row, c)
		used += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderFooter renders the status line and the short key help.
func (m Model) renderFooter() string {
	status := ""
	if m.status != "" {
		if m.statusErr {
			status = StatusErrorStyle.Render("✗ "+m.status) + "  "
		} else {
			status = LabelStyle.Render(m.status) + "  "
		}
	}
	return FooterStyle.Render(status + m.help.ShortHelpView(m.keys.ShortHelp()))
}

// cardInnerWidth is the content width of a widget card for a tier.
func cardInnerWidth(t widget.SizeTier) int {
	n := int(t)
	if !t.Valid() {
		n = 1
	}
	return 28*n + 4*(n-1)
}

// graphRows is the braille canvas height for a tier.
func graphRows(t widget.SizeTier) int {
	if !t.Valid() {
		return 4
	}
	return 2 + 2*int(t)
}

// renderWidget renders one widget as a bordered card.
func (m Model) renderWidget(w *widget.Instance, selected bool) string {
	tier := w.Tier()
	width := cardInnerWidth(tier)
	card := w.Card()

	var lines []string

	title := TitleStyle.Render(truncateWithEllipsis(card.Title, width-2))
	gap := max(width-lipgloss.Width(title)-1, 1)
	lines = append(lines, title+strings.Repeat(" ", gap)+MutedStyle.Render(GlyphClose))
	lines = append(lines, LabelStyle.Render(truncateWithEllipsis(card.Meta, width)))

	if w.Profile().Kind == widget.KindGeo {
		lines = append(lines, renderPosition(card)...)
	} else {
		value := card.Text
		if value == "" {
			value = "--"
		}
		valueLine := ValueStyle.Render(value)
		if card.Unit != "" && w.Profile().Name != "state" {
			valueLine += " " + LabelStyle.Render(card.Unit)
		}
		valueLine += "  " + TagStyle.Render("["+card.SensorID+"]")
		lines = append(lines, valueLine)

		if w.Mode() == widget.ModeGraph {
			lines = append(lines, renderGraph(w.Scene(), width, graphRows(tier), tier > widget.Tier1))
		} else if card.HasGauge {
			lines = append(lines, GaugeBar(width, card.Gauge, card.GaugeColor))
		}
	}

	updated := "no data yet"
	if !card.Updated.IsZero() {
		updated = "updated " + card.Updated.Format("15:04:05")
	}
	lines = append(lines, MutedStyle.Render(updated))

	for i, l := range lines {
		lines[i] = renderCardLine(l, width)
	}

	style := CardStyle.Width(width + 2)
	if selected {
		style = CardSelectedStyle.Width(width + 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func renderGraph(sc chart.Scene, width, rows int, labels bool) string {
	if sc.State != chart.StateReady {
		blank := make([]string, rows)
		blank[rows/2] = MutedStyle.Render("waiting for data")
		return strings.Join(blank, "\n")
	}
	return RenderScene(sc, width, rows, labels).String()
}

func renderPosition(card widget.Card) []string {
	var lines []string
	if card.Position != nil {
		lines = append(lines, ValueStyle.Render(fmt.Sprintf("%.4f, %.4f",
			card.Position.Latitude, card.Position.Longitude)))
	} else {
		lines = append(lines, MutedStyle.Render("no fix yet"))
	}
	src := card.Source
	if src == "" {
		src = "unknown"
	}
	lines = append(lines, LabelStyle.Render("source ")+TagStyle.Render(src)+"  "+TagStyle.Render("["+card.SensorID+"]"))
	return lines
}
