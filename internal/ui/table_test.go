package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"
)

func TestNewTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "Sensor", Width: 20},
		{Title: "Unit", Width: 10},
	}
	rows := []table.Row{
		{"t1", "C"},
		{"h1", "%"},
	}

	view := NewTable(columns, rows).View()
	assert.Contains(t, view, "Sensor")
	assert.Contains(t, view, "Unit")
	assert.Contains(t, view, "t1")
	assert.Contains(t, view, "h1")
}

func TestNewTable_EmptyRows(t *testing.T) {
	view := NewTable([]TableColumn{{Title: "Name", Width: 20}}, []table.Row{}).View()
	assert.Contains(t, view, "Name")
}

func TestRenderSimpleTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "Host", Width: 15},
		{Title: "Device", Width: 12},
	}
	rows := [][]string{
		{"rpi-1", "esp-air-1"},
		{"rpi-2", "esp-froid-2"},
	}

	output := RenderSimpleTable(columns, rows)

	for _, want := range []string{"Host", "Device", "rpi-1", "rpi-2", "esp-air-1", "esp-froid-2"} {
		assert.Contains(t, output, want)
	}
}

func TestRenderSimpleTable_EmptyRows(t *testing.T) {
	assert.Empty(t, RenderSimpleTable([]TableColumn{{Title: "Name", Width: 20}}, nil))
}

func TestFitColumns(t *testing.T) {
	cols := FitColumns(
		[]string{"ID", "TYPE"},
		[][]string{
			{"t1", "Temperature"},
			{"door-2", "Door"},
		},
	)

	assert.Equal(t, []TableColumn{
		{Title: "ID", Width: 7},
		{Title: "TYPE", Width: 12},
	}, cols)
}

func TestFitColumns_ShortRowsAreSafe(t *testing.T) {
	cols := FitColumns([]string{"A", "B"}, [][]string{{"xyz"}})
	assert.Equal(t, 4, cols[0].Width)
	assert.Equal(t, 2, cols[1].Width)
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"shorter than width", "foo", 5, "foo  "},
		{"equal to width", "foobar", 6, "foobar"},
		{"longer than width", "foobar", 3, "foobar"},
		{"empty string", "", 3, "   "},
		{"zero width", "foo", 0, "foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, padRight(tt.input, tt.width))
		})
	}
}
