package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline block characters representing 8 vertical levels (lowest to highest).
const sparklineBlocks = "▁▂▃▄▅▆▇█"

// sparklineBlockRunes provides indexed access to block characters.
var sparklineBlockRunes = []rune(sparklineBlocks)

// RenderSparkline draws the most recent width values as block characters,
// scaled between their own min and max. Non-finite values are skipped.
// An empty color leaves the line unstyled.
func RenderSparkline(data []float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}

	finite := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return ""
	}
	if len(finite) > width {
		finite = finite[len(finite)-width:]
	}

	minVal, maxVal := finite[0], finite[0]
	for _, v := range finite {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}

	var sb strings.Builder
	sb.Grow(len(finite) * 3)

	numLevels := len(sparklineBlockRunes)
	valueRange := maxVal - minVal

	for _, v := range finite {
		level := numLevels / 2
		if valueRange > 0 {
			level = int((v - minVal) / valueRange * float64(numLevels-1))
			level = max(0, min(level, numLevels-1))
		}
		sb.WriteRune(sparklineBlockRunes[level])
	}

	if color == "" {
		return sb.String()
	}
	return lipgloss.NewStyle().Foreground(color).Render(sb.String())
}
