package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderInfo contains information to display in the header.
type HeaderInfo struct {
	Version string // Version string (e.g., "v0.4.0")
	Tagline string // Optional tagline (e.g., "live sensor feed")
	Detail  string // Optional muted line, such as the config path
}

// HeaderWidth is the default width of the header divider
const HeaderWidth = 50

// RenderHeader renders the branded header used by the headless commands.
func RenderHeader(info HeaderInfo) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ColorInfo).
		Bold(true)

	var output strings.Builder

	output.WriteString(titleStyle.Render("pidash"))
	if info.Version != "" {
		output.WriteString(" ")
		output.WriteString(lipgloss.NewStyle().Foreground(ColorSecondary).Render(info.Version))
	}
	output.WriteString("\n")

	if info.Tagline != "" {
		output.WriteString(info.Tagline)
		output.WriteString("\n")
	}

	if info.Detail != "" {
		output.WriteString(MutedStyle().Render(info.Detail))
		output.WriteString("\n")
	}

	output.WriteString(FormatDivider(HeaderWidth))
	output.WriteString("\n")

	return output.String()
}
