// Package ui provides the styled output shared by pidash's headless
// commands (watch, snapshot, fleet, init). The interactive dashboard has
// its own palette in internal/dashboard.
//
// # Components Overview
//
//	PhaseDisplay  - One line per step with a status symbol and timing
//	Sparkline     - Block-character trend of a sensor's recent values
//	Tables        - Non-interactive bubbles tables for listings
//	Header        - Branded title with a divider
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Successful steps
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (yellow) - Skipped steps
//	ColorInfo      (cyan)   - Titles
//	ColorMuted     (gray)   - Secondary text, timing info
//	ColorSecondary (blue)   - In-progress indicators
//
// Use DisableColors() for --no-color and ForceColors() for
// output.color: always.
package ui
