package chart

import "fmt"

// State describes what a render pass produced.
type State int

const (
	// StateNoTarget means the viewport had no drawable area; nothing was drawn.
	StateNoTarget State = iota
	// StateEmpty means no sample fell inside the window; the caller shows a placeholder.
	StateEmpty
	// StateReady means Commands holds a full chart.
	StateReady
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateNoTarget:
		return "no-target"
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Kind identifies a draw command primitive.
type Kind int

const (
	KindLine Kind = iota
	KindPolyline
	KindFill
	KindText
)

// Role tags a command with the chart element it draws so surfaces can
// style or skip elements (the braille surface drops text, for instance).
type Role int

const (
	RoleGrid Role = iota
	RoleLabel
	RoleAxis
	RoleCurve
	RoleArea
)

// Align is the horizontal anchor of a text command.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Baseline is the vertical anchor of a text command.
type Baseline int

const (
	BaselineTop Baseline = iota
	BaselineMiddle
)

// Point is a position in viewport pixels, origin top-left.
type Point struct {
	X, Y float64
}

// Color is a straight (non-premultiplied) RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGBA builds a color from 0-255 channels and a 0-1 alpha.
func RGBA(r, g, b uint8, alpha float64) Color {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return Color{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}

// Hex renders the color as #RRGGBB, or #RRGGBBAA when not opaque.
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// Command is one drawing primitive.
type Command struct {
	Kind     Kind
	Role     Role
	Points   []Point
	Color    Color
	Width    float64
	Text     string
	Align    Align
	Baseline Baseline
}

// Range is the displayed value range of the Y axis.
type Range struct {
	Min, Max float64
}

// Scene is the output of a render pass.
type Scene struct {
	State    State
	Viewport Viewport
	Range    Range
	// Points holds the curve vertices in pixel space, oldest first.
	Points   []Point
	Commands []Command
}

// Surface is a 2-D drawing target a Scene can be replayed onto.
type Surface interface {
	Line(from, to Point, c Color, width float64)
	Polyline(pts []Point, c Color, width float64)
	FillPath(pts []Point, c Color)
	Text(s string, at Point, c Color, align Align, baseline Baseline)
}

// Replay issues every command, in order, to s.
func (sc Scene) Replay(s Surface) {
	for _, cmd := range sc.Commands {
		switch cmd.Kind {
		case KindLine:
			if len(cmd.Points) == 2 {
				s.Line(cmd.Points[0], cmd.Points[1], cmd.Color, cmd.Width)
			}
		case KindPolyline:
			s.Polyline(cmd.Points, cmd.Color, cmd.Width)
		case KindFill:
			s.FillPath(cmd.Points, cmd.Color)
		case KindText:
			if len(cmd.Points) == 1 {
				s.Text(cmd.Text, cmd.Points[0], cmd.Color, cmd.Align, cmd.Baseline)
			}
		}
	}
}

// Filter returns the commands with the given role.
func (sc Scene) Filter(role Role) []Command {
	var out []Command
	for _, cmd := range sc.Commands {
		if cmd.Role == role {
			out = append(out, cmd)
		}
	}
	return out
}
