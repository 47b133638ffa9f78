package gcode

import (
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"
)

// Position is the tracked printer state: current toolhead coordinates and
// the active layer index.
type Position struct {
	X, Y, Z float64
	Layer   int
}

// XY returns the horizontal component of the position.
func (p Position) XY() geom.XY {
	return geom.XY{X: p.X, Y: p.Y}
}

// WarningKind classifies non-fatal problems found while scanning.
type WarningKind int

const (
	// WarnParse marks a malformed line that was passed through unchanged.
	WarnParse WarningKind = iota
	// WarnUnsupportedMode marks a positioning mode the tracker does not
	// model (relative moves); tracking continues best effort.
	WarnUnsupportedMode
)

func (k WarningKind) String() string {
	switch k {
	case WarnParse:
		return "parse"
	case WarnUnsupportedMode:
		return "unsupported-mode"
	default:
		return "unknown"
	}
}

// Warning records a recovered problem and the 1-based line it occurred on.
type Warning struct {
	Kind    WarningKind
	LineNum int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %s", w.LineNum, w.Kind, w.Message)
}

// MotionTracker reconstructs printer motion and layer state from a stream of
// G-code lines. It assumes absolute positioning; relative mode is flagged,
// not modelled. Pure state machine, no I/O.
type MotionTracker struct {
	pos      Position
	relative bool
	lineNum  int
	warnings []Warning
}

// NewMotionTracker returns a tracker positioned at the origin on layer 0.
func NewMotionTracker() *MotionTracker {
	return &MotionTracker{}
}

// Advance consumes one line and returns the position after it. Malformed
// lines leave the state untouched. Layer markers take effect even when the
// line carries no motion.
func (t *MotionTracker) Advance(raw string) Position {
	t.lineNum++
	line := ParseLine(raw)

	if line.Malformed {
		t.warn(WarnParse, "malformed coordinate token, line passed through")
		return t.pos
	}

	switch line.Cmd {
	case "G90":
		t.relative = false
	case "G91":
		if !t.relative {
			t.warn(WarnUnsupportedMode, "relative positioning (G91), holding last absolute position")
		}
		t.relative = true
	case "G0", "G1":
		if !t.relative {
			if line.X != nil {
				t.pos.X = *line.X
			}
			if line.Y != nil {
				t.pos.Y = *line.Y
			}
			if line.Z != nil {
				t.pos.Z = *line.Z
			}
		}
	}

	if line.Layer != nil {
		t.pos.Layer = *line.Layer
	}
	return t.pos
}

// Position returns the current tracked position.
func (t *MotionTracker) Position() Position {
	return t.pos
}

// Warnings returns all warnings recorded so far, in line order.
func (t *MotionTracker) Warnings() []Warning {
	return t.warnings
}

func (t *MotionTracker) warn(kind WarningKind, msg string) {
	t.warnings = append(t.warnings, Warning{Kind: kind, LineNum: t.lineNum, Message: msg})
}
