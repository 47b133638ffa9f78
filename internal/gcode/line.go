package gcode

import (
	"regexp"
	"strconv"
	"strings"
)

// layerMarkerRe matches the slicer layer-marker comment convention ";LAYER:<n>".
var layerMarkerRe = regexp.MustCompile(`(?i);\s*LAYER:(\d+)`)

// Line is a single G-code line plus fields derived at parse time.
// Immutable once parsed.
type Line struct {
	// Raw is the original line text, preserved verbatim.
	Raw string
	// Cmd is the uppercased command word ("G1", "G90", ...), empty for
	// blank or comment-only lines.
	Cmd string
	// X, Y, Z are the axis targets when present on a G0/G1 move.
	X, Y, Z *float64
	// Comment is the comment payload without the leading semicolon.
	Comment string
	// Layer is the layer number when the line carries a layer marker.
	Layer *int
	// Malformed reports that a coordinate token failed to parse. Malformed
	// lines never contribute axis values.
	Malformed bool
}

// IsMove reports whether the line is a linear motion command.
func (l Line) IsMove() bool {
	return l.Cmd == "G0" || l.Cmd == "G1"
}

// ParseLine derives the command word, axis targets and comment payload from
// a raw G-code line. Inputs are third-party slicer output: a bad coordinate
// token marks the line malformed instead of failing, so one broken line can
// never abort a whole file.
func ParseLine(raw string) Line {
	line := Line{Raw: raw}

	code := strings.TrimSpace(raw)
	if i := strings.Index(code, ";"); i >= 0 {
		line.Comment = strings.TrimSpace(code[i+1:])
		code = strings.TrimSpace(code[:i])
	}

	if m := layerMarkerRe.FindStringSubmatch(raw); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			line.Layer = &n
		}
	}

	fields := strings.Fields(code)
	if len(fields) == 0 {
		return line
	}
	line.Cmd = strings.ToUpper(fields[0])

	if !line.IsMove() {
		return line
	}
	for _, tok := range fields[1:] {
		axis := tok[0]
		if axis >= 'a' && axis <= 'z' {
			axis -= 'a' - 'A'
		}
		switch axis {
		case 'X', 'Y', 'Z':
			v, err := strconv.ParseFloat(tok[1:], 64)
			if err != nil {
				line.Malformed = true
				line.X, line.Y, line.Z = nil, nil, nil
				return line
			}
			switch axis {
			case 'X':
				line.X = &v
			case 'Y':
				line.Y = &v
			case 'Z':
				line.Z = &v
			}
		}
	}
	return line
}
