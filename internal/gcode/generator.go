package gcode

import (
	"fmt"
	"strings"
)

// Firmware identifies the G-code dialect of the target printer.
type Firmware string

const (
	FirmwareKlipper Firmware = "klipper"
	FirmwareMarlin  Firmware = "marlin"
)

// ParseFirmware normalises a firmware name. Unrecognised dialects fall back
// to Klipper, with ok=false so callers can warn.
func ParseFirmware(s string) (Firmware, bool) {
	switch Firmware(strings.ToLower(strings.TrimSpace(s))) {
	case FirmwareKlipper:
		return FirmwareKlipper, true
	case FirmwareMarlin:
		return FirmwareMarlin, true
	default:
		return FirmwareKlipper, false
	}
}

// DefaultKlipperTrigger is the stock moonraker-timelapse macro.
const DefaultKlipperTrigger = "TIMELAPSE_TAKE_FRAME"

// Marker comments delimiting every injected block. Each block starts with
// BlockStartPrefix and ends with BlockEnd, so injected code is unambiguously
// identifiable and strippable in a later pass.
const (
	BlockStartPrefix = "; --- printpath snapshot"
	BlockEnd         = "; --- printpath snapshot end ---"
)

// Generator translates "take a snapshot here" intents into concrete G-code,
// branching on firmware dialect. Speeds are mm/min, dwell is milliseconds,
// lengths are millimetres.
type Generator struct {
	Firmware      Firmware
	TravelSpeed   int
	DwellTime     int
	RetractLength float64
	RetractSpeed  int
	ZHop          float64

	// KlipperTrigger is the frame-trigger macro emitted verbatim on Klipper.
	KlipperTrigger string
	// MarlinTrigger is the raw user-configured G-code emitted on Marlin,
	// which has no native frame-trigger macro. May span multiple lines.
	MarlinTrigger string
}

// LiftedZ returns the camera Z for a snapshot target: the requested height
// plus the configured z-hop, keeping the nozzle clear of the print.
func (g Generator) LiftedZ(z float64) float64 {
	return z + g.ZHop
}

// SnapshotBlock emits the complete injection block for one snapshot: switch
// to absolute positioning, travel to the camera position, dwell, trigger the
// frame, then return to the exact pre-injection position. The return move
// restores ret.Z, not the hopped Z.
func (g Generator) SnapshotBlock(ret Position, x, y, z float64, layer int) []string {
	block := []string{
		fmt.Sprintf("%s layer %d ---", BlockStartPrefix, layer),
		"G90",
		fmt.Sprintf("G0 X%.3f Y%.3f Z%.3f F%d", x, y, g.LiftedZ(z), g.TravelSpeed),
	}
	if g.DwellTime > 0 {
		block = append(block, fmt.Sprintf("G4 P%d", g.DwellTime))
	}
	block = append(block, g.triggerLines()...)
	block = append(block, fmt.Sprintf("G0 X%.3f Y%.3f Z%.3f F%d", ret.X, ret.Y, ret.Z, g.TravelSpeed))
	if g.RetractLength > 0 {
		block = append(block,
			"G91",
			fmt.Sprintf("G1 E%.3f F%d", g.RetractLength, g.RetractSpeed*60),
			"G90",
		)
	}
	return append(block, BlockEnd)
}

func (g Generator) triggerLines() []string {
	if g.Firmware == FirmwareMarlin {
		lines := []string{"; frame trigger placeholder, marlin has no native macro"}
		for _, l := range strings.Split(g.MarlinTrigger, "\n") {
			if t := strings.TrimSpace(l); t != "" {
				lines = append(lines, t)
			}
		}
		return lines
	}
	trigger := g.KlipperTrigger
	if trigger == "" {
		trigger = DefaultKlipperTrigger
	}
	return []string{trigger}
}

// StripSnapshotBlocks removes every injected snapshot block, returning the
// file to its pre-processing form.
func StripSnapshotBlocks(lines []string) []string {
	out := make([]string, 0, len(lines))
	inBlock := false
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		switch {
		case strings.HasPrefix(trimmed, BlockStartPrefix) && trimmed != BlockEnd:
			inBlock = true
		case trimmed == BlockEnd:
			inBlock = false
		case !inBlock:
			out = append(out, l)
		}
	}
	return out
}
