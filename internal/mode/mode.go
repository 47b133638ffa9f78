package mode

import (
	"github.com/spf13/cast"

	"github.com/zxo1/PrintPath/internal/gcode"
)

// Settings is the merged option mapping handed to a mode: global settings,
// print metadata fields and the mode's own schema-resolved values. Keys are
// unique; a mode must treat the map as read-only.
type Settings map[string]any

// Clone returns a shallow copy.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Float returns the value for key as a float64, or def when absent or not
// numeric. Settings cross JSON and config boundaries, so numeric values may
// arrive as int, float64 or string.
func (s Settings) Float(key string, def float64) float64 {
	v, ok := s[key]
	if !ok {
		return def
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return def
	}
	return f
}

// Int returns the value for key as an int, or def.
func (s Settings) Int(key string, def int) int {
	v, ok := s[key]
	if !ok {
		return def
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return def
	}
	return i
}

// String returns the value for key as a string, or def.
func (s Settings) String(key string, def string) string {
	v, ok := s[key]
	if !ok {
		return def
	}
	str, err := cast.ToStringE(v)
	if err != nil {
		return def
	}
	return str
}

// BedDimensions returns the configured bed size carried in the settings map,
// falling back to a common 220x220 bed.
func (s Settings) BedDimensions() gcode.BedSize {
	bed := gcode.BedSize{X: 220, Y: 220}
	m, err := cast.ToStringMapE(s["bed_dimensions"])
	if err != nil {
		return bed
	}
	if x, err := cast.ToFloat64E(m["x"]); err == nil {
		bed.X = x
	}
	if y, err := cast.ToFloat64E(m["y"]); err == nil {
		bed.Y = y
	}
	return bed
}

// SnapshotPoint is a camera position produced by a mode. Purely descriptive;
// ownership passes to the caller for preview rendering.
type SnapshotPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Placement is a snapshot intent for the orchestrator's generator pass: the
// camera target plus the line index the injected block follows.
type Placement struct {
	// After is the 0-based input line index the block is injected after.
	After int
	Point SnapshotPoint
}

// Result is the output of one mode run, immutable once returned.
//
// A mode either emits fully formed G-code itself (Lines non-nil, Points
// filled) or returns raw snapshot coordinates (Lines nil, Placements filled)
// for the orchestrator to run through the firmware generator. Both paths are
// first class.
type Result struct {
	Lines      []string
	Points     []SnapshotPoint
	Placements []Placement
}

// NeedsGeneration reports whether the orchestrator must expand Placements
// through the firmware generator.
func (r Result) NeedsGeneration() bool {
	return r.Lines == nil
}

// Mode is the contract every snapshot mode satisfies, built-in and script
// alike. Run is stateless, invoked exactly once per processing run, and must
// not mutate the input line slice.
type Mode interface {
	Name() string
	Description() string
	Schema() SettingSchema
	Run(settings Settings, lines []string) (Result, error)
}

// ModeInfo describes a registered mode for presentation to callers.
type ModeInfo struct {
	Name        string
	Description string
	Schema      SettingSchema
}

// GeneratorFromSettings builds a firmware code generator from the global
// settings every mode receives.
func GeneratorFromSettings(s Settings) gcode.Generator {
	fw, _ := gcode.ParseFirmware(s.String("firmware", string(gcode.FirmwareKlipper)))
	return gcode.Generator{
		Firmware:       fw,
		TravelSpeed:    s.Int("travel_speed", 9000),
		DwellTime:      s.Int("dwell_time", 500),
		RetractLength:  s.Float("retract_length", 0.5),
		RetractSpeed:   s.Int("retract_speed", 40),
		ZHop:           s.Float("z_hop_height", 0.2),
		KlipperTrigger: s.String("klipper_trigger", gcode.DefaultKlipperTrigger),
		MarlinTrigger:  s.String("marlin_trigger", ""),
	}
}
