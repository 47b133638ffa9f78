package mode

import (
	"github.com/zxo1/PrintPath/internal/gcode"
)

// zLayerTolerance is the minimum Z increase treated as a distinct layer when
// a file carries no layer-marker comments.
const zLayerTolerance = 0.05

// layerVisit describes one detected layer boundary. ret is the position to
// return to after an injection at this boundary: the state just before the
// triggering line took effect.
type layerVisit struct {
	index int
	layer int
	ret   gcode.Position
}

// hasLayerMarkers reports whether any line carries an explicit layer marker.
func hasLayerMarkers(lines []string) bool {
	for _, raw := range lines {
		if gcode.ParseLine(raw).Layer != nil {
			return true
		}
	}
	return false
}

// walkLayers scans lines with a motion tracker, detecting logical layer
// boundaries. Files with explicit ";LAYER:<n>" markers are driven by the
// markers alone; files without any fall back to rising-Z detection, which
// would misfire on z-hop travel moves in marker-bearing files. onLayer may
// return a block of lines to inject immediately before the triggering line.
// The returned slice is a new sequence; the input is never mutated.
func walkLayers(lines []string, onLayer func(v layerVisit) []string) []string {
	tracker := gcode.NewMotionTracker()
	out := make([]string, 0, len(lines))
	markers := hasLayerMarkers(lines)

	logicalLayer := 0
	lastDistinctZ := -1.0

	for i, raw := range lines {
		ret := tracker.Position()
		pos := tracker.Advance(raw)
		line := gcode.ParseLine(raw)

		newLayer := false
		if markers {
			if line.Layer != nil && *line.Layer > logicalLayer {
				logicalLayer = *line.Layer
				newLayer = true
			}
		} else if pos.Z > lastDistinctZ+zLayerTolerance {
			lastDistinctZ = pos.Z
			logicalLayer++
			newLayer = true
		}

		if newLayer {
			if block := onLayer(layerVisit{index: i, layer: logicalLayer, ret: ret}); block != nil {
				out = append(out, block...)
			}
		}
		out = append(out, raw)
	}
	return out
}

// visitLayers walks the same layer boundaries as walkLayers without building
// an output sequence, for modes that only report placements.
func visitLayers(lines []string, onLayer func(v layerVisit)) {
	walkLayers(lines, func(v layerVisit) []string {
		onLayer(v)
		return nil
	})
}
