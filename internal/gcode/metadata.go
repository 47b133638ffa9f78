package gcode

import (
	geom "github.com/peterstace/simplefeatures/geom"
)

// BedSize holds the printer bed dimensions in millimetres. It comes from
// external configuration, never from the file.
type BedSize struct {
	X, Y float64
}

// Metadata holds the static aggregates of one G-code file, computed once
// before any mode runs and read-only thereafter.
type Metadata struct {
	// Min and Max span the toolpath bounding box in XY.
	Min, Max geom.XY
	// MinZ and MaxZ span the toolpath height.
	MinZ, MaxZ float64
	// TotalLayers is the highest layer marker seen, at least 1.
	TotalLayers int
	// Bed is the configured bed size, injected verbatim.
	Bed BedSize
}

// Center returns the middle of the toolpath bounding box.
func (m Metadata) Center() geom.XY {
	return geom.XY{X: (m.Min.X + m.Max.X) / 2, Y: (m.Min.Y + m.Max.Y) / 2}
}

// ExtractMetadata runs a single pass over the file and aggregates bounds and
// layer count. Bounds are per-axis min/max of every successfully parsed
// coordinate, so they are independent of line order. Malformed lines are
// skipped, matching the tracker's tolerance.
func ExtractMetadata(lines []string, bed BedSize) Metadata {
	meta := Metadata{Bed: bed, TotalLayers: 1}

	var sawX, sawY, sawZ bool
	for _, raw := range lines {
		line := ParseLine(raw)
		if line.Malformed {
			continue
		}
		if line.Layer != nil && *line.Layer > meta.TotalLayers {
			meta.TotalLayers = *line.Layer
		}
		if !line.IsMove() {
			continue
		}
		if line.X != nil {
			if !sawX || *line.X < meta.Min.X {
				meta.Min.X = *line.X
			}
			if !sawX || *line.X > meta.Max.X {
				meta.Max.X = *line.X
			}
			sawX = true
		}
		if line.Y != nil {
			if !sawY || *line.Y < meta.Min.Y {
				meta.Min.Y = *line.Y
			}
			if !sawY || *line.Y > meta.Max.Y {
				meta.Max.Y = *line.Y
			}
			sawY = true
		}
		if line.Z != nil {
			if !sawZ || *line.Z < meta.MinZ {
				meta.MinZ = *line.Z
			}
			if !sawZ || *line.Z > meta.MaxZ {
				meta.MaxZ = *line.Z
			}
			sawZ = true
		}
	}
	return meta
}
