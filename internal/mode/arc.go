package mode

import (
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
)

// Arc is the built-in corner-to-corner mode: the camera climbs vertically at
// the start corner, sweeps across the print on a quadratic Bezier arc, then
// finishes with a horizontal approach to the end corner.
type Arc struct{}

func (Arc) Name() string { return "arc" }

func (Arc) Description() string {
	return "Corner-to-corner camera arc with vertical lead-in and horizontal lead-out"
}

func (Arc) Schema() SettingSchema {
	corners := []string{"Front-Left", "Front-Right", "Back-Left", "Back-Right"}
	return SettingSchema{
		{Key: "num_snapshots", Descriptor: Descriptor{
			Kind: KindInteger, Label: "Number of snapshots",
			Range: []float64{1, 500}, Default: 10,
			Help: "Total snapshots, evenly spaced throughout the print.",
		}},
		{Key: "vertical_only_percentage", Descriptor: Descriptor{
			Kind: KindFloat, Label: "Initial vertical %",
			Range: []float64{0, 1}, Default: 0.2, Step: 0.05, Precision: 2,
			Help: "Share of the print height where the camera only climbs at the start corner.",
		}},
		{Key: "horizontal_only_percentage", Descriptor: Descriptor{
			Kind: KindFloat, Label: "Final horizontal %",
			Range: []float64{0, 1}, Default: 0.2, Step: 0.05, Precision: 2,
			Help: "Share of the print height where the camera only moves horizontally at the end corner.",
		}},
		{Key: "start_corner", Descriptor: Descriptor{
			Kind: KindEnum, Label: "Start corner (XY)",
			Choices: corners, Default: "Front-Left",
			Help: "Starting corner of the arc path at the bottom of the print.",
		}},
		{Key: "end_corner", Descriptor: Descriptor{
			Kind: KindEnum, Label: "End corner (XY)",
			Choices: corners, Default: "Back-Right",
			Help: "Ending corner of the arc path at the top of the print.",
		}},
		{Key: "arc_control_offset_h", Descriptor: Descriptor{
			Kind: KindFloat, Label: "Horizontal arc offset (mm)",
			Range: []float64{-200, 200}, Default: 0.0, Step: 5, Precision: 1,
			Help: "Horizontal offset of the arc control point; positive pushes the arc outwards.",
		}},
		{Key: "arc_control_offset_v", Descriptor: Descriptor{
			Kind: KindFloat, Label: "Vertical arc offset (mm)",
			Range: []float64{-200, 200}, Default: 0.0, Step: 5, Precision: 1,
			Help: "Vertical offset of the arc control point; positive curves the path higher.",
		}},
		{Key: "z_offset_for_snapshots", Descriptor: Descriptor{
			Kind: KindFloat, Label: "Snapshot Z offset (mm)",
			Range: []float64{-10, 10}, Default: 0.0, Step: 0.1, Precision: 1,
			Help: "Additional Z offset applied to the snapshot height.",
		}},
		{Key: "first_snapshot_layer", Descriptor: Descriptor{
			Kind: KindInteger, Label: "First snapshot layer",
			Range: []float64{0, 9999}, Default: 1,
			Help: "First layer to begin taking snapshots.",
		}},
		{Key: "camera_distance_z_factor", Descriptor: Descriptor{
			Kind: KindFloat, Label: "Camera Z follow factor",
			Range: []float64{0.5, 2}, Default: 1.0, Step: 0.05, Precision: 2,
			Help: "How much the camera Z scales with the print's current layer Z.",
		}},
	}
}

// cornerXY maps a corner name onto the print bounding box.
func cornerXY(name string, min, max geom.XY) geom.XY {
	switch name {
	case "Front-Right":
		return geom.XY{X: max.X, Y: min.Y}
	case "Back-Left":
		return geom.XY{X: min.X, Y: max.Y}
	case "Back-Right":
		return max
	default: // Front-Left
		return min
	}
}

// bezier2 evaluates a quadratic Bezier at t.
func bezier2(p0, p1, p2, t float64) float64 {
	u := 1 - t
	return u*u*p0 + 2*u*t*p1 + t*t*p2
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func (m Arc) Run(settings Settings, lines []string) (Result, error) {
	gen := GeneratorFromSettings(settings)

	numSnapshots := settings.Int("num_snapshots", 10)
	verticalPct := settings.Float("vertical_only_percentage", 0.2)
	horizontalPct := settings.Float("horizontal_only_percentage", 0.2)
	offsetH := settings.Float("arc_control_offset_h", 0)
	offsetV := settings.Float("arc_control_offset_v", 0)
	zOffset := settings.Float("z_offset_for_snapshots", 0)
	firstLayer := settings.Int("first_snapshot_layer", 1)
	zFactor := settings.Float("camera_distance_z_factor", 1)

	min := geom.XY{X: settings.Float("min_x", 0), Y: settings.Float("min_y", 0)}
	max := geom.XY{X: settings.Float("max_x", 0), Y: settings.Float("max_y", 0)}
	minZ := settings.Float("min_z_print", 0)
	maxZ := settings.Float("max_z", 250)

	p0 := cornerXY(settings.String("start_corner", "Front-Left"), min, max)
	p2 := cornerXY(settings.String("end_corner", "Back-Right"), min, max)

	// Normalise overlapping phase shares so the arc phase never has a
	// negative duration.
	if verticalPct+horizontalPct > 1 {
		total := verticalPct + horizontalPct
		verticalPct /= total
		horizontalPct /= total
	}
	arcStartT := verticalPct
	arcEndT := 1 - horizontalPct

	divisor := numSnapshots - 1
	if divisor < 1 {
		divisor = 1
	}
	zRange := maxZ - minZ

	taken := 0
	var points []SnapshotPoint

	out := walkLayers(lines, func(v layerVisit) []string {
		if v.layer < firstLayer || taken >= numSnapshots {
			return nil
		}

		t := float64(taken) / float64(divisor)
		baseZ := minZ + zRange*t
		target := p0

		switch {
		case t < arcStartT:
			// vertical lead-in, XY pinned to the start corner
		case t > arcEndT:
			target = p2
		default:
			tArc := 0.0
			if dur := arcEndT - arcStartT; dur > 0 {
				tArc = clamp((t-arcStartT)/dur, 0, 1)
			}
			arcStartZ := minZ + zRange*arcStartT
			arcEndZ := minZ + zRange*arcEndT
			ctrlZ := clamp((arcStartZ+arcEndZ)/2+offsetV, minZ, maxZ)

			// Arc in the plane of the dominant horizontal axis; the other
			// axis interpolates linearly.
			if math.Abs(p2.X-p0.X) >= math.Abs(p2.Y-p0.Y) {
				ctrlX := clamp((p0.X+p2.X)/2+offsetH, min.X, max.X)
				target.X = bezier2(p0.X, ctrlX, p2.X, tArc)
				target.Y = p0.Y + tArc*(p2.Y-p0.Y)
			} else {
				ctrlY := clamp((p0.Y+p2.Y)/2+offsetH, min.Y, max.Y)
				target.Y = bezier2(p0.Y, ctrlY, p2.Y, tArc)
				target.X = p0.X + tArc*(p2.X-p0.X)
			}
			baseZ = bezier2(arcStartZ, ctrlZ, arcEndZ, tArc)
		}

		// The follow factor lets the camera track the current layer height
		// more (>1) or less (<1) than the global climb.
		targetZ := baseZ + zOffset + v.ret.Z*(zFactor-1)

		taken++
		points = append(points, SnapshotPoint{X: target.X, Y: target.Y, Z: gen.LiftedZ(targetZ)})
		return gen.SnapshotBlock(v.ret, target.X, target.Y, targetZ, v.layer)
	})

	return Result{Lines: out, Points: points}, nil
}
