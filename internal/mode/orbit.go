package mode

import (
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
)

// Orbit is the built-in corkscrew mode: the camera target advances around a
// circle centred on the bed while climbing from the bottom to the top of the
// print, one snapshot per detected layer.
type Orbit struct{}

func (Orbit) Name() string { return "orbit" }

func (Orbit) Description() string {
	return "Corkscrew camera path orbiting the bed center, one snapshot per layer"
}

func (Orbit) Schema() SettingSchema {
	return SettingSchema{
		{Key: "num_orbits", Descriptor: Descriptor{
			Kind: KindInteger, Label: "Total 360-degree orbits per print",
			Range: []float64{1, 50}, Default: 1, Step: 1,
			Help: "Number of full rotations the camera makes over the entire print.",
		}},
		{Key: "snapshots_per_loop", Descriptor: Descriptor{
			Kind: KindInteger, Label: "Snapshots per 360-degree loop",
			Range: []float64{5, 60}, Default: 5, Step: 1,
			Help: "Snapshots taken within each full rotation.",
		}},
		{Key: "z_offset_for_snapshots", Descriptor: Descriptor{
			Kind: KindFloat, Label: "Snapshot Z offset (mm)",
			Range: []float64{-10, 10}, Default: 0.0, Step: 0.1, Precision: 1,
			Help: "Additional Z offset applied to the snapshot height.",
		}},
		{Key: "first_snapshot_layer", Descriptor: Descriptor{
			Kind: KindInteger, Label: "First snapshot layer",
			Range: []float64{0, 9999}, Default: 1,
			Help: "First layer to begin taking snapshots, skipping purge and leveling routines.",
		}},
		{Key: "orbit_radius_xy", Descriptor: Descriptor{
			Kind: KindFloat, Label: "Orbit radius (mm)",
			Range: []float64{10, 100}, Default: 30.0, Step: 1, Precision: 1,
			Help: "Radius of the circular camera path around the object.",
		}},
		{Key: "start_angle", Descriptor: Descriptor{
			Kind: KindInteger, Label: "Start angle (degrees)",
			Range: []float64{0, 359}, Default: 0, Step: 1,
			Help: "Angle of the first snapshot; 0 degrees is the positive X axis.",
		}},
	}
}

func (m Orbit) Run(settings Settings, lines []string) (Result, error) {
	gen := GeneratorFromSettings(settings)
	bed := settings.BedDimensions()

	numOrbits := settings.Int("num_orbits", 1)
	perLoop := settings.Int("snapshots_per_loop", 5)
	zOffset := settings.Float("z_offset_for_snapshots", 0)
	firstLayer := settings.Int("first_snapshot_layer", 1)
	radius := math.Max(settings.Float("orbit_radius_xy", 30), 0)
	startAngle := settings.Float("start_angle", 0)

	minZ := settings.Float("min_z_print", 0)
	maxZ := settings.Float("max_z", 250)

	// The model is assumed centred on the bed, as a circular orbit needs
	// clearance on all sides.
	center := geom.XY{X: bed.X / 2, Y: bed.Y / 2}

	total := numOrbits * perLoop
	scaling := total
	if scaling < 1 {
		scaling = 1
	}

	taken := 0
	var points []SnapshotPoint

	out := walkLayers(lines, func(v layerVisit) []string {
		if v.layer < firstLayer || taken >= total {
			return nil
		}

		progress := 0.0
		if scaling > 1 {
			progress = float64(taken) / float64(scaling-1)
		}

		baseZ := minZ
		if zRange := maxZ - minZ; zRange >= 0.1 {
			baseZ = minZ + zRange*progress
		}
		targetZ := baseZ + zOffset

		angle := (startAngle + progress*float64(numOrbits)*360) * math.Pi / 180
		target := geom.XY{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}

		taken++
		points = append(points, SnapshotPoint{X: target.X, Y: target.Y, Z: gen.LiftedZ(targetZ)})
		return gen.SnapshotBlock(v.ret, target.X, target.Y, targetZ, v.layer)
	})

	return Result{Lines: out, Points: points}, nil
}
