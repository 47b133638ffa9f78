package mode

// Fixed is the built-in stationary-camera mode. It does not rewrite the
// file itself: it reports placements and lets the caller expand them, so
// the snapshot blocks are generated once, outside the mode.
type Fixed struct{}

func (Fixed) Name() string { return "fixed" }

func (Fixed) Description() string {
	return "Stationary camera position, one snapshot every N layers"
}

func (Fixed) Schema() SettingSchema {
	return SettingSchema{
		{Key: "position_x", Descriptor: Descriptor{
			Kind: KindFloat, Label: "Camera X (mm)",
			Range: []float64{0, 500}, Default: 110.0, Step: 1, Precision: 1,
			Help: "X coordinate the head parks at for every snapshot.",
		}},
		{Key: "position_y", Descriptor: Descriptor{
			Kind: KindFloat, Label: "Camera Y (mm)",
			Range: []float64{0, 500}, Default: 110.0, Step: 1, Precision: 1,
			Help: "Y coordinate the head parks at for every snapshot.",
		}},
		{Key: "every_n_layers", Descriptor: Descriptor{
			Kind: KindInteger, Label: "Layer interval",
			Range: []float64{1, 100}, Default: 1,
			Help: "Take one snapshot every N layers.",
		}},
		{Key: "first_snapshot_layer", Descriptor: Descriptor{
			Kind: KindInteger, Label: "First snapshot layer",
			Range: []float64{0, 9999}, Default: 1,
			Help: "First layer to begin taking snapshots.",
		}},
		{Key: "z_offset_for_snapshots", Descriptor: Descriptor{
			Kind: KindFloat, Label: "Snapshot Z offset (mm)",
			Range: []float64{-10, 10}, Default: 0.0, Step: 0.1, Precision: 1,
			Help: "Additional Z offset applied to the snapshot height.",
		}},
	}
}

func (m Fixed) Run(settings Settings, lines []string) (Result, error) {
	x := settings.Float("position_x", 110)
	y := settings.Float("position_y", 110)
	interval := settings.Int("every_n_layers", 1)
	if interval < 1 {
		interval = 1
	}
	firstLayer := settings.Int("first_snapshot_layer", 1)
	zOffset := settings.Float("z_offset_for_snapshots", 0)

	var placements []Placement
	taken := 0
	visitLayers(lines, func(v layerVisit) {
		if v.layer < firstLayer {
			return
		}
		if (v.layer-firstLayer)%interval != 0 {
			return
		}
		taken++
		placements = append(placements, Placement{
			After: v.index,
			Point: SnapshotPoint{X: x, Y: y, Z: v.ret.Z + zOffset},
		})
	})

	return Result{Placements: placements}, nil
}
