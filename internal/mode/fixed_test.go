package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed_ReturnsPlacementsForGeneration(t *testing.T) {
	settings := Fixed{}.Schema().Resolve(Settings{
		"position_x": 200.0,
		"position_y": 5.0,
	})

	lines := layeredFile(3)
	res, err := Fixed{}.Run(settings, lines)
	require.NoError(t, err)

	assert.True(t, res.NeedsGeneration())
	assert.Nil(t, res.Lines)
	require.Len(t, res.Placements, 3)

	for _, p := range res.Placements {
		assert.Equal(t, 200.0, p.Point.X)
		assert.Equal(t, 5.0, p.Point.Y)
		assert.GreaterOrEqual(t, p.After, 0)
		assert.Less(t, p.After, len(lines))
	}
}

func TestFixed_EveryNLayers(t *testing.T) {
	settings := Fixed{}.Schema().Resolve(Settings{
		"every_n_layers":       2,
		"first_snapshot_layer": 1,
	})

	res, err := Fixed{}.Run(settings, layeredFile(6))
	require.NoError(t, err)

	// Layers 1, 3 and 5.
	assert.Len(t, res.Placements, 3)
}

func TestFixed_FirstSnapshotLayer(t *testing.T) {
	settings := Fixed{}.Schema().Resolve(Settings{
		"first_snapshot_layer": 4,
	})

	res, err := Fixed{}.Run(settings, layeredFile(6))
	require.NoError(t, err)
	assert.Len(t, res.Placements, 3)
}

func TestFixed_ZOffsetTracksThePrint(t *testing.T) {
	settings := Fixed{}.Schema().Resolve(Settings{
		"z_offset_for_snapshots": 1.5,
	})

	res, err := Fixed{}.Run(settings, layeredFile(2))
	require.NoError(t, err)
	require.Len(t, res.Placements, 2)

	// layeredFile moves to Z 0.2*n before each marker.
	assert.InDelta(t, 0.2+1.5, res.Placements[0].Point.Z, 1e-9)
	assert.InDelta(t, 0.4+1.5, res.Placements[1].Point.Z, 1e-9)
}

func TestFixed_EmptyFile(t *testing.T) {
	res, err := Fixed{}.Run(Fixed{}.Schema().Resolve(nil), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Placements)
	assert.True(t, res.NeedsGeneration())
}
