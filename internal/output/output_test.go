package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zxo1/PrintPath/internal/mode"
)

func TestPath(t *testing.T) {
	cases := []struct {
		input string
		mode  string
		want  string
	}{
		{"benchy.gcode", "orbit", "benchy_orbit.gcode"},
		{filepath.Join("prints", "benchy.gcode"), "arc", filepath.Join("prints", "benchy_arc.gcode")},
		{"noext", "orbit", "noext_orbit"},
		{"two.dots.gcode", "fixed", "two.dots_fixed.gcode"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Path(tc.input, tc.mode))
	}
}

func TestWriteLines_NormalisesNewlines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gcode")
	lines := []string{"G90\n", "G1 X10 Y10 Z0.2", ";LAYER:1\n"}

	require.NoError(t, WriteLines(path, lines))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "G90\nG1 X10 Y10 Z0.2\n;LAYER:1\n", string(data))
}

func TestWritePoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.json")
	points := []mode.SnapshotPoint{
		{X: 110, Y: 80, Z: 0.4},
		{X: 140, Y: 110, Z: 0.6},
	}

	require.NoError(t, WritePoints(path, points))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back []mode.SnapshotPoint
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, points, back)
}

func TestWritePoints_EmptySliceIsValidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.json")
	require.NoError(t, WritePoints(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back []mode.SnapshotPoint
	require.NoError(t, json.Unmarshal(data, &back))
	assert.NotNil(t, back)
	assert.Empty(t, back)
}
