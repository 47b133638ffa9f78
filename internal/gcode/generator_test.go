package gcode

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGenerator(fw Firmware) Generator {
	return Generator{
		Firmware:      fw,
		TravelSpeed:   9000,
		DwellTime:     500,
		RetractLength: 0.5,
		RetractSpeed:  40,
		ZHop:          0.2,
	}
}

func TestParseFirmware(t *testing.T) {
	fw, ok := ParseFirmware("Klipper")
	assert.True(t, ok)
	assert.Equal(t, FirmwareKlipper, fw)

	fw, ok = ParseFirmware(" marlin ")
	assert.True(t, ok)
	assert.Equal(t, FirmwareMarlin, fw)

	fw, ok = ParseFirmware("reprap")
	assert.False(t, ok)
	assert.Equal(t, FirmwareKlipper, fw)
}

func TestSnapshotBlock_Klipper(t *testing.T) {
	g := testGenerator(FirmwareKlipper)
	ret := Position{X: 12.5, Y: 34.0, Z: 0.6, Layer: 3}

	block := g.SnapshotBlock(ret, 110, 140, 10, 3)

	require.Equal(t, []string{
		"; --- printpath snapshot layer 3 ---",
		"G90",
		"G0 X110.000 Y140.000 Z10.200 F9000",
		"G4 P500",
		"TIMELAPSE_TAKE_FRAME",
		"G0 X12.500 Y34.000 Z0.600 F9000",
		"G91",
		"G1 E0.500 F2400",
		"G90",
		"; --- printpath snapshot end ---",
	}, block)
}

func TestSnapshotBlock_RestoresExactPreInjectionZ(t *testing.T) {
	g := testGenerator(FirmwareKlipper)
	ret := Position{X: 1, Y: 2, Z: 7.77}

	block := g.SnapshotBlock(ret, 50, 50, 20, 9)

	// Outbound move is hopped, return move is not.
	assert.Contains(t, block[2], "Z20.200")
	var returnMove string
	for _, l := range block {
		if strings.HasPrefix(l, "G0 X1.000") {
			returnMove = l
		}
	}
	require.NotEmpty(t, returnMove)
	assert.Equal(t, "G0 X1.000 Y2.000 Z7.770 F9000", returnMove)
}

func TestSnapshotBlock_MarlinTrigger(t *testing.T) {
	g := testGenerator(FirmwareMarlin)
	g.MarlinTrigger = "M240\nG4 P250"

	block := g.SnapshotBlock(Position{}, 10, 10, 5, 1)

	joined := strings.Join(block, "\n")
	assert.Contains(t, joined, "; frame trigger placeholder")
	assert.Contains(t, joined, "M240")
	assert.Contains(t, joined, "G4 P250")
	assert.NotContains(t, joined, DefaultKlipperTrigger)
}

func TestSnapshotBlock_MarlinWithoutCustomGcode(t *testing.T) {
	g := testGenerator(FirmwareMarlin)

	block := g.SnapshotBlock(Position{}, 10, 10, 5, 1)

	joined := strings.Join(block, "\n")
	assert.Contains(t, joined, "; frame trigger placeholder")
	assert.NotContains(t, joined, DefaultKlipperTrigger)
}

func TestSnapshotBlock_CustomKlipperMacro(t *testing.T) {
	g := testGenerator(FirmwareKlipper)
	g.KlipperTrigger = "_MY_TIMELAPSE_SHOT"

	block := g.SnapshotBlock(Position{}, 10, 10, 5, 1)
	assert.Contains(t, block, "_MY_TIMELAPSE_SHOT")
}

func TestSnapshotBlock_NoDwellNoRetract(t *testing.T) {
	g := testGenerator(FirmwareKlipper)
	g.DwellTime = 0
	g.RetractLength = 0

	block := g.SnapshotBlock(Position{}, 10, 10, 5, 1)

	joined := strings.Join(block, "\n")
	assert.NotContains(t, joined, "G4 ")
	assert.NotContains(t, joined, "G91")
	assert.NotContains(t, joined, "E0.5")
}

func TestStripSnapshotBlocks(t *testing.T) {
	g := testGenerator(FirmwareKlipper)
	original := []string{
		"G1 X10 Y10 Z0.2",
		";LAYER:1",
		"G1 X20 Y10 Z0.4",
	}
	processed := []string{original[0], original[1]}
	processed = append(processed, g.SnapshotBlock(Position{X: 10, Y: 10, Z: 0.2}, 100, 100, 5, 1)...)
	processed = append(processed, original[2])

	assert.Equal(t, original, StripSnapshotBlocks(processed))
}

func TestSnapshotBlock_Deterministic(t *testing.T) {
	g := testGenerator(FirmwareKlipper)
	ret := Position{X: 1, Y: 2, Z: 3}

	a := g.SnapshotBlock(ret, 4, 5, 6, 7)
	b := g.SnapshotBlock(ret, 4, 5, 6, 7)
	assert.Equal(t, fmt.Sprint(a), fmt.Sprint(b))
}
