package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"firmware": "marlin",
		"travel_speed": 12000,
		"bed": { "x": 300, "y": 300 },
		"modes": { "orbit": { "num_orbits": 3 } }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "printpath.cfg.json"), []byte(cfg), 0644))

	require.NoError(t, Load(dir))

	assert.Equal(t, "marlin", GetString("firmware"))
	assert.Equal(t, 12000, GetInt("travel_speed"))
	assert.Equal(t, 300.0, GetBed().X)
	assert.Equal(t, 300.0, GetBed().Y)
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "printpath.cfg.json"), []byte(`{}`), 0644))

	require.NoError(t, Load(dir))

	assert.Equal(t, "info", GetString("log_level"))
	assert.Equal(t, "klipper", GetString("firmware"))
	assert.Equal(t, 9000, GetInt("travel_speed"))
	assert.Equal(t, 500, GetInt("dwell_time"))
	assert.Equal(t, 0.5, GetFloat("retract_length"))
	assert.Equal(t, 40, GetInt("retract_speed"))
	assert.Equal(t, 0.2, GetFloat("z_hop_height"))
	assert.Equal(t, 220.0, GetBed().X)
	assert.Equal(t, "./scripts", GetString("scripts_dir"))
	assert.Equal(t, "TIMELAPSE_TAKE_FRAME", GetString("trigger.klipper"))
	assert.Equal(t, "", GetString("trigger.marlin"))
	assert.True(t, GetHistory().Enabled)
	assert.Equal(t, "./printpath_history.db", GetHistory().Path)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(t.TempDir()))
	assert.Equal(t, "klipper", GetString("firmware"))
}

func TestLoad_CorruptFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "printpath.cfg.json"), []byte(`{not json`), 0644))

	err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGlobalSettings(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(t.TempDir()))
	s := GlobalSettings()

	assert.Equal(t, "klipper", s["firmware"])
	assert.Equal(t, 9000, s["travel_speed"])
	assert.Equal(t, 0.2, s["z_hop_height"])

	bed, ok := s["bed_dimensions"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 220.0, bed["x"])
	assert.Equal(t, 220.0, bed["y"])
}

func TestGetModeSettings(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{"modes": {"orbit": {"num_orbits": 2, "orbit_radius_xy": 45.0}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "printpath.cfg.json"), []byte(cfg), 0644))
	require.NoError(t, Load(dir))

	m := GetModeSettings("orbit")
	assert.EqualValues(t, 2, m["num_orbits"])
	assert.EqualValues(t, 45.0, m["orbit_radius_xy"])

	assert.Empty(t, GetModeSettings("unknown"))
}
