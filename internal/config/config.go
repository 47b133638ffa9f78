package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// BedConfig holds printer bed dimensions in millimetres.
type BedConfig struct {
	X float64 `json:"x" mapstructure:"x"`
	Y float64 `json:"y" mapstructure:"y"`
}

// HistoryConfig holds the job-history ledger settings.
type HistoryConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

// Load reads configuration from the JSON settings file and sets default
// values. configDir is the directory containing the settings file. A missing
// file is not an error; defaults apply.
func Load(configDir string) error {
	viper.SetDefault("log_level", "info")

	viper.SetDefault("firmware", "klipper")
	viper.SetDefault("travel_speed", 9000)
	viper.SetDefault("dwell_time", 500)
	viper.SetDefault("retract_length", 0.5)
	viper.SetDefault("retract_speed", 40)
	viper.SetDefault("z_hop_height", 0.2)

	viper.SetDefault("bed.x", 220.0)
	viper.SetDefault("bed.y", 220.0)

	viper.SetDefault("scripts_dir", "./scripts")

	viper.SetDefault("trigger.klipper", "TIMELAPSE_TAKE_FRAME")
	viper.SetDefault("trigger.marlin", "")

	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.path", "./printpath_history.db")

	viper.SetConfigName("printpath.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetFloat returns a float config value.
func GetFloat(key string) float64 {
	return viper.GetFloat64(key)
}

// GetBed returns the configured bed dimensions.
func GetBed() BedConfig {
	var bed BedConfig
	if err := viper.UnmarshalKey("bed", &bed); err != nil {
		return BedConfig{X: 220.0, Y: 220.0}
	}
	return bed
}

// GetHistory returns the job-history configuration.
func GetHistory() HistoryConfig {
	var h HistoryConfig
	if err := viper.UnmarshalKey("history", &h); err != nil {
		return HistoryConfig{}
	}
	return h
}

// GlobalSettings returns the merged global settings handed to every mode.
// Keys match the names the mode contract documents.
func GlobalSettings() map[string]any {
	bed := GetBed()
	return map[string]any{
		"firmware":       viper.GetString("firmware"),
		"travel_speed":   viper.GetInt("travel_speed"),
		"dwell_time":     viper.GetInt("dwell_time"),
		"retract_length": viper.GetFloat64("retract_length"),
		"retract_speed":  viper.GetInt("retract_speed"),
		"z_hop_height":   viper.GetFloat64("z_hop_height"),
		"bed_dimensions": map[string]any{"x": bed.X, "y": bed.Y},
		"klipper_trigger": viper.GetString("trigger.klipper"),
		"marlin_trigger":  viper.GetString("trigger.marlin"),
	}
}

// GetModeSettings returns the user overrides saved for a specific mode, or
// an empty map when none are configured.
func GetModeSettings(name string) map[string]any {
	m := viper.GetStringMap("modes." + name)
	if m == nil {
		return map[string]any{}
	}
	return m
}
