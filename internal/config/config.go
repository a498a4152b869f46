// Package config handles loading and saving the program settings.
package config

import "time"

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and timing settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	TickRate   int  `yaml:"tick_rate"` // simulation steps per second
}

// TickInterval returns the time between simulation steps.
func (g GraphicsConfig) TickInterval() time.Duration {
	if g.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(g.TickRate)
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// SceneConfig selects a preset and overrides some of its physics.
// Zero values keep the preset's own setting.
type SceneConfig struct {
	Preset   string  `yaml:"preset"`
	Mass     float32 `yaml:"mass"`
	Velocity float32 `yaml:"velocity"`
	Gravity  float32 `yaml:"gravity"`
	Radius   float32 `yaml:"radius"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:    640,
			Height:   640,
			VSync:    true,
			TickRate: 60,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.8,
			SFXVolume:    0.6,
		},
		Scene: SceneConfig{
			Preset: "box",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
