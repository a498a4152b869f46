package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/bounce-box/internal/scene"
	"github.com/Faultbox/bounce-box/internal/sim"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 640 || cfg.Graphics.Height != 640 {
		t.Errorf("expected 640x640, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.TickRate != 60 {
		t.Errorf("expected tick rate 60, got %d", cfg.Graphics.TickRate)
	}
	if !cfg.Audio.Enabled || cfg.Audio.Muted {
		t.Error("expected audio enabled and unmuted by default")
	}
	if cfg.Scene.Preset != scene.PresetBox {
		t.Errorf("expected preset %q, got %q", scene.PresetBox, cfg.Scene.Preset)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{60, time.Second / 60},
		{120, time.Second / 120},
		{0, time.Second / 60},
		{-5, time.Second / 60},
	}
	for _, tt := range tests {
		g := GraphicsConfig{TickRate: tt.rate}
		if got := g.TickInterval(); got != tt.want {
			t.Errorf("TickInterval(%d) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1024
  height: 768
  fullscreen: true
  tick_rate: 120

audio:
  enabled: false
  sfx_volume: 0.3

scene:
  preset: classic
  mass: 0.0003

logging:
  level: debug
  log_file: bounce.log
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1024 || cfg.Graphics.Height != 768 {
		t.Errorf("expected 1024x768, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen")
	}
	if !cfg.Graphics.VSync {
		t.Error("vsync not in file should keep its default")
	}
	if cfg.Graphics.TickRate != 120 {
		t.Errorf("expected tick rate 120, got %d", cfg.Graphics.TickRate)
	}
	if cfg.Audio.Enabled {
		t.Error("expected audio disabled")
	}
	if cfg.Audio.MasterVolume != 0.8 {
		t.Errorf("master volume not in file should keep its default, got %f", cfg.Audio.MasterVolume)
	}
	if cfg.Scene.Preset != "classic" || cfg.Scene.Mass != 0.0003 {
		t.Errorf("unexpected scene section %+v", cfg.Scene)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "bounce.log" {
		t.Errorf("unexpected logging section %+v", cfg.Logging)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "graphics:\n  width: not a number\n  invalid syntax here\n"},
		{"unknown key", "graphics:\n  widht: 800\n"},
		{"removed section", "network:\n  login_server: localhost\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	if err := loadFromFile(Default(), filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFromEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("empty file: %v", err)
	}
	if *cfg != *Default() {
		t.Error("empty file changed the defaults")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("config.yaml", []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "preset flag",
			setup: func() { *flagPreset = "classic" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.Preset != "classic" {
					t.Errorf("expected preset classic, got %s", cfg.Scene.Preset)
				}
			},
			teardown: func() { *flagPreset = "" },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 1920
				*flagHeight = 1080
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
					t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "mute flag",
			setup: func() { *flagMute = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Audio.Muted {
					t.Error("expected muted with mute flag")
				}
			},
			teardown: func() { *flagMute = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
graphics:
  width: 1600
  height: 900
scene:
  preset: classic
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
	if cfg.Scene.Preset != "classic" {
		t.Errorf("expected preset classic from file, got %s", cfg.Scene.Preset)
	}
}

func TestLoadRejectsLogLevel(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("logging:\n  level: chatty\n"), 0644); err != nil {
		t.Fatal(err)
	}
	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Graphics.Width = 800
	cfg.Scene.Preset = "classic"
	cfg.Scene.Radius = 0.25
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("reloaded config %+v, want %+v", loaded, cfg)
	}
}

func TestSceneConfig(t *testing.T) {
	cfg := Default()
	cfg.Scene.Mass = 0.0004
	cfg.Scene.Radius = 0.25

	sc, err := cfg.SceneConfig()
	if err != nil {
		t.Fatalf("SceneConfig: %v", err)
	}
	if sc.Name != scene.PresetBox {
		t.Errorf("preset = %q", sc.Name)
	}
	if sc.Sim.Mass != 0.0004 {
		t.Errorf("mass = %v, want override", sc.Sim.Mass)
	}
	if sc.Sim.G != 9.8 || sc.Sim.VelocityConstant != 150 {
		t.Errorf("unset overrides changed preset values: %+v", sc.Sim)
	}
	if sc.Sim.Radius != 0.25 || sc.Mesh.Sphere.Radius != 0.25 || sc.Mesh.GroundShadow.Radius != 0.25 {
		t.Error("radius override should reach the physics and the mesh")
	}
}

func TestSceneConfigErrors(t *testing.T) {
	cfg := Default()
	cfg.Scene.Preset = "pinball"
	if _, err := cfg.SceneConfig(); !errors.Is(err, scene.ErrUnknownPreset) {
		t.Errorf("error = %v, want ErrUnknownPreset", err)
	}

	cfg = Default()
	cfg.Scene.Radius = 3 // wider than the box
	if _, err := cfg.SceneConfig(); !errors.Is(err, sim.ErrInvalidConstants) {
		t.Errorf("error = %v, want ErrInvalidConstants", err)
	}

	cfg = Default()
	cfg.Scene.Mass = -1
	if _, err := cfg.SceneConfig(); err == nil {
		t.Error("expected error for negative mass")
	}
}
