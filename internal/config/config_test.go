package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thmxv/blendy-cameras/pkg/camera"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test orbit defaults
	if cfg.Orbit.OrbitSensitivity != 0.005 {
		t.Errorf("expected orbit sensitivity 0.005, got %f", cfg.Orbit.OrbitSensitivity)
	}
	if !cfg.Orbit.ClampPitch {
		t.Error("expected clamp_pitch to be true by default")
	}
	if !cfg.Orbit.ZoomToCursor {
		t.Error("expected zoom_to_cursor to be true by default")
	}
	if !cfg.Orbit.AutoDepth {
		t.Error("expected auto_depth to be true by default")
	}

	// Test fly defaults
	if cfg.Fly.MinSpeed != 0.05 {
		t.Errorf("expected min speed 0.05, got %f", cfg.Fly.MinSpeed)
	}
	if cfg.Fly.MaxSpeed != 100.0 {
		t.Errorf("expected max speed 100, got %f", cfg.Fly.MaxSpeed)
	}

	// Test camera defaults
	if cfg.Camera.TransitionDuration != 0.3 {
		t.Errorf("expected transition duration 0.3, got %f", cfg.Camera.TransitionDuration)
	}
	if cfg.Camera.FrameMargin != 1.2 {
		t.Errorf("expected frame margin 1.2, got %f", cfg.Camera.FrameMargin)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

orbit:
  orbit_sensitivity: 0.01
  zoom_sensitivity: 0.3
  min_distance: 0.5
  max_distance: 500
  clamp_pitch: false

fly:
  min_speed: 0.1
  max_speed: 50
  grab_cursor: false

camera:
  transition_duration: 0.5
  frame_margin: 1.5

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Orbit.OrbitSensitivity != 0.01 {
		t.Errorf("expected orbit sensitivity 0.01, got %f", cfg.Orbit.OrbitSensitivity)
	}
	if cfg.Orbit.ClampPitch {
		t.Error("expected clamp_pitch to be false")
	}
	if cfg.Orbit.MaxDistance != 500 {
		t.Errorf("expected max distance 500, got %f", cfg.Orbit.MaxDistance)
	}
	// Unspecified keys keep their defaults.
	if !cfg.Orbit.AutoDepth {
		t.Error("expected auto_depth to keep its default")
	}

	if cfg.Fly.MaxSpeed != 50 {
		t.Errorf("expected max speed 50, got %f", cfg.Fly.MaxSpeed)
	}
	if cfg.Fly.GrabCursor {
		t.Error("expected grab_cursor to be false")
	}

	if cfg.Camera.TransitionDuration != 0.5 {
		t.Errorf("expected transition duration 0.5, got %f", cfg.Camera.TransitionDuration)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config) error
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) error {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				return nil
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) error {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
				return nil
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) error {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
				return nil
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) error {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
				return nil
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "camera tuning flags",
			setup: func() {
				*flagDuration = 0.6
				*flagMargin = 1.5
			},
			verify: func(cfg *Config) error {
				if cfg.Camera.TransitionDuration != float32(0.6) {
					t.Errorf("expected transition duration 0.6, got %v", cfg.Camera.TransitionDuration)
				}
				if cfg.Camera.FrameMargin != 1.5 {
					t.Errorf("expected frame margin 1.5, got %v", cfg.Camera.FrameMargin)
				}
				return nil
			},
			teardown: func() {
				*flagDuration = 0
				*flagMargin = 0
			},
		},
		{
			name: "log file flag",
			setup: func() {
				*flagLogFile = "viewer.log"
			},
			verify: func(cfg *Config) error {
				if cfg.Logging.LogFile != "viewer.log" {
					t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
				}
				return nil
			},
			teardown: func() {
				*flagLogFile = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSettingsConversionClampsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Orbit.OrbitSensitivity = -1
	cfg.Orbit.MinDistance = 0
	cfg.Fly.MaxSpeed = -5
	cfg.Camera.TransitionDuration = -1
	cfg.Camera.FrameMargin = 0

	// The controllers clamp on construction; make sure the conversion
	// path ends in valid values.
	if s := camera.NewOrbitController(cfg.OrbitSettings()).Settings; s.OrbitSensitivity <= 0 || s.MinDistance <= 0 {
		t.Errorf("invalid orbit settings survived: %+v", s)
	}
	if s := camera.NewFlyController(cfg.FlySettings()).Settings; s.MaxSpeed < s.MinSpeed {
		t.Errorf("invalid fly settings survived: %+v", s)
	}
	if cfg.TransitionDuration() != 0.3 {
		t.Errorf("expected default duration for invalid value, got %v", cfg.TransitionDuration())
	}
	if cfg.FrameMargin() != 1.2 {
		t.Errorf("expected default margin for invalid value, got %v", cfg.FrameMargin())
	}
}
