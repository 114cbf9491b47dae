// Package config handles viewer configuration loading and management.
package config

import "github.com/thmxv/blendy-cameras/pkg/camera"

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Orbit    OrbitConfig    `yaml:"orbit"`
	Fly      FlyConfig      `yaml:"fly"`
	Camera   CameraConfig   `yaml:"camera"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// OrbitConfig tunes the orbit/pan/zoom controls.
type OrbitConfig struct {
	OrbitSensitivity float32 `yaml:"orbit_sensitivity"` // Radians per pixel
	PanSensitivity   float32 `yaml:"pan_sensitivity"`
	ZoomSensitivity  float32 `yaml:"zoom_sensitivity"`
	MinDistance      float32 `yaml:"min_distance"`
	MaxDistance      float32 `yaml:"max_distance"`
	ClampPitch       bool    `yaml:"clamp_pitch"`
	ZoomToCursor     bool    `yaml:"zoom_to_cursor"`
	AutoDepth        bool    `yaml:"auto_depth"`
	WrapCursor       bool    `yaml:"wrap_cursor"`
}

// FlyConfig tunes the fly controls.
type FlyConfig struct {
	RotateSensitivity float32 `yaml:"rotate_sensitivity"`
	MoveSensitivity   float32 `yaml:"move_sensitivity"`
	SpeedSensitivity  float32 `yaml:"speed_sensitivity"`
	MinSpeed          float32 `yaml:"min_speed"`
	MaxSpeed          float32 `yaml:"max_speed"`
	GrabCursor        bool    `yaml:"grab_cursor"`
}

// CameraConfig holds shared camera behavior settings.
type CameraConfig struct {
	TransitionDuration float32 `yaml:"transition_duration"` // Seconds
	FrameMargin        float32 `yaml:"frame_margin"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	orbit := camera.DefaultOrbitSettings()
	fly := camera.DefaultFlySettings()
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Orbit: OrbitConfig{
			OrbitSensitivity: orbit.OrbitSensitivity,
			PanSensitivity:   orbit.PanSensitivity,
			ZoomSensitivity:  orbit.ZoomSensitivity,
			MinDistance:      orbit.MinDistance,
			MaxDistance:      orbit.MaxDistance,
			ClampPitch:       orbit.ClampPitch,
			ZoomToCursor:     orbit.ZoomToCursor,
			AutoDepth:        orbit.AutoDepth,
			WrapCursor:       orbit.WrapCursor,
		},
		Fly: FlyConfig{
			RotateSensitivity: fly.RotateSensitivity,
			MoveSensitivity:   fly.MoveSensitivity,
			SpeedSensitivity:  fly.SpeedSensitivity,
			MinSpeed:          fly.MinSpeed,
			MaxSpeed:          fly.MaxSpeed,
			GrabCursor:        fly.GrabCursor,
		},
		Camera: CameraConfig{
			TransitionDuration: camera.DefaultTransitionDuration,
			FrameMargin:        camera.DefaultFrameMargin,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// OrbitSettings converts the config into controller settings, keeping the
// default chords. Out-of-range values are clamped by the controller.
func (c *Config) OrbitSettings() camera.OrbitSettings {
	s := camera.DefaultOrbitSettings()
	s.OrbitSensitivity = c.Orbit.OrbitSensitivity
	s.PanSensitivity = c.Orbit.PanSensitivity
	s.ZoomSensitivity = c.Orbit.ZoomSensitivity
	s.MinDistance = c.Orbit.MinDistance
	s.MaxDistance = c.Orbit.MaxDistance
	s.ClampPitch = c.Orbit.ClampPitch
	s.ZoomToCursor = c.Orbit.ZoomToCursor
	s.AutoDepth = c.Orbit.AutoDepth
	s.WrapCursor = c.Orbit.WrapCursor
	return s
}

// FlySettings converts the config into controller settings, keeping the
// default bindings.
func (c *Config) FlySettings() camera.FlySettings {
	s := camera.DefaultFlySettings()
	s.RotateSensitivity = c.Fly.RotateSensitivity
	s.MoveSensitivity = c.Fly.MoveSensitivity
	s.SpeedSensitivity = c.Fly.SpeedSensitivity
	s.MinSpeed = c.Fly.MinSpeed
	s.MaxSpeed = c.Fly.MaxSpeed
	s.GrabCursor = c.Fly.GrabCursor
	return s
}

// TransitionDuration returns the configured duration, falling back to the
// default for non-positive values.
func (c *Config) TransitionDuration() float32 {
	if c.Camera.TransitionDuration <= 0 {
		return camera.DefaultTransitionDuration
	}
	return c.Camera.TransitionDuration
}

// FrameMargin returns the configured margin, falling back to the default
// for values that would not fit the geometry.
func (c *Config) FrameMargin() float32 {
	if c.Camera.FrameMargin < 1 {
		return camera.DefaultFrameMargin
	}
	return c.Camera.FrameMargin
}
