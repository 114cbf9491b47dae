// Package main is the interactive demo viewer: a handful of boxes and a
// full set of Blender-style camera controls.
//
// Controls: middle-drag orbits, shift+middle-drag pans, scroll zooms,
// Tab toggles fly mode (WASD + Q/E to move, scroll to change speed),
// numpad 1/3/7 snap viewpoints (shift for the opposite), numpad 5
// switches projection, Home frames the scene.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/thmxv/blendy-cameras/internal/config"
	"github.com/thmxv/blendy-cameras/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	defer func() { _ = log.Sync() }()

	log.Info("=== blendy-cameras viewer ===")
	log.Sugar().Debugf("Config: %+v", cfg)

	app, err := NewApp(cfg, log)
	if err != nil {
		log.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		log.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	log.Info("viewer closed normally")
}
