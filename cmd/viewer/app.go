package main

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/thmxv/blendy-cameras/internal/config"
	"github.com/thmxv/blendy-cameras/internal/platform"
	"github.com/thmxv/blendy-cameras/internal/render"
	"github.com/thmxv/blendy-cameras/pkg/camera"
	"github.com/thmxv/blendy-cameras/pkg/math"
)

const cameraID camera.EntityID = 1

// App wires the window, input pump, demo scene and camera system into the
// main loop.
type App struct {
	cfg      *config.Config
	log      *zap.Logger
	window   *platform.Window
	pump     *platform.Pump
	renderer *render.Renderer
	scene    *BoxScene
	system   *camera.System
	rig      *camera.Rig
}

// NewApp creates the window, GL state and camera rig.
func NewApp(cfg *config.Config, log *zap.Logger) (*App, error) {
	window, err := platform.NewWindow(platform.Config{
		Title:      "blendy-cameras viewer",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, log)
	if err != nil {
		return nil, err
	}

	renderer, err := render.NewRenderer()
	if err != nil {
		window.Close()
		return nil, err
	}

	scene := buildDemoScene()
	system := camera.NewSystem(scene, log)
	system.TransitionDuration = cfg.TransitionDuration()
	system.FrameMargin = cfg.FrameMargin()

	fly := camera.NewFlyController(cfg.FlySettings())
	system.Sampler.Passthrough = camera.NewKeySet(fly.Settings.MovementKeys()...)

	w, h := window.Size()
	rig := &camera.Rig{
		ID:   cameraID,
		Pose: camera.Pose{Position: math.Vec3{X: 6, Y: 5, Z: 8}, Rotation: math.QuatIdentity()},
		Projection: camera.DefaultPerspective(float32(w) / float32(h)),
		Viewport: camera.Viewport{
			ID: 1,
			W:  float32(w), H: float32(h),
			WindowW: float32(w), WindowH: float32(h),
		},
		Orbit: camera.NewOrbitController(cfg.OrbitSettings()),
		Fly:   fly,
	}
	system.AddRig(rig)

	app := &App{
		cfg:      cfg,
		log:      log,
		window:   window,
		pump:     platform.NewPump(),
		renderer: renderer,
		scene:    scene,
		system:   system,
		rig:      rig,
	}
	app.pump.KeyPressed = app.handleShortcut
	return app, nil
}

// Close releases everything in reverse creation order.
func (a *App) Close() {
	a.renderer.Close()
	a.window.Close()
}

// Run is the main loop. Returns when the window is closed.
func (a *App) Run() error {
	last := time.Now()
	for {
		raw := a.pump.Poll()
		if a.pump.QuitRequested() {
			return nil
		}
		if w, h, ok := a.pump.Resized(); ok {
			a.resize(w, h)
		}

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		a.system.Update(raw, dt)
		if a.window.ApplyCursor(a.system.CursorRequest()) {
			a.pump.SuppressNextDelta()
		}

		w, h := a.window.Size()
		a.renderer.Frame(int32(w), int32(h))
		a.renderer.Draw(a.rig.Pose.ViewMatrix(), a.rig.Projection.Matrix(), a.scene.Boxes())
		a.window.SwapBuffers()
	}
}

func (a *App) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	a.rig.Viewport.W = float32(w)
	a.rig.Viewport.H = float32(h)
	a.rig.Viewport.WindowW = float32(w)
	a.rig.Viewport.WindowH = float32(h)
	a.rig.Projection.Aspect = float32(w) / float32(h)
	a.log.Debug("window resized", zap.Int("width", w), zap.Int("height", h))
}

// handleShortcut maps Blender-like keys to camera requests: numpad
// viewpoints (shift for the opposite side), numpad 5 for projection,
// Home to frame the scene, Tab to toggle orbit/fly.
func (a *App) handleShortcut(sc sdl.Scancode) {
	shift := sdl.GetModState()&sdl.KMOD_SHIFT != 0

	switch sc {
	case sdl.SCANCODE_KP_1:
		if shift {
			a.system.SetViewpoint(cameraID, camera.ViewpointBack)
		} else {
			a.system.SetViewpoint(cameraID, camera.ViewpointFront)
		}
	case sdl.SCANCODE_KP_3:
		if shift {
			a.system.SetViewpoint(cameraID, camera.ViewpointLeft)
		} else {
			a.system.SetViewpoint(cameraID, camera.ViewpointRight)
		}
	case sdl.SCANCODE_KP_7:
		if shift {
			a.system.SetViewpoint(cameraID, camera.ViewpointBottom)
		} else {
			a.system.SetViewpoint(cameraID, camera.ViewpointTop)
		}
	case sdl.SCANCODE_KP_5:
		a.system.SwitchProjection(cameraID)
	case sdl.SCANCODE_HOME:
		a.system.FrameEntities(cameraID, a.scene.IDs())
	case sdl.SCANCODE_TAB:
		if a.rig.Fly != nil && a.rig.Fly.Enabled {
			a.system.SwitchToOrbit(cameraID)
		} else {
			a.system.SwitchToFly(cameraID)
		}
	}
}
