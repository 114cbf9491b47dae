// Package platform glues the camera library to SDL2: window and OpenGL
// context creation, event pumping into per-frame input snapshots, and
// applying the cursor lock mode the camera system requests.
package platform

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/thmxv/blendy-cameras/pkg/camera"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps SDL2 window and OpenGL context.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	log       *zap.Logger

	cursorMode camera.CursorLockMode
}

// NewWindow creates a new window with an OpenGL context. logger may be
// nil.
func NewWindow(cfg Config, logger *zap.Logger) (*Window, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Window{
		config: cfg,
		log:    logger,
	}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			logger.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// Size returns the current window size.
func (w *Window) Size() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// ApplyCursor realizes the cursor lock mode the camera system computed:
// grabbed enables relative mouse mode, wrapped teleports the cursor to the
// opposite viewport edge when it crosses one, free releases everything.
// Returns whether the cursor was warped, so the caller can discard the
// synthetic motion delta of the warp.
func (w *Window) ApplyCursor(req camera.CursorRequest) bool {
	if req.Mode != w.cursorMode {
		sdl.SetRelativeMouseMode(req.Mode == camera.CursorGrabbed)
		w.cursorMode = req.Mode
		w.log.Debug("cursor mode changed", zap.String("mode", req.Mode.String()))
	}

	if req.Mode != camera.CursorWrapped {
		return false
	}
	x, y, _ := sdl.GetMouseState()
	vp := req.Viewport
	fx, fy := float32(x), float32(y)
	nx, ny := fx, fy
	switch {
	case fx <= vp.X:
		nx = vp.X + vp.W - 1
	case fx >= vp.X+vp.W-1:
		nx = vp.X + 1
	}
	switch {
	case fy <= vp.Y:
		ny = vp.Y + vp.H - 1
	case fy >= vp.Y+vp.H-1:
		ny = vp.Y + 1
	}
	if nx != fx || ny != fy {
		w.sdlWindow.WarpMouseInWindow(int32(nx), int32(ny))
		return true
	}
	return false
}
