package platform

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/thmxv/blendy-cameras/pkg/camera"
	"github.com/thmxv/blendy-cameras/pkg/math"
)

// keyMap translates the SDL scancodes the camera bindings care about.
var keyMap = map[sdl.Scancode]camera.Key{
	sdl.SCANCODE_LSHIFT: camera.KeyLeftShift,
	sdl.SCANCODE_LCTRL:  camera.KeyLeftCtrl,
	sdl.SCANCODE_LALT:   camera.KeyLeftAlt,
	sdl.SCANCODE_W:      camera.KeyW,
	sdl.SCANCODE_A:      camera.KeyA,
	sdl.SCANCODE_S:      camera.KeyS,
	sdl.SCANCODE_D:      camera.KeyD,
	sdl.SCANCODE_Q:      camera.KeyQ,
	sdl.SCANCODE_E:      camera.KeyE,
	sdl.SCANCODE_F:      camera.KeyF,
	sdl.SCANCODE_R:      camera.KeyR,
	sdl.SCANCODE_SPACE:  camera.KeySpace,
	sdl.SCANCODE_TAB:    camera.KeyTab,
	sdl.SCANCODE_KP_1:   camera.KeyKP1,
	sdl.SCANCODE_KP_3:   camera.KeyKP3,
	sdl.SCANCODE_KP_5:   camera.KeyKP5,
	sdl.SCANCODE_KP_7:   camera.KeyKP7,
	sdl.SCANCODE_KP_9:   camera.KeyKP9,
	sdl.SCANCODE_HOME:   camera.KeyHome,
}

func mapButton(b uint8) camera.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return camera.ButtonLeft
	case sdl.BUTTON_MIDDLE:
		return camera.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return camera.ButtonRight
	default:
		return camera.ButtonNone
	}
}

// Pump polls SDL events and accumulates them into per-frame RawInput
// snapshots for the camera system.
type Pump struct {
	held camera.ButtonSet
	keys camera.KeySet

	pointerPos    math.Vec2
	pointerInside bool

	quit          bool
	resizedW      int
	resizedH      int
	resized       bool
	suppressDelta bool

	// KeyPressed callbacks fire on key-down, for host shortcuts
	// (viewpoints, mode switches) outside the camera bindings.
	KeyPressed func(sc sdl.Scancode)
}

// NewPump creates an input pump.
func NewPump() *Pump {
	return &Pump{keys: make(camera.KeySet)}
}

// SuppressNextDelta discards the pointer delta of the next poll. Called
// after a cursor warp so the jump does not register as camera motion.
func (p *Pump) SuppressNextDelta() {
	p.suppressDelta = true
}

// QuitRequested reports whether a quit event arrived.
func (p *Pump) QuitRequested() bool {
	return p.quit
}

// Resized returns the new window size if a resize arrived this frame.
func (p *Pump) Resized() (int, int, bool) {
	return p.resizedW, p.resizedH, p.resized
}

// Poll drains the SDL event queue and returns the frame's input snapshot.
func (p *Pump) Poll() camera.RawInput {
	var (
		delta    math.Vec2
		scroll   float32
		pressed  camera.ButtonSet
		released camera.ButtonSet
		keysDown camera.KeySet
	)
	p.resized = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			p.quit = true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED:
				p.resizedW = int(e.Data1)
				p.resizedH = int(e.Data2)
				p.resized = true
			case sdl.WINDOWEVENT_ENTER:
				p.pointerInside = true
			case sdl.WINDOWEVENT_LEAVE:
				p.pointerInside = false
			}

		case *sdl.KeyboardEvent:
			key, known := keyMap[e.Keysym.Scancode]
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				if known {
					if keysDown == nil {
						keysDown = make(camera.KeySet)
					}
					keysDown[key] = struct{}{}
					p.keys[key] = struct{}{}
				}
				if p.KeyPressed != nil {
					p.KeyPressed(e.Keysym.Scancode)
				}
			} else if e.Type == sdl.KEYUP && known {
				delete(p.keys, key)
			}

		case *sdl.MouseMotionEvent:
			delta.X += float32(e.XRel)
			delta.Y += float32(e.YRel)
			p.pointerPos = math.Vec2{X: float32(e.X), Y: float32(e.Y)}

		case *sdl.MouseWheelEvent:
			scroll += float32(e.Y)

		case *sdl.MouseButtonEvent:
			b := mapButton(e.Button)
			if b == camera.ButtonNone {
				break
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				pressed = pressed.With(b)
				p.held = p.held.With(b)
			} else if e.Type == sdl.MOUSEBUTTONUP {
				released = released.With(b)
				p.held &^= 1 << b
			}
		}
	}

	if p.suppressDelta {
		delta = math.Vec2{}
		p.suppressDelta = false
	}

	heldKeys := make(camera.KeySet, len(p.keys))
	for k := range p.keys {
		heldKeys[k] = struct{}{}
	}

	return camera.RawInput{
		PointerDelta:    delta,
		ScrollDelta:     scroll,
		ButtonsPressed:  pressed,
		ButtonsHeld:     p.held,
		ButtonsReleased: released,
		KeysPressed:     keysDown,
		KeysHeld:        heldKeys,
		PointerPos:      p.pointerPos,
		PointerValid:    p.pointerInside,
	}
}
