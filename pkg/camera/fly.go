package camera

import (
	"github.com/chewxy/math32"

	"github.com/thmxv/blendy-cameras/pkg/math"
)

// FlySettings tunes a free-fly controller.
type FlySettings struct {
	Rotate Chord // Held chord for mouse-look

	KeyForward  Key
	KeyBackward Key
	KeyLeft     Key
	KeyRight    Key
	KeyUp       Key
	KeyDown     Key

	RotateSensitivity float32
	MoveSensitivity   float32
	SpeedSensitivity  float32 // Scales scroll's effect on speed

	MinSpeed, MaxSpeed float32

	// GrabCursor requests a grabbed (locked, hidden) cursor while
	// mouse-look is held.
	GrabCursor bool
}

// DefaultFlySettings returns defaults matching the orbit bindings:
// middle-drag looks around, WASD + Q/E translate.
func DefaultFlySettings() FlySettings {
	return FlySettings{
		Rotate:            Chord{Button: ButtonMiddle},
		KeyForward:        KeyW,
		KeyBackward:       KeyS,
		KeyLeft:           KeyA,
		KeyRight:          KeyD,
		KeyUp:             KeyE,
		KeyDown:           KeyQ,
		RotateSensitivity: 1.0,
		MoveSensitivity:   1.0,
		SpeedSensitivity:  1.0,
		MinSpeed:          0.05,
		MaxSpeed:          100.0,
		GrabCursor:        true,
	}
}

func (s *FlySettings) sanitize() {
	if s.RotateSensitivity <= 0 {
		s.RotateSensitivity = 1.0
	}
	if s.MoveSensitivity <= 0 {
		s.MoveSensitivity = 1.0
	}
	if s.SpeedSensitivity <= 0 {
		s.SpeedSensitivity = 1.0
	}
	if s.MinSpeed <= 0 {
		s.MinSpeed = 0.05
	}
	if s.MaxSpeed < s.MinSpeed {
		s.MaxSpeed = s.MinSpeed
	}
}

// MovementKeys returns the translation keys, for building UI passthrough
// sets.
func (s *FlySettings) MovementKeys() []Key {
	return []Key{
		s.KeyForward, s.KeyBackward,
		s.KeyLeft, s.KeyRight,
		s.KeyUp, s.KeyDown,
	}
}

// FlyController is the per-camera free-fly state: mouse-look plus
// camera-local key movement at an adjustable speed. Unlike orbit it has no
// pivot; the camera translates freely. In an orthographic projection
// forward/backward movement has no visual effect, which mirrors how such a
// projection works and is left as is.
type FlyController struct {
	Settings FlySettings

	// Enabled gates input handling. Only one of fly and orbit is
	// typically enabled for a camera at a time.
	Enabled bool

	// Speed is the translation speed in world units per second, adjusted
	// live by scrolling.
	Speed float32
}

// NewFlyController creates a disabled controller with the given settings;
// orbit mode is the usual starting mode.
func NewFlyController(settings FlySettings) *FlyController {
	settings.sanitize()
	return &FlyController{
		Settings: settings,
		Speed:    1.0,
	}
}

// RotatePressed reports whether the mouse-look chord is held.
func (c *FlyController) RotatePressed(frame *InputFrame) bool {
	return c.Settings.Rotate.Pressed(frame, KeyNone)
}

// MovementPressed reports whether any translation key is held.
func (c *FlyController) MovementPressed(frame *InputFrame) bool {
	for _, k := range c.Settings.MovementKeys() {
		if frame.KeysHeld.Has(k) {
			return true
		}
	}
	return false
}

// MovementJustPressed reports whether a translation key went down this
// frame. Used by the arbiter to claim the viewport for this camera.
func (c *FlyController) MovementJustPressed(frame *InputFrame) bool {
	for _, k := range c.Settings.MovementKeys() {
		if frame.KeysPressed.Has(k) {
			return true
		}
	}
	return false
}

// HasManualInput reports whether the frame carries input this controller
// would act on.
func (c *FlyController) HasManualInput(frame *InputFrame) bool {
	return c.RotatePressed(frame) || c.MovementPressed(frame) ||
		frame.ScrollDelta != 0
}

// Update runs one frame of the controller. dt is the frame time in
// seconds. Returns whether the camera transform was written.
func (c *FlyController) Update(frame *InputFrame, vp Viewport, dt float32, pose *Pose) bool {
	if !c.Enabled {
		return false
	}

	moved := false

	if frame.ScrollDelta != 0 {
		// Proportional adjustment: each scroll line changes speed by
		// 10%, so the control feels the same at any magnitude.
		delta := frame.ScrollDelta * c.Settings.SpeedSensitivity * c.Speed * 0.1
		c.Speed = math.Clamp(c.Speed+delta, c.Settings.MinSpeed, c.Settings.MaxSpeed)
	}

	if c.RotatePressed(frame) && frame.PointerDelta.LengthSq() > 0 &&
		vp.WindowW > 0 && vp.WindowH > 0 {
		rotate := frame.PointerDelta.Scale(c.Settings.RotateSensitivity)
		// Window-size scaling keeps sensitivity sane in small
		// viewports: a full-width drag is one revolution.
		deltaYaw := rotate.X / vp.WindowW * math32.Pi * 2
		deltaPitch := rotate.Y / vp.WindowH * math32.Pi

		// Rebuild from yaw/pitch so no roll accumulates.
		yaw, pitch := pose.Rotation.ToYawPitch()
		yaw -= deltaYaw
		pitch -= deltaPitch
		pose.Rotation = math.QuatFromYawPitch(yaw, pitch)
		moved = true
	}

	var wish math.Vec3
	if frame.KeysHeld.Has(c.Settings.KeyForward) {
		wish = wish.Add(pose.Forward())
	}
	if frame.KeysHeld.Has(c.Settings.KeyBackward) {
		wish = wish.Sub(pose.Forward())
	}
	if frame.KeysHeld.Has(c.Settings.KeyLeft) {
		wish = wish.Sub(pose.Right())
	}
	if frame.KeysHeld.Has(c.Settings.KeyRight) {
		wish = wish.Add(pose.Right())
	}
	if frame.KeysHeld.Has(c.Settings.KeyUp) {
		wish = wish.Add(pose.Up())
	}
	if frame.KeysHeld.Has(c.Settings.KeyDown) {
		wish = wish.Sub(pose.Up())
	}
	if wish.LengthSq() > 0 {
		step := wish.Normalize().Scale(c.Speed * c.Settings.MoveSensitivity * dt)
		pose.Position = pose.Position.Add(step)
		moved = true
	}

	return moved
}
