package camera

import (
	"github.com/chewxy/math32"

	"github.com/thmxv/blendy-cameras/pkg/math"
)

// OrbitState is the orbit controller's drag state. Transitions are
// level-triggered from the held chords each frame; releasing the button
// returns to idle immediately, there is no momentum.
type OrbitState uint8

const (
	OrbitIdle OrbitState = iota
	Orbiting
	Panning
)

// pitchLimit keeps the pitch just short of the poles to avoid gimbal flip.
const pitchLimit = math32.Pi/2 - 0.001

// minRadius is the hard floor under every distance computation; a zero
// radius produces a degenerate view matrix.
const minRadius = 0.05

// OrbitSettings tunes an orbit/pan/zoom controller. Invalid values are
// clamped, not rejected.
type OrbitSettings struct {
	Orbit Chord // Drag chord that orbits
	Pan   Chord // Drag chord that pans

	OrbitSensitivity float32 // Radians per pixel of pointer motion
	PanSensitivity   float32
	ZoomSensitivity  float32 // Fraction of distance per scroll line

	MinDistance float32
	MaxDistance float32

	// ClampPitch limits pitch to just under +/-90 degrees. When false
	// the camera may go upside down and yaw direction is inverted while
	// it is, which keeps rotation intuitive.
	ClampPitch bool

	// ZoomToCursor keeps the point under the cursor stationary while
	// zooming by nudging the pivot along the cursor ray.
	ZoomToCursor bool

	// AutoDepth re-anchors distance and pivot to the geometry under the
	// cursor when a gesture starts.
	AutoDepth bool

	// WrapCursor requests cursor wrapping at viewport edges during
	// orbit/pan drags.
	WrapCursor bool
}

// DefaultOrbitSettings returns Blender-like defaults: middle-drag orbits,
// shift+middle-drag pans.
func DefaultOrbitSettings() OrbitSettings {
	return OrbitSettings{
		Orbit:            Chord{Button: ButtonMiddle},
		Pan:              Chord{Button: ButtonMiddle, Modifier: KeyLeftShift},
		OrbitSensitivity: 0.005,
		PanSensitivity:   1.0,
		ZoomSensitivity:  0.2,
		MinDistance:      minRadius,
		MaxDistance:      10000.0,
		ClampPitch:       true,
		ZoomToCursor:     true,
		AutoDepth:        true,
		WrapCursor:       true,
	}
}

func (s *OrbitSettings) sanitize() {
	if s.OrbitSensitivity <= 0 {
		s.OrbitSensitivity = 0.005
	}
	if s.PanSensitivity <= 0 {
		s.PanSensitivity = 1.0
	}
	if s.ZoomSensitivity <= 0 {
		s.ZoomSensitivity = 0.2
	}
	if s.MinDistance < minRadius {
		s.MinDistance = minRadius
	}
	if s.MaxDistance < s.MinDistance {
		s.MaxDistance = s.MinDistance
	}
}

// OrbitController is the per-camera orbit/pan/zoom state machine.
type OrbitController struct {
	Settings OrbitSettings

	// Enabled gates input handling; a disabled controller never writes
	// the camera transform from input.
	Enabled bool

	// Focus is the point the camera orbits around and looks at.
	Focus math.Vec3

	// Yaw and Pitch are the orbit angles in radians; Radius is the
	// distance from Focus to the camera.
	Yaw, Pitch, Radius float32

	initialized bool
	upsideDown  bool
	state       OrbitState

	// World-space pivot for auto depth and zoom-to-cursor, refreshed at
	// gesture start and on scroll.
	pivot    math.Vec3
	hasPivot bool

	// forceUpdate writes the transform on the next update even without
	// input; set after values are modified directly.
	forceUpdate bool
}

// NewOrbitController creates an enabled controller with the given settings.
func NewOrbitController(settings OrbitSettings) *OrbitController {
	settings.sanitize()
	return &OrbitController{
		Settings: settings,
		Enabled:  true,
		Radius:   settings.MinDistance,
	}
}

// State returns the current drag state.
func (c *OrbitController) State() OrbitState {
	return c.state
}

// ForceUpdate makes the next update write the camera transform from the
// controller's current values regardless of input.
func (c *OrbitController) ForceUpdate() {
	c.forceUpdate = true
}

// DragPressed reports whether an orbit or pan chord is held.
func (c *OrbitController) DragPressed(frame *InputFrame) bool {
	return c.Settings.Orbit.Pressed(frame, c.Settings.Pan.Modifier) ||
		c.Settings.Pan.Pressed(frame, c.Settings.Orbit.Modifier)
}

// DragJustPressed reports whether an orbit or pan gesture started this
// frame.
func (c *OrbitController) DragJustPressed(frame *InputFrame) bool {
	return c.Settings.Orbit.JustPressed(frame, c.Settings.Pan.Modifier) ||
		c.Settings.Pan.JustPressed(frame, c.Settings.Orbit.Modifier)
}

// DragJustReleased reports whether an orbit or pan gesture ended this
// frame.
func (c *OrbitController) DragJustReleased(frame *InputFrame) bool {
	return c.Settings.Orbit.JustReleased(frame, c.Settings.Pan.Modifier) ||
		c.Settings.Pan.JustReleased(frame, c.Settings.Orbit.Modifier)
}

// HasManualInput reports whether the frame carries input this controller
// would act on.
func (c *OrbitController) HasManualInput(frame *InputFrame) bool {
	return c.DragPressed(frame) || c.DragJustPressed(frame) || frame.ScrollDelta != 0
}

// SyncFromPose rebuilds yaw/pitch/focus from an externally written pose,
// keeping the current radius. Used when a transition is cancelled or when
// switching over from fly mode.
func (c *OrbitController) SyncFromPose(pose Pose) {
	yaw, pitch := pose.Rotation.ToYawPitch()
	c.Yaw = yaw
	c.Pitch = -pitch
	if c.Radius < c.Settings.MinDistance {
		c.Radius = c.Settings.MinDistance
	}
	c.Focus = pose.Position.Add(pose.Forward().Scale(c.Radius))
	c.initialized = true
}

// calcYawPitchRadius derives orbit angles from a camera translation and a
// focus point.
func calcYawPitchRadius(translation, focus math.Vec3) (yaw, pitch, radius float32) {
	comp := translation.Sub(focus)
	radius = math32.Max(comp.Length(), minRadius)
	yaw = math32.Atan2(comp.X, comp.Z)
	pitch = math32.Asin(comp.Y / radius)
	return yaw, pitch, radius
}

// orbitPose computes the camera pose for a set of orbit parameters.
func orbitPose(yaw, pitch, radius float32, focus math.Vec3) Pose {
	rot := math.QuatFromYawPitch(yaw, -pitch)
	return Pose{
		Position: focus.Add(rot.RotateVec3(math.Vec3{Z: 1}).Scale(radius)),
		Rotation: rot,
	}
}

func (c *OrbitController) initializeIfNecessary(pose *Pose, proj *Projection) {
	if c.initialized {
		return
	}
	c.Yaw, c.Pitch, c.Radius = calcYawPitchRadius(pose.Position, c.Focus)
	c.Radius = math.Clamp(c.Radius, c.Settings.MinDistance, c.Settings.MaxDistance)
	c.writePose(pose, proj)
	c.initialized = true
}

// writePose recomputes the camera transform from the orbit parameters.
func (c *OrbitController) writePose(pose *Pose, proj *Projection) {
	dist := c.Radius
	if proj.Orthographic {
		proj.Scale = c.Radius
		// Keep the camera far enough back that geometry near the
		// focus is not clipped.
		dist = (proj.Near + proj.Far) / 2
	}
	*pose = orbitPose(c.Yaw, c.Pitch, dist, c.Focus)
}

// Update runs one frame of the controller. Input is only applied when the
// controller is enabled and its camera is the active camera for the
// viewport; initialization and forced updates happen regardless. Returns
// whether the camera transform was written.
func (c *OrbitController) Update(frame *InputFrame, vp Viewport, resolver *DepthResolver, pose *Pose, proj *Projection, isActive bool) bool {
	c.initializeIfNecessary(pose, proj)

	moved := false
	if c.Enabled && isActive {
		moved = c.apply(frame, vp, resolver, pose, proj)
	} else {
		c.state = OrbitIdle
	}

	if moved || c.forceUpdate {
		c.writePose(pose, proj)
		c.forceUpdate = false
		return true
	}
	return false
}

func (c *OrbitController) apply(frame *InputFrame, vp Viewport, resolver *DepthResolver, pose *Pose, proj *Projection) bool {
	orbitPressed := c.Settings.Orbit.Pressed(frame, c.Settings.Pan.Modifier)
	panPressed := c.Settings.Pan.Pressed(frame, c.Settings.Orbit.Modifier)

	switch {
	case orbitPressed:
		c.state = Orbiting
	case panPressed:
		c.state = Panning
	default:
		c.state = OrbitIdle
	}

	if c.Settings.Orbit.JustPressed(frame, c.Settings.Pan.Modifier) ||
		c.Settings.Orbit.JustReleased(frame, c.Settings.Pan.Modifier) {
		c.upsideDown = pose.Up().Y <= 0
	}

	// Re-anchor the pivot once per gesture start and per scroll burst,
	// not every frame of a drag.
	if (c.Settings.AutoDepth || c.Settings.ZoomToCursor) &&
		(c.DragJustPressed(frame) || frame.ScrollDelta != 0) {
		c.updatePivot(frame, vp, resolver, pose, proj)
	}

	moved := false
	sens := c.Settings.OrbitSensitivity

	if c.state == Orbiting && frame.PointerDelta.LengthSq() > 0 {
		deltaYaw := frame.PointerDelta.X * sens
		if c.upsideDown && !c.Settings.ClampPitch {
			deltaYaw = -deltaYaw
		}
		deltaPitch := frame.PointerDelta.Y * sens

		preYaw, prePitch := c.Yaw, c.Pitch
		c.Yaw += deltaYaw
		c.Pitch += deltaPitch
		if c.Settings.ClampPitch {
			c.Pitch = math.Clamp(c.Pitch, -pitchLimit, pitchLimit)
		}
		if c.Settings.AutoDepth && c.hasPivot {
			c.orbitAroundPivot(preYaw, prePitch)
		}
		moved = true
	}

	if c.state == Panning && frame.PointerDelta.LengthSq() > 0 {
		pan := frame.PointerDelta.Scale(c.Settings.PanSensitivity)
		multiplier := float32(1.0)
		if proj.Orthographic {
			w, h := proj.Area()
			pan.X *= w / vp.W
			pan.Y *= h / vp.H
		} else {
			// Resolution and FOV independent, proportional to the
			// distance from the focus point.
			pan.X *= proj.FovY * proj.Aspect / vp.W
			pan.Y *= proj.FovY / vp.H
			multiplier = c.Radius
		}
		right := pose.Right().Scale(-pan.X)
		up := pose.Up().Scale(pan.Y)
		c.Focus = c.Focus.Add(right.Add(up).Scale(multiplier))
		moved = true
	}

	if frame.ScrollDelta != 0 {
		oldRadius := c.Radius
		c.Radius = math.Clamp(
			oldRadius*(1-frame.ScrollDelta*c.Settings.ZoomSensitivity),
			c.Settings.MinDistance, c.Settings.MaxDistance)
		if c.Settings.ZoomToCursor && c.hasPivot && c.Radius != oldRadius {
			c.zoomTowardPivot(oldRadius, pose, proj)
		}
		moved = true
	}

	return moved
}

// updatePivot raycasts under the cursor (viewport center when the pointer
// is unavailable) to set the zoom/orbit pivot, and with auto depth also
// re-anchors radius and focus to the geometry found there.
func (c *OrbitController) updatePivot(frame *InputFrame, vp Viewport, resolver *DepthResolver, pose *Pose, proj *Projection) {
	screenPt := vp.Center()
	if frame.PointerValid && vp.Contains(frame.PointerPos) {
		screenPt = frame.PointerPos
	}
	ray, ok := resolver.CursorRay(*pose, *proj, vp, screenPt)
	if !ok {
		return
	}

	if hit, _, found := resolver.NearestHit(ray); found {
		c.pivot = hit
		c.hasPivot = true
		if c.Settings.AutoDepth {
			// In orthographic the transform sits at a synthetic
			// distance; measure from the equivalent perspective
			// pose instead.
			camPose := *pose
			if proj.Orthographic {
				camPose = orbitPose(c.Yaw, c.Pitch, c.Radius, c.Focus)
			}
			toPivot := c.pivot.Sub(camPose.Position)
			factor := camPose.Forward().Dot(toPivot.Normalize())
			newRadius := math.Clamp(toPivot.Length()*factor,
				c.Settings.MinDistance, c.Settings.MaxDistance)
			c.Focus = camPose.Position.Add(camPose.Forward().Scale(newRadius))
			if !proj.Orthographic {
				c.Radius = newRadius
			}
		}
		return
	}

	// No geometry under the cursor: anchor the pivot at the current
	// orbit depth along the cursor ray.
	if proj.Orthographic {
		c.pivot = ray.At((proj.Far - proj.Near) / 2)
	} else {
		factor := pose.Forward().Dot(ray.Direction)
		if factor <= 0 {
			return
		}
		// The ray origin is on the near plane, not the camera.
		c.pivot = pose.Position.Add(ray.Direction.Scale(c.Radius / factor))
	}
	c.hasPivot = true
}

// orbitAroundPivot rotates the camera around the raycast pivot instead of
// the focus, relocating the focus so the orbit radius is preserved.
func (c *OrbitController) orbitAroundPivot(preYaw, prePitch float32) {
	old := orbitPose(preYaw, prePitch, c.Radius, c.Focus)

	yawQ := math.QuatFromAxisAngle(math.Vec3{Y: 1}, c.Yaw-preYaw)
	pitchLocal := math.QuatFromAxisAngle(math.Vec3{X: 1}, -(c.Pitch - prePitch))
	pitchGlobal := old.Rotation.Mul(pitchLocal).Mul(old.Rotation.Conjugate())
	rot := yawQ.Mul(pitchGlobal)

	newPos := c.pivot.Add(rot.RotateVec3(old.Position.Sub(c.pivot)))
	newRot := rot.Mul(old.Rotation).Normalize()
	forward := newRot.RotateVec3(math.Vec3{Z: -1})
	c.Focus = newPos.Add(forward.Scale(c.Radius))
}

// zoomTowardPivot shifts the focus so the point under the cursor stays
// visually stationary during the zoom. Recomputed every frame rather than
// integrated, so the approximation self-corrects.
func (c *OrbitController) zoomTowardPivot(oldRadius float32, pose *Pose, proj *Projection) {
	if proj.Orthographic {
		// Move the focus toward the pivot in the view plane by the
		// zoom ratio.
		toPivot := c.pivot.Sub(c.Focus)
		local := pose.Rotation.Conjugate().RotateVec3(toPivot)
		local.Z = 0
		planar := pose.Rotation.RotateVec3(local)
		c.Focus = c.Focus.Add(planar.Scale(1 - c.Radius/oldRadius))
		return
	}

	radiusDelta := c.Radius - oldRadius
	mouseDir := c.pivot.Sub(pose.Position).Normalize()
	factor := pose.Forward().Dot(mouseDir)
	if factor <= 0.0001 {
		return
	}
	newCamPos := pose.Position.Add(mouseDir.Scale(-radiusDelta / factor))
	c.Focus = newCamPos.Add(pose.Forward().Scale(c.Radius))
}
