package camera

import (
	"go.uber.org/zap"

	"github.com/thmxv/blendy-cameras/pkg/math"
)

// Rig is a camera under the system's control: its pose, projection and
// viewport, plus the attached controllers. Either controller may be nil; a
// rig with neither is valid and simply ignores all input and requests.
type Rig struct {
	ID         EntityID
	Pose       Pose
	Projection Projection
	Viewport   Viewport

	// Order breaks claiming ties when viewports overlap: the rig with
	// the highest order under the pointer wins, matching render order.
	Order int

	Orbit *OrbitController
	Fly   *FlyController

	transition *Transition

	// Saved counterpart projection for projection switching.
	otherProjection *Projection
}

// Viewpoint labels the rig's current orientation. It is recomputed from
// the pose, so it reverts to user naturally after any manual input.
func (r *Rig) Viewpoint() Viewpoint {
	return ViewpointOf(r.Pose.Rotation)
}

// InTransition reports whether a viewpoint/frame transition is in flight.
func (r *Rig) InTransition() bool {
	return r.transition != nil
}

// orbitRadius returns the rig's orbit distance, or a fallback when no
// orbit controller is attached.
func (r *Rig) orbitRadius() float32 {
	if r.Orbit != nil {
		return r.Orbit.Radius
	}
	return minRadius
}

// hasManualInput reports whether the frame carries input an enabled
// controller on this rig would act on.
func (r *Rig) hasManualInput(frame *InputFrame) bool {
	if r.Fly != nil && r.Fly.Enabled && r.Fly.HasManualInput(frame) {
		return true
	}
	if r.Orbit != nil && r.Orbit.Enabled && r.Orbit.HasManualInput(frame) {
		return true
	}
	return false
}

// ActiveCameraSet maps each viewport to the camera currently receiving
// controller input for it. Entries are created on first interaction and
// overwritten on later claims, never deleted.
type ActiveCameraSet map[ViewportID]EntityID

// ActiveFor returns the active camera for a viewport.
func (s ActiveCameraSet) ActiveFor(vp ViewportID) (EntityID, bool) {
	id, ok := s[vp]
	return id, ok
}

// Claim makes the camera active for the viewport.
func (s ActiveCameraSet) Claim(vp ViewportID, cam EntityID) {
	s[vp] = cam
}

// System owns the camera rigs and runs the per-frame control logic:
// input sampling, active-camera tracking, and for each camera exactly one
// of transition, fly or orbit writing the transform.
type System struct {
	Sampler  Sampler
	Resolver DepthResolver

	// TransitionDuration is used for viewpoint and framing moves.
	TransitionDuration float32
	// FrameMargin scales the fit distance of framing requests.
	FrameMargin float32

	rigs   map[EntityID]*Rig
	order  []EntityID
	active ActiveCameraSet
	cursor CursorRequest

	log *zap.Logger
}

// NewSystem creates an empty system. logger may be nil.
func NewSystem(scene Scene, logger *zap.Logger) *System {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &System{
		Resolver:           DepthResolver{Scene: scene},
		TransitionDuration: DefaultTransitionDuration,
		FrameMargin:        DefaultFrameMargin,
		rigs:               make(map[EntityID]*Rig),
		active:             make(ActiveCameraSet),
		log:                logger,
	}
}

// AddRig registers a camera. A rig re-added under the same ID replaces the
// previous one.
func (s *System) AddRig(rig *Rig) {
	if _, exists := s.rigs[rig.ID]; !exists {
		s.order = append(s.order, rig.ID)
	}
	s.rigs[rig.ID] = rig
}

// Rig returns a registered camera rig.
func (s *System) Rig(id EntityID) (*Rig, bool) {
	rig, ok := s.rigs[id]
	return rig, ok
}

// Active returns the active camera for a viewport.
func (s *System) Active(vp ViewportID) (EntityID, bool) {
	return s.active.ActiveFor(vp)
}

// CursorRequest returns the cursor lock mode computed by the last update.
// The host windowing layer is responsible for applying it.
func (s *System) CursorRequest() CursorRequest {
	return s.cursor
}

// Update runs one frame: samples input, resolves which camera is active
// per viewport, then steps every rig. dt is the frame time in seconds.
func (s *System) Update(raw RawInput, dt float32) {
	frame := s.Sampler.Sample(raw)

	s.claimActiveCameras(&frame)

	for _, id := range s.order {
		s.updateRig(s.rigs[id], &frame, dt)
	}

	s.cursor = s.computeCursorRequest(&frame)
}

// claimActiveCameras updates the viewport -> camera mapping from this
// frame's controller-activating input. Pointer-driven claims require the
// pointer inside the rig's viewport, highest order winning; fly movement
// keys claim for their own camera so movement never leaks to another
// camera sharing the viewport.
func (s *System) claimActiveCameras(frame *InputFrame) {
	type claim struct {
		rig *Rig
		set bool
	}
	claims := make(map[ViewportID]claim)

	for _, id := range s.order {
		rig := s.rigs[id]

		if s.wantsPointerClaim(rig, frame) &&
			frame.PointerValid && rig.Viewport.Contains(frame.PointerPos) {
			prev := claims[rig.Viewport.ID]
			if !prev.set || rig.Order >= prev.rig.Order {
				claims[rig.Viewport.ID] = claim{rig: rig, set: true}
			}
		}

		// Movement keys work without the pointer, e.g. while the
		// cursor is grabbed or outside the window.
		if rig.Fly != nil && rig.Fly.Enabled && rig.Fly.MovementJustPressed(frame) {
			pointerElsewhere := frame.PointerValid &&
				!rig.Viewport.Contains(frame.PointerPos)
			if !pointerElsewhere {
				claims[rig.Viewport.ID] = claim{rig: rig, set: true}
			}
		}
	}

	for vp, c := range claims {
		if c.set {
			prev, had := s.active.ActiveFor(vp)
			s.active.Claim(vp, c.rig.ID)
			if !had || prev != c.rig.ID {
				s.log.Debug("active camera changed",
					zap.Uint32("viewport", uint32(vp)),
					zap.Uint32("camera", uint32(c.rig.ID)))
			}
		}
	}
}

func (s *System) wantsPointerClaim(rig *Rig, frame *InputFrame) bool {
	if rig.Orbit != nil && rig.Orbit.Enabled {
		if rig.Orbit.DragJustPressed(frame) || frame.ScrollDelta != 0 {
			return true
		}
	}
	if rig.Fly != nil && rig.Fly.Enabled {
		if rig.Fly.Settings.Rotate.JustPressed(frame, KeyNone) ||
			frame.ScrollDelta != 0 {
			return true
		}
	}
	return false
}

// updateRig steps one camera. Precedence: an in-flight transition drives
// unless manual input arrived, which cancels it; then fly if enabled and
// active for the viewport; then orbit. At most one of them writes the
// transform.
func (s *System) updateRig(rig *Rig, frame *InputFrame, dt float32) {
	activeID, _ := s.active.ActiveFor(rig.Viewport.ID)
	isActive := activeID == rig.ID

	if rig.transition != nil {
		if isActive && rig.hasManualInput(frame) {
			s.cancelTransition(rig)
		} else {
			t := rig.transition
			pose, finished := t.Advance(dt)
			rig.Pose = pose
			if rig.Projection.Orthographic {
				// Orbit radius drives the ortho scale; keep it
				// animated alongside the pose.
				rig.Projection.Scale = t.CurrentRadius()
			}
			if finished {
				s.settleTransition(rig)
			}
			return
		}
	}

	if rig.Fly != nil && rig.Fly.Enabled && isActive {
		rig.Fly.Update(frame, rig.Viewport, dt, &rig.Pose)
		return
	}

	if rig.Orbit != nil && rig.Orbit.Enabled {
		rig.Orbit.Update(frame, rig.Viewport, &s.Resolver, &rig.Pose, &rig.Projection, isActive)
	}
}

// cancelTransition drops the in-flight transition at its current pose and
// hands the pose back to the orbit controller's bookkeeping.
func (s *System) cancelTransition(rig *Rig) {
	t := rig.transition
	rig.Pose = t.Current()
	rig.transition = nil
	if rig.Orbit != nil {
		rig.Orbit.Radius = t.CurrentRadius()
		rig.Orbit.SyncFromPose(rig.Pose)
		rig.Orbit.ForceUpdate()
	}
	s.log.Debug("transition cancelled by manual input",
		zap.Uint32("camera", uint32(rig.ID)))
}

// settleTransition installs the transition's end state.
func (s *System) settleTransition(rig *Rig) {
	t := rig.transition
	rig.transition = nil
	if rig.Orbit != nil {
		rig.Orbit.Radius = t.TargetRadius
		rig.Orbit.Focus = t.TargetFocus
		yaw, pitch := t.Target.Rotation.ToYawPitch()
		rig.Orbit.Yaw = yaw
		rig.Orbit.Pitch = -pitch
	}
}

// computeCursorRequest derives the cursor lock mode for this frame: fly
// mouse-look grabs, orbit/pan drags wrap at the viewport edges.
func (s *System) computeCursorRequest(frame *InputFrame) CursorRequest {
	for _, id := range s.order {
		rig := s.rigs[id]
		activeID, _ := s.active.ActiveFor(rig.Viewport.ID)
		if activeID != rig.ID {
			continue
		}
		if rig.Fly != nil && rig.Fly.Enabled &&
			rig.Fly.Settings.GrabCursor && rig.Fly.RotatePressed(frame) {
			return CursorRequest{Mode: CursorGrabbed, Viewport: rig.Viewport}
		}
		if rig.Orbit != nil && rig.Orbit.Enabled &&
			rig.Orbit.Settings.WrapCursor && rig.Orbit.DragPressed(frame) {
			return CursorRequest{Mode: CursorWrapped, Viewport: rig.Viewport}
		}
	}
	return CursorRequest{Mode: CursorFree}
}

// SetViewpoint eases the camera to an axis-aligned view, keeping the
// current focus and distance. ViewpointUser and unknown cameras are
// ignored.
func (s *System) SetViewpoint(id EntityID, vp Viewpoint) {
	rig, ok := s.rigs[id]
	if !ok {
		s.log.Warn("viewpoint request for unknown camera",
			zap.Uint32("camera", uint32(id)))
		return
	}
	yaw, pitch, ok := vp.YawPitch()
	if !ok {
		return
	}
	if rig.Orbit != nil {
		rig.Orbit.initializeIfNecessary(&rig.Pose, &rig.Projection)
	}

	source, sourceRadius := s.transitionSource(rig)
	var target Pose
	radius := sourceRadius
	if rig.Orbit != nil {
		target = orbitPose(yaw, pitch, radius, rig.Orbit.Focus)
	} else {
		// No orbit bookkeeping: rotate in place.
		target = Pose{
			Position: source.Position,
			Rotation: math.QuatFromYawPitch(yaw, -pitch),
		}
	}
	focus := target.Position.Add(target.Forward().Scale(radius))
	rig.transition = NewTransition(source, sourceRadius, target, focus, radius, s.TransitionDuration)
	s.log.Debug("viewpoint transition started",
		zap.Uint32("camera", uint32(id)),
		zap.String("viewpoint", vp.String()))
}

// FrameEntities eases the camera so the entities' merged bounds fit the
// view, preserving the viewing direction. Entities without bounds are
// skipped; a request with no usable bounds is a no-op.
func (s *System) FrameEntities(id EntityID, entities []EntityID) {
	rig, ok := s.rigs[id]
	if !ok {
		s.log.Warn("frame request for unknown camera",
			zap.Uint32("camera", uint32(id)))
		return
	}
	if rig.Orbit != nil {
		rig.Orbit.initializeIfNecessary(&rig.Pose, &rig.Projection)
	}
	focus, distance, ok := FrameTarget(s.Resolver.Scene, entities, s.FrameMargin, rig.Projection)
	if !ok {
		s.log.Warn("nothing to frame, entities have no bounds",
			zap.Uint32("camera", uint32(id)),
			zap.Int("entities", len(entities)))
		return
	}

	source, sourceRadius := s.transitionSource(rig)
	dist := distance
	if rig.Projection.Orthographic {
		// Distance is the target scale; keep the camera at its
		// synthetic orbit depth.
		dist = (rig.Projection.Near + rig.Projection.Far) / 2
	}
	target := Pose{
		Position: focus.Add(source.Back().Scale(dist)),
		Rotation: source.Rotation,
	}
	rig.transition = NewTransition(source, sourceRadius, target, focus, distance, s.TransitionDuration)
	s.log.Debug("framing transition started",
		zap.Uint32("camera", uint32(id)),
		zap.Int("entities", len(entities)))
}

// transitionSource picks the starting pose for a new transition: the
// current interpolated pose when one is already in flight, so replacing a
// transition never pops.
func (s *System) transitionSource(rig *Rig) (Pose, float32) {
	if rig.transition != nil {
		return rig.transition.Current(), rig.transition.CurrentRadius()
	}
	return rig.Pose, rig.orbitRadius()
}

// SwitchToOrbit enables the orbit controller and disables fly for one
// camera, keeping the pose. The orbit focus is re-derived ahead of the
// camera so the switch is seamless.
func (s *System) SwitchToOrbit(id EntityID) {
	rig, ok := s.rigs[id]
	if !ok || rig.Orbit == nil {
		return
	}
	if rig.Fly != nil {
		rig.Fly.Enabled = false
	}
	rig.Orbit.Enabled = true
	rig.Orbit.SyncFromPose(rig.Pose)
	rig.Orbit.ForceUpdate()
	s.log.Debug("switched to orbit", zap.Uint32("camera", uint32(id)))
}

// SwitchToFly enables the fly controller and disables orbit for one
// camera, keeping the pose.
func (s *System) SwitchToFly(id EntityID) {
	rig, ok := s.rigs[id]
	if !ok || rig.Fly == nil {
		return
	}
	if rig.Orbit != nil {
		rig.Orbit.Enabled = false
	}
	rig.Fly.Enabled = true
	s.log.Debug("switched to fly", zap.Uint32("camera", uint32(id)))
}

// SwitchProjection toggles the camera between perspective and orthographic,
// keeping the orbit view visually stable. The replaced projection is saved
// and restored on the next switch.
func (s *System) SwitchProjection(id EntityID) {
	rig, ok := s.rigs[id]
	if !ok {
		return
	}

	current := rig.Projection
	if rig.otherProjection == nil {
		other := defaultCounterpart(current)
		rig.otherProjection = &other
	}
	rig.Projection = *rig.otherProjection
	rig.otherProjection = &current
	// Carry over what both projections share.
	rig.Projection.Aspect = current.Aspect
	rig.Projection.Near = current.Near
	rig.Projection.Far = current.Far

	if rig.Orbit != nil {
		rig.Orbit.ForceUpdate()
	}
	s.log.Debug("switched projection",
		zap.Uint32("camera", uint32(id)),
		zap.Bool("orthographic", rig.Projection.Orthographic))
}

// defaultCounterpart builds the opposite projection kind from an existing
// one.
func defaultCounterpart(p Projection) Projection {
	out := p
	out.Orthographic = !p.Orthographic
	return out
}
