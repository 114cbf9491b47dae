package camera

import "github.com/thmxv/blendy-cameras/pkg/math"

// DefaultTransitionDuration is how long viewpoint and framing moves take.
const DefaultTransitionDuration = 0.3

// Transition eases a camera from its current pose to a target pose over a
// fixed duration, carrying the orbit parameters to install on arrival.
// Replacing a transition mid-flight starts the new one from the current
// interpolated pose, so the camera never pops.
type Transition struct {
	Source, Target Pose

	// Orbit radius at both ends, interpolated alongside the pose so a
	// cancelled transition leaves a consistent orbit distance.
	SourceRadius, TargetRadius float32

	// Orbit focus the camera settles on at the target.
	TargetFocus math.Vec3

	Elapsed, Duration float32
}

// NewTransition starts a transition from source to target.
func NewTransition(source Pose, sourceRadius float32, target Pose, targetFocus math.Vec3, targetRadius, duration float32) *Transition {
	return &Transition{
		Source:       source,
		SourceRadius: sourceRadius,
		Target:       target,
		TargetFocus:  targetFocus,
		TargetRadius: targetRadius,
		Duration:     duration,
	}
}

func (t *Transition) progress() float32 {
	if t.Duration <= 0 || t.Elapsed >= t.Duration {
		return 1
	}
	return math.EaseInOutCubic(t.Elapsed / t.Duration)
}

// pose returns the eased pose for the current elapsed time.
func (t *Transition) pose() Pose {
	if p := t.progress(); p < 1 {
		return t.Source.Lerp(t.Target, p)
	}
	return t.Target
}

// Advance steps the transition by dt seconds and returns the pose to
// apply. finished is true exactly when the target pose is returned, which
// happens at elapsed >= duration with no overshoot.
func (t *Transition) Advance(dt float32) (p Pose, finished bool) {
	t.Elapsed += dt
	if t.Duration <= 0 || t.Elapsed >= t.Duration {
		return t.Target, true
	}
	return t.pose(), false
}

// Current returns the pose at the current progress without advancing.
// Used as the source when a new request replaces this transition.
func (t *Transition) Current() Pose {
	return t.pose()
}

// CurrentRadius returns the orbit radius at the current progress.
func (t *Transition) CurrentRadius() float32 {
	return math.Lerp(t.SourceRadius, t.TargetRadius, t.progress())
}
