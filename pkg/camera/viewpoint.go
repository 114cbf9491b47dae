package camera

import (
	"github.com/chewxy/math32"

	"github.com/thmxv/blendy-cameras/pkg/math"
)

// Viewpoint is an axis-aligned view direction, Blender numpad style.
// ViewpointUser labels any orientation that matches no axis view; it is
// never a snap target.
type Viewpoint uint8

const (
	ViewpointUser Viewpoint = iota
	ViewpointFront
	ViewpointBack
	ViewpointLeft
	ViewpointRight
	ViewpointTop
	ViewpointBottom
)

func (v Viewpoint) String() string {
	switch v {
	case ViewpointFront:
		return "front"
	case ViewpointBack:
		return "back"
	case ViewpointLeft:
		return "left"
	case ViewpointRight:
		return "right"
	case ViewpointTop:
		return "top"
	case ViewpointBottom:
		return "bottom"
	default:
		return "user"
	}
}

// viewpointAngleEpsilon is the tolerance for labeling the current
// orientation with an axis viewpoint.
const viewpointAngleEpsilon = 0.001

// YawPitch returns the orbit angles that look along the viewpoint's axis.
// The camera sits opposite the direction it looks: front looks along -Z
// from +Z, top looks straight down from above. ok is false for
// ViewpointUser.
func (v Viewpoint) YawPitch() (yaw, pitch float32, ok bool) {
	switch v {
	case ViewpointFront:
		return 0, 0, true
	case ViewpointBack:
		return math32.Pi, 0, true
	case ViewpointLeft:
		return -math32.Pi / 2, 0, true
	case ViewpointRight:
		return math32.Pi / 2, 0, true
	case ViewpointTop:
		return 0, math32.Pi / 2, true
	case ViewpointBottom:
		return 0, -math32.Pi / 2, true
	default:
		return 0, 0, false
	}
}

// ViewpointFromYawPitch labels orbit angles with the matching axis
// viewpoint, or ViewpointUser if none matches within tolerance. Yaw is
// compared wrapped, so 3π/2 still matches left.
func ViewpointFromYawPitch(yaw, pitch float32) Viewpoint {
	for _, v := range []Viewpoint{
		ViewpointFront, ViewpointBack, ViewpointLeft,
		ViewpointRight, ViewpointTop, ViewpointBottom,
	} {
		vy, vp, _ := v.YawPitch()
		if !math.ApproxEqual(pitch, vp, viewpointAngleEpsilon) {
			continue
		}
		// At the poles yaw is irrelevant.
		if v == ViewpointTop || v == ViewpointBottom ||
			math.ApproxEqual(math.WrapAngle(yaw-vy), 0, viewpointAngleEpsilon) {
			return v
		}
	}
	return ViewpointUser
}

// ViewpointOf labels a camera orientation. Orbit pitch is positive above
// the horizon, opposite the rotation's look-up pitch.
func ViewpointOf(rotation math.Quat) Viewpoint {
	yaw, pitch := rotation.ToYawPitch()
	return ViewpointFromYawPitch(yaw, -pitch)
}
