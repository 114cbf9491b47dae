// Package camera implements Blender-style viewport camera controls:
// orbit/pan/zoom around a pivot with auto depth and zoom-to-cursor, a free
// fly mode, viewpoint snapping and framing entities into view.
//
// The package is a pure library. It consumes per-frame input snapshots and a
// read-only scene query surface from the host, and produces updated camera
// poses plus a requested cursor lock mode that the host's windowing layer is
// responsible for applying.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/thmxv/blendy-cameras/pkg/math"
	"github.com/thmxv/blendy-cameras/pkg/picking"
)

// EntityID identifies an entity in the host's scene store.
type EntityID uint32

// ViewportID identifies a viewport/window.
type ViewportID uint32

// Pose is a camera position and orientation in world space.
type Pose struct {
	Position math.Vec3
	Rotation math.Quat
}

// Forward returns the view direction.
func (p Pose) Forward() math.Vec3 {
	return p.Rotation.RotateVec3(math.Vec3{Z: -1})
}

// Back returns the direction from the look target toward the camera.
func (p Pose) Back() math.Vec3 {
	return p.Rotation.RotateVec3(math.Vec3{Z: 1})
}

// Right returns the camera-local +X axis in world space.
func (p Pose) Right() math.Vec3 {
	return p.Rotation.RotateVec3(math.Vec3{X: 1})
}

// Up returns the camera-local +Y axis in world space.
func (p Pose) Up() math.Vec3 {
	return p.Rotation.RotateVec3(math.Vec3{Y: 1})
}

// Lerp interpolates position linearly and orientation spherically.
func (p Pose) Lerp(target Pose, t float32) Pose {
	return Pose{
		Position: p.Position.Lerp(target.Position, t),
		Rotation: p.Rotation.Slerp(target.Rotation, t),
	}
}

// ViewMatrix returns the view matrix for this pose.
func (p Pose) ViewMatrix() math.Mat4 {
	return math.LookAt(p.Position, p.Position.Add(p.Forward()), p.Up())
}

// Projection holds the camera projection parameters.
type Projection struct {
	Orthographic bool

	// Perspective parameters
	FovY   float32 // Vertical field of view in radians
	Aspect float32 // Width / height

	// Orthographic vertical extent in world units. Driven by the orbit
	// radius so that zooming works in both projections.
	Scale float32

	Near, Far float32
}

// DefaultPerspective returns a perspective projection with common defaults.
func DefaultPerspective(aspect float32) Projection {
	return Projection{
		FovY:   math32.Pi / 4,
		Aspect: aspect,
		Scale:  1.0,
		Near:   0.1,
		Far:    1000.0,
	}
}

// Valid reports whether the projection can produce a usable matrix.
func (p Projection) Valid() bool {
	if p.Far <= p.Near || p.Aspect <= 0 {
		return false
	}
	if p.Orthographic {
		return p.Scale > 0
	}
	return p.FovY > 0 && p.FovY < math32.Pi
}

// Area returns the world-space width and height of the orthographic view
// volume.
func (p Projection) Area() (w, h float32) {
	return p.Scale * p.Aspect, p.Scale
}

// Matrix returns the projection matrix.
func (p Projection) Matrix() math.Mat4 {
	if p.Orthographic {
		w, h := p.Area()
		return math.Ortho(-w/2, w/2, -h/2, h/2, p.Near, p.Far)
	}
	return math.Perspective(p.FovY, p.Aspect, p.Near, p.Far)
}

// Viewport describes the camera's render rectangle within its window, in
// window pixels with Y growing downward.
type Viewport struct {
	ID   ViewportID
	X, Y float32
	W, H float32

	// Containing window dimensions. Orbit rotation is scaled by the
	// window size so that sensitivity does not explode in small
	// viewports.
	WindowW, WindowH float32
}

// Contains reports whether a window-space point lies inside the viewport.
func (v Viewport) Contains(pt math.Vec2) bool {
	return pt.X > v.X && pt.X < v.X+v.W && pt.Y > v.Y && pt.Y < v.Y+v.H
}

// Center returns the viewport center in window coordinates.
func (v Viewport) Center() math.Vec2 {
	return math.Vec2{X: v.X + v.W/2, Y: v.Y + v.H/2}
}

// Scene is the read-only geometry query surface supplied by the host.
// Implementations must not be mutated by this package; queries reflect a
// best-effort point-in-time snapshot of the scene.
type Scene interface {
	// RaycastNearest returns the distance along the ray to the nearest
	// hit within maxRange, skipping the excluded entities.
	RaycastNearest(ray picking.Ray, maxRange float32, exclude []EntityID) (float32, bool)

	// WorldBounds returns the world-space bounds of an entity's
	// geometry, or false if the entity has none.
	WorldBounds(id EntityID) (picking.AABB, bool)
}

// CursorLockMode is the cursor behavior the controller wants from the host
// windowing layer this frame. The core only computes the value; applying it
// is the host's job.
type CursorLockMode uint8

const (
	// CursorFree leaves the cursor alone.
	CursorFree CursorLockMode = iota
	// CursorGrabbed locks and hides the cursor (fly mouse-look).
	CursorGrabbed
	// CursorWrapped teleports the cursor to the opposite viewport edge
	// when it leaves the viewport (orbit/pan drags).
	CursorWrapped
)

func (m CursorLockMode) String() string {
	switch m {
	case CursorGrabbed:
		return "grabbed"
	case CursorWrapped:
		return "wrapped"
	default:
		return "free"
	}
}

// CursorRequest pairs a lock mode with the viewport it applies to.
type CursorRequest struct {
	Mode     CursorLockMode
	Viewport Viewport
}
