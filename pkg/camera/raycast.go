package camera

import (
	"github.com/thmxv/blendy-cameras/pkg/math"
	"github.com/thmxv/blendy-cameras/pkg/picking"
)

// DepthResolver answers "how far away is the geometry under this screen
// point" for auto depth and zoom-to-cursor. It holds no per-frame state;
// every call is a fresh query against the scene.
type DepthResolver struct {
	Scene Scene

	// MaxRange bounds the raycast; hits beyond it are treated as misses.
	// Zero or negative disables the limit.
	MaxRange float32

	// Exclude lists entities skipped by the raycast, e.g. the camera's
	// own gizmo geometry.
	Exclude []EntityID
}

// CursorRay builds the world-space ray from the camera through a
// window-space point. Returns false when the point is outside the viewport
// or the projection is degenerate.
func (r *DepthResolver) CursorRay(pose Pose, proj Projection, vp Viewport, screenPt math.Vec2) (picking.Ray, bool) {
	if !vp.Contains(screenPt) || !proj.Valid() || vp.W <= 0 || vp.H <= 0 {
		return picking.Ray{}, false
	}
	invViewProj := proj.Matrix().Mul(pose.ViewMatrix()).Inverse()
	ray := picking.ScreenToRay(screenPt.X-vp.X, screenPt.Y-vp.Y, vp.W, vp.H, invViewProj)
	return ray, true
}

// NearestHit casts the ray into the scene and returns the hit point and
// distance of the nearest intersection.
func (r *DepthResolver) NearestHit(ray picking.Ray) (math.Vec3, float32, bool) {
	if r.Scene == nil {
		return math.Vec3{}, 0, false
	}
	dist, ok := r.Scene.RaycastNearest(ray, r.MaxRange, r.Exclude)
	if !ok {
		return math.Vec3{}, 0, false
	}
	return ray.At(dist), dist, true
}

// Resolve returns the distance from the camera to the geometry under the
// given screen point, or fallback when there is no hit, the point lies
// outside the viewport, or the projection is degenerate. It never fails.
func (r *DepthResolver) Resolve(pose Pose, proj Projection, vp Viewport, screenPt math.Vec2, fallback float32) float32 {
	ray, ok := r.CursorRay(pose, proj, vp, screenPt)
	if !ok {
		return fallback
	}
	hit, _, ok := r.NearestHit(ray)
	if !ok {
		return fallback
	}
	// Measure from the camera position, not the ray origin: the ray
	// starts on the near plane.
	return hit.Sub(pose.Position).Length()
}
