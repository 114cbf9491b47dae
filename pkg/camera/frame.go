package camera

import (
	"github.com/chewxy/math32"

	"github.com/thmxv/blendy-cameras/pkg/math"
	"github.com/thmxv/blendy-cameras/pkg/picking"
)

// DefaultFrameMargin leaves some air around framed geometry.
const DefaultFrameMargin = 1.2

// mergedBounds unions the world bounds of the given entities. ok is false
// when none of them has usable bounds.
func mergedBounds(scene Scene, ids []EntityID) (picking.AABB, bool) {
	var merged picking.AABB
	found := false
	for _, id := range ids {
		box, ok := scene.WorldBounds(id)
		if !ok {
			continue
		}
		if found {
			merged = merged.Merge(box)
		} else {
			merged = box
			found = true
		}
	}
	if !found || merged.Diagonal().MaxElement() <= 0 {
		return picking.AABB{}, false
	}
	return merged, true
}

// FrameTarget computes the orbit focus and distance that fit the entities'
// merged bounds into view with the given margin, keeping the current
// viewing direction. For perspective the distance places the bounding
// sphere inside the vertical field of view; for orthographic it is the
// target projection scale. ok is false when no entity has usable bounds,
// which callers treat as a no-op.
func FrameTarget(scene Scene, ids []EntityID, margin float32, proj Projection) (focus math.Vec3, distance float32, ok bool) {
	if scene == nil || margin <= 0 {
		return math.Vec3{}, 0, false
	}
	bounds, ok := mergedBounds(scene, ids)
	if !ok {
		return math.Vec3{}, 0, false
	}

	boundRadius := bounds.Diagonal().Length() / 2
	focus = bounds.Center()

	if proj.Orthographic {
		// Scale is the vertical extent, so the sphere diameter must
		// fit in it.
		distance = math32.Max(minRadius, 2*boundRadius*margin)
		return focus, distance, true
	}

	halfFov := proj.FovY / 2
	if halfFov <= 0 || halfFov >= math32.Pi/2 {
		return math.Vec3{}, 0, false
	}
	distance = math32.Max(minRadius, boundRadius*margin/math32.Tan(halfFov))
	return focus, distance, true
}
