package camera

import (
	"github.com/thmxv/blendy-cameras/pkg/math"
	"github.com/thmxv/blendy-cameras/pkg/picking"
)

// stubScene backs the tests with a handful of AABBs.
type stubScene struct {
	boxes map[EntityID]picking.AABB
}

func newStubScene() *stubScene {
	return &stubScene{boxes: make(map[EntityID]picking.AABB)}
}

func (s *stubScene) add(id EntityID, min, max math.Vec3) {
	s.boxes[id] = picking.NewAABB(min, max)
}

func (s *stubScene) RaycastNearest(ray picking.Ray, maxRange float32, exclude []EntityID) (float32, bool) {
	best := float32(0)
	found := false
	for id, box := range s.boxes {
		skip := false
		for _, ex := range exclude {
			if ex == id {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		dist, hit := ray.IntersectAABB(box)
		if !hit || (maxRange > 0 && dist > maxRange) {
			continue
		}
		if !found || dist < best {
			best = dist
			found = true
		}
	}
	return best, found
}

func (s *stubScene) WorldBounds(id EntityID) (picking.AABB, bool) {
	box, ok := s.boxes[id]
	return box, ok
}

func testViewport() Viewport {
	return Viewport{ID: 1, W: 800, H: 600, WindowW: 800, WindowH: 600}
}

func lookingDownZ(dist float32) Pose {
	return Pose{Position: math.Vec3{Z: dist}, Rotation: math.QuatIdentity()}
}

func middleDragFrame(dx, dy float32, justPressed bool) InputFrame {
	frame := InputFrame{
		PointerDelta: math.Vec2{X: dx, Y: dy},
		ButtonsHeld:  ButtonSet(0).With(ButtonMiddle),
		PointerPos:   testViewport().Center(),
		PointerValid: true,
	}
	if justPressed {
		frame.ButtonsPressed = ButtonSet(0).With(ButtonMiddle)
	}
	return frame
}

func approxVec3(a, b math.Vec3, eps float32) bool {
	return math.ApproxEqual(a.X, b.X, eps) &&
		math.ApproxEqual(a.Y, b.Y, eps) &&
		math.ApproxEqual(a.Z, b.Z, eps)
}
