package main

import (
	"github.com/thmxv/blendy-cameras/internal/render"
	"github.com/thmxv/blendy-cameras/pkg/camera"
	"github.com/thmxv/blendy-cameras/pkg/math"
	"github.com/thmxv/blendy-cameras/pkg/picking"
)

// BoxScene is the demo geometry store: colored boxes addressable by
// entity id. It implements the camera system's scene queries.
type BoxScene struct {
	order []camera.EntityID
	boxes map[camera.EntityID]render.Box
}

// NewBoxScene creates an empty scene.
func NewBoxScene() *BoxScene {
	return &BoxScene{boxes: make(map[camera.EntityID]render.Box)}
}

// Add inserts a box.
func (s *BoxScene) Add(id camera.EntityID, min, max, color math.Vec3) {
	if _, ok := s.boxes[id]; !ok {
		s.order = append(s.order, id)
	}
	s.boxes[id] = render.Box{Bounds: picking.NewAABB(min, max), Color: color}
}

// Boxes returns the renderable boxes in insertion order.
func (s *BoxScene) Boxes() []render.Box {
	out := make([]render.Box, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.boxes[id])
	}
	return out
}

// IDs returns all entity ids, for frame-everything requests.
func (s *BoxScene) IDs() []camera.EntityID {
	return append([]camera.EntityID(nil), s.order...)
}

// RaycastNearest returns the distance to the nearest box hit by the ray.
func (s *BoxScene) RaycastNearest(ray picking.Ray, maxRange float32, exclude []camera.EntityID) (float32, bool) {
	best := float32(0)
	found := false
	for id, box := range s.boxes {
		if excluded(id, exclude) {
			continue
		}
		dist, hit := ray.IntersectAABB(box.Bounds)
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

// WorldBounds returns a box's bounds.
func (s *BoxScene) WorldBounds(id camera.EntityID) (picking.AABB, bool) {
	box, ok := s.boxes[id]
	return box.Bounds, ok
}

func excluded(id camera.EntityID, exclude []camera.EntityID) bool {
	for _, ex := range exclude {
		if ex == id {
			return true
		}
	}
	return false
}

// buildDemoScene lays out a ground slab with a few boxes to orbit around.
func buildDemoScene() *BoxScene {
	s := NewBoxScene()
	s.Add(1,
		math.Vec3{X: -8, Y: -0.2, Z: -8},
		math.Vec3{X: 8, Y: 0, Z: 8},
		math.Vec3{X: 0.35, Y: 0.35, Z: 0.38})
	s.Add(2,
		math.Vec3{X: -1, Y: 0, Z: -1},
		math.Vec3{X: 1, Y: 2, Z: 1},
		math.Vec3{X: 0.8, Y: 0.45, Z: 0.2})
	s.Add(3,
		math.Vec3{X: 2.5, Y: 0, Z: -2},
		math.Vec3{X: 3.5, Y: 0.8, Z: -1},
		math.Vec3{X: 0.25, Y: 0.6, Z: 0.3})
	s.Add(4,
		math.Vec3{X: -3.5, Y: 0, Z: 1.5},
		math.Vec3{X: -2, Y: 1.2, Z: 3},
		math.Vec3{X: 0.3, Y: 0.4, Z: 0.75})
	return s
}
