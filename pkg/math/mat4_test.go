package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func mat4ApproxEqual(t *testing.T, got, want Mat4, context string) {
	t.Helper()
	for i := 0; i < 16; i++ {
		if math32.Abs(got[i]-want[i]) > 0.0001 {
			t.Errorf("%s: element %d: got %v, want %v", context, i, got[i], want[i])
		}
	}
}

func TestMat4Identity(t *testing.T) {
	m := Identity()
	v := Vec3{1, 2, 3}
	if got := m.TransformVec3(v); got != v {
		t.Errorf("identity transform changed point: got (%v,%v,%v)", got.X, got.Y, got.Z)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	mat4ApproxEqual(t, m.Mul(Identity()), m, "m * I")
	mat4ApproxEqual(t, Identity().Mul(m), m, "I * m")
}

func TestMat4Inverse(t *testing.T) {
	m := Translate(3, -2, 7).Mul(Scale(2, 2, 2))
	inv := m.Inverse()
	mat4ApproxEqual(t, m.Mul(inv), Identity(), "m * m^-1")
}

func TestMat4InverseSingular(t *testing.T) {
	m := Scale(0, 0, 0)
	mat4ApproxEqual(t, m.Inverse(), Identity(), "singular inverse fallback")
}

func TestMat4LookAtUnproject(t *testing.T) {
	// A point straight ahead of the camera should project to NDC center
	eye := Vec3{0, 0, 5}
	view := LookAt(eye, Vec3{}, Vec3{Y: 1})
	proj := Perspective(math32.Pi/3, 1.0, 0.1, 100.0)
	vp := proj.Mul(view)

	ndc := vp.TransformVec3(Vec3{0, 0, 0})
	if math32.Abs(ndc.X) > 0.0001 || math32.Abs(ndc.Y) > 0.0001 {
		t.Errorf("origin should project to NDC center, got (%v,%v)", ndc.X, ndc.Y)
	}

	// And unprojecting it should come back
	back := vp.Inverse().TransformVec3(ndc)
	if back.Distance(Vec3{}) > 0.001 {
		t.Errorf("unprojection should return origin, got (%v,%v,%v)", back.X, back.Y, back.Z)
	}
}
