package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/thmxv/blendy-cameras/pkg/math"
)

func newTestFly() *FlyController {
	c := NewFlyController(DefaultFlySettings())
	c.Enabled = true
	return c
}

func TestFlyMovementScalesWithDeltaTime(t *testing.T) {
	c := newTestFly()
	c.Speed = 2.0

	frame := InputFrame{KeysHeld: NewKeySet(KeyW)}

	poseA := lookingDownZ(0)
	c.Update(&frame, testViewport(), 0.1, &poseA)

	poseB := lookingDownZ(0)
	c.Update(&frame, testViewport(), 0.2, &poseB)

	// Forward is -Z; twice the frame time covers twice the ground.
	if !math.ApproxEqual(poseA.Position.Z, -0.2, 0.0001) {
		t.Errorf("expected z=-0.2 after 0.1s at speed 2, got %v", poseA.Position.Z)
	}
	if !math.ApproxEqual(poseB.Position.Z, 2*poseA.Position.Z, 0.0001) {
		t.Errorf("movement not frame-rate independent: %v vs %v",
			poseB.Position.Z, poseA.Position.Z)
	}
}

func TestFlyDiagonalMovementIsNormalized(t *testing.T) {
	c := newTestFly()
	c.Speed = 1.0

	frame := InputFrame{KeysHeld: NewKeySet(KeyW, KeyD)}
	pose := lookingDownZ(0)
	c.Update(&frame, testViewport(), 1.0, &pose)

	if !math.ApproxEqual(pose.Position.Length(), 1.0, 0.0001) {
		t.Errorf("diagonal movement should cover speed*dt, got %v", pose.Position.Length())
	}
}

func TestFlySpeedAdjustsMultiplicatively(t *testing.T) {
	c := newTestFly()
	c.Speed = 10.0

	frame := InputFrame{ScrollDelta: 1}
	pose := lookingDownZ(0)
	c.Update(&frame, testViewport(), 0.016, &pose)

	if !math.ApproxEqual(c.Speed, 11.0, 0.0001) {
		t.Errorf("expected speed 11 after one scroll line, got %v", c.Speed)
	}
	// Scroll must not translate the camera in fly mode.
	if pose.Position != (math.Vec3{}) {
		t.Errorf("scroll moved the camera: (%v,%v,%v)",
			pose.Position.X, pose.Position.Y, pose.Position.Z)
	}
}

func TestFlySpeedClamped(t *testing.T) {
	c := newTestFly()
	pose := lookingDownZ(0)

	c.Speed = 99.0
	for i := 0; i < 50; i++ {
		frame := InputFrame{ScrollDelta: 5}
		c.Update(&frame, testViewport(), 0.016, &pose)
	}
	if c.Speed != c.Settings.MaxSpeed {
		t.Errorf("expected speed clamped to %v, got %v", c.Settings.MaxSpeed, c.Speed)
	}

	for i := 0; i < 200; i++ {
		frame := InputFrame{ScrollDelta: -5}
		c.Update(&frame, testViewport(), 0.016, &pose)
	}
	if c.Speed != c.Settings.MinSpeed {
		t.Errorf("expected speed clamped to %v, got %v", c.Settings.MinSpeed, c.Speed)
	}
}

func TestFlyMouseLookRotatesInPlace(t *testing.T) {
	c := newTestFly()
	pose := Pose{Position: math.Vec3{X: 1, Y: 2, Z: 3}, Rotation: math.QuatIdentity()}

	frame := InputFrame{
		PointerDelta: math.Vec2{X: 200, Y: 0},
		ButtonsHeld:  ButtonSet(0).With(ButtonMiddle),
		PointerValid: true,
	}
	c.Update(&frame, testViewport(), 0.016, &pose)

	if pose.Position != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Error("mouse look must not translate the camera")
	}
	yaw, pitch := pose.Rotation.ToYawPitch()
	// A full window-width drag is one revolution; 200px of 800 is -pi/2.
	if !math.ApproxEqual(yaw, -math32.Pi/2, 0.001) {
		t.Errorf("expected yaw -pi/2, got %v", yaw)
	}
	if !math.ApproxEqual(pitch, 0, 0.001) {
		t.Errorf("expected pitch 0, got %v", pitch)
	}
}

func TestFlyDisabledDoesNothing(t *testing.T) {
	c := NewFlyController(DefaultFlySettings())
	pose := lookingDownZ(0)
	frame := InputFrame{KeysHeld: NewKeySet(KeyW), ScrollDelta: 2}

	if c.Update(&frame, testViewport(), 0.1, &pose) {
		t.Error("disabled controller reported movement")
	}
	if pose.Position != (math.Vec3{}) {
		t.Error("disabled controller moved the camera")
	}
}
