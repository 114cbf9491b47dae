package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/thmxv/blendy-cameras/pkg/math"
)

func TestTransitionReachesTargetExactly(t *testing.T) {
	source := lookingDownZ(5)
	target := Pose{
		Position: math.Vec3{X: 5},
		Rotation: math.QuatFromYawPitch(math32.Pi/2, 0),
	}
	tr := NewTransition(source, 5, target, math.Vec3{}, 5, 0.3)

	var pose Pose
	finished := false
	for i := 0; i < 10 && !finished; i++ {
		pose, finished = tr.Advance(0.05)
	}
	if !finished {
		t.Fatal("transition never finished")
	}
	// Snap is exact, not approximate.
	if pose.Position != target.Position {
		t.Errorf("did not snap to target position: got (%v,%v,%v)",
			pose.Position.X, pose.Position.Y, pose.Position.Z)
	}
	if pose.Rotation != target.Rotation {
		t.Error("did not snap to target rotation")
	}
}

func TestTransitionFinishesAtExactDuration(t *testing.T) {
	tr := NewTransition(lookingDownZ(5), 5, lookingDownZ(1), math.Vec3{}, 1, 0.3)

	if _, finished := tr.Advance(0.15); finished {
		t.Error("finished at half duration")
	}
	if _, finished := tr.Advance(0.15); !finished {
		t.Error("not finished at full duration")
	}
}

func TestTransitionZeroDurationSnapsImmediately(t *testing.T) {
	target := lookingDownZ(1)
	tr := NewTransition(lookingDownZ(5), 5, target, math.Vec3{}, 1, 0)

	pose, finished := tr.Advance(0.016)
	if !finished || pose != target {
		t.Error("zero duration transition should snap on first advance")
	}
}

func TestTransitionEasesInAndOut(t *testing.T) {
	source := lookingDownZ(0)
	target := Pose{Position: math.Vec3{X: 1}, Rotation: math.QuatIdentity()}
	tr := NewTransition(source, 1, target, math.Vec3{}, 1, 1.0)

	early, _ := tr.Advance(0.1)
	mid, _ := tr.Advance(0.4) // elapsed 0.5
	if early.Position.X >= 0.1 {
		t.Errorf("ease-in too fast at 10%%: %v", early.Position.X)
	}
	if !math.ApproxEqual(mid.Position.X, 0.5, 0.0001) {
		t.Errorf("ease should hit midpoint at half time, got %v", mid.Position.X)
	}
}

func TestTransitionReplaceIsContinuous(t *testing.T) {
	source := lookingDownZ(0)
	target := Pose{Position: math.Vec3{X: 10}, Rotation: math.QuatIdentity()}
	a := NewTransition(source, 1, target, math.Vec3{}, 1, 1.0)
	a.Advance(0.5)

	atReplace := a.Current()
	b := NewTransition(a.Current(), a.CurrentRadius(),
		Pose{Position: math.Vec3{Y: 3}, Rotation: math.QuatIdentity()},
		math.Vec3{}, 1, 1.0)

	// The new transition starts where the old one was.
	if !approxVec3(b.Current().Position, atReplace.Position, 0.0001) {
		t.Errorf("replacement popped: (%v,%v,%v) vs (%v,%v,%v)",
			b.Current().Position.X, b.Current().Position.Y, b.Current().Position.Z,
			atReplace.Position.X, atReplace.Position.Y, atReplace.Position.Z)
	}
}

func TestTransitionRadiusInterpolates(t *testing.T) {
	tr := NewTransition(lookingDownZ(2), 2, lookingDownZ(6), math.Vec3{}, 6, 1.0)
	tr.Advance(0.5)
	if !math.ApproxEqual(tr.CurrentRadius(), 4, 0.0001) {
		t.Errorf("expected radius 4 at midpoint, got %v", tr.CurrentRadius())
	}
}
