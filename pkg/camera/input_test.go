package camera

import (
	"testing"

	"github.com/thmxv/blendy-cameras/pkg/math"
)

func TestSamplePassesInputThrough(t *testing.T) {
	var s Sampler
	raw := RawInput{
		PointerDelta: math.Vec2{X: 3, Y: -2},
		ScrollDelta:  1.5,
		ButtonsHeld:  ButtonSet(0).With(ButtonLeft),
		KeysHeld:     NewKeySet(KeyW),
		PointerPos:   math.Vec2{X: 10, Y: 20},
		PointerValid: true,
	}

	frame := s.Sample(raw)
	if frame.PointerDelta != raw.PointerDelta || frame.ScrollDelta != raw.ScrollDelta {
		t.Error("pointer/scroll state altered without UI focus")
	}
	if !frame.ButtonsHeld.Has(ButtonLeft) || !frame.KeysHeld.Has(KeyW) {
		t.Error("button/key state altered without UI focus")
	}
}

func TestSampleBlanksInputUnderUIFocus(t *testing.T) {
	var s Sampler
	raw := RawInput{
		PointerDelta:   math.Vec2{X: 100, Y: 100},
		ScrollDelta:    5,
		ButtonsPressed: ButtonSet(0).With(ButtonMiddle),
		ButtonsHeld:    ButtonSet(0).With(ButtonMiddle),
		KeysHeld:       NewKeySet(KeyW, KeyLeftShift),
		UIHasFocus:     true,
	}

	frame := s.Sample(raw)
	if frame.PointerDelta != (math.Vec2{}) || frame.ScrollDelta != 0 {
		t.Error("pointer/scroll not blanked under UI focus")
	}
	if frame.ButtonsHeld != 0 || frame.ButtonsPressed != 0 {
		t.Error("buttons not blanked under UI focus")
	}
	if len(frame.KeysHeld) != 0 {
		t.Error("keys should be filtered out with an empty passthrough set")
	}
}

func TestSamplePassthroughKeysSurviveUIFocus(t *testing.T) {
	s := Sampler{Passthrough: NewKeySet(KeyW, KeyA, KeyS, KeyD)}
	raw := RawInput{
		KeysHeld:   NewKeySet(KeyW, KeyLeftShift),
		UIHasFocus: true,
	}

	frame := s.Sample(raw)
	if !frame.KeysHeld.Has(KeyW) {
		t.Error("passthrough key filtered out")
	}
	if frame.KeysHeld.Has(KeyLeftShift) {
		t.Error("non-passthrough key leaked through UI focus")
	}
}

func TestChordModifierSuppression(t *testing.T) {
	orbit := Chord{Button: ButtonMiddle}
	pan := Chord{Button: ButtonMiddle, Modifier: KeyLeftShift}

	plain := InputFrame{ButtonsHeld: ButtonSet(0).With(ButtonMiddle)}
	if !orbit.Pressed(&plain, pan.Modifier) {
		t.Error("orbit chord should be pressed without shift")
	}
	if pan.Pressed(&plain, orbit.Modifier) {
		t.Error("pan chord needs its modifier")
	}

	shifted := InputFrame{
		ButtonsHeld: ButtonSet(0).With(ButtonMiddle),
		KeysHeld:    NewKeySet(KeyLeftShift),
	}
	if orbit.Pressed(&shifted, pan.Modifier) {
		t.Error("pan modifier should suppress the orbit chord")
	}
	if !pan.Pressed(&shifted, orbit.Modifier) {
		t.Error("pan chord should be pressed with shift held")
	}
}

func TestChordEdges(t *testing.T) {
	c := Chord{Button: ButtonMiddle}

	down := InputFrame{
		ButtonsPressed: ButtonSet(0).With(ButtonMiddle),
		ButtonsHeld:    ButtonSet(0).With(ButtonMiddle),
	}
	if !c.JustPressed(&down, KeyNone) {
		t.Error("expected just pressed")
	}

	up := InputFrame{ButtonsReleased: ButtonSet(0).With(ButtonMiddle)}
	if !c.JustReleased(&up, KeyNone) {
		t.Error("expected just released")
	}
	if c.JustPressed(&up, KeyNone) {
		t.Error("release frame is not a press")
	}
}
