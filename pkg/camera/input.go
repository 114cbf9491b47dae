package camera

import "github.com/thmxv/blendy-cameras/pkg/math"

// Button identifies a pointer button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Key identifies a keyboard key. The host input layer maps its native
// scancodes onto these values.
type Key uint16

// KeyNone means "no key"; used for optional chord modifiers.
const KeyNone Key = 0

const (
	KeyLeftShift Key = iota + 1
	KeyLeftCtrl
	KeyLeftAlt
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyF
	KeyR
	KeySpace
	KeyTab
	KeyKP1
	KeyKP3
	KeyKP5
	KeyKP7
	KeyKP9
	KeyHome
)

// ButtonSet is a bitmask of pointer buttons.
type ButtonSet uint8

// Has reports whether the button is in the set.
func (s ButtonSet) Has(b Button) bool {
	return s&(1<<b) != 0
}

// With returns the set with the button added.
func (s ButtonSet) With(b Button) ButtonSet {
	return s | (1 << b)
}

// KeySet is a set of keyboard keys.
type KeySet map[Key]struct{}

// Has reports whether the key is in the set.
func (s KeySet) Has(k Key) bool {
	_, ok := s[k]
	return ok
}

// NewKeySet builds a KeySet from keys.
func NewKeySet(keys ...Key) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// RawInput is the host-provided per-frame event state, before UI focus
// gating.
type RawInput struct {
	PointerDelta math.Vec2 // Pixels since last frame
	ScrollDelta  float32   // Lines, positive away from the user

	ButtonsPressed  ButtonSet // Went down this frame
	ButtonsHeld     ButtonSet // Down during this frame
	ButtonsReleased ButtonSet // Went up this frame

	KeysPressed KeySet // Went down this frame
	KeysHeld    KeySet // Down during this frame

	PointerPos   math.Vec2 // Window coordinates
	PointerValid bool      // False when the pointer left the window

	// UIHasFocus is true when an overlay UI wants the input this frame.
	UIHasFocus bool
}

// InputFrame is the immutable per-frame input snapshot consumed by the
// controllers. It is RawInput after UI focus suppression.
type InputFrame struct {
	PointerDelta math.Vec2
	ScrollDelta  float32

	ButtonsPressed  ButtonSet
	ButtonsHeld     ButtonSet
	ButtonsReleased ButtonSet

	KeysPressed KeySet
	KeysHeld    KeySet

	PointerPos   math.Vec2
	PointerValid bool

	UIHasFocus bool
}

// Sampler normalizes RawInput into InputFrame snapshots. When the overlay
// UI has focus, pointer, scroll and button state is blanked and held keys
// are filtered down to the configured passthrough set, so that keys
// dedicated to camera control (fly movement by default) stay live.
type Sampler struct {
	// Passthrough lists keys that stay visible while the UI has focus.
	// Nil means no keys pass through.
	Passthrough KeySet
}

// Sample produces the frame snapshot. It has no side effects.
func (s *Sampler) Sample(raw RawInput) InputFrame {
	frame := InputFrame{
		PointerDelta:    raw.PointerDelta,
		ScrollDelta:     raw.ScrollDelta,
		ButtonsPressed:  raw.ButtonsPressed,
		ButtonsHeld:     raw.ButtonsHeld,
		ButtonsReleased: raw.ButtonsReleased,
		KeysPressed:     raw.KeysPressed,
		KeysHeld:        raw.KeysHeld,
		PointerPos:      raw.PointerPos,
		PointerValid:    raw.PointerValid,
		UIHasFocus:      raw.UIHasFocus,
	}
	if !raw.UIHasFocus {
		return frame
	}

	frame.PointerDelta = math.Vec2{}
	frame.ScrollDelta = 0
	frame.ButtonsPressed = 0
	frame.ButtonsHeld = 0
	frame.ButtonsReleased = 0
	frame.KeysPressed = filterKeys(raw.KeysPressed, s.Passthrough)
	frame.KeysHeld = filterKeys(raw.KeysHeld, s.Passthrough)
	return frame
}

func filterKeys(keys, allowed KeySet) KeySet {
	if len(keys) == 0 || len(allowed) == 0 {
		return nil
	}
	var out KeySet
	for k := range keys {
		if allowed.Has(k) {
			if out == nil {
				out = make(KeySet, len(allowed))
			}
			out[k] = struct{}{}
		}
	}
	return out
}

// Chord is a pointer button with an optional key modifier.
type Chord struct {
	Button   Button
	Modifier Key // KeyNone for no modifier
}

func (c Chord) modifierOK(frame *InputFrame) bool {
	return c.Modifier == KeyNone || frame.KeysHeld.Has(c.Modifier)
}

// Pressed reports whether the chord is held this frame. A suppressor
// modifier (another chord's modifier on the same button) being held makes
// this false, so that e.g. shift+drag pans instead of orbiting.
func (c Chord) Pressed(frame *InputFrame, suppressor Key) bool {
	return c.modifierOK(frame) &&
		frame.ButtonsHeld.Has(c.Button) &&
		(suppressor == KeyNone || !frame.KeysHeld.Has(suppressor))
}

// JustPressed reports whether the chord went down this frame.
func (c Chord) JustPressed(frame *InputFrame, suppressor Key) bool {
	return c.modifierOK(frame) &&
		frame.ButtonsPressed.Has(c.Button) &&
		(suppressor == KeyNone || !frame.KeysHeld.Has(suppressor))
}

// JustReleased reports whether the chord went up this frame.
func (c Chord) JustReleased(frame *InputFrame, suppressor Key) bool {
	return c.modifierOK(frame) &&
		frame.ButtonsReleased.Has(c.Button) &&
		(suppressor == KeyNone || !frame.KeysHeld.Has(suppressor))
}
