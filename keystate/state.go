// Package keystate tracks which keys are currently held and the order in
// which distinct presses arrived. One long-lived State is owned by the
// dispatch loop and fed every key transition in chronological order; the
// matching engine reads it but never mutates it.
package keystate

import "keychord/vkey"

// State records the keys currently held and the press order of the current
// gesture. A gesture spans from the first press after all keys were up
// until all keys are up again.
type State struct {
	pressing map[vkey.VKey]struct{}
	sequence []vkey.VKey
}

func New() *State {
	return &State{pressing: make(map[vkey.VKey]struct{})}
}

// Keydown records a key press. A key appears in the sequence at most once
// per gesture: auto-repeat while held and a release-then-re-press while
// other keys stay held both leave the sequence unchanged. The previous
// gesture's sequence is discarded lazily here, when the first key of a new
// gesture arrives, never at the moment the old gesture ends; an OnKeyUp
// match evaluated at the final release must still see the full gesture.
func (s *State) Keydown(k vkey.VKey) {
	if len(s.pressing) == 0 && len(s.sequence) > 0 {
		s.sequence = s.sequence[:0]
	}
	s.pressing[k] = struct{}{}
	for _, seen := range s.sequence {
		if seen == k {
			return
		}
	}
	s.sequence = append(s.sequence, k)
}

// Keyup records a key release. The sequence keeps its history so that a
// match evaluated at this exact release can inspect the whole gesture.
func (s *State) Keyup(k vkey.VKey) {
	delete(s.pressing, k)
}

// IsDown reports whether k is currently held. Generic modifier roles match
// either specific variant, so IsDown(vkey.Control) is true while LControl
// is held.
func (s *State) IsDown(k vkey.VKey) bool {
	if _, held := s.pressing[k]; held {
		return true
	}
	if !k.IsModifier() {
		return false
	}
	for p := range s.pressing {
		if k.Matches(p) {
			return true
		}
	}
	return false
}

func (s *State) WinPressed() bool     { return s.IsDown(vkey.Win) }
func (s *State) MenuPressed() bool    { return s.IsDown(vkey.Menu) }
func (s *State) ShiftPressed() bool   { return s.IsDown(vkey.Shift) }
func (s *State) ControlPressed() bool { return s.IsDown(vkey.Control) }

// Pressing returns the currently held keys. Order is unspecified.
func (s *State) Pressing() []vkey.VKey {
	keys := make([]vkey.VKey, 0, len(s.pressing))
	for k := range s.pressing {
		keys = append(keys, k)
	}
	return keys
}

// Sequence returns the press order of the current gesture.
func (s *State) Sequence() []vkey.VKey {
	seq := make([]vkey.VKey, len(s.sequence))
	copy(seq, s.sequence)
	return seq
}
