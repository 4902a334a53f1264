// Package keychord implements global keyboard shortcuts driven by a raw
// key-event stream. A Hotkey describes a trigger key, its modifiers and
// dispatch options; the Manager owns the live keyboard state and decides,
// at every key transition, which registered hotkeys fire.
package keychord

import (
	"encoding/binary"
	"hash/fnv"
	"strings"

	"keychord/keystate"
	"keychord/vkey"
)

// TriggerTiming selects whether a hotkey fires when its trigger key goes
// down or when it is released.
type TriggerTiming int

const (
	OnKeyDown TriggerTiming = iota
	OnKeyUp
)

func (t TriggerTiming) String() string {
	if t == OnKeyUp {
		return "keyup"
	}
	return "keydown"
}

// TriggerBehavior decides what happens to the originating key event after a
// hotkey fires: swallowed, or passed on to the rest of the system.
type TriggerBehavior int

const (
	StopPropagation TriggerBehavior = iota
	PassThrough
)

func (b TriggerBehavior) String() string {
	if b == PassThrough {
		return "passthrough"
	}
	return "stop"
}

// Hotkey is a registered shortcut. Build one with New or FromKeys and the
// fluent setters, then hand it to a Manager; it must not be modified after
// registration. The callback may run on a worker goroutine while the
// descriptor is still being read by the dispatch loop, which is safe
// because every field is set exactly once before registration.
type Hotkey struct {
	trigger     vkey.VKey
	modifiers   []vkey.VKey
	timing      TriggerTiming
	behavior    TriggerBehavior
	bypassPause bool
	strict      bool
	callback    func()
}

// New builds a hotkey from an explicit trigger key and modifier list.
// Defaults: fires on key down, stops propagation, honors pause, non-strict.
func New(trigger vkey.VKey, modifiers []vkey.VKey, callback func()) *Hotkey {
	h := &Hotkey{
		trigger:  trigger,
		callback: callback,
	}
	h.modifiers = append(h.modifiers, modifiers...)
	return h
}

// FromKeys builds a hotkey from a flat ordered key list: the last key is
// the trigger, everything before it a modifier.
func FromKeys(keys ...vkey.VKey) *Hotkey {
	h := &Hotkey{callback: func() {}}
	if len(keys) > 0 {
		h.trigger = keys[len(keys)-1]
		h.modifiers = append(h.modifiers, keys[:len(keys)-1]...)
	}
	return h
}

// Trigger replaces the trigger key.
func (h *Hotkey) Trigger(k vkey.VKey) *Hotkey {
	h.trigger = k
	return h
}

// Modifiers replaces the modifier list. Order matters for strict-sequence
// matching.
func (h *Hotkey) Modifiers(keys ...vkey.VKey) *Hotkey {
	h.modifiers = append(h.modifiers[:0], keys...)
	return h
}

// Behavior sets what happens to the key event after the hotkey fires.
func (h *Hotkey) Behavior(b TriggerBehavior) *Hotkey {
	h.behavior = b
	return h
}

// BypassPause makes the hotkey fire even while the manager is paused.
func (h *Hotkey) BypassPause() *Hotkey {
	h.bypassPause = true
	return h
}

// StrictSequence requires the live press order to equal the declared
// modifier+trigger order exactly, with no extraneous keys anywhere in the
// gesture.
func (h *Hotkey) StrictSequence() *Hotkey {
	h.strict = true
	return h
}

// Timing sets when the hotkey fires.
func (h *Hotkey) Timing(t TriggerTiming) *Hotkey {
	h.timing = t
	return h
}

// Action replaces the callback.
func (h *Hotkey) Action(fn func()) *Hotkey {
	h.callback = fn
	return h
}

// Key returns the trigger key.
func (h *Hotkey) Key() vkey.VKey { return h.trigger }

// Mods returns a copy of the modifier list.
func (h *Hotkey) Mods() []vkey.VKey {
	mods := make([]vkey.VKey, len(h.modifiers))
	copy(mods, h.modifiers)
	return mods
}

// Execute invokes the callback. The dispatch loop calls this from a worker
// goroutine, never from the hook thread.
func (h *Hotkey) Execute() {
	if h.callback != nil {
		h.callback()
	}
}

// ExpectedState synthesizes the keyboard state this hotkey describes by
// replaying its modifiers and trigger into a fresh tracker. For OnKeyUp
// hotkeys the trigger is released again, matching the instant the hotkey
// is evaluated.
func (h *Hotkey) ExpectedState() *keystate.State {
	st := keystate.New()
	for _, k := range h.modifiers {
		st.Keydown(k)
	}
	st.Keydown(h.trigger)
	if h.timing == OnKeyUp {
		st.Keyup(h.trigger)
	}
	return st
}

// IsTriggerState reports whether the live keyboard state satisfies this
// hotkey at the instant changed transitioned. Call it only when changed is
// the key that just went down (or up, for OnKeyUp hotkeys). Pure: neither
// input is mutated.
func (h *Hotkey) IsTriggerState(changed vkey.VKey, state *keystate.State) bool {
	// The key that just changed must be the trigger key.
	if h.trigger != changed {
		return false
	}

	expected := h.ExpectedState()

	// Every required non-modifier key must still be down. The OnKeyUp
	// trigger was synthetically released above and so is exempt.
	for _, k := range expected.Pressing() {
		if !k.IsModifier() && !state.IsDown(k) {
			return false
		}
	}

	if h.strict {
		exp := expected.Sequence()
		live := state.Sequence()
		if len(exp) != len(live) {
			return false
		}
		for i, k := range exp {
			if !k.Matches(live[i]) {
				return false
			}
		}
	}

	// Modifier roles must match exactly, so "win + a" does not fire while
	// "win + alt + a" is held.
	return expected.WinPressed() == state.WinPressed() &&
		expected.MenuPressed() == state.MenuPressed() &&
		expected.ShiftPressed() == state.ShiftPressed() &&
		expected.ControlPressed() == state.ControlPressed()
}

// Hash returns the registry identity of the hotkey. Identity covers the
// trigger key, modifier order and timing only; behavior, strictness, pause
// bypass and the callback are deliberately excluded, so two registrations
// differing only in those collide.
func (h *Hotkey) Hash() uint64 {
	hsh := fnv.New64a()
	var buf [2]byte
	put := func(v uint16) {
		binary.LittleEndian.PutUint16(buf[:], v)
		hsh.Write(buf[:])
	}
	put(uint16(h.trigger))
	put(uint16(len(h.modifiers)))
	for _, m := range h.modifiers {
		put(uint16(m))
	}
	put(uint16(h.timing))
	return hsh.Sum64()
}

// Equal reports whether two hotkeys share the same registry identity.
func (h *Hotkey) Equal(other *Hotkey) bool {
	if h.trigger != other.trigger || h.timing != other.timing {
		return false
	}
	if len(h.modifiers) != len(other.modifiers) {
		return false
	}
	for i, m := range h.modifiers {
		if other.modifiers[i] != m {
			return false
		}
	}
	return true
}

// String renders the combination as "ctrl+shift+a" style, with the timing
// appended for OnKeyUp hotkeys.
func (h *Hotkey) String() string {
	var b strings.Builder
	for _, m := range h.modifiers {
		b.WriteString(m.String())
		b.WriteByte('+')
	}
	b.WriteString(h.trigger.String())
	if h.timing == OnKeyUp {
		b.WriteString(" (keyup)")
	}
	return b.String()
}
