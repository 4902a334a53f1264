package keychord

import (
	"testing"

	"keychord/keystate"
	"keychord/vkey"
)

func TestBuilderDefaults(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control}, func() {})

	if h.timing != OnKeyDown {
		t.Errorf("default timing = %v, want OnKeyDown", h.timing)
	}
	if h.behavior != StopPropagation {
		t.Errorf("default behavior = %v, want StopPropagation", h.behavior)
	}
	if h.strict {
		t.Error("strict should default to false")
	}
	if h.bypassPause {
		t.Error("bypassPause should default to false")
	}
}

func TestFromKeysInfersTrigger(t *testing.T) {
	h := FromKeys(vkey.Control, vkey.Shift, vkey.A)

	if h.Key() != vkey.A {
		t.Errorf("trigger = %v, want A", h.Key())
	}
	mods := h.Mods()
	if len(mods) != 2 || mods[0] != vkey.Control || mods[1] != vkey.Shift {
		t.Errorf("modifiers = %v, want [Control Shift]", mods)
	}
}

func TestFromKeysEmpty(t *testing.T) {
	h := FromKeys()
	if h.Key() != vkey.None {
		t.Errorf("trigger = %v, want None", h.Key())
	}

	state := keystate.New()
	state.Keydown(vkey.A)
	if h.IsTriggerState(vkey.A, state) {
		t.Error("hotkey without a trigger key must never fire")
	}
}

func TestExpectedStateOnKeyDown(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control, vkey.Shift}, func() {})

	exp := h.ExpectedState()
	seq := exp.Sequence()
	want := []vkey.VKey{vkey.Control, vkey.Shift, vkey.A}
	if len(seq) != len(want) {
		t.Fatalf("sequence = %v, want %v", seq, want)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("sequence = %v, want %v", seq, want)
		}
	}
	if !exp.IsDown(vkey.A) {
		t.Error("trigger should be pressed in expected state for OnKeyDown")
	}
}

func TestExpectedStateOnKeyUpReleasesTrigger(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control}, func() {}).Timing(OnKeyUp)

	exp := h.ExpectedState()
	if exp.IsDown(vkey.A) {
		t.Error("trigger should be released in expected state for OnKeyUp")
	}
	seq := exp.Sequence()
	if len(seq) != 2 || seq[0] != vkey.Control || seq[1] != vkey.A {
		t.Errorf("sequence = %v, want [Control A]", seq)
	}
}

func TestStrictSequenceExactMatch(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control, vkey.Shift}, func() {}).
		StrictSequence()

	state := keystate.New()
	state.Keydown(vkey.Control)
	state.Keydown(vkey.Shift)
	state.Keydown(vkey.A)

	if !h.IsTriggerState(vkey.A, state) {
		t.Error("should trigger when sequence is exactly [Control, Shift, A]")
	}
}

func TestStrictSequenceExtraKeyBefore(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control, vkey.Shift}, func() {}).
		StrictSequence()

	state := keystate.New()
	state.Keydown(vkey.B) // extra key before
	state.Keydown(vkey.Control)
	state.Keydown(vkey.Shift)
	state.Keydown(vkey.A)

	if h.IsTriggerState(vkey.A, state) {
		t.Error("should not trigger when extra key B precedes the sequence")
	}
}

func TestStrictSequenceExtraKeyInMiddle(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control, vkey.Shift}, func() {}).
		StrictSequence()

	state := keystate.New()
	state.Keydown(vkey.Control)
	state.Keydown(vkey.B) // extra key in the middle
	state.Keydown(vkey.Shift)
	state.Keydown(vkey.A)

	if h.IsTriggerState(vkey.A, state) {
		t.Error("should not trigger with extra key B in the middle of the sequence")
	}
}

func TestStrictSequenceExtraKeyAfterTrigger(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control}, func() {}).
		StrictSequence()

	state := keystate.New()
	state.Keydown(vkey.Control)
	state.Keydown(vkey.A)
	state.Keydown(vkey.B) // extra key after trigger

	if h.IsTriggerState(vkey.A, state) {
		t.Error("sequence [Control, A, B] should not match strict [Control, A]")
	}
}

func TestStrictSequenceWrongOrder(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control, vkey.Shift}, func() {}).
		StrictSequence()

	state := keystate.New()
	state.Keydown(vkey.Shift) // wrong order
	state.Keydown(vkey.Control)
	state.Keydown(vkey.A)

	if h.IsTriggerState(vkey.A, state) {
		t.Error("should not trigger when modifiers are pressed in the wrong order")
	}
}

func TestStrictSequenceRePressWhileModifierHeld(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control}, func() {}).
		StrictSequence()

	state := keystate.New()
	state.Keydown(vkey.Control)
	state.Keydown(vkey.A)

	if !h.IsTriggerState(vkey.A, state) {
		t.Error("first press of A should trigger")
	}

	// Release and re-press A while Control stays held: the sequence
	// continues as [Control, A] and triggers again.
	state.Keyup(vkey.A)
	state.Keydown(vkey.A)

	if !h.IsTriggerState(vkey.A, state) {
		t.Error("re-press of A after release should trigger again")
	}
}

func TestStrictSequenceHoldDoesNotDuplicate(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control}, func() {}).
		StrictSequence()

	state := keystate.New()
	state.Keydown(vkey.Control)
	state.Keydown(vkey.A)
	state.Keydown(vkey.A) // auto-repeat
	state.Keydown(vkey.A) // auto-repeat

	if !h.IsTriggerState(vkey.A, state) {
		t.Error("holding A must keep the sequence at [Control, A]")
	}
}

func TestStrictSequenceModifierRePress(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control, vkey.Shift}, func() {}).
		StrictSequence()

	state := keystate.New()
	state.Keydown(vkey.Control)
	state.Keydown(vkey.Shift)
	state.Keyup(vkey.Shift)
	state.Keydown(vkey.Shift) // re-press while Control held: no duplicate
	state.Keydown(vkey.A)

	if !h.IsTriggerState(vkey.A, state) {
		t.Error("modifier re-press while another key is held should not break the sequence")
	}
}

func TestStrictSequenceOnKeyUpExactMatch(t *testing.T) {
	h := New(vkey.LWin, nil, func() {}).
		StrictSequence().
		Timing(OnKeyUp)

	state := keystate.New()
	state.Keydown(vkey.LWin)
	state.Keyup(vkey.LWin)

	if !h.IsTriggerState(vkey.LWin, state) {
		t.Error("should trigger when only LWin was pressed and released")
	}
}

func TestStrictSequenceOnKeyUpWithInterveningKey(t *testing.T) {
	h := New(vkey.LWin, nil, func() {}).
		StrictSequence().
		Timing(OnKeyUp)

	state := keystate.New()
	state.Keydown(vkey.LWin)
	state.Keydown(vkey.V)
	state.Keyup(vkey.LWin)

	if h.IsTriggerState(vkey.LWin, state) {
		t.Error("should not trigger when V was pressed before releasing LWin")
	}
}

func TestStrictSequenceOnKeyUpMultipleExtraKeys(t *testing.T) {
	h := New(vkey.LWin, nil, func() {}).
		StrictSequence().
		Timing(OnKeyUp)

	state := keystate.New()
	state.Keydown(vkey.LWin)
	state.Keydown(vkey.V)
	state.Keyup(vkey.V)
	state.Keydown(vkey.V)
	state.Keyup(vkey.V)
	state.Keydown(vkey.V)
	state.Keyup(vkey.LWin)

	if h.IsTriggerState(vkey.LWin, state) {
		t.Error("should not trigger after repeated V presses during the gesture")
	}
}

func TestStrictSequenceOnKeyUpWithModifiers(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control}, func() {}).
		StrictSequence().
		Timing(OnKeyUp)

	state := keystate.New()
	state.Keydown(vkey.Control)
	state.Keydown(vkey.A)
	state.Keyup(vkey.A)

	if !h.IsTriggerState(vkey.A, state) {
		t.Error("should trigger on release of A after exact [Control, A]")
	}

	state = keystate.New()
	state.Keydown(vkey.Control)
	state.Keydown(vkey.B) // extra key
	state.Keydown(vkey.A)
	state.Keyup(vkey.A)

	if h.IsTriggerState(vkey.A, state) {
		t.Error("should not trigger with extra key B in the gesture")
	}
}

func TestStrictSequenceResetsAfterFullRelease(t *testing.T) {
	h := New(vkey.LWin, nil, func() {}).
		StrictSequence().
		Timing(OnKeyUp)

	state := keystate.New()

	// Failed gesture [LWin, V], fully released.
	state.Keydown(vkey.LWin)
	state.Keydown(vkey.V)
	state.Keyup(vkey.V)
	state.Keyup(vkey.LWin)

	if h.IsTriggerState(vkey.LWin, state) {
		t.Error("gesture [LWin, V] should not trigger")
	}

	// A fresh press after emptiness starts a clean gesture.
	state.Keydown(vkey.LWin)
	state.Keyup(vkey.LWin)

	if !h.IsTriggerState(vkey.LWin, state) {
		t.Error("clean [LWin] gesture after reset should trigger")
	}
}

func TestStrictSequenceHoldVsExtraKeyOnKeyUp(t *testing.T) {
	h := New(vkey.A, nil, func() {}).
		StrictSequence().
		Timing(OnKeyUp)

	held := keystate.New()
	held.Keydown(vkey.A)
	held.Keydown(vkey.A)
	held.Keydown(vkey.A)
	held.Keydown(vkey.A)
	held.Keyup(vkey.A)

	if !h.IsTriggerState(vkey.A, held) {
		t.Error("holding A (repeated keydowns) must not cancel the gesture")
	}

	extra := keystate.New()
	extra.Keydown(vkey.A)
	extra.Keydown(vkey.B) // different key
	extra.Keyup(vkey.A)

	if h.IsTriggerState(vkey.A, extra) {
		t.Error("pressing a different key must cancel the gesture")
	}
}

func TestStrictSequenceLongHoldOnKeyUp(t *testing.T) {
	h := New(vkey.LWin, nil, func() {}).
		StrictSequence().
		Timing(OnKeyUp)

	state := keystate.New()
	state.Keydown(vkey.LWin)
	for i := 0; i < 50; i++ {
		state.Keydown(vkey.LWin)
	}
	state.Keyup(vkey.LWin)

	if !h.IsTriggerState(vkey.LWin, state) {
		t.Error("should trigger after a long hold of the trigger key")
	}
}

func TestStrictSequenceFourModifiers(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control, vkey.Shift, vkey.Menu, vkey.LWin}, func() {}).
		StrictSequence()

	state := keystate.New()
	state.Keydown(vkey.Control)
	state.Keydown(vkey.Shift)
	state.Keydown(vkey.Menu)
	state.Keydown(vkey.LWin)
	state.Keydown(vkey.A)

	if !h.IsTriggerState(vkey.A, state) {
		t.Error("should trigger with the exact four-modifier sequence")
	}

	wrong := keystate.New()
	wrong.Keydown(vkey.Menu)
	wrong.Keydown(vkey.Control)
	wrong.Keydown(vkey.Shift)
	wrong.Keydown(vkey.LWin)
	wrong.Keydown(vkey.A)

	if h.IsTriggerState(vkey.A, wrong) {
		t.Error("should not trigger with modifiers in the wrong order")
	}
}

func TestStrictSequenceBareKeyWithPriorKey(t *testing.T) {
	h := New(vkey.A, nil, func() {}).StrictSequence()

	state := keystate.New()
	state.Keydown(vkey.B)
	state.Keydown(vkey.A)

	if h.IsTriggerState(vkey.A, state) {
		t.Error("should not trigger when another key came first in strict mode")
	}
}

func TestStrictSequenceHoldBothKeysOnKeyUp(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control}, func() {}).
		StrictSequence().
		Timing(OnKeyUp)

	state := keystate.New()
	state.Keydown(vkey.Control)
	state.Keydown(vkey.Control) // auto-repeat
	state.Keydown(vkey.Control)
	state.Keydown(vkey.A)
	state.Keydown(vkey.A) // auto-repeat
	state.Keydown(vkey.A)
	state.Keyup(vkey.A)

	if !h.IsTriggerState(vkey.A, state) {
		t.Error("auto-repeat on both keys must not break the [Control, A] gesture")
	}
}

func TestNonStrictAllowsRepeatedPresses(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control}, func() {})

	state := keystate.New()
	state.Keydown(vkey.Control)
	state.Keydown(vkey.A)
	state.Keyup(vkey.A)
	state.Keydown(vkey.A)

	if !h.IsTriggerState(vkey.A, state) {
		t.Error("non-strict hotkey should fire again on a re-press")
	}
}

func TestNonStrictAllowsExtraNonModifierKeys(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control}, func() {})

	state := keystate.New()
	state.Keydown(vkey.Control)
	state.Keydown(vkey.B) // extra non-modifier
	state.Keydown(vkey.A)

	if !h.IsTriggerState(vkey.A, state) {
		t.Error("non-strict hotkey should tolerate extra non-modifier keys")
	}
}

func TestModifierSupersetRejected(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control}, func() {})

	state := keystate.New()
	state.Keydown(vkey.Control)
	state.Keydown(vkey.Shift) // extra modifier
	state.Keydown(vkey.A)

	if h.IsTriggerState(vkey.A, state) {
		t.Error("ctrl+a must not fire while ctrl+shift+a is held")
	}
}

func TestGenericModifierMatchesSpecificVariant(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control}, func() {}).StrictSequence()

	state := keystate.New()
	state.Keydown(vkey.LControl)
	state.Keydown(vkey.A)

	if !h.IsTriggerState(vkey.A, state) {
		t.Error("generic Control modifier should match a live LControl press")
	}

	state = keystate.New()
	state.Keydown(vkey.RControl)
	state.Keydown(vkey.A)

	if !h.IsTriggerState(vkey.A, state) {
		t.Error("generic Control modifier should match a live RControl press")
	}
}

func TestWrongTriggerKeyNeverMatches(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control}, func() {})

	state := keystate.New()
	state.Keydown(vkey.Control)
	state.Keydown(vkey.A)

	if h.IsTriggerState(vkey.B, state) {
		t.Error("evaluation for a different changed key must fail the identity filter")
	}
}

func TestIsTriggerStateDoesNotMutate(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control}, func() {}).StrictSequence()

	state := keystate.New()
	state.Keydown(vkey.Control)
	state.Keydown(vkey.A)

	before := state.Sequence()
	h.IsTriggerState(vkey.A, state)
	after := state.Sequence()

	if len(before) != len(after) {
		t.Fatalf("sequence changed: %v -> %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("sequence changed: %v -> %v", before, after)
		}
	}
	if !state.IsDown(vkey.Control) || !state.IsDown(vkey.A) {
		t.Error("pressing set changed during evaluation")
	}
}

func TestHashIdentityCoversKeysAndTiming(t *testing.T) {
	base := New(vkey.A, []vkey.VKey{vkey.Control}, func() {})

	same := New(vkey.A, []vkey.VKey{vkey.Control}, func() { panic("other callback") }).
		Behavior(PassThrough).
		StrictSequence().
		BypassPause()
	if base.Hash() != same.Hash() {
		t.Error("behavior, strictness, bypass and callback must not affect identity")
	}
	if !base.Equal(same) {
		t.Error("Equal should agree with Hash")
	}

	keyup := New(vkey.A, []vkey.VKey{vkey.Control}, func() {}).Timing(OnKeyUp)
	if base.Hash() == keyup.Hash() {
		t.Error("timing is part of identity")
	}
	if base.Equal(keyup) {
		t.Error("Equal should distinguish timings")
	}

	otherMods := New(vkey.A, []vkey.VKey{vkey.Shift}, func() {})
	if base.Hash() == otherMods.Hash() {
		t.Error("modifiers are part of identity")
	}

	reordered := New(vkey.A, []vkey.VKey{vkey.Shift, vkey.Control}, func() {})
	both := New(vkey.A, []vkey.VKey{vkey.Control, vkey.Shift}, func() {})
	if both.Hash() == reordered.Hash() {
		t.Error("modifier order is part of identity")
	}
}

func TestHotkeyString(t *testing.T) {
	h := New(vkey.A, []vkey.VKey{vkey.Control, vkey.Shift}, func() {})
	if got := h.String(); got != "ctrl+shift+a" {
		t.Errorf("String() = %q, want %q", got, "ctrl+shift+a")
	}

	up := New(vkey.F5, nil, func() {}).Timing(OnKeyUp)
	if got := up.String(); got != "f5 (keyup)" {
		t.Errorf("String() = %q, want %q", got, "f5 (keyup)")
	}
}

func TestExecuteWithoutCallback(t *testing.T) {
	h := FromKeys(vkey.A).Action(nil)
	h.Execute() // should not panic
}
