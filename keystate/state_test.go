package keystate

import (
	"testing"

	"keychord/vkey"
)

func wantSequence(t *testing.T, s *State, want ...vkey.VKey) {
	t.Helper()
	got := s.Sequence()
	if len(got) != len(want) {
		t.Fatalf("sequence = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sequence = %v, want %v", got, want)
		}
	}
}

func TestKeydownRecordsPressOrder(t *testing.T) {
	s := New()
	s.Keydown(vkey.LWin)
	s.Keydown(vkey.V)
	s.Keydown(vkey.B)

	wantSequence(t, s, vkey.LWin, vkey.V, vkey.B)
	for _, k := range []vkey.VKey{vkey.LWin, vkey.V, vkey.B} {
		if !s.IsDown(k) {
			t.Errorf("%s should be down", k)
		}
	}
}

func TestRepeatedKeydownIsIdempotent(t *testing.T) {
	s := New()
	s.Keydown(vkey.A)
	s.Keydown(vkey.A)
	s.Keydown(vkey.A)

	wantSequence(t, s, vkey.A)
	if got := len(s.Pressing()); got != 1 {
		t.Errorf("pressing has %d keys, want 1", got)
	}
}

func TestKeyupKeepsSequence(t *testing.T) {
	s := New()
	s.Keydown(vkey.LWin)
	s.Keydown(vkey.V)
	s.Keydown(vkey.B)

	s.Keyup(vkey.B)
	s.Keyup(vkey.V)
	s.Keyup(vkey.LWin)

	// History survives the end of the gesture so a release-time match can
	// still inspect it.
	wantSequence(t, s, vkey.LWin, vkey.V, vkey.B)
	if len(s.Pressing()) != 0 {
		t.Errorf("pressing = %v, want empty", s.Pressing())
	}
}

func TestSequenceClearsOnNewKeyAfterEmpty(t *testing.T) {
	s := New()
	s.Keydown(vkey.LWin)
	s.Keydown(vkey.V)
	s.Keyup(vkey.V)
	s.Keyup(vkey.LWin)

	// The next press after emptiness discards the old gesture.
	s.Keydown(vkey.A)

	wantSequence(t, s, vkey.A)
}

func TestSequenceContinuesWhileAnyKeyHeld(t *testing.T) {
	s := New()
	s.Keydown(vkey.LWin)
	s.Keydown(vkey.V)
	s.Keyup(vkey.V)
	s.Keydown(vkey.V) // re-press while LWin still held: no duplicate

	wantSequence(t, s, vkey.LWin, vkey.V)
}

func TestIsDownGenericModifier(t *testing.T) {
	s := New()
	s.Keydown(vkey.LControl)

	if !s.IsDown(vkey.Control) {
		t.Error("IsDown(Control) should see LControl")
	}
	if !s.IsDown(vkey.LControl) {
		t.Error("IsDown(LControl) should see itself")
	}
	if s.IsDown(vkey.RControl) {
		t.Error("IsDown(RControl) must not match LControl")
	}

	s.Keyup(vkey.LControl)
	s.Keydown(vkey.RControl)
	if !s.IsDown(vkey.Control) {
		t.Error("IsDown(Control) should see RControl")
	}
}

func TestIsDownOtherModifiersDoNotLeak(t *testing.T) {
	s := New()
	s.Keydown(vkey.LShift)
	s.Keydown(vkey.LMenu)
	s.Keydown(vkey.LWin)

	if s.IsDown(vkey.Control) {
		t.Error("Control query must be false with only Shift/Alt/Win down")
	}
}

func TestModifierRolePredicates(t *testing.T) {
	s := New()
	s.Keydown(vkey.RWin)
	s.Keydown(vkey.LShift)

	if !s.WinPressed() {
		t.Error("WinPressed should see RWin")
	}
	if !s.ShiftPressed() {
		t.Error("ShiftPressed should see LShift")
	}
	if s.ControlPressed() || s.MenuPressed() {
		t.Error("Control/Menu roles should be idle")
	}
}

func TestSequenceAccessorReturnsCopy(t *testing.T) {
	s := New()
	s.Keydown(vkey.A)

	seq := s.Sequence()
	seq[0] = vkey.B

	wantSequence(t, s, vkey.A)
}
