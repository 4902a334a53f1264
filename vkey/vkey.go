// Package vkey defines the canonical key identifiers used by the hotkey
// engine. Values follow the Windows virtual-key code space so they stay
// stable across capture backends; platform sources translate their native
// codes into VKey before events enter the engine.
package vkey

// VKey identifies a physical or virtual key.
type VKey uint16

const (
	// None is the "no key" sentinel. A hotkey with a None trigger never fires.
	None VKey = 0x00

	Back   VKey = 0x08
	Tab    VKey = 0x09
	Clear  VKey = 0x0C
	Return VKey = 0x0D

	// Generic modifier roles. These match either of their left/right
	// specific variants, see Matches.
	Shift   VKey = 0x10
	Control VKey = 0x11
	Menu    VKey = 0x12 // Alt

	Pause    VKey = 0x13
	CapsLock VKey = 0x14
	Escape   VKey = 0x1B
	Space    VKey = 0x20
	PageUp   VKey = 0x21
	PageDown VKey = 0x22
	End      VKey = 0x23
	Home     VKey = 0x24
	Left     VKey = 0x25
	Up       VKey = 0x26
	Right    VKey = 0x27
	Down     VKey = 0x28
	Print    VKey = 0x2A
	Snapshot VKey = 0x2C
	Insert   VKey = 0x2D
	Delete   VKey = 0x2E

	Key0 VKey = 0x30
	Key1 VKey = 0x31
	Key2 VKey = 0x32
	Key3 VKey = 0x33
	Key4 VKey = 0x34
	Key5 VKey = 0x35
	Key6 VKey = 0x36
	Key7 VKey = 0x37
	Key8 VKey = 0x38
	Key9 VKey = 0x39

	A VKey = 0x41
	B VKey = 0x42
	C VKey = 0x43
	D VKey = 0x44
	E VKey = 0x45
	F VKey = 0x46
	G VKey = 0x47
	H VKey = 0x48
	I VKey = 0x49
	J VKey = 0x4A
	K VKey = 0x4B
	L VKey = 0x4C
	M VKey = 0x4D
	N VKey = 0x4E
	O VKey = 0x4F
	P VKey = 0x50
	Q VKey = 0x51
	R VKey = 0x52
	S VKey = 0x53
	T VKey = 0x54
	U VKey = 0x55
	V VKey = 0x56
	W VKey = 0x57
	X VKey = 0x58
	Y VKey = 0x59
	Z VKey = 0x5A

	LWin VKey = 0x5B
	RWin VKey = 0x5C
	Apps VKey = 0x5D

	Numpad0   VKey = 0x60
	Numpad1   VKey = 0x61
	Numpad2   VKey = 0x62
	Numpad3   VKey = 0x63
	Numpad4   VKey = 0x64
	Numpad5   VKey = 0x65
	Numpad6   VKey = 0x66
	Numpad7   VKey = 0x67
	Numpad8   VKey = 0x68
	Numpad9   VKey = 0x69
	Multiply  VKey = 0x6A
	Add       VKey = 0x6B
	Subtract  VKey = 0x6D
	Decimal   VKey = 0x6E
	Divide    VKey = 0x6F

	F1  VKey = 0x70
	F2  VKey = 0x71
	F3  VKey = 0x72
	F4  VKey = 0x73
	F5  VKey = 0x74
	F6  VKey = 0x75
	F7  VKey = 0x76
	F8  VKey = 0x77
	F9  VKey = 0x78
	F10 VKey = 0x79
	F11 VKey = 0x7A
	F12 VKey = 0x7B
	F13 VKey = 0x7C
	F14 VKey = 0x7D
	F15 VKey = 0x7E
	F16 VKey = 0x7F
	F17 VKey = 0x80
	F18 VKey = 0x81
	F19 VKey = 0x82
	F20 VKey = 0x83
	F21 VKey = 0x84
	F22 VKey = 0x85
	F23 VKey = 0x86
	F24 VKey = 0x87

	NumLock    VKey = 0x90
	ScrollLock VKey = 0x91

	// Left/right specific modifier variants.
	LShift   VKey = 0xA0
	RShift   VKey = 0xA1
	LControl VKey = 0xA2
	RControl VKey = 0xA3
	LMenu    VKey = 0xA4
	RMenu    VKey = 0xA5

	VolumeMute     VKey = 0xAD
	VolumeDown     VKey = 0xAE
	VolumeUp       VKey = 0xAF
	MediaNextTrack VKey = 0xB0
	MediaPrevTrack VKey = 0xB1
	MediaStop      VKey = 0xB2
	MediaPlayPause VKey = 0xB3

	OEM1      VKey = 0xBA // ;:
	OEMPlus   VKey = 0xBB // =+
	OEMComma  VKey = 0xBC // ,<
	OEMMinus  VKey = 0xBD // -_
	OEMPeriod VKey = 0xBE // .>
	OEM2      VKey = 0xBF // /?
	OEM3      VKey = 0xC0 // `~
	OEM4      VKey = 0xDB // [{
	OEM5      VKey = 0xDC // \|
	OEM6      VKey = 0xDD // ]}
	OEM7      VKey = 0xDE // '"

	// Win is the generic Windows-key role. There is no generic VK code for
	// it, so the engine claims an unassigned slot in the VK space.
	Win VKey = 0xE8
)

// IsModifier reports whether k is a modifier key, in either its generic or
// left/right specific form.
func (k VKey) IsModifier() bool {
	switch k {
	case Shift, Control, Menu, Win,
		LShift, RShift, LControl, RControl, LMenu, RMenu, LWin, RWin:
		return true
	}
	return false
}

// generic maps a specific modifier variant to its generic role. Non-modifier
// keys and generic modifiers map to themselves.
func (k VKey) generic() VKey {
	switch k {
	case LShift, RShift:
		return Shift
	case LControl, RControl:
		return Control
	case LMenu, RMenu:
		return Menu
	case LWin, RWin:
		return Win
	}
	return k
}

// Matches reports whether k and other name the same key. Identical keys
// always match. A generic modifier role additionally matches its left and
// right variants (Control matches LControl and RControl), but the two
// specific variants never match each other.
func (k VKey) Matches(other VKey) bool {
	if k == other {
		return true
	}
	return k.generic() == other || other.generic() == k
}
