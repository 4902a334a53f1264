package vkey

import (
	"fmt"
	"strconv"
	"strings"
)

// keyNames holds the canonical spelling for every named key. Parsing is
// case-insensitive and accepts the aliases below in addition to these.
var keyNames = map[VKey]string{
	Back: "backspace", Tab: "tab", Clear: "clear", Return: "enter",
	Shift: "shift", Control: "ctrl", Menu: "alt", Win: "win",
	LShift: "lshift", RShift: "rshift",
	LControl: "lctrl", RControl: "rctrl",
	LMenu: "lalt", RMenu: "ralt",
	LWin: "lwin", RWin: "rwin",
	Pause: "pause", CapsLock: "capslock", Escape: "esc", Space: "space",
	PageUp: "pageup", PageDown: "pagedown", End: "end", Home: "home",
	Left: "left", Up: "up", Right: "right", Down: "down",
	Print: "print", Snapshot: "printscreen", Insert: "insert", Delete: "delete",
	Apps: "apps", NumLock: "numlock", ScrollLock: "scrolllock",
	VolumeMute: "volumemute", VolumeDown: "volumedown", VolumeUp: "volumeup",
	MediaNextTrack: "medianext", MediaPrevTrack: "mediaprev",
	MediaStop: "mediastop", MediaPlayPause: "mediaplaypause",
	Multiply: "numpad*", Add: "numpad+", Subtract: "numpad-",
	Decimal: "numpad.", Divide: "numpad/",
	OEM1: ";", OEMPlus: "=", OEMComma: ",", OEMMinus: "-",
	OEMPeriod: ".", OEM2: "/", OEM3: "`",
	OEM4: "[", OEM5: "\\", OEM6: "]", OEM7: "'",
}

var keyAliases = map[string]VKey{
	"control": Control, "menu": Menu, "super": Win, "cmd": Win, "meta": Win,
	"escape": Escape, "return": Return, "back": Back, "del": Delete,
	"pgup": PageUp, "pgdn": PageDown, "caps": CapsLock,
}

var nameToKey = func() map[string]VKey {
	m := make(map[string]VKey, len(keyNames)+len(keyAliases))
	for k, name := range keyNames {
		m[name] = k
	}
	for name, k := range keyAliases {
		m[name] = k
	}
	return m
}()

// String returns the canonical lowercase name of k, or a 0x-prefixed hex
// code for keys without one.
func (k VKey) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	switch {
	case k >= A && k <= Z:
		return string(rune('a' + k - A))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + k - Key0))
	case k >= Numpad0 && k <= Numpad9:
		return fmt.Sprintf("numpad%d", k-Numpad0)
	case k >= F1 && k <= F24:
		return fmt.Sprintf("f%d", k-F1+1)
	case k == None:
		return "none"
	}
	return fmt.Sprintf("0x%02X", uint16(k))
}

// FromString parses a key name as used in binding strings like
// "ctrl+shift+a". Single letters and digits map to their key, "f1".."f24"
// to the function keys, and a "0x" prefix passes a raw virtual-key code
// through for keys without a name.
func FromString(s string) (VKey, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return None, fmt.Errorf("empty key name")
	}

	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return A + VKey(c-'a'), nil
		case c >= '0' && c <= '9':
			return Key0 + VKey(c-'0'), nil
		}
	}

	if k, ok := nameToKey[name]; ok {
		return k, nil
	}

	if n, err := strconv.Atoi(strings.TrimPrefix(name, "f")); err == nil && strings.HasPrefix(name, "f") {
		if n >= 1 && n <= 24 {
			return F1 + VKey(n-1), nil
		}
		return None, fmt.Errorf("function key out of range: %q", s)
	}

	if strings.HasPrefix(name, "0x") {
		code, err := strconv.ParseUint(name[2:], 16, 16)
		if err != nil {
			return None, fmt.Errorf("invalid key code %q: %w", s, err)
		}
		return VKey(code), nil
	}

	if n, err := strconv.Atoi(strings.TrimPrefix(name, "numpad")); err == nil && strings.HasPrefix(name, "numpad") {
		if n >= 0 && n <= 9 {
			return Numpad0 + VKey(n), nil
		}
	}

	return None, fmt.Errorf("unknown key name: %q", s)
}
