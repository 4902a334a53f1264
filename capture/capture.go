// Package capture provides the platform key-event sources that feed the
// hotkey engine: a raw evdev reader on Linux, a low-level keyboard hook on
// Windows, and a degraded per-combination fallback elsewhere.
package capture

import "keychord/vkey"

// Event is one key transition observed system-wide.
type Event struct {
	Key  vkey.VKey
	Down bool
}

// Source delivers key transitions in strict chronological order. Start may
// be called once. Stop ends delivery; consumers should also watch their own
// cancellation signal, as not every backend can close the event channel.
type Source interface {
	Start() (<-chan Event, error)
	Stop() error
}

// Chord names one registered key combination. Only the fallback backend
// needs it: unlike the raw sources it must tell the OS which combinations
// to watch up front.
type Chord struct {
	Modifiers []vkey.VKey
	Key       vkey.VKey
}
