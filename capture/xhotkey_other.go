//go:build !linux && !windows

package capture

import (
	"fmt"
	"sync"

	"golang.design/x/hotkey"

	"keychord/log"
	"keychord/vkey"
)

// xhotkeySource is the degraded fallback backend built on
// golang.design/x/hotkey. The OS only reports the registered combinations,
// not raw key traffic, so the source synthesizes the modifier and trigger
// transitions of each chord in declared order. Strict-sequence hotkeys
// therefore always observe their declared order; extraneous-key rejection
// needs one of the raw backends.
type xhotkeySource struct {
	chords []Chord
	hks    []*hotkey.Hotkey
	events chan Event
	stop   chan struct{}
	once   sync.Once
}

// New creates the fallback source watching the given chords.
func New(chords ...Chord) Source {
	return &xhotkeySource{
		chords: chords,
		events: make(chan Event, 64),
		stop:   make(chan struct{}),
	}
}

func (s *xhotkeySource) Start() (<-chan Event, error) {
	if len(s.chords) == 0 {
		return nil, fmt.Errorf("fallback backend needs at least one chord to watch")
	}

	for _, c := range s.chords {
		mods, key, err := toXHotkey(c)
		if err != nil {
			return nil, err
		}
		hk := hotkey.New(mods, key)
		if err := hk.Register(); err != nil {
			s.unregisterAll()
			return nil, fmt.Errorf("registering %s: %w", c.Key, err)
		}
		s.hks = append(s.hks, hk)
		go s.watch(hk, c)
	}

	log.CaptureStart("xhotkey", len(s.hks))
	return s.events, nil
}

func (s *xhotkeySource) watch(hk *hotkey.Hotkey, c Chord) {
	for {
		select {
		case <-s.stop:
			return
		case <-hk.Keydown():
			for _, m := range c.Modifiers {
				s.emit(Event{Key: m, Down: true})
			}
			s.emit(Event{Key: c.Key, Down: true})
		case <-hk.Keyup():
			s.emit(Event{Key: c.Key, Down: false})
			for i := len(c.Modifiers) - 1; i >= 0; i-- {
				s.emit(Event{Key: c.Modifiers[i], Down: false})
			}
		}
	}
}

func (s *xhotkeySource) emit(ev Event) {
	select {
	case s.events <- ev:
	case <-s.stop:
	}
}

func (s *xhotkeySource) Stop() error {
	s.once.Do(func() {
		close(s.stop)
		s.unregisterAll()
	})
	return nil
}

func (s *xhotkeySource) unregisterAll() {
	for _, hk := range s.hks {
		hk.Unregister()
	}
	s.hks = nil
}

func toXHotkey(c Chord) ([]hotkey.Modifier, hotkey.Key, error) {
	var mods []hotkey.Modifier
	for _, m := range c.Modifiers {
		switch {
		case m.Matches(vkey.Control):
			mods = append(mods, hotkey.ModCtrl)
		case m.Matches(vkey.Shift):
			mods = append(mods, hotkey.ModShift)
		case m.Matches(vkey.Menu):
			mods = append(mods, hotkey.ModOption)
		case m.Matches(vkey.Win):
			mods = append(mods, hotkey.ModCmd)
		default:
			return nil, 0, fmt.Errorf("fallback backend only supports modifier keys as modifiers, got %s", m)
		}
	}

	key, err := toXKey(c.Key)
	if err != nil {
		return nil, 0, err
	}
	return mods, key, nil
}

func toXKey(k vkey.VKey) (hotkey.Key, error) {
	switch {
	case k >= vkey.A && k <= vkey.Z:
		return [26]hotkey.Key{
			hotkey.KeyA, hotkey.KeyB, hotkey.KeyC, hotkey.KeyD, hotkey.KeyE,
			hotkey.KeyF, hotkey.KeyG, hotkey.KeyH, hotkey.KeyI, hotkey.KeyJ,
			hotkey.KeyK, hotkey.KeyL, hotkey.KeyM, hotkey.KeyN, hotkey.KeyO,
			hotkey.KeyP, hotkey.KeyQ, hotkey.KeyR, hotkey.KeyS, hotkey.KeyT,
			hotkey.KeyU, hotkey.KeyV, hotkey.KeyW, hotkey.KeyX, hotkey.KeyY,
			hotkey.KeyZ,
		}[k-vkey.A], nil
	case k >= vkey.Key0 && k <= vkey.Key9:
		return [10]hotkey.Key{
			hotkey.Key0, hotkey.Key1, hotkey.Key2, hotkey.Key3, hotkey.Key4,
			hotkey.Key5, hotkey.Key6, hotkey.Key7, hotkey.Key8, hotkey.Key9,
		}[k-vkey.Key0], nil
	case k >= vkey.F1 && k <= vkey.F20:
		return [20]hotkey.Key{
			hotkey.KeyF1, hotkey.KeyF2, hotkey.KeyF3, hotkey.KeyF4,
			hotkey.KeyF5, hotkey.KeyF6, hotkey.KeyF7, hotkey.KeyF8,
			hotkey.KeyF9, hotkey.KeyF10, hotkey.KeyF11, hotkey.KeyF12,
			hotkey.KeyF13, hotkey.KeyF14, hotkey.KeyF15, hotkey.KeyF16,
			hotkey.KeyF17, hotkey.KeyF18, hotkey.KeyF19, hotkey.KeyF20,
		}[k-vkey.F1], nil
	}

	switch k {
	case vkey.Space:
		return hotkey.KeySpace, nil
	case vkey.Return:
		return hotkey.KeyReturn, nil
	case vkey.Escape:
		return hotkey.KeyEscape, nil
	case vkey.Tab:
		return hotkey.KeyTab, nil
	case vkey.Delete:
		return hotkey.KeyDelete, nil
	case vkey.Left:
		return hotkey.KeyLeft, nil
	case vkey.Right:
		return hotkey.KeyRight, nil
	case vkey.Up:
		return hotkey.KeyUp, nil
	case vkey.Down:
		return hotkey.KeyDown, nil
	}
	return 0, fmt.Errorf("key %s not supported by the fallback backend", k)
}

// Diagnose checks hotkey availability and returns a status message.
func Diagnose() (string, error) {
	return "golang.design/x/hotkey fallback backend available", nil
}
