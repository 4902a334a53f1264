//go:build linux

package capture

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"keychord/log"
	"keychord/vkey"
)

const (
	evKey      = 1
	keyRelease = 0
	keyPress   = 1
	keyRepeat  = 2
)

// input_event is 24 bytes on 64-bit Linux:
// timeval (16 bytes) + type (2) + code (2) + value (4)
const inputEventSize = 24

// evdev key codes, from linux/input-event-codes.h.
var evdevToVKey = map[uint16]vkey.VKey{
	1: vkey.Escape,
	2: vkey.Key1, 3: vkey.Key2, 4: vkey.Key3, 5: vkey.Key4, 6: vkey.Key5,
	7: vkey.Key6, 8: vkey.Key7, 9: vkey.Key8, 10: vkey.Key9, 11: vkey.Key0,
	12: vkey.OEMMinus, 13: vkey.OEMPlus, 14: vkey.Back, 15: vkey.Tab,
	16: vkey.Q, 17: vkey.W, 18: vkey.E, 19: vkey.R, 20: vkey.T, 21: vkey.Y,
	22: vkey.U, 23: vkey.I, 24: vkey.O, 25: vkey.P,
	26: vkey.OEM4, 27: vkey.OEM6, 28: vkey.Return, 29: vkey.LControl,
	30: vkey.A, 31: vkey.S, 32: vkey.D, 33: vkey.F, 34: vkey.G, 35: vkey.H,
	36: vkey.J, 37: vkey.K, 38: vkey.L,
	39: vkey.OEM1, 40: vkey.OEM7, 41: vkey.OEM3, 42: vkey.LShift, 43: vkey.OEM5,
	44: vkey.Z, 45: vkey.X, 46: vkey.C, 47: vkey.V, 48: vkey.B, 49: vkey.N,
	50: vkey.M,
	51: vkey.OEMComma, 52: vkey.OEMPeriod, 53: vkey.OEM2, 54: vkey.RShift,
	55: vkey.Multiply, 56: vkey.LMenu, 57: vkey.Space, 58: vkey.CapsLock,
	59: vkey.F1, 60: vkey.F2, 61: vkey.F3, 62: vkey.F4, 63: vkey.F5,
	64: vkey.F6, 65: vkey.F7, 66: vkey.F8, 67: vkey.F9, 68: vkey.F10,
	69: vkey.NumLock, 70: vkey.ScrollLock,
	71: vkey.Numpad7, 72: vkey.Numpad8, 73: vkey.Numpad9, 74: vkey.Subtract,
	75: vkey.Numpad4, 76: vkey.Numpad5, 77: vkey.Numpad6, 78: vkey.Add,
	79: vkey.Numpad1, 80: vkey.Numpad2, 81: vkey.Numpad3,
	82: vkey.Numpad0, 83: vkey.Decimal,
	87: vkey.F11, 88: vkey.F12,
	96: vkey.Return, 97: vkey.RControl, 98: vkey.Divide, 100: vkey.RMenu,
	102: vkey.Home, 103: vkey.Up, 104: vkey.PageUp, 105: vkey.Left,
	106: vkey.Right, 107: vkey.End, 108: vkey.Down, 109: vkey.PageDown,
	110: vkey.Insert, 111: vkey.Delete, 119: vkey.Pause,
	125: vkey.LWin, 126: vkey.RWin, 127: vkey.Apps,
}

type evdevSource struct {
	events chan Event
	files  []*os.File
	stop   chan struct{}
	once   sync.Once
}

// New creates a key-event source reading /dev/input directly. Requires the
// user to be in the 'input' group. The chord list is ignored here; the raw
// reader sees every key.
func New(_ ...Chord) Source {
	return &evdevSource{
		events: make(chan Event, 64),
	}
}

func (s *evdevSource) Start() (<-chan Event, error) {
	keyboards, err := findKeyboards()
	if err != nil {
		return nil, fmt.Errorf("finding keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return nil, fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	s.stop = make(chan struct{})

	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		s.files = append(s.files, f)
		go s.readEvents(f)
	}

	if len(s.files) == 0 {
		return nil, fmt.Errorf("could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)")
	}

	log.CaptureStart("evdev", len(s.files))
	return s.events, nil
}

func (s *evdevSource) readEvents(f *os.File) {
	buf := make([]byte, inputEventSize*16)

	for {
		select {
		case <-s.stop:
			return
		default:
		}

		n, err := f.Read(buf)
		if err != nil {
			return
		}

		for i := 0; i+inputEventSize <= n; i += inputEventSize {
			evType := binary.LittleEndian.Uint16(buf[i+16:])
			evCode := binary.LittleEndian.Uint16(buf[i+18:])
			evValue := int32(binary.LittleEndian.Uint32(buf[i+20:]))

			if evType != evKey {
				continue
			}

			k, ok := evdevToVKey[evCode]
			if !ok {
				continue
			}

			// Auto-repeat is forwarded as a keydown; the state tracker
			// suppresses it.
			switch evValue {
			case keyPress, keyRepeat:
				s.emit(Event{Key: k, Down: true})
			case keyRelease:
				s.emit(Event{Key: k, Down: false})
			}
		}
	}
}

func (s *evdevSource) emit(ev Event) {
	select {
	case s.events <- ev:
	case <-s.stop:
	}
}

func (s *evdevSource) Stop() error {
	s.once.Do(func() {
		if s.stop != nil {
			close(s.stop)
		}
		for _, f := range s.files {
			f.Close()
		}
	})
	return nil
}

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		path := filepath.Join("/dev/input", e.Name())
		if isKeyboard(e.Name()) {
			keyboards = append(keyboards, path)
		}
	}
	return keyboards, nil
}

func isKeyboard(eventName string) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	// Real keyboards have long key capability bitmaps
	caps := strings.TrimSpace(string(data))
	return len(caps) > 10
}

// Diagnose checks evdev access and returns a status message.
func Diagnose() (string, error) {
	keyboards, err := findKeyboards()
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	if len(keyboards) == 0 {
		return "", fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	var opened string
	for _, path := range keyboards {
		f, err := os.Open(path)
		if err == nil {
			f.Close()
			opened = path
			break
		}
	}
	if opened == "" {
		return "", fmt.Errorf("found %d keyboard(s) but cannot open any (run: sudo usermod -aG input $USER)", len(keyboards))
	}

	return fmt.Sprintf("%d keyboard(s) found, opened %s", len(keyboards), opened), nil
}
