//go:build windows

package capture

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"keychord/log"
	"keychord/vkey"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	kernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procGetCurrentThreadId  = kernel32.NewProc("GetCurrentThreadId")
)

const (
	whKeyboardLL = 13
	wmKeydown    = 0x0100
	wmKeyup      = 0x0101
	wmSyskeydown = 0x0104
	wmSyskeyup   = 0x0105
	wmQuit       = 0x0012
)

type kbdllHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// DecideFunc is consulted synchronously inside the hook callback for every
// key transition. Returning true swallows the event so it never reaches
// other applications. It runs inside the OS hook callback, which Windows
// force-removes if it stalls, so it must not block.
type DecideFunc func(k vkey.VKey, down bool) bool

// Hook installs a WH_KEYBOARD_LL hook and runs its message loop on a
// dedicated OS thread. With a nil decider it is a pure tap: every event is
// forwarded to the channel and propagates normally. With a decider, the
// decider owns dispatch and the channel stays silent; suppression is only
// possible on this path because it must happen before the callback returns.
type Hook struct {
	decide   DecideFunc
	events   chan Event
	handle   uintptr
	threadID uint32
	started  chan error
	once     sync.Once
}

// NewHook creates the low-level keyboard hook source.
func NewHook(decide DecideFunc) *Hook {
	return &Hook{
		decide:  decide,
		events:  make(chan Event, 64),
		started: make(chan error, 1),
	}
}

// New creates the default Windows key-event source, a tap-only hook. The
// chord list is ignored; the hook sees every key.
func New(_ ...Chord) Source {
	return NewHook(nil)
}

var (
	hookMu     sync.Mutex
	activeHook *Hook
)

func (h *Hook) Start() (<-chan Event, error) {
	hookMu.Lock()
	if activeHook != nil {
		hookMu.Unlock()
		return nil, fmt.Errorf("keyboard hook already installed in this process")
	}
	activeHook = h
	hookMu.Unlock()

	go h.run()

	if err := <-h.started; err != nil {
		hookMu.Lock()
		activeHook = nil
		hookMu.Unlock()
		return nil, err
	}
	log.CaptureStart("winhook", 0)
	return h.events, nil
}

func (h *Hook) run() {
	// The hook callback is delivered via this thread's message queue, so
	// both must live on the same locked OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	tid, _, _ := procGetCurrentThreadId.Call()
	h.threadID = uint32(tid)

	cb := windows.NewCallback(hookProc)
	handle, _, err := procSetWindowsHookExW.Call(whKeyboardLL, cb, 0, 0)
	if handle == 0 {
		h.started <- fmt.Errorf("SetWindowsHookEx: %w", err)
		return
	}
	h.handle = handle
	h.started <- nil

	var m msg
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if ret == 0 { // WM_QUIT
			break
		}
	}

	procUnhookWindowsHookEx.Call(h.handle)
	h.handle = 0
}

func (h *Hook) Stop() error {
	h.once.Do(func() {
		if h.threadID != 0 {
			procPostThreadMessageW.Call(uintptr(h.threadID), wmQuit, 0, 0)
		}
		hookMu.Lock()
		if activeHook == h {
			activeHook = nil
		}
		hookMu.Unlock()
	})
	return nil
}

// hookProc runs on the hook thread for every keyboard event system-wide.
// Returning nonzero swallows the event.
func hookProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	if nCode >= 0 {
		hookMu.Lock()
		h := activeHook
		hookMu.Unlock()

		if h != nil {
			kb := (*kbdllHookStruct)(unsafe.Pointer(lParam))
			k := vkey.VKey(kb.VkCode)

			var down bool
			switch wParam {
			case wmKeydown, wmSyskeydown:
				down = true
			case wmKeyup, wmSyskeyup:
				down = false
			default:
				ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
				return ret
			}

			if h.decide != nil {
				if h.decide(k, down) {
					return 1
				}
			} else {
				select {
				case h.events <- Event{Key: k, Down: down}:
				default:
					// Never stall the hook thread; an unresponsive hook
					// gets forcibly removed by the OS.
				}
			}
		}
	}

	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

// Diagnose checks hook availability and returns a status message.
func Diagnose() (string, error) {
	if err := user32.Load(); err != nil {
		return "", fmt.Errorf("loading user32.dll: %w", err)
	}
	return "low-level keyboard hook available", nil
}
