package keychord

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"keychord/capture"
	"keychord/keystate"
	"keychord/log"
	"keychord/vkey"
)

// TriggerListener observes fired hotkeys, e.g. for a UI or trigger history.
// It is notified from the worker goroutine, before the callback runs.
type TriggerListener interface {
	HotkeyTriggered(h *Hotkey)
}

// Manager owns the hotkey registry, the live keyboard state and the worker
// that runs callbacks. Feed it every key transition in chronological order
// through HandleKeyEvent, or let Run drain a capture.Source.
type Manager struct {
	mu      sync.Mutex
	hotkeys map[uint64]*Hotkey

	// state is only touched from HandleKeyEvent, which the capture contract
	// requires to be called from a single goroutine in event order.
	state *keystate.State

	paused    atomic.Bool
	triggered atomic.Uint64
	listener  TriggerListener

	tasks     chan *Hotkey
	closeOnce sync.Once
	done      chan struct{}
}

func NewManager() *Manager {
	m := &Manager{
		hotkeys: make(map[uint64]*Hotkey),
		state:   keystate.New(),
		tasks:   make(chan *Hotkey, 64),
		done:    make(chan struct{}),
	}
	go m.worker()
	return m
}

func (m *Manager) worker() {
	for h := range m.tasks {
		m.dispatch(h)
	}
	close(m.done)
}

// dispatch runs off the hook thread: the worker normally, a spilled
// goroutine when the queue is full. Trigger logging lives here so the hook
// thread never touches the filesystem.
func (m *Manager) dispatch(h *Hotkey) {
	log.Triggered(h.String())
	if l := m.currentListener(); l != nil {
		l.HotkeyTriggered(h)
	}
	h.Execute()
}

func (m *Manager) currentListener() TriggerListener {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listener
}

// SetListener installs an observer for fired hotkeys.
func (m *Manager) SetListener(l TriggerListener) {
	m.mu.Lock()
	m.listener = l
	m.mu.Unlock()
}

// Register adds a hotkey. Identity is (trigger, modifiers, timing); a
// second registration with the same identity fails even if behavior,
// strictness or callback differ.
func (m *Manager) Register(h *Hotkey) error {
	id := h.Hash()
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.hotkeys[id]; ok {
		return fmt.Errorf("hotkey %s already registered", existing)
	}
	m.hotkeys[id] = h
	return nil
}

// Unregister removes a hotkey by identity and reports whether it was
// registered.
func (m *Manager) Unregister(h *Hotkey) bool {
	id := h.Hash()
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hotkeys[id]; !ok {
		return false
	}
	delete(m.hotkeys, id)
	return true
}

func (m *Manager) UnregisterAll() {
	m.mu.Lock()
	m.hotkeys = make(map[uint64]*Hotkey)
	m.mu.Unlock()
}

// Hotkeys returns the registered hotkeys in unspecified order.
func (m *Manager) Hotkeys() []*Hotkey {
	m.mu.Lock()
	defer m.mu.Unlock()
	hks := make([]*Hotkey, 0, len(m.hotkeys))
	for _, h := range m.hotkeys {
		hks = append(hks, h)
	}
	return hks
}

// Pause suspends matching for all hotkeys except those built with
// BypassPause. Key state keeps tracking so gestures stay coherent across a
// pause.
func (m *Manager) Pause()       { m.paused.Store(true) }
func (m *Manager) Resume()      { m.paused.Store(false) }
func (m *Manager) Paused() bool { return m.paused.Load() }

// TriggerCount reports how many hotkey activations have fired so far.
func (m *Manager) TriggerCount() uint64 { return m.triggered.Load() }

// HandleKeyEvent feeds one key transition into the engine and reports
// whether the event must be swallowed (some matched hotkey asked for
// StopPropagation). It is cheap enough to run inside an OS hook callback:
// matching only, with logging and callbacks handed to the worker.
func (m *Manager) HandleKeyEvent(k vkey.VKey, down bool) bool {
	if down {
		m.state.Keydown(k)
	} else {
		m.state.Keyup(k)
	}

	timing := OnKeyUp
	if down {
		timing = OnKeyDown
	}
	paused := m.paused.Load()

	var fired []*Hotkey
	swallow := false

	m.mu.Lock()
	for _, h := range m.hotkeys {
		if h.timing != timing {
			continue
		}
		if paused && !h.bypassPause {
			continue
		}
		if !h.IsTriggerState(k, m.state) {
			continue
		}
		fired = append(fired, h)
		if h.behavior == StopPropagation {
			swallow = true
		}
	}
	m.mu.Unlock()

	for _, h := range fired {
		m.triggered.Add(1)
		select {
		case m.tasks <- h:
		default:
			// Worker backlog full; still never block the hook thread.
			go m.dispatch(h)
		}
	}

	return swallow
}

// Run drains a capture source until the context is canceled or the source
// closes its channel. Swallow decisions are ignored on this path; only the
// Windows hook with a synchronous decider can actually suppress events.
func (m *Manager) Run(ctx context.Context, src capture.Source) error {
	events, err := src.Start()
	if err != nil {
		return fmt.Errorf("starting capture: %w", err)
	}
	defer src.Stop()

	log.SessionStart(len(m.Hotkeys()))
	defer func() { log.SessionEnd(int(m.triggered.Load())) }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			m.HandleKeyEvent(ev.Key, ev.Down)
		}
	}
}

// Close stops the worker after draining queued callbacks. The manager must
// not be used afterwards.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.tasks)
	})
	<-m.done
}
