package capture

import (
	"sync"

	"keychord/vkey"
)

// Fake is an in-memory Source for tests. Sim* methods inject events as if
// they came from the OS.
type Fake struct {
	events chan Event
	once   sync.Once
}

func NewFake() *Fake {
	return &Fake{events: make(chan Event, 64)}
}

func (f *Fake) Start() (<-chan Event, error) { return f.events, nil }

func (f *Fake) Stop() error {
	f.once.Do(func() { close(f.events) })
	return nil
}

func (f *Fake) SimKeydown(k vkey.VKey) { f.events <- Event{Key: k, Down: true} }
func (f *Fake) SimKeyup(k vkey.VKey)   { f.events <- Event{Key: k, Down: false} }
