package capture

import (
	"testing"
	"time"

	"keychord/vkey"
)

func TestFakeDeliversInOrder(t *testing.T) {
	f := NewFake()
	events, err := f.Start()
	if err != nil {
		t.Fatal(err)
	}

	f.SimKeydown(vkey.Control)
	f.SimKeydown(vkey.A)
	f.SimKeyup(vkey.A)

	want := []Event{
		{Key: vkey.Control, Down: true},
		{Key: vkey.A, Down: true},
		{Key: vkey.A, Down: false},
	}
	for i, w := range want {
		select {
		case got := <-events:
			if got != w {
				t.Errorf("event %d = %+v, want %+v", i, got, w)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestFakeStopClosesChannel(t *testing.T) {
	f := NewFake()
	events, err := f.Start()
	if err != nil {
		t.Fatal(err)
	}

	f.Stop()
	f.Stop() // idempotent

	select {
	case _, ok := <-events:
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after Stop")
	}
}
