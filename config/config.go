// Package config loads hotkey bindings from a TOML file:
//
//	[[hotkey]]
//	keys = "ctrl+shift+a"
//	action = "screenshot"
//	timing = "keyup"        # default "keydown"
//	behavior = "passthrough" # default "stop"
//	strict = true
//	bypass_pause = false
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"keychord"
	"keychord/vkey"
)

// Binding is one [[hotkey]] entry. Keys is a '+'-separated list in press
// order; the last key is the trigger, everything before it a modifier.
type Binding struct {
	Keys        string `toml:"keys"`
	Action      string `toml:"action"`
	Timing      string `toml:"timing"`
	Behavior    string `toml:"behavior"`
	Strict      bool   `toml:"strict"`
	BypassPause bool   `toml:"bypass_pause"`
}

type file struct {
	Hotkeys []Binding `toml:"hotkey"`
}

// Load reads the bindings file and validates every entry's key syntax.
func Load(path string) ([]Binding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i, b := range f.Hotkeys {
		if _, err := b.ParseKeys(); err != nil {
			return nil, fmt.Errorf("hotkey %d: %w", i+1, err)
		}
		if _, err := parseTiming(b.Timing); err != nil {
			return nil, fmt.Errorf("hotkey %d (%s): %w", i+1, b.Keys, err)
		}
		if _, err := parseBehavior(b.Behavior); err != nil {
			return nil, fmt.Errorf("hotkey %d (%s): %w", i+1, b.Keys, err)
		}
	}
	return f.Hotkeys, nil
}

// ParseKeys resolves the Keys string into key identifiers in press order.
func (b Binding) ParseKeys() ([]vkey.VKey, error) {
	parts := strings.Split(b.Keys, "+")
	if b.Keys == "" {
		return nil, fmt.Errorf("empty keys string")
	}
	keys := make([]vkey.VKey, 0, len(parts))
	for _, p := range parts {
		k, err := vkey.FromString(p)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Hotkey builds the descriptor for this binding with the given callback.
func (b Binding) Hotkey(fn func()) (*keychord.Hotkey, error) {
	keys, err := b.ParseKeys()
	if err != nil {
		return nil, err
	}
	timing, err := parseTiming(b.Timing)
	if err != nil {
		return nil, err
	}
	behavior, err := parseBehavior(b.Behavior)
	if err != nil {
		return nil, err
	}

	h := keychord.FromKeys(keys...).
		Timing(timing).
		Behavior(behavior).
		Action(fn)
	if b.Strict {
		h.StrictSequence()
	}
	if b.BypassPause {
		h.BypassPause()
	}
	return h, nil
}

func parseTiming(s string) (keychord.TriggerTiming, error) {
	switch strings.ToLower(s) {
	case "", "keydown":
		return keychord.OnKeyDown, nil
	case "keyup":
		return keychord.OnKeyUp, nil
	}
	return keychord.OnKeyDown, fmt.Errorf("unknown timing %q (want keydown or keyup)", s)
}

func parseBehavior(s string) (keychord.TriggerBehavior, error) {
	switch strings.ToLower(s) {
	case "", "stop":
		return keychord.StopPropagation, nil
	case "passthrough":
		return keychord.PassThrough, nil
	}
	return keychord.StopPropagation, fmt.Errorf("unknown behavior %q (want stop or passthrough)", s)
}
