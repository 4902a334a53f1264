//go:build !windows

package main

import (
	"context"

	"keychord"
	"keychord/capture"
)

func run(ctx context.Context, m *keychord.Manager) error {
	chords := make([]capture.Chord, 0, len(m.Hotkeys()))
	for _, h := range m.Hotkeys() {
		chords = append(chords, capture.Chord{Modifiers: h.Mods(), Key: h.Key()})
	}
	return m.Run(ctx, capture.New(chords...))
}
