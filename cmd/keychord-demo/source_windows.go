//go:build windows

package main

import (
	"context"

	"keychord"
	"keychord/capture"
)

// On Windows the low-level hook decides suppression synchronously, so the
// manager is wired in as the hook's decide callback instead of draining a
// channel.
func run(ctx context.Context, m *keychord.Manager) error {
	hook := capture.NewHook(m.HandleKeyEvent)
	if _, err := hook.Start(); err != nil {
		return err
	}
	defer hook.Stop()

	<-ctx.Done()
	return ctx.Err()
}
