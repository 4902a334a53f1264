//go:build !windows

// Package shutdown delivers the termination signals the demo waits on
// before tearing down capture.
package shutdown

import (
	"os"
	"os/signal"
	"syscall"
)

// Notify forwards interrupt and termination signals to sig.
func Notify(sig chan os.Signal) {
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
}
