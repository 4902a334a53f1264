//go:build windows

package shutdown

import (
	"os"
	"os/signal"
)

// Notify forwards interrupt signals to sig. Windows has no SIGTERM;
// ctrl+c and console close both arrive as os.Interrupt.
func Notify(sig chan os.Signal) {
	signal.Notify(sig, os.Interrupt)
}
