// Package doctor runs interactive diagnostics for the capture backend and
// log directory, used by the demo's -doctor flag.
package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"keychord/capture"
	"keychord/log"
	"keychord/vkey"
)

// Run executes the diagnostic checks and returns an exit code (0=all pass,
// 1=any fail).
func Run() int {
	fmt.Println("keychord doctor - system diagnostics")
	fmt.Println("====================================")

	allPass := true

	if !checkCapture() {
		allPass = false
	}
	if allPass && !checkKeyEvents() {
		allPass = false
	}
	if !checkLogDir() {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkCapture() bool {
	fmt.Println()
	fmt.Println("[1/3] Capture backend")

	status, err := capture.Diagnose()
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	fmt.Printf("  PASS: %s\n", status)
	return true
}

func checkKeyEvents() bool {
	fmt.Println()
	fmt.Println("[2/3] Key event delivery")
	fmt.Println("Press any key (Space if on the fallback backend)...")

	src := capture.New(capture.Chord{Key: vkey.Space})
	events, err := src.Start()
	if err != nil {
		fmt.Printf("  FAIL: could not start capture: %v\n", err)
		return false
	}
	defer src.Stop()

	select {
	case ev := <-events:
		fmt.Printf("  PASS: saw %s\n", ev.Key)
		return true
	case <-time.After(10 * time.Second):
		fmt.Println("  FAIL: timeout waiting for a key event")
		return false
	}
}

func checkLogDir() bool {
	fmt.Println()
	fmt.Println("[3/3] Log directory")

	dir, err := log.ResolveDir("")
	if err != nil {
		fmt.Printf("  FAIL: cannot resolve log directory: %v\n", err)
		return false
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("  FAIL: cannot create %s: %v\n", dir, err)
		return false
	}
	probe := filepath.Join(dir, ".doctor_probe")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		fmt.Printf("  FAIL: cannot write to %s: %v\n", dir, err)
		return false
	}
	os.Remove(probe)
	fmt.Printf("  PASS: %s is writable\n", dir)
	return true
}
