// Command keychord-demo registers a handful of hotkeys (or a TOML bindings
// file) and prints every trigger, demonstrating timings, strict sequences
// and propagation behavior.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"keychord"
	"keychord/config"
	"keychord/doctor"
	"keychord/log"
	"keychord/shutdown"
	"keychord/vkey"
)

var version = "dev"

type printListener struct{}

func (printListener) HotkeyTriggered(h *keychord.Hotkey) {
	fmt.Printf("triggered: %s\n", h)
}

func main() {
	configFlag := flag.String("config", "", "TOML bindings file (replaces the built-in demo hotkeys)")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	doctorFlag := flag.Bool("doctor", false, "Run system diagnostics and exit")
	pausedFlag := flag.Bool("paused", false, "Start with matching paused (ctrl+alt+p resumes)")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("keychord-demo %s\n", version)
		os.Exit(0)
	}

	if *doctorFlag {
		os.Exit(doctor.Run())
	}

	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	defer log.Close()

	m := keychord.NewManager()
	defer m.Close()
	m.SetListener(printListener{})

	if *configFlag != "" {
		if err := registerFromConfig(m, *configFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		registerDemoHotkeys(m)
	}

	if *pausedFlag {
		m.Pause()
	}

	// Pause toggle works even while paused.
	toggle := keychord.New(vkey.P, []vkey.VKey{vkey.Control, vkey.Menu}, nil).BypassPause()
	toggle.Action(func() {
		if m.Paused() {
			m.Resume()
			fmt.Println("matching resumed")
		} else {
			m.Pause()
			fmt.Println("matching paused")
		}
	})
	if err := m.Register(toggle); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Hotkeys registered:")
	for _, h := range m.Hotkeys() {
		fmt.Printf("  %s\n", h)
	}
	fmt.Println("Press ctrl+c to quit.")

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	shutdown.Notify(sig)
	go func() {
		<-sig
		cancel()
	}()

	if err := run(ctx, m); err != nil && err != context.Canceled {
		log.Errorf("capture loop: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func registerFromConfig(m *keychord.Manager, path string) error {
	bindings, err := config.Load(path)
	if err != nil {
		return err
	}
	for _, b := range bindings {
		action := b.Action
		if action == "" {
			action = b.Keys
		}
		h, err := b.Hotkey(func() { fmt.Printf("action: %s\n", action) })
		if err != nil {
			return err
		}
		if err := m.Register(h); err != nil {
			return err
		}
	}
	return nil
}

// registerDemoHotkeys mirrors the combinations the engine is usually shown
// off with: both timings on one combo, pass-through, and strict sequences.
func registerDemoHotkeys(m *keychord.Manager) {
	hotkeys := []*keychord.Hotkey{
		keychord.New(vkey.A, []vkey.VKey{vkey.Control}, func() {
			fmt.Println("ctrl+a pressed")
		}),
		keychord.New(vkey.B, []vkey.VKey{vkey.Control}, func() {
			fmt.Println("ctrl+b released")
		}).Timing(keychord.OnKeyUp),
		keychord.New(vkey.D, []vkey.VKey{vkey.Control}, func() {
			fmt.Println("ctrl+d released (event passed through)")
		}).Timing(keychord.OnKeyUp).Behavior(keychord.PassThrough),
		keychord.New(vkey.A, []vkey.VKey{vkey.Control, vkey.Shift}, func() {
			fmt.Println("ctrl+shift+a pressed in strict order")
		}).StrictSequence(),
		keychord.New(vkey.LWin, nil, func() {
			fmt.Println("win tapped with nothing else")
		}).Timing(keychord.OnKeyUp).StrictSequence(),
	}
	for _, h := range hotkeys {
		if err := m.Register(h); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
}
