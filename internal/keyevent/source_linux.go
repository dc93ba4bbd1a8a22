//go:build linux && cgo

package keyevent

import (
	"fmt"
	"time"

	"github.com/TanaroSch/nanokey/internal/hotkey"
	gohook "github.com/robotn/gohook"
)

// gohookSource reads the X11 RECORD stream through libuiohook.
type gohookSource struct {
	startTimeout time.Duration
}

// NewSource returns the interception mechanism for this platform.
func NewSource() Source { return &gohookSource{startTimeout: 3 * time.Second} }

func (s *gohookSource) Name() string { return "gohook (X11 record)" }

func (s *gohookSource) Run(forward func(Event)) error {
	if ds := hotkey.DetectDisplayServer(); ds != hotkey.DisplayServerX11 {
		return fmt.Errorf("%w: raw key events need an X11 session, found %s", ErrMonitorUnavailable, ds)
	}

	events := gohook.Start()
	defer gohook.End()

	// libuiohook announces a working hook with HookEnabled before any key.
	select {
	case ev, ok := <-events:
		if !ok {
			return fmt.Errorf("%w: hook channel closed during start", ErrMonitorUnavailable)
		}
		if ev.Kind != gohook.HookEnabled {
			s.deliver(ev, forward)
		}
	case <-time.After(s.startTimeout):
		return fmt.Errorf("%w: X11 record hook did not start within %s", ErrMonitorUnavailable, s.startTimeout)
	}

	for ev := range events {
		if ev.Kind == gohook.HookDisabled {
			return fmt.Errorf("%w: X11 record hook disabled", ErrMonitorUnavailable)
		}
		s.deliver(ev, forward)
	}
	return nil
}

// gohook reports physical presses as KeyHold; KeyDown is the typed
// character event and carries no reliable key code.
func (s *gohookSource) deliver(ev gohook.Event, forward func(Event)) {
	switch ev.Kind {
	case gohook.KeyHold:
		forward(translateUiohook(ev.Keycode, true))
	case gohook.KeyUp:
		forward(translateUiohook(ev.Keycode, false))
	}
}
