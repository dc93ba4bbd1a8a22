package hotkey

import (
	"os"
	"runtime"
)

// DisplayServer represents the type of display server in use
type DisplayServer int

const (
	DisplayServerUnknown DisplayServer = iota
	DisplayServerWindows
	DisplayServerX11
	DisplayServerWayland
	DisplayServerQuartz
)

func (ds DisplayServer) String() string {
	switch ds {
	case DisplayServerWindows:
		return "Windows"
	case DisplayServerX11:
		return "X11"
	case DisplayServerWayland:
		return "Wayland"
	case DisplayServerQuartz:
		return "Quartz"
	default:
		return "Unknown"
	}
}

// DetectDisplayServer determines which display server is currently in use.
// This function is safe to call on any platform.
func DetectDisplayServer() DisplayServer {
	return detectDisplayServer(runtime.GOOS, os.Getenv)
}

func detectDisplayServer(goos string, getenv func(string) string) DisplayServer {
	switch goos {
	case "windows":
		return DisplayServerWindows
	case "darwin":
		return DisplayServerQuartz
	}

	// Check Wayland first: XWayland sessions also set DISPLAY.
	if getenv("WAYLAND_DISPLAY") != "" {
		return DisplayServerWayland
	}
	if getenv("DISPLAY") != "" {
		return DisplayServerX11
	}
	return DisplayServerUnknown
}

// SupportsGlobalHotkeys reports whether the OS-level binding library can
// register hotkeys on ds.
func (ds DisplayServer) SupportsGlobalHotkeys() bool {
	switch ds {
	case DisplayServerWindows, DisplayServerX11, DisplayServerQuartz:
		return true
	default:
		return false
	}
}
