//go:build nox11

package main

import "github.com/TanaroSch/nanokey/internal/hotkey"

// Builds tagged nox11 leave out golang.design/x/hotkey, which panics at
// startup on Linux when no X display can be opened.
func defaultBackend() hotkey.Backend {
	return hotkey.Unavailable("built without global hotkey support (nox11)")
}
