//go:build linux || (darwin && cgo)

package caret

import "github.com/kbinani/screenshot"

// primaryScreen returns the bounds of display 0.
func primaryScreen() Size {
	if screenshot.NumActiveDisplays() == 0 {
		return Size{W: FallbackWidth, H: FallbackHeight}
	}
	b := screenshot.GetDisplayBounds(0)
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return Size{W: FallbackWidth, H: FallbackHeight}
	}
	return Size{W: b.Dx(), H: b.Dy()}
}
