package keyevent

import (
	"runtime"
	"sync/atomic"

	"github.com/TanaroSch/nanokey/internal/hotkey"
)

// PasteDetector latches when the platform paste chord is pressed.
// Handle must only be called from the dispatcher; Detected is safe anywhere.
type PasteDetector struct {
	chord hotkey.Modifier
	held  hotkey.ModifierSet
	latch atomic.Bool
}

// NewPasteDetector watches for Cmd+V on macOS and Ctrl+V elsewhere.
func NewPasteDetector() *PasteDetector {
	return newPasteDetector(runtime.GOOS)
}

func newPasteDetector(goos string) *PasteDetector {
	chord := hotkey.ModCtrl
	if goos == "darwin" {
		chord = hotkey.ModMeta
	}
	return &PasteDetector{chord: chord}
}

// Handle updates held modifiers and sets the latch on the paste chord.
func (p *PasteDetector) Handle(ev Event) {
	if ev.IsModifier() {
		if ev.Down {
			p.held = p.held.With(ev.Modifier)
		} else {
			p.held = p.held.Without(ev.Modifier)
		}
		return
	}
	if ev.Down && ev.Key == hotkey.KeyV && p.held.Has(p.chord) {
		p.latch.Store(true)
	}
}

// Detected returns and clears the latch.
func (p *PasteDetector) Detected() bool {
	return p.latch.Swap(false)
}
