package keyevent

import "github.com/TanaroSch/nanokey/internal/hotkey"

// Snapshot is the keyboard state at one instant.
type Snapshot struct {
	Mods hotkey.ModifierSet
	// Keys lists held non-modifier keys in table order.
	Keys []hotkey.Key
}

// Sampler reads the current keyboard state without an interception point.
type Sampler interface {
	Sample() Snapshot
}
