// Package keyevent observes system-wide key transitions and delivers them,
// in OS order, to listeners running on a single dispatcher goroutine.
package keyevent

import (
	"errors"
	"fmt"

	"github.com/TanaroSch/nanokey/internal/hotkey"
)

// ErrMonitorUnavailable wraps every failure to install the interception point.
var ErrMonitorUnavailable = errors.New("key event monitor unavailable")

// Event is one key transition.
type Event struct {
	// Key is KeyNone for modifiers and for keys outside the bindable table.
	Key hotkey.Key
	// Modifier is non-zero when the transition is a modifier key.
	Modifier hotkey.Modifier
	Down     bool

	// Platform identity of the key, used to name keys outside the table.
	Code     uint32
	Scan     uint32
	Extended bool
}

// IsModifier reports whether the event is a modifier transition.
func (e Event) IsModifier() bool { return e.Modifier != 0 }

// DisplayName names the key for a captured mnemonic. Keys outside the table
// fall back to the platform's own key name, then to a raw-code placeholder.
func (e Event) DisplayName() string {
	if e.Key.Valid() {
		return e.Key.String()
	}
	if e.IsModifier() {
		return e.Modifier.String()
	}
	if name := platformKeyName(e); name != "" {
		return name
	}
	return fmt.Sprintf("VK%02X", e.Code)
}

// Source is a platform interception mechanism.
type Source interface {
	// Run installs the interception point on the calling goroutine's OS
	// thread and pumps events into forward for the life of the process.
	// forward never blocks. Run returns an error wrapping
	// ErrMonitorUnavailable when installation fails.
	Run(forward func(Event)) error

	// Name returns a human-readable name for logging.
	Name() string
}
