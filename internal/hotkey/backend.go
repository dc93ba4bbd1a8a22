package hotkey

import "fmt"

// Backend abstracts the OS mechanism that turns a Hotkey into a live
// system-wide binding, so the registry can be exercised without a display.
type Backend interface {
	// Bind registers hk with the operating system.
	Bind(hk Hotkey) (Binding, error)

	// Name returns a human-readable name for this backend (for logging).
	Name() string

	// IsAvailable returns true if this backend can be used on the current system.
	IsAvailable() bool
}

// Binding is one live OS-level registration.
type Binding interface {
	// Keydown returns a channel that receives a value each time the
	// combination is pressed. It is closed by Close.
	Keydown() <-chan struct{}

	// Close releases the OS registration.
	Close() error
}

// Unavailable returns a Backend whose every Bind fails with
// ErrBackendNotAvailable. It stands in where no OS backend was supplied.
func Unavailable(reason string) Backend {
	return unavailableBackend{reason: reason}
}

type unavailableBackend struct {
	reason string
}

func (b unavailableBackend) Bind(hk Hotkey) (Binding, error) {
	return nil, fmt.Errorf("%w: %s", ErrBackendNotAvailable, b.reason)
}

func (unavailableBackend) Name() string      { return "Unavailable" }
func (unavailableBackend) IsAvailable() bool { return false }
