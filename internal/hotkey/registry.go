package hotkey

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/TanaroSch/nanokey/internal/logging"
	"go.uber.org/zap"
)

// firedBuffer bounds the queue between binding goroutines and the consumer.
const firedBuffer = 16

// FiredEvent is an OS notification that a bound combination was pressed.
// Test it against the registry with IsMatch.
type FiredEvent struct {
	ID       uint64
	Mnemonic string
}

// RegisteredHotkey is a snapshot of the live binding.
type RegisteredHotkey struct {
	Hotkey Hotkey
	ID     uint64
}

// Mnemonic returns the canonical mnemonic of the binding.
func (r RegisteredHotkey) Mnemonic() string { return r.Hotkey.String() }

type activeBinding struct {
	RegisteredHotkey
	binding Binding
}

// Registry owns at most one active binding and keeps the OS registration
// consistent with it. Register, Update and Close are serialized; IsMatch
// and Active may be called from any goroutine.
type Registry struct {
	backend Backend
	log     *zap.Logger

	mu      sync.Mutex
	current *activeBinding

	fired  chan FiredEvent
	nextID atomic.Uint64
	wg     sync.WaitGroup
}

// NewRegistry creates a registry that binds through backend.
func NewRegistry(backend Backend) *Registry {
	return &Registry{
		backend: backend,
		log:     logging.For("hotkey"),
		fired:   make(chan FiredEvent, firedBuffer),
	}
}

// Register parses mnemonic and binds it, replacing any active binding once
// the new one is live.
func (r *Registry) Register(mnemonic string) (RegisteredHotkey, error) {
	hk, err := Parse(mnemonic)
	if err != nil {
		return RegisteredHotkey{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.swapLocked(hk)
}

// Update rebinds to mnemonic. It is a no-op when mnemonic canonicalizes to
// the active binding. The new binding is registered before the old one is
// released; on failure the old binding stays active and the error is returned.
func (r *Registry) Update(mnemonic string) error {
	hk, err := Parse(mnemonic)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil && r.current.Hotkey == hk {
		r.log.Debug("hotkey unchanged, skipping registration", zap.String("hotkey", hk.String()))
		return nil
	}
	_, err = r.swapLocked(hk)
	return err
}

func (r *Registry) swapLocked(hk Hotkey) (RegisteredHotkey, error) {
	b, err := r.backend.Bind(hk)
	if err != nil {
		r.log.Warn("hotkey registration failed", zap.String("hotkey", hk.String()),
			zap.String("backend", r.backend.Name()), zap.Error(err))
		return RegisteredHotkey{}, fmt.Errorf("%w: '%s': %w", ErrRegistrationFailed, hk, err)
	}

	next := &activeBinding{
		RegisteredHotkey: RegisteredHotkey{Hotkey: hk, ID: r.nextID.Add(1)},
		binding:          b,
	}
	r.wg.Add(1)
	go r.forward(next)

	old := r.current
	r.current = next
	if old != nil {
		r.release(old)
	}
	r.log.Info("hotkey registered", zap.String("hotkey", hk.String()), zap.Uint64("id", next.ID))
	return next.RegisteredHotkey, nil
}

func (r *Registry) release(ab *activeBinding) {
	if err := ab.binding.Close(); err != nil {
		r.log.Warn("failed to release hotkey", zap.String("hotkey", ab.Mnemonic()), zap.Error(err))
		return
	}
	r.log.Debug("hotkey released", zap.String("hotkey", ab.Mnemonic()), zap.Uint64("id", ab.ID))
}

// forward drains one binding until its Keydown channel is closed.
func (r *Registry) forward(ab *activeBinding) {
	defer r.wg.Done()
	ev := FiredEvent{ID: ab.ID, Mnemonic: ab.Mnemonic()}
	for range ab.binding.Keydown() {
		select {
		case r.fired <- ev:
		default:
			r.log.Debug("fired event dropped, consumer is behind", zap.String("hotkey", ev.Mnemonic))
		}
	}
}

// Fired returns the channel of OS-delivered fired notifications.
func (r *Registry) Fired() <-chan FiredEvent {
	return r.fired
}

// IsMatch reports whether ev came from the currently active binding.
// Events queued by a binding that has since been replaced do not match.
func (r *Registry) IsMatch(ev FiredEvent) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current != nil && r.current.ID == ev.ID
}

// Active returns the live binding, if any.
func (r *Registry) Active() (RegisteredHotkey, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return RegisteredHotkey{}, false
	}
	return r.current.RegisteredHotkey, true
}

// Close releases the active binding and waits for its forwarder to stop.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.current != nil {
		r.release(r.current)
		r.current = nil
	}
	r.mu.Unlock()
	r.wg.Wait()
}
