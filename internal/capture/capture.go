// Package capture records one new hotkey from live key events.
package capture

import (
	"sync"

	"github.com/TanaroSch/nanokey/internal/hotkey"
	"github.com/TanaroSch/nanokey/internal/keyevent"
	"github.com/TanaroSch/nanokey/internal/logging"
	"go.uber.org/zap"
)

// OutcomeKind says how a session ended.
type OutcomeKind int

const (
	Captured OutcomeKind = iota + 1
	Cancelled
)

func (k OutcomeKind) String() string {
	switch k {
	case Captured:
		return "Captured"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Outcome is the one-shot result of a session. Mnemonic is empty when
// Cancelled. It may name a key outside the bindable table, in which case
// it will not parse.
type Outcome struct {
	Kind     OutcomeKind
	Mnemonic string
}

// Machine is the capture state machine. Handle is driven by the key event
// dispatcher, the other methods by the consumer.
type Machine struct {
	log *zap.Logger

	mu      sync.Mutex
	active  bool
	held    hotkey.ModifierSet
	outcome *Outcome
}

// New returns an idle machine.
func New() *Machine {
	return &Machine{log: logging.For("capture")}
}

// Start clears any prior result and begins a session.
func (m *Machine) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = true
	m.outcome = nil
	m.log.Debug("capture started")
}

// Stop abandons the session without a result.
func (m *Machine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active {
		m.log.Debug("capture stopped")
	}
	m.active = false
}

// Active reports whether a session is recording.
func (m *Machine) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Handle applies one key transition. Modifier state is tracked at all
// times, so a modifier already held when a session starts counts; other
// keys are ignored while idle.
func (m *Machine) Handle(ev keyevent.Event) {
	var name string
	if !ev.IsModifier() && ev.Down {
		name = ev.DisplayName()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if ev.IsModifier() {
		if ev.Down {
			m.held = m.held.With(ev.Modifier)
		} else {
			m.held = m.held.Without(ev.Modifier)
		}
		return
	}
	if !m.active || !ev.Down {
		return
	}

	switch {
	case ev.Key == hotkey.KeyEscape:
		m.finishLocked(Outcome{Kind: Cancelled})
		m.log.Debug("capture cancelled (Escape)")
	case ev.Key == hotkey.KeyTab:
		m.log.Debug("capture ignored Tab")
	case m.held.Empty():
		m.log.Debug("capture ignored key without modifier", zap.String("key", name))
	default:
		out := Outcome{Kind: Captured, Mnemonic: m.held.Prefix() + name}
		m.finishLocked(out)
		m.log.Debug("capture finished", zap.String("hotkey", out.Mnemonic))
	}
}

func (m *Machine) finishLocked(out Outcome) {
	m.outcome = &out
	m.active = false
}

// resetModifiers forgets the held modifiers. The poller calls it before its
// first sample, which then reports every held modifier as pressed.
func (m *Machine) resetModifiers() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held = 0
}

// Poll returns and clears the finished outcome, if any. It never blocks.
func (m *Machine) Poll() (Outcome, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcome == nil {
		return Outcome{}, false
	}
	out := *m.outcome
	m.outcome = nil
	return out, true
}
