package hotkey

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeBinding struct {
	hk        Hotkey
	keydown   chan struct{}
	closeOnce sync.Once
	closed    bool
}

func (b *fakeBinding) Keydown() <-chan struct{} { return b.keydown }

func (b *fakeBinding) Close() error {
	b.closeOnce.Do(func() {
		b.closed = true
		close(b.keydown)
	})
	return nil
}

type fakeBackend struct {
	mu       sync.Mutex
	binds    int
	refuse   map[string]bool
	bindings []*fakeBinding
}

func (f *fakeBackend) Name() string      { return "fake" }
func (f *fakeBackend) IsAvailable() bool { return true }

func (f *fakeBackend) Bind(hk Hotkey) (Binding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.binds++
	if f.refuse[hk.String()] {
		return nil, errors.New("already bound by another process")
	}
	b := &fakeBinding{hk: hk, keydown: make(chan struct{})}
	f.bindings = append(f.bindings, b)
	return b, nil
}

func (f *fakeBackend) bindCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.binds
}

func (f *fakeBackend) last() *fakeBinding {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bindings[len(f.bindings)-1]
}

func receive(t *testing.T, r *Registry) FiredEvent {
	t.Helper()
	select {
	case ev := <-r.Fired():
		return ev
	case <-time.After(time.Second):
		t.Fatal("no fired event within 1s")
		return FiredEvent{}
	}
}

func TestRegistryRegister(t *testing.T) {
	backend := &fakeBackend{}
	r := NewRegistry(backend)
	defer r.Close()

	reg, err := r.Register("alt+q")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if reg.Mnemonic() != "Alt+Q" {
		t.Errorf("Mnemonic() = %q, want %q", reg.Mnemonic(), "Alt+Q")
	}

	backend.last().keydown <- struct{}{}
	ev := receive(t, r)
	if !r.IsMatch(ev) {
		t.Errorf("IsMatch(%+v) = false, want true", ev)
	}
}

func TestRegistryRegisterParseError(t *testing.T) {
	backend := &fakeBackend{}
	r := NewRegistry(backend)
	defer r.Close()

	if _, err := r.Register("Q"); !errors.Is(err, ErrNoModifier) {
		t.Errorf("Register(Q) error = %v, want NoModifier", err)
	}
	if backend.bindCount() != 0 {
		t.Errorf("bind calls = %d, want 0", backend.bindCount())
	}
}

func TestRegistryUpdateIdempotent(t *testing.T) {
	backend := &fakeBackend{}
	r := NewRegistry(backend)
	defer r.Close()

	if _, err := r.Register("Ctrl+Shift+T"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	for _, m := range []string{"shift+ctrl+t", "Control+Shift+T"} {
		if err := r.Update(m); err != nil {
			t.Fatalf("Update(%q) error = %v", m, err)
		}
	}
	if got := backend.bindCount(); got != 1 {
		t.Errorf("bind calls = %d, want 1", got)
	}
}

func TestRegistryUpdateSwapsBinding(t *testing.T) {
	backend := &fakeBackend{}
	r := NewRegistry(backend)
	defer r.Close()

	first, err := r.Register("Alt+Q")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	old := backend.last()

	if err := r.Update("Ctrl+Alt+W"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !old.closed {
		t.Error("old binding not released after successful update")
	}
	active, ok := r.Active()
	if !ok || active.Mnemonic() != "Ctrl+Alt+W" {
		t.Errorf("Active() = %q, %v, want Ctrl+Alt+W", active.Mnemonic(), ok)
	}
	if r.IsMatch(FiredEvent{ID: first.ID}) {
		t.Error("IsMatch(old binding) = true after update")
	}
}

func TestRegistryFailedUpdateKeepsOldBinding(t *testing.T) {
	backend := &fakeBackend{refuse: map[string]bool{"Ctrl+Shift+X": true}}
	r := NewRegistry(backend)
	defer r.Close()

	before, err := r.Register("Alt+Q")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	old := backend.last()

	err = r.Update("ctrl+shift+x")
	if !errors.Is(err, ErrRegistrationFailed) {
		t.Fatalf("Update() error = %v, want ErrRegistrationFailed", err)
	}
	if old.closed {
		t.Fatal("old binding released after failed update")
	}
	after, _ := r.Active()
	if after != before {
		t.Errorf("Active() = %+v, want %+v", after, before)
	}

	old.keydown <- struct{}{}
	ev := receive(t, r)
	if !r.IsMatch(ev) {
		t.Errorf("IsMatch(%+v) = false after failed update", ev)
	}
}

func TestRegistryClose(t *testing.T) {
	backend := &fakeBackend{}
	r := NewRegistry(backend)

	if _, err := r.Register("Alt+Q"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	b := backend.last()
	r.Close()

	if !b.closed {
		t.Error("binding not released on Close")
	}
	if _, ok := r.Active(); ok {
		t.Error("Active() ok = true after Close")
	}
}
