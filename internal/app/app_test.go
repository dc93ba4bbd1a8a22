package app

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/TanaroSch/nanokey/internal/capture"
	"github.com/TanaroSch/nanokey/internal/caret"
	"github.com/TanaroSch/nanokey/internal/hotkey"
	"github.com/TanaroSch/nanokey/internal/keyevent"
)

type fakeBinding struct {
	keydown chan struct{}
	once    sync.Once
}

func (b *fakeBinding) Keydown() <-chan struct{} { return b.keydown }
func (b *fakeBinding) Close() error {
	b.once.Do(func() { close(b.keydown) })
	return nil
}

type fakeBackend struct {
	mu       sync.Mutex
	refuse   map[string]bool
	bindings map[string]*fakeBinding
}

func (f *fakeBackend) Name() string      { return "fake" }
func (f *fakeBackend) IsAvailable() bool { return true }

func (f *fakeBackend) Bind(hk hotkey.Hotkey) (hotkey.Binding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refuse[hk.String()] {
		return nil, errors.New("combination owned by another process")
	}
	if f.bindings == nil {
		f.bindings = map[string]*fakeBinding{}
	}
	b := &fakeBinding{keydown: make(chan struct{}, 1)}
	f.bindings[hk.String()] = b
	return b, nil
}

func (f *fakeBackend) press(mnemonic string) {
	f.mu.Lock()
	b := f.bindings[mnemonic]
	f.mu.Unlock()
	b.keydown <- struct{}{}
}

// pipeSource hands its forward function to the test and blocks until stopped.
type pipeSource struct {
	err     error
	forward chan func(keyevent.Event)
	stop    chan struct{}
}

func newPipeSource(t *testing.T) *pipeSource {
	src := &pipeSource{forward: make(chan func(keyevent.Event), 1), stop: make(chan struct{})}
	t.Cleanup(func() { close(src.stop) })
	return src
}

func (p *pipeSource) Name() string { return "pipe" }

func (p *pipeSource) Run(forward func(keyevent.Event)) error {
	if p.err != nil {
		return p.err
	}
	p.forward <- forward
	<-p.stop
	return nil
}

type fixedSampler struct {
	mu   sync.Mutex
	snap keyevent.Snapshot
}

func (f *fixedSampler) set(s keyevent.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = s
}

func (f *fixedSampler) Sample() keyevent.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

type fakeLocator struct{}

func (fakeLocator) ScreenSize() caret.Size       { return caret.Size{W: 1920, H: 1080} }
func (fakeLocator) CaretPosition() caret.Point   { return caret.Point{X: 960, Y: 540} }
func (fakeLocator) IsOwnProcessForeground() bool { return false }

type countingSynth struct{ copies, pastes int }

func (c *countingSynth) SendCopy() error  { c.copies++; return nil }
func (c *countingSynth) SendPaste() error { c.pastes++; return nil }

func newTestSubsystem(t *testing.T, backend *fakeBackend, src keyevent.Source, sampler keyevent.Sampler) *Subsystem {
	t.Helper()
	s := New(Options{
		PollInterval: time.Millisecond,
		Placement:    caret.DefaultPlacement,
		Backend:      backend,
		Source:       src,
		Sampler:      sampler,
		Locator:      fakeLocator{},
		Synth:        &countingSynth{},
	})
	t.Cleanup(s.Close)
	return s
}

func waitOutcome(t *testing.T, s *Subsystem) capture.Outcome {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if out, ok := s.PollCaptureResult(); ok {
			return out
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("no capture outcome within 2s")
	return capture.Outcome{}
}

func TestStartFallsBackToDefault(t *testing.T) {
	backend := &fakeBackend{refuse: map[string]bool{"Ctrl+Shift+X": true}}
	s := newTestSubsystem(t, backend, newPipeSource(t), &fixedSampler{})

	err := s.Start("ctrl+shift+x")
	if !errors.Is(err, ErrUsingDefault) {
		t.Fatalf("Start() error = %v, want ErrUsingDefault", err)
	}
	if !errors.Is(err, hotkey.ErrRegistrationFailed) {
		t.Errorf("Start() error = %v, want wrapped ErrRegistrationFailed", err)
	}
	if got := s.ActiveMnemonic(); got != hotkey.DefaultMnemonic {
		t.Errorf("ActiveMnemonic() = %q, want %q", got, hotkey.DefaultMnemonic)
	}
}

func TestStartDefaultRefused(t *testing.T) {
	backend := &fakeBackend{refuse: map[string]bool{"Alt+Q": true}}
	s := newTestSubsystem(t, backend, newPipeSource(t), &fixedSampler{})

	err := s.Start("alt+q")
	if err == nil || errors.Is(err, ErrUsingDefault) {
		t.Fatalf("Start() error = %v, want plain registration failure", err)
	}
	if got := s.ActiveMnemonic(); got != "" {
		t.Errorf("ActiveMnemonic() = %q, want none", got)
	}
}

func TestFiredMatchesActiveBinding(t *testing.T) {
	backend := &fakeBackend{}
	s := newTestSubsystem(t, backend, newPipeSource(t), &fixedSampler{})
	if err := s.Start("Alt+Q"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	backend.press("Alt+Q")
	select {
	case ev := <-s.Fired():
		if !s.IsMatch(ev) {
			t.Errorf("IsMatch(%+v) = false", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no fired event")
	}
}

func TestCaptureFromEventSource(t *testing.T) {
	src := newPipeSource(t)
	backend := &fakeBackend{}
	s := newTestSubsystem(t, backend, src, &fixedSampler{})
	if err := s.Start("Alt+Q"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	forward := <-src.forward

	s.StartCapture()
	forward(keyevent.Event{Modifier: hotkey.ModCtrl, Down: true})
	forward(keyevent.Event{Modifier: hotkey.ModShift, Down: true})
	forward(keyevent.Event{Key: hotkey.KeyK, Down: true})

	out := waitOutcome(t, s)
	if out.Kind != capture.Captured || out.Mnemonic != "Ctrl+Shift+K" {
		t.Fatalf("outcome = %+v, want Captured Ctrl+Shift+K", out)
	}
	if err := s.ApplyCaptured(out); err != nil {
		t.Fatalf("ApplyCaptured() error = %v", err)
	}
	if got := s.ActiveMnemonic(); got != "Ctrl+Shift+K" {
		t.Errorf("ActiveMnemonic() = %q, want Ctrl+Shift+K", got)
	}
}

func TestApplyCancelled(t *testing.T) {
	s := newTestSubsystem(t, &fakeBackend{}, newPipeSource(t), &fixedSampler{})
	if err := s.ApplyCaptured(capture.Outcome{Kind: capture.Cancelled}); !errors.Is(err, ErrNotCaptured) {
		t.Errorf("ApplyCaptured(Cancelled) error = %v, want ErrNotCaptured", err)
	}
}

func TestPasteDetected(t *testing.T) {
	src := newPipeSource(t)
	s := newTestSubsystem(t, &fakeBackend{}, src, &fixedSampler{})
	_ = s.Start("Alt+Q")
	forward := <-src.forward

	forward(keyevent.Event{Modifier: hotkey.ModCtrl, Down: true})
	forward(keyevent.Event{Modifier: hotkey.ModMeta, Down: true})
	forward(keyevent.Event{Key: hotkey.KeyV, Down: true})

	deadline := time.Now().Add(2 * time.Second)
	for !s.PasteDetected() {
		if time.Now().After(deadline) {
			t.Fatal("paste not detected within 2s")
		}
		time.Sleep(time.Millisecond)
	}
	if s.PasteDetected() {
		t.Error("PasteDetected() = true twice for one chord")
	}
}

func TestFaultSwitchesCaptureToPolling(t *testing.T) {
	src := &pipeSource{err: keyevent.ErrMonitorUnavailable}
	sampler := &fixedSampler{}
	s := newTestSubsystem(t, &fakeBackend{}, src, sampler)
	_ = s.Start("Alt+Q")

	select {
	case msg := <-s.MonitorFaults():
		if msg == "" {
			t.Error("empty fault message")
		}
	case <-time.After(time.Second):
		t.Fatal("no monitor fault")
	}

	s.StartCapture()
	sampler.set(keyevent.Snapshot{Mods: hotkey.ModifierSet(hotkey.ModAlt)})
	time.Sleep(10 * time.Millisecond)
	sampler.set(keyevent.Snapshot{Mods: hotkey.ModifierSet(hotkey.ModAlt), Keys: []hotkey.Key{hotkey.KeyF9}})

	out := waitOutcome(t, s)
	if out.Mnemonic != "Alt+F9" {
		t.Errorf("outcome = %+v, want Alt+F9", out)
	}
}

func TestStopCaptureDropsSession(t *testing.T) {
	src := newPipeSource(t)
	s := newTestSubsystem(t, &fakeBackend{}, src, &fixedSampler{})
	_ = s.Start("Alt+Q")
	forward := <-src.forward

	s.StartCapture()
	s.StopCapture()
	forward(keyevent.Event{Modifier: hotkey.ModCtrl, Down: true})
	forward(keyevent.Event{Key: hotkey.KeyQ, Down: true})
	time.Sleep(20 * time.Millisecond)

	if out, ok := s.PollCaptureResult(); ok {
		t.Errorf("PollCaptureResult() = %+v after StopCapture", out)
	}
}

func TestPlacePopupUsesScreen(t *testing.T) {
	s := newTestSubsystem(t, &fakeBackend{}, newPipeSource(t), &fixedSampler{})
	got := s.PlacePopup(s.CaretPosition(), caret.Size{W: 380, H: 220})
	if got != (caret.Point{X: 770, Y: 310}) {
		t.Errorf("PlacePopup() = %v, want {770 310}", got)
	}
}

func TestPlacePopupKeepsZeroPlacement(t *testing.T) {
	s := New(Options{Backend: &fakeBackend{}, Source: newPipeSource(t), Sampler: &fixedSampler{}, Locator: fakeLocator{}, Synth: &countingSynth{}})
	defer s.Close()

	got := s.PlacePopup(s.CaretPosition(), caret.Size{W: 380, H: 220})
	if got != (caret.Point{X: 770, Y: 320}) {
		t.Errorf("PlacePopup() = %v, want {770 320}", got)
	}
}

func TestStartWithoutBackend(t *testing.T) {
	s := New(Options{Source: newPipeSource(t), Sampler: &fixedSampler{}, Locator: fakeLocator{}, Synth: &countingSynth{}})
	defer s.Close()

	err := s.Start("Ctrl+Shift+X")
	if !errors.Is(err, hotkey.ErrBackendNotAvailable) {
		t.Fatalf("Start() error = %v, want ErrBackendNotAvailable", err)
	}
	if errors.Is(err, ErrUsingDefault) {
		t.Errorf("Start() error = %v, default cannot be active", err)
	}
	if got := s.ActiveMnemonic(); got != "" {
		t.Errorf("ActiveMnemonic() = %q, want empty", got)
	}
	if got := s.PlacePopup(s.CaretPosition(), caret.Size{W: 380, H: 220}); got.X != 770 {
		t.Errorf("subsystem unusable after failed start, PlacePopup() = %v", got)
	}
}

func TestSynthDelegates(t *testing.T) {
	sy := &countingSynth{}
	s := New(Options{Backend: &fakeBackend{}, Source: newPipeSource(t), Sampler: &fixedSampler{}, Locator: fakeLocator{}, Synth: sy})
	defer s.Close()

	_ = s.SendCopy()
	_ = s.SendPaste()
	_ = s.SendPaste()
	if sy.copies != 1 || sy.pastes != 2 {
		t.Errorf("copies, pastes = %d, %d, want 1, 2", sy.copies, sy.pastes)
	}
}
