// Package app wires the hotkey, capture, key event and caret components
// into the single handle consumed by the UI loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/TanaroSch/nanokey/internal/capture"
	"github.com/TanaroSch/nanokey/internal/caret"
	"github.com/TanaroSch/nanokey/internal/hotkey"
	"github.com/TanaroSch/nanokey/internal/keyevent"
	"github.com/TanaroSch/nanokey/internal/logging"
	"github.com/TanaroSch/nanokey/internal/synth"
	"go.uber.org/zap"
)

// ErrUsingDefault reports that the requested hotkey could not be registered
// at startup and the default binding is active instead.
var ErrUsingDefault = errors.New("configured hotkey unavailable, default binding active")

// ErrNotCaptured is returned by ApplyCaptured for a cancelled session.
var ErrNotCaptured = errors.New("capture outcome holds no hotkey")

// Synthesizer sends the platform copy and paste chords.
type Synthesizer interface {
	SendCopy() error
	SendPaste() error
}

type platformSynth struct{}

func (platformSynth) SendCopy() error  { return synth.SendCopy() }
func (platformSynth) SendPaste() error { return synth.SendPaste() }

// Options configures a Subsystem. Placement is used as given; callers
// wanting the stock offsets pass caret.DefaultPlacement. A nil Backend makes
// every registration fail with hotkey.ErrBackendNotAvailable, and the other
// nil collaborators are replaced by the platform implementations.
type Options struct {
	PollInterval time.Duration
	Placement    caret.Placement

	Backend hotkey.Backend
	Source  keyevent.Source
	Sampler keyevent.Sampler
	Locator caret.Locator
	Synth   Synthesizer
}

// Subsystem is the owning handle for every shared piece of state. All
// methods are safe to call from the consumer's polling goroutine while the
// key event pump runs on its own thread.
type Subsystem struct {
	log       *zap.Logger
	interval  time.Duration
	placement caret.Placement

	registry *hotkey.Registry
	monitor  *keyevent.Monitor
	paste    *keyevent.PasteDetector
	machine  *capture.Machine
	poller   *capture.Poller
	locator  caret.Locator
	synth    Synthesizer

	pollMu     sync.Mutex
	pollCancel context.CancelFunc
	pollDone   chan struct{}
}

// New builds a Subsystem. Nothing is installed or registered until Start.
func New(opts Options) *Subsystem {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 50 * time.Millisecond
	}
	if opts.Backend == nil {
		opts.Backend = hotkey.Unavailable("no hotkey backend configured")
	}
	if opts.Source == nil {
		opts.Source = keyevent.NewSource()
	}
	if opts.Sampler == nil {
		opts.Sampler = keyevent.NewSampler()
	}
	if opts.Locator == nil {
		opts.Locator = caret.NewLocator()
	}
	if opts.Synth == nil {
		opts.Synth = platformSynth{}
	}

	s := &Subsystem{
		log:       logging.For("app"),
		interval:  opts.PollInterval,
		placement: opts.Placement,
		registry:  hotkey.NewRegistry(opts.Backend),
		monitor:   keyevent.NewMonitor(opts.Source),
		paste:     keyevent.NewPasteDetector(),
		machine:   capture.New(),
		locator:   opts.Locator,
		synth:     opts.Synth,
	}
	if opts.Sampler != nil {
		s.poller = capture.NewPoller(opts.Sampler, s.machine)
	}

	s.monitor.Subscribe(s.paste.Handle)
	s.monitor.Subscribe(s.machine.Handle)
	return s
}

// Start installs the key event source and registers mnemonic. When the
// first registration fails it falls back to hotkey.DefaultMnemonic and
// returns an error wrapping ErrUsingDefault together with the original
// failure. Start never stops the subsystem from running.
func (s *Subsystem) Start(mnemonic string) error {
	s.monitor.Start()

	_, err := s.registry.Register(mnemonic)
	if err == nil {
		return nil
	}
	if canonical, cerr := hotkey.Canonical(mnemonic); cerr == nil && canonical == hotkey.DefaultMnemonic {
		return err
	}

	s.log.Warn("configured hotkey unavailable, falling back to default",
		zap.String("hotkey", mnemonic), zap.String("default", hotkey.DefaultMnemonic), zap.Error(err))
	if _, derr := s.registry.Register(hotkey.DefaultMnemonic); derr != nil {
		return errors.Join(err, derr)
	}
	return fmt.Errorf("%w: %w", ErrUsingDefault, err)
}

// StartCapture begins recording a new hotkey. Without a working event
// source the session is driven by the state sampler instead.
func (s *Subsystem) StartCapture() {
	s.stopPolling()
	s.machine.Start()
	s.ensurePolling()
}

// StopCapture abandons the session without a result.
func (s *Subsystem) StopCapture() {
	s.machine.Stop()
	s.stopPolling()
}

// PollCaptureResult returns the finished outcome once.
func (s *Subsystem) PollCaptureResult() (capture.Outcome, bool) {
	out, ok := s.machine.Poll()
	if ok {
		s.log.Info("capture finished", zap.Stringer("outcome", out.Kind), zap.String("hotkey", out.Mnemonic))
		s.stopPolling()
		return out, true
	}
	s.ensurePolling()
	return capture.Outcome{}, false
}

// CaptureActive reports whether a session is recording.
func (s *Subsystem) CaptureActive() bool {
	return s.machine.Active()
}

func (s *Subsystem) ensurePolling() {
	if s.poller == nil || !s.monitor.Faulted() || !s.machine.Active() {
		return
	}

	s.pollMu.Lock()
	defer s.pollMu.Unlock()
	if s.pollCancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.pollCancel, s.pollDone = cancel, done
	s.log.Info("capturing by state polling", zap.Duration("interval", s.interval))
	go func() {
		defer close(done)
		s.poller.Run(ctx, s.interval)
	}()
}

func (s *Subsystem) stopPolling() {
	s.pollMu.Lock()
	cancel, done := s.pollCancel, s.pollDone
	s.pollCancel, s.pollDone = nil, nil
	s.pollMu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Register binds mnemonic, replacing any active binding.
func (s *Subsystem) Register(mnemonic string) (hotkey.RegisteredHotkey, error) {
	return s.registry.Register(mnemonic)
}

// Update rebinds to mnemonic, keeping the old binding on failure.
func (s *Subsystem) Update(mnemonic string) error {
	return s.registry.Update(mnemonic)
}

// ApplyCaptured rebinds to a captured hotkey.
func (s *Subsystem) ApplyCaptured(out capture.Outcome) error {
	if out.Kind != capture.Captured {
		return ErrNotCaptured
	}
	return s.registry.Update(out.Mnemonic)
}

// ActiveMnemonic returns the canonical mnemonic of the live binding, or ""
// when nothing is bound.
func (s *Subsystem) ActiveMnemonic() string {
	reg, ok := s.registry.Active()
	if !ok {
		return ""
	}
	return reg.Mnemonic()
}

// Fired yields OS hotkey notifications; test each with IsMatch.
func (s *Subsystem) Fired() <-chan hotkey.FiredEvent {
	return s.registry.Fired()
}

// IsMatch reports whether ev belongs to the live binding.
func (s *Subsystem) IsMatch(ev hotkey.FiredEvent) bool {
	return s.registry.IsMatch(ev)
}

// PasteDetected returns and clears the paste latch.
func (s *Subsystem) PasteDetected() bool {
	return s.paste.Detected()
}

// MonitorFaults yields at most one diagnostic for the process lifetime.
func (s *Subsystem) MonitorFaults() <-chan string {
	return s.monitor.Faults()
}

// CaretPosition returns the caret, the pointer, or the origin.
func (s *Subsystem) CaretPosition() caret.Point {
	return s.locator.CaretPosition()
}

// ScreenSize returns the primary display size.
func (s *Subsystem) ScreenSize() caret.Size {
	return s.locator.ScreenSize()
}

// IsOwnProcessForeground reports whether this process owns the foreground window.
func (s *Subsystem) IsOwnProcessForeground() bool {
	return s.locator.IsOwnProcessForeground()
}

// PlacePopup positions a popup near cursor on the primary display.
func (s *Subsystem) PlacePopup(cursor caret.Point, popup caret.Size) caret.Point {
	return caret.PlacePopup(cursor, popup, s.locator.ScreenSize(), s.placement)
}

// SendCopy synthesizes the platform copy chord.
func (s *Subsystem) SendCopy() error {
	return s.synth.SendCopy()
}

// SendPaste synthesizes the platform paste chord.
func (s *Subsystem) SendPaste() error {
	return s.synth.SendPaste()
}

// Close stops any capture session and releases the binding. The event
// source stays installed until the process exits.
func (s *Subsystem) Close() {
	s.StopCapture()
	s.registry.Close()
	s.log.Info("subsystem closed")
}
