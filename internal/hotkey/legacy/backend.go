// Package legacy binds hotkeys through golang.design/x/hotkey.
//
// On Linux the library opens the X display from its init function and panics
// without one, so only the binary entrypoint imports this package.
package legacy

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/TanaroSch/nanokey/internal/hotkey"
	"github.com/TanaroSch/nanokey/internal/logging"
	"go.uber.org/zap"
	xhotkey "golang.design/x/hotkey"
)

// Backend binds hotkeys through golang.design/x/hotkey.
// It supports Windows, macOS and X11. It does NOT support Wayland.
type Backend struct {
	displayServer hotkey.DisplayServer
	log           *zap.Logger
}

// NewBackend creates a backend for the current display server.
func NewBackend() *Backend {
	b := &Backend{
		displayServer: hotkey.DetectDisplayServer(),
		log:           logging.For("hotkey"),
	}
	b.log.Info("Legacy backend: detected display server", zap.Stringer("display_server", b.displayServer))
	return b
}

// Name returns the name of this backend.
func (b *Backend) Name() string {
	return "Legacy (golang.design/x/hotkey)"
}

// IsAvailable checks if this backend can be used on the current system.
func (b *Backend) IsAvailable() bool {
	return b.displayServer.SupportsGlobalHotkeys()
}

// Bind registers hk. On X11 the lock-state variants are registered as well;
// only the failure of the plain combination is an error.
func (b *Backend) Bind(hk hotkey.Hotkey) (hotkey.Binding, error) {
	if !b.IsAvailable() {
		return nil, fmt.Errorf("%w: %s display server", hotkey.ErrBackendNotAvailable, b.displayServer)
	}

	mods, key, err := toPlatform(hk)
	if err != nil {
		return nil, err
	}

	lh := &legacyHotkey{
		mnemonic:  hk.String(),
		keydownCh: make(chan struct{}),
		stopCh:    make(chan struct{}),
		log:       b.log,
	}
	for i, variant := range expandModifiers(mods) {
		xhk := xhotkey.New(variant, key)
		if err := xhk.Register(); err != nil {
			if i == 0 {
				return nil, fmt.Errorf("failed to register hotkey '%s': %w", lh.mnemonic, err)
			}
			b.log.Debug("Legacy backend: lock-state variant not registered",
				zap.String("hotkey", lh.mnemonic), zap.Int("variant", i), zap.Error(err))
			continue
		}
		lh.hotkeys = append(lh.hotkeys, xhk)
	}

	lh.startEventConverter()
	b.log.Info("Legacy backend: registered hotkey",
		zap.String("hotkey", lh.mnemonic), zap.Int("variants", len(lh.hotkeys)))
	return lh, nil
}

// toPlatform translates hk into the library's per-OS modifier and key codes.
func toPlatform(hk hotkey.Hotkey) ([]xhotkey.Modifier, xhotkey.Key, error) {
	var mods []xhotkey.Modifier
	for _, m := range hk.Modifiers().Modifiers() {
		pm, ok := platformModifiers[m]
		if !ok {
			return nil, 0, fmt.Errorf("modifier '%s' cannot be bound on %s", m, runtime.GOOS)
		}
		mods = append(mods, pm)
	}
	key, ok := platformKeys[hk.Key()]
	if !ok {
		return nil, 0, fmt.Errorf("key '%s' cannot be bound on %s", hk.Key(), runtime.GOOS)
	}
	return mods, key, nil
}

// legacyHotkey fans the keydown channels of every registered variant into
// a single struct{} channel.
type legacyHotkey struct {
	mnemonic  string
	hotkeys   []*xhotkey.Hotkey
	keydownCh chan struct{}
	stopCh    chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	log       *zap.Logger
}

// Keydown returns the channel that receives keydown events.
func (lh *legacyHotkey) Keydown() <-chan struct{} {
	return lh.keydownCh
}

func (lh *legacyHotkey) startEventConverter() {
	for _, xhk := range lh.hotkeys {
		lh.wg.Add(1)
		go lh.convert(xhk.Keydown())
	}
}

func (lh *legacyHotkey) convert(events <-chan xhotkey.Event) {
	defer lh.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			lh.log.Error("recovered from panic in hotkey converter",
				zap.String("hotkey", lh.mnemonic), zap.Any("panic", r))
		}
	}()

	for {
		select {
		case <-lh.stopCh:
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			select {
			case lh.keydownCh <- struct{}{}:
			case <-lh.stopCh:
				return
			}
		}
	}
}

// Close unregisters every variant and closes the Keydown channel.
func (lh *legacyHotkey) Close() error {
	var errs []error
	lh.closeOnce.Do(func() {
		close(lh.stopCh)
		for _, xhk := range lh.hotkeys {
			if err := xhk.Unregister(); err != nil {
				errs = append(errs, err)
			}
		}
		lh.wg.Wait()
		close(lh.keydownCh)
	})
	if len(errs) > 0 {
		return fmt.Errorf("failed to unregister hotkey '%s': %w", lh.mnemonic, errors.Join(errs...))
	}
	return nil
}

// Default returns the backend for the current environment, logging when
// every Bind is going to fail.
func Default() hotkey.Backend {
	backend := NewBackend()
	if !backend.IsAvailable() {
		backend.log.Warn("no hotkey backend for this display server; bindings will fail",
			zap.Stringer("display_server", backend.displayServer))
	}
	return backend
}
