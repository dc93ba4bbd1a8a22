// Package synth synthesizes the platform copy and paste chords.
package synth

import (
	"errors"
	"fmt"
	"time"

	"github.com/TanaroSch/nanokey/internal/logging"
	"go.uber.org/zap"
)

// KeyDelay separates consecutive synthesized key transitions. Some
// applications drop chords delivered faster than this.
const KeyDelay = 10 * time.Millisecond

// ErrNoMethod is returned when every synthesis method failed.
var ErrNoMethod = errors.New("all input synthesis methods failed")

// Chord is a synthesized shortcut.
type Chord int

const (
	Copy Chord = iota
	Paste
)

func (c Chord) String() string {
	if c == Copy {
		return "copy"
	}
	return "paste"
}

// letter is the key pressed together with the platform modifier.
func (c Chord) letter() string {
	if c == Copy {
		return "c"
	}
	return "v"
}

type method struct {
	name string
	send func(Chord) error
}

// SendCopy synthesizes Ctrl+C (Cmd+C on macOS).
func SendCopy() error { return runChain(Copy, platformMethods()) }

// SendPaste synthesizes Ctrl+V (Cmd+V on macOS).
func SendPaste() error { return runChain(Paste, platformMethods()) }

// runChain tries each method in order and stops at the first success.
func runChain(c Chord, chain []method) error {
	log := logging.For("synth")

	var errs []error
	for i, m := range chain {
		log.Debug("synthesizing chord", zap.Stringer("chord", c), zap.String("method", m.name), zap.Int("attempt", i+1))
		if err := m.send(c); err != nil {
			log.Debug("synthesis method failed", zap.String("method", m.name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", m.name, err))
			continue
		}
		log.Info("chord synthesized", zap.Stringer("chord", c), zap.String("method", m.name))
		return nil
	}
	log.Warn("all synthesis methods failed", zap.Stringer("chord", c))
	return fmt.Errorf("%w: %w", ErrNoMethod, errors.Join(errs...))
}
