package synth

import (
	"sync"
	"time"

	"github.com/micmonay/keybd_event"
)

// uinputSettle is how long a fresh virtual keyboard is given before the
// first chord; the device is created once per process.
const uinputSettle = 200 * time.Millisecond

var deviceMethods = []method{{"uinput", sendWithUinput}}

var (
	newKeyBonding = keybd_event.NewKeyBonding
	settle        = time.Sleep

	uinputOnce sync.Once
	uinputMu   sync.Mutex
	uinputKB   keybd_event.KeyBonding
	uinputErr  error
)

// sendWithUinput types through a virtual keyboard. It needs write access to
// /dev/uinput.
func sendWithUinput(c Chord) error {
	uinputOnce.Do(func() {
		uinputKB, uinputErr = newKeyBonding()
		if uinputErr == nil {
			settle(uinputSettle)
		}
	})
	if uinputErr != nil {
		return uinputErr
	}

	uinputMu.Lock()
	defer uinputMu.Unlock()
	if c == Copy {
		uinputKB.SetKeys(keybd_event.VK_C)
	} else {
		uinputKB.SetKeys(keybd_event.VK_V)
	}
	uinputKB.HasCTRL(true)
	return uinputKB.Launching()
}
