//go:build windows

package synth

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unsafe"

	"github.com/micmonay/keybd_event"
	"golang.org/x/sys/windows"
)

var (
	user32         = windows.NewLazySystemDLL("user32.dll")
	procSendInput  = user32.NewProc("SendInput")
	procMapVirtKey = user32.NewProc("MapVirtualKeyW")
)

const (
	inputKeyboard  = 1
	keyeventfKeyUp = 0x0002
	mapvkVkToVsc   = 0
	vkControl      = 0x11
	vkC            = 0x43
	vkV            = 0x56
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keyboardInput
	padding   [8]byte // pads to sizeof(INPUT)
}

func platformMethods() []method {
	return []method{
		{"SendInput", sendWithSendInput},
		{"keybd_event", sendWithKeybdEvent},
		{"PowerShell", sendWithPowerShell},
	}
}

func chordVK(c Chord) uintptr {
	if c == Copy {
		return vkC
	}
	return vkV
}

// sendWithSendInput sends Ctrl down, key down, key up, Ctrl up with
// KeyDelay between transitions.
func sendWithSendInput(c Chord) error {
	key := chordVK(c)
	steps := []struct {
		vk    uintptr
		flags uint32
	}{
		{vkControl, 0},
		{key, 0},
		{key, keyeventfKeyUp},
		{vkControl, keyeventfKeyUp},
	}

	for i, s := range steps {
		scan, _, _ := procMapVirtKey.Call(s.vk, mapvkVkToVsc)
		in := input{
			inputType: inputKeyboard,
			ki: keyboardInput{
				wVk:     uint16(s.vk),
				wScan:   uint16(scan),
				dwFlags: s.flags,
			},
		}
		ret, _, err := procSendInput.Call(1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
		if ret != 1 {
			return fmt.Errorf("SendInput step %d: %v", i, err)
		}
		time.Sleep(KeyDelay)
	}
	return nil
}

func sendWithKeybdEvent(c Chord) error {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return err
	}
	if c == Copy {
		kb.SetKeys(keybd_event.VK_C)
	} else {
		kb.SetKeys(keybd_event.VK_V)
	}
	kb.HasCTRL(true)
	return kb.Launching()
}

func sendWithPowerShell(c Chord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	script := fmt.Sprintf(`Add-Type -AssemblyName System.Windows.Forms
[System.Windows.Forms.SendKeys]::SendWait("^%s")`, c.letter())
	out, err := exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
