//go:build windows

package keyevent

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

// hookSource is a WH_KEYBOARD_LL hook with a GetMessageW pump.
type hookSource struct{}

// NewSource returns the interception mechanism for this platform.
func NewSource() Source { return &hookSource{} }

func (s *hookSource) Name() string { return "WH_KEYBOARD_LL hook" }

func (s *hookSource) Run(forward func(Event)) error {
	// The hook is delivered to the thread that installed it, which must
	// keep pumping messages.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	callback := windows.NewCallback(func(nCode, wParam, lParam uintptr) uintptr {
		if int32(nCode) == hcAction {
			kb := (*kbdllhookstruct)(unsafe.Pointer(lParam))
			extended := kb.Flags&llkhfExtended != 0
			switch wParam {
			case wmKeyDown, wmSysKeyDown:
				forward(translateVK(kb.VkCode, kb.ScanCode, extended, true))
			case wmKeyUp, wmSysKeyUp:
				forward(translateVK(kb.VkCode, kb.ScanCode, extended, false))
			}
		}
		ret, _, _ := procCallNextHookEx.Call(0, nCode, wParam, lParam)
		return ret
	})

	hook, _, err := procSetWindowsHookExW.Call(whKeyboardLL, callback, 0, 0)
	if hook == 0 {
		return fmt.Errorf("%w: SetWindowsHookExW: %v", ErrMonitorUnavailable, err)
	}
	defer procUnhookWindowsHookEx.Call(hook)

	var m msg
	for {
		ret, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(ret) {
		case -1:
			return fmt.Errorf("%w: GetMessageW: %v", ErrMonitorUnavailable, err)
		case 0:
			return nil
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}
