//go:build windows

package caret

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procGetSystemMetrics         = user32.NewProc("GetSystemMetrics")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procGetGUIThreadInfo         = user32.NewProc("GetGUIThreadInfo")
	procClientToScreen           = user32.NewProc("ClientToScreen")
	procGetCursorPos             = user32.NewProc("GetCursorPos")
)

const (
	smCXScreen = 0
	smCYScreen = 1

	guiCaretBlinking = 0x00000001
)

type rect struct {
	Left, Top, Right, Bottom int32
}

type point struct {
	X, Y int32
}

type guiThreadInfo struct {
	CbSize        uint32
	Flags         uint32
	HwndActive    uintptr
	HwndFocus     uintptr
	HwndCapture   uintptr
	HwndMenuOwner uintptr
	HwndMoveSize  uintptr
	HwndCaret     uintptr
	RcCaret       rect
}

type win32Locator struct{}

// NewLocator returns the Win32 locator.
func NewLocator() Locator { return win32Locator{} }

func (win32Locator) ScreenSize() Size {
	w, _, _ := procGetSystemMetrics.Call(smCXScreen)
	h, _, _ := procGetSystemMetrics.Call(smCYScreen)
	if w == 0 || h == 0 {
		return Size{W: FallbackWidth, H: FallbackHeight}
	}
	return Size{W: int(int32(w)), H: int(int32(h))}
}

// CaretPosition reports the bottom-left of the foreground thread's caret,
// or the pointer when the caret is hidden or owned by no window.
func (win32Locator) CaretPosition() Point {
	if p, ok := foregroundCaret(); ok {
		return p
	}
	var pt point
	if r, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt))); r != 0 {
		return Point{X: int(pt.X), Y: int(pt.Y)}
	}
	return Point{}
}

func foregroundCaret() (Point, bool) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return Point{}, false
	}
	tid, _, _ := procGetWindowThreadProcessId.Call(hwnd, 0)
	if tid == 0 {
		return Point{}, false
	}

	info := guiThreadInfo{}
	info.CbSize = uint32(unsafe.Sizeof(info))
	if r, _, _ := procGetGUIThreadInfo.Call(tid, uintptr(unsafe.Pointer(&info))); r == 0 {
		return Point{}, false
	}
	if info.HwndCaret == 0 || info.Flags&guiCaretBlinking == 0 {
		return Point{}, false
	}

	pt := point{X: info.RcCaret.Left, Y: info.RcCaret.Bottom}
	if r, _, _ := procClientToScreen.Call(info.HwndCaret, uintptr(unsafe.Pointer(&pt))); r == 0 {
		return Point{}, false
	}
	return Point{X: int(pt.X), Y: int(pt.Y)}, true
}

func (win32Locator) IsOwnProcessForeground() bool {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return false
	}
	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	return pid != 0 && pid == windows.GetCurrentProcessId()
}
