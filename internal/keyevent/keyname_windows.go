//go:build windows

package keyevent

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// platformKeyName asks the keyboard layout for the key's name.
func platformKeyName(e Event) string {
	lParam := uintptr(e.Scan) << 16
	if e.Extended {
		lParam |= 1 << 24
	}
	var buf [64]uint16
	n, _, _ := procGetKeyNameTextW.Call(lParam, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}
