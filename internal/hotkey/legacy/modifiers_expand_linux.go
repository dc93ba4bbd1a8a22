//go:build linux

package legacy

import xhotkey "golang.design/x/hotkey"

// X11 lock masks that commonly interfere with XGrabKey.
// CapsLock is LockMask (1<<1) and NumLock is usually Mod2.
const (
	linuxCapsLockMask xhotkey.Modifier = 1 << 1
)

// expandModifiers returns the plain combination first, followed by the
// NumLock, CapsLock and NumLock+CapsLock variants, so a binding still
// triggers when a lock key is on.
func expandModifiers(modifiers []xhotkey.Modifier) [][]xhotkey.Modifier {
	with := func(extra ...xhotkey.Modifier) []xhotkey.Modifier {
		return append(append([]xhotkey.Modifier(nil), modifiers...), extra...)
	}
	return [][]xhotkey.Modifier{
		with(),
		with(xhotkey.Mod2),
		with(linuxCapsLockMask),
		with(xhotkey.Mod2, linuxCapsLockMask),
	}
}
