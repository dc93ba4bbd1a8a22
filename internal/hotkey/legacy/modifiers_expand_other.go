//go:build !linux

package legacy

import xhotkey "golang.design/x/hotkey"

func expandModifiers(modifiers []xhotkey.Modifier) [][]xhotkey.Modifier {
	return [][]xhotkey.Modifier{modifiers}
}
