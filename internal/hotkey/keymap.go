package hotkey

import (
	"fmt"
	"strings"
)

// Key is a main key from the closed table of bindable keys.
type Key uint8

const (
	KeyNone Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeySpace
	KeyEnter
	KeyTab
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	keyCount
)

// Display names, indexed by Key. Letters, digits and F-keys are filled in by init.
var keyNames = [keyCount]string{
	KeySpace:     "Space",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyEscape:    "Escape",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
}

// Extra accepted spellings on top of the lowercased display names.
var keyAliases = map[string]Key{
	"return": KeyEnter,
	"esc":    KeyEscape,
	"del":    KeyDelete,
	"ins":    KeyInsert,
	"pgup":   KeyPageUp,
	"pgdn":   KeyPageDown,
}

// keyLookup maps lowercase names and aliases to keys.
var keyLookup = make(map[string]Key, int(keyCount)+len(keyAliases))

func init() {
	for i := 0; i < 26; i++ {
		keyNames[KeyA+Key(i)] = string(rune('A' + i))
	}
	for i := 0; i < 10; i++ {
		keyNames[Key0+Key(i)] = string(rune('0' + i))
	}
	for i := 0; i < 12; i++ {
		keyNames[KeyF1+Key(i)] = fmt.Sprintf("F%d", i+1)
	}
	for k := KeyA; k < keyCount; k++ {
		keyLookup[strings.ToLower(keyNames[k])] = k
	}
	for alias, k := range keyAliases {
		keyLookup[alias] = k
	}
}

// Valid reports whether k is a member of the key table.
func (k Key) Valid() bool { return k > KeyNone && k < keyCount }

func (k Key) String() string {
	if !k.Valid() {
		return ""
	}
	return keyNames[k]
}

// LookupKey resolves a case-insensitive key name or alias.
func LookupKey(name string) (Key, bool) {
	k, ok := keyLookup[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// Keys returns every bindable key in table order.
func Keys() []Key {
	out := make([]Key, 0, keyCount-1)
	for k := KeyA; k < keyCount; k++ {
		out = append(out, k)
	}
	return out
}
