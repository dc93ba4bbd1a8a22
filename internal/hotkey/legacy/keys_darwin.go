//go:build darwin

package legacy

import (
	"github.com/TanaroSch/nanokey/internal/hotkey"
	xhotkey "golang.design/x/hotkey"
)

var platformModifiers = map[hotkey.Modifier]xhotkey.Modifier{
	hotkey.ModCtrl:  xhotkey.ModCtrl,
	hotkey.ModAlt:   xhotkey.ModOption,
	hotkey.ModShift: xhotkey.ModShift,
	hotkey.ModMeta:  xhotkey.ModCmd,
}

// Carbon kVK codes the library does not name. Mac keyboards have no
// Insert key; Help sits in its place.
const (
	kvkBackspace     xhotkey.Key = 0x33
	kvkHelp          xhotkey.Key = 0x72
	kvkHome          xhotkey.Key = 0x73
	kvkPageUp        xhotkey.Key = 0x74
	kvkForwardDelete xhotkey.Key = 0x75
	kvkEnd           xhotkey.Key = 0x77
	kvkPageDown      xhotkey.Key = 0x79
)

var platformKeys = map[hotkey.Key]xhotkey.Key{
	hotkey.KeyA: xhotkey.KeyA, hotkey.KeyB: xhotkey.KeyB, hotkey.KeyC: xhotkey.KeyC, hotkey.KeyD: xhotkey.KeyD,
	hotkey.KeyE: xhotkey.KeyE, hotkey.KeyF: xhotkey.KeyF, hotkey.KeyG: xhotkey.KeyG, hotkey.KeyH: xhotkey.KeyH,
	hotkey.KeyI: xhotkey.KeyI, hotkey.KeyJ: xhotkey.KeyJ, hotkey.KeyK: xhotkey.KeyK, hotkey.KeyL: xhotkey.KeyL,
	hotkey.KeyM: xhotkey.KeyM, hotkey.KeyN: xhotkey.KeyN, hotkey.KeyO: xhotkey.KeyO, hotkey.KeyP: xhotkey.KeyP,
	hotkey.KeyQ: xhotkey.KeyQ, hotkey.KeyR: xhotkey.KeyR, hotkey.KeyS: xhotkey.KeyS, hotkey.KeyT: xhotkey.KeyT,
	hotkey.KeyU: xhotkey.KeyU, hotkey.KeyV: xhotkey.KeyV, hotkey.KeyW: xhotkey.KeyW, hotkey.KeyX: xhotkey.KeyX,
	hotkey.KeyY: xhotkey.KeyY, hotkey.KeyZ: xhotkey.KeyZ,

	hotkey.Key0: xhotkey.Key0, hotkey.Key1: xhotkey.Key1, hotkey.Key2: xhotkey.Key2, hotkey.Key3: xhotkey.Key3,
	hotkey.Key4: xhotkey.Key4, hotkey.Key5: xhotkey.Key5, hotkey.Key6: xhotkey.Key6, hotkey.Key7: xhotkey.Key7,
	hotkey.Key8: xhotkey.Key8, hotkey.Key9: xhotkey.Key9,

	hotkey.KeyF1: xhotkey.KeyF1, hotkey.KeyF2: xhotkey.KeyF2, hotkey.KeyF3: xhotkey.KeyF3, hotkey.KeyF4: xhotkey.KeyF4,
	hotkey.KeyF5: xhotkey.KeyF5, hotkey.KeyF6: xhotkey.KeyF6, hotkey.KeyF7: xhotkey.KeyF7, hotkey.KeyF8: xhotkey.KeyF8,
	hotkey.KeyF9: xhotkey.KeyF9, hotkey.KeyF10: xhotkey.KeyF10, hotkey.KeyF11: xhotkey.KeyF11, hotkey.KeyF12: xhotkey.KeyF12,

	hotkey.KeySpace:     xhotkey.KeySpace,
	hotkey.KeyEnter:     xhotkey.KeyReturn,
	hotkey.KeyTab:       xhotkey.KeyTab,
	hotkey.KeyEscape:    xhotkey.KeyEscape,
	hotkey.KeyBackspace: kvkBackspace,
	hotkey.KeyDelete:    kvkForwardDelete,
	hotkey.KeyInsert:    kvkHelp,
	hotkey.KeyHome:      kvkHome,
	hotkey.KeyEnd:       kvkEnd,
	hotkey.KeyPageUp:    kvkPageUp,
	hotkey.KeyPageDown:  kvkPageDown,
	hotkey.KeyUp:        xhotkey.KeyUp,
	hotkey.KeyDown:      xhotkey.KeyDown,
	hotkey.KeyLeft:      xhotkey.KeyLeft,
	hotkey.KeyRight:     xhotkey.KeyRight,
}
