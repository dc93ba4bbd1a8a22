package keyevent

import "github.com/TanaroSch/nanokey/internal/hotkey"

// libuiohook virtual key codes, as reported in gohook's Event.Keycode.
var uiohookModifiers = map[uint16]hotkey.Modifier{
	0x002A: hotkey.ModShift, // VC_SHIFT_L
	0x0036: hotkey.ModShift, // VC_SHIFT_R
	0x001D: hotkey.ModCtrl,  // VC_CONTROL_L
	0x0E1D: hotkey.ModCtrl,  // VC_CONTROL_R
	0x0038: hotkey.ModAlt,   // VC_ALT_L
	0x0E38: hotkey.ModAlt,   // VC_ALT_R
	0x0E5B: hotkey.ModMeta,  // VC_META_L
	0x0E5C: hotkey.ModMeta,  // VC_META_R
}

var uiohookKeys = map[uint16]hotkey.Key{
	0x0001: hotkey.KeyEscape,
	0x000E: hotkey.KeyBackspace,
	0x000F: hotkey.KeyTab,
	0x001C: hotkey.KeyEnter,
	0x0039: hotkey.KeySpace,

	0x0002: hotkey.Key1, 0x0003: hotkey.Key2, 0x0004: hotkey.Key3, 0x0005: hotkey.Key4,
	0x0006: hotkey.Key5, 0x0007: hotkey.Key6, 0x0008: hotkey.Key7, 0x0009: hotkey.Key8,
	0x000A: hotkey.Key9, 0x000B: hotkey.Key0,

	0x0010: hotkey.KeyQ, 0x0011: hotkey.KeyW, 0x0012: hotkey.KeyE, 0x0013: hotkey.KeyR,
	0x0014: hotkey.KeyT, 0x0015: hotkey.KeyY, 0x0016: hotkey.KeyU, 0x0017: hotkey.KeyI,
	0x0018: hotkey.KeyO, 0x0019: hotkey.KeyP,
	0x001E: hotkey.KeyA, 0x001F: hotkey.KeyS, 0x0020: hotkey.KeyD, 0x0021: hotkey.KeyF,
	0x0022: hotkey.KeyG, 0x0023: hotkey.KeyH, 0x0024: hotkey.KeyJ, 0x0025: hotkey.KeyK,
	0x0026: hotkey.KeyL,
	0x002C: hotkey.KeyZ, 0x002D: hotkey.KeyX, 0x002E: hotkey.KeyC, 0x002F: hotkey.KeyV,
	0x0030: hotkey.KeyB, 0x0031: hotkey.KeyN, 0x0032: hotkey.KeyM,

	0x003B: hotkey.KeyF1, 0x003C: hotkey.KeyF2, 0x003D: hotkey.KeyF3, 0x003E: hotkey.KeyF4,
	0x003F: hotkey.KeyF5, 0x0040: hotkey.KeyF6, 0x0041: hotkey.KeyF7, 0x0042: hotkey.KeyF8,
	0x0043: hotkey.KeyF9, 0x0044: hotkey.KeyF10, 0x0057: hotkey.KeyF11, 0x0058: hotkey.KeyF12,

	0x0E52: hotkey.KeyInsert,
	0x0E53: hotkey.KeyDelete,
	0x0E47: hotkey.KeyHome,
	0x0E4F: hotkey.KeyEnd,
	0x0E49: hotkey.KeyPageUp,
	0x0E51: hotkey.KeyPageDown,
	0xE048: hotkey.KeyUp,
	0xE04B: hotkey.KeyLeft,
	0xE04D: hotkey.KeyRight,
	0xE050: hotkey.KeyDown,
}

func translateUiohook(code uint16, down bool) Event {
	return Event{
		Key:      uiohookKeys[code],
		Modifier: uiohookModifiers[code],
		Down:     down,
		Code:     uint32(code),
	}
}
