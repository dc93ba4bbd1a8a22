package keyevent

import "github.com/TanaroSch/nanokey/internal/hotkey"

// Quartz event types delivered by the event tap.
const (
	cgEventKeyDown      = 10
	cgEventKeyUp        = 11
	cgEventFlagsChanged = 12
)

// Carbon kVK codes for modifier keys and the event flag that tracks each.
var macModifiers = map[uint16]struct {
	mod  hotkey.Modifier
	flag uint64
}{
	0x38: {hotkey.ModShift, 0x20000}, // kVK_Shift
	0x3C: {hotkey.ModShift, 0x20000}, // kVK_RightShift
	0x3B: {hotkey.ModCtrl, 0x40000},  // kVK_Control
	0x3E: {hotkey.ModCtrl, 0x40000},  // kVK_RightControl
	0x3A: {hotkey.ModAlt, 0x80000},   // kVK_Option
	0x3D: {hotkey.ModAlt, 0x80000},   // kVK_RightOption
	0x37: {hotkey.ModMeta, 0x100000}, // kVK_Command
	0x36: {hotkey.ModMeta, 0x100000}, // kVK_RightCommand
}

var macKeys = map[uint16]hotkey.Key{
	0x00: hotkey.KeyA, 0x0B: hotkey.KeyB, 0x08: hotkey.KeyC, 0x02: hotkey.KeyD,
	0x0E: hotkey.KeyE, 0x03: hotkey.KeyF, 0x05: hotkey.KeyG, 0x04: hotkey.KeyH,
	0x22: hotkey.KeyI, 0x26: hotkey.KeyJ, 0x28: hotkey.KeyK, 0x25: hotkey.KeyL,
	0x2E: hotkey.KeyM, 0x2D: hotkey.KeyN, 0x1F: hotkey.KeyO, 0x23: hotkey.KeyP,
	0x0C: hotkey.KeyQ, 0x0F: hotkey.KeyR, 0x01: hotkey.KeyS, 0x11: hotkey.KeyT,
	0x20: hotkey.KeyU, 0x09: hotkey.KeyV, 0x0D: hotkey.KeyW, 0x07: hotkey.KeyX,
	0x10: hotkey.KeyY, 0x06: hotkey.KeyZ,

	0x1D: hotkey.Key0, 0x12: hotkey.Key1, 0x13: hotkey.Key2, 0x14: hotkey.Key3,
	0x15: hotkey.Key4, 0x17: hotkey.Key5, 0x16: hotkey.Key6, 0x1A: hotkey.Key7,
	0x1C: hotkey.Key8, 0x19: hotkey.Key9,

	0x7A: hotkey.KeyF1, 0x78: hotkey.KeyF2, 0x63: hotkey.KeyF3, 0x76: hotkey.KeyF4,
	0x60: hotkey.KeyF5, 0x61: hotkey.KeyF6, 0x62: hotkey.KeyF7, 0x64: hotkey.KeyF8,
	0x65: hotkey.KeyF9, 0x6D: hotkey.KeyF10, 0x67: hotkey.KeyF11, 0x6F: hotkey.KeyF12,

	0x31: hotkey.KeySpace,
	0x24: hotkey.KeyEnter,
	0x30: hotkey.KeyTab,
	0x35: hotkey.KeyEscape,
	0x33: hotkey.KeyBackspace,
	0x75: hotkey.KeyDelete,
	0x72: hotkey.KeyInsert, // Help
	0x73: hotkey.KeyHome,
	0x77: hotkey.KeyEnd,
	0x74: hotkey.KeyPageUp,
	0x79: hotkey.KeyPageDown,
	0x7E: hotkey.KeyUp,
	0x7D: hotkey.KeyDown,
	0x7B: hotkey.KeyLeft,
	0x7C: hotkey.KeyRight,
}

// translateMac converts one event tap callback into an Event. Flag changes
// for keys that are not modifiers (CapsLock, Fn) are dropped.
func translateMac(code uint16, eventType uint32, flags uint64) (Event, bool) {
	switch eventType {
	case cgEventKeyDown, cgEventKeyUp:
		return Event{
			Key:  macKeys[code],
			Down: eventType == cgEventKeyDown,
			Code: uint32(code),
		}, true
	case cgEventFlagsChanged:
		m, ok := macModifiers[code]
		if !ok {
			return Event{}, false
		}
		return Event{
			Modifier: m.mod,
			Down:     flags&m.flag != 0,
			Code:     uint32(code),
		}, true
	default:
		return Event{}, false
	}
}
