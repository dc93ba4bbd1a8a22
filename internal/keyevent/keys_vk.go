package keyevent

import "github.com/TanaroSch/nanokey/internal/hotkey"

// Windows virtual-key codes.
var vkModifiers = map[uint32]hotkey.Modifier{
	0x10: hotkey.ModShift, // VK_SHIFT
	0xA0: hotkey.ModShift, // VK_LSHIFT
	0xA1: hotkey.ModShift, // VK_RSHIFT
	0x11: hotkey.ModCtrl,  // VK_CONTROL
	0xA2: hotkey.ModCtrl,  // VK_LCONTROL
	0xA3: hotkey.ModCtrl,  // VK_RCONTROL
	0x12: hotkey.ModAlt,   // VK_MENU
	0xA4: hotkey.ModAlt,   // VK_LMENU
	0xA5: hotkey.ModAlt,   // VK_RMENU
	0x5B: hotkey.ModMeta,  // VK_LWIN
	0x5C: hotkey.ModMeta,  // VK_RWIN
}

var vkKeys = map[uint32]hotkey.Key{
	0x08: hotkey.KeyBackspace,
	0x09: hotkey.KeyTab,
	0x0D: hotkey.KeyEnter,
	0x1B: hotkey.KeyEscape,
	0x20: hotkey.KeySpace,
	0x21: hotkey.KeyPageUp,
	0x22: hotkey.KeyPageDown,
	0x23: hotkey.KeyEnd,
	0x24: hotkey.KeyHome,
	0x25: hotkey.KeyLeft,
	0x26: hotkey.KeyUp,
	0x27: hotkey.KeyRight,
	0x28: hotkey.KeyDown,
	0x2D: hotkey.KeyInsert,
	0x2E: hotkey.KeyDelete,
}

// keyToVK is the reverse of vkKeys, used by the state sampler.
var keyToVK = map[hotkey.Key]uint32{}

func init() {
	for i := uint32(0); i < 26; i++ {
		vkKeys[0x41+i] = hotkey.KeyA + hotkey.Key(i)
	}
	for i := uint32(0); i < 10; i++ {
		vkKeys[0x30+i] = hotkey.Key0 + hotkey.Key(i)
	}
	for i := uint32(0); i < 12; i++ {
		vkKeys[0x70+i] = hotkey.KeyF1 + hotkey.Key(i)
	}
	for vk, k := range vkKeys {
		keyToVK[k] = vk
	}
}

// translateVK converts a low-level hook record into an Event.
func translateVK(vk, scan uint32, extended, down bool) Event {
	return Event{
		Key:      vkKeys[vk],
		Modifier: vkModifiers[vk],
		Down:     down,
		Code:     vk,
		Scan:     scan,
		Extended: extended,
	}
}
