//go:build windows

package keyevent

import "github.com/TanaroSch/nanokey/internal/hotkey"

// Generic modifier virtual keys; GetAsyncKeyState folds left and right.
var vkSampleModifiers = [...]struct {
	vk  uintptr
	mod hotkey.Modifier
}{
	{0x11, hotkey.ModCtrl},
	{0x12, hotkey.ModAlt},
	{0x10, hotkey.ModShift},
	{0x5B, hotkey.ModMeta},
	{0x5C, hotkey.ModMeta},
}

type asyncKeySampler struct{}

// NewSampler returns a GetAsyncKeyState sampler.
func NewSampler() Sampler { return asyncKeySampler{} }

func (asyncKeySampler) Sample() Snapshot {
	var snap Snapshot
	for _, m := range vkSampleModifiers {
		if keyHeld(m.vk) {
			snap.Mods = snap.Mods.With(m.mod)
		}
	}
	for _, k := range hotkey.Keys() {
		if vk, ok := keyToVK[k]; ok && keyHeld(uintptr(vk)) {
			snap.Keys = append(snap.Keys, k)
		}
	}
	return snap
}

func keyHeld(vk uintptr) bool {
	r, _, _ := procGetAsyncKeyState.Call(vk)
	return r&0x8000 != 0
}
