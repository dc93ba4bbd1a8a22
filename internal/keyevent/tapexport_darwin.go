//go:build darwin && cgo

package keyevent

/*
#include <stdint.h>
*/
import "C"

import "runtime/cgo"

//export nanokeyTapEvent
func nanokeyTapEvent(handle C.uintptr_t, eventType C.int, keycode C.int, flags C.ulonglong) {
	s, ok := cgo.Handle(handle).Value().(*tapSource)
	if !ok || s.forward == nil {
		return
	}
	if ev, ok := translateMac(uint16(keycode), uint32(eventType), uint64(flags)); ok {
		s.forward(ev)
	}
}
