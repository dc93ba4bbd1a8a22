//go:build darwin && cgo

package keyevent

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation
#include <ApplicationServices/ApplicationServices.h>
#include <stdint.h>

extern void nanokeyTapEvent(uintptr_t handle, int type, int keycode, unsigned long long flags);

static CFMachPortRef nanokeyTap;

static CGEventRef nanokeyTapCallback(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *refcon) {
	if (type == kCGEventTapDisabledByTimeout || type == kCGEventTapDisabledByUserInput) {
		if (nanokeyTap != NULL) {
			CGEventTapEnable(nanokeyTap, true);
		}
		return event;
	}
	int keycode = (int)CGEventGetIntegerValueField(event, kCGKeyboardEventKeycode);
	nanokeyTapEvent((uintptr_t)refcon, (int)type, keycode, (unsigned long long)CGEventGetFlags(event));
	return event;
}

static int nanokeyInstallTap(uintptr_t handle) {
	CGEventMask mask = CGEventMaskBit(kCGEventKeyDown) |
		CGEventMaskBit(kCGEventKeyUp) |
		CGEventMaskBit(kCGEventFlagsChanged);
	nanokeyTap = CGEventTapCreate(kCGSessionEventTap, kCGHeadInsertEventTap,
		kCGEventTapOptionListenOnly, mask, nanokeyTapCallback, (void *)handle);
	if (nanokeyTap == NULL) {
		return 0;
	}
	CFRunLoopSourceRef source = CFMachPortCreateRunLoopSource(kCFAllocatorDefault, nanokeyTap, 0);
	CFRunLoopAddSource(CFRunLoopGetCurrent(), source, kCFRunLoopCommonModes);
	CFRelease(source);
	CGEventTapEnable(nanokeyTap, true);
	return 1;
}

static void nanokeyRunLoop(void) {
	CFRunLoopRun();
}
*/
import "C"

import (
	"fmt"
	"runtime"
	"runtime/cgo"
)

// tapSource is a listen-only Quartz event tap serviced by a CFRunLoop on a
// locked OS thread.
type tapSource struct {
	forward func(Event)
}

// NewSource returns the interception mechanism for this platform.
func NewSource() Source { return &tapSource{} }

func (s *tapSource) Name() string { return "Quartz event tap" }

func (s *tapSource) Run(forward func(Event)) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	s.forward = forward
	h := cgo.NewHandle(s)
	defer h.Delete()

	// A NULL tap means the process lacks Input Monitoring / Accessibility access.
	if C.nanokeyInstallTap(C.uintptr_t(h)) == 0 {
		return fmt.Errorf("%w: CGEventTapCreate refused; grant Input Monitoring and Accessibility access", ErrMonitorUnavailable)
	}
	C.nanokeyRunLoop()
	return nil
}
