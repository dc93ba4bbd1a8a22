//go:build darwin && cgo

package caret

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework AppKit
#include <ApplicationServices/ApplicationServices.h>
#import <AppKit/AppKit.h>

static void nanokeyPointer(double *x, double *y) {
	CGEventRef ev = CGEventCreate(NULL);
	if (ev == NULL) {
		*x = 0;
		*y = 0;
		return;
	}
	CGPoint p = CGEventGetLocation(ev);
	CFRelease(ev);
	*x = p.x;
	*y = p.y;
}

static int nanokeyFrontmostPID(void) {
	@autoreleasepool {
		NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
		return app ? (int)[app processIdentifier] : -1;
	}
}
*/
import "C"

import "os"

// quartzLocator reports the pointer: reading another application's caret
// needs the Accessibility API and its permission prompt.
type quartzLocator struct{}

// NewLocator returns the macOS locator.
func NewLocator() Locator { return quartzLocator{} }

func (quartzLocator) ScreenSize() Size {
	return primaryScreen()
}

func (quartzLocator) CaretPosition() Point {
	var x, y C.double
	C.nanokeyPointer(&x, &y)
	return Point{X: int(x), Y: int(y)}
}

func (quartzLocator) IsOwnProcessForeground() bool {
	return int(C.nanokeyFrontmostPID()) == os.Getpid()
}
