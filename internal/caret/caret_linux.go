//go:build linux

package caret

import (
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// xdotoolTimeout bounds every helper invocation.
const xdotoolTimeout = 200 * time.Millisecond

// x11Locator has no caret API to query; it reports the pointer position.
type x11Locator struct {
	run func(ctx context.Context, args ...string) (string, error)
}

// NewLocator returns the X11 locator.
func NewLocator() Locator {
	return x11Locator{run: runXdotool}
}

func runXdotool(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "xdotool", args...).Output()
	return string(out), err
}

func (l x11Locator) ScreenSize() Size {
	return primaryScreen()
}

func (l x11Locator) CaretPosition() Point {
	ctx, cancel := context.WithTimeout(context.Background(), xdotoolTimeout)
	defer cancel()
	out, err := l.run(ctx, "getmouselocation", "--shell")
	if err != nil {
		return Point{}
	}
	p, _ := parseMouseLocation(out)
	return p
}

func (l x11Locator) IsOwnProcessForeground() bool {
	ctx, cancel := context.WithTimeout(context.Background(), xdotoolTimeout)
	defer cancel()
	out, err := l.run(ctx, "getactivewindow", "getwindowpid")
	if err != nil {
		return false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(out))
	return err == nil && pid == os.Getpid()
}
