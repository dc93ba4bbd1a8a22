//go:build linux

package caret

import (
	"context"
	"errors"
	"os"
	"strconv"
	"testing"
)

func TestX11Locator(t *testing.T) {
	l := x11Locator{run: func(_ context.Context, args ...string) (string, error) {
		switch args[0] {
		case "getmouselocation":
			return "X=100\nY=200\nSCREEN=0\n", nil
		case "getactivewindow":
			return strconv.Itoa(os.Getpid()) + "\n", nil
		}
		return "", errors.New("unexpected")
	}}

	if got := l.CaretPosition(); got != (Point{100, 200}) {
		t.Errorf("CaretPosition() = %v, want {100 200}", got)
	}
	if !l.IsOwnProcessForeground() {
		t.Error("IsOwnProcessForeground() = false, want true")
	}
}

func TestX11LocatorDegrades(t *testing.T) {
	l := x11Locator{run: func(context.Context, ...string) (string, error) {
		return "", errors.New("xdotool: not found")
	}}

	if got := l.CaretPosition(); got != (Point{}) {
		t.Errorf("CaretPosition() = %v, want origin", got)
	}
	if l.IsOwnProcessForeground() {
		t.Error("IsOwnProcessForeground() = true without xdotool")
	}
}
