// Package caret resolves where on screen the user is typing, and places
// feedback popups near that point.
package caret

import (
	"strconv"
	"strings"
)

// Fallbacks used when the platform offers no display API.
const (
	FallbackWidth  = 1920
	FallbackHeight = 1080
)

// Point is a screen coordinate in pixels.
type Point struct {
	X, Y int
}

// Size is a width and height in pixels.
type Size struct {
	W, H int
}

// Locator answers caret and foreground queries. Implementations never
// fail; they degrade to the pointer position and then to the origin.
type Locator interface {
	ScreenSize() Size
	CaretPosition() Point
	IsOwnProcessForeground() bool
}

// Placement holds the popup offsets relative to the cursor.
type Placement struct {
	// Gap between the popup's bottom edge and the cursor when placed above.
	Gap int
	// BelowOffset from the cursor to the popup's top edge when placed below.
	BelowOffset int
}

// DefaultPlacement places popups 10px above or 20px below the cursor.
var DefaultPlacement = Placement{Gap: 10, BelowOffset: 20}

// PlacePopup returns the top-left corner for a popup of size popup near
// cursor. The box is centered horizontally, placed above the cursor when it
// fits and below otherwise, then clamped inside screen.
func PlacePopup(cursor Point, popup, screen Size, pl Placement) Point {
	x := cursor.X - popup.W/2
	if x+popup.W > screen.W {
		x = screen.W - popup.W
	}
	if x < 0 {
		x = 0
	}

	y := cursor.Y - popup.H - pl.Gap
	if y < 0 {
		y = cursor.Y + pl.BelowOffset
	}
	if y+popup.H > screen.H {
		y = screen.H - popup.H
	}
	if y < 0 {
		y = 0
	}
	return Point{X: x, Y: y}
}

// parseMouseLocation reads `xdotool getmouselocation --shell` output.
func parseMouseLocation(out string) (Point, bool) {
	var (
		p            Point
		haveX, haveY bool
	)
	for _, line := range strings.Split(out, "\n") {
		k, v, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		switch k {
		case "X":
			p.X, haveX = n, true
		case "Y":
			p.Y, haveY = n, true
		}
	}
	return p, haveX && haveY
}
