//go:build !windows && !linux && !(darwin && cgo)

package caret

type fallbackLocator struct{}

// NewLocator returns a locator with fixed answers.
func NewLocator() Locator { return fallbackLocator{} }

func (fallbackLocator) ScreenSize() Size {
	return Size{W: FallbackWidth, H: FallbackHeight}
}

func (fallbackLocator) CaretPosition() Point { return Point{} }

func (fallbackLocator) IsOwnProcessForeground() bool { return false }
