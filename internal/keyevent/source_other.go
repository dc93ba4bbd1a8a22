//go:build !windows && !(darwin && cgo) && !(linux && cgo)

package keyevent

import (
	"fmt"
	"runtime"
)

type unsupportedSource struct{}

// NewSource returns a source that always fails: this build has no
// interception mechanism.
func NewSource() Source { return unsupportedSource{} }

func (unsupportedSource) Name() string { return "unsupported" }

func (unsupportedSource) Run(func(Event)) error {
	return fmt.Errorf("%w: no key event source for %s (cgo disabled or unsupported OS)", ErrMonitorUnavailable, runtime.GOOS)
}
