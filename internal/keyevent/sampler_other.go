//go:build !windows

package keyevent

// NewSampler returns nil: only Windows exposes global key state without
// the permissions the event source already needs.
func NewSampler() Sampler { return nil }
