//go:build !windows

package keyevent

func platformKeyName(Event) string { return "" }
