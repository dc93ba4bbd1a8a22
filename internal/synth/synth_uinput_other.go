//go:build !windows && !linux

package synth

var deviceMethods []method
