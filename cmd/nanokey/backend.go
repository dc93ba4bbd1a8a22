//go:build !nox11

package main

import (
	"github.com/TanaroSch/nanokey/internal/hotkey"
	"github.com/TanaroSch/nanokey/internal/hotkey/legacy"
)

func defaultBackend() hotkey.Backend {
	return legacy.Default()
}
