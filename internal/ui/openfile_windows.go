//go:build windows

package ui

import (
	"github.com/TanaroSch/nanokey/internal/logging"
	"go.uber.org/zap"
)

// OpenInDefaultApp opens a file or URL with its registered handler.
func OpenInDefaultApp(target string) error {
	err := ShellExecute(0, "open", target, "", "", swShowNormal)
	if err != nil {
		logging.For("ui").Warn("ShellExecuteW failed", zap.String("target", target), zap.Error(err))
	}
	return err
}
