//go:build !windows

package ui

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/TanaroSch/nanokey/internal/logging"
	"go.uber.org/zap"
)

// OpenInDefaultApp opens a file or URL with its registered handler.
func OpenInDefaultApp(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	default:
		// Assume Linux/Unix-like
		cmd = exec.Command("xdg-open", target)
	}

	logging.For("ui").Debug("opening in default app", zap.String("command", cmd.String()))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start command (%s): %w", cmd.String(), err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
