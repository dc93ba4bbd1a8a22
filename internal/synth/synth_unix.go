//go:build !windows

package synth

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// toolTimeout bounds each helper process.
const toolTimeout = 2 * time.Second

func platformMethods() []method {
	return methodsFor(runtime.GOOS)
}

func methodsFor(goos string) []method {
	if goos == "darwin" {
		return []method{{"osascript", sendWithOsascript}}
	}
	return append([]method{
		{"xdotool", sendWithXdotool},
		{"wtype", sendWithWtype},
	}, deviceMethods...)
}

func runTool(name string, args ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), toolTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// Common on X11.
func sendWithXdotool(c Chord) error {
	return runTool("xdotool", "key", "--delay", fmt.Sprint(KeyDelay.Milliseconds()), "ctrl+"+c.letter())
}

// Common on Wayland.
func sendWithWtype(c Chord) error {
	return runTool("wtype", "-M", "ctrl", "-k", c.letter(), "-m", "ctrl")
}

func sendWithOsascript(c Chord) error {
	script := fmt.Sprintf(`tell application "System Events" to keystroke "%s" using command down`, c.letter())
	return runTool("osascript", "-e", script)
}
