package ui

import (
	"errors"
	"runtime"
	"sync"

	"github.com/TanaroSch/nanokey/internal/logging"
	"github.com/ncruces/zenity"
	"go.uber.org/zap"
)

// privacySettings is the OS page where keyboard monitoring is granted.
var privacySettings = map[string]string{
	"darwin": "x-apple.systempreferences:com.apple.preference.security?Privacy_ListenEvent",
}

// FaultAlert tells the user, once per process, that keyboard monitoring
// could not be installed.
type FaultAlert struct {
	appName string
	once    sync.Once

	// Replaced in tests.
	question func(text string, opts ...zenity.Option) error
	warning  func(text string, opts ...zenity.Option) error
	open     func(target string) error
}

// NewFaultAlert returns an alert titled with appName.
func NewFaultAlert(appName string) *FaultAlert {
	return &FaultAlert{
		appName:  appName,
		question: zenity.Question,
		warning:  zenity.Warning,
		open:     OpenInDefaultApp,
	}
}

// Show displays the fault. Calls after the first are ignored.
func (a *FaultAlert) Show(fault string) {
	a.once.Do(func() { a.show(fault) })
}

func (a *FaultAlert) show(fault string) {
	log := logging.For("ui")
	text := "Keyboard monitoring is unavailable, so hotkey recording falls back to polling and paste detection is off.\n\n" + fault

	settings := privacySettings[runtime.GOOS]
	if settings == "" {
		if err := a.warning(text, zenity.Title(a.appName), zenity.WarningIcon); err != nil {
			log.Warn("failed to show monitor fault dialog", zap.Error(err))
		}
		return
	}

	err := a.question(text+"\n\nOpen the privacy settings now?",
		zenity.Title(a.appName),
		zenity.WarningIcon,
		zenity.OKLabel("Open Settings"),
		zenity.CancelLabel("Later"),
	)
	switch {
	case errors.Is(err, zenity.ErrCanceled):
		log.Info("user postponed granting keyboard monitoring")
	case err != nil:
		log.Warn("failed to show monitor fault dialog", zap.Error(err))
	default:
		if err := a.open(settings); err != nil {
			log.Warn("failed to open privacy settings", zap.Error(err))
		}
	}
}
