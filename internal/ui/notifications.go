package ui

import (
	"github.com/TanaroSch/nanokey/internal/logging"
	"go.uber.org/zap"
)

// NotificationManager handles showing notifications across platforms
type NotificationManager struct {
	useNotifications bool
	appName          string
	iconPath         string
	log              *zap.Logger
}

// NewNotificationManager creates a new notification manager. iconPath may
// be empty.
func NewNotificationManager(useNotifications bool, appName, iconPath string) *NotificationManager {
	return &NotificationManager{
		useNotifications: useNotifications,
		appName:          appName,
		iconPath:         iconPath,
		log:              logging.For("ui"),
	}
}

// SetEnabled switches notifications on or off.
func (n *NotificationManager) SetEnabled(enabled bool) {
	n.useNotifications = enabled
}

// ShowNotification displays a desktop notification if enabled
func (n *NotificationManager) ShowNotification(title, message string) {
	if !n.useNotifications {
		n.log.Debug("notification suppressed", zap.String("title", title), zap.String("message", message))
		return
	}
	if err := n.platformNotify(title, message); err != nil {
		n.log.Warn("error showing notification", zap.String("title", title), zap.Error(err))
		return
	}
	n.log.Debug("notification sent", zap.String("title", title))
}
