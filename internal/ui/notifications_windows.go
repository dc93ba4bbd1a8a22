//go:build windows

package ui

import (
	"errors"
	"strings"

	"github.com/go-toast/toast"
)

func (n *NotificationManager) platformNotify(title, message string) error {
	notification := toast.Notification{
		AppID:   n.appName,
		Title:   title,
		Message: message,
		Icon:    n.iconPath,
	}

	err := notification.Push()
	if err != nil && strings.Contains(err.Error(), "notification platform is unavailable") {
		return errors.New("toast platform unavailable (notifications may be disabled in Windows Settings)")
	}
	return err
}
