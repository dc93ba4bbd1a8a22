//go:build !windows

package ui

import "github.com/gen2brain/beeep"

func (n *NotificationManager) platformNotify(title, message string) error {
	return beeep.Notify(title, message, n.iconPath)
}
