package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/TanaroSch/nanokey/internal/app"
	"github.com/TanaroSch/nanokey/internal/caret"
	"github.com/TanaroSch/nanokey/internal/config"
	"github.com/TanaroSch/nanokey/internal/logging"
	"github.com/TanaroSch/nanokey/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// popupSize is the size reserved for the popup when computing its position.
var popupSize = caret.Size{W: 380, H: 220}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Register the configured hotkey and react to it until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runLoop(cfg)
	},
}

func newSubsystem(cfg *config.Config) *app.Subsystem {
	return app.New(app.Options{
		PollInterval: cfg.PollInterval(),
		Backend:      defaultBackend(),
		Placement: caret.Placement{
			Gap:         cfg.PopupGap,
			BelowOffset: cfg.PopupBelowOffset,
		},
	})
}

func iconPath(cfg *config.Config) string {
	p := filepath.Join(filepath.Dir(cfg.GetConfigPath()), "icon.png")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

func runLoop(cfg *config.Config) error {
	log := logging.For("main")
	notifier := ui.NewNotificationManager(cfg.UseNotifications, config.AppName, iconPath(cfg))
	alert := ui.NewFaultAlert(config.AppName)

	sys := newSubsystem(cfg)
	defer sys.Close()

	if err := sys.Start(cfg.Hotkey); err != nil {
		if !errors.Is(err, app.ErrUsingDefault) {
			return fmt.Errorf("failed to register hotkey '%s': %w", cfg.Hotkey, err)
		}
		log.Warn("using default hotkey", zap.String("configured", cfg.Hotkey), zap.Error(err))
		cfg.Hotkey = sys.ActiveMnemonic()
		if err := cfg.Save(); err != nil {
			log.Error("failed to persist default hotkey", zap.Error(err))
		}
		notifier.ShowNotification(config.AppName,
			fmt.Sprintf("Hotkey unavailable, using %s instead", cfg.Hotkey))
	}
	log.Info("nanokey running", zap.String("version", version), zap.String("hotkey", sys.ActiveMnemonic()))

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	ticker := time.NewTicker(cfg.PollInterval())
	defer ticker.Stop()

	for {
		select {
		case ev := <-sys.Fired():
			if !sys.IsMatch(ev) {
				log.Debug("stale hotkey event ignored", zap.Uint64("id", ev.ID))
				continue
			}
			if sys.IsOwnProcessForeground() {
				continue
			}
			cursor := sys.CaretPosition()
			at := sys.PlacePopup(cursor, popupSize)
			log.Info("hotkey fired",
				zap.String("hotkey", ev.Mnemonic),
				zap.Int("caret_x", cursor.X), zap.Int("caret_y", cursor.Y),
				zap.Int("popup_x", at.X), zap.Int("popup_y", at.Y))
			notifier.ShowNotification(config.AppName, fmt.Sprintf("%s pressed at %d,%d", ev.Mnemonic, cursor.X, cursor.Y))
		case fault := <-sys.MonitorFaults():
			log.Error("keyboard monitor unavailable", zap.String("fault", fault))
			alert.Show(fault)
		case <-ticker.C:
			if sys.PasteDetected() {
				log.Info("paste chord detected")
			}
		case sig := <-sigs:
			log.Info("shutting down", zap.String("signal", sig.String()))
			return nil
		}
	}
}
