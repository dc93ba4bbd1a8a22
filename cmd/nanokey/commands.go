package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/TanaroSch/nanokey/internal/capture"
	"github.com/TanaroSch/nanokey/internal/hotkey"
	"github.com/TanaroSch/nanokey/internal/ui"
	"github.com/spf13/cobra"
)

var (
	flagSave          bool
	flagRecordTimeout time.Duration
	flagEdit          bool
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a new hotkey from the keyboard",
	Long: `Hold one or more modifiers and press a key to record a hotkey.
Press Escape to cancel. Tab is ignored so focus can still move.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		sys := newSubsystem(cfg)
		defer sys.Close()

		if err := sys.Start(cfg.Hotkey); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}

		sys.StartCapture()
		fmt.Fprintln(cmd.OutOrStdout(), "Press the new hotkey (Escape cancels)...")

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt)
		defer signal.Stop(sigs)

		var deadline <-chan time.Time
		if flagRecordTimeout > 0 {
			deadline = time.After(flagRecordTimeout)
		}
		ticker := time.NewTicker(cfg.PollInterval())
		defer ticker.Stop()

		var out capture.Outcome
	wait:
		for {
			select {
			case <-ticker.C:
				if o, ok := sys.PollCaptureResult(); ok {
					out = o
					break wait
				}
			case <-deadline:
				sys.StopCapture()
				return errors.New("no hotkey recorded before timeout")
			case <-sigs:
				sys.StopCapture()
				return errors.New("interrupted")
			}
		}

		if out.Kind != capture.Captured {
			fmt.Fprintln(cmd.OutOrStdout(), "Recording cancelled.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.Mnemonic)
		if !flagSave {
			return nil
		}

		if err := sys.ApplyCaptured(out); err != nil {
			return fmt.Errorf("failed to register '%s': %w", out.Mnemonic, err)
		}
		cfg.Hotkey = sys.ActiveMnemonic()
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to %s\n", cfg.Hotkey, cfg.GetConfigPath())
		return nil
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse <hotkey>...",
	Short: "Validate hotkey mnemonics and print their canonical form",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, arg := range args {
			canonical, err := hotkey.Canonical(arg)
			if err != nil {
				failed++
				var pe *hotkey.ParseError
				if errors.As(err, &pe) {
					fmt.Fprintf(cmd.OutOrStdout(), "%q\t%s\t%v\n", arg, pe.Kind, err)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%q\t%v\n", arg, err)
				}
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%q\t%s\n", arg, canonical)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d hotkeys rejected", failed, len(args))
		}
		return nil
	},
}

var caretCmd = &cobra.Command{
	Use:   "caret",
	Short: "Print the screen size, caret position and popup placement",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		sys := newSubsystem(cfg)
		defer sys.Close()

		screen := sys.ScreenSize()
		pos := sys.CaretPosition()
		at := sys.PlacePopup(pos, popupSize)
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "screen:     %dx%d\n", screen.W, screen.H)
		fmt.Fprintf(w, "caret:      %d,%d\n", pos.X, pos.Y)
		fmt.Fprintf(w, "popup:      %d,%d\n", at.X, at.Y)
		fmt.Fprintf(w, "foreground: %t\n", sys.IsOwnProcessForeground())
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cfg.GetConfigPath())
		if flagEdit {
			return ui.OpenInDefaultApp(cfg.GetConfigPath())
		}
		return nil
	},
}
