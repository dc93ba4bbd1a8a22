package main

import (
	"fmt"
	"os"

	"github.com/TanaroSch/nanokey/internal/config"
	"github.com/TanaroSch/nanokey/internal/logging"
	"github.com/spf13/cobra"
	"golang.design/x/hotkey/mainthread"
)

var version = "v0.3.0"

var flagConfig string

func main() {
	// Hotkey registration must happen on the main thread on macOS.
	exitCode := 0
	mainthread.Init(func() {
		if err := rootCmd.Execute(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = 1
		}
	})
	logging.Close()
	os.Exit(exitCode)
}

var rootCmd = &cobra.Command{
	Use:   "nanokey",
	Short: "Global hotkey and caret helper",
	Long: `nanokey registers a global hotkey, watches the keyboard for paste
chords and reports where a popup should be placed near the text caret.

Examples:
  nanokey run                    # Register the configured hotkey and wait
  nanokey record --save          # Record a new hotkey and store it
  nanokey parse "ctrl+shift+k"   # Print the canonical form
  nanokey caret                  # Print caret position and screen size`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	defaultPath, err := config.DefaultPath()
	if err != nil {
		defaultPath = "config.json"
	}
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", defaultPath, "Path to the configuration file (.json or .toml)")

	recordCmd.Flags().BoolVar(&flagSave, "save", false, "Register the recorded hotkey and write it to the configuration")
	recordCmd.Flags().DurationVar(&flagRecordTimeout, "timeout", 0, "Give up after this long (0 waits forever)")
	configCmd.Flags().BoolVar(&flagEdit, "edit", false, "Open the configuration file in the default editor")

	rootCmd.AddCommand(runCmd, recordCmd, parseCmd, caretCmd, configCmd)
}

// loadConfig reads the configuration and starts logging from it.
func loadConfig() (*config.Config, error) {
	if err := logging.Init(logging.Options{}); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logging.Init(logging.Options{
		Debug:     cfg.Debug,
		TraceFile: cfg.TraceLogPath(),
		Trace:     cfg.HotkeyLogEnabled,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return cfg, nil
}
