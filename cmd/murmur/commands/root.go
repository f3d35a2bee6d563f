package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/murmurapp/murmur/pkg/cli"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Global settings (loaded at init time)
	globalSettings *cli.Settings
)

var rootCmd = &cobra.Command{
	Use:   "murmur",
	Short: "Offline meeting transcription from the microphone",
	Long: `murmur - offline, on-device audio transcription.

Audio is captured from the default input device, segmented on pauses and
transcribed locally. Nothing leaves the machine; recordings and settings
live under ~/.murmur/.

Examples:
  # Record until Ctrl+C, then transcribe and store the session
  murmur record --name "weekly sync"

  # Browse stored recordings
  murmur list
  murmur show 4fa1
  murmur rename 4fa1 "planning, week 34"`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initSettings)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default ~/.murmur/config.yaml)")
}

// settingsLoadErr stores the error from settings loading for deferred
// reporting, so commands like 'murmur version' still work without a home
// directory.
var settingsLoadErr error

func initSettings() {
	s, err := cli.LoadSettingsFrom(configPath)
	if err != nil {
		settingsLoadErr = err
		return
	}
	globalSettings = s
}

// GetSettings returns the global settings.
func GetSettings() (*cli.Settings, error) {
	if globalSettings == nil {
		if settingsLoadErr != nil {
			return nil, fmt.Errorf("settings not available: %w", settingsLoadErr)
		}
		s, err := cli.LoadSettingsFrom(configPath)
		if err != nil {
			return nil, fmt.Errorf("settings not available: %w", err)
		}
		globalSettings = s
	}
	return globalSettings, nil
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}
