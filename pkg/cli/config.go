package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultBaseDir is the base configuration directory name.
	DefaultBaseDir = ".murmur"
	// DefaultConfigFile is the default settings filename.
	DefaultConfigFile = "config.yaml"
)

// Settings holds the persisted murmur configuration. Zero values mean
// "use the built-in default"; command line flags override everything.
type Settings struct {
	// Engine is the name of the registered recognition engine.
	Engine string `yaml:"engine,omitempty"`

	// Model is the path to the recognition model, for engines that load one.
	Model string `yaml:"model,omitempty"`

	// NumThreads caps the decoder's thread count (0 lets the engine choose).
	NumThreads int `yaml:"num_threads,omitempty"`

	// MinBatch is the minimum speech duration per recognition batch,
	// in time.ParseDuration syntax (e.g. "2s").
	MinBatch string `yaml:"min_batch,omitempty"`

	// Normalize enables the language-specific text normalization stage.
	Normalize bool `yaml:"normalize,omitempty"`

	// InputRate is the capture device sample rate in Hz. Rates other than
	// 16000 are resampled to the pipeline format.
	InputRate int `yaml:"input_rate,omitempty"`

	// MonitorAddr, when set, serves the live state feed on this address
	// while recording (e.g. "localhost:8090").
	MonitorAddr string `yaml:"monitor_addr,omitempty"`

	// DataDir overrides the default recordings database location.
	DataDir string `yaml:"data_dir,omitempty"`

	// configPath is the path the settings were loaded from.
	configPath string
}

// LoadSettings loads or creates the settings file at the default location.
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom("")
}

// LoadSettingsFrom loads settings from a custom path. An empty path uses
// ~/.murmur/config.yaml. A missing file is created empty.
func LoadSettingsFrom(customPath string) (*Settings, error) {
	configPath := customPath
	if configPath == "" {
		paths, err := NewPaths()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = paths.ConfigFile()
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	s := &Settings{configPath: configPath}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return s, s.Save()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	s.configPath = configPath
	return s, nil
}

// Save writes the settings to disk.
func (s *Settings) Save() error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(s.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Path returns the settings file path.
func (s *Settings) Path() string {
	return s.configPath
}

// Dir returns the settings directory path.
func (s *Settings) Dir() string {
	return filepath.Dir(s.configPath)
}

// MinBatchDuration parses the MinBatch setting. An empty setting returns
// zero, which callers treat as "use the pipeline default".
func (s *Settings) MinBatchDuration() (time.Duration, error) {
	if s.MinBatch == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.MinBatch)
	if err != nil {
		return 0, fmt.Errorf("invalid min_batch %q: %w", s.MinBatch, err)
	}
	return d, nil
}
