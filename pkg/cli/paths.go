package cli

import (
	"os"
	"path/filepath"
)

// Paths provides access to the murmur directory structure under the user's
// home directory.
type Paths struct {
	// HomeDir is the user's home directory.
	HomeDir string
}

// NewPaths creates a Paths instance rooted at the user's home directory.
func NewPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Paths{HomeDir: home}, nil
}

// BaseDir returns the base murmur directory (~/.murmur).
func (p *Paths) BaseDir() string {
	return filepath.Join(p.HomeDir, DefaultBaseDir)
}

// ConfigFile returns the settings file path (~/.murmur/config.yaml).
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.BaseDir(), DefaultConfigFile)
}

// DataDir returns the recordings database directory (~/.murmur/data).
func (p *Paths) DataDir() string {
	return filepath.Join(p.BaseDir(), "data")
}

// ModelDir returns the model directory (~/.murmur/models).
func (p *Paths) ModelDir() string {
	return filepath.Join(p.BaseDir(), "models")
}

// LogDir returns the log directory (~/.murmur/logs).
func (p *Paths) LogDir() string {
	return filepath.Join(p.BaseDir(), "logs")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (p *Paths) EnsureDataDir() error {
	return os.MkdirAll(p.DataDir(), 0755)
}

// EnsureLogDir creates the log directory if it doesn't exist.
func (p *Paths) EnsureLogDir() error {
	return os.MkdirAll(p.LogDir(), 0755)
}

// DataPath returns a path within the data directory.
func (p *Paths) DataPath(name string) string {
	return filepath.Join(p.DataDir(), name)
}

// ModelPath returns a path within the model directory.
func (p *Paths) ModelPath(name string) string {
	return filepath.Join(p.ModelDir(), name)
}

// LogPath returns a path within the log directory.
func (p *Paths) LogPath(name string) string {
	return filepath.Join(p.LogDir(), name)
}
