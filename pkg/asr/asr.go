// Package asr wraps offline speech recognition engines behind a narrow
// stream contract and routes engine construction through a registry, so the
// pipeline stays independent of any one model runtime.
package asr

import (
	"fmt"
	"sync"
)

// Engine is an offline recognition engine handle. One engine serves many
// streams over its lifetime; Close releases the underlying model.
type Engine interface {
	NewStream() (Stream, error)
	Close() error
}

// Stream is a single decode pass: feed samples, decode, read the result,
// release. Streams are single-use.
type Stream interface {
	// AcceptWaveform feeds normalized mono samples at the given rate.
	AcceptWaveform(sampleRate int, samples []float32) error

	// Decode runs inference over everything accepted so far. This is the
	// expensive call.
	Decode() error

	// Result returns the recognized text, possibly empty.
	Result() string

	// Close releases the stream.
	Close() error
}

// Config carries engine construction parameters.
type Config struct {
	// Model is the path to the model directory or file.
	Model string `yaml:"model"`

	// NumThreads bounds inference parallelism. Zero lets the engine pick.
	NumThreads int `yaml:"num_threads"`
}

// Factory constructs an Engine from a config.
type Factory func(cfg Config) (Engine, error)

// Mux routes engine construction to the factory registered under a name.
type Mux struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewMux creates an empty engine registry.
func NewMux() *Mux {
	return &Mux{factories: make(map[string]Factory)}
}

// Handle registers a factory under name. Registering the same name twice is
// an error.
func (m *Mux) Handle(name string, f Factory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.factories[name]; ok {
		return fmt.Errorf("asr: engine %q already registered", name)
	}
	m.factories[name] = f
	return nil
}

// Open constructs the engine registered under name.
func (m *Mux) Open(name string, cfg Config) (Engine, error) {
	m.mu.RLock()
	f, ok := m.factories[name]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("asr: engine not found for %q", name)
	}
	return f(cfg)
}

// Names returns the registered engine names.
func (m *Mux) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.factories))
	for name := range m.factories {
		names = append(names, name)
	}
	return names
}

// DefaultMux is the registry package-level helpers operate on.
var DefaultMux = NewMux()

// Handle registers a factory with the default mux.
func Handle(name string, f Factory) error {
	return DefaultMux.Handle(name, f)
}

// Open constructs an engine through the default mux.
func Open(name string, cfg Config) (Engine, error) {
	return DefaultMux.Open(name, cfg)
}
