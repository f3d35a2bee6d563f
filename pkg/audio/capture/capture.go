// Package capture implements the microphone capture engine.
//
// An Engine owns an exclusive audio input Device and turns its sample stream
// into fixed-duration chunks of normalized float32 samples, each paired with
// a waveform summary for live feedback. Chunks are produced in strict
// temporal order at the canonical pipeline format (16 kHz mono).
package capture

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/murmurapp/murmur/pkg/audio/pcm"
)

const (
	// Format is the canonical capture format.
	Format = pcm.L16Mono16K

	// ChunkDuration is the nominal duration of one chunk.
	ChunkDuration = 100 * time.Millisecond

	// ChunkSamples is the number of samples per chunk (1600 at 16 kHz).
	ChunkSamples = 1600
)

// Sentinel errors.
var (
	// ErrNotRunning is returned by Read when the engine is not started.
	ErrNotRunning = errors.New("capture: not running")
)

// Device is an exclusive audio input handle delivering 16-bit mono samples
// at the canonical rate. Read blocks until len(buf) samples are available or
// the device fails; Close releases the device and unblocks a pending Read.
type Device interface {
	Read(buf []int16) (int, error)
	Close() error
}

// OpenDeviceFunc opens the audio input device for one session.
type OpenDeviceFunc func() (Device, error)

// Chunk is one fixed-duration unit of captured audio. Samples are normalized
// to [-1, 1]. The slice is owned by the receiver; the engine never reuses it.
type Chunk struct {
	Samples []float32
	Summary Waveform
}

// Duration returns the chunk duration at the canonical rate.
func (c Chunk) Duration() time.Duration {
	return Format.Duration(int64(len(c.Samples)))
}

// Engine captures audio from a Device one chunk at a time.
//
// The scratch read buffer is allocated once per session: the capture path
// runs at a ~100 ms cadence and must not churn allocations. Each chunk's
// float32 slice is allocated fresh because ownership transfers downstream.
type Engine struct {
	open OpenDeviceFunc
	log  *slog.Logger

	mu      sync.Mutex
	dev     Device
	scratch []int16
}

// New creates an Engine that opens its device with open. The logger may be
// nil, in which case slog.Default is used.
func New(open OpenDeviceFunc, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		open: open,
		log:  log.With("component", "capture"),
	}
}

// Start opens the input device and prepares the per-session buffers.
// It fails if the device cannot be opened or the engine is already running.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dev != nil {
		return errors.New("capture: already running")
	}
	dev, err := e.open()
	if err != nil {
		return fmt.Errorf("capture: open device: %w", err)
	}
	e.dev = dev
	if e.scratch == nil {
		e.scratch = make([]int16, ChunkSamples)
	}
	e.log.Debug("device opened")
	return nil
}

// Read blocks until one chunk of audio has been captured and returns it with
// its waveform summary, computed in the same pass over the samples. A device
// error (including the device being closed by Stop) ends the sequence.
func (e *Engine) Read() (Chunk, error) {
	e.mu.Lock()
	dev := e.dev
	scratch := e.scratch
	e.mu.Unlock()
	if dev == nil {
		return Chunk{}, ErrNotRunning
	}

	n, err := dev.Read(scratch)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Chunk{}, io.EOF
		}
		return Chunk{}, fmt.Errorf("capture: device read: %w", err)
	}
	if n == 0 {
		return Chunk{}, io.EOF
	}

	samples := pcm.AppendFloats(make([]float32, 0, n), scratch[:n])
	return Chunk{
		Samples: samples,
		Summary: Summarize(samples),
	}, nil
}

// Stop closes the device and halts capture. It is idempotent and safe to
// call while a Read is blocked; the pending Read returns an error.
func (e *Engine) Stop() error {
	e.mu.Lock()
	dev := e.dev
	e.dev = nil
	e.mu.Unlock()
	if dev == nil {
		return nil
	}
	e.log.Debug("device closed")
	return dev.Close()
}
