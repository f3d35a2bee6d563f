package vad

import (
	"sync"
	"time"
)

// DefaultMinBatch is the default minimum batch duration. Smaller batches feel
// more live but make the recognizer hallucinate on fragments.
const DefaultMinBatch = 2 * time.Second

// Batcher accumulates the speech segments an Engine completes until they add
// up to a minimum duration, then hands them off as one dispatch unit. All
// detector and buffer state is guarded by a single mutex; the engine is never
// touched except under it.
type Batcher struct {
	mu     sync.Mutex
	engine Engine
	min    int
	buf    []float32
}

// NewBatcher wraps engine with a minimum batch duration. A zero minBatch
// takes DefaultMinBatch.
func NewBatcher(engine Engine, minBatch time.Duration) *Batcher {
	if minBatch == 0 {
		minBatch = DefaultMinBatch
	}
	return &Batcher{engine: engine, min: samplesIn(minBatch)}
}

// Push feeds one chunk of samples through the detector and returns a batch
// when the accumulated speech reaches the minimum duration, nil otherwise.
// The returned slice is detached; the Batcher never touches it again.
func (b *Batcher) Push(samples []float32) []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.engine.AcceptWaveform(samples)
	b.drain()

	if len(b.buf) >= b.min {
		batch := b.buf
		b.buf = nil
		return batch
	}
	return nil
}

// Flush finalizes the detector and returns whatever speech remains as a
// final batch, even below the minimum duration. Returns nil when there is
// nothing buffered; calling Flush again without intervening audio is a no-op.
func (b *Batcher) Flush() []float32 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.engine.Flush()
	b.drain()

	if len(b.buf) == 0 {
		return nil
	}
	batch := b.buf
	b.buf = nil
	return batch
}

// Reset discards buffered speech and all detector state. Called when a new
// session starts.
func (b *Batcher) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.engine.Clear()
	b.buf = nil
}

// Buffered returns the duration of speech accumulated below the threshold.
func (b *Batcher) Buffered() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return time.Duration(len(b.buf)) * time.Second / SampleRate
}

// drain moves every completed segment out of the engine. Caller holds b.mu.
func (b *Batcher) drain() {
	for !b.engine.Empty() {
		b.buf = append(b.buf, b.engine.Front().Samples...)
		b.engine.Pop()
	}
}
