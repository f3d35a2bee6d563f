package vad

import (
	"testing"
	"time"
)

const chunkSamples = 1600 // 100 ms at 16 kHz

func loudChunk() []float32 {
	c := make([]float32, chunkSamples)
	for i := range c {
		c[i] = 0.5
	}
	return c
}

func silentChunk() []float32 {
	return make([]float32, chunkSamples)
}

func newTestBatcher(t *testing.T) *Batcher {
	t.Helper()
	return NewBatcher(NewEnergy(Config{}), 2*time.Second)
}

func TestBatcher_DispatchAtThreshold(t *testing.T) {
	b := newTestBatcher(t)

	// 21 chunks of continuous speech with a 2 s minimum: the one
	// automatic dispatch fires on chunk 20 and carries chunks 1-20;
	// chunk 21 stays buffered.
	var batches [][]float32
	for i := 0; i < 21; i++ {
		if batch := b.Push(loudChunk()); batch != nil {
			if i != 19 {
				t.Fatalf("dispatch on chunk %d, want chunk 20", i+1)
			}
			batches = append(batches, batch)
		}
	}

	if len(batches) != 1 {
		t.Fatalf("got %d dispatches, want 1", len(batches))
	}
	if got := len(batches[0]); got != 20*chunkSamples {
		t.Fatalf("batch has %d samples, want %d", got, 20*chunkSamples)
	}
	if got := b.Buffered(); got != 100*time.Millisecond {
		t.Fatalf("buffered = %v, want 100ms", got)
	}
}

func TestBatcher_FlushBelowThreshold(t *testing.T) {
	b := newTestBatcher(t)

	// 1.5 s of speech never reaches the 2 s threshold on its own.
	for i := 0; i < 15; i++ {
		if batch := b.Push(loudChunk()); batch != nil {
			t.Fatalf("unexpected dispatch on chunk %d", i+1)
		}
	}

	batch := b.Flush()
	if got := len(batch); got != 15*chunkSamples {
		t.Fatalf("flush batch has %d samples, want %d", got, 15*chunkSamples)
	}
}

func TestBatcher_DoubleFlush(t *testing.T) {
	b := newTestBatcher(t)

	for i := 0; i < 5; i++ {
		b.Push(loudChunk())
	}
	if batch := b.Flush(); batch == nil {
		t.Fatal("first flush returned nil, want batch")
	}
	if batch := b.Flush(); batch != nil {
		t.Fatalf("second flush returned %d samples, want nil", len(batch))
	}
}

func TestBatcher_SilenceOnly(t *testing.T) {
	b := newTestBatcher(t)

	for i := 0; i < 10; i++ {
		if batch := b.Push(silentChunk()); batch != nil {
			t.Fatalf("dispatch from silence on chunk %d", i+1)
		}
	}
	if batch := b.Flush(); batch != nil {
		t.Fatalf("flush of silence returned %d samples, want nil", len(batch))
	}
}

func TestBatcher_SampleConservation(t *testing.T) {
	b := newTestBatcher(t)

	// Speech, a pause long enough to close the utterance, more speech.
	// Every speech sample must come out in some batch; silence must not.
	var speech int
	push := func(c []float32, isSpeech bool) int {
		if isSpeech {
			speech += len(c)
		}
		return len(b.Push(c))
	}

	var dispatched int
	for i := 0; i < 5; i++ {
		dispatched += push(loudChunk(), true)
	}
	for i := 0; i < 8; i++ {
		dispatched += push(silentChunk(), false)
	}
	for i := 0; i < 3; i++ {
		dispatched += push(loudChunk(), true)
	}
	dispatched += len(b.Flush())

	if dispatched != speech {
		t.Fatalf("dispatched %d samples, speech classified %d", dispatched, speech)
	}
}

func TestBatcher_Reset(t *testing.T) {
	b := newTestBatcher(t)

	for i := 0; i < 10; i++ {
		b.Push(loudChunk())
	}
	b.Reset()

	if got := b.Buffered(); got != 0 {
		t.Fatalf("buffered after reset = %v, want 0", got)
	}
	if batch := b.Flush(); batch != nil {
		t.Fatalf("flush after reset returned %d samples, want nil", len(batch))
	}
}
