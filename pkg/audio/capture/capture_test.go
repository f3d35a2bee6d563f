package capture

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
)

// fakeDevice yields a fixed sequence of samples, then EOF.
type fakeDevice struct {
	samples []int16
	pos     int
	closed  bool
}

func (d *fakeDevice) Read(buf []int16) (int, error) {
	if d.closed || d.pos >= len(d.samples) {
		return 0, io.EOF
	}
	n := copy(buf, d.samples[d.pos:])
	d.pos += n
	return n, nil
}

func (d *fakeDevice) Close() error {
	d.closed = true
	return nil
}

func TestEngine_ReadChunks(t *testing.T) {
	// Two full chunks plus a half chunk tail.
	total := ChunkSamples*2 + ChunkSamples/2
	dev := &fakeDevice{samples: make([]int16, total)}
	for i := range dev.samples {
		dev.samples[i] = 16384 // 0.5 after normalization
	}

	e := New(func() (Device, error) { return dev, nil }, nil)
	if err := e.Start(); err != nil {
		t.Fatalf("Start error: %v", err)
	}

	var chunks []Chunk
	for {
		c, err := e.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("Read error: %v", err)
		}
		chunks = append(chunks, c)
	}

	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if len(chunks[0].Samples) != ChunkSamples {
		t.Fatalf("chunk 0 has %d samples, want %d", len(chunks[0].Samples), ChunkSamples)
	}
	if len(chunks[2].Samples) != ChunkSamples/2 {
		t.Fatalf("tail chunk has %d samples, want %d", len(chunks[2].Samples), ChunkSamples/2)
	}
	if got := chunks[0].Samples[0]; got != 0.5 {
		t.Fatalf("sample = %v, want 0.5", got)
	}

	if err := e.Stop(); err != nil {
		t.Fatalf("Stop error: %v", err)
	}
	// Stop is idempotent.
	if err := e.Stop(); err != nil {
		t.Fatalf("second Stop error: %v", err)
	}
}

func TestEngine_OpenFailure(t *testing.T) {
	wantErr := errors.New("device busy")
	e := New(func() (Device, error) { return nil, wantErr }, nil)
	if err := e.Start(); !errors.Is(err, wantErr) {
		t.Fatalf("Start error = %v, want wrapped %v", err, wantErr)
	}
	if _, err := e.Read(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("Read error = %v, want ErrNotRunning", err)
	}
}

func TestSummarize(t *testing.T) {
	samples := make([]float32, ChunkSamples)
	for i := range samples {
		samples[i] = 0.2
	}
	// One loud sample in the last bucket.
	samples[len(samples)-1] = 0.9

	w := Summarize(samples)

	if math.Abs(float64(w.Mean)-0.2) > 1e-3 {
		t.Fatalf("Mean = %v, want ~0.2", w.Mean)
	}
	// 0.2 * 2.5 = 0.5 for quiet buckets.
	if math.Abs(float64(w.Buckets[0])-0.5) > 1e-6 {
		t.Fatalf("Buckets[0] = %v, want 0.5", w.Buckets[0])
	}
	// 0.9 * 2.5 clamps to 1.
	if w.Buckets[BucketCount-1] != 1 {
		t.Fatalf("Buckets[last] = %v, want 1 (clamped)", w.Buckets[BucketCount-1])
	}
}

func TestSummarize_Empty(t *testing.T) {
	w := Summarize(nil)
	if w.Mean != 0 {
		t.Fatalf("Mean = %v, want 0", w.Mean)
	}
}

func TestReaderDevice(t *testing.T) {
	// 3 samples: 0x4000, 0xC000 (=-16384), 0x0000
	data := []byte{0x00, 0x40, 0x00, 0xC0, 0x00, 0x00}
	d := NewReaderDevice(io.NopCloser(bytes.NewReader(data)))

	buf := make([]int16, 2)
	n, err := d.Read(buf)
	if err != nil || n != 2 {
		t.Fatalf("Read = (%d, %v), want (2, nil)", n, err)
	}
	if buf[0] != 16384 || buf[1] != -16384 {
		t.Fatalf("decoded %v, want [16384 -16384]", buf)
	}

	// Short tail delivered before EOF.
	n, err = d.Read(buf)
	if err != nil || n != 1 {
		t.Fatalf("tail Read = (%d, %v), want (1, nil)", n, err)
	}

	if _, err := d.Read(buf); !errors.Is(err, io.EOF) {
		t.Fatalf("final Read error = %v, want EOF", err)
	}
}
