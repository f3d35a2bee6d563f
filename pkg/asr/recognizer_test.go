package asr

import (
	"errors"
	"testing"
)

// fakeEngine returns a fixed text per decode and records stream usage.
type fakeEngine struct {
	text    string
	streams int

	failNewStream bool
	failDecode    bool
	panicDecode   bool
}

type fakeStream struct {
	e        *fakeEngine
	accepted int
	closed   bool
}

func (e *fakeEngine) NewStream() (Stream, error) {
	if e.failNewStream {
		return nil, errors.New("out of memory")
	}
	e.streams++
	return &fakeStream{e: e}, nil
}

func (e *fakeEngine) Close() error { return nil }

func (s *fakeStream) AcceptWaveform(rate int, samples []float32) error {
	s.accepted += len(samples)
	return nil
}

func (s *fakeStream) Decode() error {
	if s.e.panicDecode {
		panic("native crash")
	}
	if s.e.failDecode {
		return errors.New("decode failed")
	}
	return nil
}

func (s *fakeStream) Result() string { return s.e.text }
func (s *fakeStream) Close() error   { s.closed = true; return nil }

func TestRecognizer_Recognize(t *testing.T) {
	e := &fakeEngine{text: "hello world"}
	r := NewRecognizer(e, nil)

	got := r.Recognize(make([]float32, 1600))
	if got != "hello world" {
		t.Fatalf("Recognize = %q, want %q", got, "hello world")
	}

	batches, samples := r.Stats()
	if batches != 1 || samples != 1600 {
		t.Fatalf("Stats = (%d, %d), want (1, 1600)", batches, samples)
	}
}

func TestRecognizer_EmptyBatch(t *testing.T) {
	e := &fakeEngine{text: "should not appear"}
	r := NewRecognizer(e, nil)

	if got := r.Recognize(nil); got != "" {
		t.Fatalf("Recognize(nil) = %q, want empty", got)
	}
	if e.streams != 0 {
		t.Fatal("stream created for empty batch")
	}
}

func TestRecognizer_DecodeFailureIsolated(t *testing.T) {
	e := &fakeEngine{failDecode: true}
	r := NewRecognizer(e, nil)

	if got := r.Recognize(make([]float32, 100)); got != "" {
		t.Fatalf("Recognize = %q, want empty on decode failure", got)
	}

	// The next batch still goes through.
	e.failDecode = false
	e.text = "recovered"
	if got := r.Recognize(make([]float32, 100)); got != "recovered" {
		t.Fatalf("Recognize after failure = %q, want %q", got, "recovered")
	}
}

func TestRecognizer_PanicContained(t *testing.T) {
	e := &fakeEngine{panicDecode: true}
	r := NewRecognizer(e, nil)

	if got := r.Recognize(make([]float32, 100)); got != "" {
		t.Fatalf("Recognize = %q, want empty after panic", got)
	}
}

func TestRecognizer_Closed(t *testing.T) {
	e := &fakeEngine{text: "x"}
	r := NewRecognizer(e, nil)
	if err := r.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if got := r.Recognize(make([]float32, 100)); got != "" {
		t.Fatalf("Recognize after Close = %q, want empty", got)
	}
}

func TestMux(t *testing.T) {
	m := NewMux()

	if err := m.Handle("fake", func(Config) (Engine, error) {
		return &fakeEngine{}, nil
	}); err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if err := m.Handle("fake", func(Config) (Engine, error) {
		return nil, nil
	}); err == nil {
		t.Fatal("duplicate Handle did not error")
	}

	if _, err := m.Open("fake", Config{}); err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if _, err := m.Open("missing", Config{}); err == nil {
		t.Fatal("Open of unregistered engine did not error")
	}
}

func TestNullEngine(t *testing.T) {
	e, err := Open("null", Config{})
	if err != nil {
		t.Fatalf("Open null: %v", err)
	}
	r := NewRecognizer(e, nil)
	if got := r.Recognize(make([]float32, 1600)); got != "" {
		t.Fatalf("null engine produced %q", got)
	}
}
