package asr

import (
	"log/slog"
	"sync"
)

// Recognizer turns sample batches into raw text through an Engine. The
// engine handle is guarded by a mutex, but the mutex is released before the
// decode call so a long inference never blocks concurrent batching of live
// audio; it is re-acquired only for bookkeeping. A failed or panicking
// decode degrades to an empty result for that batch.
type Recognizer struct {
	log *slog.Logger

	mu      sync.Mutex
	engine  Engine
	batches int
	samples int64
}

// NewRecognizer wraps engine. A nil logger discards logs.
func NewRecognizer(engine Engine, log *slog.Logger) *Recognizer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Recognizer{engine: engine, log: log.With("component", "asr")}
}

// Recognize decodes one batch of 16 kHz mono samples and returns raw text.
// An empty string means the batch yielded nothing, which is not an error.
func (r *Recognizer) Recognize(samples []float32) string {
	r.mu.Lock()
	engine := r.engine
	r.mu.Unlock()
	if engine == nil || len(samples) == 0 {
		return ""
	}

	text := r.decode(engine, samples)

	r.mu.Lock()
	r.batches++
	r.samples += int64(len(samples))
	r.mu.Unlock()
	return text
}

// decode runs one stream through the engine without holding r.mu. A panic
// from a native engine binding is contained to the batch.
func (r *Recognizer) decode(engine Engine, samples []float32) (text string) {
	defer func() {
		if v := recover(); v != nil {
			r.log.Error("decode panic", "panic", v)
			text = ""
		}
	}()

	stream, err := engine.NewStream()
	if err != nil {
		r.log.Error("create stream", "err", err)
		return ""
	}
	defer stream.Close()

	if err := stream.AcceptWaveform(16000, samples); err != nil {
		r.log.Error("accept waveform", "err", err)
		return ""
	}
	if err := stream.Decode(); err != nil {
		r.log.Error("decode batch", "err", err)
		return ""
	}
	return stream.Result()
}

// Stats returns the number of batches and total samples decoded so far.
func (r *Recognizer) Stats() (batches int, samples int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.batches, r.samples
}

// Close releases the engine. Further Recognize calls return empty text.
func (r *Recognizer) Close() error {
	r.mu.Lock()
	engine := r.engine
	r.engine = nil
	r.mu.Unlock()
	if engine == nil {
		return nil
	}
	return engine.Close()
}
