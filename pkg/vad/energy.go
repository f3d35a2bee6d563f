package vad

import "math"

// Energy is a windowed RMS voice activity detector. Each call to
// AcceptWaveform classifies the incoming samples window by window; once a
// speech run has lasted MinSpeech the detector is in speech and makes the
// accumulated run available as a completed segment at the end of every call,
// so long utterances stream out incrementally instead of waiting for a pause.
// A silence run of MinSilence closes the speech state.
type Energy struct {
	cfg        Config
	minSpeech  int
	minSilence int

	queue      []Segment
	cur        []float32
	inSpeech   bool
	speechLen  int
	silenceLen int
}

var _ Engine = (*Energy)(nil)

// NewEnergy creates an energy detector with the given config. Zero fields
// take defaults.
func NewEnergy(cfg Config) *Energy {
	cfg = cfg.withDefaults()
	return &Energy{
		cfg:        cfg,
		minSpeech:  samplesIn(cfg.MinSpeech),
		minSilence: samplesIn(cfg.MinSilence),
	}
}

// AcceptWaveform classifies samples and queues any speech they complete.
func (e *Energy) AcceptWaveform(samples []float32) {
	for off := 0; off < len(samples); off += e.cfg.Window {
		end := off + e.cfg.Window
		if end > len(samples) {
			end = len(samples)
		}
		e.window(samples[off:end])
	}

	// Stream out the run accumulated so far. Keeping the speech state
	// means the next call continues the same utterance.
	if e.inSpeech && len(e.cur) > 0 {
		e.queue = append(e.queue, Segment{Samples: e.cur})
		e.cur = nil
	}
}

func (e *Energy) window(w []float32) {
	if rms(w) >= e.cfg.Threshold {
		e.cur = append(e.cur, w...)
		e.speechLen += len(w)
		e.silenceLen = 0
		if !e.inSpeech && e.speechLen >= e.minSpeech {
			e.inSpeech = true
		}
		return
	}

	e.silenceLen += len(w)
	if e.silenceLen < e.minSilence {
		return
	}
	if e.inSpeech {
		// Long pause ends the utterance. Anything accumulated was
		// already streamed out at the last AcceptWaveform boundary.
		if len(e.cur) > 0 {
			e.queue = append(e.queue, Segment{Samples: e.cur})
			e.cur = nil
		}
	} else {
		// A blip shorter than MinSpeech surrounded by silence is noise.
		e.cur = nil
	}
	e.inSpeech = false
	e.speechLen = 0
}

// Empty reports whether no completed segment is queued.
func (e *Energy) Empty() bool { return len(e.queue) == 0 }

// Front returns the oldest completed segment.
func (e *Energy) Front() Segment { return e.queue[0] }

// Pop removes the oldest completed segment.
func (e *Energy) Pop() { e.queue = e.queue[1:] }

// Flush finalizes any in-flight run, even one shorter than MinSpeech, so the
// tail of a session is never dropped.
func (e *Energy) Flush() {
	if len(e.cur) > 0 {
		e.queue = append(e.queue, Segment{Samples: e.cur})
		e.cur = nil
	}
	e.inSpeech = false
	e.speechLen = 0
	e.silenceLen = 0
}

// Clear discards all detector state including queued segments.
func (e *Energy) Clear() {
	e.queue = nil
	e.cur = nil
	e.inSpeech = false
	e.speechLen = 0
	e.silenceLen = 0
}

func rms(w []float32) float32 {
	if len(w) == 0 {
		return 0
	}
	var sum float64
	for _, s := range w {
		sum += float64(s) * float64(s)
	}
	return float32(math.Sqrt(sum / float64(len(w))))
}
