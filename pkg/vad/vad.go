package vad

import "time"

// SampleRate is the sample rate the detector and batcher operate at.
const SampleRate = 16000

// Segment is a contiguous run of samples the detector classified as speech.
type Segment struct {
	Samples []float32
}

// Duration returns the segment length as wall-clock audio time.
func (s Segment) Duration() time.Duration {
	return time.Duration(len(s.Samples)) * time.Second / SampleRate
}

// Engine is the calling contract of a voice activity detector. Completed
// speech segments queue up inside the engine; callers drain them with Front
// and Pop. Engines are not safe for concurrent use; the Batcher serializes
// access.
type Engine interface {
	// AcceptWaveform feeds normalized mono samples to the detector.
	AcceptWaveform(samples []float32)

	// Empty reports whether no completed segment is waiting.
	Empty() bool

	// Front returns the oldest completed segment without removing it.
	// It must only be called when Empty reports false.
	Front() Segment

	// Pop removes the oldest completed segment.
	Pop()

	// Flush signals that no more audio is coming and finalizes any
	// in-flight segment, making it available through Front.
	Flush()

	// Clear discards all detector state including queued segments.
	Clear()
}

// Config holds detector tuning shared by Engine implementations.
type Config struct {
	// Threshold is the sensitivity of the speech classifier. For the
	// energy detector it is the RMS level above which a window counts as
	// speech. Defaults to 0.02.
	Threshold float32

	// MinSpeech is the shortest run of speech that opens a segment.
	// Runs shorter than this separated by silence are treated as noise.
	// Defaults to 250 ms.
	MinSpeech time.Duration

	// MinSilence is the silence run that closes an open segment.
	// Defaults to 500 ms.
	MinSilence time.Duration

	// Window is the number of samples per classification window.
	// Defaults to 512.
	Window int
}

func (c Config) withDefaults() Config {
	if c.Threshold == 0 {
		c.Threshold = 0.02
	}
	if c.MinSpeech == 0 {
		c.MinSpeech = 250 * time.Millisecond
	}
	if c.MinSilence == 0 {
		c.MinSilence = 500 * time.Millisecond
	}
	if c.Window == 0 {
		c.Window = 512
	}
	return c
}

func samplesIn(d time.Duration) int {
	return int(d * SampleRate / time.Second)
}
