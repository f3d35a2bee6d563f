package diarize

import (
	"math"
	"testing"
)

func tone(seconds float64, amp float32) []float32 {
	n := int(seconds * 16000)
	out := make([]float32, n)
	for i := range out {
		out[i] = amp * float32(math.Sin(float64(i)*2*math.Pi*440/16000))
	}
	return out
}

func TestSilenceSplitter(t *testing.T) {
	// Two utterances separated by a 2 s pause.
	var samples []float32
	samples = append(samples, tone(2, 0.5)...)
	samples = append(samples, make([]float32, 2*16000)...)
	samples = append(samples, tone(1, 0.5)...)

	var s SilenceSplitter
	intervals, err := s.Process(samples)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}

	if len(intervals) != 2 {
		t.Fatalf("got %d intervals, want 2: %v", len(intervals), intervals)
	}
	for i, iv := range intervals {
		if iv.Speaker != 0 {
			t.Errorf("interval %d speaker = %d, want 0", i, iv.Speaker)
		}
	}
	if math.Abs(intervals[0].End-2) > 0.1 {
		t.Errorf("first interval ends at %v, want ~2", intervals[0].End)
	}
	if math.Abs(intervals[1].Start-4) > 0.1 {
		t.Errorf("second interval starts at %v, want ~4", intervals[1].Start)
	}
	if got := SpeakerCount(intervals); got != 1 {
		t.Errorf("SpeakerCount = %d, want 1", got)
	}
}

func TestSilenceSplitter_Silence(t *testing.T) {
	var s SilenceSplitter
	intervals, err := s.Process(make([]float32, 16000))
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(intervals) != 0 {
		t.Fatalf("got %d intervals from silence, want 0", len(intervals))
	}
}
