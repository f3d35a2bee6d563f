package diarize

import "math"

// SilenceSplitter is the built-in fallback Engine. It cannot tell voices
// apart; it partitions the waveform into voiced intervals separated by long
// pauses and attributes everything to speaker 0. Model-backed engines plug
// in through the Engine interface.
type SilenceSplitter struct {
	// SampleRate of the input waveform. Defaults to 16000.
	SampleRate int

	// Threshold is the RMS level above which a window counts as voiced.
	// Defaults to 0.02.
	Threshold float32

	// MinGap is the shortest pause, in seconds, that splits two
	// intervals. Defaults to 1.0.
	MinGap float64

	// Window is the analysis window in samples. Defaults to 512.
	Window int
}

var _ Engine = (*SilenceSplitter)(nil)

// Process partitions samples into voiced intervals for speaker 0.
func (s *SilenceSplitter) Process(samples []float32) ([]Interval, error) {
	rate := s.SampleRate
	if rate == 0 {
		rate = 16000
	}
	threshold := s.Threshold
	if threshold == 0 {
		threshold = 0.02
	}
	minGap := s.MinGap
	if minGap == 0 {
		minGap = 1.0
	}
	window := s.Window
	if window == 0 {
		window = 512
	}

	var intervals []Interval
	var start, gap float64
	voiced := false

	winDur := float64(window) / float64(rate)
	for off := 0; off < len(samples); off += window {
		end := off + window
		if end > len(samples) {
			end = len(samples)
		}
		t := float64(off) / float64(rate)

		if windowRMS(samples[off:end]) >= threshold {
			if !voiced {
				voiced = true
				start = t
			}
			gap = 0
			continue
		}
		if voiced {
			gap += winDur
			if gap >= minGap {
				intervals = append(intervals, Interval{Start: start, End: t - gap + winDur})
				voiced = false
				gap = 0
			}
		}
	}
	if voiced {
		intervals = append(intervals, Interval{Start: start, End: float64(len(samples)) / float64(rate)})
	}
	return intervals, nil
}

func windowRMS(w []float32) float32 {
	if len(w) == 0 {
		return 0
	}
	var sum float64
	for _, v := range w {
		sum += float64(v) * float64(v)
	}
	return float32(math.Sqrt(sum / float64(len(w))))
}
