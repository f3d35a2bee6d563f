package diarize

// Interval is a half-open time range [Start, End) in seconds attributed to
// one speaker. Speaker ids are non-negative and dense per session.
type Interval struct {
	Speaker int
	Start   float64
	End     float64
}

// Contains reports whether t falls inside the interval.
func (iv Interval) Contains(t float64) bool {
	return t >= iv.Start && t < iv.End
}

// edgeDistance is the distance from t to the nearest edge of the interval,
// zero when t is inside.
func (iv Interval) edgeDistance(t float64) float64 {
	switch {
	case t < iv.Start:
		return iv.Start - t
	case t >= iv.End:
		return t - iv.End
	default:
		return 0
	}
}

// Engine is the calling contract of a speaker diarization engine: one shot
// over the full session waveform, speaker count auto-detected.
type Engine interface {
	Process(samples []float32) ([]Interval, error)
}

// SpeakerCount returns the number of distinct speakers in intervals.
func SpeakerCount(intervals []Interval) int {
	seen := make(map[int]struct{}, 4)
	for _, iv := range intervals {
		seen[iv.Speaker] = struct{}{}
	}
	return len(seen)
}
