package diarize

import "github.com/murmurapp/murmur/pkg/transcript"

// Align rewrites segments with speaker attribution from intervals. Each
// segment's position is estimated as (index / count) * sessionDuration; the
// interval containing that time wins, otherwise the one with the nearest
// edge. The whole sequence is rewritten in one pass; a nil intervals slice
// or zero duration leaves every segment unassigned.
func Align(segments []transcript.Segment, intervals []Interval, sessionDuration float64) []transcript.Segment {
	out := make([]transcript.Segment, len(segments))
	copy(out, segments)
	if len(intervals) == 0 || sessionDuration <= 0 {
		return out
	}

	for i := range out {
		est := float64(i) / float64(len(out)) * sessionDuration
		iv := match(intervals, est)
		out[i].Speaker = iv.Speaker
		out[i].Start = iv.Start
		out[i].End = iv.End
	}
	return out
}

func match(intervals []Interval, t float64) Interval {
	best := intervals[0]
	bestDist := best.edgeDistance(t)
	for _, iv := range intervals[1:] {
		if iv.Contains(t) {
			return iv
		}
		if d := iv.edgeDistance(t); d < bestDist {
			best, bestDist = iv, d
		}
	}
	return best
}
