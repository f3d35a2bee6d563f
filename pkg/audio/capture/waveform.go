package capture

// BucketCount is the fixed length of the waveform amplitude profile.
const BucketCount = 32

// bucketGain scales the bucket maxima so quiet speech is still visible on a
// [0, 1] meter.
const bucketGain = 2.5

// Waveform is a lightweight per-chunk summary for live feedback: one mean
// absolute amplitude plus a coarse per-bucket max-amplitude profile, gain
// scaled and clamped to [0, 1]. It carries no correctness obligation and is
// never persisted.
type Waveform struct {
	Mean    float32
	Buckets [BucketCount]float32
}

// Summarize computes the waveform summary for one chunk in a single pass.
func Summarize(samples []float32) Waveform {
	var w Waveform
	if len(samples) == 0 {
		return w
	}

	per := len(samples) / BucketCount
	if per == 0 {
		per = 1
	}

	var sum float64
	for i, s := range samples {
		if s < 0 {
			s = -s
		}
		sum += float64(s)

		b := i / per
		if b >= BucketCount {
			b = BucketCount - 1
		}
		v := s * bucketGain
		if v > 1 {
			v = 1
		}
		if v > w.Buckets[b] {
			w.Buckets[b] = v
		}
	}
	w.Mean = float32(sum / float64(len(samples)))
	return w
}
