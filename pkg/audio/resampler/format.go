package resampler

// Format describes a raw audio stream of 16-bit signed little-endian samples.
type Format struct {
	// SampleRate in Hz (e.g. 16000, 44100, 48000).
	SampleRate int

	// Stereo is true for 2 interleaved channels, false for mono.
	Stereo bool
}

func (f Format) channels() int {
	if f.Stereo {
		return 2
	}
	return 1
}

// sampleBytes is the size of one frame: all channels of one sampling instant.
func (f Format) sampleBytes() int {
	return f.channels() * 2
}
