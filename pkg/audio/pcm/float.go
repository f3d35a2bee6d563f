package pcm

// scale is the divisor used to normalize 16-bit samples into [-1, 1].
const scale = 32768

// Float32 converts a single 16-bit sample to a normalized float32.
func Float32(s int16) float32 {
	return float32(s) / scale
}

// AppendFloats converts 16-bit samples to normalized float32 samples and
// appends them to dst, returning the extended slice.
func AppendFloats(dst []float32, src []int16) []float32 {
	for _, s := range src {
		dst = append(dst, float32(s)/scale)
	}
	return dst
}

// FloatsFromBytes converts little-endian 16-bit PCM bytes to normalized
// float32 samples and appends them to dst. A trailing odd byte is ignored.
func FloatsFromBytes(dst []float32, data []byte) []float32 {
	for i := 0; i+1 < len(data); i += 2 {
		s := int16(data[i]) | int16(data[i+1])<<8
		dst = append(dst, float32(s)/scale)
	}
	return dst
}

// Int16 converts a normalized float32 sample back to a 16-bit sample,
// clamping out-of-range values.
func Int16(f float32) int16 {
	v := f * scale
	switch {
	case v > 32767:
		return 32767
	case v < -32768:
		return -32768
	}
	return int16(v)
}
