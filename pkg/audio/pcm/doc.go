// Package pcm provides PCM audio format math and sample conversion for the
// capture pipeline.
//
// The recognition pipeline runs on a single canonical format: 16 kHz mono
// 16-bit signed little-endian PCM, normalized to float32 samples in [-1, 1]
// by dividing by 32768. Other formats exist only at the capture boundary,
// where device-native audio is resampled down to the canonical rate.
package pcm
