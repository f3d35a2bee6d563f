// Package resampler converts raw device audio into the recorder's capture
// format. Input devices expose whatever rate and channel layout the hardware
// prefers; the recognizer wants 16 kHz mono. The Resampler sits between the
// two as an io.ReadCloser of little-endian 16-bit PCM bytes, handling sample
// rate conversion and stereo downmix in one place.
//
// Rate conversion is pure Go (no CGO), so the package builds anywhere the
// module does.
package resampler
