// Package audio is an umbrella for the audio sub-packages:
//
//   - pcm: 16-bit PCM format math and float conversion
//   - capture: microphone capture engine producing fixed-duration chunks
//   - portaudio: cgo binding to the default system input device
//   - resampler: sample rate and channel conversion to the pipeline format
package audio
