// Package diarize attributes transcript segments to speakers after a session
// ends. An Engine partitions the full session waveform into speaker
// intervals; Align maps each transcript segment onto one of them by
// estimated position.
//
// Alignment estimates a segment's time as (index / count) * duration because
// segments carry no recognition timestamps. The estimate is linear in
// segment index, so uneven utterance lengths can misattribute a speaker near
// interval boundaries. That trade-off is accepted; the alternative would
// require word-level timestamps from the recognizer.
package diarize
