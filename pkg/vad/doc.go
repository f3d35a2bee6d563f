// Package vad turns a continuous stream of audio into discrete batches of
// speech suitable for offline recognition.
//
// The Engine interface is the calling contract of a voice activity detector:
// feed it samples, pop completed speech segments. Energy is the built-in
// detector based on windowed RMS. The Batcher sits on top of an Engine and
// accumulates popped segments until a minimum batch duration is reached, so
// the recognizer never sees fragments short enough to hallucinate on.
package vad
