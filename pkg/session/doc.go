// Package session coordinates a recording session end to end: it owns the
// engine handles, wires the capture loop to the batching/recognition loop
// through an unbounded queue, sequences start/stop/drain/diarize, and
// publishes immutable state snapshots to watchers.
//
// The orchestrator itself never touches samples beyond moving them; all
// signal processing lives in the capture, vad, asr and diarize packages.
//
// Stopping follows a drain-don't-cancel policy: the capture loop is stopped
// immediately, but the batching loop runs every already-queued chunk to
// completion before the final flush, so the tail of speech is never lost.
package session
