package session

import (
	"github.com/murmurapp/murmur/pkg/audio/capture"
	"github.com/murmurapp/murmur/pkg/transcript"
	"time"
)

// Phase is the orchestrator's position in the session state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInitializing
	PhaseReady
	PhaseRecording
	PhaseStopping
	PhaseDiarizing
	PhaseError
)

var phaseNames = map[Phase]string{
	PhaseIdle:         "idle",
	PhaseInitializing: "initializing",
	PhaseReady:        "ready",
	PhaseRecording:    "recording",
	PhaseStopping:     "stopping",
	PhaseDiarizing:    "diarizing",
	PhaseError:        "error",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// State is an immutable snapshot of a session. A new snapshot replaces the
// previous one on every observable change; nothing is mutated in place, so a
// reader never sees inconsistent flags.
type State struct {
	Phase    Phase
	Name     string
	Duration time.Duration

	// Segments is a copy of the transcript so far.
	Segments []transcript.Segment

	// Waveform is the summary of the most recent captured chunk.
	Waveform capture.Waveform

	// Err is the last session-level error, set only in PhaseError.
	Err error
}

// Initializing reports whether engines are being loaded.
func (s State) Initializing() bool { return s.Phase == PhaseInitializing }

// Recording reports whether audio is being captured.
func (s State) Recording() bool { return s.Phase == PhaseRecording }

// Processing reports whether recognition work is still outstanding after
// capture has stopped.
func (s State) Processing() bool { return s.Phase == PhaseStopping }

// Diarizing reports whether the post-session speaker pass is running.
func (s State) Diarizing() bool { return s.Phase == PhaseDiarizing }
