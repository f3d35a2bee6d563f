// Package transcript defines the transcript segment type shared by the
// recognition pipeline, the diarization aligner and the recording store.
package transcript

import "time"

// SpeakerUnassigned is the speaker id of a segment no diarization pass has
// attributed yet.
const SpeakerUnassigned = -1

// Segment is one recognized utterance. Segments are held in an append-only
// ordered sequence per session; insertion order is chronological order.
// Speaker and the Start/End interval are written once, by a diarization
// pass rewriting the whole sequence.
type Segment struct {
	Text      string    `msgpack:"text" json:"text"`
	CreatedAt time.Time `msgpack:"created_at" json:"createdAt"`

	// Speaker is a non-negative speaker id, or SpeakerUnassigned.
	Speaker int `msgpack:"speaker" json:"speaker"`

	// Start and End bound the attributed speaker interval in seconds
	// relative to session start. Meaningful only when Speaker is set.
	Start float64 `msgpack:"start" json:"start"`
	End   float64 `msgpack:"end" json:"end"`
}

// New creates an unattributed segment stamped with the current time.
func New(text string) Segment {
	return Segment{
		Text:      text,
		CreatedAt: time.Now(),
		Speaker:   SpeakerUnassigned,
	}
}
