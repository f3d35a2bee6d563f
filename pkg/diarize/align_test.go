package diarize

import (
	"testing"

	"github.com/murmurapp/murmur/pkg/transcript"
)

func segs(texts ...string) []transcript.Segment {
	out := make([]transcript.Segment, len(texts))
	for i, t := range texts {
		out[i] = transcript.New(t)
	}
	return out
}

func TestAlign_TwoSpeakers(t *testing.T) {
	// Two speakers over a 6 s session, three segments. Estimated times
	// are 0 s, 2 s and 4 s.
	intervals := []Interval{
		{Speaker: 0, Start: 0, End: 3},
		{Speaker: 1, Start: 3, End: 6},
	}

	out := Align(segs("a", "b", "c"), intervals, 6)

	wantSpeakers := []int{0, 0, 1}
	for i, want := range wantSpeakers {
		if out[i].Speaker != want {
			t.Errorf("segment %d speaker = %d, want %d", i, out[i].Speaker, want)
		}
	}
	if out[2].Start != 3 || out[2].End != 6 {
		t.Errorf("segment 2 interval = [%v, %v), want [3, 6)", out[2].Start, out[2].End)
	}
}

func TestAlign_NearestEdge(t *testing.T) {
	// Estimated time 2 s falls in the gap between intervals; the nearer
	// edge wins.
	intervals := []Interval{
		{Speaker: 0, Start: 0, End: 1},
		{Speaker: 1, Start: 2.5, End: 4},
	}

	out := Align(segs("a", "b"), intervals, 4)

	// Segment 1 estimates to 2 s: 1.0 from speaker 0's end, 0.5 from
	// speaker 1's start.
	if out[1].Speaker != 1 {
		t.Fatalf("segment 1 speaker = %d, want 1", out[1].Speaker)
	}
}

func TestAlign_NoIntervals(t *testing.T) {
	out := Align(segs("a", "b"), nil, 6)
	for i := range out {
		if out[i].Speaker != transcript.SpeakerUnassigned {
			t.Errorf("segment %d speaker = %d, want unassigned", i, out[i].Speaker)
		}
	}
}

func TestAlign_DoesNotMutateInput(t *testing.T) {
	in := segs("a")
	Align(in, []Interval{{Speaker: 3, Start: 0, End: 1}}, 1)
	if in[0].Speaker != transcript.SpeakerUnassigned {
		t.Fatal("Align mutated its input")
	}
}

func TestSpeakerCount(t *testing.T) {
	intervals := []Interval{
		{Speaker: 0, Start: 0, End: 1},
		{Speaker: 1, Start: 1, End: 2},
		{Speaker: 0, Start: 2, End: 3},
	}
	if got := SpeakerCount(intervals); got != 2 {
		t.Fatalf("SpeakerCount = %d, want 2", got)
	}
	if got := SpeakerCount(nil); got != 0 {
		t.Fatalf("SpeakerCount(nil) = %d, want 0", got)
	}
}
