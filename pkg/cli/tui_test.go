package cli

import (
	"strings"
	"testing"
)

func TestMeter(t *testing.T) {
	got := Meter([]float32{0, 0.5, 1, 2, -1})
	runes := []rune(got)
	if len(runes) != 5 {
		t.Fatalf("meter has %d cells, want 5", len(runes))
	}
	if runes[0] != ' ' {
		t.Errorf("silent bucket = %q, want space", runes[0])
	}
	if runes[2] != '█' || runes[3] != '█' {
		t.Errorf("full and clamped buckets = %q %q, want full block", runes[2], runes[3])
	}
	if runes[4] != ' ' {
		t.Errorf("negative bucket = %q, want space", runes[4])
	}
}

func TestFrame_Render(t *testing.T) {
	f := Frame{
		Styles: NewStyles(DefaultTheme),
		Title:  "MURMUR",
		Status: "recording",
		Sections: []Section{
			{Label: "Transcript", Content: func() []string { return []string{"Hello there."} }},
		},
		Help: "Ctrl+C=stop",
	}

	out := f.Render(60, 16)
	if !strings.Contains(out, "MURMUR") {
		t.Error("title missing from frame")
	}
	if !strings.Contains(out, "Hello there.") {
		t.Error("section content missing from frame")
	}
	if !strings.Contains(out, "Ctrl+C=stop") {
		t.Error("help line missing from frame")
	}

	if f.Render(0, 0) != "Loading..." {
		t.Error("zero-size frame should render placeholder")
	}
}

func TestLogWriter(t *testing.T) {
	w := NewLogWriter(4)
	w.Write([]byte("one\ntwo\n"))
	w.Write([]byte("three"))

	lines := w.Lines()
	if len(lines) != 3 || lines[0] != "one" || lines[2] != "three" {
		t.Fatalf("lines = %v", lines)
	}

	select {
	case line := <-w.Channel():
		if line != "one" {
			t.Fatalf("first notified line = %q", line)
		}
	default:
		t.Fatal("no line notified")
	}
}
