package pcm

import (
	"testing"
	"time"
)

func TestFormatMath(t *testing.T) {
	f := L16Mono16K

	if got := f.SamplesInDuration(100 * time.Millisecond); got != 1600 {
		t.Fatalf("SamplesInDuration(100ms) = %d, want 1600", got)
	}
	if got := f.BytesInDuration(100 * time.Millisecond); got != 3200 {
		t.Fatalf("BytesInDuration(100ms) = %d, want 3200", got)
	}
	if got := f.Duration(16000); got != time.Second {
		t.Fatalf("Duration(16000) = %v, want 1s", got)
	}
	if got := f.Samples(3200); got != 1600 {
		t.Fatalf("Samples(3200) = %d, want 1600", got)
	}
	if got := f.BytesRate(); got != 32000 {
		t.Fatalf("BytesRate() = %d, want 32000", got)
	}
}

func TestFloat32Normalization(t *testing.T) {
	tests := []struct {
		in   int16
		want float32
	}{
		{0, 0},
		{16384, 0.5},
		{-16384, -0.5},
		{-32768, -1.0},
	}
	for _, tt := range tests {
		if got := Float32(tt.in); got != tt.want {
			t.Errorf("Float32(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFloatsFromBytes(t *testing.T) {
	// 0x4000 = 16384 -> 0.5; little endian
	data := []byte{0x00, 0x40, 0x00, 0xC0}
	got := FloatsFromBytes(nil, data)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0] != 0.5 || got[1] != -0.5 {
		t.Fatalf("got %v, want [0.5 -0.5]", got)
	}

	// Trailing odd byte ignored.
	got = FloatsFromBytes(nil, []byte{0x00, 0x40, 0x7F})
	if len(got) != 1 {
		t.Fatalf("odd tail: len = %d, want 1", len(got))
	}
}

func TestInt16Clamp(t *testing.T) {
	if got := Int16(2.0); got != 32767 {
		t.Fatalf("Int16(2.0) = %d, want 32767", got)
	}
	if got := Int16(-2.0); got != -32768 {
		t.Fatalf("Int16(-2.0) = %d, want -32768", got)
	}
	if got := Int16(0.5); got != 16384 {
		t.Fatalf("Int16(0.5) = %d, want 16384", got)
	}
}
