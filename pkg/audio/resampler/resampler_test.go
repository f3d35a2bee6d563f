package resampler

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func pcmBytes(samples []int16) []byte {
	b := make([]byte, len(samples)*2)
	for i, s := range samples {
		b[i*2] = byte(s)
		b[i*2+1] = byte(s >> 8)
	}
	return b
}

func TestResampler_StereoDownmix(t *testing.T) {
	// Interleaved L/R pairs; mono output should average each pair. Same
	// rate on both sides so no rate conversion is involved.
	src := pcmBytes([]int16{100, 300, -200, -400, 1000, 1000})
	r, err := New(bytes.NewReader(src),
		Format{SampleRate: 16000, Stereo: true},
		Format{SampleRate: 16000})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer r.Close()

	buf := make([]byte, 64)
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		t.Fatalf("Read error: %v", err)
	}
	if n != 6 {
		t.Fatalf("Read returned %d bytes, want 6", n)
	}

	want := []int16{200, -300, 1000}
	for i, w := range want {
		got := int16(buf[i*2]) | int16(buf[i*2+1])<<8
		if got != w {
			t.Fatalf("sample %d = %d, want %d", i, got, w)
		}
	}
}

func TestResampler_RateConversion(t *testing.T) {
	// 0.1 s of 48 kHz mono should come out near 0.1 s of 16 kHz. The
	// converter has filter latency, so only bound the length loosely.
	src := make([]int16, 4800)
	for i := range src {
		src[i] = int16(i % 1000)
	}
	r, err := New(bytes.NewReader(pcmBytes(src)),
		Format{SampleRate: 48000},
		Format{SampleRate: 16000})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer r.Close()

	var total int
	buf := make([]byte, 1024)
	for {
		n, err := r.Read(buf)
		total += n
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("Read error: %v", err)
		}
	}

	samples := total / 2
	if samples < 800 || samples > 2000 {
		t.Fatalf("got %d output samples, want roughly 1600", samples)
	}
}

func TestResampler_StereoDestinationRejected(t *testing.T) {
	_, err := New(bytes.NewReader(nil),
		Format{SampleRate: 16000},
		Format{SampleRate: 16000, Stereo: true})
	if err == nil {
		t.Fatal("New accepted a stereo destination")
	}
}

func TestResampler_CloseWithError(t *testing.T) {
	wantErr := errors.New("device gone")
	r, err := New(bytes.NewReader(pcmBytes([]int16{1, 2, 3, 4})),
		Format{SampleRate: 16000},
		Format{SampleRate: 16000})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := r.CloseWithError(wantErr); err != nil {
		t.Fatalf("CloseWithError error: %v", err)
	}
	if _, err := r.Read(make([]byte, 16)); !errors.Is(err, wantErr) {
		t.Fatalf("Read error = %v, want %v", err, wantErr)
	}
}
