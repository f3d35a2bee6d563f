package resampler

import (
	"errors"
	"fmt"
	"io"
	"sync"

	resampling "github.com/tphakala/go-audio-resampling"
)

// Resampler reads 16-bit PCM from a source stream and converts it to the
// destination format. It converts sample rate and downmixes stereo to mono;
// the destination must be mono since the capture pipeline only consumes mono
// audio. Close releases resources and unblocks any pending Read.
type Resampler struct {
	src    io.Reader
	srcFmt Format
	dstFmt Format

	mu        sync.Mutex
	closeErr  error
	converter resampling.Resampler
	readBuf   []byte
	leftover  []byte
}

// New creates a Resampler from srcFmt to dstFmt. dstFmt must be mono.
func New(src io.Reader, srcFmt, dstFmt Format) (*Resampler, error) {
	if dstFmt.Stereo {
		return nil, errors.New("resampler: stereo destination not supported")
	}

	var converter resampling.Resampler
	if srcFmt.SampleRate != dstFmt.SampleRate {
		cfg := &resampling.Config{
			InputRate:  float64(srcFmt.SampleRate),
			OutputRate: float64(dstFmt.SampleRate),
			Channels:   dstFmt.channels(),
			Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
		}
		var err error
		converter, err = resampling.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("resampler: %w", err)
		}
	}

	return &Resampler{
		src:       newSampleReader(src, srcFmt.sampleBytes()),
		srcFmt:    srcFmt,
		dstFmt:    dstFmt,
		converter: converter,
	}, nil
}

// Read copies converted audio into p, returning a whole number of samples.
func (r *Resampler) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(p) < r.dstFmt.sampleBytes() {
		return 0, io.ErrShortBuffer
	}
	p = p[:len(p)/r.dstFmt.sampleBytes()*r.dstFmt.sampleBytes()]

	r.mu.Lock()
	defer r.mu.Unlock()

	// Drain converted audio left over from a previous round before touching
	// the source again.
	if len(r.leftover) > 0 {
		n := copy(p, r.leftover)
		r.leftover = r.leftover[n:]
		return n, nil
	}

	if r.closeErr != nil {
		return 0, r.closeErr
	}

	if r.converter == nil {
		return r.readMono(p, len(p))
	}
	return r.convert(p)
}

// convert reads enough source audio for one output round, runs it through
// the rate converter, and copies the result into p.
func (r *Resampler) convert(p []byte) (int, error) {
	ratio := float64(r.srcFmt.SampleRate) / float64(r.dstFmt.SampleRate)
	srcLen := int(float64(len(p))*ratio) + r.srcFmt.sampleBytes()*4

	monoBuf := r.grow(srcLen)
	n, readErr := r.readMono(monoBuf, srcLen)
	if n == 0 {
		if readErr != nil {
			return 0, readErr
		}
		return 0, io.EOF
	}

	input := make([]float64, n/2)
	for i := range input {
		s := int16(monoBuf[i*2]) | int16(monoBuf[i*2+1])<<8
		input[i] = float64(s) / 32768.0
	}

	output, err := r.converter.Process(input)
	if err != nil {
		return 0, fmt.Errorf("resampler: %w", err)
	}
	if len(output) == 0 {
		return 0, readErr
	}

	out := make([]byte, len(output)*2)
	for i, f := range output {
		var s int16
		switch {
		case f >= 1.0:
			s = 32767
		case f <= -1.0:
			s = -32768
		default:
			s = int16(f * 32767.0)
		}
		out[i*2] = byte(s)
		out[i*2+1] = byte(s >> 8)
	}

	copied := copy(p, out)
	if copied < len(out) {
		r.leftover = append(r.leftover, out[copied:]...)
	}
	return copied, readErr
}

// readMono reads up to dstLen bytes of mono source audio into p, downmixing
// interleaved stereo frames by averaging the two channels.
func (r *Resampler) readMono(p []byte, dstLen int) (int, error) {
	if !r.srcFmt.Stereo {
		n, err := r.src.Read(p[:dstLen])
		return n, err
	}

	buf := r.grow(dstLen * 2)
	n, err := r.src.Read(buf[:dstLen*2])
	if n == 0 {
		return 0, err
	}

	frames := n / 4
	for i := 0; i < frames; i++ {
		j := i * 4
		l := int16(buf[j]) | int16(buf[j+1])<<8
		rt := int16(buf[j+2]) | int16(buf[j+3])<<8
		m := int16((int32(l) + int32(rt)) / 2)
		p[i*2] = byte(m)
		p[i*2+1] = byte(m >> 8)
	}
	return frames * 2, err
}

func (r *Resampler) grow(n int) []byte {
	if cap(r.readBuf) < n {
		r.readBuf = make([]byte, n)
	}
	return r.readBuf[:n]
}

// Close releases resources. Subsequent reads return io.ErrClosedPipe.
func (r *Resampler) Close() error {
	return r.CloseWithError(fmt.Errorf("resampler: %w", io.ErrClosedPipe))
}

// CloseWithError closes the resampler so subsequent reads return err.
func (r *Resampler) CloseWithError(err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closeErr == nil {
		r.closeErr = err
	}
	r.converter = nil
	return nil
}
