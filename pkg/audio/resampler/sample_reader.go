package resampler

import "io"

// sampleReader wraps an io.Reader so that every Read returns a whole number
// of frames. A partial frame at the end of an underlying read is held back
// and prepended to the next one.
type sampleReader struct {
	r          io.Reader
	sampleSize int

	// tail holds a partial frame (at most sampleSize-1 bytes) between reads.
	tail     []byte
	buffered int
}

func newSampleReader(r io.Reader, sampleSize int) *sampleReader {
	return &sampleReader{
		r:          r,
		sampleSize: sampleSize,
		tail:       make([]byte, sampleSize-1),
	}
}

// Read returns a multiple of sampleSize bytes, or io.ErrShortBuffer when p
// cannot hold a single frame. An unaligned remainder at EOF surfaces as
// io.ErrUnexpectedEOF.
func (sr *sampleReader) Read(p []byte) (n int, err error) {
	if len(p) < sr.sampleSize {
		return 0, io.ErrShortBuffer
	}
	p = p[:len(p)/sr.sampleSize*sr.sampleSize]

	if sr.buffered > 0 {
		n = copy(p, sr.tail[:sr.buffered])
		sr.buffered = 0
	}

	rn, err := sr.r.Read(p[n:])
	n += rn
	if err != nil {
		if n%sr.sampleSize != 0 && err == io.EOF {
			return n, io.ErrUnexpectedEOF
		}
		return n, err
	}
	if mod := n % sr.sampleSize; mod != 0 {
		n -= mod
		copy(sr.tail[:mod], p[n:n+mod])
		sr.buffered = mod
	}
	return n, nil
}
