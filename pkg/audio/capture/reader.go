package capture

import (
	"io"
	"sync"
)

// ReaderDevice adapts an io.ReadCloser of little-endian 16-bit PCM bytes
// into a Device. It is the glue between byte-oriented sources (a resampled
// device stream, a file, a test fixture) and the sample-oriented Engine.
type ReaderDevice struct {
	r io.ReadCloser

	mu  sync.Mutex
	buf []byte
}

// NewReaderDevice wraps r as a Device.
func NewReaderDevice(r io.ReadCloser) *ReaderDevice {
	return &ReaderDevice{r: r}
}

// Read fills buf with samples decoded from the underlying byte stream.
// A short tail at EOF is delivered before the EOF is surfaced.
func (d *ReaderDevice) Read(buf []int16) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	want := len(buf) * 2
	if cap(d.buf) < want {
		d.buf = make([]byte, want)
	}
	raw := d.buf[:want]

	n, err := io.ReadFull(d.r, raw)
	if n >= 2 {
		for i := 0; i+1 < n; i += 2 {
			buf[i/2] = int16(raw[i]) | int16(raw[i+1])<<8
		}
		return n / 2, nil
	}
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return 0, err
}

// Close closes the underlying reader.
func (d *ReaderDevice) Close() error {
	return d.r.Close()
}
