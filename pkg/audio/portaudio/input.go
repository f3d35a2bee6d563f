package portaudio

import (
	"io"
	"time"

	"github.com/murmurapp/murmur/pkg/audio/pcm"
)

// InputStream captures 16-bit mono audio from the default input device.
// It satisfies the capture engine's Device contract: Read blocks until a
// buffer of samples is available, Close releases the device and unblocks a
// pending Read.
type InputStream struct {
	stream *stream
	format pcm.Format
}

// NewInputStream opens the default input device at the given format, reading
// bufferDuration of audio per device round-trip.
func NewInputStream(format pcm.Format, bufferDuration time.Duration) (*InputStream, error) {
	frames := int(format.SamplesInDuration(bufferDuration))
	s, err := openInputStream(float64(format.SampleRate()), frames)
	if err != nil {
		return nil, err
	}
	return &InputStream{stream: s, format: format}, nil
}

// Read reads captured samples into buf and returns the number of samples.
func (is *InputStream) Read(buf []int16) (int, error) {
	return is.stream.read(buf)
}

// ReadBytes reads captured samples as little-endian 16-bit PCM bytes. This
// is the byte-oriented view used when the stream feeds a resampler.
func (is *InputStream) ReadBytes(buf []byte) (int, error) {
	samples := make([]int16, len(buf)/2)
	n, err := is.Read(samples)
	if err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		buf[i*2] = byte(samples[i])
		buf[i*2+1] = byte(samples[i] >> 8)
	}
	return n * 2, nil
}

// Format returns the PCM format of the stream.
func (is *InputStream) Format() pcm.Format {
	return is.format
}

// Close stops and closes the stream.
func (is *InputStream) Close() error {
	return is.stream.close()
}

// byteAdapter exposes an InputStream as an io.ReadCloser of PCM bytes.
type byteAdapter struct {
	is *InputStream
}

// Bytes returns an io.ReadCloser view of the stream for byte-oriented
// consumers such as the resampler.
func (is *InputStream) Bytes() io.ReadCloser {
	return byteAdapter{is}
}

func (a byteAdapter) Read(p []byte) (int, error) {
	return a.is.ReadBytes(p)
}

func (a byteAdapter) Close() error {
	return a.is.Close()
}
