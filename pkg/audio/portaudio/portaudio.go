// Package portaudio provides a minimal CGO binding to the PortAudio library
// for exclusive microphone input.
//
// Only the input side is bound: the recorder never plays audio back. The
// binding requires portaudio installed via pkg-config (e.g. brew install
// portaudio / apt install portaudio19-dev).
package portaudio

/*
#cgo pkg-config: portaudio-2.0

#include <portaudio.h>
#include <stdlib.h>
#include <string.h>

// Wrapper functions using void* to avoid CGO type issues with PaStream.
static PaError pa_open_input(void **stream,
                             const PaStreamParameters *inputParams,
                             double sampleRate,
                             unsigned long framesPerBuffer) {
    return Pa_OpenStream((PaStream**)stream, inputParams, NULL, sampleRate,
                         framesPerBuffer, paClipOff, NULL, NULL);
}

static PaError pa_start_stream(void *stream) {
    return Pa_StartStream((PaStream*)stream);
}

static PaError pa_stop_stream(void *stream) {
    return Pa_StopStream((PaStream*)stream);
}

static PaError pa_close_stream(void *stream) {
    return Pa_CloseStream((PaStream*)stream);
}

static PaError pa_read_stream(void *stream, void *buffer, unsigned long frames) {
    return Pa_ReadStream((PaStream*)stream, buffer, frames);
}
*/
import "C"

import (
	"errors"
	"sync"
	"unsafe"
)

var (
	initOnce sync.Once
	initErr  error
)

// paError converts a PortAudio error code to a Go error.
func paError(code C.PaError) error {
	if code == C.paNoError {
		return nil
	}
	return errors.New(C.GoString(C.Pa_GetErrorText(code)))
}

// Initialize initializes the PortAudio library.
// It is safe to call multiple times.
func Initialize() error {
	initOnce.Do(func() {
		initErr = paError(C.Pa_Initialize())
	})
	return initErr
}

// Terminate terminates the PortAudio library.
func Terminate() error {
	return paError(C.Pa_Terminate())
}

// DeviceInfo describes an audio input device.
type DeviceInfo struct {
	Index             int
	Name              string
	MaxInputChannels  int
	DefaultSampleRate float64
	IsDefaultInput    bool
}

// InputDevices returns the available audio input devices.
func InputDevices() ([]DeviceInfo, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}

	count := int(C.Pa_GetDeviceCount())
	if count < 0 {
		return nil, paError(C.PaError(count))
	}
	defaultInput := int(C.Pa_GetDefaultInputDevice())

	var devices []DeviceInfo
	for i := 0; i < count; i++ {
		info := C.Pa_GetDeviceInfo(C.PaDeviceIndex(i))
		if info == nil || int(info.maxInputChannels) == 0 {
			continue
		}
		devices = append(devices, DeviceInfo{
			Index:             i,
			Name:              C.GoString(info.name),
			MaxInputChannels:  int(info.maxInputChannels),
			DefaultSampleRate: float64(info.defaultSampleRate),
			IsDefaultInput:    i == defaultInput,
		})
	}
	return devices, nil
}

// stream wraps a running PortAudio input stream and its C-side read buffer.
type stream struct {
	ptr    unsafe.Pointer
	buf    unsafe.Pointer
	frames int

	mu     sync.Mutex
	closed bool
}

// openInputStream opens and starts a mono 16-bit input stream on the default
// input device.
func openInputStream(sampleRate float64, framesPerBuffer int) (*stream, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}

	device := C.Pa_GetDefaultInputDevice()
	if device == C.paNoDevice {
		return nil, errors.New("portaudio: no default input device")
	}
	info := C.Pa_GetDeviceInfo(device)
	params := C.PaStreamParameters{
		device:           device,
		channelCount:     1,
		sampleFormat:     C.paInt16,
		suggestedLatency: info.defaultLowInputLatency,
	}

	var ptr unsafe.Pointer
	if err := paError(C.pa_open_input(&ptr, &params, C.double(sampleRate), C.ulong(framesPerBuffer))); err != nil {
		return nil, err
	}
	if err := paError(C.pa_start_stream(ptr)); err != nil {
		C.pa_close_stream(ptr)
		return nil, err
	}

	return &stream{
		ptr:    ptr,
		buf:    C.malloc(C.size_t(framesPerBuffer * 2)), // int16 = 2 bytes
		frames: framesPerBuffer,
	}, nil
}

// read blocks until framesPerBuffer samples are captured and copies them
// into out. len(out) must be at least the stream's frames per buffer.
func (s *stream) read(out []int16) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, errors.New("portaudio: stream closed")
	}

	n := s.frames
	if n > len(out) {
		n = len(out)
	}
	if err := paError(C.pa_read_stream(s.ptr, s.buf, C.ulong(n))); err != nil {
		return 0, err
	}
	C.memcpy(unsafe.Pointer(&out[0]), s.buf, C.size_t(n*2))
	return n, nil
}

// close stops and closes the stream and frees the C buffer. Idempotent.
func (s *stream) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	C.pa_stop_stream(s.ptr)
	err := paError(C.pa_close_stream(s.ptr))
	C.free(s.buf)
	return err
}
