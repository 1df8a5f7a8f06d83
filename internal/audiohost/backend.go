// Package audiohost abstracts the real-time audio device so the pipeline
// scheduler never imports a device API directly. Backend mirrors the audio
// host's real-time callback contract: fixed-size interleaved float32 blocks,
// called on the host's own real-time thread.
package audiohost

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gordonklaus/portaudio"
)

// ErrDeviceUnavailable is returned when the host denies or cannot find an
// audio device (permission denial, unplugged device, exclusive lock held by
// another process).
var ErrDeviceUnavailable = errors.New("audiohost: device unavailable")

// Callback is invoked once per period with exactly periodSize frames of
// interleaved input and a same-sized output buffer to fill. It must not
// allocate, lock, or block — the real-time contract is enforced by the
// caller of Open, not by this package.
type Callback func(in, out []float32)

// Backend abstracts the platform audio host. Real implementations wrap a
// device API; FakeBackend drives tests without real hardware.
type Backend interface {
	// Open configures the stream for the given rate/channels/period and
	// registers cb as the real-time callback. It does not start audio flow.
	Open(sampleRate float64, channels, periodSize int, cb Callback) error
	Start() error
	Stop() error
	Close() error
}

// PortAudioBackend wraps github.com/gordonklaus/portaudio for production use.
type PortAudioBackend struct {
	stream *portaudio.Stream
}

// NewPortAudioBackend returns a Backend backed by the system's default audio
// device via PortAudio.
func NewPortAudioBackend() *PortAudioBackend {
	return &PortAudioBackend{}
}

func (p *PortAudioBackend) Open(sampleRate float64, channels, periodSize int, cb Callback) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audiohost: portaudio init: %w", err)
	}

	in := make([]float32, periodSize*channels)
	out := make([]float32, periodSize*channels)
	stream, err := portaudio.OpenDefaultStream(
		channels, channels,
		sampleRate, periodSize,
		func(inBuf, outBuf []float32) {
			copy(in, inBuf)
			cb(in, out)
			copy(outBuf, out)
		},
	)
	if err != nil {
		portaudio.Terminate() //nolint:errcheck
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "denied") || strings.Contains(low, "unavailable") || strings.Contains(low, "unauthorized") {
			return ErrDeviceUnavailable
		}
		return fmt.Errorf("audiohost: open stream: %w", err)
	}
	p.stream = stream
	return nil
}

func (p *PortAudioBackend) Start() error {
	if err := p.stream.Start(); err != nil {
		return fmt.Errorf("audiohost: start stream: %w", err)
	}
	return nil
}

func (p *PortAudioBackend) Stop() error {
	if err := p.stream.Stop(); err != nil {
		return fmt.Errorf("audiohost: stop stream: %w", err)
	}
	return nil
}

func (p *PortAudioBackend) Close() error {
	err := p.stream.Close()
	portaudio.Terminate() //nolint:errcheck
	return err
}
