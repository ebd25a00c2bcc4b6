package playback

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Init initializes the PortAudio runtime. Call Terminate when done.
func Init() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	return nil
}

// Terminate releases the PortAudio runtime.
func Terminate() error {
	return portaudio.Terminate()
}

type paDevice struct {
	stream *portaudio.Stream
	buf    []int16
}

// OpenDefaultDevice opens the default mono output stream. Init must have
// been called.
func OpenDefaultDevice(sampleRate int) (Device, error) {
	buf := make([]int16, chunkFrames)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), len(buf), &buf)
	if err != nil {
		return nil, err
	}
	if err := stream.Start(); err != nil {
		if cerr := stream.Close(); cerr != nil {
			// Best-effort close of a stream that never started.
			_ = cerr
		}
		return nil, err
	}
	return &paDevice{stream: stream, buf: buf}, nil
}

func (d *paDevice) Write(samples []int16) error {
	for len(samples) > 0 {
		n := copy(d.buf, samples)
		// The stream writes the whole buffer; zero the tail so a short
		// final chunk does not replay stale samples.
		for i := n; i < len(d.buf); i++ {
			d.buf[i] = 0
		}
		if err := d.stream.Write(); err != nil {
			return err
		}
		samples = samples[n:]
	}
	return nil
}

func (d *paDevice) Close() error {
	if err := d.stream.Stop(); err != nil {
		if cerr := d.stream.Close(); cerr != nil {
			// Stop already failed; report that error.
			_ = cerr
		}
		return err
	}
	return d.stream.Close()
}
