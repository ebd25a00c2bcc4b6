// Package playback plays clip sequences on the audio output device.
package playback

import (
	"fmt"
	"sync"

	"github.com/verte-zerg/akousma/internal/clipstore"
)

// chunkFrames is the write granularity; cancellation is checked between
// chunks, so a cancel takes effect within one chunk of audio.
const chunkFrames = 2048

// Device is an open audio sink at a fixed sample rate.
type Device interface {
	Write(samples []int16) error
	Close() error
}

// DeviceOpener opens the output device for a sample rate.
type DeviceOpener func(sampleRate int) (Device, error)

// Handle tracks one playback in flight.
type Handle struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	mu  sync.Mutex
	err error
}

// Cancel stops playback promptly. It is idempotent and safe to call after
// the playback already finished.
func (h *Handle) Cancel() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
}

// Done is closed once the playback goroutine has released the device.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err reports a device failure after Done is closed. Cancellation is not
// an error.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *Handle) setErr(err error) {
	h.mu.Lock()
	h.err = err
	h.mu.Unlock()
}

// Player serializes playback over the single output device. Starting a new
// playback cancels the active one; at most one handle is active at a time.
type Player struct {
	open DeviceOpener

	mu     sync.Mutex
	active *Handle
}

// NewPlayer returns a Player that opens devices with open.
func NewPlayer(open DeviceOpener) *Player {
	return &Player{open: open}
}

// Play starts playing the clips back to back with no gap and returns
// immediately. A previously active handle is cancelled and waited for
// first, so the device is free when the new playback starts.
func (p *Player) Play(clips []*clipstore.Clip) (*Handle, error) {
	if len(clips) == 0 {
		return nil, fmt.Errorf("no clips to play")
	}

	p.mu.Lock()
	prev := p.active
	h := &Handle{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	p.active = h
	p.mu.Unlock()

	if prev != nil {
		prev.Cancel()
		<-prev.Done()
	}

	go p.run(h, clips)
	return h, nil
}

// Close cancels any active playback and waits for the device release.
func (p *Player) Close() {
	p.mu.Lock()
	active := p.active
	p.mu.Unlock()
	if active != nil {
		active.Cancel()
		<-active.Done()
	}
}

func (p *Player) run(h *Handle, clips []*clipstore.Clip) {
	defer close(h.done)

	dev, err := p.open(clips[0].SampleRate)
	if err != nil {
		h.setErr(fmt.Errorf("failed to open output device: %w", err))
		return
	}
	defer func() {
		if cerr := dev.Close(); cerr != nil && h.Err() == nil {
			h.setErr(fmt.Errorf("failed to close output device: %w", cerr))
		}
	}()

	// The clips are flattened into one stream before chunking. Chunking
	// each clip separately would end every clip on a short write, and a
	// device that pads short writes to full buffers would then insert
	// silence at clip boundaries.
	total := 0
	for _, clip := range clips {
		total += len(clip.Samples)
	}
	samples := make([]int16, 0, total)
	for _, clip := range clips {
		samples = append(samples, clip.Samples...)
	}

	for len(samples) > 0 {
		select {
		case <-h.stop:
			return
		default:
		}
		n := chunkFrames
		if n > len(samples) {
			n = len(samples)
		}
		if err := dev.Write(samples[:n]); err != nil {
			h.setErr(fmt.Errorf("failed to write audio: %w", err))
			return
		}
		samples = samples[n:]
	}
}
