// Package audio implements the buzzer that plays a tone while the sound
// timer of the CPU is active.
package audio

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

// SampleRate is the output sample rate in Hz.
const SampleRate = 44100

const bytesPerSample = 4 // mono float32

// Tone generates a square wave as little endian float32 samples. The wave
// is silent while the tone is not active.
type Tone struct {
	active atomic.Bool
	step   float64 // phase increment per sample
	volume float32
	phase  float64
}

// NewTone returns a square wave generator for the given frequency in Hz
// and volume in the range 0-1.
func NewTone(frequency, volume float64) *Tone {
	return &Tone{
		step:   frequency / SampleRate,
		volume: float32(volume),
	}
}

// SetActive starts or stops the tone. It is safe to call concurrently
// with Read.
func (t *Tone) SetActive(active bool) {
	t.active.Store(active)
}

// Active returns whether the tone is playing.
func (t *Tone) Active() bool {
	return t.active.Load()
}

// Read fills p with samples, it never returns an error.
func (t *Tone) Read(p []byte) (int, error) {
	n := len(p) / bytesPerSample * bytesPerSample
	if !t.active.Load() {
		clear(p[:n])
		t.phase = 0
		return n, nil
	}

	for i := 0; i < n; i += bytesPerSample {
		sample := t.volume
		if t.phase >= 0.5 {
			sample = -sample
		}
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(sample))

		t.phase += t.step
		if t.phase >= 1 {
			t.phase -= math.Floor(t.phase)
		}
	}
	return n, nil
}

// Null is a buzzer that discards all state changes.
type Null struct{}

// SetActive does nothing.
func (Null) SetActive(bool) {}
