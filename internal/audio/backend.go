package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultSampleRate is used when a backend is given no rate.
	DefaultSampleRate = 44100

	attackTime = 10 * time.Millisecond
	decayFloor = 0.01
)

// Backend renders tones. Implementations must be safe for concurrent use.
type Backend interface {
	Play(tone Tone, volume float64) error
	Close() error
}

// Factory creates a backend. It is invoked lazily on the first tone that
// actually plays, and again after a failed attempt.
type Factory func() (Backend, error)

// NullBackend discards every tone.
type NullBackend struct{}

// Play implements Backend.
func (NullBackend) Play(Tone, float64) error { return nil }

// Close implements Backend.
func (NullBackend) Close() error { return nil }

// NullFactory returns a factory for NullBackend.
func NullFactory() Factory {
	return func() (Backend, error) { return NullBackend{}, nil }
}

// PCMBackend writes tones as signed 16-bit little-endian mono PCM. Tones are
// written one after another; overlapping tones are serialized, not mixed.
type PCMBackend struct {
	mu         sync.Mutex
	w          io.Writer
	closer     io.Closer
	sampleRate int
}

// NewPCMBackend writes to w at sampleRate samples per second.
func NewPCMBackend(w io.Writer, sampleRate int) *PCMBackend {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &PCMBackend{w: w, sampleRate: sampleRate}
}

// SampleRate returns the output rate.
func (b *PCMBackend) SampleRate() int {
	return b.sampleRate
}

// Play implements Backend.
func (b *PCMBackend) Play(tone Tone, volume float64) error {
	samples := Render(tone, volume, b.sampleRate)
	pcm := make([]int16, len(samples))
	for i, v := range samples {
		pcm[i] = toInt16(v)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.w == nil {
		return fmt.Errorf("pcm backend is closed")
	}
	return binary.Write(b.w, binary.LittleEndian, pcm)
}

// Close implements Backend. The underlying writer is closed only when the
// backend opened it.
func (b *PCMBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.w = nil
	if b.closer != nil {
		err := b.closer.Close()
		b.closer = nil
		return err
	}
	return nil
}

// WriterFactory returns a factory producing PCM backends on w.
func WriterFactory(w io.Writer, sampleRate int) Factory {
	return func() (Backend, error) {
		if w == nil {
			return nil, fmt.Errorf("no audio output")
		}
		return NewPCMBackend(w, sampleRate), nil
	}
}

// FileFactory returns a factory that appends PCM to the file at path. The file
// is opened on first use.
func FileFactory(path string, sampleRate int) Factory {
	return func() (Backend, error) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open audio output: %w", err)
		}
		b := NewPCMBackend(f, sampleRate)
		b.closer = f
		return b, nil
	}
}

// MaxToneDuration bounds how much of a single tone is rendered; longer tones
// are cut to it, envelope included.
const MaxToneDuration = 10 * time.Second

// Render synthesizes a sine tone shaped by the gain envelope.
func Render(tone Tone, volume float64, sampleRate int) []float64 {
	n := sampleCount(tone.Duration, sampleRate)
	if n == 0 {
		return nil
	}
	wave := make([]float64, n)
	step := 2 * math.Pi * tone.Frequency / float64(sampleRate)
	for i := range wave {
		wave[i] = math.Sin(step * float64(i))
	}
	return floats.MulTo(wave, wave, Envelope(tone.Duration, volume, sampleRate))
}

// Envelope returns per-sample gain: a linear ramp from silence to volume over
// the first 10ms, then an exponential decay to 0.01 at the end of the tone.
func Envelope(duration time.Duration, volume float64, sampleRate int) []float64 {
	n := sampleCount(duration, sampleRate)
	env := make([]float64, n)
	if n == 0 || volume <= 0 {
		return env
	}

	attack := sampleCount(attackTime, sampleRate)
	if attack > n {
		attack = n
	}
	if attack > 0 {
		ramp := floats.Span(make([]float64, attack+1), 0, volume)
		copy(env, ramp[:attack])
	}

	switch decay := env[attack:]; len(decay) {
	case 0:
	case 1:
		decay[0] = volume
	default:
		floats.LogSpan(decay, volume, decayFloor)
	}
	return env
}

func sampleCount(d time.Duration, sampleRate int) int {
	if d <= 0 || sampleRate <= 0 {
		return 0
	}
	if d > MaxToneDuration {
		d = MaxToneDuration
	}
	return int(d.Seconds() * float64(sampleRate))
}

func toInt16(v float64) int16 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > 1:
		v = 1
	case v < -1:
		v = -1
	}
	return int16(math.Round(v * math.MaxInt16))
}
