package audio

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope(t *testing.T) {
	const rate = 8000
	env := Envelope(100*time.Millisecond, 0.5, rate)
	require.Len(t, env, 800)

	attack := 80
	assert.Equal(t, 0.0, env[0])
	for i := 1; i < attack; i++ {
		assert.Greater(t, env[i], env[i-1], "attack rises at %d", i)
	}
	assert.InDelta(t, 0.5, env[attack], 1e-9)
	for i := attack + 1; i < len(env); i++ {
		assert.Less(t, env[i], env[i-1], "decay falls at %d", i)
	}
	assert.InDelta(t, 0.01, env[len(env)-1], 1e-9)
}

func TestEnvelopeEdgeCases(t *testing.T) {
	assert.Empty(t, Envelope(0, 0.3, 8000))
	assert.Empty(t, Envelope(time.Second, 0.3, 0))

	silent := Envelope(50*time.Millisecond, 0, 8000)
	require.Len(t, silent, 400)
	for _, v := range silent {
		assert.Zero(t, v)
	}

	short := Envelope(5*time.Millisecond, 0.3, 8000)
	require.Len(t, short, 40)
	assert.Equal(t, 0.0, short[0])
	assert.Less(t, short[len(short)-1], 0.3)
}

func TestRender(t *testing.T) {
	samples := Render(Tone{Frequency: 440, Duration: 50 * time.Millisecond}, 1, 8000)
	require.Len(t, samples, 400)
	for _, v := range samples {
		assert.LessOrEqual(t, v, 1.0)
		assert.GreaterOrEqual(t, v, -1.0)
	}
	assert.Nil(t, Render(Tone{Frequency: 440}, 1, 8000))
}

func TestPCMBackend(t *testing.T) {
	var buf bytes.Buffer
	b := NewPCMBackend(&buf, 8000)

	require.NoError(t, b.Play(Tone{Frequency: 800, Duration: 100 * time.Millisecond}, 0.3))
	assert.Equal(t, 1600, buf.Len(), "800 samples of 16 bits")

	pcm := make([]int16, 800)
	require.NoError(t, binary.Read(bytes.NewReader(buf.Bytes()), binary.LittleEndian, pcm))
	assert.Zero(t, pcm[0])
	var peak int16
	for _, v := range pcm {
		if v > peak {
			peak = v
		}
	}
	assert.Greater(t, float64(peak), 0.25*32767)
	assert.LessOrEqual(t, float64(peak), 0.3*32767)

	require.NoError(t, b.Close())
	assert.Error(t, b.Play(Tone{Frequency: 800, Duration: time.Millisecond}, 0.3))
}

func TestRenderCapsLongTones(t *testing.T) {
	const rate = 8000
	samples := Render(Tone{Frequency: 440, Duration: time.Hour}, 0.5, rate)
	assert.Len(t, samples, int(MaxToneDuration.Seconds())*rate)

	env := Envelope(time.Hour, 0.5, rate)
	require.Len(t, env, len(samples))
	assert.InDelta(t, 0.01, env[len(env)-1], 1e-9, "the decay still ends at the floor")
}

func TestPCMBackendDefaultRate(t *testing.T) {
	assert.Equal(t, DefaultSampleRate, NewPCMBackend(&bytes.Buffer{}, 0).SampleRate())
}

func TestToInt16(t *testing.T) {
	assert.Equal(t, int16(32767), toInt16(2))
	assert.Equal(t, int16(-32767), toInt16(-2))
	assert.Equal(t, int16(0), toInt16(0))
}

func TestFileFactory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cues.pcm")
	backend, err := FileFactory(path, 8000)()
	require.NoError(t, err)

	require.NoError(t, backend.Play(Tone{Frequency: 600, Duration: 10 * time.Millisecond}, 0.3))
	require.NoError(t, backend.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(160), info.Size())
}

func TestFileFactoryError(t *testing.T) {
	_, err := FileFactory(filepath.Join(t.TempDir(), "missing", "cues.pcm"), 8000)()
	assert.Error(t, err)
}

func TestWriterFactory(t *testing.T) {
	_, err := WriterFactory(nil, 8000)()
	assert.Error(t, err)

	backend, err := WriterFactory(&bytes.Buffer{}, 8000)()
	require.NoError(t, err)
	assert.NoError(t, backend.Play(Tone{Frequency: 1, Duration: time.Millisecond}, 0.1))
}

func TestNullBackend(t *testing.T) {
	backend, err := NullFactory()()
	require.NoError(t, err)
	assert.NoError(t, backend.Play(Tone{Frequency: 440, Duration: time.Second}, 1))
	assert.NoError(t, backend.Close())
}
