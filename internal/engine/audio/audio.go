// Package audio plays sound effects.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Manager mixes sound effects into the speaker.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	muted       bool
	sampleRate  beep.SampleRate
	volume      float64

	// SFX mixer for concurrent sound effects
	mixer     *beep.Mixer
	explosion *beep.Buffer
}

// New creates a new audio manager.
func New(volume float64, muted bool) *Manager {
	return &Manager{
		muted:      muted,
		sampleRate: DefaultSampleRate,
		volume:     clamp(volume, 0, 1),
		mixer:      &beep.Mixer{},
	}
}

// Init opens the speaker. A muted manager never touches the audio device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized || m.muted {
		return nil
	}
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		speaker.Clear()
		m.initialized = false
	}
}

// Muted reports whether playback is disabled.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// SetVolume sets the effects volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the effects volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// LoadExplosion replaces the synthesized explosion with WAV data.
func (m *Manager) LoadExplosion(data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	m.mu.Lock()
	defer m.mu.Unlock()

	var s beep.Streamer = streamer
	out := format
	if format.SampleRate != m.sampleRate {
		s = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
		out.SampleRate = m.sampleRate
	}
	buf := beep.NewBuffer(out)
	buf.Append(s)
	m.explosion = buf
	return nil
}

// PlayExplosion plays the explosion effect.
func (m *Manager) PlayExplosion() error {
	m.mu.RLock()
	muted, initialized := m.muted, m.initialized
	buf, sr := m.explosion, m.sampleRate
	m.mu.RUnlock()

	if muted {
		return nil
	}
	if !initialized {
		return ErrNotInitialized
	}

	var s beep.Streamer
	if buf != nil {
		s = buf.Streamer(0, buf.Len())
	} else {
		var err error
		if s, err = Boom(sr, 400*time.Millisecond); err != nil {
			return err
		}
	}
	speaker.Lock()
	m.add(s)
	speaker.Unlock()
	return nil
}

func (m *Manager) add(s beep.Streamer) {
	vol := m.Volume()
	m.mixer.Add(&effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeToDb(vol) / 6, // base-2 steps of roughly 6 dB
		Silent:   vol <= 0,
	})
}

// Boom synthesizes a short low tone that fades out linearly.
func Boom(sr beep.SampleRate, length time.Duration) (beep.Streamer, error) {
	tone, err := generators.SineTone(sr, 70)
	if err != nil {
		return nil, err
	}
	n := sr.N(length)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		if rest := n - pos; len(samples) > rest {
			samples = samples[:rest]
		}
		k, ok := tone.Stream(samples)
		for i := 0; i < k; i++ {
			g := 1 - float64(pos+i)/float64(n)
			samples[i][0] *= g
			samples[i][1] *= g
		}
		pos += k
		return k, ok
	}), nil
}

// volumeToDb converts a 0-1 volume to decibels.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return 20 * math.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
