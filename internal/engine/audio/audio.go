// Package audio plays the page and cover sound effects.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

var (
	// ErrNotInitialized is returned by Play before Init succeeds.
	ErrNotInitialized = errors.New("audio not initialized")
	// ErrNoSound is returned by Play for a cue with nothing loaded.
	ErrNoSound = errors.New("no sound for cue")
)

// Cue names a sound effect.
type Cue int

const (
	CueFlip Cue = iota
	CueCover
)

func (c Cue) String() string {
	switch c {
	case CueFlip:
		return "flip"
	case CueCover:
		return "cover"
	default:
		return fmt.Sprintf("Cue(%d)", int(c))
	}
}

// Manager decodes cues once and mixes them on the speaker.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	format      beep.Format

	masterVolume float64
	sfxVolLevel  float64

	sounds   map[Cue]*beep.Buffer
	sfxMixer *beep.Mixer
}

// New creates a manager with full volume and no sounds loaded.
func New() *Manager {
	return &Manager{
		format:       beep.Format{SampleRate: DefaultSampleRate, NumChannels: 2, Precision: 2},
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		sounds:       make(map[Cue]*beep.Buffer),
		sfxMixer:     &beep.Mixer{},
	}
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	sr := m.format.SampleRate
	if err := speaker.Init(sr, sr.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.sfxMixer)
	m.initialized = true
	return nil
}

// Close stops playback.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		speaker.Clear()
		m.initialized = false
	}
}

// IsInitialized returns whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the effect volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the effect volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// Load decodes WAV data for cue, resampling it to the output rate.
func (m *Manager) Load(cue Cue, data []byte) error {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != m.format.SampleRate {
		s = beep.Resample(4, format.SampleRate, m.format.SampleRate, streamer)
	}
	m.store(cue, s)
	return nil
}

// Synthesize fills cue with a short decaying noise burst, used when no
// sound file is configured.
func (m *Manager) Synthesize(cue Cue) {
	length, gain := 180*time.Millisecond, 0.25
	if cue == CueCover {
		length, gain = 320*time.Millisecond, 0.35
	}
	n := m.format.SampleRate.N(length)
	rng := rand.New(rand.NewPCG(uint64(cue)+1, 7))
	pos := 0
	noise := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		k := 0
		for ; k < len(samples) && pos < n; k++ {
			t := float64(pos) / float64(n)
			v := (rng.Float64()*2 - 1) * gain * math.Sin(math.Pi*t) * (1 - t)
			samples[k] = [2]float64{v, v}
			pos++
		}
		return k, true
	})
	m.store(cue, noise)
}

func (m *Manager) store(cue Cue, s beep.Streamer) {
	buf := beep.NewBuffer(m.format)
	buf.Append(s)

	m.mu.Lock()
	m.sounds[cue] = buf
	m.mu.Unlock()
}

// Samples returns the decoded length of cue, zero when absent.
func (m *Manager) Samples(cue Cue) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if buf, ok := m.sounds[cue]; ok {
		return buf.Len()
	}
	return 0
}

// Play mixes cue in at the current volume.
func (m *Manager) Play(cue Cue) error {
	m.mu.RLock()
	initialized := m.initialized
	buf := m.sounds[cue]
	sfxVol := m.masterVolume * m.sfxVolLevel
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if buf == nil {
		return fmt.Errorf("%w: %s", ErrNoSound, cue)
	}

	speaker.Lock()
	m.sfxMixer.Add(&effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   gainExponent(sfxVol),
		Silent:   sfxVol <= 0,
	})
	speaker.Unlock()
	return nil
}

// gainExponent converts a 0-1 volume to the exponent effects.Volume expects
// with base 2.
func gainExponent(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
