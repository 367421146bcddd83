package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/wav"
)

func TestGainExponent(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
		{0.0, -100},
	}

	for _, tt := range tests {
		if got := gainExponent(tt.vol); got != tt.want {
			t.Errorf("gainExponent(%f) = %f, want %f", tt.vol, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNewManager(t *testing.T) {
	m := New()
	if m.GetMasterVolume() != 1.0 {
		t.Errorf("default master volume = %f, want 1.0", m.GetMasterVolume())
	}
	if m.GetSFXVolume() != 1.0 {
		t.Errorf("default SFX volume = %f, want 1.0", m.GetSFXVolume())
	}
	if m.IsInitialized() {
		t.Error("new manager should not be initialized")
	}

	m.SetMasterVolume(2)
	m.SetSFXVolume(-1)
	if m.GetMasterVolume() != 1 || m.GetSFXVolume() != 0 {
		t.Errorf("volumes not clamped: %f %f", m.GetMasterVolume(), m.GetSFXVolume())
	}
}

func TestPlayBeforeInit(t *testing.T) {
	m := New()
	m.Synthesize(CueFlip)
	if err := m.Play(CueFlip); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Play before Init = %v, want ErrNotInitialized", err)
	}
}

func TestSynthesize(t *testing.T) {
	m := New()
	if m.Samples(CueCover) != 0 {
		t.Fatal("cue present before loading")
	}
	m.Synthesize(CueFlip)
	m.Synthesize(CueCover)

	flip, cover := m.Samples(CueFlip), m.Samples(CueCover)
	if flip != DefaultSampleRate.N(180e6) {
		t.Errorf("flip samples = %d", flip)
	}
	if cover <= flip {
		t.Errorf("cover (%d) should outlast flip (%d)", cover, flip)
	}
}

func TestLoadResamples(t *testing.T) {
	format := beep.Format{SampleRate: 22050, NumChannels: 1, Precision: 2}
	tone, err := generators.SineTone(format.SampleRate, 440)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := wav.Encode(f, beep.Take(format.SampleRate.N(1e8), tone), format); err != nil {
		t.Fatal(err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	m := New()
	if err := m.Load(CueFlip, data); err != nil {
		t.Fatalf("Load: %v", err)
	}
	// 100ms at 44.1kHz, give or take the resampler's edge.
	if n := m.Samples(CueFlip); n < 4300 || n > 4500 {
		t.Errorf("resampled length = %d, want about 4410", n)
	}

	if err := m.Load(CueCover, []byte("RIFF nope")); err == nil {
		t.Error("Load accepted garbage")
	}
}

func TestCueString(t *testing.T) {
	if CueFlip.String() != "flip" || CueCover.String() != "cover" || Cue(9).String() != "Cue(9)" {
		t.Error("unexpected cue names")
	}
}
