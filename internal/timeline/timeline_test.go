package timeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

const frame = time.Second / 60

func runUntilIdle(t *testing.T, s *Sequencer, maxFrames int) int {
	t.Helper()
	for i := 1; i <= maxFrames; i++ {
		s.Advance(frame)
		if s.Idle() {
			return i
		}
	}
	t.Fatalf("sequencer still running after %d frames", maxFrames)
	return 0
}

func TestTrackReachesEndExactly(t *testing.T) {
	var v float32
	tl := New("rotate")
	tl.To(0, -3.14159, time.Second, ease.InOutCubic, func(x float32) { v = x })

	s := NewSequencer()
	s.Play(tl)
	frames := runUntilIdle(t, s, 120)

	assert.Equal(t, float32(-3.14159), v)
	assert.InDelta(t, 60, frames, 1)
	assert.True(t, tl.Done())
}

func TestEasingShapesValue(t *testing.T) {
	var linear, cubic float32
	tl := New("mixed")
	tl.To(0, 1, time.Second, ease.Linear, func(x float32) { linear = x })
	tl.To(0, 1, time.Second, ease.InCubic, func(x float32) { cubic = x })

	tl.Advance(0.5)

	assert.InDelta(t, 0.5, linear, 1e-5)
	assert.InDelta(t, 0.125, cubic, 1e-5)
}

func TestOnTickEveryFrameAndCompleteOnce(t *testing.T) {
	var ticks, trackDone, done int
	var lastSeen float32
	var v float32

	tl := New("ticks")
	tl.To(0, 1, 100*time.Millisecond, nil, func(x float32) { v = x }).
		OnComplete(func() { trackDone++ })
	tl.OnTick(func() { ticks++; lastSeen = v }).
		OnComplete(func() { done++ })

	for i := 0; i < 10; i++ {
		tl.Advance(0.03)
	}

	assert.Equal(t, 4, ticks, "one tick per advanced frame until done")
	assert.Equal(t, float32(1), lastSeen, "final tick sees the end value")
	assert.Equal(t, 1, trackDone)
	assert.Equal(t, 1, done)
}

func TestTrackCompletesIndependently(t *testing.T) {
	var order []string
	tl := New("parallel")
	tl.To(0, 1, 100*time.Millisecond, nil, func(float32) {}).
		OnComplete(func() { order = append(order, "short") })
	tl.To(0, 1, 300*time.Millisecond, nil, func(float32) {}).
		OnComplete(func() { order = append(order, "long") })
	tl.OnComplete(func() { order = append(order, "timeline") })

	tl.Advance(0.2)
	assert.Equal(t, []string{"short"}, order)
	assert.False(t, tl.Done())

	tl.Advance(0.2)
	assert.Equal(t, []string{"short", "long", "timeline"}, order)
}

func TestDelaySkipsTicksAndCarriesOverflow(t *testing.T) {
	var v float32
	ticks := 0
	tl := New("delayed").Delay(100 * time.Millisecond)
	tl.To(0, 1, time.Second, nil, func(x float32) { v = x })
	tl.OnTick(func() { ticks++ })

	tl.Advance(0.05)
	assert.Zero(t, ticks)
	assert.Zero(t, v)

	tl.Advance(0.15)
	assert.Equal(t, 1, ticks)
	assert.InDelta(t, 0.1, v, 1e-5)
}

func TestStartAppliesFromValue(t *testing.T) {
	v := float32(42)
	tl := New("from")
	tl.To(5, 10, time.Second, nil, func(x float32) { v = x })

	tl.Advance(0)
	assert.Equal(t, float32(5), v)
}

func TestEmptyTimelineCompletesOnFirstAdvance(t *testing.T) {
	done := false
	tl := New("empty").OnComplete(func() { done = true })

	assert.True(t, tl.Advance(0))
	assert.True(t, done)
}

func TestSequencerPlayFromCallbackStartsNextFrame(t *testing.T) {
	s := NewSequencer()
	var second *Timeline
	started := false

	first := New("first")
	first.To(0, 1, 0, nil, func(float32) {})
	first.OnComplete(func() {
		second = New("second")
		second.To(0, 1, time.Second, nil, func(float32) { started = true })
		s.Play(second)
	})
	s.Play(first)

	s.Advance(frame)
	assert.Equal(t, 1, s.Active())
	assert.False(t, started, "timelines played from a callback wait for the next frame")

	s.Advance(frame)
	assert.True(t, started)
}

func TestSequencerClock(t *testing.T) {
	s := NewSequencer()
	s.Advance(frame)
	s.Advance(frame)
	s.Advance(-frame)

	assert.Equal(t, 2*frame, s.Now())
	assert.True(t, s.Idle())
}

func TestEasingLookup(t *testing.T) {
	fn, err := Easing("in-out-cubic")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, fn(0.5, 0, 1, 1), 1e-5)

	_, err = Easing("wobble")
	assert.True(t, errors.Is(err, ErrUnknownEasing))

	names := EasingNames()
	assert.Contains(t, names, "linear")
	assert.IsIncreasing(t, names)
}
