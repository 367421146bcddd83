// Package timeline drives values over time with easing curves.
//
// A Track interpolates one value and hands it to a setter. A Timeline groups
// tracks that share a clock and an optional start delay. The Sequencer owns
// the running timelines and advances them once per frame; nothing here
// blocks or spawns goroutines.
package timeline

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Setter receives the interpolated value of a track.
type Setter func(v float32)

// Track interpolates a single value from a start to an end value.
type Track struct {
	from  float32
	tween *gween.Tween
	set   Setter
	done  bool

	onComplete func()
}

// NewTrack creates a track moving from -> to over duration with easing.
func NewTrack(from, to float32, duration time.Duration, easing ease.TweenFunc, set Setter) *Track {
	if easing == nil {
		easing = ease.Linear
	}
	return &Track{
		from:  from,
		tween: gween.New(from, to, float32(duration.Seconds()), easing),
		set:   set,
	}
}

// OnComplete registers fn to run once when the track reaches its end value.
func (t *Track) OnComplete(fn func()) *Track {
	t.onComplete = fn
	return t
}

// Done reports whether the track has reached its end value.
func (t *Track) Done() bool {
	return t.done
}

func (t *Track) start() {
	t.tween.Reset()
	t.set(t.from)
}

func (t *Track) advance(dt float32) {
	if t.done {
		return
	}
	v, finished := t.tween.Update(dt)
	t.set(v)
	t.done = finished
}

// Timeline is a group of tracks on a common clock.
type Timeline struct {
	Name string

	tracks  []*Track
	delay   float32
	started bool
	done    bool

	onTick     func()
	onComplete func()
}

// New creates an empty timeline.
func New(name string) *Timeline {
	return &Timeline{Name: name}
}

// Delay postpones the start of every track by d.
func (tl *Timeline) Delay(d time.Duration) *Timeline {
	tl.delay = float32(d.Seconds())
	return tl
}

// Add appends tracks to the timeline.
func (tl *Timeline) Add(tracks ...*Track) *Timeline {
	tl.tracks = append(tl.tracks, tracks...)
	return tl
}

// To adds a track and returns it so per-track callbacks can be attached.
func (tl *Timeline) To(from, to float32, duration time.Duration, easing ease.TweenFunc, set Setter) *Track {
	track := NewTrack(from, to, duration, easing, set)
	tl.tracks = append(tl.tracks, track)
	return track
}

// OnTick registers fn to run after the tracks are sampled on every frame
// the timeline advances, including the final one. It does not run while
// the timeline is still delayed.
func (tl *Timeline) OnTick(fn func()) *Timeline {
	tl.onTick = fn
	return tl
}

// OnComplete registers fn to run once after every track has completed.
func (tl *Timeline) OnComplete(fn func()) *Timeline {
	tl.onComplete = fn
	return tl
}

// Done reports whether every track has completed.
func (tl *Timeline) Done() bool {
	return tl.done
}

// Advance moves the timeline forward by dt seconds and reports whether it
// has finished. Within one call tracks are sampled first, then OnTick runs,
// then the completion callbacks of tracks that just ended, then the
// timeline's own OnComplete.
func (tl *Timeline) Advance(dt float32) bool {
	if tl.done {
		return true
	}
	if tl.delay > 0 {
		if dt < tl.delay {
			tl.delay -= dt
			return false
		}
		dt -= tl.delay
		tl.delay = 0
	}
	if !tl.started {
		tl.started = true
		for _, t := range tl.tracks {
			t.start()
		}
	}

	var finished []*Track
	for _, t := range tl.tracks {
		if t.done {
			continue
		}
		t.advance(dt)
		if t.done {
			finished = append(finished, t)
		}
	}

	if tl.onTick != nil {
		tl.onTick()
	}
	for _, t := range finished {
		if t.onComplete != nil {
			t.onComplete()
		}
	}

	for _, t := range tl.tracks {
		if !t.done {
			return false
		}
	}
	tl.done = true
	if tl.onComplete != nil {
		tl.onComplete()
	}
	return true
}
