package timeline

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/folio/internal/logger"
)

// Sequencer advances running timelines against a shared virtual clock.
type Sequencer struct {
	now    time.Duration
	active []*Timeline
}

// NewSequencer creates an idle sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Play schedules timelines to start on the next Advance.
func (s *Sequencer) Play(timelines ...*Timeline) {
	for _, tl := range timelines {
		logger.Debug("timeline play", zap.String("name", tl.Name), zap.Duration("at", s.now))
		s.active = append(s.active, tl)
	}
}

// Advance moves the clock by dt and samples every running timeline once.
// Finished timelines are dropped. Timelines played from a callback start
// on the following Advance.
func (s *Sequencer) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.now += dt

	running := s.active
	s.active = nil

	var kept []*Timeline
	step := float32(dt.Seconds())
	for _, tl := range running {
		if tl.Advance(step) {
			logger.Debug("timeline complete", zap.String("name", tl.Name), zap.Duration("at", s.now))
			continue
		}
		kept = append(kept, tl)
	}
	s.active = append(kept, s.active...)
}

// Active returns the number of running timelines.
func (s *Sequencer) Active() int {
	return len(s.active)
}

// Idle reports whether nothing is running.
func (s *Sequencer) Idle() bool {
	return len(s.active) == 0
}

// Now returns the virtual clock.
func (s *Sequencer) Now() time.Duration {
	return s.now
}
