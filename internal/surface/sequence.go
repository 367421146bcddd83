package surface

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// FrameExts are the file extensions read as sequence frames.
var FrameExts = []string{".png", ".jpg", ".jpeg", ".bmp", ".tga"}

// FrameSequence plays a list of frames in a loop at a fixed rate, only
// while active. Frames are loaded off the frame loop; until loading
// finishes the sequence is not Ready.
type FrameSequence struct {
	frames atomic.Pointer[[]*image.RGBA]

	interval time.Duration
	elapsed  time.Duration
	index    int
	active   bool
}

// NewFrameSequence creates an empty sequence playing at fps.
func NewFrameSequence(fps float32) *FrameSequence {
	if fps <= 0 {
		fps = 24
	}
	return &FrameSequence{interval: time.Duration(float64(time.Second) / float64(fps))}
}

// Load decodes every file concurrently and publishes the frames in order.
// read returns the bytes of one file.
func (s *FrameSequence) Load(ctx context.Context, files []string, size int, read func(string) ([]byte, error)) error {
	if len(files) == 0 {
		return fmt.Errorf("frame sequence: no frames")
	}

	frames := make([]*image.RGBA, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := read(file)
			if err != nil {
				return err
			}
			img, err := Decode(data, size)
			if err != nil {
				return fmt.Errorf("frame %s: %w", file, err)
			}
			frames[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.frames.Store(&frames)
	return nil
}

// Len returns the number of loaded frames.
func (s *FrameSequence) Len() int {
	if f := s.frames.Load(); f != nil {
		return len(*f)
	}
	return 0
}

// Index returns the current frame index.
func (s *FrameSequence) Index() int {
	return s.index
}

func (s *FrameSequence) Frame() *image.RGBA {
	f := s.frames.Load()
	if f == nil || len(*f) == 0 {
		return nil
	}
	return (*f)[s.index%len(*f)]
}

func (s *FrameSequence) Ready() bool {
	return s.Len() > 0
}

func (s *FrameSequence) Advance(dt time.Duration) bool {
	n := s.Len()
	if !s.active || n < 2 {
		return false
	}
	s.elapsed += dt
	steps := int(s.elapsed / s.interval)
	if steps == 0 {
		return false
	}
	s.elapsed -= time.Duration(steps) * s.interval
	s.index = (s.index + steps) % n
	return true
}

func (s *FrameSequence) Activate() {
	s.active = true
}

// Deactivate pauses playback and rewinds to the first frame.
func (s *FrameSequence) Deactivate() {
	s.active = false
	s.elapsed = 0
	s.index = 0
}

func (s *FrameSequence) Dynamic() bool {
	return true
}

// Active reports whether the sequence is playing.
func (s *FrameSequence) Active() bool {
	return s.active
}
