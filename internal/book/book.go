package book

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/folio/internal/config"
	"github.com/Faultbox/folio/internal/deform"
	"github.com/Faultbox/folio/internal/engine/scene"
	"github.com/Faultbox/folio/internal/logger"
	"github.com/Faultbox/folio/internal/timeline"
)

// DefaultFPS is the frame rate scroll smoothing assumes when none is given.
const DefaultFPS = 60

const settleTolerance = 1e-3

// Book is the page-turning core: one assembly and one deformation model
// driven either by the turn state machine or by scroll progress.
type Book struct {
	Assembly *Assembly
	Model    *deform.Model

	mode    string
	fps     int
	seq     *timeline.Sequencer
	machine *Machine
	scroll  *ScrollMapper
	log     *zap.Logger
}

// New builds a closed book from cfg. fps is the expected frame rate, used
// only by scroll smoothing.
func New(cfg *config.Config, fps int) (*Book, error) {
	if fps <= 0 {
		fps = DefaultFPS
	}
	asm, err := NewAssembly(cfg.Book, MotionFrom(cfg.Animation))
	if err != nil {
		return nil, err
	}
	anim, err := NewAnimation(cfg.Animation)
	if err != nil {
		return nil, fmt.Errorf("animation: %w", err)
	}

	b := &Book{
		Assembly: asm,
		Model:    deform.New(cfg.Book.PageWidth, cfg.Book.PageHeight, cfg.Deform),
		mode:     cfg.Book.Mode,
		fps:      fps,
		seq:      timeline.NewSequencer(),
		log:      logger.Named("book"),
	}
	b.machine = NewMachine(asm, b.seq, anim)
	b.scroll = NewScrollMapper(asm, cfg.Scroll, fps)
	b.log.Info("book ready",
		zap.Int("pages", asm.NumPages()),
		zap.String("mode", b.mode))
	return b, nil
}

// Mode returns config.ModeClick or config.ModeScroll.
func (b *Book) Mode() string {
	return b.mode
}

// Machine returns the click-mode state machine.
func (b *Book) Machine() *Machine {
	return b.machine
}

// Scroller returns the scroll-mode mapper.
func (b *Book) Scroller() *ScrollMapper {
	return b.scroll
}

// Advance requests the next leaf. Ignored in scroll mode, at the last leaf
// and while a transition is running.
func (b *Book) Advance() bool {
	if b.mode != config.ModeClick {
		return false
	}
	return b.machine.Advance()
}

// Retreat requests the previous leaf. Ignored in scroll mode, when closed
// and while a transition is running.
func (b *Book) Retreat() bool {
	if b.mode != config.ModeClick {
		return false
	}
	return b.machine.Retreat()
}

// CurrentLeaf returns the current book position.
func (b *Book) CurrentLeaf() int {
	if b.mode == config.ModeScroll {
		return b.scroll.CurrentLeaf()
	}
	return b.machine.CurrentLeaf()
}

// InFlight reports whether a click-mode transition is running.
func (b *Book) InFlight() bool {
	return b.machine.InFlight()
}

// OnLeafChanged registers fn for completed transitions in click mode and
// crossed leaves in scroll mode.
func (b *Book) OnLeafChanged(fn func(leaf int)) {
	b.machine.OnLeafChanged(fn)
	b.scroll.OnLeafChanged(fn)
}

// OnTransitionStart registers fn for accepted click-mode requests.
func (b *Book) OnTransitionStart(fn func(Transition)) {
	b.machine.OnTransitionStart(fn)
}

// Scroll sets the scroll ratio applied on the next Tick.
func (b *Book) Scroll(ratio float32) {
	b.scroll.SetRatio(ratio)
}

// ScrollBy moves the scroll offset by px.
func (b *Book) ScrollBy(px float32) {
	b.scroll.ScrollBy(px)
}

// Tick advances the book by one frame of dt. Call it exactly once per
// rendered frame, after input has been handled.
func (b *Book) Tick(dt time.Duration) {
	if b.mode == config.ModeScroll {
		b.scroll.Update()
		return
	}
	b.seq.Advance(dt)
}

// Reset closes the book instantly. In click mode it refuses while a
// transition is running; in scroll mode it rewinds to progress 0.
func (b *Book) Reset() bool {
	if b.mode == config.ModeScroll {
		b.scroll.SetRatio(0)
		return true
	}
	return b.machine.Reset()
}

// Settled reports whether the book has reached its requested pose: no
// transition running in click mode, smoothing converged in scroll mode.
func (b *Book) Settled() bool {
	if b.mode == config.ModeScroll {
		return math32.Abs(b.scroll.Progress()-b.scroll.Target()) < settleTolerance
	}
	return b.seq.Idle()
}

// PartPose is a named hinge pose for reporting.
type PartPose struct {
	Name string
	Pose scene.Pose
}

// Poses lists every hinge of the assembly, parents first.
func (b *Book) Poses() []PartPose {
	var out []PartPose
	b.Assembly.Root.Walk(func(h *scene.Hinge) {
		out = append(out, PartPose{Name: h.Name, Pose: h.Snapshot()})
	})
	return out
}

// Idle reports whether nothing is animating.
func (b *Book) Idle() bool {
	return b.seq.Idle()
}

// Reconfigure applies settings that can change while running: deformation
// profile, animation timing and scroll mapping. Page count, dimensions and
// mode are fixed at construction and changes to them are ignored.
func (b *Book) Reconfigure(cfg *config.Config) error {
	anim, err := NewAnimation(cfg.Animation)
	if err != nil {
		return fmt.Errorf("animation: %w", err)
	}
	if cfg.Book.Pages != b.Assembly.NumPages() || cfg.Book.Mode != b.mode {
		b.log.Warn("page count and mode changes need a restart",
			zap.Int("pages", cfg.Book.Pages),
			zap.String("mode", cfg.Book.Mode))
	}
	b.machine.SetAnimation(anim)
	b.Assembly.Motion = MotionFrom(cfg.Animation)
	b.Model.Configure(cfg.Deform)
	b.scroll.Configure(cfg.Scroll, b.fps)
	return nil
}
