// Package simulate drives a book headlessly from a script of requests.
package simulate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/folio/internal/book"
	"github.com/Faultbox/folio/internal/config"
	"github.com/Faultbox/folio/internal/logger"
)

// ErrBadScript is returned for an unparseable simulation script.
var ErrBadScript = errors.New("bad script")

// Op is a scripted request.
type Op int

const (
	OpAdvance Op = iota
	OpRetreat
	OpScroll
	OpReset
	OpBurst // Advance twice in the same frame
)

// Command is one step of a simulation script.
type Command struct {
	Op    Op
	Ratio float32 // OpScroll only
}

// ParseScript reads a whitespace-separated script. Tokens are a (advance),
// r (retreat), aa (two advances in one frame), x (reset) and s=<ratio>
// (scroll to ratio).
func ParseScript(script string) ([]Command, error) {
	var cmds []Command
	for _, tok := range strings.Fields(script) {
		switch {
		case tok == "a":
			cmds = append(cmds, Command{Op: OpAdvance})
		case tok == "r":
			cmds = append(cmds, Command{Op: OpRetreat})
		case tok == "aa":
			cmds = append(cmds, Command{Op: OpBurst})
		case tok == "x":
			cmds = append(cmds, Command{Op: OpReset})
		case strings.HasPrefix(tok, "s="):
			v, err := strconv.ParseFloat(tok[2:], 32)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrBadScript, tok, err)
			}
			cmds = append(cmds, Command{Op: OpScroll, Ratio: float32(v)})
		default:
			return nil, fmt.Errorf("%w: unknown token %q", ErrBadScript, tok)
		}
	}
	return cmds, nil
}

// LeafChange records a leaf change during a simulation.
type LeafChange struct {
	Frame int
	Leaf  int
}

// Report is the outcome of a simulation.
type Report struct {
	Frames   int
	Leaf     int
	Accepted int // Requests that started a transition
	Changes  []LeafChange
	Poses    []book.PartPose
}

// maxSettleTime bounds how long one command may animate.
const maxSettleTime = time.Minute

// Simulate builds a book from cfg and runs cmds at fps without a window.
// Each command is issued on its own frame and followed by frames until the
// book settles.
func Simulate(cfg *config.Config, cmds []Command, fps int) (*Report, error) {
	if fps <= 0 {
		fps = book.DefaultFPS
	}
	b, err := book.New(cfg, fps)
	if err != nil {
		return nil, err
	}

	log := logger.Named("simulate")
	rep := &Report{}
	b.OnLeafChanged(func(leaf int) {
		rep.Changes = append(rep.Changes, LeafChange{Frame: rep.Frames, Leaf: leaf})
		log.Info("leaf changed", zap.Int("frame", rep.Frames), zap.Int("leaf", leaf))
	})
	b.OnTransitionStart(func(t book.Transition) {
		log.Debug("transition", zap.Stringer("kind", t.Kind), zap.Int("from", t.From), zap.Int("to", t.To))
	})

	dt := time.Second / time.Duration(fps)
	maxFrames := int(maxSettleTime / dt)
	frame := func() {
		b.Tick(dt)
		rep.Frames++
	}

	for _, c := range cmds {
		switch c.Op {
		case OpAdvance:
			rep.Accepted += accepted(b.Advance())
		case OpRetreat:
			rep.Accepted += accepted(b.Retreat())
		case OpBurst:
			rep.Accepted += accepted(b.Advance())
			rep.Accepted += accepted(b.Advance())
		case OpReset:
			b.Reset()
		case OpScroll:
			b.Scroll(c.Ratio)
		}
		frame()
		for n := 0; !b.Settled(); n++ {
			if n >= maxFrames {
				return rep, fmt.Errorf("book did not settle within %v", maxSettleTime)
			}
			frame()
		}
	}

	rep.Leaf = b.CurrentLeaf()
	rep.Poses = b.Poses()
	return rep, nil
}

func accepted(ok bool) int {
	if ok {
		return 1
	}
	return 0
}
