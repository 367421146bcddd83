package book

import (
	"go.uber.org/zap"

	"github.com/Faultbox/folio/internal/engine/scene"
	"github.com/Faultbox/folio/internal/logger"
	"github.com/Faultbox/folio/internal/timeline"
)

// Direction is a requested turn direction.
type Direction int

const (
	None Direction = iota
	Forward
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "none"
	}
}

// Kind identifies a structural transition.
type Kind int

const (
	OpenCover Kind = iota
	CloseCover
	TurnForward
	TurnBackward
)

func (k Kind) String() string {
	switch k {
	case OpenCover:
		return "open-cover"
	case CloseCover:
		return "close-cover"
	case TurnForward:
		return "turn-forward"
	case TurnBackward:
		return "turn-backward"
	default:
		return "unknown"
	}
}

// Transition describes one accepted request.
type Transition struct {
	Kind Kind
	From int // Leaf before
	To   int // Leaf after
	Page int // Turning page index, -1 for cover transitions
}

// Machine is the turn state machine. It tracks the current leaf, accepts
// at most one transition at a time and drops requests made while one is
// running. It must only be used from the frame loop goroutine.
type Machine struct {
	asm  *Assembly
	seq  *timeline.Sequencer
	anim Animation
	log  *zap.Logger

	leaf     int
	pending  Direction
	inFlight bool

	// Page poses recorded before a forward turn, restored when the page
	// turns back.
	beforeTurn map[int]scene.Pose

	onLeafChanged []func(leaf int)
	onStart       []func(Transition)
}

// NewMachine creates a machine for a closed book.
func NewMachine(asm *Assembly, seq *timeline.Sequencer, anim Animation) *Machine {
	return &Machine{
		asm:        asm,
		seq:        seq,
		anim:       anim,
		log:        logger.Named("book"),
		beforeTurn: make(map[int]scene.Pose),
	}
}

// SetAnimation replaces timing for transitions started afterwards.
func (m *Machine) SetAnimation(anim Animation) {
	m.anim = anim
}

// CurrentLeaf returns the book position: 0 closed, 1 cover open, up to
// pages+1 with every page turned.
func (m *Machine) CurrentLeaf() int {
	return m.leaf
}

// InFlight reports whether a transition is running.
func (m *Machine) InFlight() bool {
	return m.inFlight
}

// Pending returns the direction of the running transition.
func (m *Machine) Pending() Direction {
	return m.pending
}

// OnLeafChanged registers fn to run once each time a transition completes.
func (m *Machine) OnLeafChanged(fn func(leaf int)) {
	m.onLeafChanged = append(m.onLeafChanged, fn)
}

// OnTransitionStart registers fn to run when a request is accepted.
func (m *Machine) OnTransitionStart(fn func(Transition)) {
	m.onStart = append(m.onStart, fn)
}

// Advance requests a forward transition and reports whether it started.
func (m *Machine) Advance() bool {
	return m.request(Forward)
}

// Retreat requests a backward transition and reports whether it started.
func (m *Machine) Retreat() bool {
	return m.request(Backward)
}

// Next returns the transition dir would start from the current leaf.
func (m *Machine) Next(dir Direction) (Transition, bool) {
	last := len(m.asm.Pages) + 1
	switch {
	case dir == Forward && m.leaf == 0:
		return Transition{Kind: OpenCover, From: 0, To: 1, Page: -1}, true
	case dir == Forward && m.leaf < last:
		return Transition{Kind: TurnForward, From: m.leaf, To: m.leaf + 1, Page: m.leaf - 1}, true
	case dir == Backward && m.leaf == 1:
		return Transition{Kind: CloseCover, From: 1, To: 0, Page: -1}, true
	case dir == Backward && m.leaf > 1:
		return Transition{Kind: TurnBackward, From: m.leaf, To: m.leaf - 1, Page: m.leaf - 2}, true
	}
	return Transition{}, false
}

func (m *Machine) request(dir Direction) bool {
	if m.inFlight {
		m.log.Debug("request dropped", zap.Stringer("dir", dir), zap.String("reason", "in flight"))
		return false
	}
	tr, ok := m.Next(dir)
	if !ok {
		m.log.Debug("request dropped", zap.Stringer("dir", dir), zap.Int("leaf", m.leaf), zap.String("reason", "boundary"))
		return false
	}

	m.inFlight = true
	m.pending = dir
	m.log.Debug("transition start",
		zap.Stringer("kind", tr.Kind),
		zap.Int("from", tr.From),
		zap.Int("to", tr.To),
		zap.Int("page", tr.Page))

	for _, fn := range m.onStart {
		fn(tr)
	}

	done := func() { m.complete(tr) }
	switch tr.Kind {
	case OpenCover:
		m.seq.Play(m.openCover(done)...)
	case CloseCover:
		m.seq.Play(m.closeCover(done)...)
	case TurnForward:
		m.seq.Play(m.turnForward(tr.Page, done))
	case TurnBackward:
		m.seq.Play(m.turnBackward(tr.Page, done))
	}
	return true
}

func (m *Machine) complete(tr Transition) {
	m.leaf = tr.To
	m.inFlight = false
	m.pending = None
	m.log.Debug("transition complete", zap.Stringer("kind", tr.Kind), zap.Int("leaf", m.leaf))

	for _, fn := range m.onLeafChanged {
		fn(m.leaf)
	}
}

// Reset returns an idle book to its closed rest pose. It refuses while a
// transition is running.
func (m *Machine) Reset() bool {
	if m.inFlight {
		return false
	}
	m.asm.Reset()
	clear(m.beforeTurn)
	changed := m.leaf != 0
	m.leaf = 0
	if changed {
		for _, fn := range m.onLeafChanged {
			fn(0)
		}
	}
	return true
}
