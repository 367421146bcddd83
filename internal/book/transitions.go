package book

import (
	"fmt"

	"github.com/Faultbox/folio/internal/timeline"
	"github.com/Faultbox/folio/pkg/math"
)

// join returns a callback that runs fn on its n-th call.
func join(n int, fn func()) func() {
	return func() {
		n--
		if n == 0 {
			fn()
		}
	}
}

// coverGroups builds the two cover timelines: the cover swing and slide,
// and the spine slide starting SpineStagger later. Page stack spread, spine
// lean and opening bend follow the cover on every tick.
func (m *Machine) coverGroups(name string, rotation, shift float32, done func()) []*timeline.Timeline {
	a := m.asm
	both := join(2, done)

	cover := timeline.New(name + "-cover")
	cover.To(a.Cover.Rotation, rotation, m.anim.CoverDuration, m.anim.CoverEasing, func(v float32) {
		a.Cover.Rotation = v
	})
	cover.To(a.CoverShift(), shift, m.anim.CoverDuration, m.anim.CoverEasing, a.SetCoverShift)
	cover.OnTick(a.PoseCoverDerived)
	cover.OnComplete(both)

	spine := timeline.New(name + "-spine").Delay(m.anim.SpineStagger)
	spine.To(a.SpineShift(), shift, m.anim.CoverDuration, m.anim.CoverEasing, a.SetSpineShift)
	spine.OnComplete(both)

	return []*timeline.Timeline{cover, spine}
}

func (m *Machine) openCover(done func()) []*timeline.Timeline {
	return m.coverGroups("open", -math.Pi, 1, done)
}

func (m *Machine) closeCover(done func()) []*timeline.Timeline {
	return m.coverGroups("close", 0, 0, func() {
		// Land exactly on the construction pose.
		m.asm.Reset()
		clear(m.beforeTurn)
		done()
	})
}

// turnPage rotates one page hinge to rotation while its curl runs from 0
// to 1 in dir.
func (m *Machine) turnPage(i int, dir int, rotation float32, done func()) *timeline.Timeline {
	page := m.asm.Pages[i]
	page.beginTurn(dir)

	name := fmt.Sprintf("page-%d-%s", i, Forward)
	if dir < 0 {
		name = fmt.Sprintf("page-%d-%s", i, Backward)
	}

	tl := timeline.New(name)
	tl.To(page.Hinge.Rotation, rotation, m.anim.PageDuration, m.anim.PageEasing, func(v float32) {
		page.Hinge.Rotation = v
	})
	tl.To(0, 1, m.anim.PageDuration, m.anim.CurlEasing, func(v float32) {
		page.Progress = v
	})
	tl.OnTick(func() {
		page.Bend = m.anim.PageBend * pulse(page.Progress)
	})
	tl.OnComplete(func() {
		page.Bend = 0
		done()
	})
	return tl
}

func (m *Machine) turnForward(i int, done func()) *timeline.Timeline {
	m.beforeTurn[i] = m.asm.Pages[i].Hinge.Snapshot()
	return m.turnPage(i, 1, -math.Pi, done)
}

func (m *Machine) turnBackward(i int, done func()) *timeline.Timeline {
	return m.turnPage(i, -1, 0, func() {
		if pose, ok := m.beforeTurn[i]; ok {
			m.asm.Pages[i].Hinge.Restore(pose)
			delete(m.beforeTurn, i)
		}
		done()
	})
}
