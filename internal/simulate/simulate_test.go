package simulate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/folio/internal/config"
	"github.com/Faultbox/folio/pkg/math"
)

func TestParseScript(t *testing.T) {
	cmds, err := ParseScript(" a  r aa x s=0.25\n")
	require.NoError(t, err)
	assert.Equal(t, []Command{
		{Op: OpAdvance},
		{Op: OpRetreat},
		{Op: OpBurst},
		{Op: OpReset},
		{Op: OpScroll, Ratio: 0.25},
	}, cmds)

	for _, bad := range []string{"a b", "s=", "s=half"} {
		_, err := ParseScript(bad)
		assert.True(t, errors.Is(err, ErrBadScript), "script %q", bad)
	}

	cmds, err = ParseScript("")
	require.NoError(t, err)
	assert.Empty(t, cmds)
}

func leaves(rep *Report) []int {
	out := make([]int, len(rep.Changes))
	for i, c := range rep.Changes {
		out[i] = c.Leaf
	}
	return out
}

func TestSimulateClick(t *testing.T) {
	cmds, err := ParseScript("a a r a")
	require.NoError(t, err)

	rep, err := Simulate(config.Default(), cmds, 60)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Leaf)
	assert.Equal(t, 4, rep.Accepted)
	assert.Equal(t, []int{1, 2, 1, 2}, leaves(rep))

	require.NotEmpty(t, rep.Poses)
	assert.Equal(t, "book", rep.Poses[0].Name)
	for _, p := range rep.Poses {
		if p.Name == "front-cover" {
			assert.InDelta(t, -math.Pi, p.Pose.Rotation, 1e-4)
		}
	}

	// The cover alone takes 1.2s plus stagger; frames only run while animating.
	assert.Greater(t, rep.Frames, 60)
	assert.Less(t, rep.Frames, 5*60)
}

func TestSimulateGuardAndBounds(t *testing.T) {
	cmds, err := ParseScript("r aa x r")
	require.NoError(t, err)

	rep, err := Simulate(config.Default(), cmds, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Accepted, "retreat when closed is ignored and a burst starts one transition")
	assert.Equal(t, []int{1, 0}, leaves(rep))
	assert.Equal(t, 0, rep.Leaf)
}

func TestSimulateScroll(t *testing.T) {
	cfg := config.Default()
	cfg.Book.Mode = config.ModeScroll
	cmds, err := ParseScript("a s=1 s=0")
	require.NoError(t, err)

	rep, err := Simulate(cfg, cmds, 60)
	require.NoError(t, err)
	assert.Zero(t, rep.Accepted, "advance is ignored in scroll mode")
	assert.Equal(t, []int{cfg.Book.Pages + 1, 0}, leaves(rep))
	assert.Equal(t, 3, rep.Frames)
}

func TestSimulateInvalidBook(t *testing.T) {
	cfg := config.Default()
	cfg.Book.Pages = 0
	_, err := Simulate(cfg, nil, 60)
	assert.Error(t, err)
}
