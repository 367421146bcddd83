package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func feed(in *Input, events ...Event) Frame {
	in.Reset()
	for _, e := range events {
		in.Apply(e)
	}
	return in.Frame()
}

func TestKeyBindings(t *testing.T) {
	in := New()
	f := feed(in,
		Event{Type: EventKeyDown, Key: sdl.SCANCODE_RIGHT},
		Event{Type: EventKeyUp, Key: sdl.SCANCODE_RIGHT},
		Event{Type: EventKeyDown, Key: sdl.SCANCODE_LEFT},
		Event{Type: EventKeyDown, Key: sdl.SCANCODE_Z},
	)
	assert.Equal(t, []Action{ActionAdvance, ActionRetreat}, f.Actions)
	assert.False(t, in.Quit())

	feed(in, Event{Type: EventKeyDown, Key: sdl.SCANCODE_ESCAPE})
	assert.True(t, in.Quit())

	f = feed(in)
	assert.Empty(t, f.Actions, "frames do not carry over")

	f = feed(in,
		Event{Type: EventKeyDown, Key: sdl.SCANCODE_DOWN},
		Event{Type: EventKeyDown, Key: sdl.SCANCODE_DOWN},
		Event{Type: EventKeyDown, Key: sdl.SCANCODE_UP},
	)
	assert.Equal(t, float32(-1), f.Wheel)
	assert.Empty(t, f.Actions)
}

func TestClickVersusDrag(t *testing.T) {
	in := New()

	f := feed(in,
		Event{Type: EventMouseDown, Button: sdl.BUTTON_LEFT, MouseX: 100, MouseY: 100},
		Event{Type: EventMouseMove, MouseX: 102, MouseY: 101},
		Event{Type: EventMouseUp, Button: sdl.BUTTON_LEFT, MouseX: 102, MouseY: 101},
	)
	assert.Equal(t, []Action{ActionAdvance}, f.Actions)
	assert.Zero(t, f.DragX)

	in.SetWidth(400)
	f = feed(in,
		Event{Type: EventMouseDown, Button: sdl.BUTTON_LEFT, MouseX: 100, MouseY: 10},
		Event{Type: EventMouseUp, Button: sdl.BUTTON_LEFT, MouseX: 100, MouseY: 10},
		Event{Type: EventMouseDown, Button: sdl.BUTTON_LEFT, MouseX: 300, MouseY: 10},
		Event{Type: EventMouseUp, Button: sdl.BUTTON_LEFT, MouseX: 300, MouseY: 10},
	)
	assert.Equal(t, []Action{ActionRetreat, ActionAdvance}, f.Actions, "left half retreats")

	f = feed(in,
		Event{Type: EventMouseDown, Button: sdl.BUTTON_RIGHT, MouseX: 10, MouseY: 10},
		Event{Type: EventMouseUp, Button: sdl.BUTTON_RIGHT, MouseX: 10, MouseY: 10},
	)
	assert.Equal(t, []Action{ActionRetreat}, f.Actions)

	// A drag spanning two frames orbits and never clicks.
	f = feed(in,
		Event{Type: EventMouseDown, Button: sdl.BUTTON_LEFT, MouseX: 0, MouseY: 0},
		Event{Type: EventMouseMove, MouseX: 10, MouseY: 0},
	)
	assert.Equal(t, float32(10), f.DragX)
	f = feed(in,
		Event{Type: EventMouseMove, MouseX: 15, MouseY: -5},
		Event{Type: EventMouseUp, Button: sdl.BUTTON_LEFT, MouseX: 15, MouseY: -5},
	)
	assert.Equal(t, float32(5), f.DragX)
	assert.Equal(t, float32(-5), f.DragY)
	assert.Empty(t, f.Actions)
}

func TestWheelAndResize(t *testing.T) {
	in := New()
	f := feed(in,
		Event{Type: EventWheel, WheelY: 1},
		Event{Type: EventWheel, WheelY: 2},
		Event{Type: EventWindowResize, Width: 800, Height: 600},
		Event{Type: EventQuit},
	)
	assert.Equal(t, float32(3), f.Wheel)
	assert.Equal(t, 800, in.width)
	assert.True(t, f.Resized)
	assert.Equal(t, 800, f.Width)
	assert.Equal(t, 600, f.Height)
	assert.True(t, in.Quit())
}
