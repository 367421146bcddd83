// Package input turns SDL2 events into viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a raw event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
	WheelY float32
}

// Action is something the viewer does in response to input.
type Action int

const (
	ActionNone Action = iota
	ActionAdvance
	ActionRetreat
	ActionScreenshot
	ActionResetCamera
	ActionResetBook
	ActionScrollUp
	ActionScrollDown
	ActionQuit
)

// DefaultBindings maps keys to actions.
var DefaultBindings = map[sdl.Scancode]Action{
	sdl.SCANCODE_RIGHT:     ActionAdvance,
	sdl.SCANCODE_SPACE:     ActionAdvance,
	sdl.SCANCODE_PAGEDOWN:  ActionAdvance,
	sdl.SCANCODE_LEFT:      ActionRetreat,
	sdl.SCANCODE_BACKSPACE: ActionRetreat,
	sdl.SCANCODE_PAGEUP:    ActionRetreat,
	sdl.SCANCODE_UP:        ActionScrollUp,
	sdl.SCANCODE_DOWN:      ActionScrollDown,
	sdl.SCANCODE_F12:       ActionScreenshot,
	sdl.SCANCODE_P:         ActionScreenshot,
	sdl.SCANCODE_C:         ActionResetCamera,
	sdl.SCANCODE_HOME:      ActionResetBook,
	sdl.SCANCODE_ESCAPE:    ActionQuit,
	sdl.SCANCODE_Q:         ActionQuit,
}

// ClickSlop is how far in pixels the mouse may travel between press and
// release and still count as a click rather than a drag.
const ClickSlop = 4

// Frame is everything that happened since the previous Update.
type Frame struct {
	Actions []Action
	Wheel   float32 // Positive scrolls up
	DragX   float32
	DragY   float32
	Resized bool
	Width   int
	Height  int
}

// Input handles all input processing.
type Input struct {
	Bindings map[sdl.Scancode]Action

	width int // Window width in event coordinates, 0 when unknown
	frame Frame

	pressed        uint8 // Held mouse button, 0 when none
	pressX, pressY int
	lastX, lastY   int
	dragging       bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		Bindings: DefaultBindings,
	}
}

// Update polls SDL events and folds them into a Frame.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.Reset()
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := convert(event); ok {
			i.Apply(e)
		}
	}
	return i.Quit()
}

func convert(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return Event{}, false
		}
		if e.Type == sdl.KEYDOWN {
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		}
		return Event{Type: EventKeyUp, Key: e.Keysym.Scancode}, true

	case *sdl.MouseMotionEvent:
		return Event{Type: EventMouseMove, MouseX: int(e.X), MouseY: int(e.Y)}, true

	case *sdl.MouseButtonEvent:
		t := EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = EventMouseDown
		}
		return Event{Type: t, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}, true

	case *sdl.MouseWheelEvent:
		y := float32(e.Y)
		if e.Direction == uint32(sdl.MOUSEWHEEL_FLIPPED) {
			y = -y
		}
		return Event{Type: EventWheel, WheelY: y}, true
	}
	return Event{}, false
}

// SetWidth sets the window width used to split clicks into halves.
func (i *Input) SetWidth(width int) {
	i.width = width
}

// Reset clears the current frame.
func (i *Input) Reset() {
	i.frame = Frame{Actions: i.frame.Actions[:0]}
}

// Apply folds one event into the current frame.
func (i *Input) Apply(e Event) {
	f := &i.frame

	switch e.Type {
	case EventQuit:
		f.Actions = append(f.Actions, ActionQuit)

	case EventWindowResize:
		f.Resized = true
		f.Width, f.Height = e.Width, e.Height
		i.width = e.Width

	case EventKeyDown:
		switch a := i.Bindings[e.Key]; a {
		case ActionNone:
		case ActionScrollUp:
			f.Wheel++
		case ActionScrollDown:
			f.Wheel--
		default:
			f.Actions = append(f.Actions, a)
		}

	case EventWheel:
		f.Wheel += e.WheelY

	case EventMouseDown:
		if i.pressed == 0 {
			i.pressed = e.Button
			i.pressX, i.pressY = e.MouseX, e.MouseY
			i.lastX, i.lastY = e.MouseX, e.MouseY
			i.dragging = false
		}

	case EventMouseMove:
		if i.pressed != 0 {
			if abs(e.MouseX-i.pressX) > ClickSlop || abs(e.MouseY-i.pressY) > ClickSlop {
				i.dragging = true
			}
			if i.dragging && i.pressed == sdl.BUTTON_LEFT {
				f.DragX += float32(e.MouseX - i.lastX)
				f.DragY += float32(e.MouseY - i.lastY)
			}
		}
		i.lastX, i.lastY = e.MouseX, e.MouseY

	case EventMouseUp:
		if e.Button != i.pressed {
			return
		}
		if !i.dragging {
			switch {
			case e.Button == sdl.BUTTON_RIGHT:
				f.Actions = append(f.Actions, ActionRetreat)
			case e.Button != sdl.BUTTON_LEFT:
			case i.width > 0 && e.MouseX < i.width/2:
				f.Actions = append(f.Actions, ActionRetreat)
			default:
				f.Actions = append(f.Actions, ActionAdvance)
			}
		}
		i.pressed = 0
		i.dragging = false
	}
}

// Frame returns what happened since the last Update.
func (i *Input) Frame() Frame {
	return i.frame
}

// Quit reports whether a quit action arrived this frame.
func (i *Input) Quit() bool {
	for _, a := range i.frame.Actions {
		if a == ActionQuit {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
