// Package input tracks the demo's controller buttons.
package input

import (
	"github.com/golang/glog"
)

// Button represents a controller button
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Shorter names used by the window backends
const (
	A      = ButtonA
	B      = ButtonB
	Select = ButtonSelect
	Start  = ButtonStart
	Up     = ButtonUp
	Down   = ButtonDown
	Left   = ButtonLeft
	Right  = ButtonRight
)

var buttonNames = map[Button]string{
	ButtonA:      "A",
	ButtonB:      "B",
	ButtonSelect: "Select",
	ButtonStart:  "Start",
	ButtonUp:     "Up",
	ButtonDown:   "Down",
	ButtonLeft:   "Left",
	ButtonRight:  "Right",
}

// String returns the button name
func (b Button) String() string {
	if name, ok := buttonNames[b]; ok {
		return name
	}
	return "Unknown"
}

// State is a snapshot of pressed buttons, one bit per button. The zero value
// has nothing pressed.
type State uint8

// IsPressed returns true if the button is pressed in this snapshot
func (s State) IsPressed(button Button) bool {
	return uint8(s)&uint8(button) != 0
}

// Direction returns the horizontal and vertical direction held, each -1, 0
// or 1. Opposite directions held together cancel out.
func (s State) Direction() (dx, dy int) {
	if s.IsPressed(ButtonLeft) {
		dx--
	}
	if s.IsPressed(ButtonRight) {
		dx++
	}
	if s.IsPressed(ButtonUp) {
		dy--
	}
	if s.IsPressed(ButtonDown) {
		dy++
	}
	return dx, dy
}

// Controller collects button events from a window backend
type Controller struct {
	buttons State

	debugEnabled bool
}

// New creates a new Controller instance
func New() *Controller {
	return &Controller{}
}

// SetButton sets the state of a button
func (c *Controller) SetButton(button Button, pressed bool) {
	old := c.buttons

	if pressed {
		c.buttons |= State(button)
	} else {
		c.buttons &^= State(button)
	}

	if c.debugEnabled && old != c.buttons {
		glog.Infof("[INPUT] %s pressed=%t buttons=0x%02X", button, pressed, uint8(c.buttons))
	}
}

// SetButtons replaces all button states at once, in the order A, B, Select,
// Start, Up, Down, Left, Right
func (c *Controller) SetButtons(buttons [8]bool) {
	var s State
	for i, pressed := range buttons {
		if pressed {
			s |= 1 << uint(i)
		}
	}
	c.buttons = s
}

// IsPressed returns true if the button is currently pressed
func (c *Controller) IsPressed(button Button) bool {
	return c.buttons.IsPressed(button)
}

// State returns a snapshot of the current buttons
func (c *Controller) State() State {
	return c.buttons
}

// Reset releases every button
func (c *Controller) Reset() {
	c.buttons = 0
}

// EnableDebug enables logging of button changes
func (c *Controller) EnableDebug(enable bool) {
	c.debugEnabled = enable
}
