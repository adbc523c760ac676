// Package graphics provides the window backends that present PPU frames
package graphics

import (
	"fmt"
	"image"

	"lightningdodge/internal/input"
	"lightningdodge/internal/ppu"
)

// Backend represents a graphics rendering backend
type Backend interface {
	// Initialize initializes the graphics backend
	Initialize(config Config) error

	// CreateWindow creates a window for rendering
	CreateWindow(title string, width, height int) (Window, error)

	// Cleanup releases all resources
	Cleanup() error

	// IsHeadless returns true if running in headless mode
	IsHeadless() bool

	// GetName returns the backend name for identification
	GetName() string
}

// Window represents a rendering window
type Window interface {
	// SetTitle sets the window title
	SetTitle(title string)

	// GetSize returns window dimensions
	GetSize() (width, height int)

	// ShouldClose returns true if window should close
	ShouldClose() bool

	// PollEvents returns the input events since the last call
	PollEvents() []InputEvent

	// RenderFrame presents a 256x240 PPU frame
	RenderFrame(frame *image.RGBA) error

	// Cleanup releases window resources
	Cleanup() error
}

// Config contains configuration for graphics backends
type Config struct {
	// Window configuration
	WindowTitle  string
	WindowWidth  int
	WindowHeight int
	Fullscreen   bool
	Resizable    bool
	VSync        bool

	// Rendering configuration
	Filter string // "nearest", "linear"

	// Headless options
	Headless      bool
	OutputDir     string
	CaptureFrames []int
	MaxFrames     int

	Debug bool
}

// InputEvent represents an input event from the window
type InputEvent struct {
	Type    InputEventType
	Key     Key
	Button  input.Button
	Pressed bool
}

// InputEventType represents the type of input event
type InputEventType int

const (
	InputEventTypeKey InputEventType = iota
	InputEventTypeButton
	InputEventTypeQuit
)

// Key represents keyboard keys
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyJ
	KeyK
	KeyR
	KeyF11
	KeyF12
)

// buttonMappings maps keys to controller buttons. Keys not listed are
// passed through as key events.
var buttonMappings = map[Key]input.Button{
	KeyUp:    input.Up,
	KeyDown:  input.Down,
	KeyLeft:  input.Left,
	KeyRight: input.Right,
	KeyW:     input.Up,
	KeyS:     input.Down,
	KeyA:     input.Left,
	KeyD:     input.Right,
	KeyJ:     input.A,
	KeyK:     input.B,
	KeyEnter: input.Start,
	KeySpace: input.Select,
}

// mapKeyEvents converts key events that map to a controller button into
// button events
func mapKeyEvents(raw []InputEvent) []InputEvent {
	var events []InputEvent
	for _, event := range raw {
		if button, ok := buttonMappings[event.Key]; ok && event.Type == InputEventTypeKey {
			events = append(events, InputEvent{
				Type:    InputEventTypeButton,
				Button:  button,
				Pressed: event.Pressed,
			})
			continue
		}
		events = append(events, event)
	}
	return events
}

// BackendType represents different graphics backend types
type BackendType string

const (
	BackendEbitengine BackendType = "ebitengine"
	BackendHeadless   BackendType = "headless"
)

// CreateBackend creates a graphics backend of the specified type
func CreateBackend(backendType BackendType) (Backend, error) {
	switch backendType {
	case BackendEbitengine, "":
		return NewEbitengineBackend(), nil
	case BackendHeadless:
		return NewHeadlessBackend(), nil
	default:
		return nil, fmt.Errorf("unknown graphics backend %q", backendType)
	}
}

// checkFrame verifies a frame has the PPU's dimensions
func checkFrame(frame *image.RGBA) error {
	if frame == nil {
		return fmt.Errorf("nil frame")
	}
	if b := frame.Bounds(); b.Dx() != FrameWidth || b.Dy() != FrameHeight {
		return fmt.Errorf("frame is %dx%d, want %dx%d", b.Dx(), b.Dy(), FrameWidth, FrameHeight)
	}
	return nil
}

// Frame dimensions presented by every backend
const (
	FrameWidth  = ppu.DisplayWidth
	FrameHeight = ppu.DisplayHeight
)
