package graphics

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/golang/glog"
	"golang.org/x/image/draw"

	"lightningdodge/internal/debug"
)

// HeadlessBackend implements the Backend interface for headless operation
type HeadlessBackend struct {
	initialized bool
	config      Config
}

// HeadlessWindow implements the Window interface without a display. It
// counts frames, keeps the latest one and writes requested frames as PNGs.
type HeadlessWindow struct {
	title      string
	width      int
	height     int
	running    bool
	frameCount int
	maxFrames  int
	outputDir  string
	capture    map[int]bool
	lastFrame  *image.RGBA
}

// NewHeadlessBackend creates a new headless graphics backend
func NewHeadlessBackend() Backend {
	return &HeadlessBackend{}
}

// Initialize initializes the headless backend
func (b *HeadlessBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("headless backend already initialized")
	}

	b.config = config
	b.initialized = true

	return nil
}

// CreateWindow creates a headless "window"
func (b *HeadlessBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}

	capture := make(map[int]bool, len(b.config.CaptureFrames))
	for _, n := range b.config.CaptureFrames {
		capture[n] = true
	}

	outputDir := b.config.OutputDir
	if outputDir == "" {
		outputDir = "frame_output"
	}

	return &HeadlessWindow{
		title:     title,
		width:     width,
		height:    height,
		running:   true,
		maxFrames: b.config.MaxFrames,
		outputDir: outputDir,
		capture:   capture,
		lastFrame: image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight)),
	}, nil
}

// Cleanup releases all headless resources
func (b *HeadlessBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless returns true
func (b *HeadlessBackend) IsHeadless() bool {
	return true
}

// GetName returns the backend name
func (b *HeadlessBackend) GetName() string {
	return "Headless"
}

// SetTitle sets the window title
func (w *HeadlessWindow) SetTitle(title string) {
	w.title = title
}

// GetSize returns window dimensions
func (w *HeadlessWindow) GetSize() (width, height int) {
	return w.width, w.height
}

// ShouldClose returns true once the window is closed or the frame limit is
// reached
func (w *HeadlessWindow) ShouldClose() bool {
	return !w.running
}

// PollEvents returns no events; there is no input in headless mode
func (w *HeadlessWindow) PollEvents() []InputEvent {
	return nil
}

// RenderFrame records the frame and saves it if its number was requested.
// Frames are numbered from 1.
func (w *HeadlessWindow) RenderFrame(frame *image.RGBA) error {
	if err := checkFrame(frame); err != nil {
		return err
	}

	w.frameCount++
	draw.Draw(w.lastFrame, w.lastFrame.Bounds(), frame, frame.Bounds().Min, draw.Src)

	if w.capture[w.frameCount] {
		filename := filepath.Join(w.outputDir, fmt.Sprintf("frame_%03d.png", w.frameCount))
		if err := debug.WritePNG(filename, frame); err != nil {
			return err
		}
		glog.V(1).Infof("[Headless] Saved frame %d to %s", w.frameCount, filename)
	}

	if w.maxFrames > 0 && w.frameCount >= w.maxFrames {
		w.running = false
	}

	return nil
}

// Cleanup releases window resources
func (w *HeadlessWindow) Cleanup() error {
	w.running = false
	return nil
}

// SetOutputPath sets the directory captured frames are written to
func (w *HeadlessWindow) SetOutputPath(path string) {
	w.outputDir = path
}

// GetFrameCount returns the number of frames rendered
func (w *HeadlessWindow) GetFrameCount() int {
	return w.frameCount
}

// LastFrame returns the most recently rendered frame. It is overwritten by
// the next RenderFrame.
func (w *HeadlessWindow) LastFrame() *image.RGBA {
	return w.lastFrame
}
