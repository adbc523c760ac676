package graphics

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func newHeadlessWindow(t *testing.T, config Config) *HeadlessWindow {
	t.Helper()
	config.Headless = true

	backend := NewHeadlessBackend()
	if err := backend.Initialize(config); err != nil {
		t.Fatalf("Failed to initialize headless backend: %v", err)
	}
	window, err := backend.CreateWindow("test", FrameWidth, FrameHeight)
	if err != nil {
		t.Fatalf("Failed to create headless window: %v", err)
	}
	return window.(*HeadlessWindow)
}

func solidFrame(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, FrameWidth, FrameHeight))
	for y := 0; y < FrameHeight; y++ {
		for x := 0; x < FrameWidth; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestHeadlessBackend_Initialize(t *testing.T) {
	backend := NewHeadlessBackend()

	if _, err := backend.CreateWindow("test", 256, 240); err == nil {
		t.Error("Expected error creating window before initialization")
	}

	if err := backend.Initialize(Config{}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := backend.Initialize(Config{}); err == nil {
		t.Error("Expected error on double initialization")
	}

	if !backend.IsHeadless() {
		t.Error("Headless backend should report headless")
	}
	if err := backend.Cleanup(); err != nil {
		t.Errorf("Cleanup failed: %v", err)
	}
}

func TestHeadlessWindow_RenderFrame(t *testing.T) {
	window := newHeadlessWindow(t, Config{})
	red := color.RGBA{R: 255, A: 255}

	if err := window.RenderFrame(solidFrame(red)); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}

	if window.GetFrameCount() != 1 {
		t.Errorf("Expected 1 frame, got %d", window.GetFrameCount())
	}
	if got := window.LastFrame().RGBAAt(100, 100); got != red {
		t.Errorf("Expected last frame to hold the rendered pixel, got %v", got)
	}
	if window.ShouldClose() {
		t.Error("Window without a frame limit should stay open")
	}

	if err := window.RenderFrame(image.NewRGBA(image.Rect(0, 0, 10, 10))); err == nil {
		t.Error("Expected error for wrong frame size")
	}
	if window.GetFrameCount() != 1 {
		t.Error("Rejected frame should not be counted")
	}
}

func TestHeadlessWindow_MaxFrames(t *testing.T) {
	window := newHeadlessWindow(t, Config{MaxFrames: 3})
	frame := solidFrame(color.RGBA{A: 255})

	for i := 0; i < 2; i++ {
		window.RenderFrame(frame)
	}
	if window.ShouldClose() {
		t.Fatal("Window closed before reaching the frame limit")
	}

	window.RenderFrame(frame)
	if !window.ShouldClose() {
		t.Error("Expected window to close at the frame limit")
	}
}

func TestHeadlessWindow_CaptureFrames(t *testing.T) {
	dir := t.TempDir()
	window := newHeadlessWindow(t, Config{OutputDir: dir, CaptureFrames: []int{2}})
	blue := color.RGBA{B: 200, A: 255}

	window.RenderFrame(solidFrame(color.RGBA{A: 255}))
	if err := window.RenderFrame(solidFrame(blue)); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "frame_001.png")); !os.IsNotExist(err) {
		t.Error("Frame 1 should not have been captured")
	}

	file, err := os.Open(filepath.Join(dir, "frame_002.png"))
	if err != nil {
		t.Fatalf("Expected frame 2 to be captured: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Failed to decode captured frame: %v", err)
	}
	if img.Bounds().Dx() != FrameWidth || img.Bounds().Dy() != FrameHeight {
		t.Errorf("Unexpected captured size %v", img.Bounds())
	}
	r, g, b, _ := img.At(10, 10).RGBA()
	if r != 0 || g != 0 || b>>8 != 200 {
		t.Errorf("Unexpected captured pixel (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestHeadlessWindow_Cleanup(t *testing.T) {
	window := newHeadlessWindow(t, Config{})
	window.SetTitle("renamed")

	if w, h := window.GetSize(); w != FrameWidth || h != FrameHeight {
		t.Errorf("Unexpected size %dx%d", w, h)
	}
	if events := window.PollEvents(); events != nil {
		t.Errorf("Expected no events, got %v", events)
	}

	window.Cleanup()
	if !window.ShouldClose() {
		t.Error("Expected window to close after cleanup")
	}
}
