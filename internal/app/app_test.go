package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lightningdodge/internal/graphics"
	"lightningdodge/internal/input"
	"lightningdodge/internal/ppu"
)

func newTestConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()

	c := NewConfig()
	c.Video.Backend = "headless"
	c.Paths.Screenshots = filepath.Join(dir, "screenshots")
	c.Paths.Dumps = filepath.Join(dir, "dumps")
	c.Paths.Config = filepath.Join(dir, "config")
	return c
}

func newTestApp(t *testing.T, c *Config) *Application {
	t.Helper()
	app, err := NewApplicationWithConfig(c, true)
	if err != nil {
		t.Fatalf("Failed to create application: %v", err)
	}
	t.Cleanup(func() { app.Cleanup() })
	return app
}

func TestApplication_RunHeadlessFrames(t *testing.T) {
	c := newTestConfig(t)
	c.Emulation.MaxFrames = 5
	app := newTestApp(t, c)

	if !app.IsHeadless() {
		t.Fatal("Expected headless application")
	}

	if err := app.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if app.GetFrameCount() != 5 {
		t.Errorf("Expected 5 frames, got %d", app.GetFrameCount())
	}
	if app.GetEmulator().GetFrameCount() != 5 {
		t.Errorf("Expected emulator at frame 5, got %d", app.GetEmulator().GetFrameCount())
	}
	if app.GetEmulator().GetScene().Frame() != 5 {
		t.Errorf("Expected scene at tick 5, got %d", app.GetEmulator().GetScene().Frame())
	}
	if app.IsRunning() {
		t.Error("Application should stop at the frame limit")
	}

	window := app.GetWindow().(*graphics.HeadlessWindow)
	if window.GetFrameCount() != 5 {
		t.Errorf("Expected window to present 5 frames, got %d", window.GetFrameCount())
	}

	// Identity video processing presents the PPU frame unchanged
	frame := app.GetEmulator().GetFrame()
	last := window.LastFrame()
	for _, pt := range [][2]int{{0, 0}, {128, 200}, {255, 239}} {
		if frame.RGBAAt(pt[0], pt[1]) != last.RGBAAt(pt[0], pt[1]) {
			t.Errorf("Presented pixel %v differs from the PPU frame", pt)
		}
	}
}

func TestApplication_DumpFrames(t *testing.T) {
	c := newTestConfig(t)
	c.Emulation.MaxFrames = 10
	c.Debug.DumpFrames = true
	c.Debug.DumpInterval = 4
	c.Debug.MaxDumps = 5
	app := newTestApp(t, c)

	if err := app.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, name := range []string{"frame_000004.png", "frame_000008.png"} {
		if _, err := os.Stat(filepath.Join(c.Paths.Dumps, name)); err != nil {
			t.Errorf("Expected dump %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(c.Paths.Dumps, "frame_000005.png")); !os.IsNotExist(err) {
		t.Error("Frame 5 is off the dump interval")
	}
}

func TestApplication_CaptureFrames(t *testing.T) {
	c := newTestConfig(t)
	c.Emulation.MaxFrames = 4
	c.Emulation.CaptureFrames = []int{2, 4, 9}
	app := newTestApp(t, c)

	if err := app.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, name := range []string{"frame_002.png", "frame_004.png"} {
		if _, err := os.Stat(filepath.Join(c.Paths.Dumps, name)); err != nil {
			t.Errorf("Expected capture %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(c.Paths.Dumps, "frame_009.png")); !os.IsNotExist(err) {
		t.Error("Frame 9 is past the frame limit")
	}
}

func TestApplication_Screenshot(t *testing.T) {
	c := newTestConfig(t)
	c.Emulation.MaxFrames = 1
	app := newTestApp(t, c)
	app.Run()

	path, err := app.Screenshot()
	if err != nil {
		t.Fatalf("Screenshot failed: %v", err)
	}
	if filepath.Dir(path) != c.Paths.Screenshots {
		t.Errorf("Screenshot written to %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Screenshot missing: %v", err)
	}
}

func TestApplication_DumpPPU(t *testing.T) {
	app := newTestApp(t, newTestConfig(t))
	dir := t.TempDir()

	paths, err := app.DumpPPU(dir)
	if err != nil {
		t.Fatalf("DumpPPU failed: %v", err)
	}
	if len(paths) == 0 {
		t.Error("Expected PPU dump files")
	}
}

func TestApplication_PauseAndReset(t *testing.T) {
	c := newTestConfig(t)
	app := newTestApp(t, c)
	app.emulator.Start()

	app.step()
	app.step()
	if app.GetEmulator().GetFrameCount() != 2 {
		t.Fatalf("Expected 2 frames, got %d", app.GetEmulator().GetFrameCount())
	}

	app.TogglePause()
	app.step()
	if app.GetEmulator().GetFrameCount() != 2 {
		t.Error("Paused application should not advance")
	}
	app.Resume()
	if app.IsPaused() {
		t.Error("Expected resumed application")
	}

	app.Reset()
	if app.GetEmulator().GetFrameCount() != 0 || app.GetEmulator().GetScene().Frame() != 0 {
		t.Error("Reset should restart the scene")
	}
}

func TestApplication_ControllerMovesPlayer(t *testing.T) {
	app := newTestApp(t, newTestConfig(t))
	app.emulator.Start()

	start := app.GetEmulator().GetScene().PlayerX()
	app.GetEmulator().GetController().SetButton(input.ButtonRight, true)
	app.step()

	if got := app.GetEmulator().GetScene().PlayerX(); got <= start {
		t.Errorf("Expected player to move right from %d, got %d", start, got)
	}
}

func TestApplication_PPUConfig(t *testing.T) {
	c := newTestConfig(t)
	c.PPU.HardwareSpriteLimit = true
	c.PPU.ScrollX = 8
	c.PPU.ScrollY = -8
	app := newTestApp(t, c)

	p := app.GetEmulator().GetPPU()
	if p.SpritesPerLine() != ppu.HardwareSpritesOnLine {
		t.Errorf("Expected hardware sprite limit, got %d", p.SpritesPerLine())
	}
	if p.ScrollX != 8 || p.ScrollY != -8 {
		t.Errorf("Expected scroll (8,-8), got (%d,%d)", p.ScrollX, p.ScrollY)
	}
}

func TestApplication_PaletteFile(t *testing.T) {
	c := newTestConfig(t)
	pal := make([]byte, 64*3)
	pal[0x1D*3] = 0x12 // background color red channel
	c.PPU.PaletteFile = filepath.Join(t.TempDir(), "test.pal")
	if err := os.WriteFile(c.PPU.PaletteFile, pal, 0644); err != nil {
		t.Fatal(err)
	}
	c.Emulation.MaxFrames = 1
	app := newTestApp(t, c)
	app.Run()

	if got := app.GetEmulator().GetFrame().RGBAAt(0, 0); got.R != 0x12 || got.G != 0 || got.B != 0 {
		t.Errorf("Expected custom palette color, got %v", got)
	}

	short := newTestConfig(t)
	short.PPU.PaletteFile = filepath.Join(t.TempDir(), "short.pal")
	os.WriteFile(short.PPU.PaletteFile, pal[:10], 0644)
	_, err := NewApplicationWithConfig(short, true)
	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Errorf("Expected ConfigError for short palette, got %v", err)
	}
	var appErr *ApplicationError
	if !errors.As(err, &appErr) {
		t.Errorf("Expected ApplicationError wrapper, got %v", err)
	}
}

func TestApplication_LoadsConfigFile(t *testing.T) {
	c := newTestConfig(t)
	c.Emulation.MaxFrames = 2
	path := filepath.Join(c.Paths.Config, "lightningdodge.json")
	if err := c.SaveToFile(path); err != nil {
		t.Fatal(err)
	}

	app, err := NewApplicationWithMode(path, false)
	if err != nil {
		t.Fatalf("NewApplicationWithMode failed: %v", err)
	}
	defer app.Cleanup()

	if !app.IsHeadless() {
		t.Error("Backend from config file should make the application headless")
	}
	if err := app.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if app.GetFrameCount() != 2 {
		t.Errorf("Expected 2 frames, got %d", app.GetFrameCount())
	}
}
