package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	c := NewConfig()

	if c.Video.Backend != "ebitengine" {
		t.Errorf("Expected ebitengine backend, got %s", c.Video.Backend)
	}
	if c.Emulation.FrameRate != 60.0 {
		t.Errorf("Expected 60 FPS, got %v", c.Emulation.FrameRate)
	}
	if w, h := c.GetWindowResolution(); w != 768 || h != 720 {
		t.Errorf("Expected 768x720 window, got %dx%d", w, h)
	}
	if err := c.validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestLoadFromFile_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "lightningdodge.json")
	c := NewConfig()

	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected default config to be written: %v", err)
	}
	if c.GetConfigPath() != path {
		t.Errorf("Expected config path %s, got %s", path, c.GetConfigPath())
	}
	if c.IsLoaded() {
		t.Error("A freshly written default should not count as loaded")
	}
}

func TestLoadFromFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	c := NewConfig()
	c.PPU.HardwareSpriteLimit = true
	c.PPU.ScrollX = -12
	c.Emulation.MaxFrames = 30
	c.Debug.DumpFrames = true
	if err := c.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded := NewConfig()
	if err := loaded.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if !loaded.IsLoaded() {
		t.Error("Expected config to be marked loaded")
	}
	if !loaded.PPU.HardwareSpriteLimit || loaded.PPU.ScrollX != -12 {
		t.Errorf("PPU section not restored: %+v", loaded.PPU)
	}
	if loaded.Emulation.MaxFrames != 30 || !loaded.Debug.DumpFrames {
		t.Errorf("Emulation or debug section not restored")
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{not json"), 0644)
	if err := NewConfig().LoadFromFile(bad); err == nil {
		t.Error("Expected parse error")
	}

	zero := filepath.Join(dir, "zero.json")
	os.WriteFile(zero, []byte(`{"window": {"width": 0, "height": 240}}`), 0644)
	err := NewConfig().LoadFromFile(zero)
	var configErr *ConfigError
	if !errors.As(err, &configErr) || configErr.Field != "window" {
		t.Errorf("Expected window ConfigError, got %v", err)
	}

	backend := filepath.Join(dir, "backend.json")
	os.WriteFile(backend, []byte(`{"video": {"backend": "sdl2"}}`), 0644)
	err = NewConfig().LoadFromFile(backend)
	if !errors.As(err, &configErr) || configErr.Field != "video.backend" {
		t.Errorf("Expected backend ConfigError, got %v", err)
	}
}

func TestValidateClampsValues(t *testing.T) {
	c := NewConfig()
	c.Window.Scale = 0
	c.Video.Filter = "cubic"
	c.Video.Brightness = 10
	c.Video.Contrast = 0
	c.Video.Saturation = -1
	c.Emulation.FrameRate = -5
	c.Emulation.MaxFrames = -1
	c.Debug.LogLevel = "debug"
	c.Debug.DumpInterval = 0
	c.Debug.MaxDumps = -3

	if err := c.validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	if c.Window.Scale != 1 || c.Video.Filter != "nearest" {
		t.Errorf("Unexpected window/filter: %d %s", c.Window.Scale, c.Video.Filter)
	}
	if c.Video.Brightness != 1 || c.Video.Contrast != 1 || c.Video.Saturation != 1 {
		t.Errorf("Video values not reset: %+v", c.Video)
	}
	if c.Emulation.FrameRate != 60 || c.Emulation.MaxFrames != 0 {
		t.Errorf("Emulation values not reset: %+v", c.Emulation)
	}
	if c.Debug.LogLevel != "DEBUG" || c.Debug.DumpInterval != 60 || c.Debug.MaxDumps != 10 {
		t.Errorf("Debug values not reset: %+v", c.Debug)
	}

	c.Debug.LogLevel = "verbose"
	c.validate()
	if c.Debug.LogLevel != "INFO" {
		t.Errorf("Expected unknown level to become INFO, got %s", c.Debug.LogLevel)
	}
}

func TestVerbosity(t *testing.T) {
	c := NewConfig()
	c.Debug.LogLevel = "DEBUG"
	if c.Verbosity() != 0 {
		t.Error("Logging disabled should give verbosity 0")
	}

	c.Debug.EnableLogging = true
	if c.Verbosity() != 2 {
		t.Errorf("Expected verbosity 2, got %d", c.Verbosity())
	}

	c.Debug.LogLevel = "WARN"
	if c.Verbosity() != 0 {
		t.Errorf("Expected verbosity 0, got %d", c.Verbosity())
	}
}

func TestClone(t *testing.T) {
	c := NewConfig()
	c.PPU.PaletteFile = "custom.pal"
	c.configPath = "somewhere.json"

	clone := c.Clone()
	clone.PPU.PaletteFile = "other.pal"
	clone.Window.Width = 1

	if c.PPU.PaletteFile != "custom.pal" || c.Window.Width == 1 {
		t.Error("Clone shares state with the original")
	}
	if clone.GetConfigPath() != "somewhere.json" {
		t.Error("Clone lost the config path")
	}
}

func TestSaveWithoutPath(t *testing.T) {
	if err := NewConfig().Save(); err == nil {
		t.Error("Expected error saving without a path")
	}
}
