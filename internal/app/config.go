// Package app provides configuration management and the main loop that
// drives the PPU demo.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lightningdodge/internal/ppu"
)

// Config holds all application configuration
type Config struct {
	Window    WindowConfig    `json:"window"`
	Video     VideoConfig     `json:"video"`
	PPU       PPUConfig       `json:"ppu"`
	Emulation EmulationConfig `json:"emulation"`
	Debug     DebugConfig     `json:"debug"`
	Paths     PathsConfig     `json:"paths"`

	// Internal state
	configPath string
	loaded     bool
}

// WindowConfig contains window-related configuration
type WindowConfig struct {
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	Fullscreen bool `json:"fullscreen"`
	Resizable  bool `json:"resizable"`
	Scale      int  `json:"scale"` // screenshot and dump multiplier
}

// VideoConfig contains video rendering configuration
type VideoConfig struct {
	VSync      bool    `json:"vsync"`
	Filter     string  `json:"filter"`  // "nearest", "linear"
	Backend    string  `json:"backend"` // "ebitengine", "headless"
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
	Saturation float64 `json:"saturation"`
}

// PPUConfig contains picture processing unit options
type PPUConfig struct {
	PaletteFile         string `json:"palette_file"` // 192-byte .pal file, empty for the built-in table
	HardwareSpriteLimit bool   `json:"hardware_sprite_limit"`
	ScrollX             int    `json:"scroll_x"`
	ScrollY             int    `json:"scroll_y"`
}

// EmulationConfig contains timing settings
type EmulationConfig struct {
	FrameRate     float64 `json:"frame_rate"`     // Target frame rate
	MaxFrames     int     `json:"max_frames"`     // Stop after this many frames, 0 runs forever
	CaptureFrames []int   `json:"capture_frames"` // Headless frames written as PNGs
}

// DebugConfig contains debugging and development options
type DebugConfig struct {
	ShowFPS       bool   `json:"show_fps"`
	EnableLogging bool   `json:"enable_logging"`
	LogLevel      string `json:"log_level"` // "DEBUG", "INFO", "WARN", "ERROR"
	DumpFrames    bool   `json:"dump_frames"`
	DumpInterval  int    `json:"dump_interval"` // Dump every N frames
	MaxDumps      int    `json:"max_dumps"`
}

// PathsConfig contains file and directory paths
type PathsConfig struct {
	Screenshots string `json:"screenshots"`
	Dumps       string `json:"dumps"`
	Config      string `json:"config"`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      768,
			Height:     720,
			Fullscreen: false,
			Resizable:  true,
			Scale:      3, // 768x720 (256x240 * 3)
		},
		Video: VideoConfig{
			VSync:      true,
			Filter:     "nearest",
			Backend:    "ebitengine",
			Brightness: 1.0,
			Contrast:   1.0,
			Saturation: 1.0,
		},
		Emulation: EmulationConfig{
			FrameRate: 60.0,
		},
		Debug: DebugConfig{
			LogLevel:     "INFO",
			DumpInterval: 60,
			MaxDumps:     10,
		},
		Paths: PathsConfig{
			Screenshots: "./screenshots",
			Dumps:       "./dumps",
			Config:      "./config",
		},
	}
}

// LoadFromFile loads configuration from a JSON file. A missing file is
// created with the current values.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c.SaveToFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := c.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c.loaded = true
	return nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	c.configPath = path
	return nil
}

// Save saves the configuration to the current config file
func (c *Config) Save() error {
	if c.configPath == "" {
		return fmt.Errorf("no config file path set")
	}

	return c.SaveToFile(c.configPath)
}

// validate rejects unusable values and resets out-of-range ones to their
// defaults
func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return &ConfigError{
			Field: "window",
			Value: fmt.Sprintf("%dx%d", c.Window.Width, c.Window.Height),
			Err:   fmt.Errorf("window dimensions must be positive"),
		}
	}

	if c.Window.Scale <= 0 {
		c.Window.Scale = 1
	}

	switch c.Video.Backend {
	case "ebitengine", "headless":
	case "":
		c.Video.Backend = "ebitengine"
	default:
		return &ConfigError{Field: "video.backend", Value: c.Video.Backend, Err: fmt.Errorf("unknown backend")}
	}

	if c.Video.Filter != "linear" {
		c.Video.Filter = "nearest"
	}

	if c.Video.Brightness < 0.1 || c.Video.Brightness > 3.0 {
		c.Video.Brightness = 1.0
	}

	if c.Video.Contrast < 0.1 || c.Video.Contrast > 3.0 {
		c.Video.Contrast = 1.0
	}

	if c.Video.Saturation < 0.0 || c.Video.Saturation > 3.0 {
		c.Video.Saturation = 1.0
	}

	if c.Emulation.FrameRate <= 0 {
		c.Emulation.FrameRate = 60.0
	}

	if c.Emulation.MaxFrames < 0 {
		c.Emulation.MaxFrames = 0
	}

	c.Debug.LogLevel = strings.ToUpper(c.Debug.LogLevel)
	switch c.Debug.LogLevel {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		c.Debug.LogLevel = "INFO"
	}

	if c.Debug.DumpInterval <= 0 {
		c.Debug.DumpInterval = 60
	}

	if c.Debug.MaxDumps <= 0 {
		c.Debug.MaxDumps = 10
	}

	return nil
}

// Verbosity returns the glog verbosity matching the configured log level
func (c *Config) Verbosity() int {
	if !c.Debug.EnableLogging {
		return 0
	}
	if c.Debug.LogLevel == "DEBUG" {
		return 2
	}
	return 0
}

// GetDisplayResolution returns the PPU's output resolution
func (c *Config) GetDisplayResolution() (int, int) {
	return ppu.DisplayWidth, ppu.DisplayHeight
}

// GetWindowResolution returns the window resolution based on scale
func (c *Config) GetWindowResolution() (int, int) {
	w, h := c.GetDisplayResolution()
	return w * c.Window.Scale, h * c.Window.Scale
}

// IsLoaded returns whether the configuration was loaded from file
func (c *Config) IsLoaded() bool {
	return c.loaded
}

// GetConfigPath returns the path to the config file
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	data, err := json.Marshal(c)
	if err != nil {
		return NewConfig()
	}

	clone := &Config{}
	if err := json.Unmarshal(data, clone); err != nil {
		return NewConfig()
	}

	// Copy non-serialized fields
	clone.configPath = c.configPath
	clone.loaded = c.loaded

	return clone
}

// UpdateWindow updates window configuration
func (c *Config) UpdateWindow(width, height int, fullscreen bool) {
	c.Window.Width = width
	c.Window.Height = height
	c.Window.Fullscreen = fullscreen
}

// UpdateVideo updates video configuration
func (c *Config) UpdateVideo(vsync bool, filter string, brightness, contrast, saturation float64) {
	c.Video.VSync = vsync
	c.Video.Filter = filter
	c.Video.Brightness = brightness
	c.Video.Contrast = contrast
	c.Video.Saturation = saturation
}

// UpdateDebug updates debug configuration
func (c *Config) UpdateDebug(showFPS, enableLogging, dumpFrames bool) {
	c.Debug.ShowFPS = showFPS
	c.Debug.EnableLogging = enableLogging
	c.Debug.DumpFrames = dumpFrames
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	return "./config/lightningdodge.json"
}

// GetDefaultConfigDir returns the default configuration directory
func GetDefaultConfigDir() string {
	return "./config"
}

// ConfigError represents configuration-related errors
type ConfigError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in field '%s' with value '%v': %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
