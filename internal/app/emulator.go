package app

import (
	"fmt"
	"image"
	"os"
	"time"

	"github.com/golang/glog"

	"lightningdodge/internal/input"
	"lightningdodge/internal/ppu"
	"lightningdodge/internal/scene"
)

// Emulator advances the scene one tick at a time and renders each tick into
// a frame
type Emulator struct {
	ppu        *ppu.PPU
	scene      *scene.Scene
	controller *input.Controller
	config     *Config

	frame *image.RGBA

	// Performance tracking
	actualFrameTime  time.Duration
	averageFrameTime time.Duration
	frameCount       uint64

	isRunning     bool
	lastResetTime time.Time
}

// NewEmulator creates the PPU and scene described by config
func NewEmulator(config *Config) (*Emulator, error) {
	opts, err := ppuOptions(config.PPU)
	if err != nil {
		return nil, err
	}

	p := ppu.New(opts...)
	p.ScrollX = config.PPU.ScrollX
	p.ScrollY = config.PPU.ScrollY

	s, err := scene.New(p)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	return &Emulator{
		ppu:           p,
		scene:         s,
		controller:    input.New(),
		config:        config,
		frame:         p.NewFrame(),
		lastResetTime: time.Now(),
	}, nil
}

// ppuOptions converts the PPU configuration into construction options
func ppuOptions(cfg PPUConfig) ([]ppu.Option, error) {
	var opts []ppu.Option

	if cfg.PaletteFile != "" {
		f, err := os.Open(cfg.PaletteFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open palette: %w", err)
		}
		defer f.Close()

		ct, err := ppu.LoadColorTable(f)
		if err != nil {
			return nil, &ConfigError{Field: "ppu.palette_file", Value: cfg.PaletteFile, Err: err}
		}
		opts = append(opts, ppu.WithColorTable(ct))
		glog.V(1).Infof("[PPU] Loaded color table from %s", cfg.PaletteFile)
	}

	if cfg.HardwareSpriteLimit {
		opts = append(opts, ppu.WithHardwareSpriteLimit())
	}

	return opts, nil
}

// Reset restarts the scene and clears frame statistics
func (e *Emulator) Reset() error {
	if err := e.scene.Reset(); err != nil {
		return fmt.Errorf("failed to reset scene: %w", err)
	}
	e.controller.Reset()

	e.actualFrameTime = 0
	e.averageFrameTime = 0
	e.frameCount = 0
	e.lastResetTime = time.Now()
	return nil
}

// Start starts the emulator
func (e *Emulator) Start() {
	e.isRunning = true
}

// Stop stops the emulator
func (e *Emulator) Stop() {
	e.isRunning = false
}

// Update runs exactly one tick and renders it. It does nothing while the
// emulator is stopped.
func (e *Emulator) Update() error {
	if !e.isRunning {
		return nil
	}

	frameStartTime := time.Now()

	e.scene.Tick(e.controller.State())
	e.ppu.Render(e.frame)
	e.frameCount++

	e.actualFrameTime = time.Since(frameStartTime)
	e.updatePerformanceMetrics()

	return nil
}

// updatePerformanceMetrics keeps a weighted average of frame times
func (e *Emulator) updatePerformanceMetrics() {
	if e.averageFrameTime == 0 {
		e.averageFrameTime = e.actualFrameTime
		return
	}
	e.averageFrameTime = time.Duration(
		float64(e.averageFrameTime)*0.95 + float64(e.actualFrameTime)*0.05,
	)
}

// GetFrame returns the most recently rendered frame. It is overwritten by
// the next Update.
func (e *Emulator) GetFrame() *image.RGBA {
	return e.frame
}

// GetPPU returns the PPU the scene draws into
func (e *Emulator) GetPPU() *ppu.PPU {
	return e.ppu
}

// GetScene returns the running scene
func (e *Emulator) GetScene() *scene.Scene {
	return e.scene
}

// GetController returns the controller fed by window input
func (e *Emulator) GetController() *input.Controller {
	return e.controller
}

// GetFrameCount returns the number of frames rendered since the last reset
func (e *Emulator) GetFrameCount() uint64 {
	return e.frameCount
}

// GetActualFrameTime returns how long the last frame took
func (e *Emulator) GetActualFrameTime() time.Duration {
	return e.actualFrameTime
}

// GetAverageFrameTime returns the weighted average frame time
func (e *Emulator) GetAverageFrameTime() time.Duration {
	return e.averageFrameTime
}

// IsRunning returns whether Update advances the scene
func (e *Emulator) IsRunning() bool {
	return e.isRunning
}
