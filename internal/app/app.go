package app

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/golang/glog"

	"lightningdodge/internal/debug"
	"lightningdodge/internal/graphics"
)

// WindowTitle is the title of the application window
const WindowTitle = "Lightning Dodge"

// Application ties the emulator to a graphics backend and runs the main
// loop
type Application struct {
	// Graphics backend
	graphicsBackend graphics.Backend
	window          graphics.Window
	videoProcessor  *graphics.VideoProcessor

	// Application state
	config      *Config
	emulator    *Emulator
	frameDumper *debug.FrameDumper

	// Frame presented to the window, after video processing
	output *image.RGBA

	// Control flags
	running     bool
	paused      bool
	initialized bool
	headless    bool

	// Performance tracking
	frameCount          uint64
	startTime           time.Time
	lastFPSTime         time.Time
	frameCountAtLastFPS uint64
	currentFPS          float64
}

// ApplicationError represents application-specific errors
type ApplicationError struct {
	Component string
	Operation string
	Err       error
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("Application %s error during %s: %v", e.Component, e.Operation, e.Err)
}

func (e *ApplicationError) Unwrap() error {
	return e.Err
}

// NewApplication creates a new application using the configured backend
func NewApplication(configPath string) (*Application, error) {
	return NewApplicationWithMode(configPath, false)
}

// NewApplicationWithMode creates a new application, forcing the headless
// backend if headless is set
func NewApplicationWithMode(configPath string, headless bool) (*Application, error) {
	config := NewConfig()
	if configPath != "" {
		if err := config.LoadFromFile(configPath); err != nil {
			glog.Warningf("[APP] Could not load config from %s, using defaults: %v", configPath, err)
			config = NewConfig()
		}
	}

	return NewApplicationWithConfig(config, headless)
}

// NewApplicationWithConfig creates a new application from an existing
// configuration
func NewApplicationWithConfig(config *Config, headless bool) (*Application, error) {
	if config.Video.Backend == string(graphics.BackendHeadless) {
		headless = true
	}

	app := &Application{
		config:      config,
		headless:    headless,
		startTime:   time.Now(),
		lastFPSTime: time.Now(),
	}

	if err := app.initializeComponents(); err != nil {
		return nil, &ApplicationError{
			Component: "initialization",
			Operation: "component setup",
			Err:       err,
		}
	}

	return app, nil
}

func (app *Application) initializeComponents() error {
	var err error
	app.emulator, err = NewEmulator(app.config)
	if err != nil {
		return fmt.Errorf("failed to create emulator: %w", err)
	}
	app.emulator.GetController().EnableDebug(app.config.Verbosity() >= 2)

	if err := app.initializeGraphicsBackend(); err != nil {
		return fmt.Errorf("failed to initialize graphics backend: %w", err)
	}

	app.output = image.NewRGBA(app.emulator.GetFrame().Bounds())

	app.frameDumper = debug.NewFrameDumper(app.config.Paths.Dumps)
	app.frameDumper.SetDumpInterval(app.config.Debug.DumpInterval)
	app.frameDumper.SetMaxDumps(app.config.Debug.MaxDumps)
	app.frameDumper.SetScale(app.config.Window.Scale)
	if app.config.Debug.DumpFrames {
		if err := app.frameDumper.Enable(); err != nil {
			return err
		}
	}

	app.initialized = true
	return nil
}

// initializeGraphicsBackend creates the backend and its window
func (app *Application) initializeGraphicsBackend() error {
	backendType := graphics.BackendEbitengine
	if app.headless {
		backendType = graphics.BackendHeadless
	}

	var err error
	app.graphicsBackend, err = graphics.CreateBackend(backendType)
	if err != nil {
		return fmt.Errorf("failed to create graphics backend: %w", err)
	}

	graphicsConfig := graphics.Config{
		WindowTitle:   WindowTitle,
		WindowWidth:   app.config.Window.Width,
		WindowHeight:  app.config.Window.Height,
		Fullscreen:    app.config.Window.Fullscreen,
		Resizable:     app.config.Window.Resizable,
		VSync:         app.config.Video.VSync,
		Filter:        app.config.Video.Filter,
		Headless:      app.headless,
		OutputDir:     app.config.Paths.Dumps,
		CaptureFrames: app.config.Emulation.CaptureFrames,
		MaxFrames:     app.config.Emulation.MaxFrames,
		Debug:         app.config.Debug.EnableLogging,
	}

	if err := app.graphicsBackend.Initialize(graphicsConfig); err != nil {
		if backendType != graphics.BackendEbitengine {
			return fmt.Errorf("failed to initialize graphics backend: %w", err)
		}

		// Ebitengine is unavailable in headless builds
		glog.Warningf("[APP] Ebitengine backend failed (%v), falling back to headless mode", err)
		app.headless = true
		app.graphicsBackend = graphics.NewHeadlessBackend()
		graphicsConfig.Headless = true
		if err := app.graphicsBackend.Initialize(graphicsConfig); err != nil {
			return fmt.Errorf("failed to initialize fallback headless backend: %w", err)
		}
	}

	app.window, err = app.graphicsBackend.CreateWindow(
		graphicsConfig.WindowTitle,
		graphicsConfig.WindowWidth,
		graphicsConfig.WindowHeight,
	)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	app.videoProcessor = graphics.NewVideoProcessor(
		app.config.Video.Brightness,
		app.config.Video.Contrast,
		app.config.Video.Saturation,
	)

	return nil
}

// Run runs the main loop until the window closes or Stop is called
func (app *Application) Run() error {
	if !app.initialized {
		return errors.New("application not initialized")
	}

	app.running = true
	app.startTime = time.Now()
	app.lastFPSTime = app.startTime
	app.emulator.Start()

	glog.V(1).Infof("[APP] Starting with %s backend", app.graphicsBackend.GetName())

	if ebitengineWindow, ok := graphics.AsEbitengineWindow(app.window); ok {
		ebitengineWindow.SetUpdateFunc(app.step)
		return ebitengineWindow.Run()
	}

	frameTime := time.Duration(float64(time.Second) / app.config.Emulation.FrameRate)
	next := time.Now()
	for app.running {
		if err := app.step(); err != nil {
			return err
		}

		// Headless runs as fast as it can
		if !app.headless {
			next = next.Add(frameTime)
			if d := time.Until(next); d > 0 {
				time.Sleep(d)
			}
		}
	}

	glog.V(1).Info("[APP] Main loop ended")
	return nil
}

// step processes input, advances one frame and presents it
func (app *Application) step() error {
	app.processInput()

	if !app.paused {
		if err := app.emulator.Update(); err != nil {
			return err
		}
		if err := app.render(); err != nil {
			return err
		}
		app.updatePerformanceMetrics()
	}

	limit := app.config.Emulation.MaxFrames
	if app.window.ShouldClose() || (limit > 0 && app.frameCount >= uint64(limit)) {
		app.Stop()
	}
	return nil
}

// processInput applies window events to the controller and handles
// application keys
func (app *Application) processInput() {
	controller := app.emulator.GetController()

	for _, event := range app.window.PollEvents() {
		switch event.Type {
		case graphics.InputEventTypeQuit:
			glog.Info("[APP] Quit requested")
			app.Stop()
		case graphics.InputEventTypeButton:
			controller.SetButton(event.Button, event.Pressed)
		case graphics.InputEventTypeKey:
			if event.Pressed {
				app.handleKeyInput(event.Key)
			}
		}
	}
}

// handleKeyInput handles keys that are not controller buttons
func (app *Application) handleKeyInput(key graphics.Key) {
	switch key {
	case graphics.KeyF12:
		if path, err := app.Screenshot(); err != nil {
			glog.Errorf("[APP] Screenshot failed: %v", err)
		} else {
			glog.Infof("[APP] Screenshot saved to %s", path)
		}
	case graphics.KeyR:
		app.Reset()
	case graphics.KeyF11:
		app.TogglePause()
	}
}

// render post-processes the emulator frame and hands it to the window
func (app *Application) render() error {
	frame := app.emulator.GetFrame()

	if _, err := app.frameDumper.DumpFrame(frame, app.emulator.GetFrameCount()); err != nil {
		glog.Errorf("[APP] Frame dump failed: %v", err)
	}

	copy(app.output.Pix, frame.Pix)
	app.videoProcessor.ProcessFrame(app.output)

	if err := app.window.RenderFrame(app.output); err != nil {
		return fmt.Errorf("failed to render frame: %w", err)
	}
	return nil
}

// updatePerformanceMetrics recomputes FPS once per second
func (app *Application) updatePerformanceMetrics() {
	app.frameCount++

	now := time.Now()
	elapsed := now.Sub(app.lastFPSTime)
	if elapsed < time.Second {
		return
	}

	app.currentFPS = float64(app.frameCount-app.frameCountAtLastFPS) / elapsed.Seconds()
	app.frameCountAtLastFPS = app.frameCount
	app.lastFPSTime = now

	if app.config.Debug.ShowFPS {
		glog.Infof("[APP] FPS: %.1f, frame time %v", app.currentFPS, app.emulator.GetAverageFrameTime())
		app.window.SetTitle(fmt.Sprintf("%s - %.1f FPS", WindowTitle, app.currentFPS))
	}
}

// Screenshot writes the current frame, scaled by the window scale, to the
// screenshots directory and returns its path
func (app *Application) Screenshot() (string, error) {
	name := fmt.Sprintf("screenshot_%s_%06d.png", time.Now().Format("20060102_150405"), app.emulator.GetFrameCount())
	path := filepath.Join(app.config.Paths.Screenshots, name)

	img := debug.ScaleFrame(app.output, app.config.Window.Scale)
	if err := debug.WritePNG(path, img); err != nil {
		return "", &ApplicationError{Component: "screenshot", Operation: "write", Err: err}
	}
	return path, nil
}

// DumpPPU writes the pattern tables and tilemap of the PPU to dir
func (app *Application) DumpPPU(dir string) ([]string, error) {
	return debug.DumpPPU(dir, app.emulator.GetPPU())
}

// Stop ends the main loop
func (app *Application) Stop() {
	app.running = false
	app.emulator.Stop()
	if app.window != nil {
		app.window.Cleanup()
	}
}

// Pause stops advancing frames
func (app *Application) Pause() {
	app.paused = true
}

// Resume continues advancing frames
func (app *Application) Resume() {
	app.paused = false
}

// TogglePause toggles between paused and running
func (app *Application) TogglePause() {
	app.paused = !app.paused
	glog.V(1).Infof("[APP] Paused: %t", app.paused)
}

// Reset restarts the scene
func (app *Application) Reset() {
	if err := app.emulator.Reset(); err != nil {
		glog.Errorf("[APP] Reset failed: %v", err)
	}
}

// IsRunning returns whether the main loop is running
func (app *Application) IsRunning() bool {
	return app.running
}

// IsPaused returns whether frame advance is paused
func (app *Application) IsPaused() bool {
	return app.paused
}

// IsHeadless returns whether the application has no display
func (app *Application) IsHeadless() bool {
	return app.headless
}

// GetFPS returns the frame rate measured over the last second
func (app *Application) GetFPS() float64 {
	return app.currentFPS
}

// GetFrameCount returns the number of frames presented
func (app *Application) GetFrameCount() uint64 {
	return app.frameCount
}

// GetUptime returns the time since Run started
func (app *Application) GetUptime() time.Duration {
	return time.Since(app.startTime)
}

// GetConfig returns the application configuration
func (app *Application) GetConfig() *Config {
	return app.config
}

// GetEmulator returns the emulator
func (app *Application) GetEmulator() *Emulator {
	return app.emulator
}

// GetWindow returns the window frames are presented to
func (app *Application) GetWindow() graphics.Window {
	return app.window
}

// Cleanup releases all resources and shuts down the application
func (app *Application) Cleanup() error {
	glog.V(1).Info("[APP] Cleaning up application resources")

	var lastErr error

	if app.window != nil {
		if err := app.window.Cleanup(); err != nil {
			lastErr = err
			glog.Errorf("[APP] Window cleanup error: %v", err)
		}
	}

	if app.graphicsBackend != nil {
		if err := app.graphicsBackend.Cleanup(); err != nil {
			lastErr = err
			glog.Errorf("[APP] Graphics backend cleanup error: %v", err)
		}
	}

	app.initialized = false
	return lastErr
}
