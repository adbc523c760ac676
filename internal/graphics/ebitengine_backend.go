//go:build !headless
// +build !headless

package graphics

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// TicksPerSecond is the fixed update rate of the game loop
const TicksPerSecond = 60

// EbitengineBackend implements the Backend interface using Ebitengine
type EbitengineBackend struct {
	initialized bool
	config      Config
	game        *EbitengineGame
}

// EbitengineWindow implements the Window interface for Ebitengine
type EbitengineWindow struct {
	backend    *EbitengineBackend
	title      string
	width      int
	height     int
	game       *EbitengineGame
	running    bool
	events     []InputEvent
	updateFunc func() error
}

// EbitengineGame implements ebiten.Game and presents the latest PPU frame
type EbitengineGame struct {
	window       *EbitengineWindow
	frameImage   *ebiten.Image
	windowWidth  int
	windowHeight int

	// Latest frame, uploaded to frameImage on Draw
	pixels []byte
	dirty  bool

	drawCount int
}

// NewEbitengineBackend creates a new Ebitengine graphics backend
func NewEbitengineBackend() Backend {
	return &EbitengineBackend{}
}

// Initialize initializes the Ebitengine backend
func (b *EbitengineBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("Ebitengine backend already initialized")
	}

	b.config = config
	b.initialized = true

	return nil
}

// CreateWindow creates an Ebitengine window
func (b *EbitengineBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}

	if b.config.Headless {
		return nil, fmt.Errorf("cannot create window in headless mode")
	}

	game := &EbitengineGame{
		windowWidth:  width,
		windowHeight: height,
		pixels:       make([]byte, FrameWidth*FrameHeight*4),
	}

	window := &EbitengineWindow{
		backend: b,
		title:   title,
		width:   width,
		height:  height,
		game:    game,
		running: true,
	}

	game.window = window
	b.game = game

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	if b.config.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
	ebiten.SetVsyncEnabled(b.config.VSync)
	ebiten.SetTPS(TicksPerSecond)
	ebiten.SetFullscreen(b.config.Fullscreen)
	ebiten.SetScreenFilterEnabled(b.config.Filter == "linear")

	if b.config.Debug {
		glog.Infof("[Ebitengine] Window %q %dx%d vsync=%t filter=%s", title, width, height, b.config.VSync, b.config.Filter)
	}

	return window, nil
}

// Cleanup releases all Ebitengine resources
func (b *EbitengineBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless returns true if running in headless mode
func (b *EbitengineBackend) IsHeadless() bool {
	return b.config.Headless
}

// GetName returns the backend name
func (b *EbitengineBackend) GetName() string {
	return "Ebitengine"
}

// SetTitle sets the window title
func (w *EbitengineWindow) SetTitle(title string) {
	w.title = title
	ebiten.SetWindowTitle(title)
}

// GetSize returns window dimensions
func (w *EbitengineWindow) GetSize() (width, height int) {
	return w.width, w.height
}

// ShouldClose returns true if window should close
func (w *EbitengineWindow) ShouldClose() bool {
	return !w.running
}

// PollEvents returns the input events gathered since the last call
func (w *EbitengineWindow) PollEvents() []InputEvent {
	events := w.events
	w.events = nil
	return events
}

// RenderFrame copies a PPU frame for the next Draw
func (w *EbitengineWindow) RenderFrame(frame *image.RGBA) error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}
	if err := checkFrame(frame); err != nil {
		return err
	}

	for y := 0; y < FrameHeight; y++ {
		src := frame.Pix[y*frame.Stride : y*frame.Stride+FrameWidth*4]
		copy(w.game.pixels[y*FrameWidth*4:], src)
	}
	w.game.dirty = true

	return nil
}

// Cleanup releases window resources. The game loop ends on its next update.
func (w *EbitengineWindow) Cleanup() error {
	w.running = false
	return nil
}

// Run starts the Ebitengine game loop and blocks until the window closes
func (w *EbitengineWindow) Run() error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}
	return ebiten.RunGame(w.game)
}

// SetUpdateFunc sets the function called once per tick
func (w *EbitengineWindow) SetUpdateFunc(updateFunc func() error) {
	w.updateFunc = updateFunc
}

// Update implements ebiten.Game.Update
func (g *EbitengineGame) Update() error {
	if g.window == nil {
		return nil
	}
	if !g.window.running {
		return ebiten.Termination
	}

	g.processInput()

	if g.window.updateFunc != nil {
		if err := g.window.updateFunc(); err != nil {
			glog.Errorf("[Ebitengine] Update error: %v", err)
		}
	}

	return nil
}

// Draw implements ebiten.Game.Draw
func (g *EbitengineGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0, G: 0, B: 0, A: 255})

	if g.frameImage == nil {
		g.frameImage = ebiten.NewImage(FrameWidth, FrameHeight)
	}
	if g.dirty {
		g.frameImage.WritePixels(g.pixels)
		g.dirty = false
	}

	scale, offsetX, offsetY := fitScale(g.windowWidth, g.windowHeight)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	screen.DrawImage(g.frameImage, op)

	g.drawCount++
	if g.drawCount%1800 == 0 {
		glog.V(2).Infof("[Ebitengine] Drawing frame %d scaled %.2fx at offset (%.1f,%.1f)",
			g.drawCount, scale, offsetX, offsetY)
	}
}

// Layout implements ebiten.Game.Layout
func (g *EbitengineGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.windowWidth = outsideWidth
	g.windowHeight = outsideHeight
	return outsideWidth, outsideHeight
}

// fitScale returns the largest scale that fits the frame in the window
// without changing its aspect ratio, and the offsets that center it
func fitScale(windowWidth, windowHeight int) (scale, offsetX, offsetY float64) {
	scaleX := float64(windowWidth) / FrameWidth
	scaleY := float64(windowHeight) / FrameHeight

	scale = scaleX
	if scaleY < scaleX {
		scale = scaleY
	}

	offsetX = (float64(windowWidth) - FrameWidth*scale) / 2
	offsetY = (float64(windowHeight) - FrameHeight*scale) / 2
	return scale, offsetX, offsetY
}

var keyMappings = map[ebiten.Key]Key{
	ebiten.KeyEscape:     KeyEscape,
	ebiten.KeyEnter:      KeyEnter,
	ebiten.KeySpace:      KeySpace,
	ebiten.KeyArrowUp:    KeyUp,
	ebiten.KeyArrowDown:  KeyDown,
	ebiten.KeyArrowLeft:  KeyLeft,
	ebiten.KeyArrowRight: KeyRight,
	ebiten.KeyW:          KeyW,
	ebiten.KeyA:          KeyA,
	ebiten.KeyS:          KeyS,
	ebiten.KeyD:          KeyD,
	ebiten.KeyJ:          KeyJ,
	ebiten.KeyK:          KeyK,
	ebiten.KeyR:          KeyR,
	ebiten.KeyF11:        KeyF11,
	ebiten.KeyF12:        KeyF12,
}

// processInput turns key transitions into input events
func (g *EbitengineGame) processInput() {
	var raw []InputEvent

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		raw = append(raw, InputEvent{Type: InputEventTypeQuit, Pressed: true})
	}

	for ebitenKey, key := range keyMappings {
		if inpututil.IsKeyJustPressed(ebitenKey) {
			raw = append(raw, InputEvent{Type: InputEventTypeKey, Key: key, Pressed: true})
		} else if inpututil.IsKeyJustReleased(ebitenKey) {
			raw = append(raw, InputEvent{Type: InputEventTypeKey, Key: key, Pressed: false})
		}
	}

	g.window.events = append(g.window.events, mapKeyEvents(raw)...)
}

// AsEbitengineWindow tries to cast a Window to EbitengineWindow
func AsEbitengineWindow(window Window) (*EbitengineWindow, bool) {
	w, ok := window.(*EbitengineWindow)
	return w, ok
}
