//go:build ebiten

package main

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const windowSupported = true

// WindowSurface keeps the latest raster as RGBA bytes for an ebiten screen.
type WindowSurface struct {
	raster     *Rasterizer
	pixels     []byte
	background color.RGBA
}

func NewWindowSurface(background color.RGBA) *WindowSurface {
	return &WindowSurface{raster: NewRasterizer(), background: background}
}

func (ws *WindowSurface) Submit(frame Frame) {
	ws.raster.Draw(frame)
	n := ws.raster.Width() * ws.raster.Height() * 4
	if cap(ws.pixels) < n {
		ws.pixels = make([]byte, n)
	}
	ws.pixels = ws.pixels[:n]
	ws.raster.FillRGBA(ws.pixels, ws.background)
}

// windowGame adapts the driver to ebiten.Game. Update is the tick, Layout
// reports the drawable size.
type windowGame struct {
	driver     *AnimationDriver
	surface    *WindowSurface
	pixelRatio float64
}

func (g *windowGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if err := g.driver.Tick(time.Now()); err != nil && !errors.Is(err, ErrFrameDropped) {
		LogError("tick failed", "error", err)
	}
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	if len(g.surface.pixels) != b.Dx()*b.Dy()*4 {
		// Resized since the last frame; the next tick catches up
		return
	}
	screen.WritePixels(g.surface.pixels)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	ratio := g.pixelRatio * ebiten.Monitor().DeviceScaleFactor()
	g.driver.Viewport().SetPixelRatio(ratio)
	g.driver.Resize(Size{Width: outsideWidth, Height: outsideHeight})
	return int(math.Round(float64(outsideWidth) * ratio)), int(math.Round(float64(outsideHeight) * ratio))
}

func newWindowSurface(cfg *Config) (Surface, error) {
	r, g, b, _ := parseHex(cfg.Color.Background)
	return NewWindowSurface(color.RGBA{R: r, G: g, B: b, A: 0xff}), nil
}

func runWindow(cfg *Config, driver *AnimationDriver, surface Surface) error {
	ws, ok := surface.(*WindowSurface)
	if !ok {
		return fmt.Errorf("window backend got %T", surface)
	}

	ebiten.SetWindowTitle("pointwave")
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Display.FPS)

	game := &windowGame{driver: driver, surface: ws, pixelRatio: cfg.Display.PixelRatio}
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}
