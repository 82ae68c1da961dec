// Package render draws sprite entities onto a Canvas.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"
)

var (
	ErrUnknownSheet      = errors.New("unknown sprite sheet")
	ErrRegionOutOfBounds = errors.New("sprite region outside sheet")
	ErrNoSurface         = errors.New("canvas has no surface")
)

// Canvas is a drawing surface with a fixed set of loaded sprite sheets.
type Canvas interface {
	Clear(c color.RGBA)
	OutputSize() (width, height int, err error)
	// Copy draws the src region of the given sheet into dst on the surface.
	Copy(sheet int, src, dst image.Rectangle) error
	Present()
}

func checkRegion(sheet int, count int, bounds func(int) image.Rectangle, src image.Rectangle) error {
	if sheet < 0 || sheet >= count {
		return fmt.Errorf("%w: index %d of %d", ErrUnknownSheet, sheet, count)
	}
	if src.Empty() || !src.In(bounds(sheet)) {
		return fmt.Errorf("%w: %v not in %v", ErrRegionOutOfBounds, src, bounds(sheet))
	}
	return nil
}

// EbitenCanvas draws onto the screen image ebiten hands to Game.Draw.
// The screen is replaced every frame with SetScreen.
type EbitenCanvas struct {
	screen *ebiten.Image
	sheets []*ebiten.Image
}

// NewEbitenCanvas uploads the sheets as GPU images.
func NewEbitenCanvas(sheets ...image.Image) *EbitenCanvas {
	c := &EbitenCanvas{sheets: make([]*ebiten.Image, len(sheets))}
	for i, sheet := range sheets {
		c.sheets[i] = ebiten.NewImageFromImage(sheet)
	}
	return c
}

func (c *EbitenCanvas) SetScreen(screen *ebiten.Image) {
	c.screen = screen
}

func (c *EbitenCanvas) Clear(col color.RGBA) {
	if c.screen != nil {
		c.screen.Fill(col)
	}
}

func (c *EbitenCanvas) OutputSize() (int, int, error) {
	if c.screen == nil {
		return 0, 0, ErrNoSurface
	}
	b := c.screen.Bounds()
	return b.Dx(), b.Dy(), nil
}

func (c *EbitenCanvas) Copy(sheet int, src, dst image.Rectangle) error {
	if c.screen == nil {
		return ErrNoSurface
	}
	bounds := func(i int) image.Rectangle { return c.sheets[i].Bounds() }
	if err := checkRegion(sheet, len(c.sheets), bounds, src); err != nil {
		return err
	}

	sub := c.sheets[sheet].SubImage(src).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(dst.Dx())/float64(src.Dx()), float64(dst.Dy())/float64(src.Dy()))
	op.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	c.screen.DrawImage(sub, op)
	return nil
}

// Present is a no-op: ebiten shows the screen once Draw returns.
func (c *EbitenCanvas) Present() {}

// ImageCanvas is a software canvas backed by an *image.RGBA, used for
// headless runs and tests.
type ImageCanvas struct {
	Frames int

	img    *image.RGBA
	sheets []image.Image
}

func NewImageCanvas(width, height int, sheets ...image.Image) *ImageCanvas {
	return &ImageCanvas{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		sheets: sheets,
	}
}

// Image returns the surface. It is only complete after Present.
func (c *ImageCanvas) Image() *image.RGBA {
	return c.img
}

func (c *ImageCanvas) Clear(col color.RGBA) {
	xdraw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, xdraw.Src)
}

func (c *ImageCanvas) OutputSize() (int, int, error) {
	if c.img == nil {
		return 0, 0, ErrNoSurface
	}
	b := c.img.Bounds()
	return b.Dx(), b.Dy(), nil
}

func (c *ImageCanvas) Copy(sheet int, src, dst image.Rectangle) error {
	bounds := func(i int) image.Rectangle { return c.sheets[i].Bounds() }
	if err := checkRegion(sheet, len(c.sheets), bounds, src); err != nil {
		return err
	}

	if dst.Size() == src.Size() {
		xdraw.Draw(c.img, dst, c.sheets[sheet], src.Min, xdraw.Over)
		return nil
	}
	xdraw.NearestNeighbor.Scale(c.img, dst, c.sheets[sheet], src, xdraw.Over, nil)
	return nil
}

func (c *ImageCanvas) Present() {
	c.Frames++
}

// SavePNG writes the current surface to path.
func (c *ImageCanvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	if err := png.Encode(f, c.img); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return f.Close()
}
