package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/plus3/spritewalk/ecs"
	"github.com/plus3/spritewalk/internal/components"
)

// Renderer draws every entity that has a Position and a Sprite.
// It holds no state between frames.
type Renderer struct {
	sprites *ecs.View[struct {
		*components.Position
		*components.Sprite
	}]
}

func NewRenderer(storage *ecs.Storage) *Renderer {
	return &Renderer{
		sprites: ecs.NewView[struct {
			*components.Position
			*components.Sprite
		}](storage),
	}
}

// Draw clears the canvas to background, blits each sprite and presents.
// The first failing copy aborts the frame.
func (r *Renderer) Draw(canvas Canvas, background color.RGBA) error {
	canvas.Clear(background)

	w, h, err := canvas.OutputSize()
	if err != nil {
		return fmt.Errorf("output size: %w", err)
	}

	for id, item := range r.sprites.Iter() {
		region := item.Sprite.Region
		dst := ScreenRect(*item.Position, region.Dx(), region.Dy(), w, h)
		if err := canvas.Copy(item.Sprite.Sheet, region, dst); err != nil {
			return fmt.Errorf("draw entity %d: %w", id.Index(), err)
		}
	}

	canvas.Present()
	return nil
}

// ScreenRect places a w x h sprite centred on pos, where position (0,0) is
// the middle of a screenW x screenH viewport.
func ScreenRect(pos components.Position, w, h, screenW, screenH int) image.Rectangle {
	cx := pos.X + screenW/2
	cy := pos.Y + screenH/2
	x := cx - w/2
	y := cy - h/2
	return image.Rect(x, y, x+w, y+h)
}

// BackgroundColor is the clear colour for the given tick. The red channel
// ramps 0..254 and wraps; blue is its complement.
func BackgroundColor(tick uint64) color.RGBA {
	i := uint8(tick % 255)
	return color.RGBA{R: i, G: 64, B: 255 - i, A: 255}
}
